// Package root wires the CLI commands.
package root

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/manjuvnair16/MLA-app-group3/internal/auth"
	"github.com/manjuvnair16/MLA-app-group3/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "activity-analytics",
	Short: "Workout activity recording and aggregation service",
}

// GetRootCmd assembles the command tree.
func GetRootCmd(cfg config.Config) *cobra.Command {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfg)
		},
	})

	rootCmd.AddCommand(newTokenCmd(cfg))

	return rootCmd
}

// newTokenCmd mints a bearer token for local testing against the API.
func newTokenCmd(cfg config.Config) *cobra.Command {
	var (
		username string
		scopes   []string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := auth.Sign(username, scopes, ttl, auth.Config{
				Secret: cfg.JWTSecret,
				Issuer: cfg.JWTIssuer,
			})
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "dev", "username claim")
	cmd.Flags().StringSliceVar(&scopes, "scopes", []string{auth.ScopeActivitiesRead, auth.ScopeActivitiesWrite}, "scopes to grant")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}
