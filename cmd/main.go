package main

import (
	"log"
	"os"

	root "github.com/manjuvnair16/MLA-app-group3/cmd/root"
	"github.com/manjuvnair16/MLA-app-group3/internal/config"
	"github.com/manjuvnair16/MLA-app-group3/internal/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogPretty)

	cmd := root.GetRootCmd(cfg)

	// Bare invocation serves; matches how the container runs it.
	if len(os.Args) == 1 {
		cmd.SetArgs([]string{"serve"})
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
