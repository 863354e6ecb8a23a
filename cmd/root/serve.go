package root

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/manjuvnair16/MLA-app-group3/internal/api"
	"github.com/manjuvnair16/MLA-app-group3/internal/auth"
	"github.com/manjuvnair16/MLA-app-group3/internal/config"
	"github.com/manjuvnair16/MLA-app-group3/internal/domain"
	"github.com/manjuvnair16/MLA-app-group3/internal/events"
	"github.com/manjuvnair16/MLA-app-group3/internal/extractor"
	"github.com/manjuvnair16/MLA-app-group3/internal/logging"
	fsrepo "github.com/manjuvnair16/MLA-app-group3/internal/persistence/firestore"
	"github.com/manjuvnair16/MLA-app-group3/internal/persistence/memory"
	httptransport "github.com/manjuvnair16/MLA-app-group3/internal/transport/http"
)

func runServe(cfg config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var repo domain.Repository
	if cfg.FirestoreProjectID != "" {
		client, err := firestore.NewClient(ctx, cfg.FirestoreProjectID)
		if err != nil {
			return fmt.Errorf("failed to connect to firestore: %w", err)
		}
		store := fsrepo.NewRepository(client, cfg.ActivitiesCollection)
		defer store.Close()
		repo = store
		logging.Info("using firestore store",
			"project", cfg.FirestoreProjectID,
			"collection", cfg.ActivitiesCollection,
		)
	} else {
		repo = memory.NewRepository()
		logging.Warn("FIRESTORE_PROJECT_ID not set, using volatile in-memory store")
	}

	var publisher events.Publisher = events.LogPublisher{}
	if cfg.EventsEnabled {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logging.Info("kafka events enabled", "brokers", strings.Join(cfg.KafkaBrokers, ","))
	}

	var parser extractor.Parser
	if cfg.GeminiAPIKey != "" {
		geminiParser, err := extractor.NewGeminiParser(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("failed to create gemini parser: %w", err)
		}
		defer geminiParser.Close()
		parser = geminiParser
	} else {
		logging.Warn("GEMINI_API_KEY not set, transcript parsing disabled")
	}

	display, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		logging.Warn("failed to load display timezone, falling back to fixed +10:00",
			"timezone", cfg.DisplayTimezone,
			"error", err.Error(),
		)
		display = time.FixedZone("AEST", 10*60*60)
	}

	service := domain.NewService(repo, publisher, display)

	handler := api.NewHandler(service, parser)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	authMiddleware := auth.NewMiddleware(
		auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer},
		func(r *http.Request) bool {
			return r.URL.Path == "/healthz" || r.URL.Path == "/metrics"
		},
	)

	// CORS sits outermost so browser preflights never hit auth.
	chain := httptransport.CORS(httptransport.RequestLogger(authMiddleware.Wrap(mux)))

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, chain)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logging.Info("activity analytics listening", "address", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case sig := <-shutdownCh:
		logging.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error("graceful shutdown failed", "error", err.Error())
	}

	return nil
}
