package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"afisha/internal/adapters/terminal"
	"afisha/internal/config"
	"afisha/internal/infrastructure/database"
	"afisha/internal/infrastructure/storage"
	"afisha/internal/infrastructure/telemetry"
	"afisha/internal/ports/output"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code once storage and telemetry are released.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("❌ Configuration invalide: %v", err)
		return 1
	}
	logger := setupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, "afisha", cfg.OTelEndpoint)
	if err != nil {
		log.Printf("⚠️ Traces OpenTelemetry désactivées: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("⚠️ Arrêt OpenTelemetry: %v", err)
		}
	}()

	state, watcher, closeStorage, err := openStorage(ctx, cfg, logger)
	if err != nil {
		log.Printf("❌ Erreur lors de l'initialisation du stockage: %v", err)
		return 1
	}
	defer closeStorage()

	app := terminal.NewApp(cfg, state, watcher, logger)
	err = app.CLI().RunContext(ctx, os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return exitCode(err)
}

// exitCode maps a command error to the process status: the code carried by
// cli.Exit, 1 for any other error.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

// openStorage returns the client state storage selected by the configuration.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (output.ClientStateStorage, output.ChangeWatcher, func(), error) {
	switch cfg.Storage {
	case config.StorageMemory:
		m := storage.NewMemory()
		return m, m, func() {}, nil

	case config.StoragePostgres:
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, nil, nil, err
		}
		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		repo := database.NewClientStateRepository(pool)
		return repo, repo, pool.Close, nil

	default:
		db, err := storage.OpenSQLite(ctx, cfg.SQLitePath, cfg.WatchInterval, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return db, db, func() {
			if err := db.Close(); err != nil {
				log.Printf("⚠️ Fermeture SQLite: %v", err)
			}
		}, nil
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return logger
}
