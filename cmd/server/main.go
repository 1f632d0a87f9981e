// Command server runs the lyricdeck API.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lyricdeck/lyricdeck-api/internal/config"
	"github.com/lyricdeck/lyricdeck-api/internal/platform/logger"
)

func main() {
	// A missing .env is fine; real deployments configure through the
	// environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	app, err := newApplication(cfg, log)
	if err != nil {
		log.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer app.close()

	if err := app.run(); err != nil {
		log.Error("server terminated", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
