// main is the entry point of the interactive student management console.
//
// It shares configuration and storage with students-api, so both can run
// against the same database:
//
//	go run ./cmd/students-cli --config=config/local.yaml
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aanand-mishra/students-api/internal/config"
	"github.com/aanand-mishra/students-api/internal/console"
	"github.com/aanand-mishra/students-api/internal/logger"
	"github.com/aanand-mishra/students-api/internal/storage/backend"
)

func main() {
	cfg := config.MustLoad()

	// Logs go to stderr so they never interleave with the prompts.
	log := logger.Setup(cfg.Env, os.Stderr)

	// Ctrl+C cancels the context; Run stops at whatever prompt is waiting
	// and returns nil.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Starting Student Management System...")

	storage, err := backend.New(ctx, cfg)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	if err := console.New(storage, os.Stdin, os.Stdout).Run(ctx); err != nil {
		log.Error("console stopped", slog.String("error", err.Error()))
		storage.Close()
		os.Exit(1)
	}
}
