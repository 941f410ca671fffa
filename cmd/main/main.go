package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"virtual-file-system/internal/config"
	"virtual-file-system/internal/di"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file; VFS_* environment variables apply either way")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	os.Exit(run(cfg))
}

func run(cfg *config.Config) int {
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Print(err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exitCode := 0
	if err := app.Menu.Start(ctx); err != nil {
		app.Logger.Error("shell stopped", "error", err)
		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.MetricsCollector.Push(shutdownCtx); err != nil {
		app.Logger.Error("metrics push", "error", err)
	}
	if err := app.TracerShutdown(shutdownCtx); err != nil {
		app.Logger.Error("tracer shutdown", "error", err)
	}

	return exitCode
}
