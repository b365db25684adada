package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hierview/internal"
	"hierview/internal/cache"
	"hierview/internal/config"
	"hierview/ui"

	"github.com/joho/godotenv"
)

// Serves a previously built cache document without reading the source spreadsheet.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := appConfig.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := internal.NewLogger(os.Stderr, internal.ParseLogLevel(appConfig.LogLevel))
	store := cache.NewStore(appConfig.Data.CacheFile, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// refuse to start without a readable document
	if _, err := store.Read(ctx); err != nil {
		log.Fatalf("Cache document unavailable: %v", err)
	}

	app, err := ui.NewApp(ui.Config{
		Port:  appConfig.Server.Port,
		Title: appConfig.Server.Title,
	}, store, logger)
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	logger.Info("Starting hierview viewer on http://localhost:%s", appConfig.Server.Port)
	if err := app.Start(ctx); err != nil {
		log.Fatal(err)
	}
}
