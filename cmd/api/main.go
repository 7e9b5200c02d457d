package main

import (
	"log"

	"shopsync/internal/api"
	"shopsync/internal/config"
	"shopsync/internal/database"
	"shopsync/internal/events"
	"shopsync/internal/logger"
	"shopsync/internal/sync"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize database: one handle for the life of the process
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Sync pipeline
	writer := sync.NewWriter(db.DB, logger)
	tracker := sync.NewTracker(db.DB)
	orchestrator := sync.NewOrchestrator(writer, tracker, logger, cfg.SyncPageSize, nil)

	// Webhook events go through Kafka when brokers are configured
	var publisher *events.Publisher
	if cfg.KafkaBrokers != "" {
		publisher = events.NewPublisher(cfg.KafkaBrokers, cfg.SyncTopic, logger)
		defer publisher.Close()
	}

	// Initialize API server
	server := api.New(cfg, logger, db, orchestrator, tracker, publisher)

	// Start server
	logger.Info("Starting API server on port " + cfg.APIPort)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
