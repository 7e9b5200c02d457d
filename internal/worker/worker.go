package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"

	"shopsync/internal/config"
	"shopsync/internal/events"
	"shopsync/internal/logger"
	"shopsync/internal/models"
	"shopsync/internal/sync"
)

// Worker consumes sync-request events and runs the full-sync pipeline for
// each. Events for shops with no stored credential are dropped, not retried.
type Worker struct {
	config       *config.Config
	logger       *logger.Logger
	reader       *kafka.Reader
	db           *gorm.DB
	orchestrator *sync.Orchestrator
}

func New(cfg *config.Config, logger *logger.Logger, db *gorm.DB, orchestrator *sync.Orchestrator) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        strings.Split(cfg.KafkaBrokers, ","),
		GroupID:        "shopsync-worker",
		Topic:          cfg.SyncTopic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &Worker{
		config:       cfg,
		logger:       logger,
		reader:       reader,
		db:           db,
		orchestrator: orchestrator,
	}
}

func (w *Worker) Start() {
	w.logger.Info("Worker started, listening for sync requests...")

	for {
		message, err := w.reader.ReadMessage(context.Background())
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			w.logger.Error("Failed to read message: %v", err)
			continue
		}

		var event events.SyncRequested
		if err := json.Unmarshal(message.Value, &event); err != nil {
			w.logger.Error("Failed to parse sync request: %v", err)
			continue
		}

		w.handle(event)
	}
}

func (w *Worker) handle(event events.SyncRequested) {
	var shop models.Shop
	err := w.db.First(&shop, "shop_domain = ?", event.ShopDomain).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		w.logger.Warn("Dropping sync request for unknown shop %s (trigger=%s)", event.ShopDomain, event.Trigger)
		return
	}
	if err != nil {
		w.logger.Error("Failed to resolve shop %s: %v", event.ShopDomain, err)
		return
	}

	result, err := w.orchestrator.Run(shop.ShopDomain, shop.AccessToken)
	if err != nil {
		w.logger.Error("Sync for shop %s failed: %v", shop.ShopDomain, err)
		return
	}

	w.logger.Info("Sync %s for shop %s: %d inserted, %d updated, %d pruned",
		result.SyncID, result.ShopName, result.Inserted, result.Updated, result.Deleted)
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.reader.Close()
}
