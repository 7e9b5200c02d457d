package sync

import (
	"fmt"
	stdsync "sync"
	"time"

	"shopsync/internal/logger"
	"shopsync/internal/models"
	"shopsync/internal/services/shopify"
)

// PageFetcher is the catalog boundary the orchestrator paginates over.
// *shopify.Client satisfies it.
type PageFetcher interface {
	FetchPage(limit int, cursor string) (*shopify.ProductsPage, error)
}

// ClientFactory builds a PageFetcher for one shop's credential.
type ClientFactory func(shopDomain, accessToken string) PageFetcher

// DocumentStore is the persistence boundary for mapped documents.
// *Writer satisfies it.
type DocumentStore interface {
	UpsertPage(shopName string, docs []models.ProductDocument) (inserted, updated int, err error)
	PruneMissing(shopName string, seenProductIDs []string) (int64, error)
}

// Result summarizes one completed run.
type Result struct {
	SyncID   string        `json:"sync_id"`
	ShopName string        `json:"shop_name"`
	Pages    int           `json:"pages"`
	Products int           `json:"products"`
	Inserted int           `json:"inserted"`
	Updated  int           `json:"updated"`
	Deleted  int64         `json:"deleted"`
	Duration time.Duration `json:"duration"`
}

// Orchestrator drives the full-sync pipeline for one shop at a time:
// fetch page, map, upsert, repeat until the cursor runs out, then prune
// whatever the traversal did not see. Runs for the same shop are
// serialized by a process-local lock; runs for different shops proceed
// concurrently.
type Orchestrator struct {
	store     DocumentStore
	tracker   *Tracker
	logger    *logger.Logger
	pageSize  int
	newClient ClientFactory

	mu        stdsync.Mutex
	shopLocks map[string]*stdsync.Mutex
}

func NewOrchestrator(store DocumentStore, tracker *Tracker, logger *logger.Logger, pageSize int, factory ClientFactory) *Orchestrator {
	if pageSize <= 0 {
		pageSize = shopify.DefaultPageSize
	}
	if factory == nil {
		factory = func(shopDomain, accessToken string) PageFetcher {
			return shopify.NewClient(shopDomain, accessToken, logger)
		}
	}
	return &Orchestrator{
		store:     store,
		tracker:   tracker,
		logger:    logger,
		pageSize:  pageSize,
		newClient: factory,
		shopLocks: make(map[string]*stdsync.Mutex),
	}
}

// Run executes one full sync for a shop. It always begins at the first
// page; there is no resumption from a partial cursor. Every failure is
// converted into a terminal status write before it propagates.
func (o *Orchestrator) Run(shopDomain, accessToken string) (*Result, error) {
	if accessToken == "" {
		err := &shopify.AuthError{Shop: shopDomain}
		if syncID, trackErr := o.tracker.Begin(shopDomain); trackErr == nil {
			o.track(syncID, models.SyncFailed, 0, err.Error())
		}
		return nil, err
	}

	lock := o.lockFor(shopDomain)
	lock.Lock()
	defer lock.Unlock()

	start := time.Now()
	syncID, err := o.tracker.Begin(shopDomain)
	if err != nil {
		return nil, err
	}

	o.logger.Info("Starting full sync %s for shop %s", syncID, shopDomain)

	fetcher := o.newClient(shopDomain, accessToken)

	var (
		cursor   string
		seenIDs  []string
		pages    int
		products int
		inserted int
		updated  int
	)

	for {
		page, fetchErr := fetcher.FetchPage(o.pageSize, cursor)
		if fetchErr != nil {
			o.track(syncID, models.SyncFailed, progressFor(products), fetchErr.Error())
			return nil, fetchErr
		}

		docs := MapPage(shopDomain, page.Edges)
		ins, upd, upsertErr := o.store.UpsertPage(shopDomain, docs)
		inserted += ins
		updated += upd
		if upsertErr != nil {
			o.track(syncID, models.SyncError, progressFor(products), upsertErr.Error())
			return nil, upsertErr
		}

		for i := range docs {
			seenIDs = append(seenIDs, docs[i].ProductID)
		}
		pages++
		products += len(docs)

		o.track(syncID, models.SyncInProgress, progressFor(products),
			fmt.Sprintf("processed %d products across %d pages", products, pages))

		if !page.HasNextPage {
			break
		}
		cursor = page.EndCursor
	}

	// Only a traversal that saw every page may prune.
	deleted, pruneErr := o.store.PruneMissing(shopDomain, seenIDs)
	if pruneErr != nil {
		o.track(syncID, models.SyncError, progressFor(products), pruneErr.Error())
		return nil, pruneErr
	}

	elapsed := time.Since(start)
	o.track(syncID, models.SyncCompleted, 100,
		fmt.Sprintf("completed: %d inserted, %d updated, %d pruned in %s", inserted, updated, deleted, elapsed.Round(time.Millisecond)))

	o.logger.Info("Full sync %s for shop %s done: %d products over %d pages", syncID, shopDomain, products, pages)

	return &Result{
		SyncID:   syncID,
		ShopName: shopDomain,
		Pages:    pages,
		Products: products,
		Inserted: inserted,
		Updated:  updated,
		Deleted:  deleted,
		Duration: elapsed,
	}, nil
}

func (o *Orchestrator) lockFor(shopDomain string) *stdsync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()
	lock, ok := o.shopLocks[shopDomain]
	if !ok {
		lock = &stdsync.Mutex{}
		o.shopLocks[shopDomain] = lock
	}
	return lock
}

// track records a status transition. The status row is a side channel;
// a failed write is logged, never fatal to the run.
func (o *Orchestrator) track(syncID string, state models.SyncState, progress int, message string) {
	if err := o.tracker.Update(syncID, state, progress, message); err != nil {
		o.logger.Error("Failed to update sync status %s: %v", syncID, err)
	}
}

// progressFor estimates completion from the processed count alone. The
// total is unknown until pagination ends, so this is a labeled guess that
// only ever grows; completion itself writes 100.
func progressFor(processed int) int {
	p := processed * 100 / (processed + 40)
	if p > 99 {
		p = 99
	}
	return p
}
