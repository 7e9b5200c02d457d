package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsync/internal/models"
)

func TestTrackerLifecycle(t *testing.T) {
	db := newTestDB(t)
	tracker := NewTracker(db)

	syncID, err := tracker.Begin("demo")
	require.NoError(t, err)
	require.NotEmpty(t, syncID)

	status, err := tracker.Get(syncID)
	require.NoError(t, err)
	assert.Equal(t, "demo", status.ShopName)
	assert.Equal(t, models.SyncStarted, status.Status)
	assert.Equal(t, 0, status.Progress)
	assert.False(t, status.StartedAt.IsZero())

	// Updates mutate the row in place under the same id.
	require.NoError(t, tracker.Update(syncID, models.SyncInProgress, 42, "processed 28 products across 1 pages"))
	status, err = tracker.Get(syncID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncInProgress, status.Status)
	assert.Equal(t, 42, status.Progress)

	require.NoError(t, tracker.Update(syncID, models.SyncCompleted, 100, "completed"))
	status, err = tracker.Get(syncID)
	require.NoError(t, err)
	assert.True(t, status.Status.Terminal())

	var count int64
	require.NoError(t, db.Model(&models.SyncStatus{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTrackerListByShop(t *testing.T) {
	db := newTestDB(t)
	tracker := NewTracker(db)

	first, err := tracker.Begin("demo")
	require.NoError(t, err)
	second, err := tracker.Begin("demo")
	require.NoError(t, err)
	_, err = tracker.Begin("other")
	require.NoError(t, err)

	statuses, err := tracker.ListByShop("demo", 0)
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	ids := []string{statuses[0].SyncID, statuses[1].SyncID}
	assert.Contains(t, ids, first)
	assert.Contains(t, ids, second)
}
