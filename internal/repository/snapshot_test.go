package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyair/internal/models"
	"dailyair/internal/storage"
)

func testSnapshot(t *testing.T) Snapshot {
	return Snapshot{
		LastUpdate: "2024-06-30",
		Catalog:    testCatalog(),
		WorkingDays: []models.RawDocument{
			hourDoc(t, "BREST Mace", "NO2", 7, 21, 25, 30).Encode(),
			hourDoc(t, "BREST Mace", "NO2", 8, 28).Encode(),
		},
		Weekends: []models.RawDocument{
			hourDoc(t, "BREST Mace", "NO2", 7, 12).Encode(),
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	client, err := storage.NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, SaveSnapshot(ctx, client, "snapshot.json", testSnapshot(t)))

	store, err := LoadSnapshot(ctx, client, "snapshot.json")
	require.NoError(t, err)

	docs, err := store.FetchHistory(ctx, "BREST Mace", "NO2", models.WorkingDay)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Len(t, docs[0].History, 3)
	assert.Equal(t, 30.0, docs[0].History[2].Value)

	cities, err := store.Cities(ctx, "FINISTERE")
	require.NoError(t, err)
	assert.Equal(t, []string{"BREST"}, cities)
}

func TestLoadLatestSnapshot(t *testing.T) {
	ctx := context.Background()
	client, err := storage.NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)

	older := testSnapshot(t)
	older.Catalog.LastUpdate = "2024-03-31"
	require.NoError(t, SaveSnapshot(ctx, client, "snapshots/2024/03/air-quality-2024-03-31.json", older))
	require.NoError(t, SaveSnapshot(ctx, client, "snapshots/2024/06/air-quality-2024-06-30.json", testSnapshot(t)))

	store, err := LoadSnapshot(ctx, client, "snapshots/")
	require.NoError(t, err)

	last, err := store.LastUpdate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-30", last.Format(models.DateLayout))
}

func TestLoadSnapshotMissing(t *testing.T) {
	ctx := context.Background()
	client, err := storage.NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)

	_, err = LoadSnapshot(ctx, client, "snapshot.json")
	assert.ErrorIs(t, err, storage.ErrNotExist)

	_, err = LoadSnapshot(ctx, client, "snapshots/")
	assert.ErrorIs(t, err, storage.ErrNotExist)
}

func TestLoadSnapshotIntegrityError(t *testing.T) {
	ctx := context.Background()
	client, err := storage.NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)

	snap := testSnapshot(t)
	snap.WorkingDays[1].History.Dates = append(snap.WorkingDays[1].History.Dates, "2024-06-02")
	require.NoError(t, SaveSnapshot(ctx, client, "snapshot.json", snap))

	_, err = LoadSnapshot(ctx, client, "snapshot.json")
	var integrity *models.DataIntegrityError
	require.True(t, errors.As(err, &integrity))
	assert.Equal(t, 8, integrity.Hour)
}

func TestSnapshotLastUpdateFallback(t *testing.T) {
	snap := testSnapshot(t)
	snap.Catalog.LastUpdate = ""

	store, err := snap.Store()
	require.NoError(t, err)
	last, err := store.LastUpdate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-06-30", last.Format(models.DateLayout))
}
