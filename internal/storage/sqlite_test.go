package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickbook/tickbook/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestSaveAndListSnapshots(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	records := []model.Record{
		{
			Path:           "Work/2024-03-04 Alpha - Beta II.md",
			Hierarchy:      "Work",
			Project:        "Alpha",
			Subproject:     "Beta",
			SubprojectFull: "Beta II",
			Duration:       2.5,
			Date:           &day,
		},
		{
			Path:           "(Work) Standup.md",
			Hierarchy:      "Work",
			Project:        "Standup",
			Subproject:     model.NoSubproject,
			SubprojectFull: model.NoSubproject,
			Duration:       0.5,
			Recurrence: &model.Recurrence{
				StartRecur: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				EndRecur:   &end,
				Days:       model.ParseWeekdaySet([]string{"M", "W", "F"}),
			},
		},
	}
	errs := []model.ParseError{
		{File: "randomfile.md", Path: "randomfile.md", Reason: model.ReasonFilenameMismatch},
	}

	id, err := store.SaveSnapshot(ctx, "/vault/activities", records, errs, 14.5)
	require.NoError(t, err)
	assert.Positive(t, id)

	snapshots, err := store.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)

	info := snapshots[0]
	assert.Equal(t, id, info.ID)
	assert.Equal(t, "/vault/activities", info.Folder)
	assert.Equal(t, 2, info.RecordCount)
	assert.Equal(t, 1, info.ErrorCount)
	assert.InDelta(t, 14.5, info.TotalHours, 1e-9)
}

func TestListSnapshotsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveSnapshot(ctx, "first", nil, nil, 0)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = store.SaveSnapshot(ctx, "second", nil, nil, 0)
	require.NoError(t, err)

	snapshots, err := store.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, "second", snapshots[0].Folder)
	assert.Equal(t, "first", snapshots[1].Folder)
}

func TestNewRejectsEmptyPath(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Migrate(context.Background()))
}
