package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"toolbelt/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestNewSQLiteStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewSQLiteStore(dir)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(dir, "toolbelt.db"))
	assert.NoError(t, err, "expected database file to be created")

	assert.NoError(t, store.AutoMigrate(), "migrations should be idempotent")
}

func TestRecordAndListTaskRuns(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	runs := []*models.TaskRun{
		{
			CreatedAt:   base,
			Kind:        models.TaskBackup,
			Source:      "/home/user/docs",
			Destination: "/backups/docs_20260801_120000.zip",
			Excludes:    models.StringSlice{"*.log", "node_modules"},
			Files:       42,
			Bytes:       1 << 20,
			Duration:    3 * time.Second,
			Status:      models.StatusOK,
		},
		{
			CreatedAt: base.Add(time.Minute),
			Kind:      models.TaskClean,
			Source:    "/tmp/scratch",
			Files:     7,
			Status:    models.StatusOK,
		},
		{
			CreatedAt: base.Add(2 * time.Minute),
			Kind:      models.TaskOrganize,
			Source:    "/home/user/Downloads",
			Status:    models.StatusError,
			Error:     "permission denied",
		},
	}
	for _, run := range runs {
		require.NoError(t, store.RecordTaskRun(run))
	}

	t.Run("all newest first", func(t *testing.T) {
		got, err := store.ListTaskRuns("", 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, models.TaskOrganize, got[0].Kind)
		assert.Equal(t, models.TaskClean, got[1].Kind)
		assert.Equal(t, models.TaskBackup, got[2].Kind)
	})

	t.Run("filter by kind", func(t *testing.T) {
		got, err := store.ListTaskRuns(models.TaskBackup, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "/home/user/docs", got[0].Source)
		assert.Equal(t, models.StringSlice{"*.log", "node_modules"}, got[0].Excludes)
		assert.Equal(t, 3*time.Second, got[0].Duration)
	})

	t.Run("limit", func(t *testing.T) {
		got, err := store.ListTaskRuns("", 2)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestRecordAndListDownloads(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	downloads := []*models.Download{
		{
			CreatedAt: base,
			URL:       "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Path:      "/downloads/video.mp4",
			Kind:      models.DownloadYouTube,
			Bytes:     10 << 20,
			Status:    models.StatusOK,
		},
		{
			CreatedAt: base.Add(time.Minute),
			URL:       "tftp://192.168.0.10/pxelinux.0",
			Kind:      models.DownloadTFTP,
			Status:    models.StatusError,
			Error:     "timeout waiting for DATA",
		},
	}
	for _, dl := range downloads {
		require.NoError(t, store.RecordDownload(dl))
	}

	got, err := store.ListDownloads(0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.DownloadTFTP, got[0].Kind)
	assert.Equal(t, models.DownloadYouTube, got[1].Kind)
	assert.Equal(t, int64(10<<20), got[1].Bytes)

	got, err = store.ListDownloads(1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGetStats(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.RecordTaskRun(&models.TaskRun{Kind: models.TaskBackup, Source: "/a", Status: models.StatusOK}))
	require.NoError(t, store.RecordTaskRun(&models.TaskRun{Kind: models.TaskBackup, Source: "/b", Status: models.StatusError, Error: "disk full"}))
	require.NoError(t, store.RecordTaskRun(&models.TaskRun{Kind: models.TaskClean, Source: "/c", Status: models.StatusOK}))
	require.NoError(t, store.RecordDownload(&models.Download{URL: "https://example.com/f.bin", Kind: models.DownloadHTTP, Status: models.StatusOK}))

	stats, err := store.GetStats()
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats["task_runs"])
	assert.Equal(t, int64(1), stats["failed_task_runs"])
	assert.Equal(t, int64(2), stats["backup_runs"])
	assert.Equal(t, int64(1), stats["clean_runs"])
	assert.Equal(t, int64(0), stats["organize_runs"])
	assert.Equal(t, int64(1), stats["downloads"])
	assert.Equal(t, int64(0), stats["failed_downloads"])
}
