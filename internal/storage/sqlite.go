package storage

import (
	"fmt"
	"path/filepath"

	"toolbelt/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteStore provides SQLite-based storage for the default local mode
type SQLiteStore struct {
	db *gorm.DB
}

func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	dbPath := filepath.Join(dataDir, "toolbelt.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	store := &SQLiteStore{db: db}

	// Run migrations
	if err := store.AutoMigrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) AutoMigrate() error {
	return s.db.AutoMigrate(&models.TaskRun{}, &models.Download{})
}

// Task run operations
func (s *SQLiteStore) RecordTaskRun(run *models.TaskRun) error {
	return s.db.Create(run).Error
}

func (s *SQLiteStore) ListTaskRuns(kind string, limit int) ([]models.TaskRun, error) {
	var runs []models.TaskRun
	query := s.db.Order("created_at DESC")
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// Download operations
func (s *SQLiteStore) RecordDownload(download *models.Download) error {
	return s.db.Create(download).Error
}

func (s *SQLiteStore) ListDownloads(limit int) ([]models.Download, error) {
	var downloads []models.Download
	query := s.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&downloads).Error; err != nil {
		return nil, err
	}
	return downloads, nil
}

// GetStats returns counts of recorded task runs and downloads
func (s *SQLiteStore) GetStats() (map[string]int64, error) {
	stats := make(map[string]int64)

	var totalRuns, failedRuns, totalDownloads, failedDownloads int64

	s.db.Model(&models.TaskRun{}).Count(&totalRuns)
	s.db.Model(&models.TaskRun{}).Where("status = ?", models.StatusError).Count(&failedRuns)
	s.db.Model(&models.Download{}).Count(&totalDownloads)
	s.db.Model(&models.Download{}).Where("status = ?", models.StatusError).Count(&failedDownloads)

	stats["task_runs"] = totalRuns
	stats["failed_task_runs"] = failedRuns
	stats["downloads"] = totalDownloads
	stats["failed_downloads"] = failedDownloads

	for _, kind := range []string{models.TaskBackup, models.TaskClean, models.TaskOrganize} {
		var count int64
		s.db.Model(&models.TaskRun{}).Where("kind = ?", kind).Count(&count)
		stats[kind+"_runs"] = count
	}

	return stats, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
