package storage

import (
	"fmt"

	"toolbelt/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(cfg *Config) (*PostgresStore, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) AutoMigrate() error {
	return s.db.AutoMigrate(&models.TaskRun{}, &models.Download{})
}

func (s *PostgresStore) RecordTaskRun(run *models.TaskRun) error {
	return s.db.Create(run).Error
}

func (s *PostgresStore) ListTaskRuns(kind string, limit int) ([]models.TaskRun, error) {
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

func (s *PostgresStore) RecordDownload(download *models.Download) error {
	return s.db.Create(download).Error
}

func (s *PostgresStore) ListDownloads(limit int) ([]models.Download, error) {
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

func (s *PostgresStore) GetStats() (map[string]int64, error) {
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

func (s *PostgresStore) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
