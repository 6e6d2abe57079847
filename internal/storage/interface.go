package storage

import "toolbelt/internal/models"

type Storage interface {
	AutoMigrate() error
	Close() error

	RecordTaskRun(run *models.TaskRun) error
	ListTaskRuns(kind string, limit int) ([]models.TaskRun, error)

	RecordDownload(download *models.Download) error
	ListDownloads(limit int) ([]models.Download, error)

	GetStats() (map[string]int64, error)
}
