package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Task kinds recorded in the catalog.
const (
	TaskBackup   = "backup"
	TaskClean    = "clean"
	TaskOrganize = "organize"
)

// Download kinds recorded in the catalog.
const (
	DownloadYouTube = "youtube"
	DownloadTFTP    = "tftp"
	DownloadHTTP    = "http"
)

// Outcome of a recorded run.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = []string{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return nil
		}
		bytes = []byte(str)
	}

	return json.Unmarshal(bytes, s)
}

// TaskRun records one execution of a file task (backup, clean or organize).
type TaskRun struct {
	ID          uint          `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	Kind        string        `gorm:"index;not null" json:"kind"`
	Source      string        `gorm:"not null" json:"source"`
	Destination string        `json:"destination,omitempty"`
	Detail      string        `json:"detail,omitempty"`
	Excludes    StringSlice   `gorm:"type:text" json:"excludes,omitempty"`
	Files       int           `gorm:"default:0" json:"files"`
	Bytes       int64         `gorm:"default:0" json:"bytes"`
	Duration    time.Duration `json:"duration"`
	Status      string        `gorm:"index;default:ok" json:"status"`
	Error       string        `json:"error,omitempty"`
}

// Download records one media or file retrieval.
type Download struct {
	ID        uint          `gorm:"primarykey" json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	URL       string        `gorm:"not null" json:"url"`
	Path      string        `json:"path,omitempty"`
	Kind      string        `gorm:"index" json:"kind"`
	Bytes     int64         `gorm:"default:0" json:"bytes"`
	Duration  time.Duration `json:"duration"`
	Status    string        `gorm:"index;default:ok" json:"status"`
	Error     string        `json:"error,omitempty"`
}
