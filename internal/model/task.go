package model

import (
	"path"
	"strings"
	"time"
)

// ExportTask represents a single snapshot save of the filtered view
type ExportTask struct {
	ID         string
	Key        string // object key inside the snapshot store
	Location   string // absolute path or URL reported to the user
	Rows       int    // data rows written, header excluded
	Status     TaskStatus
	Message    string // user-visible acknowledgment
	LastError  string // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns how long the save took, or zero while it is running
func (et *ExportTask) Duration() time.Duration {
	if et.FinishedAt.IsZero() || et.StartedAt.IsZero() {
		return 0
	}
	return et.FinishedAt.Sub(et.StartedAt)
}

// GetDisplayName returns the snapshot file name without directories
func (et *ExportTask) GetDisplayName() string {
	name := et.Key
	if name == "" {
		name = et.Location
	}
	if name == "" {
		return et.ID
	}
	// Support both / and \ separators
	name = strings.ReplaceAll(name, "\\", "/")
	return path.Base(name)
}

// Succeeded reports whether the snapshot was stored
func (et *ExportTask) Succeeded() bool {
	return et.Status == TaskStatusCompleted
}
