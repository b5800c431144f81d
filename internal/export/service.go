// Package export writes the filtered view to the snapshot store.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/metaminer/metaminer/internal/blob"
	"github.com/metaminer/metaminer/internal/dataset"
	"github.com/metaminer/metaminer/internal/model"
)

// Snapshot naming
const (
	SnapshotPrefix     = "filtered_data_"
	SnapshotExtension  = ".tsv"
	SnapshotTimeLayout = "2006-01-02_15-04-05.000000"
	ContentTypeTSV     = "text/tab-separated-values"
	TaskIDPrefix       = "export-"
)

// Service saves snapshots of the filtered view. Saves are never retried; a
// failure is reported through the task message.
type Service struct {
	store      blob.Store
	logger     logr.Logger
	now        func() time.Time
	tasks      map[string]*model.ExportTask
	tasksMutex sync.RWMutex
	onUpdate   func(model.ExportTask) // callback for UI updates
}

// NewService creates a new export service writing into store
func NewService(store blob.Store, logger logr.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.WithName("export"),
		now:    time.Now,
		tasks:  make(map[string]*model.ExportTask),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(model.ExportTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// SnapshotName returns the key a snapshot taken at now is stored under
func SnapshotName(now time.Time) string {
	return SnapshotPrefix + now.Format(SnapshotTimeLayout) + SnapshotExtension
}

// Save writes view as a tab-separated file with one header row. The
// returned task is the acknowledgment; on failure it carries the error
// message and the error is returned as well.
func (s *Service) Save(ctx context.Context, view *model.Table) (model.ExportTask, error) {
	started := s.now()
	task := &model.ExportTask{
		ID:        generateTaskID(),
		Key:       SnapshotName(started),
		Rows:      view.Len(),
		Status:    model.TaskStatusWriting,
		StartedAt: started,
	}

	s.tasksMutex.Lock()
	s.tasks[task.ID] = task
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	data, err := dataset.Encode(view)
	if err != nil {
		return s.fail(task, err)
	}
	info, err := s.store.Put(ctx, task.Key, bytes.NewReader(data), blob.PutOptions{ContentType: ContentTypeTSV})
	if err != nil {
		return s.fail(task, err)
	}

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusCompleted
	task.Location = info.URL
	task.Message = fmt.Sprintf("File saved successfully at %s", info.URL)
	task.FinishedAt = s.now()
	result := *task
	s.tasksMutex.Unlock()

	s.logger.Info("snapshot saved", "location", result.Location, "rows", result.Rows, "bytes", info.Size)
	s.notifyUpdate(task)
	return result, nil
}

// GetTask returns an export task by ID
func (s *Service) GetTask(taskID string) (model.ExportTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	if !exists {
		return model.ExportTask{}, false
	}
	return *task, true
}

// Snapshots lists the snapshots already in the store
func (s *Service) Snapshots(ctx context.Context) ([]blob.Info, error) {
	infos, err := s.store.List(ctx, SnapshotPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return infos, nil
}

// Open returns a stored snapshot. Keys outside the snapshot namespace are
// reported as not found.
func (s *Service) Open(ctx context.Context, key string) (blob.Info, io.ReadCloser, error) {
	if !IsSnapshotKey(key) {
		return blob.Info{}, nil, blob.ErrNotFound
	}
	return s.store.Get(ctx, key)
}

// Delete removes a stored snapshot and reports whether it existed
func (s *Service) Delete(ctx context.Context, key string) (bool, error) {
	if !IsSnapshotKey(key) {
		return false, nil
	}
	deleted, err := s.store.Delete(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", key, err)
	}
	if deleted {
		s.logger.Info("snapshot deleted", "key", key)
	}
	return deleted, nil
}

// IsSnapshotKey reports whether key names a snapshot written by Save
func IsSnapshotKey(key string) bool {
	return strings.HasPrefix(key, SnapshotPrefix) && strings.HasSuffix(key, SnapshotExtension) &&
		!strings.ContainsAny(key, "/\\")
}

// fail sets an error state for a task
func (s *Service) fail(task *model.ExportTask, err error) (model.ExportTask, error) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusError
	task.LastError = err.Error()
	task.Message = fmt.Sprintf("Error saving file: %v", err)
	task.FinishedAt = s.now()
	result := *task
	s.tasksMutex.Unlock()

	s.logger.Error(err, "snapshot save failed", "key", result.Key)
	s.notifyUpdate(task)
	return result, fmt.Errorf("failed to save %s: %w", result.Key, err)
}

// notifyUpdate calls the update callback with a copy of the task
func (s *Service) notifyUpdate(task *model.ExportTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	snapshot := *task
	s.tasksMutex.RUnlock()
	if callback != nil {
		callback(snapshot)
	}
}

// generateTaskID uses UUID v7 so IDs sort by creation time
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
