package export

import (
	"context"
	"io"

	"github.com/metaminer/metaminer/internal/blob"
	"github.com/metaminer/metaminer/internal/model"
)

// Exporter defines the interface for the snapshot service.
type Exporter interface {
	SetUpdateCallback(func(model.ExportTask))
	Save(ctx context.Context, view *model.Table) (model.ExportTask, error)
	GetTask(taskID string) (model.ExportTask, bool)
	Snapshots(ctx context.Context) ([]blob.Info, error)
	Open(ctx context.Context, key string) (blob.Info, io.ReadCloser, error)
	Delete(ctx context.Context, key string) (bool, error)
}

var _ Exporter = (*Service)(nil)
