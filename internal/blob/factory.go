package blob

import (
	"context"
	"fmt"
)

// Config selects and configures a store
type Config struct {
	Driver Driver
	Root   string // filesystem root
	S3     S3Config
}

// Open creates the store named by cfg.Driver; an empty driver means filesystem
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverFilesystem, "":
		return NewFilesystem(cfg.Root)
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, cfg.Driver)
	}
}
