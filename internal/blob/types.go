// Package blob stores dataset snapshots in a filesystem directory, an
// S3-compatible bucket, or process memory.
package blob

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

// Driver identifies a storage backend
type Driver string

const (
	DriverFilesystem Driver = "fs"     // local directory (default)
	DriverS3         Driver = "s3"     // S3 / MinIO compatible
	DriverMemory     Driver = "memory" // in-memory (tests)
)

// Drivers lists every supported driver
func Drivers() []Driver {
	return []Driver{DriverFilesystem, DriverS3, DriverMemory}
}

// ParseDriver maps a configuration string to a Driver
func ParseDriver(s string) (Driver, error) {
	d := Driver(strings.ToLower(strings.TrimSpace(s)))
	if d == "" {
		return DriverFilesystem, nil
	}
	for _, known := range Drivers() {
		if d == known {
			return d, nil
		}
	}
	return "", ErrUnsupportedDriver
}

var (
	// ErrNotFound is returned when a key does not exist
	ErrNotFound = errors.New("blob: not found")
	// ErrExists is returned by Put when the key is already taken
	ErrExists = errors.New("blob: already exists")
	// ErrUnsupportedDriver is returned for an unknown driver name
	ErrUnsupportedDriver = errors.New("blob: unsupported driver")
)

// PutOptions specifies optional parameters for Put
type PutOptions struct {
	ContentType string
}

// Info describes a stored blob. URL is where a user can find it: a file path
// for the filesystem driver, an s3:// URL for S3.
type Info struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size_bytes"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified"`
	URL          string    `json:"url,omitempty"`
}

// Store is the small object-store surface the exporter needs. Put never
// overwrites an existing key.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Delete(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}
