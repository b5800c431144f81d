package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/metaminer/metaminer/internal/blob"
	"github.com/metaminer/metaminer/internal/logging"
	"github.com/metaminer/metaminer/internal/platform"
)

// Execution modes of the headless binary
const (
	ModeServe  = "serve"
	ModeExport = "export"
)

// DefaultListenAddr is the API listen address
const DefaultListenAddr = ":8050"

// Options is the configuration both entry points are wired from
type Options struct {
	DataFile      string
	GeometryDir   string
	SaveDirectory string
	LogLevel      string
	LogFile       string
	Development   bool
	ExportDriver  string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3PathStyle   bool
	ChartWidth    int
	ChartHeight   int
	Watch         bool

	// headless only
	Mode       string
	ListenAddr string
	StateFile  string
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		DataFile:      DefaultDataFile,
		GeometryDir:   DefaultGeometryDir,
		SaveDirectory: platform.DefaultSaveDir(),
		LogLevel:      DefaultLogLevel,
		ExportDriver:  DefaultExportDriver,
		ChartWidth:    DefaultChartWidth,
		ChartHeight:   DefaultChartHeight,
		Mode:          ModeServe,
		ListenAddr:    DefaultListenAddr,
	}
}

// BindFlags registers every option on fs and returns the struct the parsed
// values land in.
func BindFlags(fs *pflag.FlagSet) *Options {
	opts := DefaultOptions()
	fs.StringVar(&opts.Mode, "mode", opts.Mode, "Execution mode. Valid options are serve and export")
	fs.StringVar(&opts.DataFile, "data-file", opts.DataFile, "Path to the genome metadata table (TSV, or CSV by extension)")
	fs.StringVar(&opts.GeometryDir, "geometry-dir", opts.GeometryDir, "Directory containing <ISO3>_states.json region files")
	fs.StringVar(&opts.SaveDirectory, "save-dir", opts.SaveDirectory, "Directory snapshots are written to when the export driver is fs")
	fs.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level: debug, info, warn or error")
	fs.StringVar(&opts.LogFile, "log-path", opts.LogFile, "Name of a file to send logs to in addition to stderr")
	fs.BoolVar(&opts.Development, "log-development", opts.Development, "Use human readable console logs")
	fs.StringVar(&opts.ExportDriver, "export-driver", opts.ExportDriver, "Snapshot store: fs, s3 or memory")
	fs.StringVar(&opts.S3Bucket, "s3-bucket", opts.S3Bucket, "Bucket for the s3 export driver")
	fs.StringVar(&opts.S3Region, "s3-region", opts.S3Region, "Region for the s3 export driver")
	fs.StringVar(&opts.S3Endpoint, "s3-endpoint", opts.S3Endpoint, "Custom S3 endpoint, e.g. a MinIO URL")
	fs.BoolVar(&opts.S3PathStyle, "s3-path-style", opts.S3PathStyle, "Use path-style S3 addressing")
	fs.IntVar(&opts.ChartWidth, "chart-width", opts.ChartWidth, "Width of rendered chart images")
	fs.IntVar(&opts.ChartHeight, "chart-height", opts.ChartHeight, "Height of rendered chart images")
	fs.BoolVar(&opts.Watch, "watch", opts.Watch, "Reload the data file when it changes")
	fs.StringVar(&opts.ListenAddr, "listen-address", opts.ListenAddr, "Address the API listens on in serve mode")
	fs.StringVar(&opts.StateFile, "state-file", opts.StateFile, "JSON control state applied in export mode; defaults are used when empty")
	return &opts
}

// Validate checks the option values
func (o Options) Validate() error {
	var errs []error
	if o.DataFile == "" {
		errs = append(errs, errors.New("data file is required"))
	}
	if o.Mode != ModeServe && o.Mode != ModeExport {
		errs = append(errs, fmt.Errorf("unknown mode %q", o.Mode))
	}
	if _, err := logging.ParseLevel(o.LogLevel); err != nil {
		errs = append(errs, err)
	}
	driver, err := blob.ParseDriver(o.ExportDriver)
	if err != nil {
		errs = append(errs, fmt.Errorf("%w: %q", err, o.ExportDriver))
	}
	if driver == blob.DriverS3 && o.S3Bucket == "" {
		errs = append(errs, errors.New("s3 export driver requires a bucket"))
	}
	if o.ChartWidth <= 0 || o.ChartHeight <= 0 {
		errs = append(errs, fmt.Errorf("invalid chart size %dx%d", o.ChartWidth, o.ChartHeight))
	}
	return errors.Join(errs...)
}

// LoggingOptions returns the logger configuration
func (o Options) LoggingOptions() logging.Options {
	return logging.Options{Level: o.LogLevel, File: o.LogFile, Development: o.Development}
}

// BlobConfig returns the snapshot store configuration
func (o Options) BlobConfig() blob.Config {
	driver, _ := blob.ParseDriver(o.ExportDriver)
	return blob.Config{
		Driver: driver,
		Root:   o.SaveDirectory,
		S3: blob.S3Config{
			Bucket:    o.S3Bucket,
			Region:    o.S3Region,
			Endpoint:  o.S3Endpoint,
			PathStyle: o.S3PathStyle,
		},
	}
}
