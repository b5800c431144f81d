package config

import (
	"fyne.io/fyne/v2"

	"github.com/metaminer/metaminer/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDataFile      = "dataFile"
	KeyGeometryDir   = "geometryDir"
	KeySaveDirectory = "saveDirectory"
	KeyLogLevel      = "logLevel"
	KeyLogFile       = "logFile"
	KeyLanguage      = "language"
	KeyExportDriver  = "exportDriver"
	KeyS3Bucket      = "s3Bucket"
	KeyS3Region      = "s3Region"
	KeyS3Endpoint    = "s3Endpoint"
	KeyChartWidth    = "chartWidth"
	KeyChartHeight   = "chartHeight"
)

// Default values
const (
	DefaultDataFile     = "data/metadata.tsv"
	DefaultGeometryDir  = "data/geojsons"
	DefaultLogLevel     = "info"
	DefaultLanguage     = "system"
	DefaultExportDriver = "fs"
	DefaultChartWidth   = 640
	DefaultChartHeight  = 320
)

// Chart size limits in pixels
const (
	MinChartSize = 200
	MaxChartSize = 2000
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// stringWithDefault returns the stored value, persisting def on first read
func (s *Settings) stringWithDefault(key, def string) string {
	value := s.app.Preferences().String(key)
	if value == "" {
		s.app.Preferences().SetString(key, def)
		return def
	}
	return value
}

// GetDataFile returns the metadata table path
func (s *Settings) GetDataFile() string {
	return s.stringWithDefault(KeyDataFile, DefaultDataFile)
}

// SetDataFile sets the metadata table path
func (s *Settings) SetDataFile(path string) {
	s.app.Preferences().SetString(KeyDataFile, path)
}

// GetGeometryDir returns the directory holding <ISO3>_states.json files
func (s *Settings) GetGeometryDir() string {
	return s.stringWithDefault(KeyGeometryDir, DefaultGeometryDir)
}

// SetGeometryDir sets the geometry directory
func (s *Settings) SetGeometryDir(dir string) {
	s.app.Preferences().SetString(KeyGeometryDir, dir)
}

// GetSaveDirectory returns the snapshot directory used by the filesystem driver
func (s *Settings) GetSaveDirectory() string {
	return s.stringWithDefault(KeySaveDirectory, platform.DefaultSaveDir())
}

// SetSaveDirectory sets the snapshot directory
func (s *Settings) SetSaveDirectory(dir string) {
	s.app.Preferences().SetString(KeySaveDirectory, dir)
}

// GetLogLevel returns the configured log level
func (s *Settings) GetLogLevel() string {
	return s.stringWithDefault(KeyLogLevel, DefaultLogLevel)
}

// SetLogLevel sets the log level; unknown names fall back to the default
func (s *Settings) SetLogLevel(level string) {
	if !isOneOf(level, GetLogLevelOptions()) {
		level = DefaultLogLevel
	}
	s.app.Preferences().SetString(KeyLogLevel, level)
}

// GetLogFile returns the optional log file path
func (s *Settings) GetLogFile() string {
	return s.app.Preferences().String(KeyLogFile)
}

// SetLogFile sets the log file path; empty disables file logging
func (s *Settings) SetLogFile(path string) {
	s.app.Preferences().SetString(KeyLogFile, path)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	return s.stringWithDefault(KeyLanguage, DefaultLanguage)
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetExportDriver returns the snapshot store driver
func (s *Settings) GetExportDriver() string {
	return s.stringWithDefault(KeyExportDriver, DefaultExportDriver)
}

// SetExportDriver sets the snapshot store driver; unknown names fall back to the default
func (s *Settings) SetExportDriver(driver string) {
	if !isOneOf(driver, GetExportDriverOptions()) {
		driver = DefaultExportDriver
	}
	s.app.Preferences().SetString(KeyExportDriver, driver)
}

// GetS3Bucket returns the snapshot bucket
func (s *Settings) GetS3Bucket() string {
	return s.app.Preferences().String(KeyS3Bucket)
}

// SetS3Bucket sets the snapshot bucket
func (s *Settings) SetS3Bucket(bucket string) {
	s.app.Preferences().SetString(KeyS3Bucket, bucket)
}

// GetS3Region returns the bucket region
func (s *Settings) GetS3Region() string {
	return s.app.Preferences().String(KeyS3Region)
}

// SetS3Region sets the bucket region
func (s *Settings) SetS3Region(region string) {
	s.app.Preferences().SetString(KeyS3Region, region)
}

// GetS3Endpoint returns the custom S3 endpoint, e.g. a MinIO URL
func (s *Settings) GetS3Endpoint() string {
	return s.app.Preferences().String(KeyS3Endpoint)
}

// SetS3Endpoint sets the custom S3 endpoint
func (s *Settings) SetS3Endpoint(endpoint string) {
	s.app.Preferences().SetString(KeyS3Endpoint, endpoint)
}

// GetChartWidth returns the chart raster width
func (s *Settings) GetChartWidth() int {
	return s.intWithDefault(KeyChartWidth, DefaultChartWidth)
}

// SetChartWidth sets the chart raster width
func (s *Settings) SetChartWidth(width int) {
	s.app.Preferences().SetInt(KeyChartWidth, clampChartSize(width))
}

// GetChartHeight returns the chart raster height
func (s *Settings) GetChartHeight() int {
	return s.intWithDefault(KeyChartHeight, DefaultChartHeight)
}

// SetChartHeight sets the chart raster height
func (s *Settings) SetChartHeight(height int) {
	s.app.Preferences().SetInt(KeyChartHeight, clampChartSize(height))
}

func (s *Settings) intWithDefault(key string, def int) int {
	value := s.app.Preferences().Int(key)
	if value <= 0 {
		s.app.Preferences().SetInt(key, def)
		return def
	}
	return value
}

func clampChartSize(v int) int {
	if v < MinChartSize {
		return MinChartSize
	}
	if v > MaxChartSize {
		return MaxChartSize
	}
	return v
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetLogLevelOptions returns the accepted log levels
func GetLogLevelOptions() []string {
	return []string{"debug", "info", "warn", "error"}
}

// GetExportDriverOptions returns the snapshot store drivers
func GetExportDriverOptions() []string {
	return []string{"fs", "s3", "memory"}
}

// Options returns the settings as the options shared with the headless entry point
func (s *Settings) Options() Options {
	opts := DefaultOptions()
	opts.DataFile = s.GetDataFile()
	opts.GeometryDir = s.GetGeometryDir()
	opts.SaveDirectory = s.GetSaveDirectory()
	opts.LogLevel = s.GetLogLevel()
	opts.LogFile = s.GetLogFile()
	opts.ExportDriver = s.GetExportDriver()
	opts.S3Bucket = s.GetS3Bucket()
	opts.S3Region = s.GetS3Region()
	opts.S3Endpoint = s.GetS3Endpoint()
	opts.ChartWidth = s.GetChartWidth()
	opts.ChartHeight = s.GetChartHeight()
	opts.Watch = true
	return opts
}

func isOneOf(value string, options []string) bool {
	for _, o := range options {
		if value == o {
			return true
		}
	}
	return false
}
