package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/go-logr/logr"

	"github.com/metaminer/metaminer/internal/blob"
	"github.com/metaminer/metaminer/internal/config"
	"github.com/metaminer/metaminer/internal/dataset"
	"github.com/metaminer/metaminer/internal/export"
	"github.com/metaminer/metaminer/internal/filter"
	"github.com/metaminer/metaminer/internal/logging"
	"github.com/metaminer/metaminer/internal/model"
	"github.com/metaminer/metaminer/internal/platform"
	"github.com/metaminer/metaminer/internal/render"
	"github.com/metaminer/metaminer/internal/session"
	"github.com/metaminer/metaminer/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "org.metaminer.dashboard"
	AppName = "MetaMiner"
)

func main() {
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewDashboardTheme())

	settings := config.NewSettings(myApp)
	opts := settings.Options()

	logger, flush, err := logging.New(opts.LoggingOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer flush()
	logger.Info("MetaMiner starting", "version", version, "dataFile", opts.DataFile)

	base, err := dataset.Load(opts.DataFile)
	if err != nil {
		fatal(logger, flush, err, "Error loading metadata", "path", opts.DataFile)
	}

	if opts.ExportDriver == string(blob.DriverFilesystem) {
		if err := platform.CreateDirectoryIfNotExists(opts.SaveDirectory); err != nil {
			logger.Error(err, "failed to ensure save directory", "path", opts.SaveDirectory)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := blob.Open(ctx, opts.BlobConfig())
	if err != nil {
		fatal(logger, flush, err, "Error opening snapshot store", "driver", opts.ExportDriver)
	}
	var exporter export.Exporter = export.NewService(store, logger)
	exporter.SetUpdateCallback(func(task model.ExportTask) {
		logger.V(1).Info("export task updated", "id", task.ID, "status", task.Status.String())
	})

	sess := session.New(base, session.Config{
		Driver:     filter.NewDriver(logger),
		Dispatcher: render.NewDispatcher(dataset.NewGeometry(opts.GeometryDir), logger),
		Saver:      exporter,
	}, logger)
	sess.Start(ctx)
	defer sess.Close()

	if opts.Watch {
		watcher := dataset.NewWatcher(opts.DataFile, logger, sess.ReplaceBase)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Error(err, "metadata watcher stopped")
			}
		}()
	}

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	ui.NewDashboard(myWindow, myApp, ui.Options{
		Session: sess,
		Logger:  logger,
		Load:    dataset.Load,
	})

	myWindow.ShowAndRun()
}

// exit is replaced in tests
var exit = os.Exit

// fatal logs err and flushes the log sinks before exiting
func fatal(logger logr.Logger, flush func(), err error, msg string, keysAndValues ...any) {
	logger.Error(err, msg, keysAndValues...)
	flush()
	exit(1)
}
