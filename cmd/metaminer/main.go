// Command metaminer runs the genome metadata filters without a desktop
// session: as an HTTP API (serve) or as a one-shot snapshot (export).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"

	"github.com/metaminer/metaminer/internal/api"
	"github.com/metaminer/metaminer/internal/blob"
	"github.com/metaminer/metaminer/internal/config"
	"github.com/metaminer/metaminer/internal/dataset"
	"github.com/metaminer/metaminer/internal/export"
	"github.com/metaminer/metaminer/internal/filter"
	"github.com/metaminer/metaminer/internal/logging"
	"github.com/metaminer/metaminer/internal/render"
	"github.com/metaminer/metaminer/internal/session"
)

var version = "dev"

func main() {
	opts := config.BindFlags(pflag.CommandLine)
	pflag.Parse()

	if err := opts.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid flags: %v\n", err)
		os.Exit(2)
	}

	logger, flush, err := logging.New(opts.LoggingOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *opts, logger); err != nil {
		logger.Error(err, "metaminer failed", "mode", opts.Mode)
		flush()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts config.Options, logger logr.Logger) error {
	logger.Info("MetaMiner starting", "version", version, "mode", opts.Mode, "dataFile", opts.DataFile)

	base, err := dataset.Load(opts.DataFile)
	if err != nil {
		return err
	}

	store, err := blob.Open(ctx, opts.BlobConfig())
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var exporter export.Exporter = export.NewService(store, logger)
	dispatcher := render.NewDispatcher(dataset.NewGeometry(opts.GeometryDir), logger)
	sess := session.New(base, session.Config{
		Driver:     filter.NewDriver(logger),
		Dispatcher: dispatcher,
		Saver:      exporter,
		Metrics:    session.NewMetrics(reg),
	}, logger)

	switch opts.Mode {
	case config.ModeServe:
		return serve(ctx, opts, sess, dispatcher, exporter, reg, logger)
	case config.ModeExport:
		return exportOnce(ctx, opts, sess, logger)
	default:
		return fmt.Errorf("unknown execution mode %q", opts.Mode)
	}
}

func serve(ctx context.Context, opts config.Options, sess *session.Session, dispatcher *render.Dispatcher, exporter export.Exporter, reg *prometheus.Registry, logger logr.Logger) error {
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

	server := api.NewServer(sess, dispatcher, api.Options{
		ChartWidth:  opts.ChartWidth,
		ChartHeight: opts.ChartHeight,
		Gatherer:    reg,
		Exporter:    exporter,
	}, logger)
	return server.Run(ctx, opts.ListenAddr)
}

func exportOnce(ctx context.Context, opts config.Options, sess *session.Session, logger logr.Logger) error {
	state, err := loadState(opts.StateFile, sess.Base())
	if err != nil {
		return err
	}

	task, err := sess.Save(ctx, state)
	if err != nil {
		return err
	}
	logger.Info("snapshot saved", "location", task.Location, "rows", task.Rows, "duration", task.Duration().String())
	fmt.Println(task.Message)
	return nil
}
