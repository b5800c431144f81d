// Package api serves the dashboard core over HTTP for headless use.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/metaminer/metaminer/internal/blob"
	"github.com/metaminer/metaminer/internal/export"
	"github.com/metaminer/metaminer/internal/filter"
	"github.com/metaminer/metaminer/internal/render"
	"github.com/metaminer/metaminer/internal/session"
)

const shutdownTimeout = 5 * time.Second

// Server exposes filtering, chart images and snapshot saves
type Server struct {
	session    *session.Session
	dispatcher *render.Dispatcher
	exporter   export.Exporter
	logger     logr.Logger
	width      int
	height     int
	router     *gin.Engine
}

// Options configures the server
type Options struct {
	ChartWidth  int
	ChartHeight int
	Gatherer    prometheus.Gatherer // served on /metrics when set
	Exporter    export.Exporter     // serves /api/snapshots and /api/tasks when set
}

// NewServer creates the router. The session must have a saver for /api/save
// to succeed.
func NewServer(sess *session.Session, dispatcher *render.Dispatcher, opts Options, logger logr.Logger) *Server {
	s := &Server{
		session:    sess,
		dispatcher: dispatcher,
		exporter:   opts.Exporter,
		logger:     logger.WithName("api"),
		width:      opts.ChartWidth,
		height:     opts.ChartHeight,
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger(), corsMiddleware())

	router.GET("/healthcheck", healthCheckHandler)
	router.GET("/api/defaults", s.defaultsHandler)
	router.POST("/api/filter", s.filterHandler)
	router.POST("/api/charts/:id", s.chartHandler)
	router.POST("/api/save", s.saveHandler)
	if opts.Exporter != nil {
		router.GET("/api/snapshots", s.listSnapshotsHandler)
		router.GET("/api/snapshots/:key", s.getSnapshotHandler)
		router.DELETE("/api/snapshots/:key", s.deleteSnapshotHandler)
		router.GET("/api/tasks/:id", s.taskHandler)
	}
	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	s.router = router
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is done
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		s.logger.V(1).Info("request", "method", c.Request.Method, "path", c.FullPath(),
			"status", c.Writer.Status(), "duration", time.Since(started).String())
	}
}

func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) defaultsHandler(c *gin.Context) {
	base := s.session.Base()
	c.JSON(http.StatusOK, gin.H{
		"state":   filter.DefaultControls(base),
		"options": filter.StaticOptions(base),
	})
}

// bindState decodes the posted control state over the defaults, so a client
// only sends the controls it changed. An empty body means the defaults.
func (s *Server) bindState(c *gin.Context) (filter.ControlState, bool) {
	state := filter.DefaultControls(s.session.Base())
	if err := c.ShouldBindJSON(&state); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return state, false
	}
	if err := state.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return state, false
	}
	return state, true
}

func (s *Server) filterHandler(c *gin.Context) {
	state, ok := s.bindState(c)
	if !ok {
		return
	}
	update := s.session.Evaluate(state)
	c.JSON(http.StatusOK, gin.H{
		"genomeCount": update.Result.GenomeCount,
		"status":      update.Result.Status.Lines(),
		"options":     update.Result.Options,
		"selections":  update.Result.Selections,
		"steps":       update.Result.Steps,
		"state":       update.State,
	})
}

func (s *Server) chartHandler(c *gin.Context) {
	id := render.ChartID(c.Param("id"))
	state, ok := s.bindState(c)
	if !ok {
		return
	}
	update := s.session.Evaluate(state)

	fig, err := s.dispatcher.RenderOne(id, update.Result.View, update.State)
	if errors.Is(err, render.ErrUnknownChart) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	width := queryInt(c, "width", s.width)
	height := queryInt(c, "height", s.height)
	data, err := render.EncodePNG(fig, width, height)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

func (s *Server) saveHandler(c *gin.Context) {
	state, ok := s.bindState(c)
	if !ok {
		return
	}
	task, err := s.session.Save(c.Request.Context(), state)
	status := http.StatusOK
	if err != nil {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{
		"id":       task.ID,
		"message":  task.Message,
		"location": task.Location,
		"rows":     task.Rows,
	})
}

func (s *Server) listSnapshotsHandler(c *gin.Context) {
	infos, err := s.exporter.Snapshots(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": infos})
}

func (s *Server) getSnapshotHandler(c *gin.Context) {
	info, rc, err := s.exporter.Open(c.Request.Context(), c.Param("key"))
	if errors.Is(err, blob.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "snapshot not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rc.Close()

	contentType := info.ContentType
	if contentType == "" {
		contentType = export.ContentTypeTSV
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", info.Key))
	c.DataFromReader(http.StatusOK, info.Size, contentType, rc, nil)
}

func (s *Server) deleteSnapshotHandler(c *gin.Context) {
	deleted, err := s.exporter.Delete(c.Request.Context(), c.Param("key"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "snapshot not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) taskHandler(c *gin.Context) {
	task, ok := s.exporter.GetTask(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       task.ID,
		"key":      task.Key,
		"status":   task.Status.String(),
		"message":  task.Message,
		"location": task.Location,
		"rows":     task.Rows,
	})
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
