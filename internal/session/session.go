package session

import (
	"context"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/metaminer/metaminer/internal/filter"
	"github.com/metaminer/metaminer/internal/model"
	"github.com/metaminer/metaminer/internal/render"
)

// Saver stores a snapshot of a filtered view
type Saver interface {
	Save(ctx context.Context, view *model.Table) (model.ExportTask, error)
}

// Update is the outcome of one evaluated submission
type Update struct {
	Seq     uint64
	State   filter.ControlState // settled state: stale selections dropped, edits reset
	Result  *filter.Result
	Figures render.Figures     // nil when the session has no dispatcher
	Save    *model.ExportTask // set when this pass consumed a save request
}

// Config wires the session's collaborators. Dispatcher, Saver and Metrics
// are optional.
type Config struct {
	Driver     *filter.Driver
	Dispatcher *render.Dispatcher
	Saver      Saver
	Metrics    *Metrics
}

type request struct {
	seq   uint64
	state filter.ControlState
}

// Session serializes dashboard updates through one worker goroutine
type Session struct {
	mu            sync.Mutex
	base          *model.Table
	seq           uint64 // latest submitted
	pending       *request
	last          filter.ControlState
	hasLast       bool
	saveRequested bool
	onUpdate      func(Update)

	driver     *filter.Driver
	dispatcher *render.Dispatcher
	saver      Saver
	metrics    *Metrics
	logger     logr.Logger

	wake      chan struct{}
	cancel    context.CancelFunc
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

// New creates a session over base. Call Start to run the worker.
func New(base *model.Table, cfg Config, logger logr.Logger) *Session {
	logger = logger.WithName("session")
	if cfg.Driver == nil {
		cfg.Driver = filter.NewDriver(logger)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics(nil)
	}
	return &Session{
		base:       base,
		driver:     cfg.Driver,
		dispatcher: cfg.Dispatcher,
		saver:      cfg.Saver,
		metrics:    cfg.Metrics,
		logger:     logger,
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
}

// SetUpdateCallback sets the function receiving delivered updates. It is
// called from the worker goroutine.
func (s *Session) SetUpdateCallback(callback func(Update)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = callback
}

// Start launches the worker. It stops when ctx is done or Close is called.
func (s *Session) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		ctx, s.cancel = context.WithCancel(ctx)
		go s.run(ctx)
	})
}

// Close stops the worker after the pass in progress and waits for it
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		// a session closed before Start never starts
		s.startOnce.Do(func() {})
		if s.cancel == nil {
			return
		}
		s.cancel()
		<-s.done
	})
}

// Submit queues state for evaluation and returns its sequence number. A
// state still pending when a newer one arrives is never evaluated.
func (s *Session) Submit(state filter.ControlState) uint64 {
	s.mu.Lock()
	seq := s.enqueueLocked(state.Clone())
	s.mu.Unlock()
	s.signal()
	return seq
}

// RequestSave asks for one snapshot of the view produced by the latest
// state. The request is consumed by exactly one delivered update.
func (s *Session) RequestSave() {
	s.mu.Lock()
	s.saveRequested = true
	if s.pending == nil && s.hasLast {
		s.enqueueLocked(s.last)
	}
	s.mu.Unlock()
	s.signal()
}

// ReplaceBase swaps the base table and re-evaluates the last state against it
func (s *Session) ReplaceBase(base *model.Table) {
	s.mu.Lock()
	s.base = base
	if s.hasLast {
		s.enqueueLocked(s.last)
	}
	s.mu.Unlock()
	s.logger.Info("base table replaced", "rows", base.Len())
	s.signal()
}

// Base returns the current base table
func (s *Session) Base() *model.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.base
}

// Evaluate runs one update synchronously without touching the queue
func (s *Session) Evaluate(state filter.ControlState) Update {
	return s.evaluate(s.Base(), request{state: state})
}

// Save evaluates state and stores a snapshot of its view synchronously
func (s *Session) Save(ctx context.Context, state filter.ControlState) (model.ExportTask, error) {
	update := s.Evaluate(state)
	return s.save(ctx, update.Result.View)
}

func (s *Session) enqueueLocked(state filter.ControlState) uint64 {
	s.seq++
	s.pending = &request{seq: s.seq, state: state}
	s.last = state
	s.hasLast = true
	return s.seq
}

func (s *Session) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.wake:
			for s.step(ctx) {
			}
		}
	}
}

// step evaluates the pending request, if any, and reports whether it did
func (s *Session) step(ctx context.Context) bool {
	s.mu.Lock()
	req := s.pending
	s.pending = nil
	base := s.base
	saveNow := s.saveRequested
	s.saveRequested = false
	s.mu.Unlock()
	if req == nil {
		return false
	}

	update := s.evaluate(base, *req)

	s.mu.Lock()
	stale := req.seq < s.seq
	if stale {
		// hand the save request to the newer state
		s.saveRequested = s.saveRequested || saveNow
	} else {
		s.last = update.State
	}
	callback := s.onUpdate
	s.mu.Unlock()

	if stale {
		s.metrics.staleUpdates.Inc()
		s.logger.V(1).Info("discarded stale update", "seq", req.seq)
		return true
	}

	if saveNow {
		task, _ := s.save(ctx, update.Result.View)
		update.Save = &task
	}
	s.metrics.filteredGenomes.Set(float64(update.Result.GenomeCount))
	if callback != nil {
		callback(update)
	}
	return true
}

func (s *Session) evaluate(base *model.Table, req request) Update {
	started := time.Now()
	result := s.driver.Compose(base, req.state)
	update := Update{
		Seq:    req.seq,
		State:  req.state.Settle(result.Selections),
		Result: result,
	}
	if s.dispatcher != nil {
		update.Figures = s.dispatcher.Render(result.View, update.State)
	}
	s.metrics.updates.Inc()
	s.metrics.updateDuration.Observe(time.Since(started).Seconds())
	return update
}

func (s *Session) save(ctx context.Context, view *model.Table) (model.ExportTask, error) {
	if s.saver == nil {
		err := errNoSaver
		return model.ExportTask{Status: model.TaskStatusError, LastError: err.Error(), Message: "Error saving file: " + err.Error()}, err
	}
	task, err := s.saver.Save(ctx, view)
	s.metrics.registerSave(err == nil)
	return task, err
}
