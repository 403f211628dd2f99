package status

import (
	"context"
	"errors"
	"sync"
	"time"

	"steam-ledger/core/logger"
	"steam-ledger/feature/games/models"
	steamsync "steam-ledger/feature/sync"

	"go.uber.org/zap"
)

// ErrBusy is returned when a pass is requested while another is running.
var ErrBusy = errors.New("a sync pass is already running")

// Runner runs one sync pass.
type Runner interface {
	Run(ctx context.Context) (*steamsync.Result, error)
}

// Counter reports table row counts.
type Counter interface {
	Counts(ctx context.Context) (map[string]int64, error)
}

// Hook is called after every pass, failed ones included.
type Hook func(ctx context.Context, res *steamsync.Result)

// Summary is the short form of a pass result.
type Summary struct {
	RunID      string             `json:"run_id"`
	Started    time.Time          `json:"started"`
	Finished   time.Time          `json:"finished"`
	Counters   steamsync.Counters `json:"counters"`
	EventCount int                `json:"event_count"`
	FailedStep string             `json:"failed_step,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// Status is the state reported by GET /status.
type Status struct {
	Running bool             `json:"running"`
	Runs    int              `json:"runs"`
	Last    *Summary         `json:"last,omitempty"`
	Tables  map[string]int64 `json:"tables,omitempty"`
}

// Service serializes sync passes and remembers the last one.
type Service struct {
	runner  Runner
	counter Counter
	hooks   []Hook
	timeout time.Duration
	logger  *zap.Logger

	// base is the parent of background passes and is cancelled by Close.
	base   context.Context
	cancel context.CancelFunc

	// run is held for the whole duration of a pass.
	run sync.Mutex

	mu      sync.RWMutex
	running bool
	runs    int
	last    *steamsync.Result
}

// NewService creates a service. counter may be nil. A zero timeout lets passes run
// until they finish.
func NewService(runner Runner, counter Counter, timeout time.Duration, logger *zap.Logger, hooks ...Hook) *Service {
	base, cancel := context.WithCancel(context.Background())
	return &Service{
		runner:  runner,
		counter: counter,
		hooks:   hooks,
		timeout: timeout,
		logger:  logger,
		base:    base,
		cancel:  cancel,
	}
}

// Close cancels a background pass and waits for the running pass to return.
// Trigger starts nothing once the service is closed.
func (s *Service) Close() {
	s.cancel()
	s.run.Lock()
	defer s.run.Unlock()
}

// Seed sets the last result, e.g. from an archived report at startup.
func (s *Service) Seed(res *steamsync.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		s.last = res
	}
}

// RunNow runs a pass and waits for it. It fails with ErrBusy when one is running.
func (s *Service) RunNow(ctx context.Context) (*steamsync.Result, error) {
	if !s.run.TryLock() {
		return nil, ErrBusy
	}
	defer s.run.Unlock()
	return s.execute(ctx)
}

// Trigger starts a pass in the background and reports whether it started.
func (s *Service) Trigger() bool {
	if s.base.Err() != nil || !s.run.TryLock() {
		return false
	}
	go func() {
		defer s.run.Unlock()
		_, _ = s.execute(s.base)
	}()
	return true
}

func (s *Service) execute(ctx context.Context) (*steamsync.Result, error) {
	s.setRunning(true)
	defer s.setRunning(false)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.runner.Run(ctx)
	if res != nil {
		s.mu.Lock()
		s.last = res
		s.runs++
		s.mu.Unlock()

		for _, h := range s.hooks {
			h(ctx, res)
		}
	}
	if err != nil {
		l := s.logger
		if res != nil {
			l = logger.WithRun(l, res.RunID)
		}
		l.Error("Sync pass failed", zap.Error(err))
	}
	return res, err
}

func (s *Service) setRunning(v bool) {
	s.mu.Lock()
	s.running = v
	s.mu.Unlock()
}

// Status returns the current state. Row counts are left out when they cannot be read.
func (s *Service) Status(ctx context.Context) Status {
	s.mu.RLock()
	st := Status{Running: s.running, Runs: s.runs}
	if s.last != nil {
		st.Last = summarize(s.last)
	}
	s.mu.RUnlock()

	if s.counter != nil {
		counts, err := s.counter.Counts(ctx)
		if err != nil {
			s.logger.Warn("Failed to count rows", zap.Error(err))
		} else {
			st.Tables = counts
		}
	}
	return st
}

// Events returns the events of the last pass.
func (s *Service) Events() []models.SyncEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return []models.SyncEvent{}
	}
	events := make([]models.SyncEvent, len(s.last.Events))
	copy(events, s.last.Events)
	return events
}

func summarize(res *steamsync.Result) *Summary {
	return &Summary{
		RunID:      res.RunID,
		Started:    res.Started,
		Finished:   res.Finished,
		Counters:   res.Counters,
		EventCount: len(res.Events),
		FailedStep: res.FailedStep,
		Error:      res.Error,
	}
}
