package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"weather-dashboard/collector"
	"weather-dashboard/models"
)

const (
	// MinimumInterval is the shortest allowed refresh interval
	MinimumInterval = 60 * time.Second
	// DefaultInterval is used when Config.Interval is zero
	DefaultInterval = 300 * time.Second
	// DefaultTickInterval bounds how long the loop waits for a command
	DefaultTickInterval = 500 * time.Millisecond
)

// ErrIntervalTooShort is returned by New for intervals below MinimumInterval
var ErrIntervalTooShort = errors.New("refresh interval too short")

// Source performs one fetch cycle for a location
type Source interface {
	Collect(ctx context.Context, location models.Location) collector.Result
}

// Config holds the loop settings
type Config struct {
	Location     models.Location
	Interval     time.Duration
	TickInterval time.Duration
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithClock replaces the wall clock, e.g. with a clockwork.FakeClock in tests
func WithClock(clock clockwork.Clock) Option {
	return func(s *Scheduler) {
		s.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// Scheduler owns the model. Only the goroutine calling Tick or Run may touch
// it; presenters receive copies through Snapshot.
type Scheduler struct {
	cfg       Config
	source    Source
	presenter Presenter
	clock     clockwork.Clock
	logger    logrus.FieldLogger

	observation models.Observation
	forecast    models.Forecast
	status      Status
	updatedAt   time.Time
	lastAttempt time.Time
	lastErr     string
}

// New creates a new scheduler. A zero Interval selects DefaultInterval; any
// other value below MinimumInterval is rejected.
func New(cfg Config, source Source, presenter Presenter, opts ...Option) (*Scheduler, error) {
	if cfg.Interval == 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Interval < MinimumInterval {
		return nil, fmt.Errorf("%w: %s is below the minimum of %s", ErrIntervalTooShort, cfg.Interval, MinimumInterval)
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if presenter == nil {
		presenter = MultiPresenter(nil)
	}

	s := &Scheduler{
		cfg:       cfg,
		source:    source,
		presenter: presenter,
		clock:     clockwork.NewRealClock(),
		logger:    logrus.StandardLogger(),
		status:    StatusWaiting,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Snapshot returns the current view of the model
func (s *Scheduler) Snapshot() Snapshot {
	return Snapshot{
		Location:    s.cfg.Location,
		Observation: s.observation,
		Forecast:    s.forecast,
		Status:      s.status,
		UpdatedAt:   s.updatedAt,
		LastAttempt: s.lastAttempt,
		Interval:    s.cfg.Interval,
		Now:         s.clock.Now(),
		Err:         s.lastErr,
	}
}

// due reports whether the interval has elapsed since the last attempt. The
// zero lastAttempt means never attempted or a refresh was requested.
func (s *Scheduler) due(now time.Time) bool {
	return s.lastAttempt.IsZero() || now.Sub(s.lastAttempt) >= s.cfg.Interval
}

// RequestRefresh makes the next Tick fetch regardless of the interval
func (s *Scheduler) RequestRefresh() {
	s.lastAttempt = time.Time{}
}

// Tick runs one loop iteration: a fetch cycle if one is due, then a render.
// It reports whether a fetch cycle ran.
func (s *Scheduler) Tick(ctx context.Context) bool {
	if !s.due(s.clock.Now()) {
		s.presenter.Render(s.Snapshot())
		return false
	}

	s.refresh(ctx)
	s.presenter.Render(s.Snapshot())
	return true
}

func (s *Scheduler) refresh(ctx context.Context) {
	logger := s.logger.WithFields(logrus.Fields{
		"cycle":    uuid.NewString(),
		"location": s.cfg.Location.Geocode(),
	})
	logger.Debug("refreshing")

	s.status = StatusRefreshing
	s.presenter.Render(s.Snapshot())

	result := s.source.Collect(ctx, s.cfg.Location)

	// Replace each record whole, and only when its own fetch succeeded
	var failures []string
	if result.ObservationErr == nil {
		s.observation = result.Observation
	} else {
		failures = append(failures, result.ObservationErr.Error())
	}
	if result.ForecastErr == nil {
		s.forecast = result.Forecast
	} else {
		failures = append(failures, result.ForecastErr.Error())
	}

	now := s.clock.Now()
	s.lastAttempt = now

	if len(failures) > 0 {
		s.status = StatusError
		s.lastErr = strings.Join(failures, "; ")
		logger.WithField("error", s.lastErr).Warn("refresh failed")
		return
	}

	s.status = StatusReady
	s.lastErr = ""
	s.updatedAt = now
	logger.Info("refresh complete")
}

// Run ticks until ctx is done, a CommandQuit arrives or commands is closed.
// Between ticks it waits up to TickInterval for a command. Run returns
// ctx.Err() when the context ended the loop, nil otherwise.
func (s *Scheduler) Run(ctx context.Context, commands <-chan Command) error {
	for {
		s.Tick(ctx)

		timer := s.clock.NewTimer(s.cfg.TickInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case cmd, ok := <-commands:
			timer.Stop()
			if !ok || cmd == CommandQuit {
				s.logger.Debug("quit requested")
				return nil
			}
			if cmd == CommandRefresh {
				s.logger.Debug("refresh requested")
				s.RequestRefresh()
			}
		case <-timer.Chan():
		}
	}
}
