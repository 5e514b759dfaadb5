package scheduler

import (
	"github.com/sirupsen/logrus"
)

// Presenter consumes snapshots of the model. Render is called from the loop
// goroutine and must not block for long.
type Presenter interface {
	Render(Snapshot)
}

// PresenterFunc adapts a function to the Presenter interface
type PresenterFunc func(Snapshot)

// Render calls f
func (f PresenterFunc) Render(s Snapshot) {
	f(s)
}

// MultiPresenter renders every snapshot to each presenter in order
type MultiPresenter []Presenter

// Render forwards the snapshot
func (m MultiPresenter) Render(s Snapshot) {
	for _, p := range m {
		p.Render(s)
	}
}

// LogPresenter logs status transitions. It is the presenter used when no
// terminal is attached.
type LogPresenter struct {
	logger logrus.FieldLogger
	last   Status
	seen   bool
}

// NewLogPresenter creates a new log presenter
func NewLogPresenter(logger logrus.FieldLogger) *LogPresenter {
	return &LogPresenter{logger: logger}
}

// Render logs the snapshot when its status differs from the previous one
func (p *LogPresenter) Render(s Snapshot) {
	if p.seen && s.Status == p.last {
		return
	}
	p.seen = true
	p.last = s.Status

	entry := p.logger.WithFields(logrus.Fields{
		"status":   s.Status.String(),
		"location": s.Location.DisplayName(),
	})

	switch s.Status {
	case StatusError:
		entry.WithField("error", s.Err).Warn("refresh failed")
	case StatusReady:
		entry.WithFields(logrus.Fields{
			"phrase":      s.Observation.Phrase,
			"temperature": s.Observation.Temperature,
			"days":        len(s.Forecast.Days),
		}).Info("weather updated")
	default:
		entry.Debug("status changed")
	}
}

var (
	_ Presenter = MultiPresenter(nil)
	_ Presenter = (*LogPresenter)(nil)
)
