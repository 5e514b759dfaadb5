package scheduler

import (
	"time"

	"weather-dashboard/models"
)

// Status is the state of the refresh cycle shown to the user
type Status int

const (
	// StatusWaiting is the state before the first fetch completes
	StatusWaiting Status = iota
	// StatusRefreshing is set while a fetch cycle is in progress
	StatusRefreshing
	// StatusReady means the last cycle succeeded
	StatusReady
	// StatusError means the last cycle failed; previous data is kept
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusRefreshing:
		return "refreshing"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText renders the status by name in JSON and logs
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Command is a user request delivered to the loop
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandRefresh
)

func (c Command) String() string {
	switch c {
	case CommandQuit:
		return "quit"
	case CommandRefresh:
		return "refresh"
	default:
		return "none"
	}
}

// Snapshot is a read-only view of the model handed to presenters. UpdatedAt
// is the zero time until a cycle fully succeeds.
type Snapshot struct {
	Location    models.Location    `json:"location"`
	Observation models.Observation `json:"observation"`
	Forecast    models.Forecast    `json:"forecast"`
	Status      Status             `json:"status"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	LastAttempt time.Time          `json:"lastAttempt"`
	Interval    time.Duration      `json:"interval"`
	Now         time.Time          `json:"now"`
	Err         string             `json:"error,omitempty"`
}

// Updated reports whether any cycle has fully succeeded
func (s Snapshot) Updated() bool {
	return !s.UpdatedAt.IsZero()
}
