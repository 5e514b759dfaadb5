package cli

import (
	"context"
	"os"

	"weather-dashboard/scheduler"
)

// forwardSignals delivers a refresh command for each received signal. The
// returned channel is never closed; the loop ends through ctx instead.
func forwardSignals(ctx context.Context, signals <-chan os.Signal, stop func()) <-chan scheduler.Command {
	commands := make(chan scheduler.Command)

	go func() {
		defer stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-signals:
				select {
				case commands <- scheduler.CommandRefresh:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return commands
}
