//go:build !unix

package cli

import (
	"context"
	"os"

	"weather-dashboard/scheduler"
)

// signalCommands only quits with ctx; there is no refresh signal here
func signalCommands(ctx context.Context) <-chan scheduler.Command {
	return forwardSignals(ctx, make(chan os.Signal), func() {})
}
