//go:build unix

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"weather-dashboard/scheduler"
)

// signalCommands turns SIGUSR1 into refresh commands until ctx is done
func signalCommands(ctx context.Context) <-chan scheduler.Command {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGUSR1)

	return forwardSignals(ctx, signals, func() { signal.Stop(signals) })
}
