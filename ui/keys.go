package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"weather-dashboard/scheduler"
)

// CommandForKey maps a key press to a loop command. Unrecognised keys map
// to scheduler.CommandNone.
func CommandForKey(ev *tcell.EventKey) scheduler.Command {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return scheduler.CommandQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return scheduler.CommandQuit
		case 'u', 'U', 'r':
			return scheduler.CommandRefresh
		}
	}
	return scheduler.CommandNone
}

// Commands reads events from screen until it is finalized or ctx is done and
// delivers the recognised commands. The returned channel is closed when the
// reader stops.
func Commands(ctx context.Context, screen tcell.Screen) <-chan scheduler.Command {
	commands := make(chan scheduler.Command)

	go func() {
		defer close(commands)

		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}

			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				cmd := CommandForKey(ev)
				if cmd == scheduler.CommandNone {
					continue
				}
				select {
				case commands <- cmd:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return commands
}
