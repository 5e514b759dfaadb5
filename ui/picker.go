package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"weather-dashboard/location"
	"weather-dashboard/models"
)

// ErrPickCanceled is returned when the user leaves the picker without choosing
var ErrPickCanceled = errors.New("location selection canceled")

// ListPicker lets the user choose a search candidate from a list. It runs
// its own tview application, which finalizes the screen on return, so it
// must be used before the dashboard screen is created.
type ListPicker struct {
	// Screen overrides the terminal tview would otherwise open
	Screen tcell.Screen
	Theme  Theme
}

// Pick shows the candidates and blocks until one is chosen
func (p ListPicker) Pick(ctx context.Context, query string, candidates []models.Location) (models.Location, error) {
	if len(candidates) == 0 {
		return models.Location{}, location.ErrNoMatches
	}
	if err := ctx.Err(); err != nil {
		return models.Location{}, err
	}

	app := tview.NewApplication()
	if p.Screen != nil {
		app.SetScreen(p.Screen)
	}

	var (
		chosen   models.Location
		selected bool
	)
	list := newCandidateList(query, candidates, p.Theme, func(l models.Location) {
		chosen = l
		selected = true
		app.Stop()
	}, app.Stop)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			app.Stop()
		case <-done:
		}
	}()

	if err := app.SetRoot(list, true).Run(); err != nil {
		return models.Location{}, fmt.Errorf("failed to run location picker: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return models.Location{}, err
	}
	if !selected {
		return models.Location{}, ErrPickCanceled
	}

	return chosen, nil
}

// newCandidateList builds the selection list. Items get the shortcuts 0-9 in
// order; Escape calls cancel.
func newCandidateList(query string, candidates []models.Location, theme Theme, pick func(models.Location), cancel func()) *tview.List {
	list := tview.NewList()
	list.SetBorder(true).
		SetBorderColor(theme.Border).
		SetTitleColor(theme.Title).
		SetTitle(fmt.Sprintf(" Locations matching %q (Esc to cancel) ", query))

	for i, candidate := range candidates {
		candidate := candidate
		secondary := candidate.Geocode()
		if candidate.TimeZone != "" {
			secondary += "  " + candidate.TimeZone
		}

		var shortcut rune
		if i < 10 {
			shortcut = rune('0' + i)
		}

		list.AddItem(tview.Escape(candidate.DisplayName()), secondary, shortcut, func() {
			pick(candidate)
		})
	}
	list.SetDoneFunc(cancel)

	return list
}

var _ location.Picker = ListPicker{}
