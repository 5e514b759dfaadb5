package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"weather-dashboard/models"
	"weather-dashboard/scheduler"
)

// currentPaneWidth is the width of the current conditions pane
const currentPaneWidth = 30

// Theme holds the dashboard colours
type Theme struct {
	Border tcell.Color
	Title  tcell.Color
	Text   tcell.Color
	Dim    tcell.Color
}

// DefaultTheme mirrors the yellow on black of a classic terminal
var DefaultTheme = Theme{
	Border: tcell.ColorYellow,
	Title:  tcell.ColorYellow,
	Text:   tcell.ColorWhite,
	Dim:    tcell.ColorGray,
}

// Dashboard renders snapshots onto a tcell screen. The screen is owned by
// the caller; Render draws tview primitives onto it directly so the
// scheduler keeps control of the loop.
type Dashboard struct {
	screen   tcell.Screen
	layout   *tview.Flex
	current  *tview.TextView
	forecast *tview.TextView
	footer   *tview.TextView
}

// NewDashboard creates a new dashboard drawing onto an initialized screen
func NewDashboard(screen tcell.Screen, theme Theme) *Dashboard {
	d := &Dashboard{screen: screen}

	d.current = tview.NewTextView()
	d.current.SetDynamicColors(true).
		SetTextColor(theme.Text).
		SetBorder(true).
		SetBorderColor(theme.Border).
		SetTitleColor(theme.Title).
		SetTitleAlign(tview.AlignLeft)

	d.forecast = tview.NewTextView()
	d.forecast.SetDynamicColors(true).
		SetWordWrap(true).
		SetTextColor(theme.Text).
		SetBorder(true).
		SetBorderColor(theme.Border).
		SetTitleColor(theme.Title).
		SetTitle(" Forecast ").
		SetTitleAlign(tview.AlignLeft)

	d.footer = tview.NewTextView()
	d.footer.SetTextColor(theme.Dim)

	panes := tview.NewFlex().
		AddItem(d.current, currentPaneWidth, 0, false).
		AddItem(d.forecast, 0, 1, false)

	d.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(panes, 0, 1, false).
		AddItem(d.footer, 1, 0, false)

	return d
}

// Render draws the snapshot and flushes the screen
func (d *Dashboard) Render(s scheduler.Snapshot) {
	if s.Observation.IsReady() {
		d.current.SetTitle(" Current Conditions ")
	} else {
		d.current.SetTitle(" Waiting... ")
	}
	d.current.SetText(currentText(s))
	d.forecast.SetText(forecastText(s.Forecast))
	d.footer.SetText(fmt.Sprintf(" %s   q: quit  u: update now", tview.Escape(s.Location.DisplayName())))

	width, height := d.screen.Size()
	d.layout.SetRect(0, 0, width, height)

	d.screen.Clear()
	d.layout.Draw(d.screen)
	d.screen.Show()
}

// updatedLabel describes the refresh state on the "Updated" line
func updatedLabel(s scheduler.Snapshot) string {
	switch {
	case s.Status == scheduler.StatusRefreshing:
		return "updating"
	case s.Status == scheduler.StatusError:
		return "error"
	case !s.Updated():
		return "never"
	default:
		return s.UpdatedAt.Local().Format(time.TimeOnly)
	}
}

func currentText(s scheduler.Snapshot) string {
	var b strings.Builder
	now := s.Now.Local()

	if !s.Observation.IsReady() {
		fmt.Fprintf(&b, "\n  Updated: %s\n", updatedLabel(s))
		fmt.Fprintf(&b, " Interval: %ds\n", int(s.Interval.Seconds()))
		if s.Err != "" {
			fmt.Fprintf(&b, "\n[red]%s[-]\n", tview.Escape(s.Err))
		}
		return b.String()
	}

	o := s.Observation
	b.WriteString(Glyph(o.Phrase, now.Hour()))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "[::b]%s[::-]\n\n", tview.Escape(o.Phrase))
	fmt.Fprintf(&b, "     Time: %s\n", now.Format(time.TimeOnly))
	fmt.Fprintf(&b, "  Updated: %s\n", updatedLabel(s))
	fmt.Fprintf(&b, " Interval: %ds\n", int(s.Interval.Seconds()))
	fmt.Fprintf(&b, "Temp/feel: %dc/%dc\n", o.Temperature, o.FeelsLike)
	fmt.Fprintf(&b, "  Min/max: %dc/%dc\n", o.TemperatureMin, o.TemperatureMax)
	fmt.Fprintf(&b, " Humidity: %d%%\n", o.Humidity)
	fmt.Fprintf(&b, "     Wind: %d %s\n", o.WindSpeed, tview.Escape(o.WindDirectionCompass))
	fmt.Fprintf(&b, "Visibility: %.2fkm\n", o.Visibility)
	fmt.Fprintf(&b, "  UV risk: %s\n", tview.Escape(o.UVDescription))

	return b.String()
}

func forecastText(f models.Forecast) string {
	var b strings.Builder

	for _, day := range f.Days {
		if !day.Ready() {
			continue
		}

		fmt.Fprintf(&b, "[yellow::b]%s, %s[-::-]\n",
			day.ValidDate.Format("Jan _2, Monday"), tview.Escape(day.MoonPhrase))
		fmt.Fprintf(&b, "Sun/moon: %s-%s, %s-%s\n",
			clock(day.Sunrise), clock(day.Sunset), clock(day.Moonrise), clock(day.Moonset))
		if day.Day.Valid {
			fmt.Fprintf(&b, "%s\n", tview.Escape(day.Day.Narrative))
		}
		if day.Night.Valid {
			fmt.Fprintf(&b, "[gray]%s: %s[-]\n", tview.Escape(day.Night.DayPartName), tview.Escape(day.Night.Narrative))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// clock formats a provider timestamp in its own offset, or "--:--" when unset
func clock(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.Format("15:04")
}

var _ scheduler.Presenter = (*Dashboard)(nil)
