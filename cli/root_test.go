package cli

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/config"
	"weather-dashboard/datasource"
	"weather-dashboard/location"
	"weather-dashboard/models"
	"weather-dashboard/scheduler"
)

type fakeSearcher []models.Location

func (f fakeSearcher) SearchLocations(context.Context, string) ([]models.Location, error) {
	return f, nil
}

func TestResolveStaticLocation(t *testing.T) {
	loc, err := resolveLocation(context.Background(), config.Settings{Location: "-37.8136,144.9631"}, fakeSearcher{})
	require.NoError(t, err)
	assert.Equal(t, -37.8136, loc.Latitude)
}

func TestResolveSearchHeadlessPicksFirst(t *testing.T) {
	searcher := fakeSearcher{{ID: "first"}, {ID: "second"}}
	loc, err := resolveLocation(context.Background(), config.Settings{Search: "x", Headless: true}, searcher)
	require.NoError(t, err)
	assert.Equal(t, "first", loc.ID)
}

func TestResolveSearchWithoutMatches(t *testing.T) {
	_, err := resolveLocation(context.Background(), config.Settings{Search: "x", Headless: true}, fakeSearcher{})
	assert.ErrorIs(t, err, location.ErrNoMatches)
}

func TestNewProviderWrapsRateLimiter(t *testing.T) {
	logger, _ := test.NewNullLogger()
	settings := config.Settings{
		APIKey:       "k",
		BaseURL:      "http://localhost:1234/",
		RateLimit:    6,
		RateBurst:    4,
		FetchTimeout: time.Second,
	}

	provider := newProvider(settings, logger)
	assert.Contains(t, provider.ObservationURL(models.Location{}), "http://localhost:1234/v2/turbo/vt1observation?")
	assert.Contains(t, provider.ObservationURL(models.Location{}), "units="+datasource.DefaultUnits)
}

func TestForwardSignals(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	stopped := make(chan struct{})

	commands := forwardSignals(ctx, signals, func() { close(stopped) })

	signals <- syscall.SIGHUP
	assert.Equal(t, scheduler.CommandRefresh, <-commands)

	cancel()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("forwarder did not stop")
	}
}
