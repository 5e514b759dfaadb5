package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"weather-dashboard/api"
	"weather-dashboard/collector"
	"weather-dashboard/config"
	"weather-dashboard/datasource"
	"weather-dashboard/location"
	"weather-dashboard/models"
	"weather-dashboard/scheduler"
	"weather-dashboard/ui"
)

func init() {
	config.RootCtx.RunE = run
}

// Execute executes the root command.
func Execute() error {
	return config.RootCtx.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	if settings.Search == "" {
		if _, err := location.ParseGeocode(settings.Location); err != nil {
			return config.InvalidConfiguration(config.PathLocation, "%v", err)
		}
	}

	// Configuration is valid; later failures are not usage errors
	cmd.SilenceUsage = true

	output, closeLog, err := config.LogOutput(settings.Headless)
	if err != nil {
		return err
	}
	defer closeLog()

	logger, err := config.NewLogger(output)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider := newProvider(settings, logger)

	loc, err := resolveLocation(ctx, settings, provider)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"location": loc.DisplayName(),
		"geocode":  loc.Geocode(),
		"interval": settings.Interval,
	}).Info("starting")

	presenters := scheduler.MultiPresenter{}

	if settings.Listen != "" {
		gin.SetMode(gin.ReleaseMode)

		store := api.NewStore()
		server := api.NewServer(store, settings.Listen, config.GinLogrusLogger(logger))
		presenters = append(presenters, store)

		go func() {
			logger.WithField("address", server.Addr()).Info("status API listening")
			if err := server.Start(); err != nil {
				logger.WithError(err).Error("status API stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()
	}

	var commands <-chan scheduler.Command
	if settings.Headless {
		presenters = append(presenters, scheduler.NewLogPresenter(logger))
		commands = signalCommands(ctx)
	} else {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		defer screen.Fini()
		screen.HideCursor()

		presenters = append(presenters, ui.NewDashboard(screen, ui.DefaultTheme))
		commands = ui.Commands(ctx, screen)
	}

	source := collector.New(provider, provider,
		collector.WithFetchTimeout(settings.FetchTimeout),
		collector.WithLogger(logger),
	)

	loop, err := scheduler.New(scheduler.Config{
		Location: loc,
		Interval: settings.Interval,
	}, source, presenters, scheduler.WithLogger(logger))
	if err != nil {
		return err
	}

	if err := loop.Run(ctx, commands); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("stopped")

	return nil
}

// newProvider builds the weather.com client on a rate limited transport
func newProvider(settings config.Settings, logger logrus.FieldLogger) *datasource.WeatherComProvider {
	var fetcher datasource.Fetcher = datasource.NewHTTPFetcher(settings.FetchTimeout, datasource.DefaultMaxBodySize)

	if settings.RateLimit > 0 {
		fetcher = datasource.NewRateLimitedFetcher(fetcher, settings.RateLimit/60, settings.RateBurst)
		logger.WithFields(logrus.Fields{
			"per_minute": settings.RateLimit,
			"burst":      settings.RateBurst,
		}).Debug("applied rate limiting to weather.com")
	}

	provider := datasource.NewWeatherComProvider(fetcher, settings.APIKey, settings.Units, settings.Language)
	if settings.BaseURL != "" {
		provider.SetBaseURL(settings.BaseURL)
	}
	return provider
}

// resolveLocation turns the configured coordinates or search query into a
// Location. Searches in terminal mode let the user pick from a list.
func resolveLocation(ctx context.Context, settings config.Settings, searcher datasource.LocationSearcher) (models.Location, error) {
	var resolver location.Resolver = location.StaticLocation{Geocode: settings.Location}

	if settings.Search != "" {
		var picker location.Picker = location.FirstMatch
		if !settings.Headless {
			picker = ui.ListPicker{Theme: ui.DefaultTheme}
		}
		resolver = location.SearchedLocation{
			Query:    settings.Search,
			Searcher: searcher,
			Picker:   picker,
		}
	}

	loc, err := resolver.Resolve(ctx)
	if err != nil {
		return models.Location{}, fmt.Errorf("failed to resolve location: %w", err)
	}
	return loc, nil
}
