package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"weather-dashboard/scheduler"
)

// ========== Injectable Constants =============================================

// To be injected during build
var (
	Version = "development"

	GitCommit = "unknown"
)

const (
	// ApplicationName is used for configuration paths
	ApplicationName = "weather-dashboard"

	// EnvPrefix prefixes every environment variable
	EnvPrefix = "CWEATHER"

	// ConfigName is the configuration file's name without extension
	ConfigName = "config"

	// LegacyConfigFile is the dotfile read from the home directory
	LegacyConfigFile = ".cweather"
)

// Defaults
const (
	DefaultLocation     = "-37.8136,144.9631"
	DefaultInterval     = 300
	MinimumInterval     = int(scheduler.MinimumInterval / time.Second)
	DefaultRateLimit    = 6.0
	DefaultRateBurst    = 4
	DefaultFetchTimeout = 10 * time.Second
)

var (
	// ConfigPaths specifies where to look for configuration files
	ConfigPaths = [...]string{".", "$HOME/.config/" + ApplicationName}
)

// ========== Config setup =====================================================

// Config paths
const (
	PathConfig       = "config"
	PathLocation     = "location"
	PathInterval     = "interval"
	PathSearch       = "search"
	PathAPIKey       = "apikey"
	PathUnits        = "units"
	PathLanguage     = "language"
	PathBaseURL      = "baseurl"
	PathHeadless     = "headless"
	PathListen       = "listen"
	PathRateLimit    = "ratelimit"
	PathRateBurst    = "rateburst"
	PathFetchTimeout = "timeout"
)

var (
	// Viper holds the merged configuration of flags, environment, config
	// file and legacy dotfile.
	Viper = viper.GetViper()

	// RootCtx is the root command. Other packages may register flags on it
	// and bind them to Viper.
	RootCtx = &cobra.Command{
		Use:   ApplicationName,
		Short: "Terminal weather dashboard",
		Long: `weather-dashboard shows current conditions and a 14 day forecast for one
location, refreshing on an interval. Press q to quit and u to update now.`,
		Version:           Version + " (" + GitCommit + ")",
		PersistentPreRunE: func(*cobra.Command, []string) error { return loadConfiguration() },
	}
)

func init() {
	flags := RootCtx.PersistentFlags()

	flags.StringP(PathConfig, "c", ConfigName, "configuration file's name (without extension)")
	Viper.BindPFlag(PathConfig, flags.Lookup(PathConfig))

	flags.StringP(PathLocation, "l", DefaultLocation, "location as latitude,longitude")
	Viper.BindPFlag(PathLocation, flags.Lookup(PathLocation))

	flags.IntP(PathInterval, "i", DefaultInterval, fmt.Sprintf("seconds between updates (minimum %d)", MinimumInterval))
	Viper.BindPFlag(PathInterval, flags.Lookup(PathInterval))

	flags.StringP(PathSearch, "s", "", "search for a location by name instead of coordinates")
	Viper.BindPFlag(PathSearch, flags.Lookup(PathSearch))

	flags.String(PathAPIKey, "", "weather.com API key")
	Viper.BindPFlag(PathAPIKey, flags.Lookup(PathAPIKey))

	flags.String(PathUnits, "m", "units: m (metric), e (imperial), h (hybrid)")
	Viper.BindPFlag(PathUnits, flags.Lookup(PathUnits))

	flags.String(PathLanguage, "en-AU", "language for phrases and narratives")
	Viper.BindPFlag(PathLanguage, flags.Lookup(PathLanguage))

	flags.String(PathBaseURL, "https://api.weather.com", "weather API root")
	Viper.BindPFlag(PathBaseURL, flags.Lookup(PathBaseURL))

	flags.Bool(PathHeadless, false, "run without the terminal UI (SIGUSR1 updates now)")
	Viper.BindPFlag(PathHeadless, flags.Lookup(PathHeadless))

	flags.String(PathListen, "", "address for the read-only status API, e.g. localhost:8080")
	Viper.BindPFlag(PathListen, flags.Lookup(PathListen))

	flags.Float64(PathRateLimit, DefaultRateLimit, "maximum weather API requests per minute")
	Viper.BindPFlag(PathRateLimit, flags.Lookup(PathRateLimit))

	flags.Int(PathRateBurst, DefaultRateBurst, "weather API request burst")
	Viper.BindPFlag(PathRateBurst, flags.Lookup(PathRateBurst))

	flags.Duration(PathFetchTimeout, DefaultFetchTimeout, "timeout of a single weather API request")
	Viper.BindPFlag(PathFetchTimeout, flags.Lookup(PathFetchTimeout))
}

// ConfigError reports an invalid or missing setting
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %q: %s", e.Key, e.Reason)
}

// InvalidConfiguration is a helper for complaining about a setting
func InvalidConfiguration(key string, format string, args ...any) error {
	return &ConfigError{Key: key, Reason: fmt.Sprintf(format, args...)}
}

func loadConfiguration() error {
	// search for environment variables; the bare names are kept for
	// compatibility with existing setups
	Viper.SetEnvPrefix(EnvPrefix)
	Viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	Viper.AutomaticEnv()
	Viper.BindEnv(PathLocation, EnvPrefix+"_LOCATION", "LOCATION")
	Viper.BindEnv(PathInterval, EnvPrefix+"_INTERVAL", "INTERVAL")

	// the legacy dotfile only provides defaults
	if home, err := os.UserHomeDir(); err == nil {
		legacy, err := LoadLegacy(filepath.Join(home, LegacyConfigFile))
		if err != nil {
			return err
		}
		legacy.Apply(Viper)
	}

	// read config file
	Viper.SetConfigName(Viper.GetString(PathConfig))
	for _, p := range ConfigPaths {
		Viper.AddConfigPath(p)
	}

	if err := Viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return validateLogging()
}

// ========== Config API =======================================================

// Settings is the validated application configuration
type Settings struct {
	Location     string
	Search       string
	Interval     time.Duration
	APIKey       string
	Units        string
	Language     string
	BaseURL      string
	Headless     bool
	Listen       string
	LogFile      string
	RateLimit    float64 // requests per minute, 0 disables limiting
	RateBurst    int
	FetchTimeout time.Duration
}

// Load reads and validates the settings from Viper
func Load() (Settings, error) {
	return load(Viper)
}

func load(v *viper.Viper) (Settings, error) {
	s := Settings{
		Location:     strings.TrimSpace(v.GetString(PathLocation)),
		Search:       strings.TrimSpace(v.GetString(PathSearch)),
		APIKey:       strings.TrimSpace(v.GetString(PathAPIKey)),
		Units:        v.GetString(PathUnits),
		Language:     v.GetString(PathLanguage),
		BaseURL:      v.GetString(PathBaseURL),
		Headless:     v.GetBool(PathHeadless),
		Listen:       v.GetString(PathListen),
		LogFile:      v.GetString(PathLogFile),
		RateLimit:    v.GetFloat64(PathRateLimit),
		RateBurst:    v.GetInt(PathRateBurst),
		FetchTimeout: v.GetDuration(PathFetchTimeout),
	}

	interval := v.GetInt(PathInterval)
	if interval < MinimumInterval {
		return Settings{}, InvalidConfiguration(PathInterval, "must be at least %d seconds, got %d", MinimumInterval, interval)
	}
	s.Interval = time.Duration(interval) * time.Second

	if s.Location == "" && s.Search == "" {
		return Settings{}, InvalidConfiguration(PathLocation, "location not specified")
	}
	if s.APIKey == "" {
		return Settings{}, InvalidConfiguration(PathAPIKey, "an API key is required (--%s or %s_APIKEY)", PathAPIKey, EnvPrefix)
	}
	if s.RateLimit < 0 {
		return Settings{}, InvalidConfiguration(PathRateLimit, "must not be negative")
	}
	if s.RateLimit > 0 && s.RateBurst < 1 {
		return Settings{}, InvalidConfiguration(PathRateBurst, "must be at least 1")
	}
	if s.FetchTimeout <= 0 {
		return Settings{}, InvalidConfiguration(PathFetchTimeout, "must be positive")
	}

	return s, nil
}
