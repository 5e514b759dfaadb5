package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Log formatter options
const (
	json   = "json"
	logfmt = "logfmt"
	tty    = "tty"
)

// Config paths
const (
	PathLevel     = "loglevel"
	PathFormatter = "logformatter"
	PathLogFile   = "logfile"
	PathIgnoreGin = "logignoregin"
)

func init() {
	// provide configuration
	RootCtx.PersistentFlags().Uint(PathLevel, uint(logrus.InfoLevel), "log level (Panic: 0, Fatal: 1, Error: 2, Warning: 3, Info: 4, Debug: 5, Trace: 6)")
	Viper.BindPFlag(PathLevel, RootCtx.PersistentFlags().Lookup(PathLevel))

	RootCtx.PersistentFlags().String(PathFormatter, logfmt, "log format (json, logfmt, tty)")
	Viper.BindPFlag(PathFormatter, RootCtx.PersistentFlags().Lookup(PathFormatter))

	RootCtx.PersistentFlags().String(PathLogFile, "", "write logs to this file (the terminal UI discards them otherwise)")
	Viper.BindPFlag(PathLogFile, RootCtx.PersistentFlags().Lookup(PathLogFile))

	RootCtx.PersistentFlags().Bool(PathIgnoreGin, false, "hide the status API's request log")
	Viper.BindPFlag(PathIgnoreGin, RootCtx.PersistentFlags().Lookup(PathIgnoreGin))
}

func validateLogging() error {
	// check logging level
	if lvl := Viper.GetUint32(PathLevel); uint32(logrus.TraceLevel) < lvl {
		return InvalidConfiguration(PathLevel, "must be between 0 and %d, got %d", logrus.TraceLevel, lvl)
	}
	// check logging format
	_, err := LogFormatter()
	return err
}

// NewLogger returns a new logger instance writing to out, as configured by
// this package's viper instance.
func NewLogger(out io.Writer) (*logrus.Logger, error) {
	formatter, err := LogFormatter()
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetOutput(out)
	// choose formatter
	l.SetFormatter(formatter)

	l.SetLevel(logrus.Level(Viper.GetUint32(PathLevel)))
	return l, nil
}

// LogOutput opens the configured log destination. In headless mode logs go to
// stderr; with the terminal UI they go to the log file or are discarded. The
// returned close function must be called on exit.
func LogOutput(headless bool) (io.Writer, func() error, error) {
	path := Viper.GetString(PathLogFile)
	if path == "" {
		if headless {
			return os.Stderr, func() error { return nil }, nil
		}
		return io.Discard, func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, f.Close, nil
}

// LogFormatter returns the configured logrus formatter.
func LogFormatter() (logrus.Formatter, error) {
	switch Viper.GetString(PathFormatter) {
	case json:
		return &logrus.JSONFormatter{}, nil
	case logfmt:
		return &logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		}, nil
	case tty:
		return &logrus.TextFormatter{}, nil
	default:
		return nil, InvalidConfiguration(PathFormatter, "expected one of %v", []string{json, logfmt, tty})
	}
}

// GinLogrusLogger logs every status API request through logger
func GinLogrusLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	if Viper.GetBool(PathIgnoreGin) {
		return gin.LoggerWithFormatter(func(p gin.LogFormatterParams) string {
			return ""
		})
	}

	return gin.LoggerWithConfig(gin.LoggerConfig{
		Output: io.Discard,
		Formatter: func(p gin.LogFormatterParams) string {
			fields := logger.WithFields(logrus.Fields{
				"status_code":  p.StatusCode,
				"latency_time": p.Latency,
				"client_ip":    p.ClientIP,
				"req_method":   p.Method,
				"req_uri":      p.Request.RequestURI,
			})

			if p.ErrorMessage != "" {
				fields.WithError(errors.New(p.ErrorMessage)).Error("GIN")
				return ""
			}

			fields.Debug("GIN")

			return ""
		},
	})
}
