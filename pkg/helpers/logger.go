package helpers

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type loggerOptions struct {
	out   io.Writer
	level string
}

// LoggerOption tweaks NewLogger.
type LoggerOption func(*loggerOptions)

// WithOutput redirects log output (stdout by default).
func WithOutput(w io.Writer) LoggerOption {
	return func(o *loggerOptions) { o.out = w }
}

// WithLevel overrides the env-derived level with a logrus level name.
// Unknown names are ignored.
func WithLevel(level string) LoggerOption {
	return func(o *loggerOptions) { o.level = level }
}

// NewLogger creates a configured Logrus logger. Development gets text output
// at debug level, every other env JSON at info level.
func NewLogger(appName, env string, opts ...LoggerOption) *logrus.Logger {
	o := loggerOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	logger := logrus.New()
	logger.SetOutput(o.out)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if o.level != "" {
		if lvl, err := logrus.ParseLevel(o.level); err == nil {
			logger.SetLevel(lvl)
		} else {
			logger.WithField("level", o.level).Warn("unknown log level, keeping default")
		}
	}
	logger.WithFields(logrus.Fields{"app": appName, "env": env}).Debug("logger initialized")
	return logger
}

// LogError logs msg at error level with err and fields attached. A nil
// logger is a no-op.
func LogError(logger *logrus.Logger, msg string, err error, fields logrus.Fields) {
	if logger == nil {
		return
	}
	entry := logger.WithFields(fields)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(msg)
}

// LogInfo logs msg at info level. A nil logger is a no-op.
func LogInfo(logger *logrus.Logger, msg string, fields logrus.Fields) {
	if logger == nil {
		return
	}
	logger.WithFields(fields).Info(msg)
}
