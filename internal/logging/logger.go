package logging

import (
	"github.com/sirupsen/logrus"
)

// Fields is re-exported for callers that build structured entries.
type Fields = logrus.Fields

// New creates a configured logger. Format "json" produces machine-readable
// entries for the surrounding application's log pipeline; anything else
// falls back to text.
func New(level, format string) *logrus.Logger {
	logger := logrus.New()
	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// NewWithService tags every entry with the emitting component.
func NewWithService(level, format, service string) *logrus.Logger {
	logger := New(level, format)
	logger.AddHook(serviceHook{service: service})
	return logger
}

type serviceHook struct {
	service string
}

func (h serviceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h serviceHook) Fire(e *logrus.Entry) error {
	e.Data["service"] = h.service
	return nil
}
