package appender

import (
	"github.com/sirupsen/logrus"
	"github.com/vrp/restappender/pkg/log"
)

// Hook registers a DeliveryAppender with logrus.
// Logrus prints the error of a failed delivery to stderr and carries on logging.
type Hook struct {
	appender *DeliveryAppender
	levels   []logrus.Level
}

// NewHook creates a hook delivering entries of the given levels, all levels if none are given.
func NewHook(appender *DeliveryAppender, levels ...logrus.Level) *Hook {
	if len(levels) == 0 {
		levels = logrus.AllLevels
	}
	return &Hook{
		appender: appender,
		levels:   levels,
	}
}

// Levels returns the supported log level of the hook.
func (h *Hook) Levels() []logrus.Level {
	return h.levels
}

// Fire delivers the entry. Diagnostics written by this module are skipped.
func (h *Hook) Fire(entry *logrus.Entry) error {
	if log.IsOwnDiagnostic(entry) {
		return nil
	}
	return h.appender.Deliver(entry)
}
