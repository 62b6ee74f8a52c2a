package config

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. Unknown levels fall back to warn.
func NewLogger(level string, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stderr
	}

	logg := logrus.New()
	logg.SetOutput(out)
	logg.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
	}
	logg.SetLevel(lvl)

	return logg
}

// NewJSONLogger builds a JSON logger for long-running services.
func NewJSONLogger(level string, out io.Writer) *logrus.Logger {
	logg := NewLogger(level, out)
	logg.SetFormatter(&logrus.JSONFormatter{})
	return logg
}

// LogError logs err with the component and operation that produced it.
func LogError(logger logrus.FieldLogger, module, funcName string, data any, err error) {
	fields := logrus.Fields{
		"module":   module,
		"funcName": funcName,
	}
	if data != nil {
		fields["data"] = data
	}
	logger.WithFields(fields).Error(err.Error())
}
