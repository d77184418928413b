// Package log configures the process-wide logrus logger and hands out entries
// scoped to a component.
package log

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
)

const (
	FieldComponent = "component"
	FieldJobID     = "job_id"
	FieldStream    = "stream"
)

// InitLog sets the level and the text format of the standard logger.
// An unknown level falls back to info.
func InitLog(logLevel string) {
	InitLogTo(os.Stderr, logLevel)
}

// InitLogTo is InitLog with an explicit destination.
func InitLogTo(w io.Writer, logLevel string) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Errorf("failed to parse log level: %v, err: %v", logLevel, err)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetReportCaller(true)
	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		DisableColors:   true,
		DisableQuote:    true,
		CallerPrettyfier: func(frame *runtime.Frame) (string, string) {
			return "", fmt.Sprintf("%s:%d", path.Base(frame.File), frame.Line)
		},
	})
}

// NewLogger returns an entry of the standard logger tagged with component.
func NewLogger(component string) *logrus.Entry {
	return logrus.WithField(FieldComponent, component)
}

// Discard returns an entry that drops everything, handy in tests.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
