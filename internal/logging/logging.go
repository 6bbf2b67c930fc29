// Package logging configures the shared log sink: timestamped lines to
// the console and an append-only log file.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// TagField carries the channel (or component) tag shown in brackets on
// every log line.
const TagField = "tag"

// New returns a logger writing formatted lines to all given writers.
// logrus serializes writes internally, so the sink is safe to share
// across channel loops.
func New(writers ...io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&Formatter{})
	switch len(writers) {
	case 0:
		logger.SetOutput(os.Stdout)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}
	return logger
}

// OpenFile opens (creating parent directories as needed) an append-only
// log file.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// WithTag returns an entry whose lines carry the given bracket tag.
func WithTag(logger *logrus.Logger, tag string) *logrus.Entry {
	return logger.WithField(TagField, tag)
}
