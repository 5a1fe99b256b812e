// Package logger builds the zerolog logger shared across the SDK.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const permission = 0664

// Build configures a logger before Make assembles it.
type Build struct {
	writer io.Writer
	path   string
	level  zerolog.Level
}

// New starts a build writing to stderr at info level.
func New() *Build {
	return &Build{writer: os.Stderr, level: zerolog.InfoLevel}
}

// ToPath appends log lines to the file at path instead of stderr.
func (b *Build) ToPath(path string) *Build {
	b.path = path
	return b
}

// ToWriter sends log lines to w instead of stderr.
func (b *Build) ToWriter(w io.Writer) *Build {
	b.writer = w
	return b
}

// Level sets the minimum level.
func (b *Build) Level(level zerolog.Level) *Build {
	b.level = level
	return b
}

// Make assembles the logger. When a path was set the file is opened for
// append and returned so the caller can close it on shutdown.
func (b *Build) Make() (zerolog.Logger, *os.File, error) {
	writer := b.writer
	var file *os.File
	if b.path != "" {
		f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		file = f
		writer = zerolog.SyncWriter(f)
	}
	log := zerolog.New(writer).Level(b.level).With().Timestamp().Logger()
	return log, file, nil
}
