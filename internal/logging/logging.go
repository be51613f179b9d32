// Package logging wires the standard logger to stdout and an optional rotated file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options mirrors the logging section of the config.
type Options struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Debug      bool
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewWriter returns the log destination for opts and a closer for the file part.
func NewWriter(stdout io.Writer, opts Options) (io.Writer, io.Closer, error) {
	if opts.File == "" {
		return stdout, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}
	return io.MultiWriter(stdout, rotator), rotator, nil
}

// Setup points the standard logger at stdout plus the rotated file, if any.
// The returned closer flushes and closes the file.
func Setup(opts Options) (io.Closer, error) {
	w, closer, err := NewWriter(os.Stdout, opts)
	if err != nil {
		return nil, err
	}

	flags := log.LstdFlags
	if opts.Debug {
		flags = log.LstdFlags | log.Lmicroseconds | log.Lshortfile
	}
	log.SetOutput(w)
	log.SetFlags(flags)
	return closer, nil
}
