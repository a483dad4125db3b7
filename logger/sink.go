// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// ErrOpenLogFile reports failures while preparing the log file for appending.
	ErrOpenLogFile = errors.New("error opening log file")
)

// Sink receives formatted log lines. The severity of the line is passed
// alongside it so that sinks can decorate or skip entries without parsing
// the formatted text.
type Sink interface {
	Write(level Level, line string) error
}

// RotationConfig holds the limits for a rotating file sink.
type RotationConfig struct {
	// MaxSizeMB is the maximum size in megabytes a log file can reach before
	// it is rotated.
	MaxSizeMB int
	// MaxBackups is the maximum number of rotated files to retain.
	MaxBackups int
	// MaxAgeDays is the maximum number of days a rotated file is retained.
	MaxAgeDays int
}

// fileSink appends formatted lines to a single file.
type fileSink struct {
	file *os.File
}

// NewFileSink opens path for appending, creating the parent directories if
// they are missing. The file handle stays open for the process lifetime.
func NewFileSink(path string) (Sink, error) {
	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenLogFile, err)
	}

	return &fileSink{file: file}, nil
}

func (s *fileSink) Write(_ Level, line string) error {
	_, err := s.file.WriteString(line + "\n")
	return err
}

// rotatingFileSink appends formatted lines to a file rotated by lumberjack.
type rotatingFileSink struct {
	writer io.Writer
}

// NewRotatingFileSink returns a file sink that rotates the file at path when
// the configured size, backup, or age limits are exceeded.
func NewRotatingFileSink(path string, cfg RotationConfig) (Sink, error) {
	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	return &rotatingFileSink{
		writer: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			LocalTime:  true,
		},
	}, nil
}

func (s *rotatingFileSink) Write(_ Level, line string) error {
	_, err := io.WriteString(s.writer, line+"\n")
	return err
}

// consoleSink writes formatted lines to a console stream, optionally
// colorizing them by severity.
type consoleSink struct {
	out      io.Writer
	colorize bool
}

// levelColors maps severities to the color used when colorized console
// output is enabled.
var levelColors = map[Level]*color.Color{
	DEBUG:    color.New(color.FgCyan),
	WARNING:  color.New(color.FgYellow),
	ERROR:    color.New(color.FgRed),
	CRITICAL: color.New(color.FgRed, color.Bold),
}

// NewConsoleSink returns a sink writing to out, or to standard output when
// out is nil. With colorize enabled, lines are tinted by severity; the
// formatted content stays identical to the file sink output.
func NewConsoleSink(out io.Writer, colorize bool) Sink {
	if out == nil {
		out = os.Stdout
	}
	return &consoleSink{out: out, colorize: colorize}
}

func (s *consoleSink) Write(level Level, line string) error {
	if s.colorize {
		if c, ok := levelColors[level]; ok {
			_, err := c.Fprintln(s.out, line)
			return err
		}
	}

	_, err := fmt.Fprintln(s.out, line)
	return err
}

// ensureParentDir creates the parent directory of path when it has one.
func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrOpenLogFile, err)
	}
	return nil
}
