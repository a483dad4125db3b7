// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// DefaultLogFile is the file path used when Setup is called without one.
const DefaultLogFile = "bot.log"

var (
	// ErrEmptyName reports a Setup call without a logger name.
	ErrEmptyName = errors.New("logger name must not be empty")

	// ErrPathConflict reports a repeated Setup call that asked for a file
	// path different from the one the logger was first configured with. The
	// returned logger is still valid and keeps writing to the original path.
	ErrPathConflict = errors.New("log file path ignored, logger already configured")
)

// defaultRegistry backs the package-level Setup function.
var defaultRegistry = NewRegistry()

// Registry holds named loggers for the lifetime of the process. Lookup and
// sink attachment happen under a single lock so that concurrent Setup calls
// for the same name cannot attach duplicate sinks.
type Registry struct {
	mu      sync.Mutex
	handles map[string]*handle
}

// NewRegistry returns an empty logger registry.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]*handle)}
}

// settings collects the values configurable through Options.
type settings struct {
	level    Level
	filePath string
	console  io.Writer
	colorize bool
	rotation *RotationConfig
}

// Option customizes a Setup call.
type Option func(*settings)

// WithLevel sets the minimum severity of the logger. On repeated Setup
// calls this is the only setting applied.
func WithLevel(level Level) Option {
	return func(s *settings) { s.level = level }
}

// WithFilePath sets the log file path, creating missing parent directories.
// Defaults to DefaultLogFile.
func WithFilePath(path string) Option {
	return func(s *settings) { s.filePath = path }
}

// WithConsole redirects console output to w instead of standard output.
func WithConsole(w io.Writer) Option {
	return func(s *settings) { s.console = w }
}

// WithColor colorizes console lines by severity. File output is never
// colorized.
func WithColor() Option {
	return func(s *settings) { s.colorize = true }
}

// WithRotation replaces the plain append-mode file sink with one rotated by
// the given limits.
func WithRotation(cfg RotationConfig) Option {
	return func(s *settings) { s.rotation = &cfg }
}

// Setup looks up or creates the named logger in the process-wide registry.
// See (*Registry).Setup.
func Setup(name string, opts ...Option) (Logger, error) {
	return defaultRegistry.Setup(name, opts...)
}

// Setup looks up or creates the named logger. On first call it attaches
// exactly one file sink (append mode, parents created as needed) and one
// console sink, both emitting "<timestamp> - <name> - <LEVEL> - <message>"
// lines. Repeated calls for the same name only update the severity
// threshold; the sink set never grows. Asking for a different file path on
// a repeated call returns the existing logger together with
// ErrPathConflict.
func (r *Registry) Setup(name string, opts ...Option) (Logger, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	cfg := settings{level: INFO}
	for _, opt := range opts {
		opt(&cfg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.handles[name]; ok && h.sinkCount() > 0 {
		h.SetLevel(cfg.level)
		if cfg.filePath != "" && cfg.filePath != h.filePath {
			return h, fmt.Errorf("%w: writing to %q, requested %q", ErrPathConflict, h.filePath, cfg.filePath)
		}
		return h, nil
	}

	path := cfg.filePath
	if path == "" {
		path = DefaultLogFile
	}

	var file Sink
	var err error
	if cfg.rotation != nil {
		file, err = NewRotatingFileSink(path, *cfg.rotation)
	} else {
		file, err = NewFileSink(path)
	}
	if err != nil {
		return nil, err
	}

	h := &handle{
		name:     name,
		filePath: path,
		sinks:    []Sink{file, NewConsoleSink(cfg.console, cfg.colorize)},
		now:      time.Now,
	}
	h.level.Store(int32(cfg.level))
	r.handles[name] = h

	return h, nil
}

// Get returns the named logger if it has already been configured.
func (r *Registry) Get(name string) (Logger, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.handles[name]
	if !ok {
		return nil, false
	}
	return h, true
}
