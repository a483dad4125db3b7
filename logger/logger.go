// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// timeLayout renders local timestamps with millisecond precision, with a
// comma before the milliseconds as the original bot log files use.
const timeLayout = "2006-01-02 15:04:05,000"

var (
	// nullLogger is a logger with no sinks that discards all log messages.
	nullLogger = &handle{name: "null", now: time.Now}
)

// Logger describes the interface that must be implemented by all loggers.
type Logger interface {
	// Name returns the logger name emitted on every line.
	Name() string

	// WithName returns a child logger named "<parent>.<name>" sharing the
	// sinks and severity threshold of its parent.
	WithName(name string) Logger

	// SetLevel updates the minimum severity emitted by the logger.
	SetLevel(level Level)

	// Level returns the current minimum severity.
	Level() Level

	// Debug emits a message at the DEBUG level.
	Debug(msg string, args ...any)

	// Info emits a message at the INFO level.
	Info(msg string, args ...any)

	// Warning emits a message at the WARNING level.
	Warning(msg string, args ...any)

	// Error emits a message at the ERROR level.
	Error(msg string, args ...any)

	// Critical emits a message at the CRITICAL level.
	Critical(msg string, args ...any)
}

// Make sure that handle is a Logger.
var _ Logger = &handle{}

// handle is the Logger implementation held by the registry. The severity
// threshold can change on repeated Setup calls, the sink set cannot.
type handle struct {
	name     string
	level    atomic.Int32
	filePath string

	mu    sync.Mutex
	sinks []Sink

	now func() time.Time
}

// New creates a logger with the given name writing to the provided sinks.
// It does not touch the registry; use Setup for registry-backed loggers.
func New(name string, level Level, sinks ...Sink) Logger {
	h := &handle{
		name:  name,
		sinks: sinks,
		now:   time.Now,
	}
	h.level.Store(int32(level))
	return h
}

func (h *handle) Name() string {
	return h.name
}

func (h *handle) WithName(name string) Logger {
	return &childLogger{parent: h, name: h.name + "." + name}
}

func (h *handle) SetLevel(level Level) {
	h.level.Store(int32(level))
}

func (h *handle) Level() Level {
	return Level(h.level.Load())
}

func (h *handle) Debug(msg string, args ...any) {
	h.emit(h.name, DEBUG, msg, args...)
}

func (h *handle) Info(msg string, args ...any) {
	h.emit(h.name, INFO, msg, args...)
}

func (h *handle) Warning(msg string, args ...any) {
	h.emit(h.name, WARNING, msg, args...)
}

func (h *handle) Error(msg string, args ...any) {
	h.emit(h.name, ERROR, msg, args...)
}

func (h *handle) Critical(msg string, args ...any) {
	h.emit(h.name, CRITICAL, msg, args...)
}

// emit formats the entry and writes the same line to every attached sink.
// Entries below the severity threshold are dropped. Sink write failures are
// ignored: a logger has nowhere left to report them.
func (h *handle) emit(name string, level Level, msg string, args ...any) {
	if level < h.Level() {
		return
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	line := formatLine(h.now(), name, level, msg)

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sink := range h.sinks {
		_ = sink.Write(level, line)
	}
}

// sinkCount reports how many sinks are attached, for the registry
// idempotence guard.
func (h *handle) sinkCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sinks)
}

// formatLine renders an entry as "<timestamp> - <name> - <LEVEL> - <message>".
func formatLine(ts time.Time, name string, level Level, msg string) string {
	return ts.Format(timeLayout) + " - " + name + " - " + level.String() + " - " + msg
}

// childLogger emits through its parent sinks under a derived name.
type childLogger struct {
	parent *handle
	name   string
}

var _ Logger = &childLogger{}

func (c *childLogger) Name() string {
	return c.name
}

func (c *childLogger) WithName(name string) Logger {
	return &childLogger{parent: c.parent, name: c.name + "." + name}
}

func (c *childLogger) SetLevel(level Level) {
	c.parent.SetLevel(level)
}

func (c *childLogger) Level() Level {
	return c.parent.Level()
}

func (c *childLogger) Debug(msg string, args ...any) {
	c.parent.emit(c.name, DEBUG, msg, args...)
}

func (c *childLogger) Info(msg string, args ...any) {
	c.parent.emit(c.name, INFO, msg, args...)
}

func (c *childLogger) Warning(msg string, args ...any) {
	c.parent.emit(c.name, WARNING, msg, args...)
}

func (c *childLogger) Error(msg string, args ...any) {
	c.parent.emit(c.name, ERROR, msg, args...)
}

func (c *childLogger) Critical(msg string, args ...any) {
	c.parent.emit(c.name, CRITICAL, msg, args...)
}
