// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"fmt"
	"io"
	stdlog "log"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// HCLogAdapter exposes a configured Logger as a hashicorp/go-hclog logger,
// so dependencies built against hclog write through the same sinks. Key and
// value pairs are rendered inline as "key=value" tokens after the message.
func HCLogAdapter(log Logger) hclog.Logger {
	return &hclogAdapter{log: log}
}

type hclogAdapter struct {
	log     Logger
	implied []any
}

var _ hclog.Logger = &hclogAdapter{}

// levelFromHCLog narrows the hclog scale onto the five supported severities.
// hclog has no CRITICAL, and TRACE maps onto DEBUG.
func levelFromHCLog(level hclog.Level) Level {
	switch level {
	case hclog.Trace, hclog.Debug:
		return DEBUG
	case hclog.Info, hclog.NoLevel:
		return INFO
	case hclog.Warn:
		return WARNING
	default:
		return ERROR
	}
}

// levelToHCLog is the inverse mapping used by GetLevel.
func levelToHCLog(level Level) hclog.Level {
	switch level {
	case DEBUG:
		return hclog.Debug
	case INFO:
		return hclog.Info
	case WARNING:
		return hclog.Warn
	default:
		return hclog.Error
	}
}

func (a *hclogAdapter) Log(level hclog.Level, msg string, args ...any) {
	msg = a.render(msg, args)

	switch levelFromHCLog(level) {
	case DEBUG:
		a.log.Debug(msg)
	case INFO:
		a.log.Info(msg)
	case WARNING:
		a.log.Warning(msg)
	default:
		a.log.Error(msg)
	}
}

func (a *hclogAdapter) Trace(msg string, args ...any) { a.Log(hclog.Trace, msg, args...) }
func (a *hclogAdapter) Debug(msg string, args ...any) { a.Log(hclog.Debug, msg, args...) }
func (a *hclogAdapter) Info(msg string, args ...any)  { a.Log(hclog.Info, msg, args...) }
func (a *hclogAdapter) Warn(msg string, args ...any)  { a.Log(hclog.Warn, msg, args...) }
func (a *hclogAdapter) Error(msg string, args ...any) { a.Log(hclog.Error, msg, args...) }

func (a *hclogAdapter) IsTrace() bool { return false }
func (a *hclogAdapter) IsDebug() bool { return a.log.Level() <= DEBUG }
func (a *hclogAdapter) IsInfo() bool  { return a.log.Level() <= INFO }
func (a *hclogAdapter) IsWarn() bool  { return a.log.Level() <= WARNING }
func (a *hclogAdapter) IsError() bool { return a.log.Level() <= ERROR }

func (a *hclogAdapter) ImpliedArgs() []any {
	return a.implied
}

func (a *hclogAdapter) With(args ...any) hclog.Logger {
	implied := make([]any, 0, len(a.implied)+len(args))
	implied = append(implied, a.implied...)
	implied = append(implied, args...)
	return &hclogAdapter{log: a.log, implied: implied}
}

func (a *hclogAdapter) Name() string {
	return a.log.Name()
}

func (a *hclogAdapter) Named(name string) hclog.Logger {
	return &hclogAdapter{log: a.log.WithName(name), implied: a.implied}
}

// ResetNamed cannot rename the underlying registry handle, so it behaves
// like Named from the adapter base.
func (a *hclogAdapter) ResetNamed(name string) hclog.Logger {
	return a.Named(name)
}

func (a *hclogAdapter) SetLevel(level hclog.Level) {
	a.log.SetLevel(levelFromHCLog(level))
}

func (a *hclogAdapter) GetLevel() hclog.Level {
	return levelToHCLog(a.log.Level())
}

func (a *hclogAdapter) StandardLogger(opts *hclog.StandardLoggerOptions) *stdlog.Logger {
	return stdlog.New(a.StandardWriter(opts), "", 0)
}

func (a *hclogAdapter) StandardWriter(_ *hclog.StandardLoggerOptions) io.Writer {
	return &stdWriterAdapter{log: a.log}
}

// render joins the message with the key/value pairs in a flat line.
func (a *hclogAdapter) render(msg string, args []any) string {
	pairs := make([]any, 0, len(a.implied)+len(args))
	pairs = append(pairs, a.implied...)
	pairs = append(pairs, args...)
	if len(pairs) == 0 {
		return msg
	}

	tokens := make([]string, 0, len(pairs)/2+1)
	tokens = append(tokens, msg+":")
	for i := 0; i+1 < len(pairs); i += 2 {
		tokens = append(tokens, fmt.Sprintf("%v=%v", pairs[i], pairs[i+1]))
	}
	if len(pairs)%2 != 0 {
		tokens = append(tokens, fmt.Sprintf("%v", pairs[len(pairs)-1]))
	}

	return strings.Join(tokens, " ")
}

// stdWriterAdapter forwards lines written by a standard library logger.
type stdWriterAdapter struct {
	log Logger
}

func (w *stdWriterAdapter) Write(p []byte) (int, error) {
	w.log.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
