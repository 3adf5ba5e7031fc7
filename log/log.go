/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package log defines the logging interface used by the schema builder and the loader.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level is the severity of a log message.
type Level int

// Enumeration of Level
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	// LevelSilent disables all output from DefaultLogger.
	LevelSilent
)

// String returns the lower-case name of the level.
func (level Level) String() string {
	switch level {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelSilent:
		return "silent"
	}
	return fmt.Sprintf("Level(%d)", int(level))
}

// ParseLevel parses a level name. Empty string yields LevelInfo.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "silent", "none", "off":
		return LevelSilent, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// Logger receives diagnostics from schema construction.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// LoggerFunc adapts a function to the Logger interface.
type LoggerFunc func(level Level, format string, args ...interface{})

var _ Logger = (LoggerFunc)(nil)

// Debugf calls f with LevelDebug.
func (f LoggerFunc) Debugf(format string, args ...interface{}) {
	f(LevelDebug, format, args...)
}

// Infof calls f with LevelInfo.
func (f LoggerFunc) Infof(format string, args ...interface{}) {
	f(LevelInfo, format, args...)
}

// Warnf calls f with LevelWarn.
func (f LoggerFunc) Warnf(format string, args ...interface{}) {
	f(LevelWarn, format, args...)
}

// DefaultLogger writes messages at or above its level through a standard library logger.
type DefaultLogger struct {
	level  Level
	logger *log.Logger
}

var _ Logger = (*DefaultLogger)(nil)

// NewDefaultLogger creates a DefaultLogger that writes to stderr.
func NewDefaultLogger(level Level) *DefaultLogger {
	return NewDefaultLoggerTo(os.Stderr, level)
}

// NewDefaultLoggerTo creates a DefaultLogger that writes to w.
func NewDefaultLoggerTo(w io.Writer, level Level) *DefaultLogger {
	return &DefaultLogger{
		level:  level,
		logger: log.New(w, "gqlcore: ", log.LstdFlags),
	}
}

// Level returns the minimum level written by the logger.
func (l *DefaultLogger) Level() Level {
	return l.level
}

func (l *DefaultLogger) logf(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.logger.Printf("["+level.String()+"] "+format, args...)
}

// Debugf implements Logger.
func (l *DefaultLogger) Debugf(format string, args ...interface{}) {
	l.logf(LevelDebug, format, args...)
}

// Infof implements Logger.
func (l *DefaultLogger) Infof(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}

// Warnf implements Logger.
func (l *DefaultLogger) Warnf(format string, args ...interface{}) {
	l.logf(LevelWarn, format, args...)
}

// NopLogger discards everything.
type NopLogger struct{}

var _ Logger = NopLogger{}

// Debugf implements Logger.
func (NopLogger) Debugf(format string, args ...interface{}) {}

// Infof implements Logger.
func (NopLogger) Infof(format string, args ...interface{}) {}

// Warnf implements Logger.
func (NopLogger) Warnf(format string, args ...interface{}) {}
