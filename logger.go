// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// logger.go — Logger interface used by Store, its noop default, and an
// adapter for charmbracelet/log. The bridge itself never logs.

package rediscodec

import "github.com/charmbracelet/log"

// Logger is the logging interface used by Store.
// Implement this to route logs to zap, slog, logrus, etc.
type Logger interface {
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	Debug(msg string, keysAndValues ...any)
}

type noopLogger struct{}

func (noopLogger) Info(_ string, _ ...any)  {}
func (noopLogger) Warn(_ string, _ ...any)  {}
func (noopLogger) Error(_ string, _ ...any) {}
func (noopLogger) Debug(_ string, _ ...any) {}

// NewCharmLogger adapts a charmbracelet/log logger; nil uses log.Default().
func NewCharmLogger(l *log.Logger) Logger {
	if l == nil {
		l = log.Default()
	}
	return charmLogger{l: l}
}

type charmLogger struct {
	l *log.Logger
}

func (c charmLogger) Info(msg string, kv ...any)  { c.l.Info(msg, kv...) }
func (c charmLogger) Warn(msg string, kv ...any)  { c.l.Warn(msg, kv...) }
func (c charmLogger) Error(msg string, kv ...any) { c.l.Error(msg, kv...) }
func (c charmLogger) Debug(msg string, kv ...any) { c.l.Debug(msg, kv...) }
