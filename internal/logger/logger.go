// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog.Logger for the REST API server.
//
// Entries are JSON lines carrying role, time and a func caller field holding
// the fully qualified function name. Request-scoped loggers travel in the
// context (see FromContext and FromRequest) with the trace id already set.
package logger

import (
	"context"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Logger struct {
	zerolog.Logger
}

// NewLogger writes to stdout. role names the process, e.g. "rest-api-server".
func NewLogger(role string) *Logger {
	return New(role, os.Stdout)
}

// New is NewLogger with an explicit destination. It also sets the zerolog
// globals the server relies on: Debug as the global level and a caller
// field named "func".
func New(role string, w io.Writer) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// Nop discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger copies l so fields added to the copy stay out of l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached with zerolog's WithContext, or
// zerolog's default logger when none is attached. Never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// WithLevel returns a copy of l that only emits entries at level or above.
// An unknown or empty level leaves l unchanged.
func (l *Logger) WithLevel(level string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return l
	}
	return &Logger{l.Level(lvl)}
}

// StdLogger adapts l for APIs that take a standard library *log.Logger,
// such as http.Server.ErrorLog. Entries carry the component field.
func (l *Logger) StdLogger(component string) *stdlog.Logger {
	return stdlog.New(l.With().Str("component", component).Logger(), "", 0)
}
