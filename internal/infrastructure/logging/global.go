package logging

import (
	"context"
)

// Package level shortcuts. Callers outside this package never hold a Logger directly,
// they log through these and the domain accessors below.

func Debug(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Debug(ctx, message, fields)
}

func Info(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Info(ctx, message, fields)
}

func Warn(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Warn(ctx, message, fields)
}

func Error(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Error(ctx, message, fields)
}

// WarnWithError is for failures the service recovers from (a scheduled refresh, a readiness probe)
func WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	GetGlobalLogger().WarnWithError(ctx, message, err, fields)
}

func ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	GetGlobalLogger().ErrorWithError(ctx, message, err, fields)
}

// Domain loggers tag every entry with their domain field

func HTTP() HTTPLogger               { return GetGlobalLoggers().HTTP }
func ExternalAPI() ExternalAPILogger { return GetGlobalLoggers().ExternalAPI }
func Store() StoreLogger             { return GetGlobalLoggers().Store }
func Business() BusinessLogger       { return GetGlobalLoggers().Business }
func Security() SecurityLogger       { return GetGlobalLoggers().Security }
