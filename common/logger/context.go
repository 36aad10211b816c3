package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Fields flow through context enrichment so pipeline stages never have to repeat the
// user or run they are working on.
type LogFields struct {
	UserID    *int64  // Employee whose conversation is being processed
	RunID     *int64  // Feedback pipeline run (job status record)
	MessageID *string // Redis stream message ID
	Stage     *string // Pipeline stage (e.g., "extract", "route", "categorize.manager")
	Role      *string // Feedback role ("employee" or "manager")
	RequestID *string // HTTP request ID (X-Request-ID)
	Component string  // Component name (OTel semantic convention style, e.g., "pulse.feedback.pipeline")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
// Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

// mergeFields merges two LogFields, preferring non-nil/non-empty values from 'new'.
func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.UserID != nil {
		result.UserID = new.UserID
	}
	if new.RunID != nil {
		result.RunID = new.RunID
	}
	if new.MessageID != nil {
		result.MessageID = new.MessageID
	}
	if new.Stage != nil {
		result.Stage = new.Stage
	}
	if new.Role != nil {
		result.Role = new.Role
	}
	if new.RequestID != nil {
		result.RequestID = new.RequestID
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{UserID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen characters, appending "..." if truncated.
// Useful for logging potentially long strings like prompts or raw completions.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
