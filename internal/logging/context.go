package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for batch run identifiers.
	FieldRunID = "run_id"
	// FieldDocument is the standardized structured logging key for document names.
	FieldDocument = "document"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldImpact is the standardized key for the user-facing consequence of a warning.
	FieldImpact = "impact"
)

type contextKey int

const (
	runIDKey contextKey = iota
	documentKey
)

// WithRunID tags ctx with a batch run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext returns the run identifier stored by WithRunID.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// WithDocument tags ctx with the name of the document being processed.
func WithDocument(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, documentKey, name)
}

// DocumentFromContext returns the document name stored by WithDocument.
func DocumentFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(documentKey).(string)
	return name, ok && name != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if name, ok := DocumentFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldDocument, name))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
