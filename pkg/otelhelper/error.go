package otelhelper

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SetError marks the span as failed.
func SetError(span trace.Span, err error, attrs ...attribute.KeyValue) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.AddEvent("error_occurred", trace.WithAttributes(attrs...))
}

// SetDiagnostics records validation or simulation counts on the span. Diagnostics are
// results, not failures, so the span status is left untouched.
func SetDiagnostics(span trace.Span, errs, warnings int) {
	span.SetAttributes(
		attribute.Int(ErrorCountKey, errs),
		attribute.Int(WarningCountKey, warnings),
	)
}
