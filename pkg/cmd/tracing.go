package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukex/hrflow/pkg/otelhelper"
	"go.opentelemetry.io/otel/trace"
)

// NewTracer returns a tracer and its shutdown function. With tracing disabled the tracer
// records nothing and shutdown is a no-op.
//
// nolint:ireturn // Returning interface is intentional for OpenTelemetry tracing
func NewTracer(ctx context.Context, logger *slog.Logger, enabled bool, serviceName string) (trace.Tracer, func(), error) {
	if !enabled {
		return otelhelper.NoopTracer(), func() {}, nil
	}

	tp, err := otelhelper.NewTracerProvider(ctx, serviceName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}

	shutdown := func() {
		if err := tp.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	return tp.Tracer(serviceName), shutdown, nil
}
