package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/hamjambo/hare-report-mailer/pkg/report"
)

func StartTracer(ctx context.Context, reportID string, rep *report.Report, spanName string) (context.Context, trace.Span) {
	return otel.Tracer("").Start(ctx, spanName, SpanAttributes(reportID, rep))
}
