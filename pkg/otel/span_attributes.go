package otel

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hamjambo/hare-report-mailer/pkg/report"
)

const (
	reportIDAttr     = "report_id"
	manufacturerAttr = "manufacturer"
	modelAttr        = "model"
	hasBatteryAttr   = "has_battery"
)

// SpanAttributes describes a report without any of the submitter's personal data.
func SpanAttributes(reportID string, rep *report.Report) trace.SpanStartEventOption {
	attrs := []attribute.KeyValue{attribute.String(reportIDAttr, reportID)}

	if rep.System != nil {
		attrs = append(attrs,
			attribute.String(manufacturerAttr, rep.System.Manufacturer),
			attribute.String(modelAttr, rep.System.Model),
		)
	}

	if rep.Battery != nil {
		attrs = append(attrs, attribute.Bool(hasBatteryAttr, rep.Battery.HasBattery))
	}

	return trace.WithAttributes(attrs...)
}
