package reporting

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hamjambo/hare-report-mailer/pkg/health"
	"github.com/hamjambo/hare-report-mailer/pkg/render"
)

const (
	namespace    = "hare"
	resultLabel  = "result"
	sectionLabel = "section"
	tierLabel    = "tier"

	resultSuccess  = "success"
	resultRejected = "rejected"
	resultFailed   = "failed"
)

var (
	reportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Number of submitted reports by outcome: success, rejected (invalid payload) or failed (render or send error).",
		},
		[]string{resultLabel},
	)

	sectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_sections_total",
			Help:      "Number of rendered report sections by health tier.",
		},
		[]string{sectionLabel, tierLabel},
	)
)

func recordReport(result string) {
	reportsTotal.WithLabelValues(result).Inc()
}

func recordSections(statuses map[render.Section]health.Status) {
	for section, status := range statuses {
		// the order of the values should be same as defined in the metric declaration.
		sectionsTotal.WithLabelValues(string(section), string(status.Tier)).Inc()
	}
}
