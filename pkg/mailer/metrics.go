package mailer

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace    = "hare"
	subsystem    = "mailer"
	kindLabel    = "kind"
	successLabel = "success"
)

var (
	sendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sends_total",
			Help:      "Total number of mail sends, including successful and failed.",
		},
		[]string{kindLabel, successLabel},
	)

	sendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "send_duration_seconds",
			Help:      "Duration of a dial-and-send round trip to the SMTP server.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{kindLabel},
	)
)

func recordSend(kind Kind, success bool, duration time.Duration) {
	// the order of the values should be same as defined in the metric declaration.
	sendsTotal.WithLabelValues(string(kind), strconv.FormatBool(success)).Inc()
	sendDuration.WithLabelValues(string(kind)).Observe(duration.Seconds())
}
