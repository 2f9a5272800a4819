package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

var (
	registerOnce sync.Once

	messages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wirepack",
			Subsystem: "exchange",
			Name:      "messages_total",
			Help:      "Messages exchanged with peers.",
		},
		[]string{"node", "direction", "type"},
	)
	messageBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wirepack",
			Subsystem: "exchange",
			Name:      "bytes_total",
			Help:      "Encoded bytes exchanged with peers, headers included.",
		},
		[]string{"node", "direction"},
	)
	payloadSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wirepack",
			Subsystem: "exchange",
			Name:      "payload_bytes",
			Help:      "Size of message payloads in bytes.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		},
		[]string{"node", "direction"},
	)
	decodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wirepack",
			Subsystem: "exchange",
			Name:      "decode_failures_total",
			Help:      "Messages that failed to decode, by error class.",
		},
		[]string{"node", "class"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(messages, messageBytes, payloadSize, decodeFailures)
	})
}

func RecordMessage(node, direction, msgType string, wireBytes, payloadBytes int) {
	RegisterMetrics()
	messages.WithLabelValues(node, direction, msgType).Inc()
	messageBytes.WithLabelValues(node, direction).Add(float64(wireBytes))
	payloadSize.WithLabelValues(node, direction).Observe(float64(payloadBytes))
}

func RecordDecodeFailure(node string, err error) {
	RegisterMetrics()
	decodeFailures.WithLabelValues(node, ErrorClass(err)).Inc()
}
