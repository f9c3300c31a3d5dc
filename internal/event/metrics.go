package event

import "github.com/prometheus/client_golang/prometheus"

var (
	broadcastsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "splashd",
			Subsystem: "events",
			Name:      "broadcasts_total",
			Help:      "Broadcasts that reached at least one listener",
		},
		[]string{"event"},
	)

	deliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "splashd",
			Subsystem: "events",
			Name:      "deliveries_total",
			Help:      "Listener invocations that returned without error",
		},
		[]string{"event"},
	)

	listenerFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "splashd",
			Subsystem: "events",
			Name:      "listener_failures_total",
			Help:      "Listener invocations that returned an error or panicked",
		},
		[]string{"event"},
	)

	// splashd runs one dispatcher; tests build theirs WithMetrics(false).
	listenersGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "splashd",
			Subsystem: "events",
			Name:      "listeners",
			Help:      "Registered listeners summed over every dispatcher in the process that has metrics enabled",
		},
	)
)

func init() {
	prometheus.MustRegister(broadcastsTotal, deliveriesTotal, listenerFailuresTotal, listenersGauge)
}
