package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "notification_events_total",
	Help: "Notification events by kind and outcome",
}, []string{"kind", "outcome"})

var pushCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "notification_pushes_total",
	Help: "Per-token push results",
}, []string{"kind", "outcome"})

var skippedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "notification_recipients_skipped_total",
	Help: "Recipients skipped before delivery",
}, []string{"kind", "reason"})

var queueDepthGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "notification_queue_depth",
	Help: "Events waiting for a dispatcher worker",
})

var handleHist = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "notification_handle_duration_seconds",
	Help:    "Time from dequeue to completion of an event",
	Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
}, []string{"kind"})
