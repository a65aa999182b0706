package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pinpoint_events_created_total",
		Help: "Events accepted and persisted by the store.",
	})

	SnapshotsEvaluated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pinpoint_snapshots_evaluated_total",
		Help: "Event snapshots passed through the proximity filter.",
	})

	NotificationsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pinpoint_notifications_enqueued_total",
		Help: "Proximity alerts pushed onto the delivery queue.",
	})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pinpoint_notifications_sent_total",
		Help: "Delivery attempts by outcome.",
	}, []string{"status"})
)
