package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tutor_marketplace"

var (
	ApplicationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_created_total",
		Help:      "Applications submitted, by applicant kind (tutor or guest).",
	}, []string{"kind"})

	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "application_status_transitions_total",
		Help:      "Application status changes, by source and target status.",
	}, []string{"from", "to"})

	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Outbox notification delivery attempts, by channel and result.",
	}, []string{"channel", "result"})
)
