package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gym_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// BookingsTotal counts booking attempts by outcome: "booked" or the
	// rejection code.
	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_bookings_total",
			Help: "Total number of booking attempts by outcome",
		},
		[]string{"outcome"},
	)

	AppointmentTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_appointment_transitions_total",
			Help: "Total number of appointment status transitions",
		},
		[]string{"to"},
	)

	TrainerFinderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gym_trainer_finder_duration_seconds",
			Help:    "Time spent finding available trainers for a service",
			Buckets: prometheus.DefBuckets,
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_notifications_total",
			Help: "Total number of notifications processed",
		},
		[]string{"type", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gym_notification_queue_length",
			Help: "Current length of the notification queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(outcome string) {
	BookingsTotal.WithLabelValues(outcome).Inc()
}

func RecordTransition(to string) {
	AppointmentTransitionsTotal.WithLabelValues(to).Inc()
}

func ObserveFinder(seconds float64) {
	TrainerFinderDuration.Observe(seconds)
}

func RecordNotification(eventType, status string) {
	NotificationsTotal.WithLabelValues(eventType, status).Inc()
}
