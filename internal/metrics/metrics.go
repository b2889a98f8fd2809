package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests handled"},
	)
	NotificationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "ride_notifications_created_total", Help: "Total ride notifications created"},
	)
	SeatsAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "ride_seats_accepted_total", Help: "Total seats taken through accepted join requests and invitations"},
	)
	ExportsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "admin_exports_generated_total", Help: "Total admin CSV/PDF exports generated"},
	)
)

func Register() {
	prometheus.MustRegister(RequestsTotal, NotificationsCreated, SeatsAccepted, ExportsGenerated)
}
