package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP requests by method, route and status"},
		[]string{"method", "route", "status"},
	)
	AssetUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "asset_uploads_total", Help: "Asset store uploads by result"},
		[]string{"result"},
	)
	RegistrationIncrementFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "event_registration_increment_failures_total",
			Help: "Event registrations stored without bumping the event counter",
		},
	)
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests, AssetUploads, RegistrationIncrementFailures)
}
