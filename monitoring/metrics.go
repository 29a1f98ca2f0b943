package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)
)

var (
	AppointmentsBooked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appointments_booked_total",
			Help: "Appointments created, by source",
		},
		[]string{"source"},
	)

	QueriesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queries_created_total",
			Help: "Complaints and queries raised, by sender type",
		},
		[]string{"sender"},
	)

	JobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduled_job_runs_total",
			Help: "Scheduled job executions, by job and outcome",
		},
		[]string{"job", "outcome"},
	)
)

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(AppointmentsBooked)
	prometheus.MustRegister(QueriesCreated)
	prometheus.MustRegister(JobRuns)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
