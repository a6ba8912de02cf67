package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatter_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatter_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatter_users_registered_total",
			Help: "Total users registered",
		},
	)

	SignIns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatter_sign_ins_total",
			Help: "Total successful sign-ins",
		},
	)

	ChatsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatter_chats_created_total",
			Help: "Total chats created",
		},
	)

	MessagesPushed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatter_messages_pushed_total",
			Help: "Total messages pushed to chats",
		},
	)
)
