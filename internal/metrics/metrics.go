package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for auth outcomes, served at /metrics. Labels stay low-cardinality:
// result is "success" or "failure", never a username.
var (
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_login_attempts_total",
		Help: "Login attempts by outcome.",
	}, []string{"result"})

	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Registration attempts by outcome.",
	}, []string{"result"})

	TokenValidationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_token_validation_failures_total",
		Help: "Bearer tokens rejected at validation.",
	})
)
