// Package metrics exposes the Prometheus metrics of the portal service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeFailed    = "invalid_credentials"
	OutcomeRejected  = "rejected"
	OutcomeThrottled = "throttled"
	OutcomeInvalid   = "validation"
	OutcomeRecaptcha = "recaptcha"
	OutcomeError     = "error"
)

type Collector struct {
	loginAttempts   *prometheus.CounterVec
	loginThrottled  *prometheus.CounterVec
	loginDuration   *prometheus.HistogramVec
	policyDenials   *prometheus.CounterVec
	trackingFailure *prometheus.CounterVec
}

// NewCollector creates the collectors and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_login_attempts_total",
			Help: "Login attempts by portal and outcome.",
		}, []string{"portal", "outcome"}),
		loginThrottled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_login_throttled_total",
			Help: "Login attempts rejected by the throttle.",
		}, []string{"portal"}),
		loginDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_login_duration_seconds",
			Help:    "Time spent handling a login attempt.",
			Buckets: prometheus.DefBuckets,
		}, []string{"portal"}),
		policyDenials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_policy_denials_total",
			Help: "Denied authorization checks.",
		}, []string{"resource", "ability"}),
		trackingFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_tracking_failures_total",
			Help: "Session bookkeeping failures that were swallowed.",
		}, []string{"event"}),
	}

	reg.MustRegister(
		c.loginAttempts,
		c.loginThrottled,
		c.loginDuration,
		c.policyDenials,
		c.trackingFailure,
	)

	return c
}

func (c *Collector) LoginAttempt(portal, outcome string, d time.Duration) {
	c.loginAttempts.WithLabelValues(portal, outcome).Inc()
	c.loginDuration.WithLabelValues(portal).Observe(d.Seconds())
	if outcome == OutcomeThrottled {
		c.loginThrottled.WithLabelValues(portal).Inc()
	}
}

func (c *Collector) PolicyDenied(resource, ability string) {
	c.policyDenials.WithLabelValues(resource, ability).Inc()
}

func (c *Collector) TrackingFailed(event string, _ error) {
	c.trackingFailure.WithLabelValues(event).Inc()
}

// Handler serves the registry for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
