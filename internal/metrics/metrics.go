// Package metrics collects and exposes Prometheus metrics for the
// delegation subsystem.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records delegation counters. Services hold it behind small
// consumer interfaces so tests can pass a no-op.
type Collector struct {
	tokensIssued     prometheus.Counter
	tokensDenied     *prometheus.CounterVec
	tokenValidations *prometheus.CounterVec
	draftsCreated    prometheus.Counter
	draftsPromoted   prometheus.Counter
	draftsRejected   prometheus.Counter
	draftsPurged     prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "delegation_tokens_issued_total",
			Help: "Delegated tokens successfully issued.",
		}),
		tokensDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "delegation_tokens_denied_total",
			Help: "Token issuance denials by reason.",
		}, []string{"reason"}),
		tokenValidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "delegation_token_validations_total",
			Help: "Bearer token validations by result.",
		}, []string{"result"}),
		draftsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "delegation_drafts_created_total",
			Help: "Draft clinical actions created under delegation.",
		}),
		draftsPromoted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "delegation_drafts_promoted_total",
			Help: "Drafts promoted to authoritative records.",
		}),
		draftsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "delegation_drafts_rejected_total",
			Help: "Drafts rejected by a clinician.",
		}),
		draftsPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "delegation_drafts_purged_total",
			Help: "Expired drafts removed by the purge job.",
		}),
	}

	reg.MustRegister(
		c.tokensIssued,
		c.tokensDenied,
		c.tokenValidations,
		c.draftsCreated,
		c.draftsPromoted,
		c.draftsRejected,
		c.draftsPurged,
	)

	return c
}

// RecordTokenIssued counts a successful issuance.
func (c *Collector) RecordTokenIssued() {
	c.tokensIssued.Inc()
}

// RecordTokenDenied counts a denial under its reason code.
func (c *Collector) RecordTokenDenied(reason string) {
	c.tokensDenied.WithLabelValues(reason).Inc()
}

// RecordTokenValidation counts a bearer validation attempt.
// result is "ok" or "rejected".
func (c *Collector) RecordTokenValidation(result string) {
	c.tokenValidations.WithLabelValues(result).Inc()
}

// RecordDraftCreated counts a draft created under delegation.
func (c *Collector) RecordDraftCreated() {
	c.draftsCreated.Inc()
}

// RecordDraftPromoted counts a promotion.
func (c *Collector) RecordDraftPromoted() {
	c.draftsPromoted.Inc()
}

// RecordDraftRejected counts a rejection.
func (c *Collector) RecordDraftRejected() {
	c.draftsRejected.Inc()
}

// RecordDraftsPurged counts drafts removed by the purge job.
func (c *Collector) RecordDraftsPurged(count int64) {
	c.draftsPurged.Add(float64(count))
}

// Handler returns the Prometheus scrape handler for the registry.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
