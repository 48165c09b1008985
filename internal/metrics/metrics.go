// Package metrics holds Prometheus instruments used across the builder.
// All collectors are registered with the global registry, so importing
// this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveSites = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_sites",
			Help: "Number of sites currently loaded in the host cache.",
		})

	SiteLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "site_load_total",
			Help: "Cumulative number of sites successfully loaded by host.",
		})

	SiteLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "site_load_errors_total",
			Help: "Cumulative number of site load errors.",
		})

	SiteEvictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "site_evict_total",
			Help: "Cumulative number of sites evicted from the host cache.",
		})

	PageRenderTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "page_render_total",
			Help: "Cumulative number of public page renders.",
		})

	SectionSkipTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "section_skip_total",
			Help: "Sections skipped during render, by reason.",
		},
		[]string{"reason"}, // unknown_type | empty_content | render_error
	)

	SectionMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "section_mutations_total",
			Help: "Section list mutations applied, by operation.",
		},
		[]string{"op"}, // add | update | remove | reorder | duplicate
	)
)

func init() {
	prometheus.MustRegister(
		ActiveSites,
		SiteLoadTotal,
		SiteLoadErrorsTotal,
		SiteEvictTotal,
		PageRenderTotal,
		SectionSkipTotal,
		SectionMutationsTotal,
	)
}
