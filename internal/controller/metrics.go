package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	kindProducts = "products"
	kindFacets   = "facets"

	outcomeApplied = "applied"
	outcomeStale   = "stale"
	outcomeFailed  = "failed"
)

var (
	fetchesIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "controller_fetches_issued_total",
			Help: "Fetches scheduled by page controllers",
		},
		[]string{"kind"},
	)

	fetchResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "controller_fetch_results_total",
			Help: "Completed controller fetches by outcome (applied, stale, failed)",
		},
		[]string{"kind", "outcome"},
	)
)
