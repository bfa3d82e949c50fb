package catalogue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchesApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalogue_fetches_total",
		Help: "The total number of search results applied to a catalogue view, by outcome",
	}, []string{"outcome"})
	staleResponses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalogue_stale_responses_total",
		Help: "The total number of search responses dropped because a newer request was issued",
	})
	missingTotals = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalogue_missing_totals_total",
		Help: "The total number of search responses without a total item count",
	})
)
