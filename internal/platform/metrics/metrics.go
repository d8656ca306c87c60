package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ScoresSubmittedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "league_scores_submitted_total",
	Help: "Score submissions by outcome (winner, undetermined)",
}, []string{"outcome"})

var WinnerPropagationCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "league_winner_propagation_total",
	Help: "Winner writes into dependent match slots by result",
}, []string{"result"})

var RosterChangeCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "league_roster_changes_total",
	Help: "Roster change ledger transitions by type and status",
}, []string{"type", "status"})

var BracketBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "league_bracket_build_seconds",
	Help:    "Time spent loading and building one sport bracket",
	Buckets: prometheus.DefBuckets,
})

var LiveClientsGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "league_live_clients",
	Help: "Websocket clients currently subscribed to bracket updates",
})

var HTTPRequestsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "league_http_requests_total",
	Help: "HTTP requests by method, route pattern and status code",
}, []string{"method", "route", "status_code"})

var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "league_http_request_duration_seconds",
	Help:    "HTTP request latency by route pattern",
	Buckets: prometheus.DefBuckets,
}, []string{"route"})
