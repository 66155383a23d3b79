// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mereles/electiond/cliparse"
	"github.com/mereles/electiond/events"
	"github.com/mereles/electiond/handlers"
	"github.com/mereles/electiond/metrics"
	"github.com/mereles/electiond/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, pub events.Publisher, m *metrics.ServerMetrics) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(db, cfg, pub, m)
	candidateHandler := handlers.NewCandidateHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg, m)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithMetrics(m, pattern, middleware.WithLogging(h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Election lifecycle (admin operations)
	handle("GET /election/stats", electionHandler.GetStats)
	handle("POST /election/start", electionHandler.Start)
	handle("POST /election/end", electionHandler.End)
	handle("POST /election/reset", electionHandler.Reset)

	// Candidate management (admin)
	handle("GET /election/candidates", candidateHandler.List)
	handle("POST /election/candidates", candidateHandler.Add)

	// Results (admin, sealed until ended)
	handle("GET /election/results", resultsHandler.GetResults)
	handle("GET /election/archives", resultsHandler.GetArchives)

	// Voting operations (public)
	handle("POST /voters/register", votingHandler.RegisterVoter)
	handle("POST /votes", votingHandler.CastVote)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("electiond API v1"))
	})

	return mux
}
