// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the electiond API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, pub, m)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Election lifecycle (admin, requires X-Admin-Key):

	GET  /election/stats      - Status snapshot (public)
	POST /election/start      - Start the election
	POST /election/end        - End and archive results
	POST /election/reset      - Reset for the next round
	GET  /election/candidates - List candidates
	POST /election/candidates - Add candidate
	GET  /election/results    - Per-candidate tallies (sealed until ended)
	GET  /election/archives   - Past elections

Voting (public, uses X-Voter-Token):

	POST /voters/register - Register and receive a token
	POST /votes           - Cast a vote
*/
package router
