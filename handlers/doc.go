// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the electiond API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - ElectionHandler: Lifecycle (stats, start, end, reset)
  - CandidateHandler: Candidate registration and listing
  - VotingHandler: Voter registration and vote casting
  - ResultsHandler: Sealed results and archives

Handlers are created via constructor functions that accept *sql.DB and Config:

	electionHandler := handlers.NewElectionHandler(db, cfg, pub, m)

ElectionHandler additionally takes a lifecycle event publisher and server
metrics; both may be nil.

# Election Lifecycle

The election progresses through three states: not started → active → ended

	POST /election/start - Start (requires candidates and voters)
	POST /election/end   - End and archive results
	POST /election/reset - Clear the ended election for the next round

Admin operations require the X-Admin-Key header. Results are sealed: GET
/election/results returns 403 until the election has ended.

# Voting

Voters register before the election starts and receive a token. One vote
per voter is enforced by the database, so a duplicate insert surfaces as
a unique violation rather than a read-then-write race.
*/
package handlers
