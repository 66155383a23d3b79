// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - StartElectionRequest: electionName
  - ResetElectionRequest: electionName
  - AddCandidateRequest: name, party
  - RegisterVoterRequest: name
  - CastVoteRequest: candidateId

# Response Types

Types for JSON responses:

  - StartElectionResponse: message
  - EndElectionResponse: message, data (archived, electionNumber), warning
  - ResetElectionResponse: message
  - AddCandidateResponse: candidate_id
  - RegisterVoterResponse: voter_token
  - CastVoteResponse: message
  - ErrorResponse: error, code, message

# Domain Types

ElectionState models the forward-only lifecycle:

	NotStarted → Active → Ended

CanTransition reports whether a transition is legal. ElectionStats,
Candidate, CandidateResult, WinnerOutcome and ArchivedElection carry the
dashboard's data.

# Error Codes

ErrorResponse.Code carries a machine-readable code (no_candidates,
no_voters, unauthorized, ...) so clients classify failures without
matching on message text. The pinned Msg* constants exist for clients
that still match on substrings.
*/
package models
