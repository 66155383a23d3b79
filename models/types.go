package models

import "time"

// ElectionState is the global voting-process phase.
type ElectionState int

const (
	StateNotStarted ElectionState = 0
	StateActive     ElectionState = 1
	StateEnded      ElectionState = 2
)

func (s ElectionState) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateActive:
		return "active"
	case StateEnded:
		return "ended"
	}
	return "unknown"
}

// CanTransition reports whether moving from one state to another is valid.
// Transitions are strictly forward: start (0->1), end (1->2), reset (2->0).
func CanTransition(from, to ElectionState) bool {
	switch from {
	case StateNotStarted:
		return to == StateActive
	case StateActive:
		return to == StateEnded
	case StateEnded:
		return to == StateNotStarted
	}
	return false
}

// Error codes returned alongside every error message
const (
	CodeUnauthorized     = "unauthorized"
	CodeNoCandidates     = "no_candidates"
	CodeNoVoters         = "no_voters"
	CodeInvalidState     = "invalid_state"
	CodeElectionNotEnded = "election_not_ended"
	CodeAlreadyVoted     = "already_voted"
	CodeNotFound         = "not_found"
)

// User-facing messages pinned by the admin dashboard; clients match on
// these when the server omits a structured code.
const (
	MsgNoCandidates = "Cannot start election without candidates"
	MsgNoVoters     = "Cannot start election without registered voters"
	MsgNotAdmin     = "Only admin can perform this action"
)

// DefaultElectionName is used when a reset request carries a blank name.
const DefaultElectionName = "New Election"

// Request types

type StartElectionRequest struct {
	ElectionName string `json:"electionName"`
}

type ResetElectionRequest struct {
	ElectionName string `json:"electionName"`
}

type AddCandidateRequest struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}

type RegisterVoterRequest struct {
	Name string `json:"name"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidateId"`
}

// Response types

type StartElectionResponse struct {
	Message string `json:"message"`
}

type EndElectionData struct {
	Archived       bool `json:"archived"`
	ElectionNumber int  `json:"electionNumber"`
}

type EndElectionResponse struct {
	Message string          `json:"message"`
	Data    EndElectionData `json:"data"`
	Warning string          `json:"warning,omitempty"`
}

type ResetElectionResponse struct {
	Message string `json:"message"`
}

type AddCandidateResponse struct {
	CandidateID string `json:"candidate_id"`
}

type RegisterVoterResponse struct {
	VoterToken string `json:"voter_token"`
}

type CastVoteResponse struct {
	Message string `json:"message"`
}

// Domain types

// ElectionStats is the status payload shown on the admin dashboard.
// Candidate count is intentionally absent: clients take it from the
// candidate list, which is treated as ground truth.
type ElectionStats struct {
	StateNumber          int    `json:"stateNumber"`
	Name                 string `json:"name"`
	TotalVotes           int    `json:"totalVotes"`
	RegisteredVoterCount int    `json:"registeredVoterCount"`
}

func (s ElectionStats) State() ElectionState {
	return ElectionState(s.StateNumber)
}

type Candidate struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Party   string    `json:"party"`
	AddedAt time.Time `json:"added_at"`
}

// CandidateResult is an immutable per-candidate tally snapshot, only
// available once the election has ended. Order is insertion order.
// VoteShare is the candidate's percentage of the total vote, rounded to
// two decimals; zero when no votes were cast.
type CandidateResult struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Party     string  `json:"party"`
	VoteCount int     `json:"voteCount"`
	VoteShare float64 `json:"voteShare"`
}

// WinnerOutcome is derived from a results list and never persisted on its
// own (it is embedded in archive payloads for reference). Either a single
// winner or a set of tied candidates sharing a strictly-positive maximum.
type WinnerOutcome struct {
	Tie        bool              `json:"tie"`
	Candidates []CandidateResult `json:"candidates"`
	VoteCount  int               `json:"voteCount"`
}

// Winner returns the single winning candidate, or nil for a tie.
func (o *WinnerOutcome) Winner() *CandidateResult {
	if o == nil || o.Tie || len(o.Candidates) == 0 {
		return nil
	}
	return &o.Candidates[0]
}

// ArchivedElection is a preserved record of an ended election, written
// when the election ends and retained across resets.
type ArchivedElection struct {
	ElectionNumber int               `json:"election_number"`
	Name           string            `json:"name"`
	TotalVotes     int               `json:"total_votes"`
	TotalVoters    int               `json:"total_voters"`
	Results        []CandidateResult `json:"results"`
	Winner         *WinnerOutcome    `json:"winner,omitempty"`
	ArchivedAt     time.Time         `json:"archived_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
