// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/lib/pq"

	"github.com/mereles/electiond/auth"
	"github.com/mereles/electiond/cliparse"
	"github.com/mereles/electiond/metrics"
	"github.com/mereles/electiond/middleware"
	"github.com/mereles/electiond/models"
)

type VotingHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	metrics *metrics.ServerMetrics
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config, m *metrics.ServerMetrics) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg, metrics: m}
}

// RegisterVoter handles POST /voters/register
// The voter roll is fixed once the election starts, so registration is
// only open while the election has not started.
func (h *VotingHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "name is required")
		return
	}

	election, err := loadElection(h.db)
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	if election.State != models.StateNotStarted {
		middleware.ErrorResponse(w, http.StatusConflict, models.CodeInvalidState,
			"Voter registration is closed once the election has started")
		return
	}

	token := auth.GenerateVoterToken()
	_, err = h.db.Exec(`
		INSERT INTO voter (id, name, registered_at)
		VALUES ($1, $2, $3)
	`, token, req.Name, time.Now())
	if err != nil {
		slog.Error("failed to insert voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to register voter")
		return
	}

	slog.Info("voter registered", "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterVoterResponse{
		VoterToken: token,
	})
}

// CastVote handles POST /votes
// Requires the X-Voter-Token header. One vote per voter, ever.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Voter-Token")
	if err := auth.ValidateVoterToken(token); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "", "Invalid voter token")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}
	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "candidateId is required")
		return
	}

	election, err := loadElection(h.db)
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	if election.State != models.StateActive {
		middleware.ErrorResponse(w, http.StatusConflict, models.CodeInvalidState,
			"Votes can only be cast while the election is active")
		return
	}

	var voterName string
	err = h.db.QueryRow("SELECT name FROM voter WHERE id = $1", token).Scan(&voterName)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "", "Invalid voter token")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	var candidateName string
	err = h.db.QueryRow("SELECT name FROM candidate WHERE id = $1", req.CandidateID).Scan(&candidateName)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Candidate not found")
		return
	}
	if err != nil {
		slog.Error("failed to query candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	voteID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate vote ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to cast vote")
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)

	// The UNIQUE(voter_id) constraint is the duplicate-vote guard;
	// checking first would race with a concurrent cast.
	_, err = h.db.Exec(`
		INSERT INTO vote (id, candidate_id, voter_id, ip_hash, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`, voteID, req.CandidateID, token, ipHash, time.Now())
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			middleware.ErrorResponse(w, http.StatusConflict, models.CodeAlreadyVoted,
				"You have already voted in this election")
			return
		}
		slog.Error("failed to insert vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to cast vote")
		return
	}

	if _, err := h.db.Exec("UPDATE voter SET voted = TRUE WHERE id = $1", token); err != nil {
		// The vote is recorded; the flag is display-only.
		slog.Error("failed to flag voter as voted", "error", err)
	}

	if h.metrics != nil {
		h.metrics.VotesCast.WithLabelValues(req.CandidateID).Inc()
	}
	slog.Info("vote cast", "candidate_id", req.CandidateID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Message: "Vote recorded",
	})
}
