// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/mereles/electiond/cliparse"
	"github.com/mereles/electiond/middleware"
	"github.com/mereles/electiond/models"
	"github.com/mereles/electiond/tally"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /election/results
// Returns 403 until the election has ended (results are sealed).
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.AdminKeySalt) {
		return
	}

	election, err := loadElection(h.db)
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	// CRITICAL: Results are sealed until the election has ended
	if election.State != models.StateEnded {
		middleware.ErrorResponse(w, http.StatusForbidden, models.CodeElectionNotEnded,
			"Results are hidden until the election has ended")
		return
	}

	results, err := queryResults(h.db)
	if err != nil {
		slog.Error("failed to query results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// GetArchives handles GET /election/archives
// Lists archived elections, most recent first.
func (h *ResultsHandler) GetArchives(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.AdminKeySalt) {
		return
	}

	rows, err := h.db.Query(`
		SELECT election_number, name, total_votes, total_voters, archived_at
		FROM election_archive
		ORDER BY election_number DESC
	`)
	if err != nil {
		slog.Error("failed to query archives", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}
	defer rows.Close()

	archives := []models.ArchivedElection{}
	for rows.Next() {
		var a models.ArchivedElection
		if err := rows.Scan(&a.ElectionNumber, &a.Name, &a.TotalVotes, &a.TotalVoters, &a.ArchivedAt); err != nil {
			slog.Error("failed to scan archive", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
			return
		}
		archives = append(archives, a)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate archives", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, archives)
}

// queryResults returns per-candidate vote counts and shares in candidate
// insertion order. The collection carries no other guaranteed ordering;
// clients display it as returned.
func queryResults(db *sql.DB) ([]models.CandidateResult, error) {
	rows, err := db.Query(`
		SELECT c.id, c.name, c.party, COUNT(v.id)
		FROM candidate c
		LEFT JOIN vote v ON v.candidate_id = c.id
		GROUP BY c.id, c.name, c.party, c.added_at
		ORDER BY c.added_at, c.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []models.CandidateResult{}
	totalVotes := 0
	for rows.Next() {
		var res models.CandidateResult
		if err := rows.Scan(&res.ID, &res.Name, &res.Party, &res.VoteCount); err != nil {
			return nil, err
		}
		totalVotes += res.VoteCount
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range results {
		results[i].VoteShare = tally.VoteShare(results[i].VoteCount, totalVotes)
	}

	return results, nil
}
