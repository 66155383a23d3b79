// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/mereles/electiond/auth"
	"github.com/mereles/electiond/cliparse"
	"github.com/mereles/electiond/middleware"
	"github.com/mereles/electiond/models"
)

type CandidateHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCandidateHandler(db *sql.DB, cfg cliparse.Config) *CandidateHandler {
	return &CandidateHandler{db: db, cfg: cfg}
}

// List handles GET /election/candidates
// The dashboard takes its candidate count from this list's length.
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.AdminKeySalt) {
		return
	}

	rows, err := h.db.Query(`
		SELECT id, name, party, added_at
		FROM candidate
		ORDER BY added_at, id
	`)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Party, &c.AddedAt); err != nil {
			slog.Error("failed to scan candidate", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
			return
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// Add handles POST /election/candidates
func (h *CandidateHandler) Add(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.AdminKeySalt) {
		return
	}

	var req models.AddCandidateRequest
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
			"Cannot add candidates after the election has started")
		return
	}

	candidateID, err := auth.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate candidate ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to add candidate")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO candidate (id, name, party, added_at)
		VALUES ($1, $2, $3, $4)
	`, candidateID, req.Name, req.Party, time.Now())
	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to add candidate")
		return
	}

	slog.Info("candidate added", "candidate_id", candidateID, "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.AddCandidateResponse{
		CandidateID: candidateID,
	})
}
