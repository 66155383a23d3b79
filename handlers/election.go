// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mereles/electiond/auth"
	"github.com/mereles/electiond/cliparse"
	"github.com/mereles/electiond/events"
	"github.com/mereles/electiond/metrics"
	"github.com/mereles/electiond/middleware"
	"github.com/mereles/electiond/models"
	"github.com/mereles/electiond/tally"
)

type ElectionHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	pub     events.Publisher
	metrics *metrics.ServerMetrics
}

func NewElectionHandler(db *sql.DB, cfg cliparse.Config, pub events.Publisher, m *metrics.ServerMetrics) *ElectionHandler {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &ElectionHandler{db: db, cfg: cfg, pub: pub, metrics: m}
}

// electionRow is the singleton working election record
type electionRow struct {
	Name   string
	State  models.ElectionState
	Number int
}

func loadElection(db *sql.DB) (electionRow, error) {
	var row electionRow
	var state int
	err := db.QueryRow(`
		SELECT name, state, election_number FROM election WHERE id = 1
	`).Scan(&row.Name, &state, &row.Number)
	if err != nil {
		return electionRow{}, err
	}
	row.State = models.ElectionState(state)
	return row, nil
}

// requireAdmin validates the X-Admin-Key header. Writes the 401 response
// itself and returns false when the key is missing or wrong.
func requireAdmin(w http.ResponseWriter, r *http.Request, salt string) bool {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), salt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.CodeUnauthorized, models.MsgNotAdmin)
		return false
	}
	return true
}

// GetStats handles GET /election/stats
// Public: the dashboard polls this before any admin action.
func (h *ElectionHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	election, err := loadElection(h.db)
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	var totalVotes, totalVoters int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM vote").Scan(&totalVotes); err != nil {
		slog.Error("failed to count votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}
	if err := h.db.QueryRow("SELECT COUNT(*) FROM voter").Scan(&totalVoters); err != nil {
		slog.Error("failed to count voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElectionStats{
		StateNumber:          int(election.State),
		Name:                 election.Name,
		TotalVotes:           totalVotes,
		RegisteredVoterCount: totalVoters,
	})
}

// Start handles POST /election/start
func (h *ElectionHandler) Start(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.AdminKeySalt) {
		return
	}

	var req models.StartElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	election, err := loadElection(h.db)
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	if !models.CanTransition(election.State, models.StateActive) {
		middleware.ErrorResponse(w, http.StatusConflict, models.CodeInvalidState,
			"Election has already been started")
		return
	}

	var candidateCount, voterCount int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM candidate").Scan(&candidateCount); err != nil {
		slog.Error("failed to count candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}
	if err := h.db.QueryRow("SELECT COUNT(*) FROM voter").Scan(&voterCount); err != nil {
		slog.Error("failed to count voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	if candidateCount == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeNoCandidates, models.MsgNoCandidates)
		return
	}
	if voterCount == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeNoVoters, models.MsgNoVoters)
		return
	}

	name := strings.TrimSpace(req.ElectionName)
	if name == "" {
		name = election.Name
	}

	_, err = h.db.Exec(`
		UPDATE election
		SET name = $1, state = $2, started_at = $3, ended_at = NULL
		WHERE id = 1
	`, name, int(models.StateActive), time.Now())
	if err != nil {
		slog.Error("failed to start election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to start election")
		return
	}

	slog.Info("election started", "name", name, "election_number", election.Number)
	h.countAdminAction("start")
	h.publish(r, events.LifecycleEvent{
		Type:           events.TypeStarted,
		ElectionName:   name,
		ElectionNumber: election.Number,
		Timestamp:      time.Now(),
	})

	middleware.JSONResponse(w, http.StatusOK, models.StartElectionResponse{
		Message: fmt.Sprintf("Election %q started successfully", name),
	})
}

// End handles POST /election/end
// Ends the active election and archives its results snapshot.
func (h *ElectionHandler) End(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.AdminKeySalt) {
		return
	}

	election, err := loadElection(h.db)
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	if !models.CanTransition(election.State, models.StateEnded) {
		middleware.ErrorResponse(w, http.StatusConflict, models.CodeInvalidState,
			"Election is not active")
		return
	}

	results, err := queryResults(h.db)
	if err != nil {
		slog.Error("failed to query results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	totalVotes := 0
	for _, res := range results {
		totalVotes += res.VoteCount
	}
	var totalVoters int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM voter").Scan(&totalVoters); err != nil {
		slog.Error("failed to count voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	endedAt := time.Now()
	payload, err := json.Marshal(models.ArchivedElection{
		ElectionNumber: election.Number,
		Name:           election.Name,
		TotalVotes:     totalVotes,
		TotalVoters:    totalVoters,
		Results:        results,
		Winner:         tally.DetermineWinner(results),
		ArchivedAt:     endedAt,
	})
	if err != nil {
		slog.Error("failed to marshal archive payload", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to archive results")
		return
	}

	// Begin transaction
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE election
		SET state = $1, ended_at = $2
		WHERE id = 1
	`, int(models.StateEnded), endedAt)
	if err != nil {
		slog.Error("failed to end election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to end election")
		return
	}

	_, err = tx.Exec(`
		INSERT INTO election_archive (election_number, name, total_votes, total_voters, payload, archived_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, election.Number, election.Name, totalVotes, totalVoters, payload, endedAt)
	if err != nil {
		slog.Error("failed to insert archive", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to archive results")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to end election")
		return
	}

	slog.Info("election ended",
		"name", election.Name,
		"election_number", election.Number,
		"total_votes", totalVotes,
	)
	h.countAdminAction("end")
	h.publish(r, events.LifecycleEvent{
		Type:           events.TypeEnded,
		ElectionName:   election.Name,
		ElectionNumber: election.Number,
		TotalVotes:     totalVotes,
		Timestamp:      endedAt,
	})

	resp := models.EndElectionResponse{
		Message: "Election ended successfully",
		Data: models.EndElectionData{
			Archived:       true,
			ElectionNumber: election.Number,
		},
	}
	if totalVotes == 0 {
		resp.Warning = "No votes were cast in this election"
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Reset handles POST /election/reset
// Clears the working tables for a fresh election. The archive written at
// end time is kept; reset never destroys past results.
func (h *ElectionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.AdminKeySalt) {
		return
	}

	var req models.ResetElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	election, err := loadElection(h.db)
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	if !models.CanTransition(election.State, models.StateNotStarted) {
		middleware.ErrorResponse(w, http.StatusConflict, models.CodeInvalidState,
			"Only an ended election can be reset")
		return
	}

	name := strings.TrimSpace(req.ElectionName)
	if name == "" {
		name = models.DefaultElectionName
	}

	// Begin transaction
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}
	defer tx.Rollback()

	for _, table := range []string{"vote", "voter", "candidate"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			slog.Error("failed to clear table", "table", table, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to reset election")
			return
		}
	}

	newNumber := election.Number + 1
	_, err = tx.Exec(`
		UPDATE election
		SET name = $1, state = $2, election_number = $3, started_at = NULL, ended_at = NULL
		WHERE id = 1
	`, name, int(models.StateNotStarted), newNumber)
	if err != nil {
		slog.Error("failed to reset election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to reset election")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to reset election")
		return
	}

	slog.Info("election reset", "name", name, "election_number", newNumber)
	h.countAdminAction("reset")
	h.publish(r, events.LifecycleEvent{
		Type:           events.TypeReset,
		ElectionName:   name,
		ElectionNumber: newNumber,
		Timestamp:      time.Now(),
	})

	middleware.JSONResponse(w, http.StatusOK, models.ResetElectionResponse{
		Message: fmt.Sprintf("Election has been reset. %q is ready for setup", name),
	})
}

func (h *ElectionHandler) countAdminAction(action string) {
	if h.metrics != nil {
		h.metrics.AdminActions.WithLabelValues(action).Inc()
	}
}

// publish sends a lifecycle event; failures are logged and never fail
// the admin action that triggered them.
func (h *ElectionHandler) publish(r *http.Request, event events.LifecycleEvent) {
	if err := h.pub.Publish(r.Context(), event); err != nil {
		slog.Error("failed to publish lifecycle event", "type", event.Type, "error", err)
	}
}
