// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/lib/pq"

	"github.com/mereles/electiond/models"
	"github.com/mereles/electiond/testutil"
)

func TestGetStats(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewElectionHandler(conn, cfg, nil, nil)

	testutil.CreateTestCandidate(t, conn, "Alice", "Greens")
	candidateID := testutil.CreateTestCandidate(t, conn, "Bob", "Blues")
	voter1 := testutil.CreateTestVoter(t, conn, "V1")
	testutil.CreateTestVoter(t, conn, "V2")
	testutil.CastTestVote(t, conn, candidateID, voter1)

	req := testutil.MakeRequest("GET", "/election/stats", nil, nil)
	w := httptest.NewRecorder()
	handler.GetStats(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var stats models.ElectionStats
	testutil.AssertJSON(t, w, &stats)

	if stats.StateNumber != int(models.StateNotStarted) {
		t.Errorf("Expected state 0, got %d", stats.StateNumber)
	}
	if stats.Name != "General Election" {
		t.Errorf("Expected seeded election name, got %q", stats.Name)
	}
	if stats.TotalVotes != 1 {
		t.Errorf("Expected 1 vote, got %d", stats.TotalVotes)
	}
	if stats.RegisteredVoterCount != 2 {
		t.Errorf("Expected 2 voters, got %d", stats.RegisteredVoterCount)
	}
}

func TestStartElection(t *testing.T) {
	adminHeaders := map[string]string{"X-Admin-Key": testutil.TestAdminKey()}

	tests := []struct {
		name           string
		setup          func(t *testing.T, conn *sql.DB)
		headers        map[string]string
		expectedStatus int
		expectedCode   string
		expectedMsg    string
	}{
		{
			name:           "rejects missing admin key",
			setup:          func(t *testing.T, conn *sql.DB) {},
			headers:        nil,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   models.CodeUnauthorized,
			expectedMsg:    models.MsgNotAdmin,
		},
		{
			name:           "rejects election without candidates",
			setup:          func(t *testing.T, conn *sql.DB) {},
			headers:        adminHeaders,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   models.CodeNoCandidates,
			expectedMsg:    models.MsgNoCandidates,
		},
		{
			name: "rejects election without voters",
			setup: func(t *testing.T, conn *sql.DB) {
				testutil.CreateTestCandidate(t, conn, "Alice", "Greens")
			},
			headers:        adminHeaders,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   models.CodeNoVoters,
			expectedMsg:    models.MsgNoVoters,
		},
		{
			name: "rejects already-started election",
			setup: func(t *testing.T, conn *sql.DB) {
				testutil.CreateTestCandidate(t, conn, "Alice", "Greens")
				testutil.CreateTestVoter(t, conn, "V1")
				testutil.SetElectionState(t, conn, models.StateActive)
			},
			headers:        adminHeaders,
			expectedStatus: http.StatusConflict,
			expectedCode:   models.CodeInvalidState,
		},
		{
			name: "starts a ready election",
			setup: func(t *testing.T, conn *sql.DB) {
				testutil.CreateTestCandidate(t, conn, "Alice", "Greens")
				testutil.CreateTestVoter(t, conn, "V1")
			},
			headers:        adminHeaders,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := testutil.SetupTestDB(t)
			defer conn.Close()

			cfg := testutil.GetTestConfig()
			handler := NewElectionHandler(conn, cfg, nil, nil)
			tt.setup(t, conn)

			req := testutil.MakeRequest("POST", "/election/start",
				models.StartElectionRequest{ElectionName: "Spring Vote"}, tt.headers)
			w := httptest.NewRecorder()
			handler.Start(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus != http.StatusOK {
				var errResp models.ErrorResponse
				testutil.AssertJSON(t, w, &errResp)
				if errResp.Code != tt.expectedCode {
					t.Errorf("Expected code %q, got %q", tt.expectedCode, errResp.Code)
				}
				if tt.expectedMsg != "" && errResp.Message != tt.expectedMsg {
					t.Errorf("Expected message %q, got %q", tt.expectedMsg, errResp.Message)
				}
				return
			}

			// Successful start moves the election to active under the new name
			var name string
			var state int
			if err := conn.QueryRow("SELECT name, state FROM election WHERE id = 1").Scan(&name, &state); err != nil {
				t.Fatalf("Failed to query election: %v", err)
			}
			if state != int(models.StateActive) {
				t.Errorf("Expected state 1 after start, got %d", state)
			}
			if name != "Spring Vote" {
				t.Errorf("Expected election renamed to 'Spring Vote', got %q", name)
			}
		})
	}
}

func TestEndElection(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewElectionHandler(conn, cfg, nil, nil)
	adminHeaders := map[string]string{"X-Admin-Key": testutil.TestAdminKey()}

	candidateID := testutil.CreateTestCandidate(t, conn, "Alice", "Greens")
	voter := testutil.CreateTestVoter(t, conn, "V1")
	testutil.CastTestVote(t, conn, candidateID, voter)
	testutil.SetElectionState(t, conn, models.StateActive)

	req := testutil.MakeRequest("POST", "/election/end", nil, adminHeaders)
	w := httptest.NewRecorder()
	handler.End(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.EndElectionResponse
	testutil.AssertJSON(t, w, &resp)

	if !resp.Data.Archived {
		t.Error("Expected response to indicate archiving")
	}
	if resp.Data.ElectionNumber != 1 {
		t.Errorf("Expected election number 1, got %d", resp.Data.ElectionNumber)
	}
	if resp.Warning != "" {
		t.Errorf("Expected no warning with votes cast, got %q", resp.Warning)
	}

	// State is now ended and the archive row exists
	var state int
	if err := conn.QueryRow("SELECT state FROM election WHERE id = 1").Scan(&state); err != nil {
		t.Fatalf("Failed to query election: %v", err)
	}
	if state != int(models.StateEnded) {
		t.Errorf("Expected state 2 after end, got %d", state)
	}

	var totalVotes, totalVoters int
	err := conn.QueryRow(`
		SELECT total_votes, total_voters FROM election_archive WHERE election_number = 1
	`).Scan(&totalVotes, &totalVoters)
	if err != nil {
		t.Fatalf("Expected archive row, got error: %v", err)
	}
	if totalVotes != 1 || totalVoters != 1 {
		t.Errorf("Expected archive totals 1/1, got %d/%d", totalVotes, totalVoters)
	}
}

func TestEndElectionWithoutVotesWarns(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewElectionHandler(conn, cfg, nil, nil)
	adminHeaders := map[string]string{"X-Admin-Key": testutil.TestAdminKey()}

	testutil.CreateTestCandidate(t, conn, "Alice", "Greens")
	testutil.CreateTestVoter(t, conn, "V1")
	testutil.SetElectionState(t, conn, models.StateActive)

	req := testutil.MakeRequest("POST", "/election/end", nil, adminHeaders)
	w := httptest.NewRecorder()
	handler.End(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.EndElectionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Warning == "" {
		t.Error("Expected a warning when ending with no votes cast")
	}
}

func TestEndElectionRequiresActive(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewElectionHandler(conn, cfg, nil, nil)
	adminHeaders := map[string]string{"X-Admin-Key": testutil.TestAdminKey()}

	for _, state := range []models.ElectionState{models.StateNotStarted, models.StateEnded} {
		testutil.SetElectionState(t, conn, state)

		req := testutil.MakeRequest("POST", "/election/end", nil, adminHeaders)
		w := httptest.NewRecorder()
		handler.End(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("State %s: expected 409, got %d", state, w.Code)
		}
	}
}

func TestResetElection(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewElectionHandler(conn, cfg, nil, nil)
	adminHeaders := map[string]string{"X-Admin-Key": testutil.TestAdminKey()}

	candidateID := testutil.CreateTestCandidate(t, conn, "Alice", "Greens")
	voter := testutil.CreateTestVoter(t, conn, "V1")
	testutil.CastTestVote(t, conn, candidateID, voter)
	testutil.SetElectionState(t, conn, models.StateEnded)

	req := testutil.MakeRequest("POST", "/election/reset",
		models.ResetElectionRequest{ElectionName: "Autumn Vote"}, adminHeaders)
	w := httptest.NewRecorder()
	handler.Reset(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResetElectionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message == "" {
		t.Error("Expected a reset message")
	}

	// Working tables are cleared, number bumped, state back to not started
	var name string
	var state, number int
	err := conn.QueryRow(`
		SELECT name, state, election_number FROM election WHERE id = 1
	`).Scan(&name, &state, &number)
	if err != nil {
		t.Fatalf("Failed to query election: %v", err)
	}
	if state != int(models.StateNotStarted) {
		t.Errorf("Expected state 0 after reset, got %d", state)
	}
	if number != 2 {
		t.Errorf("Expected election number 2 after reset, got %d", number)
	}
	if name != "Autumn Vote" {
		t.Errorf("Expected new name 'Autumn Vote', got %q", name)
	}

	for _, table := range []string{"candidate", "voter", "vote"} {
		var count int
		if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Fatalf("Failed to count %s: %v", table, err)
		}
		if count != 0 {
			t.Errorf("Expected %s cleared after reset, found %d rows", table, count)
		}
	}
}

func TestResetElectionDefaultsName(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewElectionHandler(conn, cfg, nil, nil)
	adminHeaders := map[string]string{"X-Admin-Key": testutil.TestAdminKey()}

	testutil.SetElectionState(t, conn, models.StateEnded)

	req := testutil.MakeRequest("POST", "/election/reset",
		models.ResetElectionRequest{ElectionName: "   "}, adminHeaders)
	w := httptest.NewRecorder()
	handler.Reset(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var name string
	if err := conn.QueryRow("SELECT name FROM election WHERE id = 1").Scan(&name); err != nil {
		t.Fatalf("Failed to query election: %v", err)
	}
	if name != models.DefaultElectionName {
		t.Errorf("Expected default name %q, got %q", models.DefaultElectionName, name)
	}
}

func TestResetElectionRequiresEnded(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewElectionHandler(conn, cfg, nil, nil)
	adminHeaders := map[string]string{"X-Admin-Key": testutil.TestAdminKey()}

	for _, state := range []models.ElectionState{models.StateNotStarted, models.StateActive} {
		testutil.SetElectionState(t, conn, state)

		req := testutil.MakeRequest("POST", "/election/reset",
			models.ResetElectionRequest{ElectionName: "X"}, adminHeaders)
		w := httptest.NewRecorder()
		handler.Reset(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("State %s: expected 409, got %d", state, w.Code)
		}
	}
}
