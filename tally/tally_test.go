// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"testing"

	"github.com/mereles/electiond/models"
)

func candidates(counts ...int) []models.CandidateResult {
	results := make([]models.CandidateResult, len(counts))
	for i, c := range counts {
		results[i] = models.CandidateResult{
			ID:        string(rune('a' + i)),
			Name:      "Candidate " + string(rune('A'+i)),
			VoteCount: c,
		}
	}
	return results
}

func TestDetermineWinner(t *testing.T) {
	tests := []struct {
		name       string
		results    []models.CandidateResult
		wantNil    bool
		wantTie    bool
		wantIDs    []string
		wantVotes  int
	}{
		{
			name:    "empty results",
			results: nil,
			wantNil: true,
		},
		{
			name:      "single candidate",
			results:   candidates(5),
			wantTie:   false,
			wantIDs:   []string{"a"},
			wantVotes: 5,
		},
		{
			name:      "clear leader",
			results:   candidates(2, 9, 4),
			wantTie:   false,
			wantIDs:   []string{"b"},
			wantVotes: 9,
		},
		{
			name:      "two-way tie",
			results:   candidates(5, 5),
			wantTie:   true,
			wantIDs:   []string{"a", "b"},
			wantVotes: 5,
		},
		{
			name:      "tie among subset",
			results:   candidates(3, 7, 7),
			wantTie:   true,
			wantIDs:   []string{"b", "c"},
			wantVotes: 7,
		},
		{
			name:      "zero-vote tie is not a tie",
			results:   candidates(0, 0),
			wantTie:   false,
			wantIDs:   []string{"a"},
			wantVotes: 0,
		},
		{
			name:      "three-way zero is still the first candidate",
			results:   candidates(0, 0, 0),
			wantTie:   false,
			wantIDs:   []string{"a"},
			wantVotes: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := DetermineWinner(tt.results)

			if tt.wantNil {
				if outcome != nil {
					t.Fatalf("Expected nil outcome, got %+v", outcome)
				}
				return
			}
			if outcome == nil {
				t.Fatal("Expected outcome, got nil")
			}

			if outcome.Tie != tt.wantTie {
				t.Errorf("Expected tie=%v, got %v", tt.wantTie, outcome.Tie)
			}
			if outcome.VoteCount != tt.wantVotes {
				t.Errorf("Expected vote count %d, got %d", tt.wantVotes, outcome.VoteCount)
			}
			if len(outcome.Candidates) != len(tt.wantIDs) {
				t.Fatalf("Expected %d candidates, got %d", len(tt.wantIDs), len(outcome.Candidates))
			}
			for i, id := range tt.wantIDs {
				if outcome.Candidates[i].ID != id {
					t.Errorf("Candidate %d: expected ID %s, got %s", i, id, outcome.Candidates[i].ID)
				}
			}
		})
	}
}

func TestWinnerHelper(t *testing.T) {
	single := DetermineWinner(candidates(1, 4))
	if w := single.Winner(); w == nil || w.ID != "b" {
		t.Errorf("Expected winner b, got %+v", w)
	}

	tie := DetermineWinner(candidates(4, 4))
	if w := tie.Winner(); w != nil {
		t.Errorf("Expected no single winner for a tie, got %+v", w)
	}

	var missing *models.WinnerOutcome
	if w := missing.Winner(); w != nil {
		t.Errorf("Expected nil winner for nil outcome, got %+v", w)
	}
}

func TestTurnout(t *testing.T) {
	tests := []struct {
		name     string
		votes    int
		voters   int
		expected int
	}{
		{"zero voters guards division", 10, 0, 0},
		{"half turnout", 25, 50, 50},
		{"full turnout", 50, 50, 100},
		{"rounds to nearest", 1, 3, 33},
		{"rounds up", 2, 3, 67},
		{"no votes", 0, 40, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Turnout(tt.votes, tt.voters); got != tt.expected {
				t.Errorf("Turnout(%d, %d) = %d, expected %d", tt.votes, tt.voters, got, tt.expected)
			}
		})
	}
}

func TestVoteShare(t *testing.T) {
	tests := []struct {
		name     string
		votes    int
		total    int
		expected float64
	}{
		{"zero total", 5, 0, 0},
		{"even split", 5, 10, 50},
		{"two decimals", 1, 3, 33.33},
		{"rounds half up", 1, 6, 16.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VoteShare(tt.votes, tt.total); got != tt.expected {
				t.Errorf("VoteShare(%d, %d) = %v, expected %v", tt.votes, tt.total, got, tt.expected)
			}
		})
	}
}
