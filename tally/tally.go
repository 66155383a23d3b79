// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import "github.com/mereles/electiond/models"

// DetermineWinner scans a results list for the maximum vote count and
// reports either a single winner or the set of tied candidates.
//
// A tie is only declared when two or more candidates share a
// strictly-positive maximum. When every candidate has zero votes the
// first entry in input order is reported as the winner; an election
// nobody voted in has no meaningful tie to report.
//
// Returns nil for an empty results list. Pure function of its input;
// deterministic given stable input ordering.
func DetermineWinner(results []models.CandidateResult) *models.WinnerOutcome {
	if len(results) == 0 {
		return nil
	}

	maxVotes := results[0].VoteCount
	for _, r := range results[1:] {
		if r.VoteCount > maxVotes {
			maxVotes = r.VoteCount
		}
	}

	var top []models.CandidateResult
	for _, r := range results {
		if r.VoteCount == maxVotes {
			top = append(top, r)
		}
	}

	if len(top) > 1 && maxVotes > 0 {
		return &models.WinnerOutcome{
			Tie:        true,
			Candidates: top,
			VoteCount:  maxVotes,
		}
	}

	return &models.WinnerOutcome{
		Candidates: top[:1],
		VoteCount:  maxVotes,
	}
}

// VoteShare returns a candidate's share of the total vote as a
// percentage rounded to two decimals. Zero totals yield zero.
func VoteShare(voteCount, totalVotes int) float64 {
	if totalVotes <= 0 {
		return 0
	}
	share := float64(voteCount) / float64(totalVotes) * 100
	return float64(int(share*100+0.5)) / 100
}

// Turnout returns votes cast over registered voters as a percentage
// rounded to the nearest integer. Zero registered voters yield zero.
func Turnout(totalVotes, totalVoters int) int {
	if totalVoters <= 0 {
		return 0
	}
	return int(float64(totalVotes)/float64(totalVoters)*100 + 0.5)
}
