// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally derives outcomes from per-candidate results.

# Winner Determination

DetermineWinner scans a results list for the maximum vote count:

	outcome := tally.DetermineWinner(results)

A tie is declared only when two or more candidates share a strictly
positive maximum. An all-zero field is not a tie: the first candidate in
list order is reported as the winner, mirroring how the results list is
presented. An empty list yields nil.

# Percentages

Turnout and VoteShare compute the dashboard's percentage figures, both
guarding the zero-denominator case.
*/
package tally
