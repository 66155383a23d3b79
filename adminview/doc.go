// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package adminview drives the election administration dashboard.

# Snapshot

Refresh pulls the election status, candidate list and (once ended) the
results into a Snapshot the page renders:

	view := adminview.New(client)
	snap, err := view.Refresh(ctx)

The candidate count comes from the candidate list, not the stats payload.
Turnout and the winner outcome are derived with package tally. A results
fetch failure degrades gracefully: the snapshot is still produced.

# Lifecycle Actions

Start, end and reset are gated twice: the action must match the current
election state, and it must be confirmed first:

	if err := view.Confirm(adminview.ActionStart); err != nil { ... }
	err := view.StartElection(ctx, name)

Only one action can await confirmation and only one call can be in
flight. Starting also runs client-side pre-flight checks (at least one
candidate, at least one voter) before touching the network.

# Banners

Failures set an error banner with a classified, user-facing message.
Successes set a banner that clears itself after a short interval; Close
stops the timer so it never fires against a dead view.

# Error Classification

Classify maps server and transport errors to the banner text. Structured
error codes are preferred, with message-substring matching kept as a
fallback for older servers.
*/
package adminview
