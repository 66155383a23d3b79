// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apiclient is a typed HTTP client for the electiond API.

# Usage

	client := apiclient.New("http://localhost:4410", adminKey)
	stats, err := client.GetElectionStats(ctx)

Admin calls send the X-Admin-Key header automatically; CastVote sends the
voter's token in X-Voter-Token.

# Errors

Non-2xx responses are returned as *APIError carrying the HTTP status and
the server's structured code and message:

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Code == models.CodeUnauthorized {
		...
	}

Transport failures are returned wrapped, not as *APIError.
*/
package apiclient
