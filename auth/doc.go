// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication and token generation utilities.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(salt)
	err := auth.ValidateAdminKey(adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same salt always produces the same key. This allows validation without
storing the key anywhere. There is one working election, so the key is
scoped to the service.

# Voter Tokens

Voter tokens are random UUIDs handed out at registration:

	token := auth.GenerateVoterToken()
	err := auth.ValidateVoterToken(token)

The token doubles as the voter's record ID and authenticates their one vote.
ValidateVoterToken rejects malformed tokens before any database lookup.

# IP Hashing

Vote records store a salted one-way hash of the caster's IP:

	hash := auth.HashIP(ip, salt)

The hash is truncated to 8 bytes (16 hex chars), enough for deduplication
without retaining the address itself.
*/
package auth
