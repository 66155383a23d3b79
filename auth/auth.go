// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrInvalidToken    = errors.New("invalid voter token")
)

// adminKeySubject is the fixed HMAC input for admin keys. There is a
// single working election, so the key is scoped to the service rather
// than to a record.
const adminKeySubject = "electiond-admin"

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAdminKey creates the HMAC-based admin key for the service.
// Deterministic: the same salt always produces the same key, so the key
// never needs to be stored.
func GenerateAdminKey(salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(adminKeySubject))
	sum := h.Sum(nil)
	// URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks the provided admin key in constant time
func ValidateAdminKey(adminKey, salt string) error {
	expected := GenerateAdminKey(salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateVoterToken creates the token handed out at voter registration.
// The token doubles as the voter's record ID.
func GenerateVoterToken() string {
	return uuid.NewString()
}

// ValidateVoterToken checks that a token is a well-formed voter token
// before it is used in a lookup.
func ValidateVoterToken(token string) error {
	if _, err := uuid.Parse(token); err != nil {
		return ErrInvalidToken
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for privacy.
// Includes salt to prevent rainbow table attacks.
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 8 bytes (16 hex chars) is enough for deduplication
	return hex.EncodeToString(sum[:8])
}
