// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application and seeds
// the singleton election row. Safe to call multiple times - uses IF NOT
// EXISTS and ON CONFLICT DO NOTHING.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// There is exactly one working election; archives hold past ones.
	_, err = db.Exec(`
		INSERT INTO election (id, name, state, election_number)
		VALUES (1, 'General Election', 0, 1)
		ON CONFLICT (id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to seed election row: %w", err)
	}

	return nil
}

const schema = `
-- Election (singleton working row)
CREATE TABLE IF NOT EXISTS election (
    id INT PRIMARY KEY CHECK (id = 1),
    name TEXT NOT NULL,
    state INT NOT NULL DEFAULT 0 CHECK (state IN (0, 1, 2)),
    election_number INT NOT NULL DEFAULT 1,
    started_at TIMESTAMP,
    ended_at TIMESTAMP
);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    party TEXT NOT NULL DEFAULT '',
    added_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_candidate_added_at ON candidate(added_at);

-- Registered voters
CREATE TABLE IF NOT EXISTS voter (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    voted BOOLEAN NOT NULL DEFAULT FALSE,
    registered_at TIMESTAMP NOT NULL DEFAULT NOW()
);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    candidate_id TEXT NOT NULL REFERENCES candidate(id) ON DELETE CASCADE,
    voter_id TEXT NOT NULL REFERENCES voter(id) ON DELETE CASCADE,
    ip_hash TEXT,
    cast_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (voter_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_candidate_id ON vote(candidate_id);

-- Archived elections (survive resets)
CREATE TABLE IF NOT EXISTS election_archive (
    election_number INT PRIMARY KEY,
    name TEXT NOT NULL,
    total_votes INT NOT NULL,
    total_voters INT NOT NULL,
    payload JSONB NOT NULL,
    archived_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`
