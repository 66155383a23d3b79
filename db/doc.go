// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables and seeds the singleton
election row:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes, and ON CONFLICT DO NOTHING for the seed row.

# Tables

The schema includes:

  - election: The singleton working election (id = 1) and its state
  - candidate: Candidates registered for the working election
  - voter: Registered voters, keyed by their token
  - vote: One vote per voter, enforced by UNIQUE(voter_id)
  - election_archive: Immutable JSONB snapshots of ended elections

# Relationships

vote references candidate and voter. The working tables are cleared on
reset; election_archive is retained across resets.
*/
package db
