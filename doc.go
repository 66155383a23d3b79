// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the electiond API server.

electiond runs a single working election at a time: candidates and voters
are registered up front, votes are cast while the election is active, and
results stay sealed until the election ends. Ended elections are archived
and the working election can be reset for the next round.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 4410 -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC
  - IP_HASH_SALT (-ip-salt): Secret for vote IP hashing

Optional settings:

  - PORT (-p): Server port (default: 4410)
  - KAFKA_BROKERS (-kafka-brokers): Enables lifecycle event publishing
  - KAFKA_TOPIC (-kafka-topic): Event topic (default: election-lifecycle)

A .env file in the working directory is loaded if present; flags and the
real environment take precedence.

# Graceful Shutdown

The server closes on SIGINT or SIGTERM.
*/
package main
