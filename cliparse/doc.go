// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4410)
  - DatabaseURL: PostgreSQL connection string (required)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - IPHashSalt: Secret for vote IP hashing (required)
  - KafkaBrokers: Brokers for lifecycle events (empty disables publishing)
  - KafkaTopic: Event topic (default: election-lifecycle)

# CLI Flags

	-p             Server port
	-d             Database URL
	-admin-salt    Admin key salt
	-ip-salt       IP hash salt
	-kafka-brokers Comma-separated Kafka brokers
	-kafka-topic   Kafka topic

# Environment Variables

Flags fall back to environment variables: PORT, DATABASE_URL,
ADMIN_KEY_SALT, IP_HASH_SALT, KAFKA_BROKERS, KAFKA_TOPIC.
*/
package cliparse
