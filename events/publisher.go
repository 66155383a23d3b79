// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"context"
	"time"
)

// Lifecycle event types
const (
	TypeStarted = "election_started"
	TypeEnded   = "election_ended"
	TypeReset   = "election_reset"
)

// LifecycleEvent announces an election state transition to downstream
// consumers (dashboards, audit pipelines).
type LifecycleEvent struct {
	Type           string    `json:"type"`
	ElectionName   string    `json:"election_name"`
	ElectionNumber int       `json:"election_number"`
	TotalVotes     int       `json:"total_votes"`
	Timestamp      time.Time `json:"timestamp"`
}

type Publisher interface {
	Publish(ctx context.Context, event LifecycleEvent) error
	Close() error
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event LifecycleEvent) error { return nil }
func (NopPublisher) Close() error                                            { return nil }
