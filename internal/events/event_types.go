package events

import (
	"time"

	"github.com/spec-kit/dominion-roster/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRosterSynced  EventType = "roster_synced"
	EventRosterSeeded  EventType = "roster_seeded"
	EventMemberCreated EventType = "member_created"
	EventMemberUpdated EventType = "member_updated"
	EventMemberRemoved EventType = "member_removed"
)

// SeedSource identifies where seeding data came from.
type SeedSource string

const (
	SeedSourceBackup  SeedSource = "backup"
	SeedSourcePresets SeedSource = "presets"
)

// Event represents a domain event emitted by the roster service.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RosterSyncedPayload carries the freshly applied canonical list.
type RosterSyncedPayload struct {
	Members []domain.Member `json:"members"`
}

// RosterSeededPayload describes a seeding round against an empty store.
type RosterSeededPayload struct {
	Source SeedSource `json:"source"`
	Count  int        `json:"count"`
}

// MemberChangedPayload describes a mutation written to the store.
type MemberChangedPayload struct {
	MemberID string `json:"member_id"`
	Field    string `json:"field,omitempty"`
}
