// Package outbox relays draft events written transactionally next to their
// source rows out to NATS JetStream. The listener rides Postgres
// LISTEN/NOTIFY with a polling fallback for missed notifications.
package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types written to the league outbox.
const (
	EventTypePickMade       = "PickMade"
	EventTypeDraftStarted   = "DraftStarted"
	EventTypeDraftCompleted = "DraftCompleted"
)

// OutboxEvent is one row of the league outbox table.
type OutboxEvent struct {
	ID        uuid.UUID       `json:"id"`
	LeagueID  uuid.UUID       `json:"league_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	SentAt    *time.Time      `json:"sent_at,omitempty"`
}

// PickMadePayload is the payload for EventTypePickMade.
type PickMadePayload struct {
	PickID      string    `json:"pick_id"`
	TeamID      string    `json:"team_id"`
	PlayerID    string    `json:"player_id"`
	Round       int       `json:"round"`
	Pick        int       `json:"pick"`
	OverallPick int       `json:"overall_pick"`
	PickedAt    time.Time `json:"picked_at"`
}

// DraftStatusPayload is the payload for draft lifecycle events.
type DraftStatusPayload struct {
	LeagueID string    `json:"league_id"`
	Status   string    `json:"status"`
	At       time.Time `json:"at"`
}
