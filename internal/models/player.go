package models

import (
	"time"

	"github.com/google/uuid"
)

// PlayerStatus defines whether a player can appear in draft pools.
type PlayerStatus string

const (
	PlayerStatusActive   PlayerStatus = "ACTIVE"
	PlayerStatusInactive PlayerStatus = "INACTIVE"
	PlayerStatusRetired  PlayerStatus = "RETIRED"
)

// Player represents a catalog entry. Catalog rows are immutable as far as
// draft and keeper logic is concerned.
type Player struct {
	ID        uuid.UUID    `json:"id"`
	FullName  string       `json:"full_name"`
	Position  string       `json:"position"` // 'QB', 'RB', 'WR', etc.
	Status    PlayerStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}
