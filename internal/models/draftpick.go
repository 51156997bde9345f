package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftPick represents a single pick slot in a league's draft. Slots are
// pre-created for the full round grid before the draft starts and mutated in
// place as picks complete; SelectedPlayerID is set exactly once.
type DraftPick struct {
	ID               uuid.UUID  `json:"id"`
	LeagueID         uuid.UUID  `json:"league_id"`
	Round            int        `json:"round"`
	Pick             int        `json:"pick"`         // pick number in the round
	OverallPick      int        `json:"overall_pick"` // pick number overall
	TeamID           uuid.UUID  `json:"team_id"`
	SelectedPlayerID *uuid.UUID `json:"selected_player_id,omitempty"` // nil until picked
	IsComplete       bool       `json:"is_complete"`
	PickedAt         *time.Time `json:"picked_at,omitempty"`
}
