package models

import (
	"time"

	"github.com/google/uuid"
)

// AcquisitionType represents how a player landed on a roster.
type AcquisitionType string

const (
	AcquisitionTypeDraft     AcquisitionType = "DRAFT"
	AcquisitionTypeWaiver    AcquisitionType = "WAIVER"
	AcquisitionTypeTrade     AcquisitionType = "TRADE"
	AcquisitionTypeFreeAgent AcquisitionType = "FREE_AGENT"
	AcquisitionTypeKeeper    AcquisitionType = "KEEPER"
)

// RosterEntry associates a player with a team in a league. IsKeeper marks a
// player retained outside the draft; once the league's draft starts the flag
// is immutable and the player never re-enters the draftable pool.
type RosterEntry struct {
	ID              uuid.UUID       `json:"id"`
	TeamID          uuid.UUID       `json:"team_id"`
	LeagueID        uuid.UUID       `json:"league_id"`
	PlayerID        uuid.UUID       `json:"player_id"`
	IsKeeper        bool            `json:"is_keeper"`
	KeeperRound     *int            `json:"keeper_round,omitempty"` // round cost charged for keeping
	KeeperYears     int             `json:"keeper_years"`           // consecutive seasons kept so far
	AcquisitionType AcquisitionType `json:"acquisition_type"`
	AcquiredAt      time.Time       `json:"acquired_at"`
}
