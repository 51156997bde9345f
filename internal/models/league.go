package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftType defines the pick ordering policy for a league's draft.
type DraftType string

const (
	DraftTypeLinear DraftType = "LINEAR"
	DraftTypeSnake  DraftType = "SNAKE"
)

// DraftStatus defines the lifecycle state of a league's draft.
type DraftStatus string

const (
	DraftStatusNotStarted DraftStatus = "NOT_STARTED"
	DraftStatusInProgress DraftStatus = "IN_PROGRESS"
	DraftStatusCompleted  DraftStatus = "COMPLETED"
	DraftStatusCancelled  DraftStatus = "CANCELLED"
)

// LeagueSettings holds JSONB configuration for a league.
type LeagueSettings struct {
	Rounds            int         `json:"rounds"`
	DraftOrder        []uuid.UUID `json:"draft_order,omitempty"`
	MaxKeepersPerTeam int         `json:"max_keepers_per_team,omitempty"`
	MaxKeeperYears    int         `json:"max_keeper_years,omitempty"` // 0 = unlimited
}

// League represents a fantasy sports league.
type League struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	TeamsCount  int            `json:"teams_count"`
	DraftType   DraftType      `json:"draft_type"`
	DraftStatus DraftStatus    `json:"draft_status"`
	Settings    LeagueSettings `json:"settings"`
	Season      string         `json:"season"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
