package keeper

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/keeperleague/internal/models"
)

// Rules are league-configured keeper constraints. Zero values mean
// "no limit"; leagues supply their own values through settings.
type Rules struct {
	MaxKeepersPerTeam int `yaml:"max_keepers_per_team"`
	MaxKeeperYears    int `yaml:"max_keeper_years"`
}

// EntryEligible reports whether a roster entry may be retained under these
// rules.
func (r Rules) EntryEligible(entry models.RosterEntry) bool {
	if r.MaxKeeperYears > 0 && entry.KeeperYears >= r.MaxKeeperYears {
		return false
	}
	return true
}

// ValidationError reports a keeper submission that violates team ownership
// or league limits. PlayerIDs names the offending players when the violation
// is per-player.
type ValidationError struct {
	Reason    string
	PlayerIDs []uuid.UUID
}

func (e *ValidationError) Error() string {
	if len(e.PlayerIDs) == 0 {
		return e.Reason
	}
	ids := make([]string, len(e.PlayerIDs))
	for i, id := range e.PlayerIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(ids, ", "))
}
