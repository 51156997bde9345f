package draftorder

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/keeperleague/internal/models"
)

// GeneratePicks builds the full round x teams pick grid for a league. Slots
// come back in overall order with no player assigned; they are batch inserted
// before the draft starts and mutated in place as picks complete.
func GeneratePicks(leagueID uuid.UUID, rounds int, draftOrder []uuid.UUID, draftType models.DraftType) ([]models.DraftPick, error) {
	if rounds < 1 {
		return nil, fmt.Errorf("%w: rounds %d must be >= 1", ErrInvalidArgument, rounds)
	}
	numTeams := len(draftOrder)
	if numTeams == 0 {
		return nil, fmt.Errorf("%w: draft order is empty", ErrInvalidArgument)
	}
	switch draftType {
	case models.DraftTypeLinear, models.DraftTypeSnake:
	default:
		return nil, fmt.Errorf("%w: unknown draft type %q", ErrInvalidArgument, draftType)
	}

	picks := make([]models.DraftPick, 0, rounds*numTeams)

	overallPick := 1
	for round := 1; round <= rounds; round++ {
		roundOrder := draftOrder
		if draftType == models.DraftTypeSnake && round%2 == 0 {
			// Even rounds run in reverse team order.
			roundOrder = make([]uuid.UUID, numTeams)
			for i, teamID := range draftOrder {
				roundOrder[numTeams-1-i] = teamID
			}
		}

		for pick, teamID := range roundOrder {
			picks = append(picks, models.DraftPick{
				ID:          uuid.New(),
				LeagueID:    leagueID,
				Round:       round,
				Pick:        pick + 1, // 1-indexed pick number within round
				OverallPick: overallPick,
				TeamID:      teamID,
			})
			overallPick++
		}
	}

	return picks, nil
}

// TeamOnTheClock returns the team that owns the given overall pick under the
// league's ordering, re-derived from the draft order rather than stored state.
func TeamOnTheClock(overall int, draftOrder []uuid.UUID, draftType models.DraftType) (uuid.UUID, error) {
	coord, err := OverallToCoordinate(overall, len(draftOrder))
	if err != nil {
		return uuid.Nil, err
	}

	slot := coord.Pick
	if draftType == models.DraftTypeSnake && coord.Round%2 == 0 {
		slot = len(draftOrder) - coord.Pick + 1
	}
	return draftOrder[slot-1], nil
}
