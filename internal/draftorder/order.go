// Package draftorder converts between overall pick numbers and
// (round, pick-in-round) coordinates for linear and snake drafts, and
// generates the full pick grid for a league.
package draftorder

import (
	"errors"
	"fmt"

	"github.com/mcdev12/keeperleague/internal/models"
)

// ErrInvalidArgument reports a coordinate or pick number outside its valid
// range. Callers are expected to validate inputs before display paths.
var ErrInvalidArgument = errors.New("invalid argument")

// Coordinate is a 1-based (round, pick-in-round) draft position.
type Coordinate struct {
	Round int `json:"round"`
	Pick  int `json:"pick"`
}

// OverallToCoordinate maps a 1-based overall pick number to its coordinate.
// The mapping is ordering-agnostic: it labels the serpentine position
// ("Round R, Pick P") and says nothing about which team owns the slot.
func OverallToCoordinate(overall, teamsCount int) (Coordinate, error) {
	if overall < 1 {
		return Coordinate{}, fmt.Errorf("%w: overall pick %d must be >= 1", ErrInvalidArgument, overall)
	}
	if teamsCount < 1 {
		return Coordinate{}, fmt.Errorf("%w: teams count %d must be >= 1", ErrInvalidArgument, teamsCount)
	}

	return Coordinate{
		Round: (overall-1)/teamsCount + 1,
		Pick:  (overall-1)%teamsCount + 1,
	}, nil
}

// CoordinateToOverall maps a coordinate back to the 1-based overall pick
// number under the given ordering. For SNAKE drafts every even round runs in
// reverse: round 1 is never reversed, round 2 always is. For a fixed
// teamsCount and draft type the mapping is a bijection onto 1, 2, 3, ...
func CoordinateToOverall(c Coordinate, teamsCount int, draftType models.DraftType) (int, error) {
	if teamsCount < 1 {
		return 0, fmt.Errorf("%w: teams count %d must be >= 1", ErrInvalidArgument, teamsCount)
	}
	if c.Round < 1 {
		return 0, fmt.Errorf("%w: round %d must be >= 1", ErrInvalidArgument, c.Round)
	}
	if c.Pick < 1 || c.Pick > teamsCount {
		return 0, fmt.Errorf("%w: pick %d must be within [1, %d]", ErrInvalidArgument, c.Pick, teamsCount)
	}

	effectivePick := c.Pick
	if draftType == models.DraftTypeSnake && c.Round%2 == 0 {
		effectivePick = teamsCount - c.Pick + 1
	}

	return (c.Round-1)*teamsCount + effectivePick, nil
}
