package draftorder_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/keeperleague/internal/draftorder"
	"github.com/mcdev12/keeperleague/internal/models"
)

func draftOrderOf(n int) []uuid.UUID {
	order := make([]uuid.UUID, n)
	for i := range order {
		order[i] = uuid.New()
	}
	return order
}

func TestGeneratePicks_Linear(t *testing.T) {
	leagueID := uuid.New()
	order := draftOrderOf(4)

	picks, err := draftorder.GeneratePicks(leagueID, 3, order, models.DraftTypeLinear)
	require.NoError(t, err)
	require.Len(t, picks, 12)

	for i, pick := range picks {
		assert.Equal(t, leagueID, pick.LeagueID)
		assert.Equal(t, i+1, pick.OverallPick)
		assert.Equal(t, i/4+1, pick.Round)
		assert.Equal(t, i%4+1, pick.Pick)
		// Linear drafts repeat the same order every round.
		assert.Equal(t, order[i%4], pick.TeamID)
		assert.False(t, pick.IsComplete)
		assert.Nil(t, pick.SelectedPlayerID)
	}
}

func TestGeneratePicks_SnakeReversesEvenRounds(t *testing.T) {
	leagueID := uuid.New()
	order := draftOrderOf(4)

	picks, err := draftorder.GeneratePicks(leagueID, 2, order, models.DraftTypeSnake)
	require.NoError(t, err)
	require.Len(t, picks, 8)

	// Round 1 runs forward.
	for i := 0; i < 4; i++ {
		assert.Equal(t, order[i], picks[i].TeamID)
	}
	// Round 2 runs backward: the team that picked first picks last.
	for i := 0; i < 4; i++ {
		assert.Equal(t, order[3-i], picks[4+i].TeamID)
	}

	first := order[0]
	assert.Equal(t, first, picks[0].TeamID)
	assert.Equal(t, first, picks[7].TeamID)
}

func TestGeneratePicks_InvalidArguments(t *testing.T) {
	leagueID := uuid.New()
	order := draftOrderOf(4)

	_, err := draftorder.GeneratePicks(leagueID, 0, order, models.DraftTypeLinear)
	assert.ErrorIs(t, err, draftorder.ErrInvalidArgument)

	_, err = draftorder.GeneratePicks(leagueID, 3, nil, models.DraftTypeLinear)
	assert.ErrorIs(t, err, draftorder.ErrInvalidArgument)

	_, err = draftorder.GeneratePicks(leagueID, 3, order, models.DraftType("AUCTION"))
	assert.ErrorIs(t, err, draftorder.ErrInvalidArgument)
}

func TestTeamOnTheClock_MatchesGeneratedGrid(t *testing.T) {
	leagueID := uuid.New()
	order := draftOrderOf(6)

	for _, draftType := range []models.DraftType{models.DraftTypeLinear, models.DraftTypeSnake} {
		picks, err := draftorder.GeneratePicks(leagueID, 4, order, draftType)
		require.NoError(t, err)

		for _, pick := range picks {
			teamID, err := draftorder.TeamOnTheClock(pick.OverallPick, order, draftType)
			require.NoError(t, err)
			assert.Equal(t, pick.TeamID, teamID, "%s overall %d", draftType, pick.OverallPick)
		}
	}
}

func TestTeamOnTheClock_InvalidOverall(t *testing.T) {
	_, err := draftorder.TeamOnTheClock(0, draftOrderOf(4), models.DraftTypeSnake)
	assert.ErrorIs(t, err, draftorder.ErrInvalidArgument)
}
