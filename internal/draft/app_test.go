package draft_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/keeperleague/internal/draft"
	"github.com/mcdev12/keeperleague/internal/draft/outbox"
	"github.com/mcdev12/keeperleague/internal/models"
)

type fakePickRepo struct {
	picks     []models.DraftPick
	completed []draft.CompletePickRequest
	events    []string
}

func (f *fakePickRepo) CreateDraftPicksBatch(ctx context.Context, picks []models.DraftPick) error {
	f.picks = append(f.picks, picks...)
	return nil
}

func (f *fakePickRepo) FindDraftPicks(ctx context.Context, filter draft.PickFilter) ([]models.DraftPick, error) {
	var out []models.DraftPick
	for _, p := range f.picks {
		if p.LeagueID != filter.LeagueID {
			continue
		}
		if filter.OnlyComplete && !p.IsComplete {
			continue
		}
		if filter.Round != 0 && p.Round != filter.Round {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePickRepo) GetPickByOverall(ctx context.Context, leagueID uuid.UUID, overall int) (*models.DraftPick, error) {
	for i := range f.picks {
		if f.picks[i].LeagueID == leagueID && f.picks[i].OverallPick == overall {
			pick := f.picks[i]
			return &pick, nil
		}
	}
	return nil, draft.ErrPickNotFound
}

func (f *fakePickRepo) CompletePick(ctx context.Context, req draft.CompletePickRequest) error {
	for i := range f.picks {
		if f.picks[i].ID == req.PickID {
			if f.picks[i].IsComplete {
				return draft.ErrPickAlreadyComplete
			}
			f.picks[i].IsComplete = true
			playerID := req.PlayerID
			f.picks[i].SelectedPlayerID = &playerID
		}
	}
	f.completed = append(f.completed, req)
	return nil
}

func (f *fakePickRepo) RecordLifecycleEvent(ctx context.Context, leagueID uuid.UUID, eventType string, payload []byte) error {
	f.events = append(f.events, eventType)
	return nil
}

func (f *fakePickRepo) CountRemainingPicks(ctx context.Context, leagueID uuid.UUID) (int, error) {
	remaining := 0
	for _, p := range f.picks {
		if p.LeagueID == leagueID && !p.IsComplete {
			remaining++
		}
	}
	return remaining, nil
}

type fakeLeagueRepo struct {
	league *models.League
}

func (f *fakeLeagueRepo) GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error) {
	return f.league, nil
}

func (f *fakeLeagueRepo) UpdateDraftStatus(ctx context.Context, id uuid.UUID, status models.DraftStatus) (*models.League, error) {
	f.league.DraftStatus = status
	return f.league, nil
}

type fakeAvailability struct {
	unavailable map[uuid.UUID]bool
}

func (f *fakeAvailability) IsPlayerAvailable(ctx context.Context, leagueID, playerID uuid.UUID) (bool, error) {
	return !f.unavailable[playerID], nil
}

type fixture struct {
	app     *draft.App
	picks   *fakePickRepo
	leagues *fakeLeagueRepo
	avail   *fakeAvailability
	league  *models.League
}

func newFixture(t *testing.T, teams, rounds int, draftType models.DraftType) *fixture {
	t.Helper()

	order := make([]uuid.UUID, teams)
	for i := range order {
		order[i] = uuid.New()
	}
	league := &models.League{
		ID:          uuid.New(),
		TeamsCount:  teams,
		DraftType:   draftType,
		DraftStatus: models.DraftStatusNotStarted,
		Settings: models.LeagueSettings{
			Rounds:     rounds,
			DraftOrder: order,
		},
	}

	picks := &fakePickRepo{}
	leagues := &fakeLeagueRepo{league: league}
	avail := &fakeAvailability{unavailable: map[uuid.UUID]bool{}}

	return &fixture{
		app:     draft.NewApp(picks, leagues, avail, clockwork.NewFakeClock()),
		picks:   picks,
		leagues: leagues,
		avail:   avail,
		league:  league,
	}
}

func (fx *fixture) startDraft(t *testing.T) {
	t.Helper()
	require.NoError(t, fx.app.PrepopulateDraftPicks(context.Background(), fx.league.ID))
	require.NoError(t, fx.app.StartDraft(context.Background(), fx.league.ID))
}

func TestPrepopulateDraftPicks(t *testing.T) {
	fx := newFixture(t, 4, 3, models.DraftTypeSnake)

	require.NoError(t, fx.app.PrepopulateDraftPicks(context.Background(), fx.league.ID))
	require.Len(t, fx.picks.picks, 12)

	// Snake round 2 assigns the round-1 closer the opening pick.
	order := fx.league.Settings.DraftOrder
	assert.Equal(t, order[0], fx.picks.picks[0].TeamID)
	assert.Equal(t, order[3], fx.picks.picks[4].TeamID)
}

func TestPrepopulateDraftPicks_OnlyOnce(t *testing.T) {
	fx := newFixture(t, 4, 3, models.DraftTypeLinear)

	require.NoError(t, fx.app.PrepopulateDraftPicks(context.Background(), fx.league.ID))
	err := fx.app.PrepopulateDraftPicks(context.Background(), fx.league.ID)

	var verr *draft.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "already exist")
}

func TestPrepopulateDraftPicks_RejectedAfterStart(t *testing.T) {
	fx := newFixture(t, 4, 3, models.DraftTypeLinear)
	fx.league.DraftStatus = models.DraftStatusInProgress

	err := fx.app.PrepopulateDraftPicks(context.Background(), fx.league.ID)
	assert.Error(t, err)
}

func TestPrepopulateDraftPicks_DraftOrderMismatch(t *testing.T) {
	fx := newFixture(t, 4, 3, models.DraftTypeLinear)
	fx.league.TeamsCount = 6

	err := fx.app.PrepopulateDraftPicks(context.Background(), fx.league.ID)

	var verr *draft.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "draft order")
}

func TestMakePick(t *testing.T) {
	fx := newFixture(t, 4, 3, models.DraftTypeSnake)
	fx.startDraft(t)

	slot := fx.picks.picks[0]
	playerID := uuid.New()

	err := fx.app.MakePick(context.Background(), draft.MakePickRequest{
		LeagueID:    fx.league.ID,
		OverallPick: 1,
		TeamID:      slot.TeamID,
		PlayerID:    playerID,
	})
	require.NoError(t, err)

	require.Len(t, fx.picks.completed, 1)
	req := fx.picks.completed[0]
	assert.Equal(t, slot.ID, req.PickID)
	assert.Equal(t, playerID, req.PlayerID)

	var payload outbox.PickMadePayload
	require.NoError(t, json.Unmarshal(req.OutboxPayload, &payload))
	assert.Equal(t, playerID.String(), payload.PlayerID)
	assert.Equal(t, 1, payload.OverallPick)
}

func TestMakePick_RequiresInProgressDraft(t *testing.T) {
	fx := newFixture(t, 4, 3, models.DraftTypeSnake)
	require.NoError(t, fx.app.PrepopulateDraftPicks(context.Background(), fx.league.ID))

	err := fx.app.MakePick(context.Background(), draft.MakePickRequest{
		LeagueID:    fx.league.ID,
		OverallPick: 1,
		TeamID:      fx.picks.picks[0].TeamID,
		PlayerID:    uuid.New(),
	})

	var verr *draft.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Empty(t, fx.picks.completed)
}

func TestMakePick_WrongTeamRejected(t *testing.T) {
	fx := newFixture(t, 4, 3, models.DraftTypeSnake)
	fx.startDraft(t)

	err := fx.app.MakePick(context.Background(), draft.MakePickRequest{
		LeagueID:    fx.league.ID,
		OverallPick: 1,
		TeamID:      uuid.New(),
		PlayerID:    uuid.New(),
	})

	var verr *draft.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "belongs to team")
	assert.Empty(t, fx.picks.completed)
}

func TestMakePick_CompletedSlotRejected(t *testing.T) {
	fx := newFixture(t, 4, 3, models.DraftTypeSnake)
	fx.startDraft(t)

	slot := fx.picks.picks[0]
	req := draft.MakePickRequest{
		LeagueID:    fx.league.ID,
		OverallPick: 1,
		TeamID:      slot.TeamID,
		PlayerID:    uuid.New(),
	}
	require.NoError(t, fx.app.MakePick(context.Background(), req))

	req.PlayerID = uuid.New()
	err := fx.app.MakePick(context.Background(), req)
	assert.ErrorIs(t, err, draft.ErrPickAlreadyComplete)
	assert.Len(t, fx.picks.completed, 1)
}

func TestMakePick_UnavailablePlayerRejected(t *testing.T) {
	fx := newFixture(t, 4, 3, models.DraftTypeSnake)
	fx.startDraft(t)

	taken := uuid.New()
	fx.avail.unavailable[taken] = true

	err := fx.app.MakePick(context.Background(), draft.MakePickRequest{
		LeagueID:    fx.league.ID,
		OverallPick: 1,
		TeamID:      fx.picks.picks[0].TeamID,
		PlayerID:    taken,
	})

	var verr *draft.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "not available")
	assert.Empty(t, fx.picks.completed)
}

func TestMakePick_LastPickCompletesDraft(t *testing.T) {
	fx := newFixture(t, 2, 1, models.DraftTypeLinear)
	fx.startDraft(t)

	for _, slot := range fx.picks.picks {
		require.NoError(t, fx.app.MakePick(context.Background(), draft.MakePickRequest{
			LeagueID:    fx.league.ID,
			OverallPick: slot.OverallPick,
			TeamID:      slot.TeamID,
			PlayerID:    uuid.New(),
		}))
	}

	assert.Equal(t, models.DraftStatusCompleted, fx.league.DraftStatus)
	assert.Equal(t, []string{outbox.EventTypeDraftStarted, outbox.EventTypeDraftCompleted}, fx.picks.events)
}

func TestDescribePick(t *testing.T) {
	fx := newFixture(t, 10, 3, models.DraftTypeSnake)

	label, err := fx.app.DescribePick(context.Background(), fx.league.ID, 20)
	require.NoError(t, err)

	assert.Equal(t, 2, label.Round)
	assert.Equal(t, 10, label.Pick)
	// In a snake draft the slot-1 team closes round 2.
	assert.Equal(t, fx.league.Settings.DraftOrder[0], label.TeamID)
}

func TestListDraftPicks_ByRound(t *testing.T) {
	fx := newFixture(t, 4, 3, models.DraftTypeLinear)
	require.NoError(t, fx.app.PrepopulateDraftPicks(context.Background(), fx.league.ID))

	picks, err := fx.app.ListDraftPicks(context.Background(), fx.league.ID, 2)
	require.NoError(t, err)
	require.Len(t, picks, 4)
	for _, p := range picks {
		assert.Equal(t, 2, p.Round)
	}
}

func TestDraftLifecycle(t *testing.T) {
	fx := newFixture(t, 4, 3, models.DraftTypeLinear)

	require.NoError(t, fx.app.StartDraft(context.Background(), fx.league.ID))
	assert.Equal(t, models.DraftStatusInProgress, fx.league.DraftStatus)

	require.NoError(t, fx.app.CancelDraft(context.Background(), fx.league.ID))
	assert.Equal(t, models.DraftStatusCancelled, fx.league.DraftStatus)

	// Terminal states admit no transitions.
	var verr *draft.ValidationError
	assert.ErrorAs(t, fx.app.StartDraft(context.Background(), fx.league.ID), &verr)
}
