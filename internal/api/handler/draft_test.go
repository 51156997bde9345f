package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/keeperleague/internal/api/handler"
	"github.com/mcdev12/keeperleague/internal/draft"
	"github.com/mcdev12/keeperleague/internal/models"
)

type fakeDraftPickStore struct {
	picks     map[int]*models.DraftPick
	completed int
}

func (f *fakeDraftPickStore) CreateDraftPicksBatch(ctx context.Context, picks []models.DraftPick) error {
	return nil
}

func (f *fakeDraftPickStore) FindDraftPicks(ctx context.Context, filter draft.PickFilter) ([]models.DraftPick, error) {
	return nil, nil
}

func (f *fakeDraftPickStore) GetPickByOverall(ctx context.Context, leagueID uuid.UUID, overall int) (*models.DraftPick, error) {
	pick, ok := f.picks[overall]
	if !ok {
		return nil, draft.ErrPickNotFound
	}
	return pick, nil
}

func (f *fakeDraftPickStore) CompletePick(ctx context.Context, req draft.CompletePickRequest) error {
	f.completed++
	return nil
}

func (f *fakeDraftPickStore) RecordLifecycleEvent(ctx context.Context, leagueID uuid.UUID, eventType string, payload []byte) error {
	return nil
}

func (f *fakeDraftPickStore) CountRemainingPicks(ctx context.Context, leagueID uuid.UUID) (int, error) {
	return 1, nil
}

type fakeDraftLeagueRepo struct {
	league *models.League
}

func (f *fakeDraftLeagueRepo) GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error) {
	return f.league, nil
}

func (f *fakeDraftLeagueRepo) UpdateDraftStatus(ctx context.Context, id uuid.UUID, status models.DraftStatus) (*models.League, error) {
	f.league.DraftStatus = status
	return f.league, nil
}

type fakeDraftAvailability struct {
	available bool
}

func (f *fakeDraftAvailability) IsPlayerAvailable(ctx context.Context, leagueID, playerID uuid.UUID) (bool, error) {
	return f.available, nil
}

type draftFixture struct {
	router *chi.Mux
	picks  *fakeDraftPickStore
	league *models.League
	teamID uuid.UUID
}

func newDraftFixture(t *testing.T, status models.DraftStatus, slot *models.DraftPick) *draftFixture {
	t.Helper()

	league := &models.League{ID: uuid.New(), TeamsCount: 10, DraftType: models.DraftTypeSnake, DraftStatus: status}
	teamID := uuid.New()

	picks := &fakeDraftPickStore{picks: map[int]*models.DraftPick{}}
	if slot != nil {
		slot.LeagueID = league.ID
		if slot.TeamID == uuid.Nil {
			slot.TeamID = teamID
		}
		picks.picks[slot.OverallPick] = slot
	}

	app := draft.NewApp(picks, &fakeDraftLeagueRepo{league: league}, &fakeDraftAvailability{available: true},
		clockwork.NewFakeClock())

	h := handler.NewDraftHandler(app)
	r := chi.NewRouter()
	r.Post("/leagues/{leagueID}/draft/pick", h.MakePick)
	r.Post("/leagues/{leagueID}/draft/picks", h.PrepopulatePicks)

	return &draftFixture{router: r, picks: picks, league: league, teamID: teamID}
}

func (fx *draftFixture) makePick(t *testing.T, overall int, teamID, playerID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	body := fmt.Sprintf(`{"overall_pick": %d, "team_id": %q, "player_id": %q}`, overall, teamID, playerID)
	url := fmt.Sprintf("/leagues/%s/draft/pick", fx.league.ID)
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, url, strings.NewReader(body)))
	return w
}

func TestMakePick(t *testing.T) {
	fx := newDraftFixture(t, models.DraftStatusInProgress,
		&models.DraftPick{ID: uuid.New(), Round: 1, Pick: 1, OverallPick: 1})

	w := fx.makePick(t, 1, fx.teamID, uuid.New())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, fx.picks.completed)
}

// Submitting into a slot that already holds a completed pick is a conflict,
// not a storage failure.
func TestMakePick_CompletedSlot(t *testing.T) {
	taken := uuid.New()
	fx := newDraftFixture(t, models.DraftStatusInProgress,
		&models.DraftPick{ID: uuid.New(), Round: 1, Pick: 1, OverallPick: 1, SelectedPlayerID: &taken, IsComplete: true})

	w := fx.makePick(t, 1, fx.teamID, uuid.New())

	require.Equal(t, http.StatusConflict, w.Code)
	env := envelope(t, w)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "CONFLICT", env["error"].(map[string]any)["code"])
	assert.Zero(t, fx.picks.completed)
}

func TestMakePick_WrongTeam(t *testing.T) {
	fx := newDraftFixture(t, models.DraftStatusInProgress,
		&models.DraftPick{ID: uuid.New(), Round: 1, Pick: 1, OverallPick: 1})

	w := fx.makePick(t, 1, uuid.New(), uuid.New())

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := envelope(t, w)
	assert.Equal(t, "VALIDATION_FAILED", env["error"].(map[string]any)["code"])
	assert.Zero(t, fx.picks.completed)
}

func TestMakePick_DraftNotInProgress(t *testing.T) {
	fx := newDraftFixture(t, models.DraftStatusNotStarted,
		&models.DraftPick{ID: uuid.New(), Round: 1, Pick: 1, OverallPick: 1})

	w := fx.makePick(t, 1, fx.teamID, uuid.New())

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := envelope(t, w)
	assert.Equal(t, "VALIDATION_FAILED", env["error"].(map[string]any)["code"])
}

func TestMakePick_UnknownSlot(t *testing.T) {
	fx := newDraftFixture(t, models.DraftStatusInProgress, nil)

	w := fx.makePick(t, 42, fx.teamID, uuid.New())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPrepopulatePicks_AfterStart(t *testing.T) {
	fx := newDraftFixture(t, models.DraftStatusInProgress, nil)

	url := fmt.Sprintf("/leagues/%s/draft/picks", fx.league.ID)
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, url, nil))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := envelope(t, w)
	assert.Equal(t, "VALIDATION_FAILED", env["error"].(map[string]any)["code"])
}
