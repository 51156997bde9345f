// Package draft owns the draft pick grid: prepopulating slots before the
// draft, completing picks during it, and the draft status lifecycle.
package draft

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/keeperleague/internal/draft/outbox"
	"github.com/mcdev12/keeperleague/internal/draftorder"
	"github.com/mcdev12/keeperleague/internal/models"
	"github.com/rs/zerolog/log"
)

// DraftPickRepository defines what the app layer needs from the pick store.
type DraftPickRepository interface {
	CreateDraftPicksBatch(ctx context.Context, picks []models.DraftPick) error
	FindDraftPicks(ctx context.Context, filter PickFilter) ([]models.DraftPick, error)
	GetPickByOverall(ctx context.Context, leagueID uuid.UUID, overall int) (*models.DraftPick, error)
	CompletePick(ctx context.Context, req CompletePickRequest) error
	RecordLifecycleEvent(ctx context.Context, leagueID uuid.UUID, eventType string, payload []byte) error
	CountRemainingPicks(ctx context.Context, leagueID uuid.UUID) (int, error)
}

// PickFilter narrows a pick store read.
type PickFilter struct {
	LeagueID     uuid.UUID
	OnlyComplete bool
	Round        int // 0 = all rounds
}

// CompletePickRequest carries one pick completion. The pick row is updated
// and a PickMade outbox event inserted in the same transaction.
type CompletePickRequest struct {
	PickID        uuid.UUID
	LeagueID      uuid.UUID
	TeamID        uuid.UUID
	PlayerID      uuid.UUID
	OutboxPayload []byte
}

// LeagueRepository defines what the app layer needs from the leagues store.
type LeagueRepository interface {
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	UpdateDraftStatus(ctx context.Context, id uuid.UUID, status models.DraftStatus) (*models.League, error)
}

// AvailabilityChecker guards the pick path: a player outside the live
// candidate pool cannot be drafted.
type AvailabilityChecker interface {
	IsPlayerAvailable(ctx context.Context, leagueID, playerID uuid.UUID) (bool, error)
}

// ValidationError reports a draft operation rejected by business rules: a
// status-gate violation, a slot the team does not own, or a player outside
// the live candidate pool. Distinct from storage failures so the boundary
// can answer 4xx instead of 5xx.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// MakePickRequest identifies the slot being completed and the player taken.
type MakePickRequest struct {
	LeagueID    uuid.UUID `json:"league_id"`
	OverallPick int       `json:"overall_pick"`
	TeamID      uuid.UUID `json:"team_id"`
	PlayerID    uuid.UUID `json:"player_id"`
}

// PickLabel is the display form of an upcoming pick.
type PickLabel struct {
	OverallPick int       `json:"overall_pick"`
	Round       int       `json:"round"`
	Pick        int       `json:"pick"`
	TeamID      uuid.UUID `json:"team_id"`
}

// App handles draft business logic.
type App struct {
	picks        DraftPickRepository
	leagues      LeagueRepository
	availability AvailabilityChecker
	clock        clockwork.Clock
}

func NewApp(picks DraftPickRepository, leagues LeagueRepository, availability AvailabilityChecker, clock clockwork.Clock) *App {
	return &App{
		picks:        picks,
		leagues:      leagues,
		availability: availability,
		clock:        clock,
	}
}

// PrepopulateDraftPicks creates every pick slot for the league's draft from
// its configured rounds and draft order. Only valid before the draft starts
// and only once.
func (a *App) PrepopulateDraftPicks(ctx context.Context, leagueID uuid.UUID) error {
	league, err := a.leagues.GetLeague(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("league not found: %w", err)
	}

	if league.DraftStatus != models.DraftStatusNotStarted {
		return validationErrorf("can only prepopulate picks for drafts with status %s, current status is %s",
			models.DraftStatusNotStarted, league.DraftStatus)
	}

	existing, err := a.picks.FindDraftPicks(ctx, PickFilter{LeagueID: leagueID})
	if err != nil {
		return fmt.Errorf("failed to check existing picks: %w", err)
	}
	if len(existing) > 0 {
		return validationErrorf("draft picks already exist for this league (%d picks found)", len(existing))
	}

	if len(league.Settings.DraftOrder) != league.TeamsCount {
		return validationErrorf("draft order has %d teams, league has %d", len(league.Settings.DraftOrder), league.TeamsCount)
	}

	picks, err := draftorder.GeneratePicks(leagueID, league.Settings.Rounds, league.Settings.DraftOrder, league.DraftType)
	if err != nil {
		return fmt.Errorf("failed to generate draft picks: %w", err)
	}

	if err := a.picks.CreateDraftPicksBatch(ctx, picks); err != nil {
		return fmt.Errorf("failed to create draft picks: %w", err)
	}

	log.Info().
		Str("league_id", leagueID.String()).
		Int("picks", len(picks)).
		Str("draft_type", string(league.DraftType)).
		Msg("prepopulated draft picks")
	return nil
}

// MakePick completes the identified slot with the chosen player. The player
// must be in the league's live candidate pool and the slot must still be
// open; the pick update and its PickMade outbox event commit together.
func (a *App) MakePick(ctx context.Context, req MakePickRequest) error {
	league, err := a.leagues.GetLeague(ctx, req.LeagueID)
	if err != nil {
		return fmt.Errorf("league not found: %w", err)
	}
	if league.DraftStatus != models.DraftStatusInProgress {
		return validationErrorf("can only make picks while the draft is %s, current status is %s",
			models.DraftStatusInProgress, league.DraftStatus)
	}

	pick, err := a.picks.GetPickByOverall(ctx, req.LeagueID, req.OverallPick)
	if err != nil {
		return fmt.Errorf("pick not found: %w", err)
	}
	if pick.IsComplete {
		return fmt.Errorf("%w: pick %d", ErrPickAlreadyComplete, req.OverallPick)
	}
	if pick.TeamID != req.TeamID {
		return validationErrorf("pick %d belongs to team %s, not %s", req.OverallPick, pick.TeamID, req.TeamID)
	}

	available, err := a.availability.IsPlayerAvailable(ctx, req.LeagueID, req.PlayerID)
	if err != nil {
		return fmt.Errorf("failed to check player availability: %w", err)
	}
	if !available {
		return validationErrorf("player %s is not available in this draft", req.PlayerID)
	}

	payload, err := json.Marshal(outbox.PickMadePayload{
		PickID:      pick.ID.String(),
		TeamID:      req.TeamID.String(),
		PlayerID:    req.PlayerID.String(),
		Round:       pick.Round,
		Pick:        pick.Pick,
		OverallPick: pick.OverallPick,
		PickedAt:    a.clock.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal pick payload: %w", err)
	}

	if err := a.picks.CompletePick(ctx, CompletePickRequest{
		PickID:        pick.ID,
		LeagueID:      req.LeagueID,
		TeamID:        req.TeamID,
		PlayerID:      req.PlayerID,
		OutboxPayload: payload,
	}); err != nil {
		return err
	}

	log.Info().
		Str("league_id", req.LeagueID.String()).
		Str("team_id", req.TeamID.String()).
		Str("player_id", req.PlayerID.String()).
		Int("overall_pick", req.OverallPick).
		Msg("pick made")

	return a.completeIfDone(ctx, req.LeagueID)
}

// DescribePick labels an overall pick for display: its (round, pick-in-round)
// coordinate and the team on the clock under the league's ordering.
func (a *App) DescribePick(ctx context.Context, leagueID uuid.UUID, overall int) (*PickLabel, error) {
	league, err := a.leagues.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("league not found: %w", err)
	}

	coord, err := draftorder.OverallToCoordinate(overall, league.TeamsCount)
	if err != nil {
		return nil, err
	}
	teamID, err := draftorder.TeamOnTheClock(overall, league.Settings.DraftOrder, league.DraftType)
	if err != nil {
		return nil, err
	}

	return &PickLabel{
		OverallPick: overall,
		Round:       coord.Round,
		Pick:        coord.Pick,
		TeamID:      teamID,
	}, nil
}

// ListDraftPicks returns the league's pick grid, optionally one round.
func (a *App) ListDraftPicks(ctx context.Context, leagueID uuid.UUID, round int) ([]models.DraftPick, error) {
	if _, err := a.leagues.GetLeague(ctx, leagueID); err != nil {
		return nil, fmt.Errorf("league not found: %w", err)
	}
	picks, err := a.picks.FindDraftPicks(ctx, PickFilter{LeagueID: leagueID, Round: round})
	if err != nil {
		return nil, fmt.Errorf("failed to list draft picks: %w", err)
	}
	return picks, nil
}

// StartDraft moves the league's draft to IN_PROGRESS.
func (a *App) StartDraft(ctx context.Context, leagueID uuid.UUID) error {
	return a.transition(ctx, leagueID, models.DraftStatusInProgress)
}

// CancelDraft moves the league's draft to CANCELLED.
func (a *App) CancelDraft(ctx context.Context, leagueID uuid.UUID) error {
	return a.transition(ctx, leagueID, models.DraftStatusCancelled)
}

func (a *App) transition(ctx context.Context, leagueID uuid.UUID, next models.DraftStatus) error {
	league, err := a.leagues.GetLeague(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("league not found: %w", err)
	}
	if err := validateStatusTransition(league.DraftStatus, next); err != nil {
		return err
	}
	if _, err := a.leagues.UpdateDraftStatus(ctx, leagueID, next); err != nil {
		return fmt.Errorf("failed to update draft status: %w", err)
	}
	a.recordLifecycleEvent(ctx, leagueID, next)
	log.Info().
		Str("league_id", leagueID.String()).
		Str("from", string(league.DraftStatus)).
		Str("to", string(next)).
		Msg("draft status updated")
	return nil
}

// recordLifecycleEvent writes a DraftStarted or DraftCompleted event to the
// outbox. Unlike pick events it rides its own statement; a lost lifecycle
// event degrades downstream consumers, not draft state, so failures only log.
func (a *App) recordLifecycleEvent(ctx context.Context, leagueID uuid.UUID, status models.DraftStatus) {
	var eventType string
	switch status {
	case models.DraftStatusInProgress:
		eventType = outbox.EventTypeDraftStarted
	case models.DraftStatusCompleted:
		eventType = outbox.EventTypeDraftCompleted
	default:
		return
	}

	payload, err := json.Marshal(outbox.DraftStatusPayload{
		LeagueID: leagueID.String(),
		Status:   string(status),
		At:       a.clock.Now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).Str("league_id", leagueID.String()).Msg("failed to marshal lifecycle payload")
		return
	}
	if err := a.picks.RecordLifecycleEvent(ctx, leagueID, eventType, payload); err != nil {
		log.Error().Err(err).Str("league_id", leagueID.String()).Str("event_type", eventType).Msg("failed to record lifecycle event")
	}
}

// completeIfDone flips the draft to COMPLETED when no open slots remain.
func (a *App) completeIfDone(ctx context.Context, leagueID uuid.UUID) error {
	remaining, err := a.picks.CountRemainingPicks(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("failed to count remaining picks: %w", err)
	}
	if remaining > 0 {
		return nil
	}
	return a.transition(ctx, leagueID, models.DraftStatusCompleted)
}

// validateStatusTransition enforces the draft lifecycle.
func validateStatusTransition(current, next models.DraftStatus) error {
	if current == next {
		return nil
	}

	allowed := map[models.DraftStatus][]models.DraftStatus{
		models.DraftStatusNotStarted: {models.DraftStatusInProgress, models.DraftStatusCancelled},
		models.DraftStatusInProgress: {models.DraftStatusCompleted, models.DraftStatusCancelled},
		models.DraftStatusCompleted:  {},
		models.DraftStatusCancelled:  {},
	}

	nexts, ok := allowed[current]
	if !ok {
		return validationErrorf("unknown draft status: %s", current)
	}
	for _, n := range nexts {
		if next == n {
			return nil
		}
	}
	return validationErrorf("transition from %s to %s is not allowed", current, next)
}
