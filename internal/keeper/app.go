// Package keeper implements the pre-draft keeper selection workflow:
// listing the players a team may retain and persisting a team's keeper
// choices all-or-nothing.
package keeper

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/keeperleague/internal/models"
	"github.com/rs/zerolog/log"
)

// Selection is one submitted keeper choice. KeeperRound is the round cost
// charged for retaining the player; nil means the league does not charge one.
type Selection struct {
	PlayerID    uuid.UUID `json:"player_id"`
	KeeperRound *int      `json:"keeper_round,omitempty"`
}

// RosterRepository defines what the keeper app needs from the roster store.
// WriteKeeperSelections must be transactional: either every selection
// persists or none do.
type RosterRepository interface {
	ListTeamRoster(ctx context.Context, teamID uuid.UUID) ([]models.RosterEntry, error)
	ListTeamKeepers(ctx context.Context, teamID, leagueID uuid.UUID) ([]models.RosterEntry, error)
	WriteKeeperSelections(ctx context.Context, teamID, leagueID uuid.UUID, selections []Selection) error
}

// PlayerRepository defines what the keeper app needs from the player catalog.
type PlayerRepository interface {
	GetPlayersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Player, error)
}

// LeagueRepository defines what the keeper app needs from the leagues store.
type LeagueRepository interface {
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
}

// TeamRepository defines what the keeper app needs from the teams store.
type TeamRepository interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
}

// App handles keeper selection business logic.
type App struct {
	rosters  RosterRepository
	players  PlayerRepository
	leagues  LeagueRepository
	teams    TeamRepository
	clock    clockwork.Clock
	defaults Rules
}

// NewApp creates a keeper App. defaults apply when a league's settings do not
// specify keeper rules of their own.
func NewApp(rosters RosterRepository, players PlayerRepository, leagues LeagueRepository, teams TeamRepository, clock clockwork.Clock, defaults Rules) *App {
	return &App{
		rosters:  rosters,
		players:  players,
		leagues:  leagues,
		teams:    teams,
		clock:    clock,
		defaults: defaults,
	}
}

// GetPotentialKeepers returns the subset of a team's roster eligible to be
// retained under the league's keeper rules.
func (a *App) GetPotentialKeepers(ctx context.Context, teamID, leagueID uuid.UUID) ([]models.Player, error) {
	league, team, err := a.resolveLeagueAndTeam(ctx, teamID, leagueID)
	if err != nil {
		return nil, err
	}

	rules := a.rulesFor(league)

	roster, err := a.rosters.ListTeamRoster(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team roster: %w", err)
	}

	var eligibleIDs []uuid.UUID
	for _, entry := range roster {
		if rules.EntryEligible(entry) {
			eligibleIDs = append(eligibleIDs, entry.PlayerID)
		}
	}
	if len(eligibleIDs) == 0 {
		return []models.Player{}, nil
	}

	players, err := a.players.GetPlayersByIDs(ctx, eligibleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligible players: %w", err)
	}
	return players, nil
}

// GetKeepers returns the team's currently saved keeper entries.
func (a *App) GetKeepers(ctx context.Context, teamID, leagueID uuid.UUID) ([]models.RosterEntry, error) {
	_, team, err := a.resolveLeagueAndTeam(ctx, teamID, leagueID)
	if err != nil {
		return nil, err
	}

	keepers, err := a.rosters.ListTeamKeepers(ctx, team.ID, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team keepers: %w", err)
	}
	return keepers, nil
}

// SaveKeepers validates and persists a team's keeper selections. The write is
// all-or-nothing: any invalid selection rejects the whole submission and
// nothing persists. Submissions are rejected outright once the league's
// draft has started.
func (a *App) SaveKeepers(ctx context.Context, teamID, leagueID uuid.UUID, selections []Selection) error {
	league, team, err := a.resolveLeagueAndTeam(ctx, teamID, leagueID)
	if err != nil {
		return err
	}

	if league.DraftStatus != models.DraftStatusNotStarted {
		return &ValidationError{
			Reason: fmt.Sprintf("keepers are locked once the draft starts (draft status %s)", league.DraftStatus),
		}
	}

	rules := a.rulesFor(league)

	if rules.MaxKeepersPerTeam > 0 && len(selections) > rules.MaxKeepersPerTeam {
		return &ValidationError{
			Reason: fmt.Sprintf("selected %d keepers, league allows at most %d", len(selections), rules.MaxKeepersPerTeam),
		}
	}

	roster, err := a.rosters.ListTeamRoster(ctx, team.ID)
	if err != nil {
		return fmt.Errorf("failed to list team roster: %w", err)
	}
	byPlayer := make(map[uuid.UUID]models.RosterEntry, len(roster))
	for _, entry := range roster {
		byPlayer[entry.PlayerID] = entry
	}

	seen := make(map[uuid.UUID]struct{}, len(selections))
	var offending []uuid.UUID
	for _, sel := range selections {
		if _, dup := seen[sel.PlayerID]; dup {
			offending = append(offending, sel.PlayerID)
			continue
		}
		seen[sel.PlayerID] = struct{}{}

		entry, onRoster := byPlayer[sel.PlayerID]
		if !onRoster || !rules.EntryEligible(entry) {
			offending = append(offending, sel.PlayerID)
		}
	}
	if len(offending) > 0 {
		return &ValidationError{
			Reason:    "selections include players not eligible for this team",
			PlayerIDs: offending,
		}
	}

	if err := a.rosters.WriteKeeperSelections(ctx, team.ID, league.ID, selections); err != nil {
		return fmt.Errorf("failed to write keeper selections: %w", err)
	}

	log.Info().
		Str("league_id", league.ID.String()).
		Str("team_id", team.ID.String()).
		Int("keepers", len(selections)).
		Time("saved_at", a.clock.Now()).
		Msg("saved keeper selections")
	return nil
}

// resolveLeagueAndTeam loads both entities and checks the team belongs to
// the league. Identity is always explicit; nothing is inferred from sessions.
func (a *App) resolveLeagueAndTeam(ctx context.Context, teamID, leagueID uuid.UUID) (*models.League, *models.Team, error) {
	league, err := a.leagues.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, nil, fmt.Errorf("league not found: %w", err)
	}

	team, err := a.teams.GetTeam(ctx, teamID)
	if err != nil {
		return nil, nil, fmt.Errorf("team not found: %w", err)
	}
	if team.LeagueID != league.ID {
		return nil, nil, &ValidationError{
			Reason: fmt.Sprintf("team %s does not belong to league %s", teamID, leagueID),
		}
	}
	return league, team, nil
}

// rulesFor resolves effective keeper rules: league settings win, app
// defaults fill the gaps.
func (a *App) rulesFor(league *models.League) Rules {
	rules := a.defaults
	if league.Settings.MaxKeepersPerTeam > 0 {
		rules.MaxKeepersPerTeam = league.Settings.MaxKeepersPerTeam
	}
	if league.Settings.MaxKeeperYears > 0 {
		rules.MaxKeeperYears = league.Settings.MaxKeeperYears
	}
	return rules
}
