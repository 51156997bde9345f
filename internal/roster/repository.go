// Package roster is the store for team rosters and their keeper flags.
package roster

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/keeperleague/internal/keeper"
	"github.com/mcdev12/keeperleague/internal/models"
)

// Filter narrows a roster read.
type Filter struct {
	LeagueID    uuid.UUID
	TeamID      uuid.UUID // zero value = all teams
	KeepersOnly bool
}

// Repository implements roster reads and the transactional keeper write on
// Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindRosterEntries returns entries matching the filter.
func (r *Repository) FindRosterEntries(ctx context.Context, filter Filter) ([]models.RosterEntry, error) {
	query := `
		SELECT id, team_id, league_id, player_id, is_keeper, keeper_round, keeper_years, acquisition_type, acquired_at
		FROM roster_entries
		WHERE league_id = $1`
	args := []any{filter.LeagueID}

	if filter.TeamID != uuid.Nil {
		args = append(args, filter.TeamID)
		query += fmt.Sprintf(` AND team_id = $%d`, len(args))
	}
	if filter.KeepersOnly {
		query += ` AND is_keeper`
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find roster entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// ListTeamKeepers returns the team's current keeper entries.
func (r *Repository) ListTeamKeepers(ctx context.Context, teamID, leagueID uuid.UUID) ([]models.RosterEntry, error) {
	return r.FindRosterEntries(ctx, Filter{LeagueID: leagueID, TeamID: teamID, KeepersOnly: true})
}

// ListTeamRoster returns every entry for one team.
func (r *Repository) ListTeamRoster(ctx context.Context, teamID uuid.UUID) ([]models.RosterEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, team_id, league_id, player_id, is_keeper, keeper_round, keeper_years, acquisition_type, acquired_at
		FROM roster_entries
		WHERE team_id = $1`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team roster: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// WriteKeeperSelections replaces the team's keeper flags with the submitted
// selections in one transaction: clear previous flags, set the new ones. A
// failure anywhere rolls the whole submission back, so no partial keeper set
// can persist.
func (r *Repository) WriteKeeperSelections(ctx context.Context, teamID, leagueID uuid.UUID, selections []keeper.Selection) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE roster_entries
		SET is_keeper = FALSE, keeper_round = NULL
		WHERE team_id = $1 AND league_id = $2 AND is_keeper`, teamID, leagueID); err != nil {
		return fmt.Errorf("failed to clear keeper flags: %w", err)
	}

	for _, sel := range selections {
		tag, err := tx.Exec(ctx, `
			UPDATE roster_entries
			SET is_keeper = TRUE, keeper_round = $3
			WHERE team_id = $1 AND player_id = $2 AND league_id = $4`,
			teamID, sel.PlayerID, sel.KeeperRound, leagueID)
		if err != nil {
			return fmt.Errorf("failed to set keeper flag for player %s: %w", sel.PlayerID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("player %s is not on the team's roster", sel.PlayerID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit keeper selections: %w", err)
	}
	return nil
}

func collectEntries(rows pgx.Rows) ([]models.RosterEntry, error) {
	var entries []models.RosterEntry
	for rows.Next() {
		var e models.RosterEntry
		if err := rows.Scan(
			&e.ID,
			&e.TeamID,
			&e.LeagueID,
			&e.PlayerID,
			&e.IsKeeper,
			&e.KeeperRound,
			&e.KeeperYears,
			&e.AcquisitionType,
			&e.AcquiredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster entries: %w", err)
	}
	return entries, nil
}
