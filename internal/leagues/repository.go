// Package leagues is the store for league records and their settings.
package leagues

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/keeperleague/internal/models"
)

var ErrLeagueNotFound = errors.New("league not found")

// Repository implements league storage on Postgres. Settings live in a JSONB
// column so rule changes never need a migration.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetLeague fetches a league by ID.
func (r *Repository) GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, teams_count, draft_type, draft_status, settings, season, created_at, updated_at
		FROM leagues
		WHERE id = $1`, id)

	league, err := scanLeague(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrLeagueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get league: %w", err)
	}
	return league, nil
}

func scanLeague(row pgx.Row) (*models.League, error) {
	var league models.League
	var settings []byte
	err := row.Scan(
		&league.ID,
		&league.Name,
		&league.TeamsCount,
		&league.DraftType,
		&league.DraftStatus,
		&settings,
		&league.Season,
		&league.CreatedAt,
		&league.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &league.Settings); err != nil {
			return nil, fmt.Errorf("failed to decode league settings: %w", err)
		}
	}
	return &league, nil
}

// UpdateDraftStatus sets the league's draft status and returns the updated
// league. Transition validation is the caller's job; the store only records
// the result.
func (r *Repository) UpdateDraftStatus(ctx context.Context, id uuid.UUID, status models.DraftStatus) (*models.League, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE leagues
		SET draft_status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, teams_count, draft_type, draft_status, settings, season, created_at, updated_at`,
		id, status)

	league, err := scanLeague(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrLeagueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update draft status: %w", err)
	}
	return league, nil
}

// UpdateSettings replaces the league's settings document.
func (r *Repository) UpdateSettings(ctx context.Context, id uuid.UUID, settings models.LeagueSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode league settings: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE leagues
		SET settings = $2, updated_at = NOW()
		WHERE id = $1`, id, raw)
	if err != nil {
		return fmt.Errorf("failed to update league settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeagueNotFound
	}
	return nil
}
