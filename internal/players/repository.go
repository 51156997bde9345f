// Package players is the read interface over the immutable player catalog.
package players

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/keeperleague/internal/models"
)

// ErrPlayerNotFound is returned when a catalog lookup misses.
var ErrPlayerNotFound = errors.New("player not found")

// Filter narrows a catalog read. ExcludeIDs is an identifier exclusion set;
// empty excludes nothing.
type Filter struct {
	Status     models.PlayerStatus
	ExcludeIDs []uuid.UUID
}

// Repository implements catalog reads on Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindPlayers returns catalog players matching the filter, ordered by name
// for stable presentation.
func (r *Repository) FindPlayers(ctx context.Context, filter Filter) ([]models.Player, error) {
	query := `
		SELECT id, full_name, position, status, created_at
		FROM players
		WHERE 1=1`
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if len(filter.ExcludeIDs) > 0 {
		args = append(args, filter.ExcludeIDs)
		query += fmt.Sprintf(` AND NOT (id = ANY($%d))`, len(args))
	}
	query += ` ORDER BY full_name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find players: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

// GetPlayer loads one catalog entry.
func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, full_name, position, status, created_at
		FROM players
		WHERE id = $1`, id)

	var p models.Player
	if err := row.Scan(&p.ID, &p.FullName, &p.Position, &p.Status, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &p, nil
}

// GetPlayersByIDs loads the named catalog entries, ordered by name.
func (r *Repository) GetPlayersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Player, error) {
	if len(ids) == 0 {
		return []models.Player{}, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, full_name, position, status, created_at
		FROM players
		WHERE id = ANY($1)
		ORDER BY full_name ASC`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get players by ids: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

func collectPlayers(rows pgx.Rows) ([]models.Player, error) {
	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.FullName, &p.Position, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}
	return players, nil
}
