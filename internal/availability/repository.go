package availability

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads the two exclusion sources on Postgres. Both reads run in
// one read-only transaction so the snapshot is internally consistent even
// while picks complete concurrently.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ExclusionSnapshot reads the league's drafted player IDs and keeper player
// IDs at a single transaction snapshot.
func (r *Repository) ExclusionSnapshot(ctx context.Context, leagueID uuid.UUID) (*Snapshot, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	drafted, err := collectIDs(ctx, tx, `
		SELECT selected_player_id
		FROM draft_picks
		WHERE league_id = $1 AND is_complete AND selected_player_id IS NOT NULL`, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to read drafted players: %w", err)
	}

	keepers, err := collectIDs(ctx, tx, `
		SELECT player_id
		FROM roster_entries
		WHERE league_id = $1 AND is_keeper`, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to read keeper players: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}

	return &Snapshot{
		DraftedPlayerIDs: drafted,
		KeeperPlayerIDs:  keepers,
	}, nil
}

func collectIDs(ctx context.Context, tx pgx.Tx, query string, leagueID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx, query, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
