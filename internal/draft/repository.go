package draft

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/keeperleague/internal/draft/outbox"
	"github.com/mcdev12/keeperleague/internal/models"
)

// ErrPickNotFound is returned when a pick slot does not exist.
var ErrPickNotFound = errors.New("draft pick not found")

// ErrPickAlreadyComplete is returned when completing a slot that already has
// a player; the player assignment is set exactly once.
var ErrPickAlreadyComplete = errors.New("draft pick already complete")

// Repository implements DraftPickRepository on Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateDraftPicksBatch inserts the full pick grid in one COPY.
func (r *Repository) CreateDraftPicksBatch(ctx context.Context, picks []models.DraftPick) error {
	if len(picks) == 0 {
		return nil
	}

	rows := make([][]any, len(picks))
	for i, p := range picks {
		rows[i] = []any{p.ID, p.LeagueID, p.Round, p.Pick, p.OverallPick, p.TeamID}
	}

	_, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"draft_picks"},
		[]string{"id", "league_id", "round", "pick", "overall_pick", "team_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to create draft picks batch: %w", err)
	}
	return nil
}

// FindDraftPicks returns picks matching the filter, in overall order.
func (r *Repository) FindDraftPicks(ctx context.Context, filter PickFilter) ([]models.DraftPick, error) {
	query := `
		SELECT id, league_id, round, pick, overall_pick, team_id, selected_player_id, is_complete, picked_at
		FROM draft_picks
		WHERE league_id = $1`
	args := []any{filter.LeagueID}

	if filter.OnlyComplete {
		query += ` AND is_complete AND selected_player_id IS NOT NULL`
	}
	if filter.Round > 0 {
		args = append(args, filter.Round)
		query += fmt.Sprintf(` AND round = $%d`, len(args))
	}
	query += ` ORDER BY overall_pick ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find draft picks: %w", err)
	}
	defer rows.Close()

	var picks []models.DraftPick
	for rows.Next() {
		pick, err := scanPick(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft pick: %w", err)
		}
		picks = append(picks, *pick)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draft picks: %w", err)
	}
	return picks, nil
}

// GetPickByOverall loads one slot by its overall pick number.
func (r *Repository) GetPickByOverall(ctx context.Context, leagueID uuid.UUID, overall int) (*models.DraftPick, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, league_id, round, pick, overall_pick, team_id, selected_player_id, is_complete, picked_at
		FROM draft_picks
		WHERE league_id = $1 AND overall_pick = $2`, leagueID, overall)

	pick, err := scanPick(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPickNotFound
		}
		return nil, fmt.Errorf("failed to get draft pick: %w", err)
	}
	return pick, nil
}

// CompletePick sets the slot's player and completion flag and inserts the
// PickMade outbox row in the same transaction. A row-level NOTIFY trigger on
// league_outbox wakes the relay listener.
func (r *Repository) CompletePick(ctx context.Context, req CompletePickRequest) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE draft_picks
		SET selected_player_id = $2, is_complete = TRUE, picked_at = NOW()
		WHERE id = $1 AND is_complete = FALSE`, req.PickID, req.PlayerID)
	if err != nil {
		return fmt.Errorf("failed to update pick: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPickAlreadyComplete
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO league_outbox (id, league_id, event_type, payload)
		VALUES ($1, $2, $3, $4)`,
		uuid.New(), req.LeagueID, outbox.EventTypePickMade, req.OutboxPayload); err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RecordLifecycleEvent appends a draft lifecycle event to the league outbox.
func (r *Repository) RecordLifecycleEvent(ctx context.Context, leagueID uuid.UUID, eventType string, payload []byte) error {
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO league_outbox (id, league_id, event_type, payload)
		VALUES ($1, $2, $3, $4)`,
		uuid.New(), leagueID, eventType, payload); err != nil {
		return fmt.Errorf("failed to insert lifecycle event: %w", err)
	}
	return nil
}

// CountRemainingPicks returns the number of open slots in the league's draft.
func (r *Repository) CountRemainingPicks(ctx context.Context, leagueID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM draft_picks
		WHERE league_id = $1 AND is_complete = FALSE`, leagueID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count remaining picks: %w", err)
	}
	return count, nil
}

func scanPick(row pgx.Row) (*models.DraftPick, error) {
	var pick models.DraftPick
	err := row.Scan(
		&pick.ID,
		&pick.LeagueID,
		&pick.Round,
		&pick.Pick,
		&pick.OverallPick,
		&pick.TeamID,
		&pick.SelectedPlayerID,
		&pick.IsComplete,
		&pick.PickedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pick, nil
}
