package outbox

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// Repository reads and updates league outbox rows. It runs on database/sql
// because the listener shares the lib/pq connection stack.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// FetchEventByID loads a single outbox row.
func (r *Repository) FetchEventByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, league_id, event_type, payload, created_at, sent_at
		FROM league_outbox
		WHERE id = $1`, id)

	event, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch outbox event: %w", err)
	}
	return event, nil
}

// FetchUnsentEvents loads up to limit rows that have not been published yet,
// oldest first.
func (r *Repository) FetchUnsentEvents(ctx context.Context, limit int) ([]OutboxEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, league_id, event_type, payload, created_at, sent_at
		FROM league_outbox
		WHERE sent_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}
	defer rows.Close()

	var events []OutboxEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outbox event: %w", err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outbox events: %w", err)
	}
	return events, nil
}

// MarkEventSent stamps a row as published.
func (r *Repository) MarkEventSent(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE league_outbox SET sent_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to mark outbox event as sent: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*OutboxEvent, error) {
	var (
		event   OutboxEvent
		payload pqtype.NullRawMessage
		sentAt  sql.NullTime
	)
	if err := row.Scan(&event.ID, &event.LeagueID, &event.EventType, &payload, &event.CreatedAt, &sentAt); err != nil {
		return nil, err
	}
	if payload.Valid {
		event.Payload = payload.RawMessage
	}
	if sentAt.Valid {
		t := sentAt.Time
		event.SentAt = &t
	}
	return &event, nil
}
