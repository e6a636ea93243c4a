package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/arabia-tkd/admin-api/internal/models"
)

const eventColumns = `id, date, time, title, type, level, place, notes, created_at`

// EventRepository manages persistence for calendar events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns all events ordered chronologically by their string dates.
// The canonical YYYY-MM-DD encoding sorts lexicographically in date order.
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events ORDER BY date ASC, time ASC, id ASC`, eventColumns)
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// FindByID fetches an event by ID.
func (r *EventRepository) FindByID(ctx context.Context, id int64) (*models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE id = $1", eventColumns)
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts a new event and populates its generated ID.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	event.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO events (date, time, title, type, level, place, notes, created_at)
        VALUES (:date, :time, :title, :type, :level, :place, :notes, :created_at)
        RETURNING id`
	rows, err := sqlx.NamedQueryContext(ctx, r.db, query, event)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&event.ID); err != nil {
			return fmt.Errorf("scan event id: %w", err)
		}
	}
	return nil
}

// Delete removes an event. Roster rows go with it via the schema's cascade.
// Returns sql.ErrNoRows when the event does not exist.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
