package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/arabia-tkd/admin-api/internal/models"
)

// ErrForeignKey marks a write that referenced a missing row. Callers map it to
// the integrity failure of the API contract.
var ErrForeignKey = errors.New("foreign key violation")

// RosterRepository manages exam inscription rows.
type RosterRepository struct {
	db *sqlx.DB
}

// NewRosterRepository constructs a RosterRepository.
func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// ListByEvent returns the roster of an exam event as ordered student
// summaries. An event without inscriptions yields an empty slice.
func (r *RosterRepository) ListByEvent(ctx context.Context, eventID int64) ([]models.RosterEntry, error) {
	const query = `SELECT i.student_id, s.full_name, s.last_name, s.first_name, s.belt
        FROM exam_inscriptions i
        JOIN students s ON s.id = i.student_id
        WHERE i.event_id = $1
        ORDER BY (s.last_name = '') ASC, s.last_name ASC, s.first_name ASC, s.id ASC`
	var entries []models.RosterEntry
	if err := r.db.SelectContext(ctx, &entries, query, eventID); err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return entries, nil
}

// Replace swaps the full roster of an event in one transaction: every existing
// inscription is deleted and the given set inserted. A constraint violation
// (unknown student id) rolls back the whole swap and surfaces ErrForeignKey.
func (r *RosterRepository) Replace(ctx context.Context, eventID int64, studentIDs []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin roster replace: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM exam_inscriptions WHERE event_id = $1", eventID); err != nil {
		return fmt.Errorf("clear roster: %w", err)
	}
	for _, studentID := range studentIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO exam_inscriptions (event_id, student_id, created_at) VALUES ($1, $2, NOW())",
			eventID, studentID); err != nil {
			if isForeignKeyErr(err) {
				return fmt.Errorf("inscribe student %d: %w", studentID, ErrForeignKey)
			}
			return fmt.Errorf("inscribe student %d: %w", studentID, err)
		}
	}
	return tx.Commit()
}

func isForeignKeyErr(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
