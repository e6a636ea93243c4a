package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/arabia-tkd/admin-api/internal/models"
)

// FeeRepository manages the append-only fee payment ledger. Rows are inserted
// or individually deleted, never updated.
type FeeRepository struct {
	db *sqlx.DB
}

// NewFeeRepository constructs a FeeRepository.
func NewFeeRepository(db *sqlx.DB) *FeeRepository {
	return &FeeRepository{db: db}
}

// ListByStudent returns all payments recorded for one student ordered by
// payment date ascending.
func (r *FeeRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.FeePayment, error) {
	const query = `SELECT id, student_id, payment_date, amount, created_at
        FROM fee_payments WHERE student_id = $1 ORDER BY payment_date ASC, id ASC`
	var payments []models.FeePayment
	if err := r.db.SelectContext(ctx, &payments, query, studentID); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// Insert records one payment and populates its generated ID.
func (r *FeeRepository) Insert(ctx context.Context, payment *models.FeePayment) error {
	payment.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO fee_payments (student_id, payment_date, amount, created_at)
        VALUES (:student_id, :payment_date, :amount, :created_at)
        RETURNING id`
	rows, err := sqlx.NamedQueryContext(ctx, r.db, query, payment)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&payment.ID); err != nil {
			return fmt.Errorf("scan payment id: %w", err)
		}
	}
	return nil
}

// Delete removes one payment. Deleting an absent ID is not an error; the
// operation is idempotent by contract.
func (r *FeeRepository) Delete(ctx context.Context, paymentID int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM fee_payments WHERE id = $1", paymentID); err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

// DeleteAll clears the whole ledger and reports how many rows went away.
// Administrative reset only.
func (r *FeeRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM fee_payments")
	if err != nil {
		return 0, fmt.Errorf("clear payments: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear payments rows: %w", err)
	}
	return deleted, nil
}
