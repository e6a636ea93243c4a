package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arabia-tkd/admin-api/internal/models"
)

func TestFeeRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "payment_date", "amount"}).
		AddRow(1, 3, "2024-04-01", 1500.0).
		AddRow(2, 3, "2024-05-01", 1500.0)
	mock.ExpectQuery(`SELECT (.+) FROM fee_payments WHERE student_id = \$1 ORDER BY payment_date ASC, id ASC`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	payments, err := repo.ListByStudent(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "2024-04-01", payments[0].PaymentDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryInsertPopulatesID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	mock.ExpectQuery(`INSERT INTO fee_payments`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	payment := &models.FeePayment{StudentID: 3, PaymentDate: "2024-06-01", Amount: 1500}
	require.NoError(t, repo.Insert(context.Background(), payment))
	assert.Equal(t, int64(7), payment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryDeleteAbsentRowSucceeds(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	mock.ExpectExec(`DELETE FROM fee_payments WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryDeleteAllReportsCount(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	mock.ExpectExec(`DELETE FROM fee_payments`).
		WillReturnResult(sqlmock.NewResult(0, 17))

	deleted, err := repo.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(17), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
