package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterRepositoryListByEvent(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewRosterRepository(db)

	rows := sqlmock.NewRows([]string{"student_id", "full_name", "last_name", "first_name", "belt"}).
		AddRow(2, "Ana Gómez", "Gómez", "Ana", "Azul").
		AddRow(3, "Juan Pérez", "Pérez", "Juan", "Verde")
	mock.ExpectQuery(`SELECT i.student_id, s.full_name, s.last_name, s.first_name, s.belt`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	entries, err := repo.ListByEvent(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].StudentID)
	assert.Equal(t, "Verde", entries[1].Belt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepositoryReplace(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewRosterRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM exam_inscriptions WHERE event_id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO exam_inscriptions`).
		WithArgs(int64(7), int64(1)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO exam_inscriptions`).
		WithArgs(int64(7), int64(2)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Replace(context.Background(), 7, []int64{1, 2}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepositoryReplaceUnknownStudentRollsBack(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewRosterRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM exam_inscriptions WHERE event_id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO exam_inscriptions`).
		WithArgs(int64(7), int64(404)).
		WillReturnError(&pq.Error{Code: "23503"})
	mock.ExpectRollback()

	err := repo.Replace(context.Background(), 7, []int64{404})
	assert.ErrorIs(t, err, ErrForeignKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepositoryReplaceEmptyClears(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewRosterRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM exam_inscriptions WHERE event_id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.Replace(context.Background(), 7, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
