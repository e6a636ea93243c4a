package repository

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arabia-tkd/admin-api/internal/models"
)

func TestEventRepositoryList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEventRepository(db)

	rows := sqlmock.NewRows([]string{"id", "date", "time", "title", "type"}).
		AddRow(1, "2024-06-15", "18:00", "Examen de Gup", "exam").
		AddRow(2, "2024-07-01", "", "Clase abierta", "general")
	mock.ExpectQuery(`SELECT (.+) FROM events ORDER BY date ASC, time ASC, id ASC`).
		WillReturnRows(rows)

	events, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].IsExam())
	assert.False(t, events[1].IsExam())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryCreatePopulatesID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(`INSERT INTO events`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	event := &models.Event{Date: "2024-06-15", Type: models.EventTypeExam}
	require.NoError(t, repo.Create(context.Background(), event))
	assert.Equal(t, int64(5), event.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
