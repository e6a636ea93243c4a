package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arabia-tkd/admin-api/internal/models"
	"github.com/arabia-tkd/admin-api/internal/repository"
	appErrors "github.com/arabia-tkd/admin-api/pkg/errors"
)

type mockEventFinder struct {
	event *models.Event
	err   error
}

func (m *mockEventFinder) FindByID(_ context.Context, id int64) (*models.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

type mockRosterRepo struct {
	entries     []models.RosterEntry
	replaced    []int64
	replaceErr  error
	listErr     error
	replaceCall int
}

func (m *mockRosterRepo) ListByEvent(_ context.Context, eventID int64) ([]models.RosterEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.entries, nil
}

func (m *mockRosterRepo) Replace(_ context.Context, eventID int64, studentIDs []int64) error {
	m.replaceCall++
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaced = studentIDs
	return nil
}

func examEventModel() *models.Event {
	return &models.Event{ID: 7, Date: "2024-06-15", Type: models.EventTypeExam}
}

func TestNormalizeStudentIDs(t *testing.T) {
	raw := []interface{}{float64(3), "5", "nope", float64(3), "7abc", int64(9), nil}
	assert.Equal(t, []int64{3, 5, 9}, NormalizeStudentIDs(raw))
	assert.Empty(t, NormalizeStudentIDs(nil))
}

func TestRosterGetEmptyIsNotError(t *testing.T) {
	svc := NewRosterService(&mockEventFinder{event: examEventModel()}, &mockRosterRepo{}, nil)
	entries, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestRosterGetNonExamEvent(t *testing.T) {
	general := &models.Event{ID: 7, Type: models.EventTypeGeneral}
	svc := NewRosterService(&mockEventFinder{event: general}, &mockRosterRepo{}, nil)
	_, err := svc.Get(context.Background(), 7)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRosterGetMissingEvent(t *testing.T) {
	svc := NewRosterService(&mockEventFinder{err: sql.ErrNoRows}, &mockRosterRepo{}, nil)
	_, err := svc.Get(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRosterSetReplacesWholeSet(t *testing.T) {
	repo := &mockRosterRepo{}
	svc := NewRosterService(&mockEventFinder{event: examEventModel()}, repo, nil)

	confirmed, err := svc.Set(context.Background(), 7, SetRosterRequest{
		StudentIDs: []interface{}{float64(1), "2", "skip-me", float64(1)},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, confirmed)
	assert.Equal(t, []int64{1, 2}, repo.replaced)
	assert.Equal(t, 1, repo.replaceCall)
}

func TestRosterSetUnknownStudentIsIntegrityError(t *testing.T) {
	repo := &mockRosterRepo{replaceErr: repository.ErrForeignKey}
	svc := NewRosterService(&mockEventFinder{event: examEventModel()}, repo, nil)

	_, err := svc.Set(context.Background(), 7, SetRosterRequest{StudentIDs: []interface{}{float64(404)}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrIntegrity.Code, appErrors.FromError(err).Code)
}

func TestRosterSetEmptyClearsRoster(t *testing.T) {
	repo := &mockRosterRepo{}
	svc := NewRosterService(&mockEventFinder{event: examEventModel()}, repo, nil)

	confirmed, err := svc.Set(context.Background(), 7, SetRosterRequest{})
	require.NoError(t, err)
	assert.Empty(t, confirmed)
	assert.Equal(t, 1, repo.replaceCall)
}
