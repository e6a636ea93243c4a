package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arabia-tkd/admin-api/internal/models"
	appErrors "github.com/arabia-tkd/admin-api/pkg/errors"
)

type mockEventRepo struct {
	events    []models.Event
	byID      *models.Event
	findErr   error
	created   *models.Event
	deletedID int64
	deleteErr error
	listCalls int
}

func (m *mockEventRepo) List(_ context.Context) ([]models.Event, error) {
	m.listCalls++
	return m.events, nil
}

func (m *mockEventRepo) FindByID(_ context.Context, id int64) (*models.Event, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.byID, nil
}

func (m *mockEventRepo) Create(_ context.Context, event *models.Event) error {
	event.ID = 5
	m.created = event
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	return nil
}

type stubCacheRepo struct {
	store map[string][]byte
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range s.store {
		if strings.HasPrefix(key, prefix) {
			delete(s.store, key)
		}
	}
	return nil
}

func cachedEventService(repo *mockEventRepo) (*EventService, *stubCacheRepo) {
	stub := &stubCacheRepo{store: map[string][]byte{}}
	cache := NewCacheService(stub, true, time.Minute, nil, nil)
	return NewEventService(repo, cache, nil, nil), stub
}

func TestEventListReadThroughCache(t *testing.T) {
	repo := &mockEventRepo{events: []models.Event{{ID: 1, Date: "2024-06-15", Type: models.EventTypeExam}}}
	svc, _ := cachedEventService(repo)

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listCalls)
}

func TestEventCreateInvalidatesCache(t *testing.T) {
	repo := &mockEventRepo{}
	svc, stub := cachedEventService(repo)

	_, err := svc.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, stub.store)

	created, err := svc.Create(context.Background(), CreateEventRequest{Date: "2024-07-01", Title: "Clase abierta"})
	require.NoError(t, err)
	assert.Equal(t, models.EventTypeGeneral, created.Type)
	assert.Empty(t, stub.store)
}

func TestEventDeleteInvalidatesCache(t *testing.T) {
	repo := &mockEventRepo{}
	svc, stub := cachedEventService(repo)

	_, err := svc.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, stub.store)

	require.NoError(t, svc.Delete(context.Background(), 5))
	assert.Equal(t, int64(5), repo.deletedID)
	assert.Empty(t, stub.store)
}

func TestEventCreateRequiresDate(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, nil, nil, nil)
	_, err := svc.Create(context.Background(), CreateEventRequest{Title: "Sin fecha"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEventCreateRejectsUnknownType(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, nil, nil, nil)
	_, err := svc.Create(context.Background(), CreateEventRequest{Date: "2024-07-01", Type: "torneo"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEventGetNotFound(t *testing.T) {
	svc := NewEventService(&mockEventRepo{findErr: sql.ErrNoRows}, nil, nil, nil)
	_, err := svc.Get(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEventListEmptyIsNotNil(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, nil, nil, nil)
	events, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}
