package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arabia-tkd/admin-api/internal/models"
	"github.com/arabia-tkd/admin-api/internal/service"
)

type rosterRepoMock struct {
	entries  []models.RosterEntry
	replaced []int64
}

func (m *rosterRepoMock) ListByEvent(_ context.Context, eventID int64) ([]models.RosterEntry, error) {
	return m.entries, nil
}

func (m *rosterRepoMock) Replace(_ context.Context, eventID int64, studentIDs []int64) error {
	m.replaced = studentIDs
	return nil
}

func TestRosterHandlerGetEmptyList(t *testing.T) {
	finder := &eventFinderMock{event: &models.Event{ID: 7, Type: models.EventTypeExam}}
	svc := service.NewRosterService(finder, &rosterRepoMock{}, nil)
	handler := NewRosterHandler(svc)

	c, w := testContext(t, http.MethodGet, "/exams/7/roster", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	handler.Get(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data []models.RosterEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotNil(t, envelope.Data)
	assert.Empty(t, envelope.Data)
}

func TestRosterHandlerSetDropsNonNumericIDs(t *testing.T) {
	finder := &eventFinderMock{event: &models.Event{ID: 7, Type: models.EventTypeExam}}
	repo := &rosterRepoMock{}
	handler := NewRosterHandler(service.NewRosterService(finder, repo, nil))

	body := []byte(`{"student_ids": [1, "2", "garbage", 1]}`)
	c, w := testContext(t, http.MethodPut, "/exams/7/roster", body)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	handler.Set(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{1, 2}, repo.replaced)
	var envelope struct {
		Data struct {
			StudentIDs []int64 `json:"student_ids"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, []int64{1, 2}, envelope.Data.StudentIDs)
}

func TestRosterHandlerNonExamEvent(t *testing.T) {
	finder := &eventFinderMock{event: &models.Event{ID: 7, Type: models.EventTypeGeneral}}
	handler := NewRosterHandler(service.NewRosterService(finder, &rosterRepoMock{}, nil))

	c, w := testContext(t, http.MethodGet, "/exams/7/roster", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
