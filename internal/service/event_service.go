package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/arabia-tkd/admin-api/internal/models"
	appErrors "github.com/arabia-tkd/admin-api/pkg/errors"
)

const (
	eventListCacheKey    = "events:list"
	eventCacheKeyPrefix  = "events:id:"
	eventCacheKeyPattern = "events:*"
)

type eventRepository interface {
	List(ctx context.Context) ([]models.Event, error)
	FindByID(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int64) error
}

// CreateEventRequest holds the payload for scheduling a calendar entry.
// Dates and times are free-form strings on purpose; the calendar tolerates
// whatever the front end sends and sorting is lexicographic.
type CreateEventRequest struct {
	Date  string `json:"date" validate:"required"`
	Time  string `json:"time"`
	Title string `json:"title"`
	Type  string `json:"type" validate:"omitempty,oneof=general exam"`
	Level string `json:"level"`
	Place string `json:"place"`
	Notes string `json:"notes"`
}

// EventService handles calendar use-cases with an optional read-through cache.
type EventService struct {
	repo      eventRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs the event service.
func NewEventService(repo eventRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *EventService {
	if cache == nil {
		cache = NewCacheService(nil, false, 0, logger, nil)
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns all events ordered by date then time.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	var cached []models.Event
	if s.cache.Get(ctx, eventListCacheKey, &cached) {
		return cached, nil
	}

	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	if events == nil {
		events = []models.Event{}
	}
	s.cache.Set(ctx, eventListCacheKey, events)
	return events, nil
}

// Get returns one event.
func (s *EventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	key := fmt.Sprintf("%s%d", eventCacheKeyPrefix, id)
	var cached models.Event
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	s.cache.Set(ctx, key, event)
	return event, nil
}

// Create schedules a new event. The type defaults to general.
func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	eventType := req.Type
	if eventType == "" {
		eventType = models.EventTypeGeneral
	}
	event := &models.Event{
		Date:  req.Date,
		Time:  req.Time,
		Title: req.Title,
		Type:  eventType,
		Level: req.Level,
		Place: req.Place,
		Notes: req.Notes,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}
	s.cache.Invalidate(ctx, eventCacheKeyPattern)
	return event, nil
}

// Delete removes an event. Inscriptions hanging off it go with it.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete event")
	}
	s.cache.Invalidate(ctx, eventCacheKeyPattern)
	return nil
}
