package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/arabia-tkd/admin-api/internal/models"
	"github.com/arabia-tkd/admin-api/internal/repository"
	appErrors "github.com/arabia-tkd/admin-api/pkg/errors"
)

type eventFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Event, error)
}

type rosterRepository interface {
	ListByEvent(ctx context.Context, eventID int64) ([]models.RosterEntry, error)
	Replace(ctx context.Context, eventID int64, studentIDs []int64) error
}

// SetRosterRequest carries the replacement roster. The front end historically
// sends ids as numbers or numeric strings; non-numeric entries are dropped
// silently rather than rejected, so the field stays loosely typed on purpose.
type SetRosterRequest struct {
	StudentIDs []interface{} `json:"student_ids"`
}

// RosterService maintains the set of students inscribed in an exam event.
type RosterService struct {
	events eventFinder
	roster rosterRepository
	logger *zap.Logger
}

// NewRosterService constructs the roster service.
func NewRosterService(events eventFinder, roster rosterRepository, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{events: events, roster: roster, logger: logger}
}

// Get returns the roster of an exam event. An event without inscriptions
// yields an empty list, not an error.
func (s *RosterService) Get(ctx context.Context, eventID int64) ([]models.RosterEntry, error) {
	if err := s.requireExam(ctx, eventID); err != nil {
		return nil, err
	}
	entries, err := s.roster.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	if entries == nil {
		entries = []models.RosterEntry{}
	}
	return entries, nil
}

// Set replaces the full roster atomically: either the whole set swaps or
// nothing changes. An unknown student id violates referential integrity and
// rolls the swap back. The confirmed id set is returned.
func (s *RosterService) Set(ctx context.Context, eventID int64, req SetRosterRequest) ([]int64, error) {
	if err := s.requireExam(ctx, eventID); err != nil {
		return nil, err
	}

	ids := NormalizeStudentIDs(req.StudentIDs)
	if err := s.roster.Replace(ctx, eventID, ids); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, appErrors.Clone(appErrors.ErrIntegrity, "roster references an unknown student")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace roster")
	}
	s.logger.Info("roster replaced", zap.Int64("event_id", eventID), zap.Int("students", len(ids)))
	return ids, nil
}

func (s *RosterService) requireExam(ctx context.Context, eventID int64) error {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	if !event.IsExam() {
		return appErrors.Clone(appErrors.ErrNotFound, "exam not found")
	}
	return nil
}

// NormalizeStudentIDs coerces a loosely typed id list to int64s. Numbers and
// numeric strings pass through; anything else is dropped silently by
// contract. Duplicates are removed preserving first occurrence.
func NormalizeStudentIDs(raw []interface{}) []int64 {
	ids := make([]int64, 0, len(raw))
	seen := make(map[int64]struct{}, len(raw))
	for _, entry := range raw {
		id, ok := coerceID(entry)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func coerceID(entry interface{}) (int64, bool) {
	switch v := entry.(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		id, err := v.Int64()
		return id, err == nil
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		return id, err == nil
	default:
		return 0, false
	}
}
