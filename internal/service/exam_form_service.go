package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arabia-tkd/admin-api/internal/models"
	"github.com/arabia-tkd/admin-api/internal/pdf"
	appErrors "github.com/arabia-tkd/admin-api/pkg/errors"
)

type formRenderer interface {
	Inscription(event models.Event, student *models.Student) ([]byte, error)
	Evaluation(event models.Event, student *models.Student) ([]byte, error)
	Rinde(event models.Event, students []models.Student) ([]byte, error)
}

type studentBatchFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	FindByIDs(ctx context.Context, ids []int64) (map[int64]models.Student, error)
}

// RenderedForm is a finished PDF ready to be served as an attachment.
type RenderedForm struct {
	Filename string
	Content  []byte
}

// InscriptionFormRequest optionally personalises the form for one student.
type InscriptionFormRequest struct {
	StudentID *int64 `json:"student_id"`
}

// EvaluationFormRequest optionally personalises the form for one student.
type EvaluationFormRequest struct {
	StudentID *int64 `json:"student_id"`
}

// RindeFormRequest names the students to render, one page each. Ids may be
// numbers or numeric strings, same as the roster payload.
type RindeFormRequest struct {
	StudentIDs []interface{} `json:"student_ids"`
}

// ExamFormService orchestrates PDF form generation for exam events.
type ExamFormService struct {
	events   eventFinder
	students studentBatchFinder
	renderer formRenderer
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewExamFormService constructs the exam form service.
func NewExamFormService(events eventFinder, students studentBatchFinder, renderer formRenderer, metrics *MetricsService, logger *zap.Logger) *ExamFormService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamFormService{events: events, students: students, renderer: renderer, metrics: metrics, logger: logger}
}

// Inscription renders the single-page inscription announcement. When a
// student id is supplied it must resolve; an omitted id renders the generic
// form.
func (s *ExamFormService) Inscription(ctx context.Context, eventID int64, req InscriptionFormRequest) (*RenderedForm, error) {
	event, err := s.loadExam(ctx, eventID)
	if err != nil {
		return nil, err
	}
	student, err := s.resolveOptionalStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	return s.render("inscription", fmt.Sprintf("inscripcion_examen_%d.pdf", eventID), func() ([]byte, error) {
		return s.renderer.Inscription(*event, student)
	})
}

// Evaluation renders the graduation-request form.
func (s *ExamFormService) Evaluation(ctx context.Context, eventID int64, req EvaluationFormRequest) (*RenderedForm, error) {
	event, err := s.loadExam(ctx, eventID)
	if err != nil {
		return nil, err
	}
	student, err := s.resolveOptionalStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	return s.render("evaluation", fmt.Sprintf("evaluacion_examen_%d.pdf", eventID), func() ([]byte, error) {
		return s.renderer.Evaluation(*event, student)
	})
}

// Rinde composites one page per requested student onto the template. Every
// supplied id must resolve or the whole request fails.
func (s *ExamFormService) Rinde(ctx context.Context, eventID int64, req RindeFormRequest) (*RenderedForm, error) {
	event, err := s.loadExam(ctx, eventID)
	if err != nil {
		return nil, err
	}

	ids := NormalizeStudentIDs(req.StudentIDs)
	if len(ids) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student_ids must name at least one student")
	}

	byID, err := s.students.FindByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	students := make([]models.Student, 0, len(ids))
	for _, id := range ids {
		student, ok := byID[id]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %d not found", id))
		}
		students = append(students, student)
	}

	return s.render("rinde", fmt.Sprintf("rinde_examen_%d.pdf", eventID), func() ([]byte, error) {
		return s.renderer.Rinde(*event, students)
	})
}

func (s *ExamFormService) render(variant, filename string, renderFn func() ([]byte, error)) (*RenderedForm, error) {
	start := time.Now()
	content, err := renderFn()
	if err != nil {
		if errors.Is(err, pdf.ErrTemplateMissing) {
			return nil, appErrors.Clone(appErrors.ErrConfiguration, "rinde template not available")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render form")
	}
	s.metrics.ObservePDFRender(variant, len(content), time.Since(start))
	s.logger.Info("form rendered",
		zap.String("variant", variant),
		zap.String("filename", filename),
		zap.Int("bytes", len(content)),
	)
	return &RenderedForm{Filename: filename, Content: content}, nil
}

func (s *ExamFormService) loadExam(ctx context.Context, eventID int64) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	if !event.IsExam() {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
	}
	return event, nil
}

func (s *ExamFormService) resolveOptionalStudent(ctx context.Context, id *int64) (*models.Student, error) {
	if id == nil {
		return nil, nil
	}
	student, err := s.students.FindByID(ctx, *id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}
