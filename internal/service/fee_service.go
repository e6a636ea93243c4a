package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/arabia-tkd/admin-api/internal/models"
	appErrors "github.com/arabia-tkd/admin-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type feeRepository interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.FeePayment, error)
	Insert(ctx context.Context, payment *models.FeePayment) error
	Delete(ctx context.Context, paymentID int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

type studentFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
}

// RegisterPaymentRequest holds the payload for recording one fee payment.
// PaymentDate defaults to the current day when omitted; it is stored as given
// otherwise (lenient date policy).
type RegisterPaymentRequest struct {
	PaymentDate string  `json:"payment_date"`
	Amount      float64 `json:"amount" validate:"gte=0"`
}

// ComputeFeeStatus derives a student's account state from their full payment
// history. It is a pure function of its inputs: the history may arrive in any
// order (it is sorted internally), today is passed in, and nothing is cached.
// An empty history, or a chronologically last payment whose date string does
// not parse, yields the no-record status.
func ComputeFeeStatus(studentID int64, payments []models.FeePayment, today time.Time, overdueAfterDays int) models.FeeStatus {
	result := models.FeeStatus{
		StudentID: studentID,
		Status:    models.FeeStatusNoRecord,
		History:   []models.FeePaymentEntry{},
	}
	if len(payments) == 0 {
		return result
	}

	ordered := make([]models.FeePayment, len(payments))
	copy(ordered, payments)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].PaymentDate != ordered[j].PaymentDate {
			return ordered[i].PaymentDate < ordered[j].PaymentDate
		}
		return ordered[i].ID < ordered[j].ID
	})

	for _, p := range ordered {
		result.History = append(result.History, models.FeePaymentEntry{
			ID:     p.ID,
			Date:   p.PaymentDate,
			Amount: p.Amount,
		})
	}

	last := ordered[len(ordered)-1].PaymentDate
	result.LastPayment = last

	lastDate, err := time.Parse(dateLayout, last)
	if err != nil {
		return result
	}

	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	deltaDays := int(todayDate.Sub(lastDate).Hours() / 24)
	if deltaDays <= overdueAfterDays {
		result.Status = models.FeeStatusCurrent
	} else {
		result.Status = models.FeeStatusOverdue
	}
	return result
}

// FeeService handles fee payment use-cases.
type FeeService struct {
	fees             feeRepository
	students         studentFinder
	validator        *validator.Validate
	logger           *zap.Logger
	now              func() time.Time
	overdueAfterDays int
}

// NewFeeService constructs the fee service. The clock is injectable so status
// derivation is testable.
func NewFeeService(fees feeRepository, students studentFinder, validate *validator.Validate, logger *zap.Logger, now func() time.Time, overdueAfterDays int) *FeeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	if overdueAfterDays <= 0 {
		overdueAfterDays = 30
	}
	return &FeeService{
		fees:             fees,
		students:         students,
		validator:        validate,
		logger:           logger,
		now:              now,
		overdueAfterDays: overdueAfterDays,
	}
}

// Status recomputes the account state of one student from the stored history.
func (s *FeeService) Status(ctx context.Context, studentID int64) (*models.FeeStatus, error) {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	payments, err := s.fees.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load payments")
	}
	status := ComputeFeeStatus(studentID, payments, s.now(), s.overdueAfterDays)
	return &status, nil
}

// RegisterPayment appends one payment and returns the freshly recomputed
// status; there is no incremental update path by design.
func (s *FeeService) RegisterPayment(ctx context.Context, studentID int64, req RegisterPaymentRequest) (*models.FeeStatus, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	paymentDate := req.PaymentDate
	if paymentDate == "" {
		paymentDate = s.now().Format(dateLayout)
	}

	payment := &models.FeePayment{
		StudentID:   studentID,
		PaymentDate: paymentDate,
		Amount:      req.Amount,
	}
	if err := s.fees.Insert(ctx, payment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record payment")
	}

	return s.Status(ctx, studentID)
}

// DeletePayment removes one payment. Unknown ids succeed silently; the
// operation is idempotent.
func (s *FeeService) DeletePayment(ctx context.Context, paymentID int64) error {
	if err := s.fees.Delete(ctx, paymentID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete payment")
	}
	return nil
}

// ClearAll wipes the whole payment ledger. Administrative reset only.
func (s *FeeService) ClearAll(ctx context.Context) (int64, error) {
	deleted, err := s.fees.DeleteAll(ctx)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear payments")
	}
	s.logger.Info("fee ledger cleared", zap.Int64("deleted", deleted))
	return deleted, nil
}
