package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/arabia-tkd/admin-api/internal/models"
	appErrors "github.com/arabia-tkd/admin-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// CreateStudentRequest holds the intake form. Birthdate is a YYYY-MM-DD
// string; a malformed value is normalised to absence, never rejected.
type CreateStudentRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	LastName    string `json:"last_name"`
	FirstName   string `json:"first_name"`
	DNI         string `json:"dni"`
	Gender      string `json:"gender"`
	Birthdate   string `json:"birthdate"`
	Blood       string `json:"blood"`
	Nationality string `json:"nationality"`
	Province    string `json:"province"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Address     string `json:"address"`
	Zip         string `json:"zip"`
	School      string `json:"school"`
	Belt        string `json:"belt"`
	FatherName  string `json:"father_name"`
	MotherName  string `json:"mother_name"`
	FatherPhone string `json:"father_phone"`
	MotherPhone string `json:"mother_phone"`
	ParentEmail string `json:"parent_email"`
	Notes       string `json:"notes"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdateStudentRequest applies only the fields present in the payload, which
// is why every field is a pointer. A supplied-but-malformed birthdate resets
// the stored date to absence (lenient policy).
type UpdateStudentRequest struct {
	FullName    *string `json:"full_name"`
	LastName    *string `json:"last_name"`
	FirstName   *string `json:"first_name"`
	DNI         *string `json:"dni"`
	Gender      *string `json:"gender"`
	Birthdate   *string `json:"birthdate"`
	Blood       *string `json:"blood"`
	Nationality *string `json:"nationality"`
	Province    *string `json:"province"`
	Country     *string `json:"country"`
	City        *string `json:"city"`
	Address     *string `json:"address"`
	Zip         *string `json:"zip"`
	School      *string `json:"school"`
	Belt        *string `json:"belt"`
	FatherName  *string `json:"father_name"`
	MotherName  *string `json:"mother_name"`
	FatherPhone *string `json:"father_phone"`
	MotherPhone *string `json:"mother_phone"`
	ParentEmail *string `json:"parent_email"`
	Notes       *string `json:"notes"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns students and pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 100
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return students, pagination, nil
}

// Get returns one student.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	status := req.Status
	if status == "" {
		status = models.StudentStatusActive
	}
	student := &models.Student{
		FullName:    req.FullName,
		LastName:    req.LastName,
		FirstName:   req.FirstName,
		DNI:         req.DNI,
		Gender:      req.Gender,
		Birthdate:   parseDateLenient(req.Birthdate),
		Blood:       req.Blood,
		Nationality: req.Nationality,
		Province:    req.Province,
		Country:     req.Country,
		City:        req.City,
		Address:     req.Address,
		Zip:         req.Zip,
		School:      req.School,
		Belt:        req.Belt,
		FatherName:  req.FatherName,
		MotherName:  req.MotherName,
		FatherPhone: req.FatherPhone,
		MotherPhone: req.MotherPhone,
		ParentEmail: req.ParentEmail,
		Notes:       req.Notes,
		Status:      status,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// Update applies the supplied fields to an existing student.
func (s *StudentService) Update(ctx context.Context, id int64, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	applyString(&student.FullName, req.FullName)
	applyString(&student.LastName, req.LastName)
	applyString(&student.FirstName, req.FirstName)
	applyString(&student.DNI, req.DNI)
	applyString(&student.Gender, req.Gender)
	applyString(&student.Blood, req.Blood)
	applyString(&student.Nationality, req.Nationality)
	applyString(&student.Province, req.Province)
	applyString(&student.Country, req.Country)
	applyString(&student.City, req.City)
	applyString(&student.Address, req.Address)
	applyString(&student.Zip, req.Zip)
	applyString(&student.School, req.School)
	applyString(&student.Belt, req.Belt)
	applyString(&student.FatherName, req.FatherName)
	applyString(&student.MotherName, req.MotherName)
	applyString(&student.FatherPhone, req.FatherPhone)
	applyString(&student.MotherPhone, req.MotherPhone)
	applyString(&student.ParentEmail, req.ParentEmail)
	applyString(&student.Notes, req.Notes)
	applyString(&student.Status, req.Status)
	if req.Birthdate != nil {
		student.Birthdate = parseDateLenient(*req.Birthdate)
	}

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Delete removes the student and everything owned by them (fee payments,
// exam inscriptions) in one transaction.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	return nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// parseDateLenient turns a YYYY-MM-DD string into a date, normalising
// anything unparseable (including empty input) to absence.
func parseDateLenient(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil
	}
	return &d
}
