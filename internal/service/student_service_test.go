package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arabia-tkd/admin-api/internal/models"
	appErrors "github.com/arabia-tkd/admin-api/pkg/errors"
)

type mockStudentRepo struct {
	students  []models.Student
	total     int
	byID      *models.Student
	findErr   error
	created   *models.Student
	updated   *models.Student
	deletedID int64
	deleteErr error
}

func (m *mockStudentRepo) List(_ context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	return m.students, m.total, nil
}

func (m *mockStudentRepo) FindByID(_ context.Context, id int64) (*models.Student, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.byID, nil
}

func (m *mockStudentRepo) Create(_ context.Context, student *models.Student) error {
	student.ID = 11
	m.created = student
	return nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *models.Student) error {
	m.updated = student
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	return nil
}

func TestCreateStudentParsesBirthdate(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, nil, nil)

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		FullName:  "Juan Pérez",
		Birthdate: "2010-05-20",
	})
	require.NoError(t, err)
	require.NotNil(t, student.Birthdate)
	assert.Equal(t, time.Date(2010, time.May, 20, 0, 0, 0, 0, time.UTC), *student.Birthdate)
	assert.Equal(t, models.StudentStatusActive, student.Status)
	assert.Equal(t, int64(11), student.ID)
}

func TestCreateStudentMalformedBirthdateBecomesAbsence(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, nil, nil)

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		FullName:  "Juan Pérez",
		Birthdate: "20/05/2010",
	})
	require.NoError(t, err)
	assert.Nil(t, student.Birthdate)
}

func TestCreateStudentRequiresFullName(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, nil, nil)
	_, err := svc.Create(context.Background(), CreateStudentRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCreateStudentRejectsUnknownStatus(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, nil, nil)
	_, err := svc.Create(context.Background(), CreateStudentRequest{FullName: "Ana", Status: "paused"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUpdateStudentAppliesOnlySuppliedFields(t *testing.T) {
	birth := time.Date(2010, time.May, 20, 0, 0, 0, 0, time.UTC)
	repo := &mockStudentRepo{byID: &models.Student{
		ID:        3,
		FullName:  "Juan Pérez",
		Belt:      "Verde",
		City:      "Tucumán",
		Birthdate: &birth,
		Status:    models.StudentStatusActive,
	}}
	svc := NewStudentService(repo, nil, nil)

	newBelt := "Azul"
	updated, err := svc.Update(context.Background(), 3, UpdateStudentRequest{Belt: &newBelt})
	require.NoError(t, err)
	assert.Equal(t, "Azul", updated.Belt)
	assert.Equal(t, "Juan Pérez", updated.FullName)
	assert.Equal(t, "Tucumán", updated.City)
	require.NotNil(t, updated.Birthdate)
	assert.Equal(t, birth, *updated.Birthdate)
	require.NotNil(t, repo.updated)
}

func TestUpdateStudentMalformedBirthdateResetsIt(t *testing.T) {
	birth := time.Date(2010, time.May, 20, 0, 0, 0, 0, time.UTC)
	repo := &mockStudentRepo{byID: &models.Student{ID: 3, FullName: "Juan", Birthdate: &birth}}
	svc := NewStudentService(repo, nil, nil)

	bad := "not-a-date"
	updated, err := svc.Update(context.Background(), 3, UpdateStudentRequest{Birthdate: &bad})
	require.NoError(t, err)
	assert.Nil(t, updated.Birthdate)
}

func TestUpdateStudentNotFound(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{findErr: sql.ErrNoRows}, nil, nil)
	name := "Ana"
	_, err := svc.Update(context.Background(), 9, UpdateStudentRequest{FullName: &name})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDeleteStudentNotFound(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{deleteErr: sql.ErrNoRows}, nil, nil)
	err := svc.Delete(context.Background(), 9)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestListStudentsPaginationDefaults(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{ID: 1}}, total: 1}
	svc := NewStudentService(repo, nil, nil)

	students, pagination, err := svc.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 100, pagination.PageSize)
	assert.Equal(t, 1, pagination.TotalCount)
}
