package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/arabia-tkd/admin-api/internal/models"
)

const studentColumns = `id, full_name, last_name, first_name, dni, gender, birthdate, blood, nationality,
        province, country, city, address, zip, school, belt, father_name, mother_name, father_phone,
        mother_phone, parent_email, notes, status, created_at, updated_at`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the provided filters, surname-sorted with
// students lacking a surname last.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	base := "FROM students"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(full_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR dni LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.Belt != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(belt) = $%d", len(args)+1))
		args = append(args, strings.ToLower(filter.Belt))
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 500 {
		size = 100
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s %s ORDER BY (last_name = '') ASC, last_name ASC, first_name ASC LIMIT %d OFFSET %d`,
		studentColumns, base, size, offset)

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE id = $1", studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByIDs fetches the given students keyed by ID. Missing ids are simply
// absent from the result map.
func (r *StudentRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]models.Student, error) {
	if len(ids) == 0 {
		return map[int64]models.Student{}, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf("SELECT %s FROM students WHERE id IN (?)", studentColumns), ids)
	if err != nil {
		return nil, fmt.Errorf("build student lookup: %w", err)
	}
	query = r.db.Rebind(query)

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("lookup students: %w", err)
	}
	result := make(map[int64]models.Student, len(students))
	for _, s := range students {
		result[s.ID] = s
	}
	return result, nil
}

// Create inserts a new student record and populates its generated ID.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	if student.Status == "" {
		student.Status = models.StudentStatusActive
	}
	const query = `INSERT INTO students (full_name, last_name, first_name, dni, gender, birthdate, blood, nationality,
        province, country, city, address, zip, school, belt, father_name, mother_name, father_phone,
        mother_phone, parent_email, notes, status, created_at, updated_at)
        VALUES (:full_name, :last_name, :first_name, :dni, :gender, :birthdate, :blood, :nationality,
        :province, :country, :city, :address, :zip, :school, :belt, :father_name, :mother_name, :father_phone,
        :mother_phone, :parent_email, :notes, :status, :created_at, :updated_at)
        RETURNING id`
	rows, err := sqlx.NamedQueryContext(ctx, r.db, query, student)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&student.ID); err != nil {
			return fmt.Errorf("scan student id: %w", err)
		}
	}
	return nil
}

// Update modifies an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET full_name = :full_name, last_name = :last_name, first_name = :first_name,
        dni = :dni, gender = :gender, birthdate = :birthdate, blood = :blood, nationality = :nationality,
        province = :province, country = :country, city = :city, address = :address, zip = :zip,
        school = :school, belt = :belt, father_name = :father_name, mother_name = :mother_name,
        father_phone = :father_phone, mother_phone = :mother_phone, parent_email = :parent_email,
        notes = :notes, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes the student together with their fee payments and exam
// inscriptions in a single transaction. Returns sql.ErrNoRows when the
// student does not exist; nothing is deleted in that case.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete student: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM fee_payments WHERE student_id = $1", id); err != nil {
		return fmt.Errorf("delete student payments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM exam_inscriptions WHERE student_id = $1", id); err != nil {
		return fmt.Errorf("delete student inscriptions: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete student rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}
