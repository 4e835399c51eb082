package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/blogem/campus-admin/models"
)

// StudentRepository interface defines student database operations
type StudentRepository interface {
	CountAll(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
	GetByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	GetByStudentIDs(ctx context.Context, studentIDs []string) ([]models.Student, error)
	FindConflicting(ctx context.Context, studentID, email string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	UpdateField(ctx context.Context, student *models.Student, update models.FieldUpdate) error
	Delete(ctx context.Context, student *models.Student) error
	GetAll(ctx context.Context) ([]models.Student, error)
	GetRecent(ctx context.Context, limit int) ([]models.Student, error)
	CountByDepartment(ctx context.Context) ([]models.DepartmentCount, error)
}

// studentRepository implements StudentRepository interface
type studentRepository struct {
	q     Querier
	clock models.Clock
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(q Querier, clock models.Clock) StudentRepository {
	return &studentRepository{q: q, clock: clock}
}

const studentColumns = `id, student_id, name, department, email, is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID,
		&student.StudentID,
		&student.Name,
		&student.Department,
		&student.Email,
		&student.IsActive,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	student.CreatedAt = student.CreatedAt.In(models.PKT)
	student.UpdatedAt = student.UpdatedAt.In(models.PKT)
	return &student, nil
}

func (r *studentRepository) queryStudents(ctx context.Context, query string, args ...any) ([]models.Student, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, *student)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}

	return students, nil
}

// CountAll returns the total number of students
func (r *studentRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

// CountActive returns the number of active students
func (r *studentRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM students WHERE is_active = 1`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active students: %w", err)
	}
	return count, nil
}

// GetByStudentID retrieves a student by external identifier
func (r *studentRepository) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE student_id = ?`

	student, err := scanStudent(r.q.QueryRowContext(ctx, query, studentID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("student %s: %w", studentID, models.ErrStudentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	return student, nil
}

// GetByStudentIDs retrieves the students among studentIDs that still exist,
// in insertion order
func (r *studentRepository) GetByStudentIDs(ctx context.Context, studentIDs []string) ([]models.Student, error) {
	if len(studentIDs) == 0 {
		return []models.Student{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(studentIDs)), ",")
	args := make([]any, len(studentIDs))
	for i, id := range studentIDs {
		args[i] = id
	}

	query := `SELECT ` + studentColumns + ` FROM students WHERE student_id IN (` + placeholders + `) ORDER BY id ASC`
	return r.queryStudents(ctx, query, args...)
}

// FindConflicting returns a student sharing the identifier or the email, or
// nil when there is none
func (r *studentRepository) FindConflicting(ctx context.Context, studentID, email string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE student_id = ? OR email = ? LIMIT 1`

	student, err := scanStudent(r.q.QueryRowContext(ctx, query, studentID, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check for conflicting student: %w", err)
	}

	return student, nil
}

// Create inserts a new student and sets its identity and timestamps
func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (student_id, name, department, email, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	now := r.clock().In(models.PKT)
	result, err := r.q.ExecContext(ctx, query,
		student.StudentID,
		student.Name,
		student.Department,
		student.Email,
		student.IsActive,
		now,
		now,
	)
	if err != nil {
		return mapConstraintError(fmt.Errorf("failed to create student: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	student.ID = id
	student.CreatedAt = now
	student.UpdatedAt = now
	return nil
}

// updateColumn maps each update variant to the only column it may touch
func updateColumn(update models.FieldUpdate) (string, any, error) {
	switch u := update.(type) {
	case models.NameUpdate:
		return "name", u.Value, nil
	case models.DepartmentUpdate:
		return "department", u.Value, nil
	case models.EmailUpdate:
		return "email", u.Value, nil
	case models.ActiveUpdate:
		return "is_active", u.Value, nil
	default:
		return "", nil, fmt.Errorf("unsupported field update %T", update)
	}
}

// UpdateField changes one field of the student and refreshes updated_at
func (r *studentRepository) UpdateField(ctx context.Context, student *models.Student, update models.FieldUpdate) error {
	column, value, err := updateColumn(update)
	if err != nil {
		return err
	}

	query := `UPDATE students SET ` + column + ` = ?, updated_at = ? WHERE id = ?`

	now := r.clock().In(models.PKT)
	result, err := r.q.ExecContext(ctx, query, value, now, student.ID)
	if err != nil {
		return mapConstraintError(fmt.Errorf("failed to update student: %w", err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("student %s: %w", student.StudentID, models.ErrStudentNotFound)
	}

	models.Apply(student, update)
	student.UpdatedAt = now
	return nil
}

// Delete permanently removes the student
func (r *studentRepository) Delete(ctx context.Context, student *models.Student) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, student.ID)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("student %s: %w", student.StudentID, models.ErrStudentNotFound)
	}

	return nil
}

// GetAll retrieves all students in insertion order
func (r *studentRepository) GetAll(ctx context.Context) ([]models.Student, error) {
	return r.queryStudents(ctx, `SELECT `+studentColumns+` FROM students ORDER BY id ASC`)
}

// GetRecent retrieves the most recently created students, newest first
func (r *studentRepository) GetRecent(ctx context.Context, limit int) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY created_at DESC, id DESC LIMIT ?`
	return r.queryStudents(ctx, query, limit)
}

// CountByDepartment returns one count per distinct department
func (r *studentRepository) CountByDepartment(ctx context.Context) ([]models.DepartmentCount, error) {
	query := `
		SELECT department, COUNT(id)
		FROM students
		GROUP BY department
		ORDER BY department ASC
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count students by department: %w", err)
	}
	defer rows.Close()

	counts := []models.DepartmentCount{}
	for rows.Next() {
		var dc models.DepartmentCount
		if err := rows.Scan(&dc.Department, &dc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan department count: %w", err)
		}
		counts = append(counts, dc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating department counts: %w", err)
	}

	return counts, nil
}

