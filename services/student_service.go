package services

import (
	"context"
	"fmt"

	"github.com/blogem/campus-admin/models"
	"github.com/blogem/campus-admin/repositories"
	"go.uber.org/zap"
)

// StudentService interface defines the student record operations. Every
// method returns an envelope; errors never escape.
type StudentService interface {
	AddStudent(ctx context.Context, req models.AddStudentRequest) models.Response
	GetStudent(ctx context.Context, studentID string) models.Response
	UpdateStudent(ctx context.Context, req models.UpdateStudentRequest) models.Response
	DeleteStudent(ctx context.Context, studentID string) models.Response
	ListStudents(ctx context.Context) models.Response
	StudentActivity(ctx context.Context, studentID string) models.Response
}

// studentService implements StudentService interface
type studentService struct {
	*base
	audit *AuditLogger
}

// NewStudentService creates a new student service
func NewStudentService(b *base) StudentService {
	return &studentService{
		base:  b,
		audit: NewAuditLogger(b.clock),
	}
}

// AddStudent validates, checks uniqueness, inserts and logs the creation
func (s *studentService) AddStudent(ctx context.Context, req models.AddStudentRequest) models.Response {
	c := s.begin(OpAddStudent)

	student, err := req.Normalize()
	if err != nil {
		return c.failure(err, "Error adding student")
	}

	c.logger.Info("adding student", zap.String("student_id", student.StudentID))

	err = s.store.Write(ctx, func(repos *repositories.Repositories) error {
		existing, err := repos.Students.FindConflicting(ctx, student.StudentID, student.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("student %s: %w", student.StudentID, models.ErrStudentConflict)
		}

		if err := repos.Students.Create(ctx, student); err != nil {
			return err
		}
		return repos.Activity.Create(ctx, s.audit.Created(ctx, student))
	})
	if err != nil {
		return c.failure(err, "Error adding student")
	}

	return c.success(
		fmt.Sprintf("Student %s added successfully", student.Name),
		map[string]any{"student": student},
	)
}

// GetStudent retrieves a student by external identifier
func (s *studentService) GetStudent(ctx context.Context, studentID string) models.Response {
	c := s.begin(OpGetStudent)

	id, err := models.StudentLookupRequest{StudentID: studentID}.Normalize()
	if err != nil {
		return c.failure(err, "Error retrieving student")
	}

	c.logger.Info("retrieving student", zap.String("student_id", id))

	var student *models.Student
	err = s.store.Read(ctx, func(repos *repositories.Repositories) error {
		student, err = repos.Students.GetByStudentID(ctx, id)
		return err
	})
	if err != nil {
		return c.failure(err, "Error retrieving student")
	}

	return c.success("Student retrieved successfully", map[string]any{"student": student})
}

// UpdateStudent changes one field and logs the profile update
func (s *studentService) UpdateStudent(ctx context.Context, req models.UpdateStudentRequest) models.Response {
	c := s.begin(OpUpdateStudent)

	id, update, err := req.Normalize()
	if err != nil {
		return c.failure(err, "Error updating student")
	}

	c.logger.Info("updating student",
		zap.String("student_id", id),
		zap.String("field", update.Field()))

	err = s.store.Write(ctx, func(repos *repositories.Repositories) error {
		student, err := repos.Students.GetByStudentID(ctx, id)
		if err != nil {
			return err
		}

		if err := repos.Students.UpdateField(ctx, student, update); err != nil {
			return err
		}
		return repos.Activity.Create(ctx, s.audit.ProfileUpdated(ctx, id, update))
	})
	if err != nil {
		return c.failure(err, "Error updating student")
	}

	return c.success(
		fmt.Sprintf("Student %s updated successfully", id),
		map[string]any{
			"updated_field": update.Field(),
			"new_value":     update.NewValue(),
		},
	)
}

// DeleteStudent permanently removes a student and logs the deletion
func (s *studentService) DeleteStudent(ctx context.Context, studentID string) models.Response {
	c := s.begin(OpDeleteStudent)

	id, err := models.StudentLookupRequest{StudentID: studentID}.Normalize()
	if err != nil {
		return c.failure(err, "Error deleting student")
	}

	c.logger.Info("deleting student", zap.String("student_id", id))

	var name string
	err = s.store.Write(ctx, func(repos *repositories.Repositories) error {
		student, err := repos.Students.GetByStudentID(ctx, id)
		if err != nil {
			return err
		}
		name = student.Name

		if err := repos.Students.Delete(ctx, student); err != nil {
			return err
		}
		return repos.Activity.Create(ctx, s.audit.Deleted(ctx, student))
	})
	if err != nil {
		return c.failure(err, "Error deleting student")
	}

	return c.success(fmt.Sprintf("Student %s deleted successfully", name), nil)
}

// ListStudents returns every student in insertion order
func (s *studentService) ListStudents(ctx context.Context) models.Response {
	c := s.begin(OpListStudents)
	c.logger.Info("listing all students")

	var students []models.Student
	err := s.store.Read(ctx, func(repos *repositories.Repositories) error {
		var err error
		students, err = repos.Students.GetAll(ctx)
		return err
	})
	if err != nil {
		return c.failure(err, "Error retrieving students")
	}

	return c.success("List of all students retrieved successfully", map[string]any{
		"students":    students,
		"total_count": len(students),
	})
}

// StudentActivity returns the audit trail recorded for an identifier. It
// works for deleted students too.
func (s *studentService) StudentActivity(ctx context.Context, studentID string) models.Response {
	c := s.begin(OpStudentActivity)

	id, err := models.StudentLookupRequest{StudentID: studentID}.Normalize()
	if err != nil {
		return c.failure(err, "Error retrieving student activity")
	}

	var entries []models.ActivityLogEntry
	err = s.store.Read(ctx, func(repos *repositories.Repositories) error {
		entries, err = repos.Activity.GetByStudentID(ctx, id)
		return err
	})
	if err != nil {
		return c.failure(err, "Error retrieving student activity")
	}

	return c.success("Student activity retrieved successfully", map[string]any{
		"student_id": id,
		"activities": entries,
		"count":      len(entries),
	})
}
