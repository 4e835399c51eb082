package services

import (
	"context"
	"time"

	"github.com/blogem/campus-admin/models"
	"github.com/blogem/campus-admin/repositories"
	"go.uber.org/zap"
)

// activeWindow is how far back get_active_students_last_7_days looks
const activeWindow = 7 * 24 * time.Hour

// AnalyticsService interface defines the read-only campus statistics
type AnalyticsService interface {
	TotalStudents(ctx context.Context) models.Response
	StudentsByDepartment(ctx context.Context) models.Response
	RecentStudents(ctx context.Context, limit int) models.Response
	ActiveStudentsLastWeek(ctx context.Context) models.Response
}

type analyticsService struct {
	*base
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(b *base) AnalyticsService {
	return &analyticsService{base: b}
}

// TotalStudents returns total, active and inactive counts
func (s *analyticsService) TotalStudents(ctx context.Context) models.Response {
	c := s.begin(OpTotalStudents)
	c.logger.Info("getting total student count")

	var totals models.StudentTotals
	err := s.store.Read(ctx, func(repos *repositories.Repositories) error {
		var err error
		if totals.Total, err = repos.Students.CountAll(ctx); err != nil {
			return err
		}
		totals.Active, err = repos.Students.CountActive(ctx)
		return err
	})
	if err != nil {
		return c.failure(err, "Error getting student count")
	}
	totals.Inactive = totals.Total - totals.Active

	return c.success("Student count retrieved successfully", map[string]any{
		"total_students":    totals.Total,
		"active_students":   totals.Active,
		"inactive_students": totals.Inactive,
	})
}

// StudentsByDepartment returns the student count of every department
func (s *analyticsService) StudentsByDepartment(ctx context.Context) models.Response {
	c := s.begin(OpStudentsByDepartment)
	c.logger.Info("getting student count by department")

	var counts []models.DepartmentCount
	err := s.store.Read(ctx, func(repos *repositories.Repositories) error {
		var err error
		counts, err = repos.Students.CountByDepartment(ctx)
		return err
	})
	if err != nil {
		return c.failure(err, "Error getting department data")
	}

	return c.success("Department counts retrieved successfully", map[string]any{
		"departments": counts,
	})
}

// RecentStudents returns up to limit students, newest first
func (s *analyticsService) RecentStudents(ctx context.Context, limit int) models.Response {
	c := s.begin(OpRecentStudents)

	if err := (models.RecentStudentsRequest{Limit: limit}).Validate(); err != nil {
		return c.failure(err, "Error getting recent students")
	}

	c.logger.Info("getting recent students", zap.Int("limit", limit))

	var students []models.Student
	err := s.store.Read(ctx, func(repos *repositories.Repositories) error {
		var err error
		students, err = repos.Students.GetRecent(ctx, limit)
		return err
	})
	if err != nil {
		return c.failure(err, "Error getting recent students")
	}

	return c.success("Recent students retrieved successfully", map[string]any{
		"recent_students": students,
		"limit":           limit,
	})
}

// ActiveStudentsLastWeek returns the existing students with any activity in
// the last seven days
func (s *analyticsService) ActiveStudentsLastWeek(ctx context.Context) models.Response {
	c := s.begin(OpActiveStudentsLastWeek)

	cutoff := s.clock().In(models.PKT).Add(-activeWindow)
	c.logger.Info("getting active students", zap.Time("since", cutoff))

	var students []models.Student
	err := s.store.Read(ctx, func(repos *repositories.Repositories) error {
		ids, err := repos.Activity.DistinctStudentIDsSince(ctx, cutoff)
		if err != nil {
			return err
		}
		students, err = repos.Students.GetByStudentIDs(ctx, ids)
		return err
	})
	if err != nil {
		return c.failure(err, "Error getting active students")
	}

	return c.success("Active students retrieved successfully", map[string]any{
		"active_students": students,
		"count":           len(students),
		"period":          "last_7_days",
	})
}
