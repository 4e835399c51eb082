package services

import (
	"context"
	"fmt"

	"github.com/blogem/campus-admin/models"
	"github.com/blogem/campus-admin/userctx"
)

// AuditLogger builds the activity entry that accompanies each mutation
type AuditLogger struct {
	clock models.Clock
}

// NewAuditLogger creates an audit logger. A nil clock means models.NowPKT.
func NewAuditLogger(clock models.Clock) *AuditLogger {
	if clock == nil {
		clock = models.NowPKT
	}
	return &AuditLogger{clock: clock}
}

func (a *AuditLogger) entry(ctx context.Context, studentID string, kind models.ActivityKind, description string) *models.ActivityLogEntry {
	return &models.ActivityLogEntry{
		StudentID:    studentID,
		ActivityType: kind,
		Description:  description,
		PerformedBy:  userctx.GetUserEmail(ctx),
		Timestamp:    a.clock().In(models.PKT),
	}
}

// Created records a new student
func (a *AuditLogger) Created(ctx context.Context, s *models.Student) *models.ActivityLogEntry {
	return a.entry(ctx, s.StudentID, models.ActivityStudentCreated,
		fmt.Sprintf("New student %s added to %s", s.Name, s.Department))
}

// ProfileUpdated records a single-field update
func (a *AuditLogger) ProfileUpdated(ctx context.Context, studentID string, update models.FieldUpdate) *models.ActivityLogEntry {
	return a.entry(ctx, studentID, models.ActivityProfileUpdate,
		fmt.Sprintf("Updated %s to %v", update.Field(), update.NewValue()))
}

// Deleted records a hard delete
func (a *AuditLogger) Deleted(ctx context.Context, s *models.Student) *models.ActivityLogEntry {
	return a.entry(ctx, s.StudentID, models.ActivityStudentDeleted,
		fmt.Sprintf("Student %s deleted", s.Name))
}
