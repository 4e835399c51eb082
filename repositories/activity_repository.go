package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/blogem/campus-admin/models"
)

// ActivityRepository handles activity log persistence. Entries are never
// updated or deleted.
type ActivityRepository interface {
	Create(ctx context.Context, entry *models.ActivityLogEntry) error
	GetByStudentID(ctx context.Context, studentID string) ([]models.ActivityLogEntry, error)
	DistinctStudentIDsSince(ctx context.Context, since time.Time) ([]string, error)
}

type activityRepository struct {
	q Querier
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(q Querier) ActivityRepository {
	return &activityRepository{q: q}
}

// Create appends an activity log entry
func (r *activityRepository) Create(ctx context.Context, entry *models.ActivityLogEntry) error {
	query := `
		INSERT INTO activity_log (student_id, activity_type, description, performed_by, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.q.ExecContext(ctx, query,
		entry.StudentID,
		string(entry.ActivityType),
		entry.Description,
		entry.PerformedBy,
		entry.Timestamp.In(models.PKT),
	)
	if err != nil {
		return fmt.Errorf("failed to create activity log entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	entry.ID = id
	return nil
}

// GetByStudentID returns the activity of one student, oldest first
func (r *activityRepository) GetByStudentID(ctx context.Context, studentID string) ([]models.ActivityLogEntry, error) {
	query := `
		SELECT id, student_id, activity_type, description, performed_by, timestamp
		FROM activity_log
		WHERE student_id = ?
		ORDER BY id ASC
	`

	rows, err := r.q.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity log: %w", err)
	}
	defer rows.Close()

	entries := []models.ActivityLogEntry{}
	for rows.Next() {
		var entry models.ActivityLogEntry
		var activityType string
		err := rows.Scan(
			&entry.ID,
			&entry.StudentID,
			&activityType,
			&entry.Description,
			&entry.PerformedBy,
			&entry.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity log entry: %w", err)
		}

		entry.ActivityType = models.ActivityKind(activityType)
		entry.Timestamp = entry.Timestamp.In(models.PKT)
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity log: %w", err)
	}

	return entries, nil
}

// DistinctStudentIDsSince returns every student identifier with at least one
// entry at or after since
func (r *activityRepository) DistinctStudentIDsSince(ctx context.Context, since time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT student_id
		FROM activity_log
		WHERE timestamp >= ?
		ORDER BY student_id ASC
	`

	// Timestamps are stored as PKT text, so the bound must be PKT as well
	rows, err := r.q.QueryContext(ctx, query, since.In(models.PKT))
	if err != nil {
		return nil, fmt.Errorf("failed to query recent activity: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan student ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent activity: %w", err)
	}

	return ids, nil
}
