package models

import "time"

// ActivityKind identifies what kind of mutation an activity entry records
type ActivityKind string

const (
	ActivityStudentCreated ActivityKind = "student_created"
	ActivityProfileUpdate  ActivityKind = "profile_update"
	ActivityStudentDeleted ActivityKind = "student_deleted"
)

// ActivityLogEntry is an append-only record of one successful mutation.
// StudentID refers to the student by value and outlives a deleted student.
type ActivityLogEntry struct {
	ID           int64        `json:"id"`
	StudentID    string       `json:"student_id"`
	ActivityType ActivityKind `json:"activity_type"`
	Description  string       `json:"description"`
	PerformedBy  string       `json:"performed_by"`
	Timestamp    time.Time    `json:"timestamp"`
}
