package models

import (
	"encoding/json"
	"time"
)

// Student represents a student record
type Student struct {
	ID         int64     `json:"id" db:"id"`
	StudentID  string    `json:"student_id" db:"student_id"`
	Name       string    `json:"name" db:"name"`
	Department string    `json:"department" db:"department"`
	Email      string    `json:"email" db:"email"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// MarshalJSON renders timestamps as RFC3339 in PKT
func (s Student) MarshalJSON() ([]byte, error) {
	type alias Student
	return json.Marshal(struct {
		alias
		CreatedAt string `json:"created_at"`
		UpdatedAt string `json:"updated_at"`
	}{
		alias:     alias(s),
		CreatedAt: FormatDateTime(s.CreatedAt),
		UpdatedAt: FormatDateTime(s.UpdatedAt),
	})
}

// DepartmentCount is one row of the per-department breakdown
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// StudentTotals is the active/inactive breakdown of all students
type StudentTotals struct {
	Total    int `json:"total_students"`
	Active   int `json:"active_students"`
	Inactive int `json:"inactive_students"`
}
