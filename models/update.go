package models

// FieldUpdate is a single-field change to a student. The set of variants is
// closed: NameUpdate, DepartmentUpdate, EmailUpdate and ActiveUpdate.
type FieldUpdate interface {
	// Field is the public field name the update targets
	Field() string
	// NewValue is the normalized value, a string or a bool for ActiveUpdate
	NewValue() any
	isFieldUpdate()
}

type NameUpdate struct{ Value string }

type DepartmentUpdate struct{ Value string }

type EmailUpdate struct{ Value string }

type ActiveUpdate struct{ Value bool }

func (u NameUpdate) Field() string       { return "name" }
func (u DepartmentUpdate) Field() string { return "department" }
func (u EmailUpdate) Field() string      { return "email" }
func (u ActiveUpdate) Field() string     { return "is_active" }

func (u NameUpdate) NewValue() any       { return u.Value }
func (u DepartmentUpdate) NewValue() any { return u.Value }
func (u EmailUpdate) NewValue() any      { return u.Value }
func (u ActiveUpdate) NewValue() any     { return u.Value }

func (NameUpdate) isFieldUpdate()       {}
func (DepartmentUpdate) isFieldUpdate() {}
func (EmailUpdate) isFieldUpdate()      {}
func (ActiveUpdate) isFieldUpdate()     {}

// Apply copies the update onto the student
func Apply(s *Student, u FieldUpdate) {
	switch u := u.(type) {
	case NameUpdate:
		s.Name = u.Value
	case DepartmentUpdate:
		s.Department = u.Value
	case EmailUpdate:
		s.Email = u.Value
	case ActiveUpdate:
		s.IsActive = u.Value
	}
}
