package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultRecentLimit is used when a recent-students request carries no limit
const DefaultRecentLimit = 5

var studentCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages match the request payload
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("student_code", func(fl validator.FieldLevel) bool {
		return studentCodePattern.MatchString(fl.Field().String())
	})

	return v
}

// AddStudentRequest holds the input of the add operation
type AddStudentRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	StudentID  string `json:"student_id" validate:"required,min=3,max=50,student_code"`
	Department string `json:"department" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
}

// Normalize sanitizes and validates the request and returns the student to insert
func (r AddStudentRequest) Normalize() (*Student, error) {
	r.Name = Sanitize(r.Name)
	r.StudentID = Sanitize(r.StudentID)
	r.Department = Sanitize(r.Department)
	r.Email = Sanitize(r.Email)

	if err := validateStruct(r); err != nil {
		return nil, err
	}

	return &Student{
		StudentID:  strings.ToUpper(r.StudentID),
		Name:       TitleCase(r.Name),
		Department: TitleCase(r.Department),
		Email:      r.Email,
		IsActive:   true,
	}, nil
}

// StudentLookupRequest holds the input of the get and delete operations
type StudentLookupRequest struct {
	StudentID string `json:"student_id" validate:"required,min=3,max=50"`
}

// Normalize returns the upper-cased external identifier
func (r StudentLookupRequest) Normalize() (string, error) {
	r.StudentID = Sanitize(r.StudentID)
	if err := validateStruct(r); err != nil {
		return "", err
	}
	return strings.ToUpper(r.StudentID), nil
}

// UpdateStudentRequest holds the input of the update operation
type UpdateStudentRequest struct {
	StudentID string `json:"student_id" validate:"required,min=3,max=50"`
	Field     string `json:"field" validate:"required,oneof=name department email is_active"`
	NewValue  string `json:"new_value"`
}

// Normalize validates the request and resolves it to a typed field update
func (r UpdateStudentRequest) Normalize() (string, FieldUpdate, error) {
	r.StudentID = Sanitize(r.StudentID)
	r.Field = strings.TrimSpace(r.Field)
	r.NewValue = Sanitize(r.NewValue)

	if err := validateStruct(r); err != nil {
		return "", nil, err
	}

	var update FieldUpdate
	switch r.Field {
	case "name":
		if utf8.RuneCountInString(r.NewValue) < 2 {
			return "", nil, newValueError("Name must be at least 2 characters")
		}
		update = NameUpdate{Value: TitleCase(r.NewValue)}
	case "department":
		if utf8.RuneCountInString(r.NewValue) < 2 {
			return "", nil, newValueError("Department must be at least 2 characters")
		}
		update = DepartmentUpdate{Value: TitleCase(r.NewValue)}
	case "email":
		if !strings.Contains(r.NewValue, "@") {
			return "", nil, newValueError("Invalid email format")
		}
		update = EmailUpdate{Value: r.NewValue}
	case "is_active":
		update = ActiveUpdate{Value: ParseActive(r.NewValue)}
	}

	return strings.ToUpper(r.StudentID), update, nil
}

// RecentStudentsRequest holds the input of the recent-students operation
type RecentStudentsRequest struct {
	Limit int `json:"limit" validate:"min=1,max=100"`
}

// Validate checks the limit bounds
func (r RecentStudentsRequest) Validate() error {
	return validateStruct(r)
}

// ParseActive reports whether value spells an active flag
func ParseActive(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "active":
		return true
	}
	return false
}

// TitleCase upper-cases the first letter of each word and lower-cases the rest
func TitleCase(value string) string {
	return cases.Title(language.Und).String(value)
}

func newValueError(message string) ValidationErrors {
	return ValidationErrors{{Field: "new_value", Message: message}}
}

// validateStruct runs the tag rules and converts failures into ValidationErrors
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	result := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		result = append(result, ValidationError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return result
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	isNumber := fe.Kind() == reflect.Int

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if isNumber {
			return fmt.Sprintf("%s must be at least %s", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		if isNumber {
			return fmt.Sprintf("%s must be at most %s", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "student_code":
		return "Invalid student ID format"
	case "oneof":
		return "Invalid field. Valid fields: name, department, email, is_active"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
