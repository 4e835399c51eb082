package agent

import (
	"context"
	"maps"
	"strconv"
	"strings"

	"github.com/blogem/campus-admin/models"
	"github.com/blogem/campus-admin/services"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type handler func(ctx context.Context, intent Intent) models.Response

// Router runs the operation a Classifier picks for a query
type Router struct {
	classifier Classifier
	routes     map[string]handler
	specs      []OperationSpec
	logger     *zap.Logger
}

// NewRouter registers every service operation. classifier may be nil, in which
// case only Dispatch works.
func NewRouter(svc *services.Services, classifier Classifier, logger *zap.Logger) *Router {
	r := &Router{
		classifier: classifier,
		routes:     map[string]handler{},
		logger:     logger,
	}

	students := svc.Students
	analytics := svc.Analytics
	faqs := svc.FAQ

	r.register(services.OpAddStudent, "Add a new student record", []string{"name", "student_id", "department", "email"},
		func(ctx context.Context, i Intent) models.Response {
			return students.AddStudent(ctx, models.AddStudentRequest{
				Name:       i.Arg("name"),
				StudentID:  i.Arg("student_id"),
				Department: i.Arg("department"),
				Email:      i.Arg("email"),
			})
		})
	r.register(services.OpGetStudent, "Look up one student by student ID", []string{"student_id"},
		func(ctx context.Context, i Intent) models.Response {
			return students.GetStudent(ctx, i.Arg("student_id"))
		})
	r.register(services.OpUpdateStudent, "Change one field (name, department, email, is_active) of a student", []string{"student_id", "field", "new_value"},
		func(ctx context.Context, i Intent) models.Response {
			return students.UpdateStudent(ctx, models.UpdateStudentRequest{
				StudentID: i.Arg("student_id"),
				Field:     i.Arg("field"),
				NewValue:  i.Arg("new_value"),
			})
		})
	r.register(services.OpDeleteStudent, "Permanently delete a student", []string{"student_id"},
		func(ctx context.Context, i Intent) models.Response {
			return students.DeleteStudent(ctx, i.Arg("student_id"))
		})
	r.register(services.OpListStudents, "List all students", nil,
		func(ctx context.Context, i Intent) models.Response {
			return students.ListStudents(ctx)
		})
	r.register(services.OpStudentActivity, "Show the change history of a student", []string{"student_id"},
		func(ctx context.Context, i Intent) models.Response {
			return students.StudentActivity(ctx, i.Arg("student_id"))
		})
	r.register(services.OpTotalStudents, "Count all students with the active/inactive breakdown", nil,
		func(ctx context.Context, i Intent) models.Response {
			return analytics.TotalStudents(ctx)
		})
	r.register(services.OpStudentsByDepartment, "Count students per department", nil,
		func(ctx context.Context, i Intent) models.Response {
			return analytics.StudentsByDepartment(ctx)
		})
	r.register(services.OpRecentStudents, "List the most recently added students", []string{"limit"},
		func(ctx context.Context, i Intent) models.Response {
			limit := models.DefaultRecentLimit
			if raw := strings.TrimSpace(i.Arg("limit")); raw != "" {
				parsed, err := strconv.Atoi(raw)
				if err != nil {
					return r.reject(models.FailureValidation, "Validation error: limit must be a whole number")
				}
				limit = parsed
			}
			return analytics.RecentStudents(ctx, limit)
		})
	r.register(services.OpActiveStudentsLastWeek, "List students with any record activity in the last 7 days", nil,
		func(ctx context.Context, i Intent) models.Response {
			return analytics.ActiveStudentsLastWeek(ctx)
		})
	r.register(services.OpLibraryName, "Name of the campus library", nil,
		func(ctx context.Context, i Intent) models.Response { return faqs.LibraryName(ctx) })
	r.register(services.OpLibraryHours, "Library opening hours", nil,
		func(ctx context.Context, i Intent) models.Response { return faqs.LibraryHours(ctx) })
	r.register(services.OpCafeteriaName, "Name of the campus cafeteria", nil,
		func(ctx context.Context, i Intent) models.Response { return faqs.CafeteriaName(ctx) })
	r.register(services.OpCafeteriaTimings, "Cafeteria opening hours and meal times", nil,
		func(ctx context.Context, i Intent) models.Response { return faqs.CafeteriaTimings(ctx) })
	r.register(services.OpLunchTiming, "Lunch service timing", nil,
		func(ctx context.Context, i Intent) models.Response { return faqs.LunchTiming(ctx) })

	return r
}

func (r *Router) register(name, description string, args []string, h handler) {
	r.routes[name] = h
	r.specs = append(r.specs, OperationSpec{Name: name, Description: description, Args: args})
}

// Operations lists the registered operations in registration order
func (r *Router) Operations() []OperationSpec {
	return append([]OperationSpec(nil), r.specs...)
}

// Handle classifies query and runs the chosen operation
func (r *Router) Handle(ctx context.Context, query string) models.Response {
	query = models.Sanitize(query)
	if query == "" {
		return r.reject(models.FailureValidation, "Validation error: query is required")
	}

	if r.classifier == nil {
		return r.reject(models.FailureUnavailable, "Query routing is not configured")
	}

	intent, err := r.classifier.Classify(ctx, query, r.Operations())
	if err != nil {
		r.logger.Error("failed to classify query", zap.Error(err))
		return r.reject(models.FailureUnavailable, "Could not interpret the query, please try again")
	}

	r.logger.Info("query classified", zap.String("operation", intent.Operation))
	return r.Dispatch(ctx, intent)
}

// Dispatch runs the operation named by intent and tags the envelope with it
func (r *Router) Dispatch(ctx context.Context, intent Intent) models.Response {
	if intent.Operation == NoOperation {
		return r.reject(models.FailureValidation,
			"I can help with student records, campus statistics and campus facilities only")
	}

	h, ok := r.routes[intent.Operation]
	if !ok {
		return r.reject(models.FailureValidation, "Unsupported operation: "+intent.Operation)
	}

	resp := h(ctx, intent)

	data := make(map[string]any, len(resp.Data)+1)
	maps.Copy(data, resp.Data)
	data["operation"] = intent.Operation
	resp.Data = data
	return resp
}

func (r *Router) reject(kind models.FailureKind, message string) models.Response {
	return models.Response{
		Success:   false,
		Message:   message,
		RequestID: uuid.NewString(),
		Failure:   kind,
	}
}
