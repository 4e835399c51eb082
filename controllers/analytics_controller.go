package controllers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/blogem/campus-admin/models"
	"github.com/blogem/campus-admin/services"
)

// AnalyticsController handles the campus statistics endpoints
type AnalyticsController struct {
	services *services.Services
}

// NewAnalyticsController creates a new analytics controller
func NewAnalyticsController(services *services.Services) *AnalyticsController {
	return &AnalyticsController{services: services}
}

// Total handles GET /api/analytics/total
func (c *AnalyticsController) Total(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, c.services.Analytics.TotalStudents(r.Context()))
}

// Departments handles GET /api/analytics/departments
func (c *AnalyticsController) Departments(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, c.services.Analytics.StudentsByDepartment(r.Context()))
}

// Recent handles GET /api/analytics/recent?limit=N
func (c *AnalyticsController) Recent(w http.ResponseWriter, r *http.Request) {
	limit := models.DefaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeResponse(w, models.Response{
				Message:   "Validation error: limit must be a whole number",
				RequestID: uuid.NewString(),
				Failure:   models.FailureValidation,
			})
			return
		}
		limit = parsed
	}

	writeResponse(w, c.services.Analytics.RecentStudents(r.Context(), limit))
}

// Active handles GET /api/analytics/active
func (c *AnalyticsController) Active(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, c.services.Analytics.ActiveStudentsLastWeek(r.Context()))
}
