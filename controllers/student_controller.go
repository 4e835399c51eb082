package controllers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blogem/campus-admin/models"
	"github.com/blogem/campus-admin/services"
)

// StudentController handles student record requests
type StudentController struct {
	services *services.Services
}

// NewStudentController creates a new student controller
func NewStudentController(services *services.Services) *StudentController {
	return &StudentController{
		services: services,
	}
}

// Create handles POST /api/students
func (c *StudentController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.AddStudentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadBody(w)
		return
	}

	writeResponse(w, c.services.Students.AddStudent(r.Context(), req))
}

// List handles GET /api/students
func (c *StudentController) List(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, c.services.Students.ListStudents(r.Context()))
}

// Get handles GET /api/students/{studentID}
func (c *StudentController) Get(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, c.services.Students.GetStudent(r.Context(), chi.URLParam(r, "studentID")))
}

// updateBody accepts new_value as a string, boolean or number
type updateBody struct {
	Field    string `json:"field"`
	NewValue any    `json:"new_value"`
}

// Update handles PATCH /api/students/{studentID}
func (c *StudentController) Update(w http.ResponseWriter, r *http.Request) {
	var body updateBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeBadBody(w)
		return
	}

	var value string
	switch v := body.NewValue.(type) {
	case nil:
	case string:
		value = v
	default:
		value = fmt.Sprint(v)
	}

	writeResponse(w, c.services.Students.UpdateStudent(r.Context(), models.UpdateStudentRequest{
		StudentID: chi.URLParam(r, "studentID"),
		Field:     body.Field,
		NewValue:  value,
	}))
}

// Delete handles DELETE /api/students/{studentID}
func (c *StudentController) Delete(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, c.services.Students.DeleteStudent(r.Context(), chi.URLParam(r, "studentID")))
}

// Activity handles GET /api/students/{studentID}/activity
func (c *StudentController) Activity(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, c.services.Students.StudentActivity(r.Context(), chi.URLParam(r, "studentID")))
}
