package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blogem/campus-admin/authenticator"
	"github.com/blogem/campus-admin/models"
	"github.com/blogem/campus-admin/services"
)

// QueryHandler answers a natural-language query with an envelope
type QueryHandler interface {
	Handle(ctx context.Context, query string) models.Response
}

// Controllers holds all controller instances
type Controllers struct {
	Auth      *AuthController
	Students  *StudentController
	Analytics *AnalyticsController
	FAQ       *FAQController
	Chat      *ChatController
}

// NewControllers creates and initializes all controller instances. auth may be
// nil when login is disabled.
func NewControllers(services *services.Services, queries QueryHandler, auth authenticator.Provider, logger *zap.Logger) *Controllers {
	return &Controllers{
		Auth:      NewAuthController(auth, logger),
		Students:  NewStudentController(services),
		Analytics: NewAnalyticsController(services),
		FAQ:       NewFAQController(services),
		Chat:      NewChatController(queries),
	}
}

// statusFor maps a failure class to its HTTP status
func statusFor(resp models.Response) int {
	if resp.Success {
		return http.StatusOK
	}

	switch resp.Failure {
	case models.FailureValidation:
		return http.StatusBadRequest
	case models.FailureNotFound:
		return http.StatusNotFound
	case models.FailureConflict:
		return http.StatusConflict
	case models.FailureUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes v with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeResponse writes an operation envelope with the status its outcome maps to
func writeResponse(w http.ResponseWriter, resp models.Response) {
	writeJSON(w, statusFor(resp), resp)
}

// writeBadBody reports a request body that is not the expected JSON
func writeBadBody(w http.ResponseWriter) {
	writeResponse(w, models.Response{
		Message:   "Validation error: request body must be a JSON object",
		RequestID: uuid.NewString(),
		Failure:   models.FailureValidation,
	})
}

// decodeJSON reads a JSON body into dst, rejecting unknown fields
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
