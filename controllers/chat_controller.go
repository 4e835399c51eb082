package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/blogem/campus-admin/models"
)

// ChatController routes free-text questions to an operation
type ChatController struct {
	queries QueryHandler
}

// NewChatController creates a new chat controller
func NewChatController(queries QueryHandler) *ChatController {
	return &ChatController{queries: queries}
}

type chatRequest struct {
	Query string `json:"query"`
}

// Ask handles POST /chat
func (c *ChatController) Ask(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadBody(w)
		return
	}

	if c.queries == nil {
		writeResponse(w, models.Response{
			Message:   "Query routing is not configured",
			RequestID: uuid.NewString(),
			Failure:   models.FailureUnavailable,
		})
		return
	}

	writeResponse(w, c.queries.Handle(r.Context(), req.Query))
}
