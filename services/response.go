package services

import (
	"errors"

	"github.com/blogem/campus-admin/models"
	"go.uber.org/zap"
)

// base carries what every operation needs: the store, a logger, a clock and a
// request id source
type base struct {
	store        Store
	logger       *zap.Logger
	clock        models.Clock
	newRequestID func() string
}

// call is the per-operation context: its request id and a logger tagged with it
type call struct {
	requestID string
	logger    *zap.Logger
}

func (b *base) begin(operation string) call {
	requestID := b.newRequestID()
	return call{
		requestID: requestID,
		logger:    b.logger.With(zap.String("request_id", requestID), zap.String("operation", operation)),
	}
}

func (c call) success(message string, data map[string]any) models.Response {
	return models.Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: c.requestID,
	}
}

// failure converts err into a failed envelope. Unexpected errors are logged in
// full but only the generic message reaches the caller.
func (c call) failure(err error, generic string) models.Response {
	kind := models.FailureKindOf(err)

	var message string
	switch kind {
	case models.FailureValidation:
		c.logger.Warn("validation failed", zap.Error(err))
		message = "Validation error: " + validationMessage(err)
	case models.FailureNotFound:
		c.logger.Info("student not found", zap.Error(err))
		message = "Student not found"
	case models.FailureConflict:
		c.logger.Info("student conflict", zap.Error(err))
		message = "Student with this ID or email already exists"
	default:
		c.logger.Error("operation failed", zap.Error(err))
		message = generic
	}

	return models.Response{
		Success:   false,
		Message:   message,
		RequestID: c.requestID,
		Failure:   kind,
	}
}

func validationMessage(err error) string {
	var ve models.ValidationErrors
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return err.Error()
}
