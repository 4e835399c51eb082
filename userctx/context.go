package userctx

import "context"

// Context key type
type contextKey string

const userEmailKey contextKey = "user_email"
const UserIDKey contextKey = "user_id"
const actorCaptureKey contextKey = "actor_capture"

// SystemActor is recorded when no authenticated admin is attached to the call
const SystemActor = "system"

// SetUserEmail adds user email to request context
func SetUserEmail(ctx context.Context, email string) context.Context {
	if dst, ok := ctx.Value(actorCaptureKey).(*string); ok {
		*dst = email
	}
	return context.WithValue(ctx, userEmailKey, email)
}

// GetUserEmail retrieves user email from request context
func GetUserEmail(ctx context.Context) string {
	email, ok := ctx.Value(userEmailKey).(string)
	if !ok || email == "" {
		return SystemActor
	}
	return email
}

// SetUserID adds user ID to request context
func SetUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, UserIDKey, id)
}

// GetUserID retrieves user ID from request context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// WithActorCapture makes later SetUserEmail calls on derived contexts also
// write the email into dst. Outer middleware uses it to see who acted.
func WithActorCapture(ctx context.Context, dst *string) context.Context {
	return context.WithValue(ctx, actorCaptureKey, dst)
}
