package middleware

import (
	"encoding/json"
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/blogem/campus-admin/models"
	"github.com/blogem/campus-admin/userctx"
)

// Session keys written by the login callback
const (
	SessionUserID    = "user_id"
	SessionUserEmail = "user_email"
	SessionUserName  = "user_nickname"
)

// RequireAuth rejects requests without a logged-in admin and puts the admin's
// identity on the request context for the activity log
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)
		userID, _ := sess.Get(SessionUserID).(string)

		if userID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.Response{
				Success: false,
				Message: "Authentication required",
			})
			return
		}

		ctx := userctx.SetUserID(r.Context(), userID)
		actor, _ := sess.Get(SessionUserEmail).(string)
		if actor == "" {
			actor = userID
		}
		ctx = userctx.SetUserEmail(ctx, actor)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
