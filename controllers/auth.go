package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"gitea.com/go-chi/session"
	"go.uber.org/zap"

	"github.com/blogem/campus-admin/authenticator"
	"github.com/blogem/campus-admin/middleware"
	"github.com/blogem/campus-admin/userctx"
)

// AuthController runs the OpenID Connect login flow
type AuthController struct {
	provider authenticator.Provider
	logger   *zap.Logger
}

// NewAuthController creates an auth controller for provider
func NewAuthController(provider authenticator.Provider, logger *zap.Logger) *AuthController {
	return &AuthController{provider: provider, logger: logger}
}

// Login initiates the authentication process
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	state, err := generateRandomState()
	if err != nil {
		ac.logger.Error("failed to generate login state", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to start login"})
		return
	}

	sess := session.GetSession(r)
	sess.Set("state", state)

	http.Redirect(w, r, ac.provider.GetAuthURL(state), http.StatusTemporaryRedirect)
}

// Callback handles the identity provider's redirect
func (ac *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)

	storedState, _ := sess.Get("state").(string)
	if storedState == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "state not found in session"})
		return
	}

	if r.URL.Query().Get("state") != storedState {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid state parameter"})
		return
	}

	token, err := ac.provider.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		ac.logger.Warn("code exchange failed", zap.Error(err))
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "failed to exchange authorization code"})
		return
	}

	claims, err := ac.provider.GetClaims(r.Context(), token)
	if err != nil {
		ac.logger.Error("id token verification failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to verify ID token"})
		return
	}

	if claims.Subject() == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "ID token has no subject"})
		return
	}

	sess.Set(middleware.SessionUserID, claims.Subject())
	sess.Set(middleware.SessionUserEmail, claims.Email())
	sess.Set(middleware.SessionUserName, claims.DisplayName())
	sess.Delete("state")

	ac.logger.Info("admin logged in", zap.String("user", claims.DisplayName()))

	http.Redirect(w, r, "/me", http.StatusSeeOther)
}

// Logout clears the login from the session
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	sess.Delete(middleware.SessionUserID)
	sess.Delete(middleware.SessionUserEmail)
	sess.Delete(middleware.SessionUserName)

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me reports the logged-in admin. It runs behind RequireAuth.
func (ac *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	name, _ := sess.Get(middleware.SessionUserName).(string)

	writeJSON(w, http.StatusOK, map[string]string{
		"user_id": userctx.GetUserID(r.Context()),
		"actor":   userctx.GetUserEmail(r.Context()),
		"name":    name,
	})
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
