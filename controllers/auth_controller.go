package controllers

import (
	"net/http"

	"cozyconnect_server/apperror"
	"cozyconnect_server/services"
	"cozyconnect_server/utils"

	"github.com/google/uuid"
)

const stateCookieName = "oauth_state"

// AuthController handles the Google OAuth dance and session issuance.
type AuthController struct {
	AuthService *services.AuthService
}

// NewAuthController initializes the controller
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// HandleLogin - GET /api/auth/login returns the consent page URL and
// sets the state cookie checked on callback.
func (c *AuthController) HandleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     c.AuthService.LoginURL(state),
	})
}

// HandleCallback - GET /api/auth/callback exchanges the authorization
// code for a verified email and issues the session token.
func (c *AuthController) HandleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		utils.WriteError(w, apperror.NewInvalidInput("missing code or state", nil))
		return
	}

	cookie, err := r.Cookie(stateCookieName)
	if err != nil || cookie.Value != state {
		utils.WriteError(w, apperror.NewUnauthenticated("state mismatch"))
		return
	}

	email, err := c.AuthService.Exchange(r.Context(), code)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	token, err := c.AuthService.GenerateToken(email)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"email":   email,
	})
}

// HandleMe - GET /api/auth/me echoes the authenticated identity.
func (c *AuthController) HandleMe(w http.ResponseWriter, r *http.Request) {
	email, ok := SessionEmail(r.Context())
	if !ok {
		utils.WriteError(w, apperror.NewUnauthenticated("no verified identity on request"))
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"email":   email,
	})
}
