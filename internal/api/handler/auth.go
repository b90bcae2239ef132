package handler

import (
	"encoding/json"
	"net/http"

	"github.com/khokhopl/league-console/internal/api/middleware"
	"github.com/khokhopl/league-console/internal/api/request"
	"github.com/khokhopl/league-console/internal/api/response"
	"github.com/khokhopl/league-console/internal/model"
	"github.com/khokhopl/league-console/internal/services/auth"
)

// AuthHandler handles login, logout, and session endpoints
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Username == "" || req.Password == "" {
		WriteError(w, NewInvalidRequestError("username and password are required"))
		return
	}

	meta := auth.LoginMeta{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
	session, err := h.authService.Login(r.Context(), req.Username, req.Password, meta)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractToken(r)
	if err := h.authService.Logout(r.Context(), token, model.LogoutManual); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// SessionState handles GET /api/v1/auth/session
// Reports the idle-timeout state driving the pre-logout warning.
func (h *AuthHandler) SessionState(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	token := middleware.ExtractToken(r)

	status, remaining, err := h.authService.IdleState(r.Context(), token)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionState{
		State:            string(status),
		RemainingSeconds: int(remaining.Seconds()),
		ExpiresAt:        session.ExpiresAt,
	})
}

// Extend handles POST /api/v1/auth/extend
// The explicit "stay logged in" action from the inactivity warning.
func (h *AuthHandler) Extend(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractToken(r)
	session, err := h.authService.Extend(r.Context(), token)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}
