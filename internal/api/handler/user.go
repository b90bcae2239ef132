package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/khokhopl/league-console/internal/api/middleware"
	"github.com/khokhopl/league-console/internal/api/request"
	"github.com/khokhopl/league-console/internal/api/response"
	"github.com/khokhopl/league-console/internal/model"
	"github.com/khokhopl/league-console/internal/services/user"
)

// UserHandler handles account administration endpoints
type UserHandler struct {
	userService *user.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /api/v1/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	users, err := h.userService.List(r.Context(), session)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.User, len(users))
	for i, u := range users {
		out[i] = response.UserFromModel(u)
	}
	response.JSON(w, http.StatusOK, out)
}

// Create handles POST /api/v1/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	u, err := h.userService.Create(r.Context(), session, user.CreateParams{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Role:        model.Role(req.Role),
		Permissions: req.Permissions,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.UserFromModel(u))
}

// Update handles PUT /api/v1/users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	id, err := userID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	params := user.UpdateParams{
		DisplayName: req.DisplayName,
		Permissions: req.Permissions,
		Password:    req.Password,
	}
	if req.Role != nil {
		role := model.Role(*req.Role)
		params.Role = &role
	}

	u, err := h.userService.Update(r.Context(), session, id, params)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.UserFromModel(u))
}

// Delete handles DELETE /api/v1/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	id, err := userID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.userService.Delete(r.Context(), session, id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// ToggleStatus handles PATCH /api/v1/users/{id}/status
func (h *UserHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	id, err := userID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.ToggleStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	u, err := h.userService.ToggleStatus(r.Context(), session, id, req.IsActive)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.UserFromModel(u))
}

func userID(r *http.Request) (model.UserID, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, NewInvalidRequestError("invalid user id")
	}
	return model.UserID(id), nil
}
