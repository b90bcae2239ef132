package handler

import (
	"net/http"
	"strconv"

	"github.com/khokhopl/league-console/internal/api/middleware"
	"github.com/khokhopl/league-console/internal/api/response"
	"github.com/khokhopl/league-console/internal/services/user"
)

// LogsHandler handles audit log endpoints
type LogsHandler struct {
	userService *user.Service
}

// NewLogsHandler creates a new logs handler
func NewLogsHandler(userService *user.Service) *LogsHandler {
	return &LogsHandler{userService: userService}
}

// LoginLogs handles GET /api/v1/logs/logins?limit=50
func (h *LogsHandler) LoginLogs(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	logs, err := h.userService.LoginLogs(r.Context(), session, limitParam(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.LoginLogsFromModel(logs))
}

// ActivityLogs handles GET /api/v1/logs/activity?limit=50
func (h *LogsHandler) ActivityLogs(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	logs, err := h.userService.ActivityLogs(r.Context(), session, limitParam(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ActivityLogsFromModel(logs))
}

func limitParam(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
