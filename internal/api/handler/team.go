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
	"github.com/khokhopl/league-console/internal/services/team"
)

// TeamHandler handles team registration endpoints
type TeamHandler struct {
	teamService *team.Service
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService *team.Service) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// List handles GET /api/v1/teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TeamsFromModel(teams))
}

// Get handles GET /api/v1/teams/{id}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := teamID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	t, err := h.teamService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TeamFromModel(t))
}

// Create handles POST /api/v1/teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.TeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	t, err := h.teamService.Create(r.Context(), session, teamParams(req))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.TeamFromModel(t))
}

// Update handles PUT /api/v1/teams/{id}
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	id, err := teamID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.TeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	t, err := h.teamService.Update(r.Context(), session, id, teamParams(req))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TeamFromModel(t))
}

// Delete handles DELETE /api/v1/teams/{id}
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	id, err := teamID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.teamService.Delete(r.Context(), session, id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

func teamID(r *http.Request) (model.TeamID, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, NewInvalidRequestError("invalid team id")
	}
	return model.TeamID(id), nil
}

func teamParams(req request.TeamRequest) team.Params {
	return team.Params{
		SchoolName:  req.SchoolName,
		TeamType:    model.TeamType(req.TeamType),
		CoachName:   req.CoachName,
		CoachNumber: req.CoachNumber,
		Players:     req.Players,
	}
}
