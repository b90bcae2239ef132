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
	"github.com/khokhopl/league-console/internal/services/pool"
)

// PoolHandler handles pool endpoints
type PoolHandler struct {
	poolService *pool.Service
}

// NewPoolHandler creates a new pool handler
func NewPoolHandler(poolService *pool.Service) *PoolHandler {
	return &PoolHandler{poolService: poolService}
}

// List handles GET /api/v1/pools?team_type=male
func (h *PoolHandler) List(w http.ResponseWriter, r *http.Request) {
	teamType := model.TeamType(r.URL.Query().Get("team_type"))
	if teamType != "" && !teamType.Valid() {
		WriteError(w, NewInvalidRequestError("team_type must be male or female"))
		return
	}

	pools, err := h.poolService.List(r.Context(), teamType)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PoolsFromModel(pools))
}

// Get handles GET /api/v1/pools/{id}
func (h *PoolHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := poolID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.poolService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PoolFromModel(p))
}

// Create handles POST /api/v1/pools
func (h *PoolHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.CreatePoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	p, err := h.poolService.Create(r.Context(), session, req.Name, model.TeamType(req.TeamType), req.TeamIDs)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.PoolFromModel(p))
}

// Update handles PUT /api/v1/pools/{id}
func (h *PoolHandler) Update(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	id, err := poolID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.UpdatePoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	p, err := h.poolService.Update(r.Context(), session, id, req.Name, req.TeamIDs)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PoolFromModel(p))
}

// Delete handles DELETE /api/v1/pools/{id}
// Removes the pool and every match fixed under it.
func (h *PoolHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	id, err := poolID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.poolService.Delete(r.Context(), session, id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// FixMatch handles POST /api/v1/pools/{id}/matches
func (h *PoolHandler) FixMatch(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	id, err := poolID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.FixMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	m, err := h.poolService.FixMatch(r.Context(), session, id, req.Team1ID, req.Team2ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.MatchFromModel(m))
}

// RoundRobin handles POST /api/v1/pools/{id}/round-robin
// Fixes a match for every pair of teams in the pool.
func (h *PoolHandler) RoundRobin(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	id, err := poolID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	matches, err := h.poolService.CreateRoundRobin(r.Context(), session, id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.MatchesFromModel(matches))
}

func poolID(r *http.Request) (model.PoolID, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, NewInvalidRequestError("invalid pool id")
	}
	return model.PoolID(id), nil
}
