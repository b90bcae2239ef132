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
	"github.com/khokhopl/league-console/internal/services/match"
)

// MatchHandler handles match scheduling and result endpoints
type MatchHandler struct {
	matchService *match.Service
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchService *match.Service) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// List handles GET /api/v1/matches?team_type=male&status=upcoming&pool_id=3
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := matchFilter(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	matches, err := h.matchService.List(r.Context(), filter)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MatchesFromModel(matches))
}

// Get handles GET /api/v1/matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := matchID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.matchService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// SaveOrder handles PUT /api/v1/matches/order
// Accepts the full upcoming-match ordering for one division and assigns
// permanent match numbers continuing from the completed sequence.
func (h *MatchHandler) SaveOrder(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.SaveOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	teamType := model.TeamType(req.TeamType)
	if !teamType.Valid() {
		WriteError(w, NewInvalidRequestError("team_type must be male or female"))
		return
	}

	ids := make([]model.MatchID, len(req.MatchIDs))
	for i, raw := range req.MatchIDs {
		ids[i] = model.MatchID(raw)
	}

	if err := h.matchService.SaveOrder(r.Context(), session, teamType, ids); err != nil {
		WriteError(w, err)
		return
	}

	matches, err := h.matchService.List(r.Context(), model.MatchFilter{TeamType: teamType})
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MatchesFromModel(model.UpcomingMatches(matches)))
}

// Reorder handles POST /api/v1/matches/{id}/reorder
// Moves one upcoming match to a new position in its division's order.
func (h *MatchHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	id, err := matchID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.matchService.Reorder(r.Context(), session, id, req.NewIndex); err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.matchService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// Start handles POST /api/v1/matches/{id}/start
func (h *MatchHandler) Start(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	id, err := matchID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.matchService.Start(r.Context(), session, id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// Complete handles POST /api/v1/matches/{id}/complete
func (h *MatchHandler) Complete(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	id, err := matchID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.CompleteMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	m, err := h.matchService.Complete(r.Context(), session, id, req.WinnerID, req.Score)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// EditResult handles PATCH /api/v1/matches/{id}/result
// Corrects a recorded result without reopening the match.
func (h *MatchHandler) EditResult(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	id, err := matchID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.EditResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	params := match.EditResultParams{
		MatchNumber: req.MatchNumber,
		WinnerID:    req.WinnerID,
		Score:       req.Score,
	}
	m, err := h.matchService.EditResult(r.Context(), session, id, params)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// Delete handles DELETE /api/v1/matches/{id}
func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	id, err := matchID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.matchService.Delete(r.Context(), session, id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

func matchID(r *http.Request) (model.MatchID, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, NewInvalidRequestError("invalid match id")
	}
	return model.MatchID(id), nil
}

func matchFilter(r *http.Request) (model.MatchFilter, error) {
	q := r.URL.Query()

	filter := model.MatchFilter{
		TeamType: model.TeamType(q.Get("team_type")),
		Status:   model.MatchStatus(q.Get("status")),
	}
	if filter.TeamType != "" && !filter.TeamType.Valid() {
		return model.MatchFilter{}, NewInvalidRequestError("team_type must be male or female")
	}
	switch filter.Status {
	case "", model.MatchUpcoming, model.MatchOngoing, model.MatchCompleted:
	default:
		return model.MatchFilter{}, NewInvalidRequestError("status must be upcoming, ongoing, or completed")
	}

	if raw := q.Get("pool_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return model.MatchFilter{}, NewInvalidRequestError("invalid pool_id")
		}
		filter.PoolID = model.PoolID(id)
	}
	return filter, nil
}
