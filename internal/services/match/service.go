// Package match implements the match lifecycle: ordering among upcoming
// matches, permanent match numbering, and the
// upcoming -> ongoing -> completed state machine.
package match

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/khokhopl/league-console/internal/dependencies/clock"
	"github.com/khokhopl/league-console/internal/model"
	"github.com/khokhopl/league-console/internal/services/audit"
	"github.com/khokhopl/league-console/internal/storage"
)

// Service manages match state and ordering
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	sink    audit.Sink
	logger  *slog.Logger
}

// New creates a new match service
func New(store storage.Storage, clk clock.Clock, sink audit.Sink, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		sink:    sink,
		logger:  logger,
	}
}

// List returns matches passing the filter, sorted by match order
func (s *Service) List(ctx context.Context, filter model.MatchFilter) ([]*model.Match, error) {
	return s.storage.ListMatches(ctx, filter)
}

// Get returns a single match
func (s *Service) Get(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return s.storage.GetMatch(ctx, id)
}

// CreateParams describes a new fixture
type CreateParams struct {
	PoolID   model.PoolID
	Team1ID  string
	Team2ID  string
	TeamType model.TeamType
}

// Create appends a new upcoming match at the end of the current order
// for its team type. The match receives no permanent number until the
// order is next saved. Permission checks belong to the caller (the pool
// controller's fix-match and round-robin operations).
func (s *Service) Create(ctx context.Context, params CreateParams) (*model.Match, error) {
	if params.Team1ID == params.Team2ID {
		return nil, model.ErrSameTeam
	}

	// Order continues from the highest order across all matches of the
	// division, completed ones included.
	existing, err := s.storage.ListMatches(ctx, model.MatchFilter{TeamType: params.TeamType})
	if err != nil {
		return nil, err
	}

	m := &model.Match{
		PoolID:     params.PoolID,
		Team1ID:    params.Team1ID,
		Team2ID:    params.Team2ID,
		TeamType:   params.TeamType,
		Status:     model.MatchUpcoming,
		MatchOrder: model.MaxOrder(existing) + 1,
		CreatedAt:  s.clock.Now(),
	}

	return s.storage.CreateMatch(ctx, m)
}

// SaveOrder persists a new display order for the upcoming matches of a
// division. Orders are renumbered 1..N in the given sequence and each
// match gets its permanent number, continuing from the highest number
// among completed matches. Rows are persisted independently; a failure
// part-way leaves the already-written rows in place and is reported at
// the end.
func (s *Service) SaveOrder(ctx context.Context, actor *model.Session, teamType model.TeamType, ids []model.MatchID) error {
	if !actor.HasPermission(model.ModuleMatches, model.ActionReorder) {
		return model.ErrPermissionDenied
	}

	all, err := s.storage.ListMatches(ctx, model.MatchFilter{TeamType: teamType})
	if err != nil {
		return err
	}

	upcoming := model.UpcomingMatches(all)
	byID := make(map[model.MatchID]*model.Match, len(upcoming))
	for _, m := range upcoming {
		byID[m.ID] = m
	}

	if len(ids) != len(upcoming) {
		return model.NewValidationError("match_ids", "order must include every upcoming match exactly once")
	}
	seen := make(map[model.MatchID]bool, len(ids))
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return model.NewValidationError("match_ids", fmt.Sprintf("match %d is not an upcoming match in this division", id))
		}
		if seen[id] {
			return model.NewValidationError("match_ids", fmt.Sprintf("match %d appears more than once", id))
		}
		seen[id] = true
	}

	base := model.MaxCompletedNumber(all)

	failed := 0
	for i, id := range ids {
		m := byID[id]
		m.MatchOrder = i + 1
		m.MatchNumber = base + i + 1
		if err := s.storage.UpdateMatch(ctx, m); err != nil {
			failed++
			s.logger.Warn("match order update failed",
				slog.Int64("match_id", int64(id)),
				slog.String("error", err.Error()))
		}
	}

	s.sink.Activity(model.ActivityLog{
		UserID:      actor.UserID,
		Username:    actor.Username,
		Module:      model.ModuleMatches,
		Action:      "reorder",
		Description: "Reordered upcoming matches",
		Timestamp:   s.clock.Now(),
	})

	if failed > 0 {
		return fmt.Errorf("saving match order: %d of %d updates failed", failed, len(ids))
	}
	return nil
}

// Reorder moves one match to a new position among the upcoming matches
// of its division and saves the resulting order.
func (s *Service) Reorder(ctx context.Context, actor *model.Session, id model.MatchID, newIndex int) error {
	if !actor.HasPermission(model.ModuleMatches, model.ActionReorder) {
		return model.ErrPermissionDenied
	}

	m, err := s.storage.GetMatch(ctx, id)
	if err != nil {
		return err
	}
	if m.IsCompleted() {
		return model.ErrMatchAlreadyCompleted
	}

	all, err := s.storage.ListMatches(ctx, model.MatchFilter{TeamType: m.TeamType})
	if err != nil {
		return err
	}

	upcoming := model.UpcomingMatches(all)
	ids := make([]model.MatchID, len(upcoming))
	for i, u := range upcoming {
		ids[i] = u.ID
	}

	return s.SaveOrder(ctx, actor, m.TeamType, model.MoveToIndex(ids, id, newIndex))
}

// Start moves an upcoming match to ongoing
func (s *Service) Start(ctx context.Context, actor *model.Session, id model.MatchID) (*model.Match, error) {
	if !actor.HasPermission(model.ModuleMatches, model.ActionComplete) {
		return nil, model.ErrPermissionDenied
	}

	m, err := s.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.Status.CanTransition(model.MatchOngoing) {
		return nil, model.ErrInvalidTransition
	}

	m.Status = model.MatchOngoing
	if err := s.storage.UpdateMatch(ctx, m); err != nil {
		return nil, err
	}

	s.sink.Activity(model.ActivityLog{
		UserID:      actor.UserID,
		Username:    actor.Username,
		Module:      model.ModuleMatches,
		Action:      "update",
		EntityID:    strconv.FormatInt(int64(id), 10),
		Description: "Started match",
		Timestamp:   s.clock.Now(),
	})
	return m, nil
}

// Complete records a match result. The winner must be one of the match's
// two teams and the score string is preserved verbatim. A completed match
// cannot be completed again; results are corrected via EditResult.
func (s *Service) Complete(ctx context.Context, actor *model.Session, id model.MatchID, winnerID, score string) (*model.Match, error) {
	if !actor.HasPermission(model.ModuleMatches, model.ActionComplete) {
		return nil, model.ErrPermissionDenied
	}

	m, err := s.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.IsCompleted() {
		return nil, model.ErrMatchAlreadyCompleted
	}
	if !m.HasTeam(winnerID) {
		return nil, model.ErrInvalidWinner
	}
	if score == "" {
		return nil, model.NewValidationError("score", "score is required")
	}

	m.Status = model.MatchCompleted
	m.WinnerID = winnerID
	m.Score = score
	if err := s.storage.UpdateMatch(ctx, m); err != nil {
		return nil, err
	}

	s.sink.Activity(model.ActivityLog{
		UserID:      actor.UserID,
		Username:    actor.Username,
		Module:      model.ModuleMatches,
		Action:      "update",
		EntityID:    strconv.FormatInt(int64(id), 10),
		Description: fmt.Sprintf("Completed match - Winner: %s, Score: %s", s.teamName(ctx, winnerID), score),
		Timestamp:   s.clock.Now(),
	})
	return m, nil
}

// EditResultParams corrects a completed match's recorded result
type EditResultParams struct {
	MatchNumber int
	WinnerID    string
	Score       string
}

// EditResult edits a completed match in place. Changing the match number
// here never triggers renumbering of other matches.
func (s *Service) EditResult(ctx context.Context, actor *model.Session, id model.MatchID, params EditResultParams) (*model.Match, error) {
	if !actor.HasPermission(model.ModuleMatches, model.ActionEdit) {
		return nil, model.ErrPermissionDenied
	}

	m, err := s.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.IsCompleted() {
		return nil, model.ErrMatchNotCompleted
	}
	if !m.HasTeam(params.WinnerID) {
		return nil, model.ErrInvalidWinner
	}
	if params.Score == "" {
		return nil, model.NewValidationError("score", "score is required")
	}
	if params.MatchNumber <= 0 {
		return nil, model.NewValidationError("match_number", "match number must be positive")
	}

	m.MatchNumber = params.MatchNumber
	m.WinnerID = params.WinnerID
	m.Score = params.Score
	if err := s.storage.UpdateMatch(ctx, m); err != nil {
		return nil, err
	}

	s.sink.Activity(model.ActivityLog{
		UserID:      actor.UserID,
		Username:    actor.Username,
		Module:      model.ModuleMatches,
		Action:      "update",
		EntityID:    strconv.FormatInt(int64(id), 10),
		Description: fmt.Sprintf("Updated match #%d result: %s", params.MatchNumber, params.Score),
		Timestamp:   s.clock.Now(),
	})
	return m, nil
}

// Delete removes a match
func (s *Service) Delete(ctx context.Context, actor *model.Session, id model.MatchID) error {
	if !actor.HasPermission(model.ModuleMatches, model.ActionDelete) {
		return model.ErrPermissionDenied
	}

	if _, err := s.storage.GetMatch(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteMatch(ctx, id); err != nil {
		return err
	}

	s.sink.Activity(model.ActivityLog{
		UserID:      actor.UserID,
		Username:    actor.Username,
		Module:      model.ModuleMatches,
		Action:      "delete",
		EntityID:    strconv.FormatInt(int64(id), 10),
		Description: "Deleted match",
		Timestamp:   s.clock.Now(),
	})
	return nil
}

// teamName resolves a string team reference to a school name for audit
// descriptions, best-effort.
func (s *Service) teamName(ctx context.Context, teamID string) string {
	id, err := strconv.ParseInt(teamID, 10, 64)
	if err != nil {
		return "Unknown"
	}
	team, err := s.storage.GetTeam(ctx, model.TeamID(id))
	if err != nil {
		return "Unknown"
	}
	return team.SchoolName
}
