package pool

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/khokhopl/league-console/internal/dependencies/clock"
	"github.com/khokhopl/league-console/internal/model"
	"github.com/khokhopl/league-console/internal/services/audit"
	"github.com/khokhopl/league-console/internal/services/match"
	"github.com/khokhopl/league-console/internal/storage"
)

// Service manages pools and fixture creation from them
type Service struct {
	storage      storage.Storage
	matchService *match.Service
	clock        clock.Clock
	sink         audit.Sink
	logger       *slog.Logger
}

// New creates a new pool service
func New(store storage.Storage, matchService *match.Service, clk clock.Clock, sink audit.Sink, logger *slog.Logger) *Service {
	return &Service{
		storage:      store,
		matchService: matchService,
		clock:        clk,
		sink:         sink,
		logger:       logger,
	}
}

// List returns pools, optionally filtered by division
func (s *Service) List(ctx context.Context, teamType model.TeamType) ([]*model.Pool, error) {
	return s.storage.ListPools(ctx, teamType)
}

// Get returns a single pool
func (s *Service) Get(ctx context.Context, id model.PoolID) (*model.Pool, error) {
	return s.storage.GetPool(ctx, id)
}

// Create creates a pool referencing at least two teams
func (s *Service) Create(ctx context.Context, actor *model.Session, name string, teamType model.TeamType, teamIDs []string) (*model.Pool, error) {
	if !actor.HasPermission(model.ModulePools, model.ActionAdd) {
		return nil, model.ErrPermissionDenied
	}

	p := &model.Pool{
		Name:      name,
		TeamType:  teamType,
		TeamIDs:   teamIDs,
		CreatedAt: s.clock.Now(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	created, err := s.storage.CreatePool(ctx, p)
	if err != nil {
		return nil, err
	}

	s.sink.Activity(model.ActivityLog{
		UserID:      actor.UserID,
		Username:    actor.Username,
		Module:      model.ModulePools,
		Action:      "create",
		EntityID:    strconv.FormatInt(int64(created.ID), 10),
		Description: fmt.Sprintf("Created pool %s with %d teams", created.Name, len(created.TeamIDs)),
		Timestamp:   s.clock.Now(),
	})
	return created, nil
}

// Update renames a pool and/or replaces its team set. The division is
// fixed at creation; the minimum team count still applies.
func (s *Service) Update(ctx context.Context, actor *model.Session, id model.PoolID, name string, teamIDs []string) (*model.Pool, error) {
	if !actor.HasPermission(model.ModulePools, model.ActionEdit) {
		return nil, model.ErrPermissionDenied
	}

	p, err := s.storage.GetPool(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = name
	p.TeamIDs = teamIDs
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.storage.UpdatePool(ctx, p); err != nil {
		return nil, err
	}

	s.sink.Activity(model.ActivityLog{
		UserID:      actor.UserID,
		Username:    actor.Username,
		Module:      model.ModulePools,
		Action:      "update",
		EntityID:    strconv.FormatInt(int64(id), 10),
		Description: fmt.Sprintf("Updated pool %s", p.Name),
		Timestamp:   s.clock.Now(),
	})
	return p, nil
}

// Delete removes a pool and every match referencing it. Matches go
// first so a failure cannot leave match rows pointing at a missing pool.
func (s *Service) Delete(ctx context.Context, actor *model.Session, id model.PoolID) error {
	if !actor.HasPermission(model.ModulePools, model.ActionDelete) {
		return model.ErrPermissionDenied
	}

	if _, err := s.storage.GetPool(ctx, id); err != nil {
		return err
	}

	if err := s.storage.DeleteMatchesByPool(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeletePool(ctx, id); err != nil {
		return err
	}

	s.sink.Activity(model.ActivityLog{
		UserID:      actor.UserID,
		Username:    actor.Username,
		Module:      model.ModulePools,
		Action:      "delete",
		EntityID:    strconv.FormatInt(int64(id), 10),
		Description: "Deleted pool",
		Timestamp:   s.clock.Now(),
	})
	return nil
}

// FixMatch pairs two distinct teams from the pool into a new upcoming
// match appended at the end of the division's current order.
func (s *Service) FixMatch(ctx context.Context, actor *model.Session, poolID model.PoolID, team1ID, team2ID string) (*model.Match, error) {
	if !actor.HasPermission(model.ModulePools, model.ActionFixMatch) {
		return nil, model.ErrPermissionDenied
	}

	p, err := s.storage.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}

	if team1ID == team2ID {
		return nil, model.ErrSameTeam
	}
	if !p.HasTeam(team1ID) || !p.HasTeam(team2ID) {
		return nil, model.ErrTeamNotInPool
	}

	created, err := s.matchService.Create(ctx, match.CreateParams{
		PoolID:   poolID,
		Team1ID:  team1ID,
		Team2ID:  team2ID,
		TeamType: p.TeamType,
	})
	if err != nil {
		return nil, err
	}

	s.sink.Activity(model.ActivityLog{
		UserID:      actor.UserID,
		Username:    actor.Username,
		Module:      model.ModuleMatches,
		Action:      "create",
		EntityID:    strconv.FormatInt(int64(created.ID), 10),
		Description: fmt.Sprintf("Created match: %s vs %s", s.teamName(ctx, team1ID), s.teamName(ctx, team2ID)),
		Timestamp:   s.clock.Now(),
	})
	return created, nil
}

// CreateRoundRobin creates one match for every pair of teams in the
// pool, appended in pair order after the division's current matches.
// Rows are inserted independently; a mid-way failure leaves the already
// created matches in place.
func (s *Service) CreateRoundRobin(ctx context.Context, actor *model.Session, poolID model.PoolID) ([]*model.Match, error) {
	if !actor.HasPermission(model.ModulePools, model.ActionFixMatch) {
		return nil, model.ErrPermissionDenied
	}

	p, err := s.storage.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}

	var created []*model.Match
	for i := 0; i < len(p.TeamIDs); i++ {
		for j := i + 1; j < len(p.TeamIDs); j++ {
			m, err := s.matchService.Create(ctx, match.CreateParams{
				PoolID:   poolID,
				Team1ID:  p.TeamIDs[i],
				Team2ID:  p.TeamIDs[j],
				TeamType: p.TeamType,
			})
			if err != nil {
				return created, err
			}
			created = append(created, m)
		}
	}

	s.sink.Activity(model.ActivityLog{
		UserID:      actor.UserID,
		Username:    actor.Username,
		Module:      model.ModuleMatches,
		Action:      "create",
		EntityID:    strconv.FormatInt(int64(poolID), 10),
		Description: fmt.Sprintf("Created %d round-robin matches for pool %s", len(created), p.Name),
		Timestamp:   s.clock.Now(),
	})
	return created, nil
}

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
