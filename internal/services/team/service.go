package team

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

// Service manages team registration
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	sink    audit.Sink
	logger  *slog.Logger
}

// New creates a new team service
func New(store storage.Storage, clk clock.Clock, sink audit.Sink, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		sink:    sink,
		logger:  logger,
	}
}

// List returns all registered teams in registration order
func (s *Service) List(ctx context.Context) ([]*model.Team, error) {
	return s.storage.ListTeams(ctx)
}

// Get returns a single team
func (s *Service) Get(ctx context.Context, id model.TeamID) (*model.Team, error) {
	return s.storage.GetTeam(ctx, id)
}

// Params carries team registration fields
type Params struct {
	SchoolName  string
	TeamType    model.TeamType
	CoachName   string
	CoachNumber string
	Players     []model.Player
}

// Create registers a team with its full roster. Validation runs before
// any storage call.
func (s *Service) Create(ctx context.Context, actor *model.Session, params Params) (*model.Team, error) {
	if !actor.HasPermission(model.ModuleTeams, model.ActionAdd) {
		return nil, model.ErrPermissionDenied
	}

	t := &model.Team{
		SchoolName:  params.SchoolName,
		TeamType:    params.TeamType,
		CoachName:   params.CoachName,
		CoachNumber: params.CoachNumber,
		PlayerCount: len(params.Players),
		Players:     params.Players,
		CreatedAt:   s.clock.Now(),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	created, err := s.storage.CreateTeam(ctx, t)
	if err != nil {
		return nil, err
	}

	s.sink.Activity(model.ActivityLog{
		UserID:      actor.UserID,
		Username:    actor.Username,
		Module:      model.ModuleTeams,
		Action:      "create",
		EntityID:    strconv.FormatInt(int64(created.ID), 10),
		Description: fmt.Sprintf("Added team %s", created.SchoolName),
		Timestamp:   s.clock.Now(),
	})
	return created, nil
}

// Update replaces a team's registration details and roster
func (s *Service) Update(ctx context.Context, actor *model.Session, id model.TeamID, params Params) (*model.Team, error) {
	if !actor.HasPermission(model.ModuleTeams, model.ActionEdit) {
		return nil, model.ErrPermissionDenied
	}

	t, err := s.storage.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	t.SchoolName = params.SchoolName
	t.TeamType = params.TeamType
	t.CoachName = params.CoachName
	t.CoachNumber = params.CoachNumber
	t.Players = params.Players
	t.PlayerCount = len(params.Players)
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if err := s.storage.UpdateTeam(ctx, t); err != nil {
		return nil, err
	}

	s.sink.Activity(model.ActivityLog{
		UserID:      actor.UserID,
		Username:    actor.Username,
		Module:      model.ModuleTeams,
		Action:      "update",
		EntityID:    strconv.FormatInt(int64(id), 10),
		Description: fmt.Sprintf("Updated team %s", t.SchoolName),
		Timestamp:   s.clock.Now(),
	})
	return t, nil
}

// Delete removes a team. Pools and matches that reference the team by
// string id keep their references; display layers tolerate the gap.
func (s *Service) Delete(ctx context.Context, actor *model.Session, id model.TeamID) error {
	if !actor.HasPermission(model.ModuleTeams, model.ActionDelete) {
		return model.ErrPermissionDenied
	}

	t, err := s.storage.GetTeam(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.DeleteTeam(ctx, id); err != nil {
		return err
	}

	s.sink.Activity(model.ActivityLog{
		UserID:      actor.UserID,
		Username:    actor.Username,
		Module:      model.ModuleTeams,
		Action:      "delete",
		EntityID:    strconv.FormatInt(int64(id), 10),
		Description: fmt.Sprintf("Deleted team %s", t.SchoolName),
		Timestamp:   s.clock.Now(),
	})
	return nil
}
