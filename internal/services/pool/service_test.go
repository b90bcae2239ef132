package pool

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/khokhopl/league-console/internal/dependencies/mocks"
	"github.com/khokhopl/league-console/internal/model"
	"github.com/khokhopl/league-console/internal/services/match"
	"github.com/khokhopl/league-console/internal/storage/memory"
	"github.com/khokhopl/league-console/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	sink := testutil.SyncSink{Storage: s.storage}
	matchService := match.New(s.storage, s.clock, sink, testutil.NopLogger())
	s.service = New(s.storage, matchService, s.clock, sink, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) session(role model.Role) *model.Session {
	return &model.Session{
		Token:       "sess_test",
		UserID:      7,
		Username:    "organiser",
		Role:        role,
		Permissions: model.DefaultPermissions(role),
	}
}

func (s *ServiceSuite) createPool(teams ...string) *model.Pool {
	p, err := s.service.Create(s.ctx, s.session(model.RoleAdmin), "Pool A", model.TeamTypeMale, teams)
	s.Require().NoError(err)
	return p
}

func (s *ServiceSuite) TestCreatePool() {
	p := s.createPool("1", "2", "3")

	s.NotZero(p.ID)
	s.Equal("Pool A", p.Name)
	s.Equal(model.TeamTypeMale, p.TeamType)
	s.Equal([]string{"1", "2", "3"}, p.TeamIDs)
}

func (s *ServiceSuite) TestCreatePoolNeedsTwoTeams() {
	_, err := s.service.Create(s.ctx, s.session(model.RoleAdmin), "Pool A", model.TeamTypeMale, []string{"1"})

	var verr *model.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal("team_ids", verr.Field)
}

func (s *ServiceSuite) TestCreatePoolDeniedForViewer() {
	_, err := s.service.Create(s.ctx, s.session(model.RoleViewer), "Pool A", model.TeamTypeMale, []string{"1", "2"})
	s.ErrorIs(err, model.ErrPermissionDenied)
}

func (s *ServiceSuite) TestUpdateKeepsDivision() {
	p := s.createPool("1", "2")

	updated, err := s.service.Update(s.ctx, s.session(model.RoleEditor), p.ID, "Pool B", []string{"3", "4", "5"})
	s.Require().NoError(err)

	s.Equal("Pool B", updated.Name)
	s.Equal([]string{"3", "4", "5"}, updated.TeamIDs)
	s.Equal(model.TeamTypeMale, updated.TeamType)
}

func (s *ServiceSuite) TestUpdateEnforcesMinimumTeams() {
	p := s.createPool("1", "2")

	_, err := s.service.Update(s.ctx, s.session(model.RoleEditor), p.ID, "Pool A", []string{"1"})

	var verr *model.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal("team_ids", verr.Field)
}

func (s *ServiceSuite) TestDeleteCascadesToMatches() {
	actor := s.session(model.RoleAdmin)
	p := s.createPool("1", "2", "3")

	_, err := s.service.FixMatch(s.ctx, actor, p.ID, "1", "2")
	s.Require().NoError(err)
	_, err = s.service.FixMatch(s.ctx, actor, p.ID, "2", "3")
	s.Require().NoError(err)

	err = s.service.Delete(s.ctx, actor, p.ID)
	s.Require().NoError(err)

	_, err = s.storage.GetPool(s.ctx, p.ID)
	s.ErrorIs(err, model.ErrPoolNotFound)

	matches, err := s.storage.ListMatches(s.ctx, model.MatchFilter{PoolID: p.ID})
	s.Require().NoError(err)
	s.Empty(matches)
}

func (s *ServiceSuite) TestDeleteUnknownPoolFails() {
	err := s.service.Delete(s.ctx, s.session(model.RoleAdmin), 999)
	s.ErrorIs(err, model.ErrPoolNotFound)
}

func (s *ServiceSuite) TestFixMatchCreatesUpcomingMatch() {
	p := s.createPool("1", "2", "3")

	m, err := s.service.FixMatch(s.ctx, s.session(model.RoleEditor), p.ID, "1", "3")
	s.Require().NoError(err)

	s.Equal(p.ID, m.PoolID)
	s.Equal("1", m.Team1ID)
	s.Equal("3", m.Team2ID)
	s.Equal(model.TeamTypeMale, m.TeamType)
	s.Equal(model.MatchUpcoming, m.Status)
	s.Equal(1, m.MatchOrder)
}

func (s *ServiceSuite) TestFixMatchRejectsSameTeam() {
	p := s.createPool("1", "2")

	_, err := s.service.FixMatch(s.ctx, s.session(model.RoleEditor), p.ID, "1", "1")
	s.ErrorIs(err, model.ErrSameTeam)
}

func (s *ServiceSuite) TestFixMatchRejectsOutsideTeam() {
	p := s.createPool("1", "2")

	_, err := s.service.FixMatch(s.ctx, s.session(model.RoleEditor), p.ID, "1", "9")
	s.ErrorIs(err, model.ErrTeamNotInPool)
}

func (s *ServiceSuite) TestFixMatchDeniedForViewer() {
	p := s.createPool("1", "2")

	_, err := s.service.FixMatch(s.ctx, s.session(model.RoleViewer), p.ID, "1", "2")
	s.ErrorIs(err, model.ErrPermissionDenied)
}

func (s *ServiceSuite) TestRoundRobinCreatesAllPairs() {
	p := s.createPool("1", "2", "3", "4")

	created, err := s.service.CreateRoundRobin(s.ctx, s.session(model.RoleEditor), p.ID)
	s.Require().NoError(err)
	s.Require().Len(created, 6)

	s.Equal("1", created[0].Team1ID)
	s.Equal("2", created[0].Team2ID)
	s.Equal("3", created[5].Team1ID)
	s.Equal("4", created[5].Team2ID)

	for i, m := range created {
		s.Equal(i+1, m.MatchOrder)
		s.Equal(model.MatchUpcoming, m.Status)
	}
}

func (s *ServiceSuite) TestRoundRobinAppendsAfterExistingMatches() {
	actor := s.session(model.RoleEditor)
	p := s.createPool("1", "2", "3")
	_, err := s.service.FixMatch(s.ctx, actor, p.ID, "1", "2")
	s.Require().NoError(err)

	created, err := s.service.CreateRoundRobin(s.ctx, actor, p.ID)
	s.Require().NoError(err)
	s.Require().Len(created, 3)
	s.Equal(2, created[0].MatchOrder)
	s.Equal(4, created[2].MatchOrder)
}

func (s *ServiceSuite) TestRoundRobinRecordsActivity() {
	p := s.createPool("1", "2")

	_, err := s.service.CreateRoundRobin(s.ctx, s.session(model.RoleEditor), p.ID)
	s.Require().NoError(err)

	logs, err := s.storage.ListActivityLogs(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().NotEmpty(logs)
	s.Equal(model.ModuleMatches, logs[0].Module)
	s.Contains(logs[0].Description, "round-robin")
}
