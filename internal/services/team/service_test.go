package team

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/khokhopl/league-console/internal/dependencies/mocks"
	"github.com/khokhopl/league-console/internal/model"
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
	s.service = New(s.storage, s.clock, testutil.SyncSink{Storage: s.storage}, testutil.NopLogger())
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

func (s *ServiceSuite) params() Params {
	players := make([]model.Player, model.RosterSize)
	for i := range players {
		players[i] = model.Player{
			Name:       fmt.Sprintf("Player %d", i+1),
			FatherName: fmt.Sprintf("Father %d", i+1),
			Aadhaar:    fmt.Sprintf("1234567890%02d", i),
			Class:      "9",
			DOB:        "2010-04-15",
		}
	}
	return Params{
		SchoolName:  "Govt High School Salem",
		TeamType:    model.TeamTypeMale,
		CoachName:   "R. Kumar",
		CoachNumber: "9876543210",
		Players:     players,
	}
}

func (s *ServiceSuite) TestCreateRegistersTeam() {
	created, err := s.service.Create(s.ctx, s.session(model.RoleEditor), s.params())
	s.Require().NoError(err)

	s.NotZero(created.ID)
	s.Equal("Govt High School Salem", created.SchoolName)
	s.Equal(model.RosterSize, created.PlayerCount)
	s.Len(created.Players, model.RosterSize)
	s.Equal(s.clock.Now(), created.CreatedAt)
}

func (s *ServiceSuite) TestCreateValidatesBeforeStorage() {
	params := s.params()
	params.Players = params.Players[:5]

	_, err := s.service.Create(s.ctx, s.session(model.RoleEditor), params)

	var verr *model.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal("players", verr.Field)

	teams, err := s.storage.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Empty(teams)
}

func (s *ServiceSuite) TestCreateDeniedForViewer() {
	_, err := s.service.Create(s.ctx, s.session(model.RoleViewer), s.params())
	s.ErrorIs(err, model.ErrPermissionDenied)
}

func (s *ServiceSuite) TestCreateRecordsActivity() {
	_, err := s.service.Create(s.ctx, s.session(model.RoleEditor), s.params())
	s.Require().NoError(err)

	logs, err := s.storage.ListActivityLogs(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(logs, 1)
	s.Equal(model.ModuleTeams, logs[0].Module)
	s.Equal("create", logs[0].Action)
	s.Contains(logs[0].Description, "Govt High School Salem")
}

func (s *ServiceSuite) TestUpdateReplacesRoster() {
	created, err := s.service.Create(s.ctx, s.session(model.RoleEditor), s.params())
	s.Require().NoError(err)

	params := s.params()
	params.SchoolName = "Govt High School Erode"
	params.Players[0].Name = "Substitute Player"

	updated, err := s.service.Update(s.ctx, s.session(model.RoleEditor), created.ID, params)
	s.Require().NoError(err)

	s.Equal("Govt High School Erode", updated.SchoolName)
	s.Equal("Substitute Player", updated.Players[0].Name)
}

func (s *ServiceSuite) TestUpdateUnknownTeamFails() {
	_, err := s.service.Update(s.ctx, s.session(model.RoleEditor), 999, s.params())
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *ServiceSuite) TestDeleteRequiresAdmin() {
	created, err := s.service.Create(s.ctx, s.session(model.RoleEditor), s.params())
	s.Require().NoError(err)

	err = s.service.Delete(s.ctx, s.session(model.RoleEditor), created.ID)
	s.ErrorIs(err, model.ErrPermissionDenied)

	err = s.service.Delete(s.ctx, s.session(model.RoleAdmin), created.ID)
	s.Require().NoError(err)

	_, err = s.storage.GetTeam(s.ctx, created.ID)
	s.ErrorIs(err, model.ErrTeamNotFound)
}
