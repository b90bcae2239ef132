package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/khokhopl/league-console/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	created, err := s.storage.CreateUser(s.ctx, &model.User{
		Username:  "admin",
		Role:      model.RoleAdmin,
		IsActive:  true,
		CreatedAt: time.Now(),
	})
	s.Require().NoError(err)
	s.Equal(model.UserID(1), created.ID)

	got, err := s.storage.GetUser(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("admin", got.Username)

	got, err = s.storage.GetUserByUsername(s.ctx, "admin")
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)
}

func (s *StorageSuite) TestCreateUserAssignsSequentialIDs() {
	first, err := s.storage.CreateUser(s.ctx, &model.User{Username: "admin"})
	s.Require().NoError(err)
	second, err := s.storage.CreateUser(s.ctx, &model.User{Username: "scorer"})
	s.Require().NoError(err)

	s.Equal(model.UserID(1), first.ID)
	s.Equal(model.UserID(2), second.ID)
}

func (s *StorageSuite) TestCreateUserRejectsDuplicateUsername() {
	_, err := s.storage.CreateUser(s.ctx, &model.User{Username: "admin"})
	s.Require().NoError(err)

	_, err = s.storage.CreateUser(s.ctx, &model.User{Username: "admin"})
	s.ErrorIs(err, model.ErrUsernameExists)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, 999)
	s.ErrorIs(err, model.ErrUserNotFound)

	_, err = s.storage.GetUserByUsername(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestUpdateUserRenameMovesIndex() {
	created, err := s.storage.CreateUser(s.ctx, &model.User{Username: "scorer"})
	s.Require().NoError(err)

	created.Username = "referee"
	s.Require().NoError(s.storage.UpdateUser(s.ctx, created))

	_, err = s.storage.GetUserByUsername(s.ctx, "scorer")
	s.ErrorIs(err, model.ErrUserNotFound)

	got, err := s.storage.GetUserByUsername(s.ctx, "referee")
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)
}

func (s *StorageSuite) TestDeleteUserFreesUsername() {
	created, err := s.storage.CreateUser(s.ctx, &model.User{Username: "scorer"})
	s.Require().NoError(err)

	s.Require().NoError(s.storage.DeleteUser(s.ctx, created.ID))

	_, err = s.storage.CreateUser(s.ctx, &model.User{Username: "scorer"})
	s.NoError(err)
}

func (s *StorageSuite) TestListUsersNewestFirst() {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	_, err := s.storage.CreateUser(s.ctx, &model.User{Username: "older", CreatedAt: base})
	s.Require().NoError(err)
	_, err = s.storage.CreateUser(s.ctx, &model.User{Username: "newer", CreatedAt: base.Add(time.Hour)})
	s.Require().NoError(err)

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal("newer", users[0].Username)
	s.Equal("older", users[1].Username)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	session := &model.Session{
		Token:    "sess_abc",
		UserID:   1,
		Username: "admin",
		Role:     model.RoleAdmin,
	}
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	got, err := s.storage.GetSession(s.ctx, "sess_abc")
	s.Require().NoError(err)
	s.Equal(model.UserID(1), got.UserID)

	s.Require().NoError(s.storage.DeleteSession(s.ctx, "sess_abc"))
	_, err = s.storage.GetSession(s.ctx, "sess_abc")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestListSessions() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.Session{Token: "sess_a"}))
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.Session{Token: "sess_b"}))

	sessions, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Len(sessions, 2)
}

// Team tests

func (s *StorageSuite) TestCreateAndGetTeam() {
	created, err := s.storage.CreateTeam(s.ctx, &model.Team{
		SchoolName: "Govt High School Salem",
		TeamType:   model.TeamTypeMale,
		CreatedAt:  time.Now(),
	})
	s.Require().NoError(err)
	s.Equal(model.TeamID(1), created.ID)

	got, err := s.storage.GetTeam(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Govt High School Salem", got.SchoolName)
}

func (s *StorageSuite) TestListTeamsRegistrationOrder() {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	_, err := s.storage.CreateTeam(s.ctx, &model.Team{SchoolName: "First", CreatedAt: base})
	s.Require().NoError(err)
	_, err = s.storage.CreateTeam(s.ctx, &model.Team{SchoolName: "Second", CreatedAt: base.Add(time.Minute)})
	s.Require().NoError(err)

	teams, err := s.storage.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(teams, 2)
	s.Equal("First", teams[0].SchoolName)
	s.Equal("Second", teams[1].SchoolName)
}

func (s *StorageSuite) TestUpdateTeamNotFound() {
	err := s.storage.UpdateTeam(s.ctx, &model.Team{ID: 999})
	s.ErrorIs(err, model.ErrTeamNotFound)
}

// Pool tests

func (s *StorageSuite) TestListPoolsFiltersByDivision() {
	_, err := s.storage.CreatePool(s.ctx, &model.Pool{Name: "Pool A", TeamType: model.TeamTypeMale})
	s.Require().NoError(err)
	_, err = s.storage.CreatePool(s.ctx, &model.Pool{Name: "Pool B", TeamType: model.TeamTypeFemale})
	s.Require().NoError(err)

	pools, err := s.storage.ListPools(s.ctx, model.TeamTypeFemale)
	s.Require().NoError(err)
	s.Require().Len(pools, 1)
	s.Equal("Pool B", pools[0].Name)

	pools, err = s.storage.ListPools(s.ctx, "")
	s.Require().NoError(err)
	s.Len(pools, 2)
}

// Match tests

func (s *StorageSuite) TestListMatchesFilteredAndSorted() {
	_, err := s.storage.CreateMatch(s.ctx, &model.Match{
		PoolID: 1, TeamType: model.TeamTypeMale, Status: model.MatchUpcoming, MatchOrder: 2,
	})
	s.Require().NoError(err)
	_, err = s.storage.CreateMatch(s.ctx, &model.Match{
		PoolID: 1, TeamType: model.TeamTypeMale, Status: model.MatchUpcoming, MatchOrder: 1,
	})
	s.Require().NoError(err)
	_, err = s.storage.CreateMatch(s.ctx, &model.Match{
		PoolID: 2, TeamType: model.TeamTypeFemale, Status: model.MatchCompleted, MatchOrder: 1,
	})
	s.Require().NoError(err)

	matches, err := s.storage.ListMatches(s.ctx, model.MatchFilter{TeamType: model.TeamTypeMale})
	s.Require().NoError(err)
	s.Require().Len(matches, 2)
	s.Equal(1, matches[0].MatchOrder)
	s.Equal(2, matches[1].MatchOrder)

	matches, err = s.storage.ListMatches(s.ctx, model.MatchFilter{Status: model.MatchCompleted})
	s.Require().NoError(err)
	s.Len(matches, 1)
}

func (s *StorageSuite) TestDeleteMatchesByPool() {
	_, err := s.storage.CreateMatch(s.ctx, &model.Match{PoolID: 1, Status: model.MatchUpcoming})
	s.Require().NoError(err)
	_, err = s.storage.CreateMatch(s.ctx, &model.Match{PoolID: 1, Status: model.MatchCompleted})
	s.Require().NoError(err)
	keep, err := s.storage.CreateMatch(s.ctx, &model.Match{PoolID: 2, Status: model.MatchUpcoming})
	s.Require().NoError(err)

	s.Require().NoError(s.storage.DeleteMatchesByPool(s.ctx, 1))

	matches, err := s.storage.ListMatches(s.ctx, model.MatchFilter{})
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Equal(keep.ID, matches[0].ID)
}

// Log tests

func (s *StorageSuite) TestLoginLogsNewestFirstWithLimit() {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := s.storage.AppendLoginLog(s.ctx, &model.LoginLog{
			Username:  "admin",
			Action:    model.LoginActionLogin,
			Success:   true,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		s.Require().NoError(err)
	}

	logs, err := s.storage.ListLoginLogs(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(logs, 2)
	s.Equal(base.Add(2*time.Minute), logs[0].Timestamp)
	s.Equal(base.Add(time.Minute), logs[1].Timestamp)
}

func (s *StorageSuite) TestActivityLogsNewestFirst() {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	err := s.storage.AppendActivityLog(s.ctx, &model.ActivityLog{Description: "first", Timestamp: base})
	s.Require().NoError(err)
	err = s.storage.AppendActivityLog(s.ctx, &model.ActivityLog{Description: "second", Timestamp: base.Add(time.Minute)})
	s.Require().NoError(err)

	logs, err := s.storage.ListActivityLogs(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(logs, 2)
	s.Equal("second", logs[0].Description)
	s.Equal("first", logs[1].Description)
}
