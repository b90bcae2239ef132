package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/khokhopl/league-console/internal/dependencies/mocks"
	"github.com/khokhopl/league-console/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	clock   *mocks.MockClock
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	s.storage = NewWithClient(client, cfg, s.clock)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	created, err := s.storage.CreateUser(s.ctx, &model.User{
		Username:    "admin",
		DisplayName: "Administrator",
		Role:        model.RoleAdmin,
		Permissions: model.DefaultPermissions(model.RoleAdmin),
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	})
	s.Require().NoError(err)
	s.Equal(model.UserID(1), created.ID)

	got, err := s.storage.GetUser(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("admin", got.Username)
	s.Equal(model.RoleAdmin, got.Role)
	s.True(got.Permissions.Allows(model.ModuleUsers, model.ActionAdd))
}

func (s *StorageSuite) TestCreateUserRejectsDuplicateUsername() {
	_, err := s.storage.CreateUser(s.ctx, &model.User{Username: "admin"})
	s.Require().NoError(err)

	_, err = s.storage.CreateUser(s.ctx, &model.User{Username: "admin"})
	s.ErrorIs(err, model.ErrUsernameExists)
}

func (s *StorageSuite) TestGetUserByUsername() {
	created, err := s.storage.CreateUser(s.ctx, &model.User{Username: "scorer"})
	s.Require().NoError(err)

	got, err := s.storage.GetUserByUsername(s.ctx, "scorer")
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)

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

	_, err = s.storage.GetUser(s.ctx, created.ID)
	s.ErrorIs(err, model.ErrUserNotFound)

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
		Token:     "sess_abc",
		UserID:    1,
		Username:  "admin",
		Role:      model.RoleAdmin,
		ExpiresAt: s.clock.Now().Add(24 * time.Hour),
	}
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	got, err := s.storage.GetSession(s.ctx, "sess_abc")
	s.Require().NoError(err)
	s.Equal(model.UserID(1), got.UserID)
	s.Equal("admin", got.Username)
}

func (s *StorageSuite) TestSaveSessionCapsTTLAtExpiry() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.Session{
		Token:     "sess_abc",
		ExpiresAt: s.clock.Now().Add(30 * time.Minute),
	}))

	s.Equal(30*time.Minute, s.mini.TTL(sessionKey("sess_abc")))
}

func (s *StorageSuite) TestSessionExpiresViaTTL() {
	session := &model.Session{
		Token:     "sess_abc",
		UserID:    1,
		ExpiresAt: s.clock.Now().Add(time.Minute),
	}
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	s.mini.FastForward(2 * time.Minute)

	_, err := s.storage.GetSession(s.ctx, "sess_abc")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestListSessionsSkipsExpired() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.Session{
		Token:     "sess_short",
		ExpiresAt: s.clock.Now().Add(time.Minute),
	}))
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.Session{
		Token:     "sess_long",
		ExpiresAt: s.clock.Now().Add(24 * time.Hour),
	}))

	s.mini.FastForward(2 * time.Minute)

	sessions, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(sessions, 1)
	s.Equal("sess_long", sessions[0].Token)
}

func (s *StorageSuite) TestDeleteSession() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, &model.Session{
		Token:     "sess_abc",
		ExpiresAt: s.clock.Now().Add(time.Hour),
	}))

	s.Require().NoError(s.storage.DeleteSession(s.ctx, "sess_abc"))

	_, err := s.storage.GetSession(s.ctx, "sess_abc")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Team tests

func (s *StorageSuite) TestCreateAndGetTeam() {
	created, err := s.storage.CreateTeam(s.ctx, &model.Team{
		SchoolName:  "Govt High School Salem",
		TeamType:    model.TeamTypeMale,
		CoachName:   "R. Kumar",
		CoachNumber: "9876543210",
		Players:     []model.Player{{Name: "Player 1", Aadhaar: "123456789012"}},
		PlayerCount: 1,
		CreatedAt:   time.Now().UTC(),
	})
	s.Require().NoError(err)
	s.Equal(model.TeamID(1), created.ID)

	got, err := s.storage.GetTeam(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Govt High School Salem", got.SchoolName)
	s.Require().Len(got.Players, 1)
	s.Equal("123456789012", got.Players[0].Aadhaar)
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

func (s *StorageSuite) TestDeleteTeam() {
	created, err := s.storage.CreateTeam(s.ctx, &model.Team{SchoolName: "Govt High School Salem"})
	s.Require().NoError(err)

	s.Require().NoError(s.storage.DeleteTeam(s.ctx, created.ID))

	_, err = s.storage.GetTeam(s.ctx, created.ID)
	s.ErrorIs(err, model.ErrTeamNotFound)

	teams, err := s.storage.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Empty(teams)
}

// Pool tests

func (s *StorageSuite) TestCreateAndListPools() {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	_, err := s.storage.CreatePool(s.ctx, &model.Pool{
		Name: "Pool A", TeamType: model.TeamTypeMale, TeamIDs: []string{"1", "2"}, CreatedAt: base,
	})
	s.Require().NoError(err)
	_, err = s.storage.CreatePool(s.ctx, &model.Pool{
		Name: "Pool B", TeamType: model.TeamTypeFemale, TeamIDs: []string{"3", "4"}, CreatedAt: base.Add(time.Minute),
	})
	s.Require().NoError(err)

	pools, err := s.storage.ListPools(s.ctx, "")
	s.Require().NoError(err)
	s.Require().Len(pools, 2)
	s.Equal("Pool A", pools[0].Name)

	pools, err = s.storage.ListPools(s.ctx, model.TeamTypeFemale)
	s.Require().NoError(err)
	s.Require().Len(pools, 1)
	s.Equal("Pool B", pools[0].Name)
	s.Equal([]string{"3", "4"}, pools[0].TeamIDs)
}

func (s *StorageSuite) TestUpdatePoolNotFound() {
	err := s.storage.UpdatePool(s.ctx, &model.Pool{ID: 999})
	s.ErrorIs(err, model.ErrPoolNotFound)
}

// Match tests

func (s *StorageSuite) TestCreateAndGetMatch() {
	created, err := s.storage.CreateMatch(s.ctx, &model.Match{
		PoolID:     1,
		Team1ID:    "1",
		Team2ID:    "2",
		TeamType:   model.TeamTypeMale,
		Status:     model.MatchUpcoming,
		MatchOrder: 1,
		CreatedAt:  time.Now().UTC(),
	})
	s.Require().NoError(err)
	s.Equal(model.MatchID(1), created.ID)

	got, err := s.storage.GetMatch(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("1", got.Team1ID)
	s.Equal(model.MatchUpcoming, got.Status)
}

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
}

func (s *StorageSuite) TestUpdateMatch() {
	created, err := s.storage.CreateMatch(s.ctx, &model.Match{
		PoolID: 1, Team1ID: "1", Team2ID: "2", Status: model.MatchUpcoming,
	})
	s.Require().NoError(err)

	created.Status = model.MatchCompleted
	created.WinnerID = "2"
	created.Score = "14-9"
	s.Require().NoError(s.storage.UpdateMatch(s.ctx, created))

	got, err := s.storage.GetMatch(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(model.MatchCompleted, got.Status)
	s.Equal("2", got.WinnerID)
	s.Equal("14-9", got.Score)
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
	err := s.storage.AppendActivityLog(s.ctx, &model.ActivityLog{Description: "first"})
	s.Require().NoError(err)
	err = s.storage.AppendActivityLog(s.ctx, &model.ActivityLog{Description: "second"})
	s.Require().NoError(err)

	logs, err := s.storage.ListActivityLogs(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(logs, 2)
	s.Equal("second", logs[0].Description)
	s.Equal("first", logs[1].Description)
}
