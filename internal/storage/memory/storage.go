package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/khokhopl/league-console/internal/model"
	"github.com/khokhopl/league-console/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	sessions      map[string]*model.Session
	teams         map[model.TeamID]*model.Team
	pools         map[model.PoolID]*model.Pool
	matches       map[model.MatchID]*model.Match
	loginLogs     []*model.LoginLog
	activityLogs  []*model.ActivityLog

	nextUserID  model.UserID
	nextTeamID  model.TeamID
	nextPoolID  model.PoolID
	nextMatchID model.MatchID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
		sessions:      make(map[string]*model.Session),
		teams:         make(map[model.TeamID]*model.Team),
		pools:         make(map[model.PoolID]*model.Pool),
		matches:       make(map[model.MatchID]*model.Match),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.usernameIndex[user.Username]; exists {
		return nil, model.ErrUsernameExists
	}
	s.nextUserID++
	user.ID = s.nextUserID
	s.users[user.ID] = user
	s.usernameIndex[user.Username] = user.ID
	return user, nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Storage) UpdateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[user.ID]
	if !ok {
		return model.ErrUserNotFound
	}
	if existing.Username != user.Username {
		if _, taken := s.usernameIndex[user.Username]; taken {
			return model.ErrUsernameExists
		}
		delete(s.usernameIndex, existing.Username)
		s.usernameIndex[user.Username] = user.ID
	}
	s.users[user.ID] = user
	return nil
}

func (s *Storage) DeleteUser(ctx context.Context, id model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		delete(s.usernameIndex, user.Username)
	}
	delete(s.users, id)
	return nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *Storage) ListSessions(ctx context.Context) ([]*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out, nil
}

// Team operations

func (s *Storage) CreateTeam(ctx context.Context, team *model.Team) (*model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTeamID++
	team.ID = s.nextTeamID
	s.teams[team.ID] = team
	return team, nil
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, ok := s.teams[id]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	return team, nil
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Storage) UpdateTeam(ctx context.Context, team *model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[team.ID]; !ok {
		return model.ErrTeamNotFound
	}
	s.teams[team.ID] = team
	return nil
}

func (s *Storage) DeleteTeam(ctx context.Context, id model.TeamID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.teams, id)
	return nil
}

// Pool operations

func (s *Storage) CreatePool(ctx context.Context, pool *model.Pool) (*model.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPoolID++
	pool.ID = s.nextPoolID
	s.pools[pool.ID] = pool
	return pool, nil
}

func (s *Storage) GetPool(ctx context.Context, id model.PoolID) (*model.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pool, ok := s.pools[id]
	if !ok {
		return nil, model.ErrPoolNotFound
	}
	return pool, nil
}

func (s *Storage) ListPools(ctx context.Context, teamType model.TeamType) ([]*model.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Pool, 0, len(s.pools))
	for _, p := range s.pools {
		if teamType != "" && p.TeamType != teamType {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Storage) UpdatePool(ctx context.Context, pool *model.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pools[pool.ID]; !ok {
		return model.ErrPoolNotFound
	}
	s.pools[pool.ID] = pool
	return nil
}

func (s *Storage) DeletePool(ctx context.Context, id model.PoolID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pools, id)
	return nil
}

// Match operations

func (s *Storage) CreateMatch(ctx context.Context, match *model.Match) (*model.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextMatchID++
	match.ID = s.nextMatchID
	s.matches[match.ID] = match
	return match, nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return match, nil
}

func (s *Storage) ListMatches(ctx context.Context, filter model.MatchFilter) ([]*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Match, 0, len(s.matches))
	for _, m := range s.matches {
		if filter.Matches(m) {
			out = append(out, m)
		}
	}
	model.SortByOrder(out)
	return out, nil
}

func (s *Storage) UpdateMatch(ctx context.Context, match *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[match.ID]; !ok {
		return model.ErrMatchNotFound
	}
	s.matches[match.ID] = match
	return nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, id)
	return nil
}

func (s *Storage) DeleteMatchesByPool(ctx context.Context, poolID model.PoolID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, m := range s.matches {
		if m.PoolID == poolID {
			delete(s.matches, id)
		}
	}
	return nil
}

// Log operations

func (s *Storage) AppendLoginLog(ctx context.Context, entry *model.LoginLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginLogs = append(s.loginLogs, entry)
	return nil
}

func (s *Storage) AppendActivityLog(ctx context.Context, entry *model.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activityLogs = append(s.activityLogs, entry)
	return nil
}

func (s *Storage) ListLoginLogs(ctx context.Context, limit int) ([]*model.LoginLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.LoginLog, len(s.loginLogs))
	copy(out, s.loginLogs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Storage) ListActivityLogs(ctx context.Context, limit int) ([]*model.ActivityLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.ActivityLog, len(s.activityLogs))
	copy(out, s.activityLogs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
