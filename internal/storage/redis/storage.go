package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khokhopl/league-console/internal/dependencies/clock"
	"github.com/khokhopl/league-console/internal/model"
	"github.com/khokhopl/league-console/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
	clock  clock.Clock
}

// New creates a new Redis storage instance
func New(cfg Config, clk clock.Clock) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
		clock:  clk,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, clk clock.Clock) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
		clock:  clk,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	// Claim the username before assigning an id; usernames are unique
	claimed, err := s.client.SetNX(ctx, usernameIndexKey(user.Username), "0", 0).Result()
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, model.ErrUsernameExists
	}

	id, err := s.client.Incr(ctx, userSeqKey()).Result()
	if err != nil {
		return nil, err
	}
	user.ID = model.UserID(id)

	data, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, usernameIndexKey(user.Username), strconv.FormatInt(id, 10), 0)
	pipe.SAdd(ctx, usersIndexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	idStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, model.ErrUserNotFound
	}
	return s.GetUser(ctx, model.UserID(id))
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	ids, err := s.client.SMembers(ctx, usersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*model.User, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		user, err := s.GetUser(ctx, model.UserID(id))
		if errors.Is(err, model.ErrUserNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	sortUsersByCreatedDesc(out)
	return out, nil
}

func (s *Storage) UpdateUser(ctx context.Context, user *model.User) error {
	existing, err := s.GetUser(ctx, user.ID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	if existing.Username != user.Username {
		pipe.Del(ctx, usernameIndexKey(existing.Username))
		pipe.Set(ctx, usernameIndexKey(user.Username), strconv.FormatInt(int64(user.ID), 10), 0)
	}
	pipe.Set(ctx, userKey(user.ID), data, 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) DeleteUser(ctx context.Context, id model.UserID) error {
	user, err := s.GetUser(ctx, id)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, userKey(id))
	pipe.Del(ctx, usernameIndexKey(user.Username))
	pipe.SRem(ctx, usersIndexKey(), int64(id))
	_, err = pipe.Exec(ctx)
	return err
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := s.cfg.SessionTTL
	if remaining := session.ExpiresAt.Sub(s.clock.Now()); remaining > 0 && remaining < ttl {
		ttl = remaining
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, sessionKey(session.Token), data, ttl)
	pipe.SAdd(ctx, sessionsIndexKey(), session.Token)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, sessionKey(token))
	pipe.SRem(ctx, sessionsIndexKey(), token)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListSessions(ctx context.Context) ([]*model.Session, error) {
	tokens, err := s.client.SMembers(ctx, sessionsIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*model.Session, 0, len(tokens))
	for _, token := range tokens {
		session, err := s.GetSession(ctx, token)
		if errors.Is(err, model.ErrSessionNotFound) {
			// Record expired via TTL; drop the stale index entry
			_ = s.client.SRem(ctx, sessionsIndexKey(), token).Err()
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, session)
	}
	return out, nil
}

// Team operations

func (s *Storage) CreateTeam(ctx context.Context, team *model.Team) (*model.Team, error) {
	id, err := s.client.Incr(ctx, teamSeqKey()).Result()
	if err != nil {
		return nil, err
	}
	team.ID = model.TeamID(id)

	data, err := json.Marshal(team)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, teamKey(team.ID), data, 0)
	pipe.SAdd(ctx, teamsIndexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	data, err := s.client.Get(ctx, teamKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTeamNotFound
		}
		return nil, err
	}

	var team model.Team
	if err := json.Unmarshal(data, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	ids, err := s.client.SMembers(ctx, teamsIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*model.Team, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		team, err := s.GetTeam(ctx, model.TeamID(id))
		if errors.Is(err, model.ErrTeamNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, team)
	}
	sortTeamsByCreatedAsc(out)
	return out, nil
}

func (s *Storage) UpdateTeam(ctx context.Context, team *model.Team) error {
	exists, err := s.client.Exists(ctx, teamKey(team.ID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrTeamNotFound
	}

	data, err := json.Marshal(team)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, teamKey(team.ID), data, 0).Err()
}

func (s *Storage) DeleteTeam(ctx context.Context, id model.TeamID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, teamKey(id))
	pipe.SRem(ctx, teamsIndexKey(), int64(id))
	_, err := pipe.Exec(ctx)
	return err
}

// Pool operations

func (s *Storage) CreatePool(ctx context.Context, pool *model.Pool) (*model.Pool, error) {
	id, err := s.client.Incr(ctx, poolSeqKey()).Result()
	if err != nil {
		return nil, err
	}
	pool.ID = model.PoolID(id)

	data, err := json.Marshal(pool)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, poolKey(pool.ID), data, 0)
	pipe.SAdd(ctx, poolsIndexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return pool, nil
}

func (s *Storage) GetPool(ctx context.Context, id model.PoolID) (*model.Pool, error) {
	data, err := s.client.Get(ctx, poolKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPoolNotFound
		}
		return nil, err
	}

	var pool model.Pool
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, err
	}
	return &pool, nil
}

func (s *Storage) ListPools(ctx context.Context, teamType model.TeamType) ([]*model.Pool, error) {
	ids, err := s.client.SMembers(ctx, poolsIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*model.Pool, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		pool, err := s.GetPool(ctx, model.PoolID(id))
		if errors.Is(err, model.ErrPoolNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if teamType != "" && pool.TeamType != teamType {
			continue
		}
		out = append(out, pool)
	}
	sortPoolsByCreatedAsc(out)
	return out, nil
}

func (s *Storage) UpdatePool(ctx context.Context, pool *model.Pool) error {
	exists, err := s.client.Exists(ctx, poolKey(pool.ID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrPoolNotFound
	}

	data, err := json.Marshal(pool)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, poolKey(pool.ID), data, 0).Err()
}

func (s *Storage) DeletePool(ctx context.Context, id model.PoolID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, poolKey(id))
	pipe.SRem(ctx, poolsIndexKey(), int64(id))
	_, err := pipe.Exec(ctx)
	return err
}

// Match operations

func (s *Storage) CreateMatch(ctx context.Context, match *model.Match) (*model.Match, error) {
	id, err := s.client.Incr(ctx, matchSeqKey()).Result()
	if err != nil {
		return nil, err
	}
	match.ID = model.MatchID(id)

	data, err := json.Marshal(match)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, matchKey(match.ID), data, 0)
	pipe.SAdd(ctx, matchesIndexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	data, err := s.client.Get(ctx, matchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	var match model.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Storage) ListMatches(ctx context.Context, filter model.MatchFilter) ([]*model.Match, error) {
	all, err := s.listAllMatches(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Match, 0, len(all))
	for _, m := range all {
		if filter.Matches(m) {
			out = append(out, m)
		}
	}
	model.SortByOrder(out)
	return out, nil
}

func (s *Storage) listAllMatches(ctx context.Context) ([]*model.Match, error) {
	ids, err := s.client.SMembers(ctx, matchesIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*model.Match, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		match, err := s.GetMatch(ctx, model.MatchID(id))
		if errors.Is(err, model.ErrMatchNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, match)
	}
	return out, nil
}

func (s *Storage) UpdateMatch(ctx context.Context, match *model.Match) error {
	exists, err := s.client.Exists(ctx, matchKey(match.ID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrMatchNotFound
	}

	data, err := json.Marshal(match)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, matchKey(match.ID), data, 0).Err()
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, matchKey(id))
	pipe.SRem(ctx, matchesIndexKey(), int64(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) DeleteMatchesByPool(ctx context.Context, poolID model.PoolID) error {
	all, err := s.listAllMatches(ctx)
	if err != nil {
		return err
	}

	for _, m := range all {
		if m.PoolID != poolID {
			continue
		}
		if err := s.DeleteMatch(ctx, m.ID); err != nil {
			return err
		}
	}
	return nil
}

// Log operations

func (s *Storage) AppendLoginLog(ctx context.Context, entry *model.LoginLog) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.client.LPush(ctx, loginLogsKey(), data).Err()
}

func (s *Storage) AppendActivityLog(ctx context.Context, entry *model.ActivityLog) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.client.LPush(ctx, activityLogsKey(), data).Err()
}

func (s *Storage) ListLoginLogs(ctx context.Context, limit int) ([]*model.LoginLog, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	raw, err := s.client.LRange(ctx, loginLogsKey(), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*model.LoginLog, 0, len(raw))
	for _, data := range raw {
		var entry model.LoginLog
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			return nil, err
		}
		out = append(out, &entry)
	}
	return out, nil
}

func (s *Storage) ListActivityLogs(ctx context.Context, limit int) ([]*model.ActivityLog, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	raw, err := s.client.LRange(ctx, activityLogsKey(), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*model.ActivityLog, 0, len(raw))
	for _, data := range raw {
		var entry model.ActivityLog
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			return nil, err
		}
		out = append(out, &entry)
	}
	return out, nil
}
