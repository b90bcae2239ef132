package storage

import (
	"context"

	"github.com/khokhopl/league-console/internal/model"
)

// Storage defines the interface for data persistence.
// Each call is an independent round trip: multi-step sequences (such as
// deleting a pool's matches before the pool itself) are ordered by the
// caller, not wrapped in a transaction.
type Storage interface {
	// User operations. CreateUser assigns the id.
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id model.UserID) error

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
	ListSessions(ctx context.Context) ([]*model.Session, error)

	// Team operations. CreateTeam assigns the id.
	CreateTeam(ctx context.Context, team *model.Team) (*model.Team, error)
	GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error)
	ListTeams(ctx context.Context) ([]*model.Team, error)
	UpdateTeam(ctx context.Context, team *model.Team) error
	DeleteTeam(ctx context.Context, id model.TeamID) error

	// Pool operations. CreatePool assigns the id.
	CreatePool(ctx context.Context, pool *model.Pool) (*model.Pool, error)
	GetPool(ctx context.Context, id model.PoolID) (*model.Pool, error)
	ListPools(ctx context.Context, teamType model.TeamType) ([]*model.Pool, error)
	UpdatePool(ctx context.Context, pool *model.Pool) error
	DeletePool(ctx context.Context, id model.PoolID) error

	// Match operations. CreateMatch assigns the id.
	CreateMatch(ctx context.Context, match *model.Match) (*model.Match, error)
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	ListMatches(ctx context.Context, filter model.MatchFilter) ([]*model.Match, error)
	UpdateMatch(ctx context.Context, match *model.Match) error
	DeleteMatch(ctx context.Context, id model.MatchID) error
	DeleteMatchesByPool(ctx context.Context, poolID model.PoolID) error

	// Audit logs, append-only. Never mutated or deleted.
	AppendLoginLog(ctx context.Context, entry *model.LoginLog) error
	AppendActivityLog(ctx context.Context, entry *model.ActivityLog) error
	ListLoginLogs(ctx context.Context, limit int) ([]*model.LoginLog, error)
	ListActivityLogs(ctx context.Context, limit int) ([]*model.ActivityLog, error)
}
