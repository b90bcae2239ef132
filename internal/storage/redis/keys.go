package redis

import (
	"fmt"

	"github.com/khokhopl/league-console/internal/model"
)

// Key prefix for all console data
const keyPrefix = "khopl"

// Key generation functions for each table

func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%d", keyPrefix, id)
}

func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

func usersIndexKey() string {
	return fmt.Sprintf("%s:idx:users", keyPrefix)
}

func sessionKey(token string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, token)
}

func sessionsIndexKey() string {
	return fmt.Sprintf("%s:idx:sessions", keyPrefix)
}

func teamKey(id model.TeamID) string {
	return fmt.Sprintf("%s:team:%d", keyPrefix, id)
}

func teamsIndexKey() string {
	return fmt.Sprintf("%s:idx:teams", keyPrefix)
}

func poolKey(id model.PoolID) string {
	return fmt.Sprintf("%s:pool:%d", keyPrefix, id)
}

func poolsIndexKey() string {
	return fmt.Sprintf("%s:idx:pools", keyPrefix)
}

func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%d", keyPrefix, id)
}

func matchesIndexKey() string {
	return fmt.Sprintf("%s:idx:matches", keyPrefix)
}

// Sequence keys for server-assigned ids

func userSeqKey() string {
	return fmt.Sprintf("%s:seq:user", keyPrefix)
}

func teamSeqKey() string {
	return fmt.Sprintf("%s:seq:team", keyPrefix)
}

func poolSeqKey() string {
	return fmt.Sprintf("%s:seq:pool", keyPrefix)
}

func matchSeqKey() string {
	return fmt.Sprintf("%s:seq:match", keyPrefix)
}

// Append-only log keys

func loginLogsKey() string {
	return fmt.Sprintf("%s:login_logs", keyPrefix)
}

func activityLogsKey() string {
	return fmt.Sprintf("%s:activity_logs", keyPrefix)
}
