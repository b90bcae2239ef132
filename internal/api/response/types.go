package response

import (
	"time"

	"github.com/khokhopl/league-console/internal/model"
)

// User represents a console account in API responses.
// The password hash never leaves the server.
type User struct {
	ID          int64               `json:"id"`
	Username    string              `json:"username"`
	DisplayName string              `json:"display_name"`
	Role        string              `json:"role"`
	Permissions model.PermissionSet `json:"permissions"`
	IsActive    bool                `json:"is_active"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:          int64(u.ID),
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		Permissions: u.Permissions,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// AuthResponse is the response for the login endpoint
type AuthResponse struct {
	SessionToken string              `json:"session_token"`
	UserID       int64               `json:"user_id"`
	Username     string              `json:"username"`
	DisplayName  string              `json:"display_name"`
	Role         string              `json:"role"`
	Permissions  model.PermissionSet `json:"permissions"`
	ExpiresAt    time.Time           `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *model.Session) AuthResponse {
	return AuthResponse{
		SessionToken: s.Token,
		UserID:       int64(s.UserID),
		Username:     s.Username,
		DisplayName:  s.DisplayName,
		Role:         string(s.Role),
		Permissions:  s.Permissions,
		ExpiresAt:    s.ExpiresAt,
	}
}

// SessionState reports idle-timeout progress for the current session
type SessionState struct {
	State            string    `json:"state"`
	RemainingSeconds int       `json:"remaining_seconds"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// Team represents a registered team in API responses
type Team struct {
	ID          int64          `json:"id"`
	SchoolName  string         `json:"school_name"`
	TeamType    string         `json:"team_type"`
	CoachName   string         `json:"coach_name"`
	CoachNumber string         `json:"coach_number"`
	PlayerCount int            `json:"player_count"`
	Players     []model.Player `json:"players"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TeamFromModel converts a model.Team to a response Team
func TeamFromModel(t *model.Team) Team {
	return Team{
		ID:          int64(t.ID),
		SchoolName:  t.SchoolName,
		TeamType:    string(t.TeamType),
		CoachName:   t.CoachName,
		CoachNumber: t.CoachNumber,
		PlayerCount: t.PlayerCount,
		Players:     t.Players,
		CreatedAt:   t.CreatedAt,
	}
}

// TeamsFromModel converts a slice of teams
func TeamsFromModel(teams []*model.Team) []Team {
	out := make([]Team, len(teams))
	for i, t := range teams {
		out[i] = TeamFromModel(t)
	}
	return out
}

// Pool represents a pool in API responses
type Pool struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TeamType  string    `json:"team_type"`
	TeamIDs   []string  `json:"team_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// PoolFromModel converts a model.Pool to a response Pool
func PoolFromModel(p *model.Pool) Pool {
	teamIDs := p.TeamIDs
	if teamIDs == nil {
		teamIDs = []string{}
	}
	return Pool{
		ID:        int64(p.ID),
		Name:      p.Name,
		TeamType:  string(p.TeamType),
		TeamIDs:   teamIDs,
		CreatedAt: p.CreatedAt,
	}
}

// PoolsFromModel converts a slice of pools
func PoolsFromModel(pools []*model.Pool) []Pool {
	out := make([]Pool, len(pools))
	for i, p := range pools {
		out[i] = PoolFromModel(p)
	}
	return out
}

// Match represents a match in API responses
type Match struct {
	ID          int64     `json:"id"`
	PoolID      int64     `json:"pool_id"`
	Team1ID     string    `json:"team1_id"`
	Team2ID     string    `json:"team2_id"`
	TeamType    string    `json:"team_type"`
	Status      string    `json:"status"`
	MatchOrder  int       `json:"match_order"`
	MatchNumber int       `json:"match_number,omitempty"`
	WinnerID    string    `json:"winner_id,omitempty"`
	Score       string    `json:"score,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MatchFromModel converts a model.Match to a response Match
func MatchFromModel(m *model.Match) Match {
	return Match{
		ID:          int64(m.ID),
		PoolID:      int64(m.PoolID),
		Team1ID:     m.Team1ID,
		Team2ID:     m.Team2ID,
		TeamType:    string(m.TeamType),
		Status:      string(m.Status),
		MatchOrder:  m.MatchOrder,
		MatchNumber: m.MatchNumber,
		WinnerID:    m.WinnerID,
		Score:       m.Score,
		CreatedAt:   m.CreatedAt,
	}
}

// MatchesFromModel converts a slice of matches
func MatchesFromModel(matches []*model.Match) []Match {
	out := make([]Match, len(matches))
	for i, m := range matches {
		out[i] = MatchFromModel(m)
	}
	return out
}

// LoginLog represents a login audit record in API responses
type LoginLog struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Success   bool      `json:"success"`
	Reason    string    `json:"reason,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// LoginLogFromModel converts a model.LoginLog
func LoginLogFromModel(l *model.LoginLog) LoginLog {
	return LoginLog{
		UserID:    int64(l.UserID),
		Username:  l.Username,
		Action:    string(l.Action),
		Success:   l.Success,
		Reason:    string(l.Reason),
		IPAddress: l.IPAddress,
		UserAgent: l.UserAgent,
		Timestamp: l.Timestamp,
	}
}

// LoginLogsFromModel converts a slice of login logs
func LoginLogsFromModel(logs []*model.LoginLog) []LoginLog {
	out := make([]LoginLog, len(logs))
	for i, l := range logs {
		out[i] = LoginLogFromModel(l)
	}
	return out
}

// ActivityLog represents an activity audit record in API responses
type ActivityLog struct {
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username"`
	Module      string    `json:"module"`
	Action      string    `json:"action"`
	EntityID    string    `json:"entity_id,omitempty"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// ActivityLogFromModel converts a model.ActivityLog
func ActivityLogFromModel(l *model.ActivityLog) ActivityLog {
	return ActivityLog{
		UserID:      int64(l.UserID),
		Username:    l.Username,
		Module:      string(l.Module),
		Action:      l.Action,
		EntityID:    l.EntityID,
		Description: l.Description,
		Timestamp:   l.Timestamp,
	}
}

// ActivityLogsFromModel converts a slice of activity logs
func ActivityLogsFromModel(logs []*model.ActivityLog) []ActivityLog {
	out := make([]ActivityLog, len(logs))
	for i, l := range logs {
		out[i] = ActivityLogFromModel(l)
	}
	return out
}
