package request

import "github.com/khokhopl/league-console/internal/model"

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TeamRequest is the request body for registering or editing a team
type TeamRequest struct {
	SchoolName  string         `json:"school_name"`
	TeamType    string         `json:"team_type"`
	CoachName   string         `json:"coach_name"`
	CoachNumber string         `json:"coach_number"`
	Players     []model.Player `json:"players"`
}

// CreatePoolRequest is the request body for creating a pool
type CreatePoolRequest struct {
	Name     string   `json:"name"`
	TeamType string   `json:"team_type"`
	TeamIDs  []string `json:"team_ids"`
}

// UpdatePoolRequest is the request body for editing a pool.
// The division is fixed at creation and cannot be changed.
type UpdatePoolRequest struct {
	Name    string   `json:"name"`
	TeamIDs []string `json:"team_ids"`
}

// FixMatchRequest is the request body for fixing a match within a pool
type FixMatchRequest struct {
	Team1ID string `json:"team1_id"`
	Team2ID string `json:"team2_id"`
}

// SaveOrderRequest is the request body for saving the upcoming match order
type SaveOrderRequest struct {
	TeamType string  `json:"team_type"`
	MatchIDs []int64 `json:"match_ids"`
}

// ReorderRequest is the request body for moving one match to a new position
type ReorderRequest struct {
	NewIndex int `json:"new_index"`
}

// CompleteMatchRequest is the request body for recording a match result
type CompleteMatchRequest struct {
	WinnerID string `json:"winner_id"`
	Score    string `json:"score"`
}

// EditResultRequest is the request body for correcting a completed
// match. All fields are required; the edit form submits the full result.
type EditResultRequest struct {
	MatchNumber int    `json:"match_number"`
	WinnerID    string `json:"winner_id"`
	Score       string `json:"score"`
}

// CreateUserRequest is the request body for creating a console account
type CreateUserRequest struct {
	Username    string              `json:"username"`
	Password    string              `json:"password"`
	DisplayName string              `json:"display_name"`
	Role        string              `json:"role"`
	Permissions model.PermissionSet `json:"permissions,omitempty"`
}

// UpdateUserRequest is the request body for editing a console account.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	DisplayName *string             `json:"display_name,omitempty"`
	Role        *string             `json:"role,omitempty"`
	Permissions model.PermissionSet `json:"permissions,omitempty"`
	Password    *string             `json:"password,omitempty"`
}

// ToggleStatusRequest is the request body for enabling/disabling an account
type ToggleStatusRequest struct {
	IsActive bool `json:"is_active"`
}
