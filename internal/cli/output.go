package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AuthResult:
		o.printAuthResult(v)
	case SessionState:
		o.printSessionState(v)
	case Team:
		o.printTeam(v)
	case []Team:
		o.printTeams(v)
	case Pool:
		o.printPool(v)
	case []Pool:
		o.printPools(v)
	case Match:
		o.printMatch(v)
	case []Match:
		o.printMatches(v)
	case User:
		o.printUser(v)
	case []User:
		o.printUsers(v)
	case []LoginLog:
		o.printLoginLogs(v)
	case []ActivityLog:
		o.printActivityLogs(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// AuthResult is the login/session response type
type AuthResult struct {
	SessionToken string    `json:"session_token"`
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name"`
	Role         string    `json:"role"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SessionState is the idle-state response type
type SessionState struct {
	State            string    `json:"state"`
	RemainingSeconds int       `json:"remaining_seconds"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// RosterPlayer is one roster entry in team responses
type RosterPlayer struct {
	Name        string `json:"name"`
	FatherName  string `json:"father_name"`
	Aadhaar     string `json:"aadhaar"`
	Class       string `json:"class"`
	DOB         string `json:"dob"`
	PEN         string `json:"pen,omitempty"`
	UDISEStatus string `json:"udise_status,omitempty"`
}

// Team response type
type Team struct {
	ID          int64          `json:"id"`
	SchoolName  string         `json:"school_name"`
	TeamType    string         `json:"team_type"`
	CoachName   string         `json:"coach_name"`
	CoachNumber string         `json:"coach_number"`
	PlayerCount int            `json:"player_count"`
	Players     []RosterPlayer `json:"players"`
}

// Pool response type
type Pool struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	TeamType string   `json:"team_type"`
	TeamIDs  []string `json:"team_ids"`
}

// Match response type
type Match struct {
	ID          int64  `json:"id"`
	PoolID      int64  `json:"pool_id"`
	Team1ID     string `json:"team1_id"`
	Team2ID     string `json:"team2_id"`
	TeamType    string `json:"team_type"`
	Status      string `json:"status"`
	MatchOrder  int    `json:"match_order"`
	MatchNumber int    `json:"match_number,omitempty"`
	WinnerID    string `json:"winner_id,omitempty"`
	Score       string `json:"score,omitempty"`
}

// User response type
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
}

// LoginLog response type
type LoginLog struct {
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Success   bool      `json:"success"`
	Reason    string    `json:"reason,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ActivityLog response type
type ActivityLog struct {
	Username    string    `json:"username"`
	Module      string    `json:"module"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Printf("Logged in as: %s (%s)\n", a.DisplayName, a.Username)
	fmt.Printf("Role: %s\n", a.Role)
	fmt.Printf("Session expires: %s\n", a.ExpiresAt.Format(time.RFC3339))
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printSessionState(s SessionState) {
	fmt.Printf("State: %s\n", s.State)
	if s.State == "warning" {
		fmt.Printf("Auto-logout in: %ds\n", s.RemainingSeconds)
	}
	fmt.Printf("Session expires: %s\n", s.ExpiresAt.Format(time.RFC3339))
}

func (o *Output) printTeam(t Team) {
	fmt.Printf("Team %d: %s (%s)\n", t.ID, t.SchoolName, t.TeamType)
	fmt.Printf("Coach: %s (%s)\n", t.CoachName, t.CoachNumber)
	fmt.Printf("Players (%d):\n", len(t.Players))
	for i, p := range t.Players {
		fmt.Printf("  %2d. %s (class %s)\n", i+1, p.Name, p.Class)
	}
}

func (o *Output) printTeams(teams []Team) {
	if len(teams) == 0 {
		fmt.Println("No teams registered")
		return
	}
	for _, t := range teams {
		fmt.Printf("%4d  %-40s %-6s coach: %s\n", t.ID, t.SchoolName, t.TeamType, t.CoachName)
	}
}

func (o *Output) printPool(p Pool) {
	fmt.Printf("Pool %d: %s (%s)\n", p.ID, p.Name, p.TeamType)
	fmt.Printf("Teams: %s\n", strings.Join(p.TeamIDs, ", "))
}

func (o *Output) printPools(pools []Pool) {
	if len(pools) == 0 {
		fmt.Println("No pools")
		return
	}
	for _, p := range pools {
		fmt.Printf("%4d  %-30s %-6s %d teams\n", p.ID, p.Name, p.TeamType, len(p.TeamIDs))
	}
}

func (o *Output) printMatch(m Match) {
	num := "-"
	if m.MatchNumber > 0 {
		num = fmt.Sprintf("#%d", m.MatchNumber)
	}
	fmt.Printf("Match %d (%s): %s vs %s\n", m.ID, num, m.Team1ID, m.Team2ID)
	fmt.Printf("Division: %s  Pool: %d  Status: %s  Order: %d\n", m.TeamType, m.PoolID, m.Status, m.MatchOrder)
	if m.Status == "completed" {
		fmt.Printf("Winner: %s  Score: %s\n", m.WinnerID, m.Score)
	}
}

func (o *Output) printMatches(matches []Match) {
	if len(matches) == 0 {
		fmt.Println("No matches")
		return
	}
	for _, m := range matches {
		num := "  -"
		if m.MatchNumber > 0 {
			num = fmt.Sprintf("#%2d", m.MatchNumber)
		}
		line := fmt.Sprintf("%4d  %s  %-9s %s vs %s", m.ID, num, m.Status, m.Team1ID, m.Team2ID)
		if m.Status == "completed" {
			line += fmt.Sprintf("  won by %s (%s)", m.WinnerID, m.Score)
		}
		fmt.Println(line)
	}
}

func (o *Output) printUser(u User) {
	activeStr := "active"
	if !u.IsActive {
		activeStr = "disabled"
	}
	fmt.Printf("User %d: %s (%s)\n", u.ID, u.DisplayName, u.Username)
	fmt.Printf("Role: %s  Status: %s\n", u.Role, activeStr)
}

func (o *Output) printUsers(users []User) {
	if len(users) == 0 {
		fmt.Println("No users")
		return
	}
	for _, u := range users {
		activeStr := "active"
		if !u.IsActive {
			activeStr = "disabled"
		}
		fmt.Printf("%4d  %-20s %-8s %s\n", u.ID, u.Username, u.Role, activeStr)
	}
}

func (o *Output) printLoginLogs(logs []LoginLog) {
	if len(logs) == 0 {
		fmt.Println("No login activity")
		return
	}
	for _, l := range logs {
		result := "ok"
		if !l.Success {
			result = "failed"
		}
		line := fmt.Sprintf("%s  %-20s %-7s %s", l.Timestamp.Format(time.RFC3339), l.Username, l.Action, result)
		if l.Reason != "" {
			line += fmt.Sprintf(" (%s)", l.Reason)
		}
		fmt.Println(line)
	}
}

func (o *Output) printActivityLogs(logs []ActivityLog) {
	if len(logs) == 0 {
		fmt.Println("No activity")
		return
	}
	for _, l := range logs {
		fmt.Printf("%s  %-20s %s/%s: %s\n", l.Timestamp.Format(time.RFC3339), l.Username, l.Module, l.Action, l.Description)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
