package model

import (
	"fmt"
	"regexp"
	"time"
)

// TeamID uniquely identifies a registered team
type TeamID int64

// TeamType is the gender division a team competes in
type TeamType string

const (
	TeamTypeMale   TeamType = "male"
	TeamTypeFemale TeamType = "female"
)

// Valid reports whether the team type is a known division
func (t TeamType) Valid() bool {
	return t == TeamTypeMale || t == TeamTypeFemale
}

// UDISEStatus is a player's registration verification flag
type UDISEStatus string

const (
	UDISEVerified      UDISEStatus = "verified"
	UDISEPending       UDISEStatus = "pending"
	UDISENotApplicable UDISEStatus = "not_applicable"
	UDISEUnset         UDISEStatus = ""
)

// RosterSize is the fixed number of players on a team sheet
const RosterSize = 12

// Player is one entry on a team's roster
type Player struct {
	Name        string      `json:"name"`
	FatherName  string      `json:"father_name"`
	Aadhaar     string      `json:"aadhaar"` // 12-digit numeric string
	Class       string      `json:"class"`
	DOB         string      `json:"dob"`
	PEN         string      `json:"pen,omitempty"`
	UDISEStatus UDISEStatus `json:"udise_status,omitempty"`
}

// Team is a registered school team with its roster
type Team struct {
	ID          TeamID
	SchoolName  string
	TeamType    TeamType
	CoachName   string
	CoachNumber string
	PlayerCount int
	Players     []Player
	CreatedAt   time.Time
}

var aadhaarPattern = regexp.MustCompile(`^\d{12}$`)

// Validate checks registration fields and the full roster
func (t *Team) Validate() error {
	if t.SchoolName == "" {
		return NewValidationError("school_name", "school name is required")
	}
	if !t.TeamType.Valid() {
		return NewValidationError("team_type", "team type must be male or female")
	}
	if t.CoachName == "" {
		return NewValidationError("coach_name", "coach name is required")
	}
	if t.CoachNumber == "" {
		return NewValidationError("coach_number", "coach number is required")
	}
	if len(t.Players) != RosterSize {
		return NewValidationError("players", fmt.Sprintf("roster must have exactly %d players", RosterSize))
	}
	for i, p := range t.Players {
		if err := p.Validate(i + 1); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single roster entry; num is the 1-based player number
// used in the error message.
func (p Player) Validate(num int) error {
	field := fmt.Sprintf("player%d", num)
	if p.Name == "" {
		return NewValidationError(field, fmt.Sprintf("player %d: name is required", num))
	}
	if p.FatherName == "" {
		return NewValidationError(field, fmt.Sprintf("player %d: father's name is required", num))
	}
	if !aadhaarPattern.MatchString(p.Aadhaar) {
		return NewValidationError(field, fmt.Sprintf("player %d: valid 12-digit aadhaar number is required", num))
	}
	if p.Class == "" {
		return NewValidationError(field, fmt.Sprintf("player %d: class is required", num))
	}
	if p.DOB == "" {
		return NewValidationError(field, fmt.Sprintf("player %d: date of birth is required", num))
	}
	switch p.UDISEStatus {
	case UDISEVerified, UDISEPending, UDISENotApplicable, UDISEUnset:
	default:
		return NewValidationError(field, fmt.Sprintf("player %d: unknown UDISE status", num))
	}
	return nil
}
