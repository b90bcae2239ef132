package model

import "time"

// PoolID uniquely identifies a pool
type PoolID int64

// MinPoolTeams is the smallest number of teams a pool may reference
const MinPoolTeams = 2

// Pool is a named grouping of teams within one division.
// Team references are stored as strings, matching the backing tables.
type Pool struct {
	ID        PoolID
	Name      string
	TeamType  TeamType
	TeamIDs   []string
	CreatedAt time.Time
}

// Validate checks pool fields at create/edit time
func (p *Pool) Validate() error {
	if p.Name == "" {
		return NewValidationError("name", "pool name is required")
	}
	if !p.TeamType.Valid() {
		return NewValidationError("team_type", "team type must be male or female")
	}
	if len(p.TeamIDs) < MinPoolTeams {
		return NewValidationError("team_ids", "please select at least 2 teams")
	}
	return nil
}

// HasTeam reports whether the pool references the given team id
func (p *Pool) HasTeam(teamID string) bool {
	for _, id := range p.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}
