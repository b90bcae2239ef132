package model

import (
	"sort"
	"time"
)

// MatchID uniquely identifies a match
type MatchID int64

// MatchStatus is a match's position in its lifecycle
type MatchStatus string

const (
	MatchUpcoming  MatchStatus = "upcoming"
	MatchOngoing   MatchStatus = "ongoing"
	MatchCompleted MatchStatus = "completed"
)

// CanTransition reports whether a status change is legal.
// upcoming may go to ongoing or straight to completed; ongoing may only
// complete; completed is terminal (results are edited in place, not reset).
func (s MatchStatus) CanTransition(to MatchStatus) bool {
	switch s {
	case MatchUpcoming:
		return to == MatchOngoing || to == MatchCompleted
	case MatchOngoing:
		return to == MatchCompleted
	default:
		return false
	}
}

// Match is a fixture between two teams from a pool.
// MatchOrder is the mutable display position among not-yet-completed
// matches. MatchNumber is permanent once assigned (0 means unassigned)
// and is never recomputed from position.
type Match struct {
	ID          MatchID
	PoolID      PoolID
	Team1ID     string
	Team2ID     string
	TeamType    TeamType
	Status      MatchStatus
	MatchOrder  int
	MatchNumber int
	WinnerID    string
	Score       string
	CreatedAt   time.Time
}

// IsCompleted reports whether the match has a recorded result
func (m *Match) IsCompleted() bool {
	return m.Status == MatchCompleted
}

// HasTeam reports whether the given team id is one of the two participants
func (m *Match) HasTeam(teamID string) bool {
	return m.Team1ID == teamID || m.Team2ID == teamID
}

// MatchFilter selects matches in list operations. Zero values match all.
type MatchFilter struct {
	TeamType TeamType
	Status   MatchStatus
	PoolID   PoolID
}

// Matches reports whether a match passes the filter
func (f MatchFilter) Matches(m *Match) bool {
	if f.TeamType != "" && m.TeamType != f.TeamType {
		return false
	}
	if f.Status != "" && m.Status != f.Status {
		return false
	}
	if f.PoolID != 0 && m.PoolID != f.PoolID {
		return false
	}
	return true
}

// The partition helpers below are pure functions over the full match
// collection; there is no separate storage split between upcoming and
// completed matches.

// UpcomingMatches returns matches that have not completed (upcoming or
// ongoing), sorted by match order.
func UpcomingMatches(matches []*Match) []*Match {
	var out []*Match
	for _, m := range matches {
		if !m.IsCompleted() {
			out = append(out, m)
		}
	}
	SortByOrder(out)
	return out
}

// CompletedMatches returns matches with a recorded result
func CompletedMatches(matches []*Match) []*Match {
	var out []*Match
	for _, m := range matches {
		if m.IsCompleted() {
			out = append(out, m)
		}
	}
	return out
}

// SortByOrder sorts matches by match order ascending, in place
func SortByOrder(matches []*Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchOrder < matches[j].MatchOrder
	})
}

// MaxOrder returns the highest match order in the collection, 0 if empty
func MaxOrder(matches []*Match) int {
	max := 0
	for _, m := range matches {
		if m.MatchOrder > max {
			max = m.MatchOrder
		}
	}
	return max
}

// MaxCompletedNumber returns the highest permanent match number among
// completed matches, 0 if there are none. Completed matches consume the
// low end of the number line; new numbering continues above them.
func MaxCompletedNumber(matches []*Match) int {
	max := 0
	for _, m := range matches {
		if !m.IsCompleted() {
			continue
		}
		n := m.MatchNumber
		if n == 0 {
			n = m.MatchOrder
		}
		if n > max {
			max = n
		}
	}
	return max
}

// MoveToIndex returns a copy of ids with the given id moved to newIndex.
// Out-of-range indexes clamp to the ends. If id is absent the input order
// is returned unchanged.
func MoveToIndex(ids []MatchID, id MatchID, newIndex int) []MatchID {
	from := -1
	for i, v := range ids {
		if v == id {
			from = i
			break
		}
	}
	out := make([]MatchID, 0, len(ids))
	out = append(out, ids...)
	if from == -1 {
		return out
	}
	out = append(out[:from], out[from+1:]...)
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(out) {
		newIndex = len(out)
	}
	out = append(out[:newIndex], append([]MatchID{id}, out[newIndex:]...)...)
	return out
}
