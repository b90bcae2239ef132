package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, MatchUpcoming.CanTransition(MatchOngoing))
	assert.True(t, MatchUpcoming.CanTransition(MatchCompleted))
	assert.True(t, MatchOngoing.CanTransition(MatchCompleted))

	assert.False(t, MatchOngoing.CanTransition(MatchUpcoming))
	assert.False(t, MatchCompleted.CanTransition(MatchUpcoming))
	assert.False(t, MatchCompleted.CanTransition(MatchOngoing))
	assert.False(t, MatchCompleted.CanTransition(MatchCompleted))
}

func TestMatchFilter(t *testing.T) {
	m := &Match{TeamType: TeamTypeMale, Status: MatchUpcoming, PoolID: 3}

	assert.True(t, MatchFilter{}.Matches(m))
	assert.True(t, MatchFilter{TeamType: TeamTypeMale}.Matches(m))
	assert.True(t, MatchFilter{TeamType: TeamTypeMale, Status: MatchUpcoming, PoolID: 3}.Matches(m))

	assert.False(t, MatchFilter{TeamType: TeamTypeFemale}.Matches(m))
	assert.False(t, MatchFilter{Status: MatchCompleted}.Matches(m))
	assert.False(t, MatchFilter{PoolID: 4}.Matches(m))
}

func TestUpcomingIncludesOngoing(t *testing.T) {
	matches := []*Match{
		{ID: 1, Status: MatchCompleted, MatchOrder: 1},
		{ID: 2, Status: MatchOngoing, MatchOrder: 3},
		{ID: 3, Status: MatchUpcoming, MatchOrder: 2},
	}

	upcoming := UpcomingMatches(matches)
	assert.Len(t, upcoming, 2)
	// Sorted by order: id 3 (order 2) before id 2 (order 3)
	assert.Equal(t, MatchID(3), upcoming[0].ID)
	assert.Equal(t, MatchID(2), upcoming[1].ID)

	completed := CompletedMatches(matches)
	assert.Len(t, completed, 1)
	assert.Equal(t, MatchID(1), completed[0].ID)
}

func TestMaxOrder(t *testing.T) {
	assert.Equal(t, 0, MaxOrder(nil))
	assert.Equal(t, 7, MaxOrder([]*Match{
		{MatchOrder: 3},
		{MatchOrder: 7},
		{MatchOrder: 5},
	}))
}

func TestMaxCompletedNumber(t *testing.T) {
	assert.Equal(t, 0, MaxCompletedNumber(nil))

	matches := []*Match{
		{Status: MatchCompleted, MatchNumber: 4},
		{Status: MatchCompleted, MatchNumber: 2},
		{Status: MatchUpcoming, MatchNumber: 9}, // not completed, ignored
	}
	assert.Equal(t, 4, MaxCompletedNumber(matches))
}

func TestMaxCompletedNumberFallsBackToOrder(t *testing.T) {
	// Legacy rows completed before numbering existed carry number 0
	matches := []*Match{
		{Status: MatchCompleted, MatchNumber: 0, MatchOrder: 6},
		{Status: MatchCompleted, MatchNumber: 3, MatchOrder: 1},
	}
	assert.Equal(t, 6, MaxCompletedNumber(matches))
}

func TestMoveToIndex(t *testing.T) {
	ids := []MatchID{1, 2, 3, 4}

	assert.Equal(t, []MatchID{2, 3, 1, 4}, MoveToIndex(ids, 1, 2))
	assert.Equal(t, []MatchID{4, 1, 2, 3}, MoveToIndex(ids, 4, 0))
	// Input unchanged
	assert.Equal(t, []MatchID{1, 2, 3, 4}, ids)
}

func TestMoveToIndexClampsAndIgnoresMissing(t *testing.T) {
	ids := []MatchID{1, 2, 3}

	assert.Equal(t, []MatchID{2, 3, 1}, MoveToIndex(ids, 1, 99))
	assert.Equal(t, []MatchID{3, 1, 2}, MoveToIndex(ids, 3, -5))
	assert.Equal(t, []MatchID{1, 2, 3}, MoveToIndex(ids, 42, 1))
}
