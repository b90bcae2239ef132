package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolValidate(t *testing.T) {
	p := &Pool{Name: "Pool A", TeamType: TeamTypeFemale, TeamIDs: []string{"5", "9"}}
	require.NoError(t, p.Validate())
}

func TestPoolValidateRejectsTooFewTeams(t *testing.T) {
	p := &Pool{Name: "Pool A", TeamType: TeamTypeMale, TeamIDs: []string{"5"}}

	err := p.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "team_ids", ve.Field)
}

func TestPoolValidateRejectsMissingName(t *testing.T) {
	p := &Pool{TeamType: TeamTypeMale, TeamIDs: []string{"1", "2"}}
	assert.Error(t, p.Validate())
}

func TestPoolHasTeam(t *testing.T) {
	p := &Pool{TeamIDs: []string{"5", "9"}}
	assert.True(t, p.HasTeam("5"))
	assert.True(t, p.HasTeam("9"))
	assert.False(t, p.HasTeam("7"))
	// Team ids are strings; no numeric coercion happens
	assert.False(t, p.HasTeam("05"))
}
