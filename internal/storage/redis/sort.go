package redis

import (
	"sort"

	"github.com/khokhopl/league-console/internal/model"
)

// List ordering mirrors the backing tables: teams and pools by creation
// time ascending, users newest first.

func sortUsersByCreatedDesc(users []*model.User) {
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
}

func sortTeamsByCreatedAsc(teams []*model.Team) {
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].CreatedAt.Equal(teams[j].CreatedAt) {
			return teams[i].ID < teams[j].ID
		}
		return teams[i].CreatedAt.Before(teams[j].CreatedAt)
	})
}

func sortPoolsByCreatedAsc(pools []*model.Pool) {
	sort.Slice(pools, func(i, j int) bool {
		if pools[i].CreatedAt.Equal(pools[j].CreatedAt) {
			return pools[i].ID < pools[j].ID
		}
		return pools[i].CreatedAt.Before(pools[j].CreatedAt)
	})
}
