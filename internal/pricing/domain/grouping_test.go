package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRowsByPlanOrder(t *testing.T) {
	young := AgeGroupInfo{ID: 1, Name: "Junior", MinAge: 5}
	old := AgeGroupInfo{ID: 2, Name: "Senior", MinAge: 60}
	ageGroups := map[int64]AgeGroupInfo{1: young, 2: old}

	cells := []PriceCell{
		{PlanName: "Gold", Role: RoleAddOn, AgeGroupID: 1, TermID: 100, Price: 5},
		{PlanName: "Gold", Role: RolePrimary, AgeGroupID: 2, TermID: 100, Price: 30},
		{PlanName: "Bronze", Role: RolePrimary, AgeGroupID: 1, TermID: 100, Price: 10},
	}

	groups := GroupRowsByPlan(cells, ageGroups)
	require.Len(t, groups, 2)

	assert.Equal(t, "Bronze", groups[0].PlanName)
	assert.Equal(t, "Gold", groups[1].PlanName)

	gold := groups[1]
	require.Len(t, gold.Rows, 2)
	assert.Equal(t, RolePrimary, gold.Rows[0].Key.Role)
	assert.Equal(t, RoleAddOn, gold.Rows[1].Key.Role)
}

func TestGroupRowsByPlanMinAgeOrder(t *testing.T) {
	ageGroups := map[int64]AgeGroupInfo{
		1: {ID: 1, Name: "Junior", MinAge: 5},
		2: {ID: 2, Name: "Adult", MinAge: 18},
		3: {ID: 3, Name: "Teen", MinAge: 13},
	}

	cells := []PriceCell{
		{PlanName: "Gold", Role: RolePrimary, AgeGroupID: 2, TermID: 100, Price: 1},
		{PlanName: "Gold", Role: RolePrimary, AgeGroupID: 1, TermID: 100, Price: 1},
		{PlanName: "Gold", Role: RolePrimary, AgeGroupID: 3, TermID: 100, Price: 1},
	}

	groups := GroupRowsByPlan(cells, ageGroups)
	require.Len(t, groups, 1)
	rows := groups[0].Rows
	require.Len(t, rows, 3)
	assert.Equal(t, "Junior", rows[0].AgeGroupName)
	assert.Equal(t, "Teen", rows[1].AgeGroupName)
	assert.Equal(t, "Adult", rows[2].AgeGroupName)
}

func TestGroupRowsByPlanCellsSortedByTerm(t *testing.T) {
	cells := []PriceCell{
		{PlanName: "Gold", Role: RolePrimary, AgeGroupID: 1, TermID: 102, Price: 3},
		{PlanName: "Gold", Role: RolePrimary, AgeGroupID: 1, TermID: 100, Price: 1},
		{PlanName: "Gold", Role: RolePrimary, AgeGroupID: 1, TermID: 101, Price: 2},
	}

	groups := GroupRowsByPlan(cells, nil)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Rows, 1)

	row := groups[0].Rows[0]
	assert.Equal(t, int64(100), row.Cells[0].TermID)
	assert.Equal(t, int64(101), row.Cells[1].TermID)
	assert.Equal(t, int64(102), row.Cells[2].TermID)
}
