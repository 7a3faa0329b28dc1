package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridRoundTrip(t *testing.T) {
	cells := []PriceCell{
		{LocationID: 1, PlanName: "Gold", Role: RolePrimary, AgeGroupID: 10, TermID: 100, Price: 49.5, Active: true},
		{LocationID: 1, PlanName: "Gold", Role: RolePrimary, AgeGroupID: 10, TermID: 101, Price: 120, Active: true},
		{LocationID: 1, PlanName: "Gold", Role: RolePrimary, AgeGroupID: 11, TermID: 100, Price: 0, Active: true},
	}

	grid := ToGrid(cells, "Gold", RolePrimary)
	back := FromGrid(grid, 1, "Gold", RolePrimary)
	require.Len(t, back, 3)

	byKey := map[CellID]PriceCell{}
	for _, c := range back {
		byKey[c.Key()] = c
	}
	for _, orig := range cells {
		got, ok := byKey[orig.Key()]
		require.True(t, ok, "cell %s lost in round trip", orig.Key())
		assert.Equal(t, orig.Price, got.Price)
	}
}

func TestToGridSkipsOtherRows(t *testing.T) {
	cells := []PriceCell{
		{PlanName: "Gold", Role: RolePrimary, AgeGroupID: 10, TermID: 100, Price: 10},
		{PlanName: "Gold", Role: RoleAddOn, AgeGroupID: 10, TermID: 100, Price: 5},
		{PlanName: "Bronze", Role: RolePrimary, AgeGroupID: 10, TermID: 100, Price: 7},
	}

	grid := ToGrid(cells, "Gold", RolePrimary)
	require.Len(t, grid, 1)
	assert.Equal(t, "10", grid[10][100])
}

func TestFromGridBlankIsNotZero(t *testing.T) {
	grid := Grid{
		10: {100: "", 101: "0"},
		11: {100: "   "},
	}

	cells := FromGrid(grid, 1, "Gold", RolePrimary)
	require.Len(t, cells, 1, "blank entries must not become cells")
	assert.Equal(t, float64(0), cells[0].Price, "an explicit zero survives")
	assert.Equal(t, int64(101), cells[0].TermID)
}

func TestFromGridDropsGarbageSilently(t *testing.T) {
	grid := Grid{
		10: {100: "abc", 101: "-5", 102: "12.75"},
	}

	cells := FromGrid(grid, 1, "Gold", RolePrimary)
	require.Len(t, cells, 1)
	assert.Equal(t, 12.75, cells[0].Price)
}
