package store

import (
	"testing"

	"github.com/clubkitlabs/clubkit/internal/pricing/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cell(id int64, plan string, role domain.Role, ageGroup, term int64, price float64) domain.PriceCell {
	return domain.PriceCell{
		ID:         id,
		LocationID: 1,
		PlanName:   plan,
		Role:       role,
		AgeGroupID: ageGroup,
		TermID:     term,
		Price:      price,
		Active:     true,
	}
}

func TestApplyReplacesByIdentity(t *testing.T) {
	first := cell(1, "Gold", domain.RolePrimary, 10, 100, 20)
	s := New([]domain.PriceCell{first})

	updated := first
	updated.Price = 25
	s.Apply(updated)

	cells := s.Cells()
	require.Len(t, cells, 1, "same identity tuple must never produce two cells")
	assert.Equal(t, 25.0, cells[0].Price)
}

func TestApplyEvictsOldIdentityOnRetag(t *testing.T) {
	first := cell(1, "Gold", domain.RolePrimary, 10, 100, 20)
	s := New([]domain.PriceCell{first})

	retagged := first
	retagged.Role = domain.RoleAddOn
	s.Apply(retagged)

	cells := s.Cells()
	require.Len(t, cells, 1, "retag must not leave the old identity behind")
	assert.Equal(t, domain.RoleAddOn, cells[0].Role)

	_, ok := s.Get(first.Key())
	assert.False(t, ok)
}

func TestRollbackRestoresSnapshot(t *testing.T) {
	first := cell(1, "Gold", domain.RolePrimary, 10, 100, 20)
	second := cell(2, "Gold", domain.RolePrimary, 10, 101, 55)
	s := New([]domain.PriceCell{first, second})

	snap := s.Snapshot()

	edited := first
	edited.Price = 99
	s.Apply(edited)
	s.Apply(cell(0, "Gold", domain.RolePrimary, 11, 100, 5))

	s.Rollback(snap)

	cells := s.Cells()
	require.Len(t, cells, 2)
	got, ok := s.Get(first.Key())
	require.True(t, ok)
	assert.Equal(t, 20.0, got.Price)
}

func TestSnapshotIsImmutableCopy(t *testing.T) {
	first := cell(1, "Gold", domain.RolePrimary, 10, 100, 20)
	s := New([]domain.PriceCell{first})

	snap := s.Snapshot()

	edited := first
	edited.Price = 1
	s.Apply(edited)

	assert.Equal(t, 20.0, snap[first.Key()].Price, "snapshot must not see later mutations")
}

func TestRowSelectsSharedKey(t *testing.T) {
	s := New([]domain.PriceCell{
		cell(1, "Gold", domain.RolePrimary, 10, 100, 20),
		cell(2, "Gold", domain.RolePrimary, 10, 101, 30),
		cell(3, "Gold", domain.RoleAddOn, 10, 100, 5),
	})

	row := s.Row(domain.RowID{PlanName: "Gold", Role: domain.RolePrimary, AgeGroupID: 10})
	assert.Len(t, row, 2)
}
