package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/clubkitlabs/clubkit/internal/clock"
	"github.com/clubkitlabs/clubkit/internal/pricing/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRepo struct {
	cells      []domain.PriceCell
	updates    int
	inserts    int
	failUpdate func(updateNo int) bool
}

func (f *fakeRepo) Insert(_ context.Context, _ *gorm.DB, cell *domain.PriceCell) error {
	f.inserts++
	f.cells = append(f.cells, *cell)
	return nil
}

func (f *fakeRepo) Update(_ context.Context, _ *gorm.DB, cell *domain.PriceCell) error {
	f.updates++
	if f.failUpdate != nil && f.failUpdate(f.updates) {
		return errors.New("persistence unavailable")
	}
	for i := range f.cells {
		if f.cells[i].ID == cell.ID {
			f.cells[i] = *cell
		}
	}
	return nil
}

func (f *fakeRepo) ListByLocation(context.Context, *gorm.DB, int64) ([]domain.PriceCell, error) {
	out := make([]domain.PriceCell, len(f.cells))
	copy(out, f.cells)
	return out, nil
}

type fakeAgeGroups map[int64]domain.AgeGroupInfo

func (f fakeAgeGroups) Lookup(context.Context, int64) (map[int64]domain.AgeGroupInfo, error) {
	return f, nil
}

func newTestService(t *testing.T, repo *fakeRepo) domain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(Params{
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     clock.SystemClock{},
		Repo:      repo,
		AgeGroups: fakeAgeGroups{},
	})
}

func seededCells() []domain.PriceCell {
	return []domain.PriceCell{
		{ID: 1, LocationID: 1, PlanName: "Gold", Role: domain.RolePrimary, AgeGroupID: 10, TermID: 100, Price: 20, Active: true},
		{ID: 2, LocationID: 1, PlanName: "Gold", Role: domain.RolePrimary, AgeGroupID: 10, TermID: 101, Price: 50, Active: true},
		{ID: 3, LocationID: 1, PlanName: "Gold", Role: domain.RolePrimary, AgeGroupID: 10, TermID: 102, Price: 90, Active: true},
	}
}

func TestUpsertCellCreatesThenUpdates(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo)
	ctx := context.Background()

	req := domain.UpsertCellRequest{
		LocationID: 1,
		PlanName:   "Gold",
		Role:       domain.RolePrimary,
		AgeGroupID: 10,
		TermID:     100,
		Price:      20,
	}

	created, err := svc.UpsertCell(ctx, req)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 1, repo.inserts)

	// Same identity tuple again: update semantics, same surrogate ID,
	// and no duplicate cell in the store.
	req.Price = 25
	updated, err := svc.UpsertCell(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 1, repo.inserts)
	assert.Equal(t, 1, repo.updates)

	cells, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, 25.0, cells[0].Price)
}

func TestUpsertCellIdenticalPriceStillPersisted(t *testing.T) {
	repo := &fakeRepo{cells: seededCells()}
	svc := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.UpsertCell(ctx, domain.UpsertCellRequest{
		LocationID: 1,
		PlanName:   "Gold",
		Role:       domain.RolePrimary,
		AgeGroupID: 10,
		TermID:     100,
		Price:      20,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.updates, "no change detection before persisting")
}

func TestUpsertCellValidationBeforePersistence(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo)

	_, err := svc.UpsertCell(context.Background(), domain.UpsertCellRequest{
		LocationID: 1,
		PlanName:   "",
		Role:       domain.RolePrimary,
		AgeGroupID: 10,
		TermID:     100,
		Price:      20,
	})
	require.ErrorIs(t, err, domain.ErrInvalidPlanName)
	assert.Zero(t, repo.inserts)
	assert.Zero(t, repo.updates)
}

func TestUpsertCellRollsBackOnFailure(t *testing.T) {
	repo := &fakeRepo{
		cells:      seededCells(),
		failUpdate: func(int) bool { return true },
	}
	svc := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.UpsertCell(ctx, domain.UpsertCellRequest{
		LocationID: 1,
		PlanName:   "Gold",
		Role:       domain.RolePrimary,
		AgeGroupID: 10,
		TermID:     100,
		Price:      999,
	})
	require.Error(t, err)

	cells, err := svc.List(ctx, 1)
	require.NoError(t, err)
	for _, c := range cells {
		if c.ID == 1 {
			assert.Equal(t, 20.0, c.Price, "failed upsert must revert to the pre-mutation snapshot")
		}
	}
}

func TestReclassifyRowPartialFailureRevertsWholeRow(t *testing.T) {
	repo := &fakeRepo{
		cells:      seededCells(),
		failUpdate: func(updateNo int) bool { return updateNo == 2 },
	}
	svc := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.ReclassifyRow(ctx, domain.ReclassifyRequest{
		LocationID: 1,
		Row:        domain.RowID{PlanName: "Gold", Role: domain.RolePrimary, AgeGroupID: 10},
		NewRole:    domain.RoleAddOn,
	})
	require.Error(t, err)

	cells, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cells, 3)
	for _, c := range cells {
		assert.Equal(t, domain.RolePrimary, c.Role,
			"visible role must revert for every cell, not just the failed one")
	}
}

func TestReclassifyRowSuccess(t *testing.T) {
	repo := &fakeRepo{cells: seededCells()}
	svc := newTestService(t, repo)
	ctx := context.Background()

	updated, err := svc.ReclassifyRow(ctx, domain.ReclassifyRequest{
		LocationID: 1,
		Row:        domain.RowID{PlanName: "Gold", Role: domain.RolePrimary, AgeGroupID: 10},
		NewRole:    domain.RoleAddOn,
	})
	require.NoError(t, err)
	require.Len(t, updated, 3)

	cells, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cells, 3)
	for _, c := range cells {
		assert.Equal(t, domain.RoleAddOn, c.Role)
	}
}

func TestReclassifyRowNotFound(t *testing.T) {
	repo := &fakeRepo{cells: seededCells()}
	svc := newTestService(t, repo)

	_, err := svc.ReclassifyRow(context.Background(), domain.ReclassifyRequest{
		LocationID: 1,
		Row:        domain.RowID{PlanName: "Silver", Role: domain.RolePrimary, AgeGroupID: 10},
		NewRole:    domain.RoleAddOn,
	})
	require.ErrorIs(t, err, domain.ErrRowNotFound)
}

func TestSaveGridSkipsBlanks(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo)
	ctx := context.Background()

	saved, err := svc.SaveGrid(ctx, domain.SaveGridRequest{
		LocationID: 1,
		PlanName:   "Bronze",
		Role:       domain.RolePrimary,
		Grid: domain.Grid{
			10: {100: "15", 101: ""},
			11: {100: "0"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, saved, 2)
	assert.Equal(t, 2, repo.inserts)
}
