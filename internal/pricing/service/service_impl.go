package service

import (
	"context"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/clubkitlabs/clubkit/internal/clock"
	"github.com/clubkitlabs/clubkit/internal/pricing/cache"
	"github.com/clubkitlabs/clubkit/internal/pricing/domain"
	"github.com/clubkitlabs/clubkit/internal/pricing/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      domain.Repository
	Cache     *cache.CellCache
	AgeGroups domain.AgeGroupDirectory
}

// Service owns the pricing matrix for each location: an in-memory store
// of price cells kept in lock-step with the database through optimistic
// snapshot/commit/rollback mutations.
type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	cache     *cache.CellCache
	ageGroups domain.AgeGroupDirectory

	mu     sync.Mutex
	stores map[int64]*store.Store
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("pricing.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		cache:     p.Cache,
		ageGroups: p.AgeGroups,
		stores:    map[int64]*store.Store{},
	}
}

func (s *Service) List(ctx context.Context, locationID int64) ([]domain.PriceCell, error) {
	if locationID == 0 {
		return nil, domain.ErrInvalidLocation
	}
	st, err := s.storeFor(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return st.Cells(), nil
}

func (s *Service) GroupedByPlan(ctx context.Context, locationID int64) ([]domain.PlanGroup, error) {
	cells, err := s.List(ctx, locationID)
	if err != nil {
		return nil, err
	}
	infos, err := s.ageGroups.Lookup(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return domain.GroupRowsByPlan(cells, infos), nil
}

func (s *Service) UpsertCell(ctx context.Context, req domain.UpsertCellRequest) (domain.PriceCell, error) {
	if err := validateIdentity(req); err != nil {
		return domain.PriceCell{}, err
	}

	st, err := s.storeFor(ctx, req.LocationID)
	if err != nil {
		return domain.PriceCell{}, err
	}

	cell := cellFromRequest(req)
	persisted, err := s.upsertOne(ctx, st, cell)
	if err != nil {
		return domain.PriceCell{}, err
	}
	s.cache.Invalidate(ctx, req.LocationID)
	return persisted, nil
}

func (s *Service) SaveGrid(ctx context.Context, req domain.SaveGridRequest) ([]domain.PriceCell, error) {
	if req.LocationID == 0 {
		return nil, domain.ErrInvalidLocation
	}
	if strings.TrimSpace(req.PlanName) == "" {
		return nil, domain.ErrInvalidPlanName
	}
	if !req.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	st, err := s.storeFor(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}

	cells := domain.FromGrid(req.Grid, req.LocationID, req.PlanName, req.Role)

	// Grid saves are independent cell-level upserts; a failure stops the
	// batch but earlier cells stay applied.
	saved := make([]domain.PriceCell, 0, len(cells))
	for _, cell := range cells {
		persisted, err := s.upsertOne(ctx, st, cell)
		if err != nil {
			s.cache.Invalidate(ctx, req.LocationID)
			return saved, err
		}
		saved = append(saved, persisted)
	}
	s.cache.Invalidate(ctx, req.LocationID)
	return saved, nil
}

// ReclassifyRow retags every cell of a row to the new role and upserts
// each one individually. The calls are independent, but partial role
// state is unsafe to display as applied: any failure rolls the visible
// state for the whole row back to the pre-mutation snapshot, leaving the
// database with whatever subset succeeded.
func (s *Service) ReclassifyRow(ctx context.Context, req domain.ReclassifyRequest) ([]domain.PriceCell, error) {
	if req.LocationID == 0 {
		return nil, domain.ErrInvalidLocation
	}
	if !req.NewRole.Valid() {
		return nil, domain.ErrInvalidRole
	}

	st, err := s.storeFor(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}

	rowCells := st.Row(req.Row)
	if len(rowCells) == 0 {
		return nil, domain.ErrRowNotFound
	}

	snap := st.Snapshot()
	updated := make([]domain.PriceCell, 0, len(rowCells))
	for _, cell := range rowCells {
		retagged := cell
		retagged.Role = req.NewRole
		retagged.UpdatedAt = s.clock.Now(ctx)

		st.Apply(retagged)
		if err := s.repo.Update(ctx, s.db, &retagged); err != nil {
			s.log.Warn("reclassify upsert failed, reverting row",
				zap.String("row", req.Row.String()),
				zap.Int64("cell_id", cell.ID),
				zap.Error(err))
			st.Rollback(snap)
			s.cache.Invalidate(ctx, req.LocationID)
			return nil, err
		}
		st.Commit(retagged)
		updated = append(updated, retagged)
	}

	s.cache.Invalidate(ctx, req.LocationID)
	return updated, nil
}

// Refresh discards the in-memory view and reloads from the database.
func (s *Service) Refresh(ctx context.Context, locationID int64) error {
	if locationID == 0 {
		return domain.ErrInvalidLocation
	}
	cells, err := s.repo.ListByLocation(ctx, s.db, locationID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.stores[locationID] = store.New(cells)
	s.mu.Unlock()
	s.cache.Set(ctx, locationID, cells)
	return nil
}

// upsertOne applies one optimistic mutation and persists it. The request
// is always sent even when the stored price is identical; there is no
// change detection before persisting a grid edit.
func (s *Service) upsertOne(ctx context.Context, st *store.Store, cell domain.PriceCell) (domain.PriceCell, error) {
	now := s.clock.Now(ctx)

	existing, exists := st.Get(cell.Key())
	if exists {
		cell.ID = existing.ID
		cell.CreatedAt = existing.CreatedAt
	}
	cell.UpdatedAt = now

	snap := st.Snapshot()
	st.Apply(cell)

	persisted := cell
	var err error
	if exists {
		err = s.repo.Update(ctx, s.db, &persisted)
	} else {
		persisted.ID = s.genID.Generate().Int64()
		persisted.CreatedAt = now
		err = s.repo.Insert(ctx, s.db, &persisted)
	}
	if err != nil {
		st.Rollback(snap)
		return domain.PriceCell{}, err
	}

	st.Commit(persisted)
	return persisted, nil
}

func (s *Service) storeFor(ctx context.Context, locationID int64) (*store.Store, error) {
	s.mu.Lock()
	if st, ok := s.stores[locationID]; ok {
		s.mu.Unlock()
		return st, nil
	}
	s.mu.Unlock()

	cells, cached := s.cache.Get(ctx, locationID)
	if !cached {
		var err error
		cells, err = s.repo.ListByLocation(ctx, s.db, locationID)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, locationID, cells)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.stores[locationID]; ok {
		return st, nil
	}
	st := store.New(cells)
	s.stores[locationID] = st
	return st, nil
}

func validateIdentity(req domain.UpsertCellRequest) error {
	if req.LocationID == 0 {
		return domain.ErrInvalidLocation
	}
	if strings.TrimSpace(req.PlanName) == "" {
		return domain.ErrInvalidPlanName
	}
	if !req.Role.Valid() {
		return domain.ErrInvalidRole
	}
	if req.AgeGroupID == 0 {
		return domain.ErrInvalidAgeGroup
	}
	if req.TermID == 0 {
		return domain.ErrInvalidTerm
	}
	if req.Price < 0 {
		return domain.ErrInvalidPrice
	}
	return nil
}

func cellFromRequest(req domain.UpsertCellRequest) domain.PriceCell {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return domain.PriceCell{
		LocationID: req.LocationID,
		PlanName:   req.PlanName,
		Role:       req.Role,
		AgeGroupID: req.AgeGroupID,
		TermID:     req.TermID,
		Price:      req.Price,
		Active:     active,
	}
}
