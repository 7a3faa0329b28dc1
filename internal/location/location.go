// Package location manages the location records every other configuration
// entity is scoped to.
package location

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/clubkitlabs/clubkit/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrNotFound    = errors.New("location_not_found")
)

type Location struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id,string"`
	Name      string    `gorm:"column:name" json:"name"`
	Timezone  string    `gorm:"column:timezone" json:"timezone"`
	Active    bool      `gorm:"column:active" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Location) TableName() string { return "locations" }

type UpsertRequest struct {
	ID       int64
	Name     string
	Timezone string
	Active   *bool
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
}

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

var Module = fx.Module("location",
	fx.Provide(New),
)

func New(p Params) *Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("location.service"),
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *Service) Upsert(ctx context.Context, req UpsertRequest) (*Location, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidName
	}

	now := s.clock.Now(ctx)
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	tz := req.Timezone
	if tz == "" {
		tz = "UTC"
	}

	if req.ID == 0 {
		loc := Location{
			ID:        s.genID.Generate().Int64(),
			Name:      req.Name,
			Timezone:  tz,
			Active:    active,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.db.WithContext(ctx).Create(&loc).Error; err != nil {
			return nil, err
		}
		return &loc, nil
	}

	var loc Location
	err := s.db.WithContext(ctx).Where("id = ?", req.ID).First(&loc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	loc.Name = req.Name
	loc.Timezone = tz
	loc.Active = active
	loc.UpdatedAt = now
	if err := s.db.WithContext(ctx).Save(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (s *Service) List(ctx context.Context) ([]Location, error) {
	var locations []Location
	err := s.db.WithContext(ctx).Order("name ASC").Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}
