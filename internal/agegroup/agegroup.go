// Package agegroup manages the age-group axis of the pricing matrix.
package agegroup

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
	ErrInvalidLocation = errors.New("invalid_location")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidAgeRange = errors.New("invalid_age_range")
	ErrNotFound        = errors.New("age_group_not_found")
)

type AgeGroup struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id,string"`
	LocationID int64     `gorm:"column:location_id" json:"location_id,string"`
	Name       string    `gorm:"column:name" json:"name"`
	MinAge     int       `gorm:"column:min_age" json:"min_age"`
	MaxAge     *int      `gorm:"column:max_age" json:"max_age,omitempty"`
	Active     bool      `gorm:"column:active" json:"active"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (AgeGroup) TableName() string { return "age_groups" }

type UpsertRequest struct {
	ID         int64
	LocationID int64
	Name       string
	MinAge     int
	MaxAge     *int
	Active     *bool
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

var Module = fx.Module("agegroup",
	fx.Provide(New),
)

func New(p Params) *Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("agegroup.service"),
		genID: p.GenID,
		clock: p.Clock,
	}
}

// Upsert creates the group when no ID is supplied, otherwise updates it
// in place. Removal is deactivation, never deletion.
func (s *Service) Upsert(ctx context.Context, req UpsertRequest) (*AgeGroup, error) {
	if req.LocationID == 0 {
		return nil, ErrInvalidLocation
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidName
	}
	if req.MinAge < 0 || (req.MaxAge != nil && *req.MaxAge < req.MinAge) {
		return nil, ErrInvalidAgeRange
	}

	now := s.clock.Now(ctx)
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	if req.ID == 0 {
		group := AgeGroup{
			ID:         s.genID.Generate().Int64(),
			LocationID: req.LocationID,
			Name:       req.Name,
			MinAge:     req.MinAge,
			MaxAge:     req.MaxAge,
			Active:     active,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.db.WithContext(ctx).Create(&group).Error; err != nil {
			return nil, err
		}
		return &group, nil
	}

	var group AgeGroup
	err := s.db.WithContext(ctx).
		Where("location_id = ? AND id = ?", req.LocationID, req.ID).
		First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	group.Name = req.Name
	group.MinAge = req.MinAge
	group.MaxAge = req.MaxAge
	group.Active = active
	group.UpdatedAt = now
	if err := s.db.WithContext(ctx).Save(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *Service) ListByLocation(ctx context.Context, locationID int64) ([]AgeGroup, error) {
	if locationID == 0 {
		return nil, ErrInvalidLocation
	}
	var groups []AgeGroup
	err := s.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("min_age ASC, name ASC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}
