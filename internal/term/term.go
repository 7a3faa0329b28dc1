// Package term manages the subscription-term axis of the pricing matrix.
package term

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
	ErrInvalidMonths   = errors.New("invalid_months")
	ErrNotFound        = errors.New("subscription_term_not_found")
)

type SubscriptionTerm struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id,string"`
	LocationID int64     `gorm:"column:location_id" json:"location_id,string"`
	Name       string    `gorm:"column:name" json:"name"`
	Months     int       `gorm:"column:months" json:"months"`
	Active     bool      `gorm:"column:active" json:"active"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (SubscriptionTerm) TableName() string { return "subscription_terms" }

type UpsertRequest struct {
	ID         int64
	LocationID int64
	Name       string
	Months     int
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

var Module = fx.Module("term",
	fx.Provide(New),
)

func New(p Params) *Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("term.service"),
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *Service) Upsert(ctx context.Context, req UpsertRequest) (*SubscriptionTerm, error) {
	if req.LocationID == 0 {
		return nil, ErrInvalidLocation
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidName
	}
	if req.Months <= 0 {
		return nil, ErrInvalidMonths
	}

	now := s.clock.Now(ctx)
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	if req.ID == 0 {
		t := SubscriptionTerm{
			ID:         s.genID.Generate().Int64(),
			LocationID: req.LocationID,
			Name:       req.Name,
			Months:     req.Months,
			Active:     active,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
			return nil, err
		}
		return &t, nil
	}

	var t SubscriptionTerm
	err := s.db.WithContext(ctx).
		Where("location_id = ? AND id = ?", req.LocationID, req.ID).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	t.Name = req.Name
	t.Months = req.Months
	t.Active = active
	t.UpdatedAt = now
	if err := s.db.WithContext(ctx).Save(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Service) ListByLocation(ctx context.Context, locationID int64) ([]SubscriptionTerm, error) {
	if locationID == 0 {
		return nil, ErrInvalidLocation
	}
	var terms []SubscriptionTerm
	err := s.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("months ASC").
		Find(&terms).Error
	if err != nil {
		return nil, err
	}
	return terms, nil
}
