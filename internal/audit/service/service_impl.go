package service

import (
	"context"
	"encoding/json"
	"math/rand"

	auditdomain "github.com/clubkitlabs/clubkit/internal/audit/domain"
	"github.com/clubkitlabs/clubkit/internal/clock"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
}

func New(p Params) auditdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		clock: p.Clock,
	}
}

func (s *Service) Log(ctx context.Context, actor, action, targetType string, targetID *string, payload map[string]any) {
	now := s.clock.Now(ctx)

	entry := auditdomain.Entry{
		ID:         ulid.MustNew(ulid.Timestamp(now), rand.New(rand.NewSource(now.UnixNano()))).String(),
		Actor:      actor,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		CreatedAt:  now,
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err == nil {
			entry.Payload = raw
		}
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.log.Warn("audit append failed",
			zap.String("action", action),
			zap.Error(err))
	}
}
