package scheduler

import (
	"context"

	auditdomain "github.com/clubkitlabs/clubkit/internal/audit/domain"
	"go.uber.org/zap"
)

// CleanupAuditLogs deletes audit entries older than the configured
// retention window.
func (s *Scheduler) CleanupAuditLogs(ctx context.Context) error {
	retentionDays := s.cfg.Audit.RetentionDays
	if retentionDays <= 0 {
		return nil
	}

	cutoff := s.clock.Now(ctx).AddDate(0, 0, -retentionDays)
	s.log.Info("cleaning up audit logs", zap.Time("cutoff", cutoff))

	result := s.db.WithContext(ctx).Delete(&auditdomain.Entry{}, "created_at < ?", cutoff)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		s.log.Info("audit cleanup completed", zap.Int64("deleted", result.RowsAffected))
	}
	return nil
}
