package domain

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

// Entry is one append-only audit event. IDs are ULIDs so the table sorts
// by creation time without a secondary index.
type Entry struct {
	ID         string         `gorm:"column:id;primaryKey" json:"id"`
	Actor      string         `gorm:"column:actor" json:"actor"`
	Action     string         `gorm:"column:action" json:"action"`
	TargetType string         `gorm:"column:target_type" json:"target_type"`
	TargetID   *string        `gorm:"column:target_id" json:"target_id,omitempty"`
	Payload    datatypes.JSON `gorm:"column:payload" json:"payload,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (Entry) TableName() string { return "audit_logs" }

type Service interface {
	// Log appends an event. Best effort: failures are logged, never
	// surfaced, so auditing cannot fail a mutation.
	Log(ctx context.Context, actor, action, targetType string, targetID *string, payload map[string]any)
	Export(ctx context.Context, req ExportRequest) (*ExportResult, error)
}

type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatJSON ExportFormat = "json"
)

type ExportRequest struct {
	StartDate time.Time
	EndDate   time.Time
	Actions   []string
	Format    ExportFormat
	Compress  bool
}

type ExportResult struct {
	FileName   string       `json:"file_name"`
	Data       []byte       `json:"data"`
	Checksum   string       `json:"checksum"`
	Format     ExportFormat `json:"format"`
	Compressed bool         `json:"compressed"`
	Count      int          `json:"count"`
}
