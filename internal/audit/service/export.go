package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"

	auditdomain "github.com/clubkitlabs/clubkit/internal/audit/domain"
	"github.com/golang/snappy"
	"github.com/google/uuid"
)

func (s *Service) Export(ctx context.Context, req auditdomain.ExportRequest) (*auditdomain.ExportResult, error) {
	query := s.db.WithContext(ctx).Model(&auditdomain.Entry{}).
		Where("created_at >= ? AND created_at < ?", req.StartDate, req.EndDate)
	if len(req.Actions) > 0 {
		query = query.Where("action IN ?", req.Actions)
	}

	var entries []auditdomain.Entry
	if err := query.Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, err
	}

	var data []byte
	var err error
	switch req.Format {
	case auditdomain.ExportFormatCSV:
		data, err = formatCSV(entries)
	case auditdomain.ExportFormatJSON:
		data, err = json.Marshal(entries)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", req.Format)
	}
	if err != nil {
		return nil, err
	}

	ext := string(req.Format)
	if req.Compress {
		data = snappy.Encode(nil, data)
		ext += ".snappy"
	}

	sum := sha256.Sum256(data)
	return &auditdomain.ExportResult{
		FileName:   fmt.Sprintf("audit-%s.%s", uuid.NewString(), ext),
		Data:       data,
		Checksum:   hex.EncodeToString(sum[:]),
		Format:     req.Format,
		Compressed: req.Compress,
		Count:      len(entries),
	}, nil
}

func formatCSV(entries []auditdomain.Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"timestamp", "actor", "action", "target_type", "target_id", "payload"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, e := range entries {
		targetID := ""
		if e.TargetID != nil {
			targetID = *e.TargetID
		}
		row := []string{
			e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			e.Actor,
			e.Action,
			e.TargetType,
			targetID,
			string(e.Payload),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
