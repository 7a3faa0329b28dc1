package service

import (
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"
	"time"

	auditdomain "github.com/clubkitlabs/clubkit/internal/audit/domain"
	"github.com/clubkitlabs/clubkit/internal/clock"
	"github.com/glebarez/sqlite"
	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (auditdomain.Service, *gorm.DB, *clock.Manual) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&auditdomain.Entry{}))

	clk := clock.NewManual(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clk,
	})
	return svc, db, clk
}

func seedEntries(t *testing.T, svc auditdomain.Service, db *gorm.DB, clk *clock.Manual) {
	t.Helper()
	ctx := context.Background()
	target := "42"
	svc.Log(ctx, "admin@club", "price_cell.upsert", "price_cell", &target, map[string]any{"price": 49.5})
	clk.Advance(time.Second)
	svc.Log(ctx, "admin@club", "membership_program.save", "membership_program", nil, nil)
	clk.Advance(time.Second)
	svc.Log(ctx, "ops@club", "price_cell.upsert", "price_cell", &target, nil)

	var count int64
	require.NoError(t, db.Model(&auditdomain.Entry{}).Count(&count).Error)
	require.EqualValues(t, 3, count)
}

func exportWindow() (time.Time, time.Time) {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
}

func TestExportCSV(t *testing.T) {
	svc, db, clk := newTestService(t)
	seedEntries(t, svc, db, clk)
	start, end := exportWindow()

	res, err := svc.Export(context.Background(), auditdomain.ExportRequest{
		StartDate: start,
		EndDate:   end,
		Format:    auditdomain.ExportFormatCSV,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.True(t, strings.HasSuffix(res.FileName, ".csv"))

	rows, err := csv.NewReader(strings.NewReader(string(res.Data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "actor", rows[0][1])
	assert.Equal(t, "admin@club", rows[1][1])

	sum := sha256.Sum256(res.Data)
	assert.Equal(t, hex.EncodeToString(sum[:]), res.Checksum)
}

func TestExportJSONFilteredByAction(t *testing.T) {
	svc, db, clk := newTestService(t)
	seedEntries(t, svc, db, clk)
	start, end := exportWindow()

	res, err := svc.Export(context.Background(), auditdomain.ExportRequest{
		StartDate: start,
		EndDate:   end,
		Actions:   []string{"price_cell.upsert"},
		Format:    auditdomain.ExportFormatJSON,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)

	var entries []auditdomain.Entry
	require.NoError(t, json.Unmarshal(res.Data, &entries))
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "price_cell.upsert", e.Action)
	}
}

func TestExportCompressed(t *testing.T) {
	svc, db, clk := newTestService(t)
	seedEntries(t, svc, db, clk)
	start, end := exportWindow()

	res, err := svc.Export(context.Background(), auditdomain.ExportRequest{
		StartDate: start,
		EndDate:   end,
		Format:    auditdomain.ExportFormatJSON,
		Compress:  true,
	})
	require.NoError(t, err)
	assert.True(t, res.Compressed)
	assert.True(t, strings.HasSuffix(res.FileName, ".json.snappy"))

	// Checksum covers the compressed bytes, since that is what gets stored.
	sum := sha256.Sum256(res.Data)
	assert.Equal(t, hex.EncodeToString(sum[:]), res.Checksum)

	raw, err := snappy.Decode(nil, res.Data)
	require.NoError(t, err)
	var entries []auditdomain.Entry
	require.NoError(t, json.Unmarshal(raw, &entries))
	assert.Len(t, entries, 3)
}

func TestExportUnknownFormat(t *testing.T) {
	svc, db, clk := newTestService(t)
	seedEntries(t, svc, db, clk)
	start, end := exportWindow()

	_, err := svc.Export(context.Background(), auditdomain.ExportRequest{
		StartDate: start,
		EndDate:   end,
		Format:    "xml",
	})
	require.Error(t, err)
}

func TestLogIsBestEffort(t *testing.T) {
	svc, db, _ := newTestService(t)
	// Drop the table so every insert fails.
	require.NoError(t, db.Migrator().DropTable(&auditdomain.Entry{}))

	assert.NotPanics(t, func() {
		svc.Log(context.Background(), "admin@club", "price_cell.upsert", "price_cell", nil, nil)
	})
}
