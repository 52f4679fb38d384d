// database/upload_store_test.go
package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yataco/dashboard/backend/config"
	"github.com/yataco/dashboard/backend/models"
)

func openTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitDB(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}))
	t.Cleanup(CloseDB)
}

func TestUploadLogDisabled(t *testing.T) {
	require.NoError(t, InitDB(config.DatabaseConfig{Driver: "none"}))
	assert.Nil(t, DB)

	_, err := LogUpload(context.Background(), models.UploadLog{SourceName: "a.csv"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = GetRecentUploads(context.Background(), 10)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestInitDBUnknownDriver(t *testing.T) {
	err := InitDB(config.DatabaseConfig{Driver: "postgres"})
	assert.Error(t, err)
	assert.Nil(t, DB)
}

func TestLogAndListUploads(t *testing.T) {
	openTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	for i, name := range []string{"enero.csv", "febrero.xlsx", "marzo.html"} {
		id, err := LogUpload(ctx, models.UploadLog{
			SessionID:    name + "-session",
			SourceName:   name,
			Format:       filepath.Ext(name)[1:],
			RowCount:     10 * (i + 1),
			SiteCount:    i + 1,
			MappedFields: "site,period",
			DataHash:     "abc",
			CreatedAt:    base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), id)
	}

	logs, err := GetRecentUploads(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "marzo.html", logs[0].SourceName)
	assert.Equal(t, "html", logs[0].Format)
	assert.Equal(t, 30, logs[0].RowCount)
	assert.Equal(t, "abc", logs[0].DataHash)
	assert.True(t, logs[0].CreatedAt.Equal(base.Add(2*time.Hour)))
	assert.Equal(t, "febrero.xlsx", logs[1].SourceName)

	all, err := GetRecentUploads(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLogUploadWithoutHash(t *testing.T) {
	openTestDB(t)
	ctx := context.Background()

	_, err := LogUpload(ctx, models.UploadLog{SessionID: "s", SourceName: "a.csv", Format: "csv"})
	require.NoError(t, err)

	logs, err := GetRecentUploads(ctx, 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Empty(t, logs[0].DataHash)
	assert.False(t, logs[0].CreatedAt.IsZero())
}
