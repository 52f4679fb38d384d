// database/upload_store.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yataco/dashboard/backend/models"
	"github.com/yataco/dashboard/backend/utils"
)

// ErrNotConfigured is returned by store calls when the upload log is disabled.
var ErrNotConfigured = errors.New("database connection is not initialized")

// LogUpload records that a file was loaded. The data itself is never stored.
func LogUpload(ctx context.Context, entry models.UploadLog) (int64, error) {
	if DB == nil {
		return 0, ErrNotConfigured
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	var hash sql.NullString
	if entry.DataHash != "" {
		hash = sql.NullString{String: entry.DataHash, Valid: true}
	}

	res, err := DB.ExecContext(ctx, `
		INSERT INTO upload_log (
			session_id, source_name, format, row_count, site_count,
			mapped_fields, data_hash, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.SessionID, entry.SourceName, entry.Format, entry.RowCount, entry.SiteCount,
		entry.MappedFields, hash, entry.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to log upload %s: %w", entry.SourceName, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read upload log id: %w", err)
	}
	utils.Log.Debugf("Database: logged upload %s as id %d", entry.SourceName, id)
	return id, nil
}

// GetRecentUploads returns the newest upload log entries first.
func GetRecentUploads(ctx context.Context, limit int) ([]models.UploadLog, error) {
	if DB == nil {
		return nil, ErrNotConfigured
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := DB.QueryContext(ctx, `
		SELECT id, session_id, source_name, format, row_count, site_count,
		       mapped_fields, data_hash, created_at
		FROM upload_log
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query upload_log: %w", err)
	}
	defer rows.Close()

	logs := []models.UploadLog{}
	for rows.Next() {
		var entry models.UploadLog
		var hash sql.NullString
		if err := rows.Scan(
			&entry.ID, &entry.SessionID, &entry.SourceName, &entry.Format, &entry.RowCount,
			&entry.SiteCount, &entry.MappedFields, &hash, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan upload_log row: %w", err)
		}
		if hash.Valid {
			entry.DataHash = hash.String
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating upload_log rows: %w", err)
	}
	return logs, nil
}
