// models/meta.go
package models

import "time"

// UploadLog is one row of the upload_log table: what was loaded, not the data itself.
type UploadLog struct {
	ID           int64     `db:"id" json:"id"`
	SessionID    string    `db:"session_id" json:"session_id"`
	SourceName   string    `db:"source_name" json:"source_name"`
	Format       string    `db:"format" json:"format"`
	RowCount     int       `db:"row_count" json:"row_count"`
	SiteCount    int       `db:"site_count" json:"site_count"`
	MappedFields string    `db:"mapped_fields" json:"mapped_fields"` // comma-separated logical fields
	DataHash     string    `db:"data_hash" json:"data_hash,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
