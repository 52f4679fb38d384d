// database/connection.go
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql" // MariaDB / MySQL driver
	_ "modernc.org/sqlite"             // pure-Go sqlite driver, registered as "sqlite"

	"github.com/yataco/dashboard/backend/config"
	"github.com/yataco/dashboard/backend/utils"
)

// DB is nil when the upload log is disabled (driver "none").
var DB *sql.DB

// driverName is the database/sql driver in use, needed for dialect differences.
var driverName string

// InitDB opens the connection pool for the configured driver and creates the
// upload_log table if needed.
func InitDB(cfg config.DatabaseConfig) error {
	var dsn string
	switch cfg.Driver {
	case "", "none":
		utils.Log.Info("Database: upload log disabled (driver none)")
		return nil
	case "mysql":
		// DSN: username:password@protocol(address)/dbname?param=value
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
		)
	case "sqlite":
		dsn = cfg.Path
		if dsn != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
				return fmt.Errorf("failed to create directory for sqlite database: %w", err)
			}
		}
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// A single connection keeps ":memory:" databases alive and serializes writers.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	DB = db
	driverName = cfg.Driver
	if err := ensureSchema(); err != nil {
		CloseDB()
		return err
	}

	utils.Log.Infof("Database: connected (%s)", cfg.Driver)
	return nil
}

// CloseDB closes the database connection pool.
// Typically called on application shutdown.
func CloseDB() {
	if DB != nil {
		DB.Close()
		DB = nil
		utils.Log.Info("Database: connection closed")
	}
}

func ensureSchema() error {
	ddl := `
		CREATE TABLE IF NOT EXISTS upload_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			source_name TEXT NOT NULL,
			format TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			site_count INTEGER NOT NULL,
			mapped_fields TEXT NOT NULL,
			data_hash TEXT,
			created_at TIMESTAMP NOT NULL
		)`
	if driverName == "mysql" {
		ddl = `
		CREATE TABLE IF NOT EXISTS upload_log (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			session_id VARCHAR(64) NOT NULL,
			source_name VARCHAR(255) NOT NULL,
			format VARCHAR(16) NOT NULL,
			row_count INT NOT NULL,
			site_count INT NOT NULL,
			mapped_fields VARCHAR(255) NOT NULL,
			data_hash CHAR(64) NULL,
			created_at DATETIME NOT NULL,
			INDEX idx_upload_log_created_at (created_at)
		)`
	}
	if _, err := DB.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create upload_log table: %w", err)
	}
	return nil
}
