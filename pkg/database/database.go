// Package database opens the connection to the record store.
package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

var ErrUnknownDriver = errors.New("unknown database driver")

// Connect opens the database with the driver and DSN, registers the error
// translation callbacks and returns the handle.
func Connect(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite, "":
		dialector = sqlite.Open(dsn)
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownDriver, driver)
	}

	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: models.NewGormLogger(log.Logger),
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors. It also serializes
	// all database transactions.
	if dialector.Name() == DriverSQLite {
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}

	err = models.RegisterCallbacks(db)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// SQLiteDSN returns the DSN for a SQLite database file in the data
// directory, creating the directory if needed. Foreign keys are enforced.
func SQLiteDSN(dataDir string) (string, error) {
	err := os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}

	return WithForeignKeys(filepath.Join(dataDir, "gorm.db")), nil
}

// WithForeignKeys adds the pragma enforcing foreign keys to a SQLite DSN.
func WithForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}

	if strings.Contains(dsn, "?") {
		return dsn + "&_pragma=foreign_keys(1)"
	}

	return dsn + "?_pragma=foreign_keys(1)"
}
