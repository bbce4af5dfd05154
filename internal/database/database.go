// Package database opens GORM connections for the document-store backends.
// Postgres is the primary target; SQLite (file or in-memory) serves local
// and test deployments.
package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Manager handles the database connection with Postgres-to-SQLite fallback.
type Manager struct {
	DB         *gorm.DB
	IsValid    bool
	UsingLocal bool
	Logger     zerolog.Logger
}

// NewManager creates a new database manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{Logger: log}
}

// Connect establishes a database connection, falling back to SQLite if
// Postgres is unreachable.
func (m *Manager) Connect(sqlitePath string) error {
	var err error

	m.DB, err = GetPostgresDB()
	if err == nil {
		if sqlDB, derr := m.DB.DB(); derr == nil && sqlDB.Ping() == nil {
			sqlDB.SetMaxOpenConns(10)
			m.IsValid = true
			m.Logger.Info().Msg("Connected to Postgres")
			return nil
		}
	}

	m.Logger.Error().Err(err).Msg("Failed to connect to Postgres, trying SQLite")
	m.UsingLocal = true
	m.DB, err = GetSqliteDB(sqlitePath)
	if err != nil {
		m.IsValid = false
		return fmt.Errorf("failed to get local SQLite DB: %w", err)
	}
	m.IsValid = true
	m.Logger.Info().Str("path", sqlitePath).Msg("Using local SQLite DB")
	return nil
}

// GetPostgresDB returns a connection to the Postgres database using viper
// config.
func GetPostgresDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		viper.GetString("db.host"),
		viper.GetString("db.port"),
		viper.GetString("db.username"),
		viper.GetString("db.password"),
		viper.GetString("db.database"),
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// GetSqliteDB returns a connection to a SQLite database. If path is empty,
// an in-memory database is used.
func GetSqliteDB(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA synchronous = OFF;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %s", err)
		}
	}

	return db, nil
}
