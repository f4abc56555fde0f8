// Package fixtures provides test databases and seed data shared by package tests.
package fixtures

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	infrarepo "github.com/piolcm/piol/infra/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with every model migrated.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(infrarepo.Models()...))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewTestUoW returns a unit of work over a fresh test database.
func NewTestUoW(t testing.TB) *infrarepo.UoW {
	t.Helper()
	return infrarepo.NewUoW(NewTestDB(t))
}
