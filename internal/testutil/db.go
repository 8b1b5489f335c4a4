// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/anonto42/newsroom-social/backend/internal/models"
)

// NewTestDB returns a migrated, private in-memory SQLite database that is
// closed when the test ends.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// CreateUser inserts a user with all notification preferences on.
func CreateUser(t testing.TB, db *gorm.DB, name string) *models.User {
	t.Helper()
	u := models.NewUser(name, name+"@example.com")
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateAdmin inserts an admin user.
func CreateAdmin(t testing.TB, db *gorm.DB, name string) *models.User {
	t.Helper()
	u := models.NewUser(name, name+"@example.com")
	u.IsAdmin = true
	require.NoError(t, db.Create(u).Error)
	return u
}
