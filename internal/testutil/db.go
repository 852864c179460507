package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"userapi/internal/db"
)

// NewDB opens a private in-memory sqlite database with the users table migrated.
// The database is closed when the test finishes.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := db.NewSQLite(dsn, "error")
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gormDB, false))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gormDB
}

// CloseDB closes the connection pool behind gormDB so every later query fails.
func CloseDB(t *testing.T, gormDB *gorm.DB) {
	t.Helper()

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}
