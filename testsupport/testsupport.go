// Package testsupport provides SQLite and in-memory Redis backends for tests.
package testsupport

import (
	"MediCore/cache"
	"MediCore/database"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated database stored in a temporary SQLite file.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "medicore.db")
	db, err := database.OpenDB(sqlite.Open(path+"?_pragma=busy_timeout(5000)"), false)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewRedis starts a miniredis server, points the global client at it and returns a cache.
func NewRedis(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	database.RedisClient = client
	t.Cleanup(func() {
		_ = client.Close()
		if database.RedisClient == client {
			database.RedisClient = nil
		}
	})

	c, err := cache.NewCache(client)
	require.NoError(t, err)
	return c, server
}
