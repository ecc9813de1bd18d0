package utils

import (
	"context"
	"testing"
	"time"

	"cardroom/database"
	"cardroom/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCleanStaleRooms(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	config := database.DefaultConfig()
	config.DBDriver = database.DriverSQLite
	config.DatabaseURL = "file:cleanstalerooms?mode=memory&cache=shared"
	config.DBMaxOpenConns = 1
	db, err := database.Open(config, logger)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, logger))
	store := database.NewStore(db)
	t.Cleanup(func() { store.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	ready := database.NewReadyStore(rdb, time.Hour)

	_, err = store.CreateGameRoom(ctx, "idle", "secret", "")
	require.NoError(t, err)
	_, err = store.CreateGameRoom(ctx, "busy", "secret", "")
	require.NoError(t, err)
	_, err = ready.MarkReady(ctx, "idle", 1)
	require.NoError(t, err)
	_, err = ready.MarkReady(ctx, "busy", 2)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.GameRoom{}).Where("code = ?", "idle").
		UpdateColumn("updated_at", time.Now().Add(-30*time.Hour)).Error)

	deleted := CleanStaleRooms(ctx, store, ready, logger, time.Now().Add(-24*time.Hour))
	assert.Equal(t, 1, deleted)

	room, err := store.SearchGameRoom(ctx, "idle")
	require.NoError(t, err)
	assert.Nil(t, room)
	assert.False(t, mr.Exists("room:idle:ready"))

	room, err = store.SearchGameRoom(ctx, "busy")
	require.NoError(t, err)
	assert.NotNil(t, room)
	assert.True(t, mr.Exists("room:busy:ready"))
}

func TestCronCleanerSchedulesJob(t *testing.T) {
	c, err := CronCleaner(nil, nil, zap.NewNop(), 24*time.Hour)
	require.NoError(t, err)
	defer c.Stop()
	assert.Len(t, c.Entries(), 1)
}
