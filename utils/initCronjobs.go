package utils

import (
	"context"
	"time"

	"cardroom/database"
	"cardroom/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CronCleaner schedules the hourly removal of rooms left waiting longer than roomTTL.
// The caller stops the returned scheduler at shutdown.
func CronCleaner(store *database.Store, ready *database.ReadyStore, logger *zap.Logger, roomTTL time.Duration) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		CleanStaleRooms(ctx, store, ready, logger, time.Now().Add(-roomTTL))
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}

// CleanStaleRooms deletes waiting rooms not updated since before, together with their ready marks,
// and returns how many rooms were deleted.
func CleanStaleRooms(ctx context.Context, store *database.Store, ready *database.ReadyStore, logger *zap.Logger, before time.Time) int {
	logger.Info("stale room cleanup started", zap.Time("before", before))

	codes, err := store.ReapStaleRooms(ctx, models.GameStateWaiting, before)
	if err != nil {
		logger.Error("stale room cleanup failed", zap.Error(err))
		return 0
	}

	for _, code := range codes {
		if err := ready.Clear(ctx, code); err != nil {
			// the ready set expires on its own
			logger.Warn("failed to clear ready marks", zap.String("room", code), zap.Error(err))
		}
	}

	logger.Info("stale room cleanup done", zap.Int("rooms_deleted", len(codes)))
	return len(codes)
}
