package database

import (
	"context"
	"fmt"
	"time"

	"cardroom/models"
)

// ReapStaleRooms deletes rooms in gameState that have not been updated since before
// and returns their codes.
func (s *Store) ReapStaleRooms(ctx context.Context, gameState string, before time.Time) ([]string, error) {
	var rooms []models.GameRoom
	if err := s.db.WithContext(ctx).
		Where("game_state = ? AND updated_at <= ?", gameState, before).
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("find stale rooms: %w", err)
	}
	if len(rooms) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(rooms))
	codes := make([]string, 0, len(rooms))
	for _, room := range rooms {
		ids = append(ids, room.RoomID)
		codes = append(codes, room.Code)
	}
	// the condition is repeated so a room that changed state since the select survives
	result := s.db.WithContext(ctx).
		Where("room_id IN ? AND game_state = ? AND updated_at <= ?", ids, gameState, before).
		Delete(&models.GameRoom{})
	if err := result.Error; err != nil {
		return nil, fmt.Errorf("delete stale rooms: %w", err)
	}
	if result.RowsAffected == int64(len(ids)) {
		return codes, nil
	}

	var kept []string
	if err := s.db.WithContext(ctx).Model(&models.GameRoom{}).
		Where("room_id IN ?", ids).Pluck("code", &kept).Error; err != nil {
		return nil, fmt.Errorf("find kept rooms: %w", err)
	}
	keptSet := make(map[string]bool, len(kept))
	for _, code := range kept {
		keptSet[code] = true
	}
	deleted := make([]string, 0, len(codes))
	for _, code := range codes {
		if !keptSet[code] {
			deleted = append(deleted, code)
		}
	}
	return deleted, nil
}
