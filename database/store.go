package database

import (
	"context"
	"errors"
	"fmt"

	"cardroom/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Store is the persistence handle for rooms and users. It is safe for concurrent use;
// the underlying *gorm.DB owns the connection pool.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsDuplicateKey reports whether err comes from a unique constraint violation.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// CreateGameRoom inserts a room and returns its primary key. An empty gameState means "waiting".
func (s *Store) CreateGameRoom(ctx context.Context, code, password, gameState string) (uint, error) {
	if gameState == "" {
		gameState = models.GameStateWaiting
	}
	room := models.GameRoom{
		Code:      code,
		Password:  password,
		GameState: gameState,
		StateData: models.EmptyState,
	}
	if err := s.db.WithContext(ctx).Create(&room).Error; err != nil {
		return 0, fmt.Errorf("create game room %q: %w", code, err)
	}
	return room.RoomID, nil
}

// DeleteGameRoom removes the room with the given primary key. Deleting a missing room is not an error.
func (s *Store) DeleteGameRoom(ctx context.Context, roomID uint) error {
	if err := s.db.WithContext(ctx).Where("room_id = ?", roomID).Delete(&models.GameRoom{}).Error; err != nil {
		return fmt.Errorf("delete game room %d: %w", roomID, err)
	}
	return nil
}

// SearchGameRoom returns the room with the given code, or nil when there is none.
func (s *Store) SearchGameRoom(ctx context.Context, code string) (*models.GameRoom, error) {
	var rooms []models.GameRoom
	if err := s.db.WithContext(ctx).Where("code = ?", code).Limit(1).Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("search game room %q: %w", code, err)
	}
	if len(rooms) == 0 {
		return nil, nil
	}
	return &rooms[0], nil
}

// UpdateGameRoomState stores the latest state object of a room. A non-empty gameState
// also replaces the room's state label. It returns nil when the room does not exist.
func (s *Store) UpdateGameRoomState(ctx context.Context, code, gameState string, stateData datatypes.JSON) (*models.GameRoom, error) {
	room, err := s.SearchGameRoom(ctx, code)
	if err != nil || room == nil {
		return nil, err
	}

	updates := map[string]interface{}{"state_data": stateData}
	if gameState != "" {
		updates["game_state"] = gameState
	}
	if err := s.db.WithContext(ctx).Model(&models.GameRoom{}).Where("room_id = ?", room.RoomID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update game room %q state: %w", code, err)
	}
	return s.SearchGameRoom(ctx, code)
}
