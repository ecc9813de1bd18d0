package models

import (
	"time"

	"gorm.io/datatypes"
)

// GameStateWaiting is the label every new room starts with.
const GameStateWaiting = "waiting"

// EmptyState is the state object of a room nobody has posted state to.
var EmptyState = datatypes.JSON("{}")

// GameRoom model definition
type GameRoom struct {
	RoomID    uint           `gorm:"column:room_id;primaryKey;autoIncrement" json:"room_id"`
	Code      string         `gorm:"size:50;uniqueIndex;not null" json:"code"` // externally assigned room code
	Password  string         `gorm:"size:100" json:"-"`
	GameState string         `gorm:"size:20;not null;default:waiting" json:"game_state"`
	StateData datatypes.JSON `gorm:"not null;default:'{}'" json:"state"` // last state object posted by a client
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (GameRoom) TableName() string {
	return "game_rooms"
}
