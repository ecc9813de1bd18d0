package handlers

import (
	"encoding/json"
	"net/http"
	"unicode/utf8"

	"cardroom/database"
	"cardroom/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const maxGameStateLength = 20

var roomMessages = bindMessages{
	"RoomID": {
		"required": "room_id is required",
		"min":      "room_id is required",
		"max":      "room_id must be 50 characters or fewer",
	},
	"Password": {
		"required": "password is required",
		"min":      "password must be at least 5 characters",
		"max":      "password must be 100 characters or fewer",
	},
}

var readyMessages = bindMessages{
	"PlayerID": {
		"required": "player_id is required",
	},
}

// findRoom loads the room named by :room_id and writes the 404/500 response itself when it cannot.
func findRoom(c *gin.Context, store *database.Store, logger *zap.Logger) *models.GameRoom {
	var uri models.RoomURI
	if !bindURI(c, &uri) {
		return nil
	}
	room, err := store.SearchGameRoom(c.Request.Context(), uri.RoomID)
	if err != nil {
		logger.Error("Failed to search room", zap.String("room", uri.RoomID), zap.Error(err))
		internalError(c)
		return nil
	}
	if room == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return nil
	}
	return room
}

// RoomCreate stores a new room under the code the client chose.
func RoomCreate(c *gin.Context, store *database.Store, logger *zap.Logger) {
	var request models.RoomCreateRequest
	if !bindJSON(c, &request, roomMessages) {
		return
	}

	roomID, err := store.CreateGameRoom(c.Request.Context(), request.RoomID, request.Password, models.GameStateWaiting)
	if err != nil {
		if database.IsDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "room already exists"})
			return
		}
		logger.Error("Failed to create room", zap.String("room", request.RoomID), zap.Error(err))
		internalError(c)
		return
	}

	logger.Info("room created", zap.String("room", request.RoomID), zap.Uint("room_pk", roomID))
	c.JSON(http.StatusCreated, gin.H{
		"message": "Room created",
		"room_id": request.RoomID,
	})
}

// RoomJoin checks that the room exists and the password matches.
func RoomJoin(c *gin.Context, store *database.Store, logger *zap.Logger) {
	var request models.RoomJoinRequest
	if !bindJSON(c, &request, roomMessages) {
		return
	}

	room, err := store.SearchGameRoom(c.Request.Context(), request.RoomID)
	if err != nil {
		logger.Error("Failed to search room", zap.String("room", request.RoomID), zap.Error(err))
		internalError(c)
		return
	}
	if room == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	if room.Password != request.Password {
		c.JSON(http.StatusForbidden, gin.H{"error": "wrong room password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Joined room",
		"room_id": room.Code,
	})
}

// RoomDelete removes a room and its ready marks after checking the password.
func RoomDelete(c *gin.Context, store *database.Store, ready *database.ReadyStore, logger *zap.Logger) {
	room := findRoom(c, store, logger)
	if room == nil {
		return
	}
	var request models.RoomDeleteRequest
	if !bindJSON(c, &request, roomMessages) {
		return
	}
	if room.Password != request.Password {
		c.JSON(http.StatusForbidden, gin.H{"error": "wrong room password"})
		return
	}

	ctx := c.Request.Context()
	if err := store.DeleteGameRoom(ctx, room.RoomID); err != nil {
		logger.Error("Failed to delete room", zap.String("room", room.Code), zap.Error(err))
		internalError(c)
		return
	}
	if err := ready.Clear(ctx, room.Code); err != nil {
		logger.Warn("Failed to clear ready marks", zap.String("room", room.Code), zap.Error(err))
	}

	logger.Info("room deleted", zap.String("room", room.Code))
	c.JSON(http.StatusOK, gin.H{
		"message": "Room deleted",
		"room_id": room.Code,
	})
}

// PlayerReady records that a player is ready in the room.
func PlayerReady(c *gin.Context, store *database.Store, ready *database.ReadyStore, logger *zap.Logger) {
	room := findRoom(c, store, logger)
	if room == nil {
		return
	}
	var request models.ReadyRequest
	if !bindJSON(c, &request, readyMessages) {
		return
	}

	playerID := *request.PlayerID
	count, err := ready.MarkReady(c.Request.Context(), room.Code, playerID)
	if err != nil {
		logger.Error("Failed to mark player ready", zap.String("room", room.Code), zap.Int64("player_id", playerID), zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Player ready",
		"room_id":     room.Code,
		"player_id":   playerID,
		"ready_count": count,
	})
}

// UpdateGameState stores the posted state object. A string "game_state" key also
// replaces the room's state label.
func UpdateGameState(c *gin.Context, store *database.Store, logger *zap.Logger) {
	room := findRoom(c, store, logger)
	if room == nil {
		return
	}

	var state map[string]interface{}
	if err := c.ShouldBindJSON(&state); err != nil || state == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state must be a JSON object"})
		return
	}

	gameState := ""
	if raw, ok := state["game_state"]; ok {
		label, ok := raw.(string)
		if !ok || label == "" || utf8.RuneCountInString(label) > maxGameStateLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "game_state must be a non-empty string of 20 characters or fewer"})
			return
		}
		gameState = label
	}

	encoded, err := json.Marshal(state)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state must be a JSON object"})
		return
	}

	updated, err := store.UpdateGameRoomState(c.Request.Context(), room.Code, gameState, datatypes.JSON(encoded))
	if err != nil {
		logger.Error("Failed to update room state", zap.String("room", room.Code), zap.Error(err))
		internalError(c)
		return
	}
	if updated == nil {
		// deleted between lookup and update
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "State updated",
		"room_id":    updated.Code,
		"game_state": updated.GameState,
	})
}

// GetGameState returns the state label, the last stored state object and the ready players.
func GetGameState(c *gin.Context, store *database.Store, ready *database.ReadyStore, logger *zap.Logger) {
	room := findRoom(c, store, logger)
	if room == nil {
		return
	}

	players, err := ready.ReadyPlayers(c.Request.Context(), room.Code)
	if err != nil {
		logger.Error("Failed to read ready players", zap.String("room", room.Code), zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room_id":       room.Code,
		"game_state":    room.GameState,
		"state":         room.StateData,
		"ready_players": players,
	})
}
