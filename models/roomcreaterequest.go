package models

// RoomCreateRequest is the body of POST /rooms/create.
// RoomID is the code the client picked for the room, not the database key.
type RoomCreateRequest struct {
	RoomID   string `json:"room_id" binding:"required,min=1,max=50"`
	Password string `json:"password" binding:"required,min=5,max=100"`
}

// RoomJoinRequest is the body of POST /rooms/join.
type RoomJoinRequest struct {
	RoomID   string `json:"room_id" binding:"required,min=1,max=50"`
	Password string `json:"password" binding:"required,min=5,max=100"`
}

// RoomDeleteRequest is the body of DELETE /rooms/:room_id.
type RoomDeleteRequest struct {
	Password string `json:"password" binding:"required"`
}

// ReadyRequest is the body of POST /rooms/:room_id/ready.
// PlayerID is a pointer so that 0 is a valid id and only a missing key is rejected.
type ReadyRequest struct {
	PlayerID *int64 `json:"player_id" binding:"required"`
}

// RoomURI binds the :room_id path segment.
type RoomURI struct {
	RoomID string `uri:"room_id" binding:"required,max=50"`
}
