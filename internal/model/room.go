package model

import "time"

// RoomName uniquely identifies a game room while it exists
type RoomName string

// Room is a pending pairing context for exactly two players.
// A room lives in the registry only while it waits for an opponent;
// once both seats are taken and the game starts its state is folded
// into the two Player records and the room is removed.
type Room struct {
	Name      RoomName
	Creator   Login
	Player1   Login
	Player2   Login // empty until joined
	IsFull    bool
	IsActive  bool
	CreatedAt time.Time
}
