package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrLoginTaken     = errors.New("login is already in use")

	// Room errors
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is already full")
	ErrRoomExists    = errors.New("room with this name already exists")
	ErrEmptyRoomName = errors.New("room name cannot be empty")
	ErrOwnRoom       = errors.New("cannot join your own room")
	ErrAlreadyInGame = errors.New("player is already in a game")
	ErrNotInGame     = errors.New("player is not in a game")

	// Turn errors
	ErrNotYourTurn = errors.New("not this player's turn")

	// Stats errors
	ErrStatsNotFound = errors.New("stats not found")
)
