package model

import (
	"time"

	"github.com/BlackWLN/seafight/internal/board"
)

// Login uniquely identifies a connected player for the session lifetime
type Login string

// Player represents a connected player and their session state
type Player struct {
	Login    Login
	InGame   bool
	GameName RoomName // room membership, empty if none
	Board    *board.Board
	IsTurn   bool
	Opponent Login // login of the paired player, empty if none
	JoinedAt time.Time
}

// Reset returns the player to the idle state after a game ends
func (p *Player) Reset() {
	p.InGame = false
	p.GameName = ""
	p.Opponent = ""
	p.IsTurn = false
}
