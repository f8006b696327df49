package game

import (
	"sort"

	"github.com/BlackWLN/seafight/internal/model"
)

// State holds the player and room registries. It is exclusively owned
// by the dispatch loop: handlers mutate it only inside the loop's
// critical section, so no additional locking happens here. Entries are
// addressed by their stable keys (login, room name), never by held
// pointers across calls.
type State struct {
	players map[model.Login]*model.Player
	rooms   map[model.RoomName]*model.Room
}

// NewState creates empty registries
func NewState() *State {
	return &State{
		players: make(map[model.Login]*model.Player),
		rooms:   make(map[model.RoomName]*model.Room),
	}
}

// FindPlayer returns the player with the given login, or nil
func (s *State) FindPlayer(login model.Login) *model.Player {
	return s.players[login]
}

// AddPlayer registers a player under their login
func (s *State) AddPlayer(p *model.Player) {
	s.players[p.Login] = p
}

// RemovePlayer drops a player from the registry
func (s *State) RemovePlayer(login model.Login) {
	delete(s.players, login)
}

// FindRoom returns the room with the given name, or nil
func (s *State) FindRoom(name model.RoomName) *model.Room {
	return s.rooms[name]
}

// AddRoom registers a room under its name
func (s *State) AddRoom(r *model.Room) {
	s.rooms[r.Name] = r
}

// RemoveRoom drops a room from the registry
func (s *State) RemoveRoom(name model.RoomName) {
	delete(s.rooms, name)
}

// PlayerCount returns the number of registered players
func (s *State) PlayerCount() int {
	return len(s.players)
}

// RoomCount returns the number of rooms in the registry
func (s *State) RoomCount() int {
	return len(s.rooms)
}

// OpenRooms returns the rooms still waiting for an opponent, oldest
// first so the listing is stable
func (s *State) OpenRooms() []*model.Room {
	var rooms []*model.Room
	for _, r := range s.rooms {
		if !r.IsFull && !r.IsActive {
			rooms = append(rooms, r)
		}
	}
	sort.Slice(rooms, func(i, j int) bool {
		if !rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
		}
		return rooms[i].Name < rooms[j].Name
	})
	return rooms
}

// IdlePlayers returns all players not currently in an active game,
// sorted by login for deterministic notification order
func (s *State) IdlePlayers() []*model.Player {
	var players []*model.Player
	for _, p := range s.players {
		if !p.InGame {
			players = append(players, p)
		}
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].Login < players[j].Login
	})
	return players
}
