package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/BlackWLN/seafight/internal/board"
	"github.com/BlackWLN/seafight/internal/model"
	"github.com/BlackWLN/seafight/internal/protocol"
	"github.com/BlackWLN/seafight/internal/services/game"
)

// IntegrationSuite drives a full match through the assembled app,
// exercising the same path the dispatch loop takes.
type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewForTest()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) handle(pkt protocol.Packet) []game.Notification {
	return s.app.GameController.Handle(s.ctx, pkt)
}

func (s *IntegrationSuite) TestFullMatch() {
	state := s.app.GameController.State()

	// Two players arrive
	s.handle(protocol.Packet{Type: protocol.Login, Sender: "alice"})
	s.handle(protocol.Packet{Type: protocol.Login, Sender: "bob"})
	s.Equal(2, state.PlayerCount())

	// Alice opens a room, bob joins, the game starts
	s.handle(protocol.Packet{Type: protocol.CreateGame, Sender: "alice", GameName: "atlantic"})
	s.handle(protocol.Packet{Type: protocol.JoinGame, Sender: "bob", GameName: "atlantic"})

	alice := state.FindPlayer("alice")
	bob := state.FindPlayer("bob")
	s.Require().NotNil(alice)
	s.Require().NotNil(bob)
	s.True(alice.InGame)
	s.True(bob.InGame)
	s.True(bob.IsTurn)
	s.Nil(state.FindRoom("atlantic"))

	// Replace alice's random fleet with a known single-cell ship so
	// the match resolves deterministically
	b := board.New()
	s.Require().NoError(b.PlaceShip(5, 5, 1, true))
	alice.Board = b

	// Bob misses, turn passes to alice
	s.handle(protocol.Packet{Type: protocol.Shoot, Sender: "bob", X: 0, Y: 0})
	s.True(alice.IsTurn)
	s.False(bob.IsTurn)

	// Alice misses too, turn comes back
	s.handle(protocol.Packet{Type: protocol.Shoot, Sender: "alice", X: 0, Y: 0})
	s.True(bob.IsTurn)

	// Bob sinks the last ship and wins
	notifs := s.handle(protocol.Packet{Type: protocol.Shoot, Sender: "bob", X: 5, Y: 5})

	var winner, loser *protocol.Packet
	for i := range notifs {
		if notifs[i].Packet.Type != protocol.SrvGameOver {
			continue
		}
		switch notifs[i].To {
		case "bob":
			winner = &notifs[i].Packet
		case "alice":
			loser = &notifs[i].Packet
		}
	}
	s.Require().NotNil(winner)
	s.Require().NotNil(loser)
	s.Contains(winner.Payload, "WIN")
	s.Contains(loser.Payload, "LOSE")

	s.False(alice.InGame)
	s.False(bob.InGame)

	// Stats survived into storage through the service
	bobStats, err := s.app.StatsService.StatsFor(s.ctx, model.Login("bob"))
	s.Require().NoError(err)
	s.Equal(1, bobStats.GamesPlayed)
	s.Equal(1, bobStats.Wins)
	s.Equal(2, bobStats.TotalShots)
	s.Equal(1, bobStats.Hits)
	s.InDelta(50.0, bobStats.Accuracy, 0.001)

	aliceStats, err := s.app.StatsService.StatsFor(s.ctx, model.Login("alice"))
	s.Require().NoError(err)
	s.Equal(1, aliceStats.Losses)
	s.Equal(1, aliceStats.TotalShots)

	// Both can immediately start another game
	s.handle(protocol.Packet{Type: protocol.CreateGame, Sender: "bob", GameName: "pacific"})
	s.NotNil(state.FindRoom("pacific"))
}

func (s *IntegrationSuite) TestStatsSummaryAfterMatch() {
	s.handle(protocol.Packet{Type: protocol.Login, Sender: "alice"})
	s.handle(protocol.Packet{Type: protocol.Login, Sender: "bob"})
	s.handle(protocol.Packet{Type: protocol.CreateGame, Sender: "alice", GameName: "atlantic"})
	s.handle(protocol.Packet{Type: protocol.JoinGame, Sender: "bob", GameName: "atlantic"})
	s.handle(protocol.Packet{Type: protocol.LeaveGame, Sender: "alice"})

	notifs := s.handle(protocol.Packet{Type: protocol.GetStats, Sender: "bob"})
	s.Require().Len(notifs, 1)
	s.Equal(protocol.SrvStats, notifs[0].Packet.Type)
	s.Contains(notifs[0].Packet.Payload, "Statistics for bob:")
	s.Contains(notifs[0].Packet.Payload, "Wins: 1")
}
