package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/BlackWLN/seafight/internal/model"
	"github.com/BlackWLN/seafight/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestStatsForCreatesLazily() {
	stats, err := s.service.StatsFor(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.Login("alice"), stats.Login)
	s.Zero(stats.GamesPlayed)
	s.Zero(stats.Accuracy)

	// A second access returns the same record, not a fresh one
	stats.Wins = 1
	s.Require().NoError(s.storage.SaveStats(s.ctx, stats))

	again, err := s.service.StatsFor(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1, again.Wins)
}

func (s *ServiceSuite) TestRecordShotUpdatesAccuracy() {
	s.Require().NoError(s.service.RecordShot(s.ctx, "alice", true))
	s.Require().NoError(s.service.RecordShot(s.ctx, "alice", false))
	s.Require().NoError(s.service.RecordShot(s.ctx, "alice", true))
	s.Require().NoError(s.service.RecordShot(s.ctx, "alice", false))

	stats, err := s.service.StatsFor(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(4, stats.TotalShots)
	s.Equal(2, stats.Hits)
	s.InDelta(50.0, stats.Accuracy, 0.001)
}

func (s *ServiceSuite) TestRecordGameEnd() {
	err := s.service.RecordGameEnd(s.ctx, "winner", "loser")
	s.Require().NoError(err)

	winner, _ := s.service.StatsFor(s.ctx, "winner")
	s.Equal(1, winner.GamesPlayed)
	s.Equal(1, winner.Wins)
	s.Equal(0, winner.Losses)

	loser, _ := s.service.StatsFor(s.ctx, "loser")
	s.Equal(1, loser.GamesPlayed)
	s.Equal(0, loser.Wins)
	s.Equal(1, loser.Losses)
}

func (s *ServiceSuite) TestRecordGameEndKeepsZeroShotAccuracy() {
	// A winner who never fired (opponent left) must keep accuracy 0
	err := s.service.RecordGameEnd(s.ctx, "winner", "loser")
	s.Require().NoError(err)

	winner, _ := s.service.StatsFor(s.ctx, "winner")
	s.Zero(winner.Accuracy)
}

func (s *ServiceSuite) TestFormatSummary() {
	s.Require().NoError(s.service.RecordShot(s.ctx, "alice", true))
	s.Require().NoError(s.service.RecordGameEnd(s.ctx, "alice", "bob"))

	summary, err := s.service.FormatSummary(s.ctx, "alice")
	s.Require().NoError(err)

	s.Contains(summary, "Statistics for alice:")
	s.Contains(summary, "Games played: 1")
	s.Contains(summary, "Wins: 1")
	s.Contains(summary, "Losses: 0")
	s.Contains(summary, "Win rate: 100.0%")
	s.Contains(summary, "Total shots: 1")
	s.Contains(summary, "Hits: 1")
	s.Contains(summary, "Accuracy: 100.0%")
}
