package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/BlackWLN/seafight/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestSaveAndGetStats() {
	stats := &model.PlayerStats{
		Login:       "alice",
		GamesPlayed: 3,
		Wins:        2,
		Losses:      1,
		TotalShots:  40,
		Hits:        15,
		Accuracy:    37.5,
	}

	err := s.storage.SaveStats(s.ctx, stats)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetStats(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(stats, retrieved)
}

func (s *StorageSuite) TestGetStatsNotFound() {
	_, err := s.storage.GetStats(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrStatsNotFound)
}

func (s *StorageSuite) TestDeleteStats() {
	_ = s.storage.SaveStats(s.ctx, &model.PlayerStats{Login: "alice"})

	err := s.storage.DeleteStats(s.ctx, "alice")
	s.Require().NoError(err)

	_, err = s.storage.GetStats(s.ctx, "alice")
	s.ErrorIs(err, model.ErrStatsNotFound)
}

func (s *StorageSuite) TestStatsTTLApplied() {
	cfg := DefaultConfig()
	cfg.StatsTTL = time.Hour

	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	store := NewWithClient(client, cfg)
	defer func() { _ = store.Close() }()

	err := store.SaveStats(s.ctx, &model.PlayerStats{Login: "bob"})
	s.Require().NoError(err)

	s.mini.FastForward(2 * time.Hour)

	_, err = store.GetStats(s.ctx, "bob")
	s.ErrorIs(err, model.ErrStatsNotFound)
}
