package stats

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BlackWLN/seafight/internal/model"
	"github.com/BlackWLN/seafight/internal/storage"
)

// Service aggregates per-login statistics. Records are created lazily
// on first access and live for the server process lifetime.
type Service struct {
	storage storage.Storage
}

// New creates a new stats Service
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// StatsFor returns the stats record for a login, creating an empty one
// if none exists yet
func (s *Service) StatsFor(ctx context.Context, login model.Login) (*model.PlayerStats, error) {
	stats, err := s.storage.GetStats(ctx, login)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, model.ErrStatsNotFound) {
		return nil, err
	}

	stats = &model.PlayerStats{Login: login}
	if err := s.storage.SaveStats(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// RecordShot updates the shooter's totals for one resolved shot. Hit
// covers both plain hits and the winning shot. Repeat outcomes must
// not be recorded at all.
func (s *Service) RecordShot(ctx context.Context, login model.Login, hit bool) error {
	stats, err := s.StatsFor(ctx, login)
	if err != nil {
		return err
	}

	stats.TotalShots++
	if hit {
		stats.Hits++
	}
	stats.RecomputeAccuracy()

	return s.storage.SaveStats(ctx, stats)
}

// RecordGameEnd updates both sides after a finished game. Accuracy is
// refreshed from each player's existing totals; the zero-shot guard in
// RecomputeAccuracy keeps a shotless winner at 0.
func (s *Service) RecordGameEnd(ctx context.Context, winner, loser model.Login) error {
	winnerStats, err := s.StatsFor(ctx, winner)
	if err != nil {
		return err
	}
	loserStats, err := s.StatsFor(ctx, loser)
	if err != nil {
		return err
	}

	winnerStats.GamesPlayed++
	winnerStats.Wins++
	winnerStats.RecomputeAccuracy()

	loserStats.GamesPlayed++
	loserStats.Losses++
	loserStats.RecomputeAccuracy()

	if err := s.storage.SaveStats(ctx, winnerStats); err != nil {
		return err
	}
	return s.storage.SaveStats(ctx, loserStats)
}

// FormatSummary renders the human-readable statistics block sent in
// response to GET_STATS
func (s *Service) FormatSummary(ctx context.Context, login model.Login) (string, error) {
	stats, err := s.StatsFor(ctx, login)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Statistics for %s:\n", login)
	sb.WriteString("================\n")
	fmt.Fprintf(&sb, "Games played: %d\n", stats.GamesPlayed)
	fmt.Fprintf(&sb, "Wins: %d\n", stats.Wins)
	fmt.Fprintf(&sb, "Losses: %d\n", stats.Losses)
	fmt.Fprintf(&sb, "Win rate: %.1f%%\n", stats.WinRate())
	fmt.Fprintf(&sb, "Total shots: %d\n", stats.TotalShots)
	fmt.Fprintf(&sb, "Hits: %d\n", stats.Hits)
	fmt.Fprintf(&sb, "Accuracy: %.1f%%\n", stats.Accuracy)
	return sb.String(), nil
}

// Interface for dependency injection
type ServiceInterface interface {
	StatsFor(ctx context.Context, login model.Login) (*model.PlayerStats, error)
	RecordShot(ctx context.Context, login model.Login, hit bool) error
	RecordGameEnd(ctx context.Context, winner, loser model.Login) error
	FormatSummary(ctx context.Context, login model.Login) (string, error)
}

var _ ServiceInterface = (*Service)(nil)
