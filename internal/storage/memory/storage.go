package memory

import (
	"context"
	"sync"

	"github.com/BlackWLN/seafight/internal/model"
	"github.com/BlackWLN/seafight/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu    sync.RWMutex
	stats map[model.Login]*model.PlayerStats
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		stats: make(map[model.Login]*model.PlayerStats),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveStats(ctx context.Context, stats *model.PlayerStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats[stats.Login] = stats
	return nil
}

func (s *Storage) GetStats(ctx context.Context, login model.Login) (*model.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats, ok := s.stats[login]
	if !ok {
		return nil, model.ErrStatsNotFound
	}
	return stats, nil
}

func (s *Storage) DeleteStats(ctx context.Context, login model.Login) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stats, login)
	return nil
}
