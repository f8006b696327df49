package storage

import (
	"context"

	"github.com/BlackWLN/seafight/internal/model"
)

// Storage defines the interface for the per-login statistics store.
// Player and room registries are deliberately not here: they are owned
// by the dispatch loop and live only for the session (see the game
// service), while stats survive individual games.
type Storage interface {
	SaveStats(ctx context.Context, stats *model.PlayerStats) error
	GetStats(ctx context.Context, login model.Login) (*model.PlayerStats, error)
	DeleteStats(ctx context.Context, login model.Login) error
}
