package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BlackWLN/seafight/internal/model"
)

func TestSaveAndGetStats(t *testing.T) {
	s := New()
	ctx := context.Background()

	stats := &model.PlayerStats{Login: "alice", Wins: 2, TotalShots: 10, Hits: 4}
	require.NoError(t, s.SaveStats(ctx, stats))

	got, err := s.GetStats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, stats, got)
}

func TestGetStatsNotFound(t *testing.T) {
	s := New()

	_, err := s.GetStats(context.Background(), "nobody")
	assert.ErrorIs(t, err, model.ErrStatsNotFound)
}

func TestDeleteStats(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.SaveStats(ctx, &model.PlayerStats{Login: "alice"}))
	require.NoError(t, s.DeleteStats(ctx, "alice"))

	_, err := s.GetStats(ctx, "alice")
	assert.ErrorIs(t, err, model.ErrStatsNotFound)
}
