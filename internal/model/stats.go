package model

// PlayerStats holds cumulative per-login statistics for the server
// process lifetime. Accuracy is derived from hits/totalShots and is
// recomputed only when the underlying totals change.
type PlayerStats struct {
	Login       Login   `json:"login"`
	GamesPlayed int     `json:"games_played"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	TotalShots  int     `json:"total_shots"`
	Hits        int     `json:"hits"`
	Accuracy    float64 `json:"accuracy"`
}

// RecomputeAccuracy refreshes the derived accuracy field. The zero-shot
// guard is deliberate: a player with no shots keeps accuracy 0.
func (s *PlayerStats) RecomputeAccuracy() {
	if s.TotalShots > 0 {
		s.Accuracy = float64(s.Hits) / float64(s.TotalShots) * 100
	}
}

// WinRate returns wins as a percentage of games played, 0 if no games
func (s *PlayerStats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}
