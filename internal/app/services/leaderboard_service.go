package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/app/repositories"
)

const defaultLeaderboardSize = 20

// LeaderboardService reads the alumni engagement leaderboard. The view
// owns the scoring; this is fetch-and-render only.
type LeaderboardService struct {
	leaderboardRepo *repositories.LeaderboardRepository
	logger          zerolog.Logger
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(leaderboardRepo *repositories.LeaderboardRepository, logger zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{
		leaderboardRepo: leaderboardRepo,
		logger:          logger,
	}
}

// Top returns the highest-scoring alumni
func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultLeaderboardSize
	}
	return s.leaderboardRepo.Top(ctx, limit)
}
