package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arnav/gradlink/internal/app/models"
)

// LeaderboardRepository reads the alumni_leaderboard view. The view owns
// the scoring formula; there is no write path here.
type LeaderboardRepository struct {
	db *pgxpool.Pool
}

// NewLeaderboardRepository creates a new LeaderboardRepository
func NewLeaderboardRepository(db *pgxpool.Pool) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// Top retrieves the highest-scoring alumni, ties broken by name
func (r *LeaderboardRepository) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, full_name, department, posts_authored, sessions_mentored, score
		 FROM alumni_leaderboard
		 ORDER BY score DESC, full_name ASC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		err := rows.Scan(&e.UserID, &e.FullName, &e.Department, &e.PostsAuthored,
			&e.SessionsMentored, &e.Score)
		if err != nil {
			return nil, fmt.Errorf("error scanning leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard rows: %w", err)
	}
	return entries, nil
}
