package models

// LeaderboardEntry is one row of the read-only 'alumni_leaderboard' view.
// The view aggregates engagement; there is no write path.
type LeaderboardEntry struct {
	UserID          int64  `json:"userId" db:"user_id"`
	FullName        string `json:"fullName" db:"full_name"`
	Department      string `json:"department" db:"department"`
	PostsAuthored   int64  `json:"postsAuthored" db:"posts_authored"`
	SessionsMentored int64 `json:"sessionsMentored" db:"sessions_mentored"`
	Score           int64  `json:"score" db:"score"`
}
