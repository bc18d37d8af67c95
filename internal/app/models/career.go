package models

import (
	"time"
)

// Career progress bounds
const (
	GoalProgressMin = 0
	GoalProgressMax = 100
	SkillLevelMin   = 1
	SkillLevelMax   = 5
)

// CareerMilestone defines an achievement record based on the 'career_milestones' table
type CareerMilestone struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	Title        string    `json:"title" db:"title"`
	Organization string    `json:"organization" db:"organization"`
	AchievedAt   time.Time `json:"achievedAt" db:"achieved_at"`
	Description  string    `json:"description" db:"description"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// CareerGoal defines a goal record based on the 'career_goals' table.
// Progress runs 0-100.
type CareerGoal struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Title      string    `json:"title" db:"title"`
	TargetDate time.Time `json:"targetDate" db:"target_date"`
	Progress   int       `json:"progress" db:"progress"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// SkillProgress defines a skill record based on the 'skill_progress' table.
// Level runs 1-5.
type SkillProgress struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	SkillName string    `json:"skillName" db:"skill_name"`
	Level     int       `json:"level" db:"level"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
