package dto

// MilestoneRequest creates or updates a career milestone
type MilestoneRequest struct {
	Title        string `json:"title" binding:"required,min=2,max=255"`
	Organization string `json:"organization"`
	AchievedAt   string `json:"achievedAt" binding:"required,datetime=2006-01-02"`
	Description  string `json:"description"`
}

// GoalRequest creates or updates a career goal. Progress runs 0-100.
type GoalRequest struct {
	Title      string `json:"title" binding:"required,min=2,max=255"`
	TargetDate string `json:"targetDate" binding:"required,datetime=2006-01-02"`
	Progress   int    `json:"progress" binding:"min=0,max=100"`
}

// SkillRequest creates or updates a skill record. Level runs 1-5.
type SkillRequest struct {
	SkillName string `json:"skillName" binding:"required,min=2,max=100"`
	Level     int    `json:"level" binding:"required,min=1,max=5"`
}
