package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/pkg/apperrors"
)

// CareerRepository handles career milestone, goal and skill persistence.
// Every operation is scoped by user ID so a user can only touch their own
// records.
type CareerRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCareerRepository creates a new CareerRepository
func NewCareerRepository(db *pgxpool.Pool) *CareerRepository {
	return &CareerRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateMilestone inserts a career milestone
func (r *CareerRepository) CreateMilestone(ctx context.Context, m *models.CareerMilestone) error {
	sql, args, err := r.sb.Insert("career_milestones").
		Columns("user_id", "title", "organization", "achieved_at", "description").
		Values(m.UserID, m.Title, m.Organization, m.AchievedAt, m.Description).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create milestone query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating milestone: %w", err)
	}
	return nil
}

// GetMilestones retrieves a user's milestones, most recent achievement first
func (r *CareerRepository) GetMilestones(ctx context.Context, userID int64) ([]models.CareerMilestone, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, organization, achieved_at, description, created_at, updated_at
		 FROM career_milestones WHERE user_id = $1 ORDER BY achieved_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying milestones: %w", err)
	}
	defer rows.Close()

	milestones := []models.CareerMilestone{}
	for rows.Next() {
		var m models.CareerMilestone
		err := rows.Scan(&m.ID, &m.UserID, &m.Title, &m.Organization, &m.AchievedAt,
			&m.Description, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning milestone row: %w", err)
		}
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating milestone rows: %w", err)
	}
	return milestones, nil
}

// UpdateMilestone updates a milestone owned by the user
func (r *CareerRepository) UpdateMilestone(ctx context.Context, m *models.CareerMilestone) error {
	sql, args, err := r.sb.Update("career_milestones").
		SetMap(map[string]interface{}{
			"title":        m.Title,
			"organization": m.Organization,
			"achieved_at":  m.AchievedAt,
			"description":  m.Description,
			"updated_at":   time.Now(),
		}).
		Where(squirrel.Eq{"id": m.ID, "user_id": m.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update milestone query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating milestone: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMilestoneNotFound
	}
	return nil
}

// DeleteMilestone removes a milestone owned by the user
func (r *CareerRepository) DeleteMilestone(ctx context.Context, id, userID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		"DELETE FROM career_milestones WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("error deleting milestone: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMilestoneNotFound
	}
	return nil
}

// CreateGoal inserts a career goal
func (r *CareerRepository) CreateGoal(ctx context.Context, g *models.CareerGoal) error {
	sql, args, err := r.sb.Insert("career_goals").
		Columns("user_id", "title", "target_date", "progress").
		Values(g.UserID, g.Title, g.TargetDate, g.Progress).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create goal query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating goal: %w", err)
	}
	return nil
}

// GetGoals retrieves a user's goals, nearest target date first
func (r *CareerRepository) GetGoals(ctx context.Context, userID int64) ([]models.CareerGoal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, target_date, progress, created_at, updated_at
		 FROM career_goals WHERE user_id = $1 ORDER BY target_date ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying goals: %w", err)
	}
	defer rows.Close()

	goals := []models.CareerGoal{}
	for rows.Next() {
		var g models.CareerGoal
		err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.TargetDate, &g.Progress,
			&g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning goal row: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goal rows: %w", err)
	}
	return goals, nil
}

// UpdateGoal updates a goal owned by the user
func (r *CareerRepository) UpdateGoal(ctx context.Context, g *models.CareerGoal) error {
	sql, args, err := r.sb.Update("career_goals").
		SetMap(map[string]interface{}{
			"title":       g.Title,
			"target_date": g.TargetDate,
			"progress":    g.Progress,
			"updated_at":  time.Now(),
		}).
		Where(squirrel.Eq{"id": g.ID, "user_id": g.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update goal query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating goal: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}

// DeleteGoal removes a goal owned by the user
func (r *CareerRepository) DeleteGoal(ctx context.Context, id, userID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		"DELETE FROM career_goals WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("error deleting goal: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}

// CreateSkill inserts a skill record
func (r *CareerRepository) CreateSkill(ctx context.Context, s *models.SkillProgress) error {
	sql, args, err := r.sb.Insert("skill_progress").
		Columns("user_id", "skill_name", "level").
		Values(s.UserID, s.SkillName, s.Level).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create skill query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating skill: %w", err)
	}
	return nil
}

// GetSkills retrieves a user's skills, highest level first
func (r *CareerRepository) GetSkills(ctx context.Context, userID int64) ([]models.SkillProgress, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, skill_name, level, created_at, updated_at
		 FROM skill_progress WHERE user_id = $1 ORDER BY level DESC, skill_name ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying skills: %w", err)
	}
	defer rows.Close()

	skills := []models.SkillProgress{}
	for rows.Next() {
		var s models.SkillProgress
		err := rows.Scan(&s.ID, &s.UserID, &s.SkillName, &s.Level, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning skill row: %w", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skill rows: %w", err)
	}
	return skills, nil
}

// UpdateSkill updates a skill record owned by the user
func (r *CareerRepository) UpdateSkill(ctx context.Context, s *models.SkillProgress) error {
	sql, args, err := r.sb.Update("skill_progress").
		SetMap(map[string]interface{}{
			"skill_name": s.SkillName,
			"level":      s.Level,
			"updated_at": time.Now(),
		}).
		Where(squirrel.Eq{"id": s.ID, "user_id": s.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update skill query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating skill: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSkillNotFound
	}
	return nil
}

// DeleteSkill removes a skill record owned by the user
func (r *CareerRepository) DeleteSkill(ctx context.Context, id, userID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		"DELETE FROM skill_progress WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("error deleting skill: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSkillNotFound
	}
	return nil
}
