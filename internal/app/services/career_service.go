package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/app/models/dto"
	"github.com/arnav/gradlink/internal/app/repositories"
	"github.com/arnav/gradlink/internal/pkg/apperrors"
)

const dateLayout = "2006-01-02"

// CareerService handles milestones, goals and skill records. All
// operations are scoped to the owning user; deletion is supported
// everywhere.
type CareerService struct {
	careerRepo *repositories.CareerRepository
	logger     zerolog.Logger
}

// NewCareerService creates a new CareerService
func NewCareerService(careerRepo *repositories.CareerRepository, logger zerolog.Logger) *CareerService {
	return &CareerService{
		careerRepo: careerRepo,
		logger:     logger,
	}
}

// CreateMilestone records a career milestone
func (s *CareerService) CreateMilestone(ctx context.Context, userID int64, req dto.MilestoneRequest) (*models.CareerMilestone, error) {
	achievedAt, err := time.Parse(dateLayout, req.AchievedAt)
	if err != nil {
		return nil, apperrors.NewBadRequestError("achievedAt must be a YYYY-MM-DD date")
	}

	m := &models.CareerMilestone{
		UserID:       userID,
		Title:        req.Title,
		Organization: req.Organization,
		AchievedAt:   achievedAt,
		Description:  req.Description,
	}
	if err := s.careerRepo.CreateMilestone(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListMilestones returns the user's milestones
func (s *CareerService) ListMilestones(ctx context.Context, userID int64) ([]models.CareerMilestone, error) {
	return s.careerRepo.GetMilestones(ctx, userID)
}

// UpdateMilestone updates one of the user's milestones
func (s *CareerService) UpdateMilestone(ctx context.Context, id, userID int64, req dto.MilestoneRequest) (*models.CareerMilestone, error) {
	achievedAt, err := time.Parse(dateLayout, req.AchievedAt)
	if err != nil {
		return nil, apperrors.NewBadRequestError("achievedAt must be a YYYY-MM-DD date")
	}

	m := &models.CareerMilestone{
		ID:           id,
		UserID:       userID,
		Title:        req.Title,
		Organization: req.Organization,
		AchievedAt:   achievedAt,
		Description:  req.Description,
	}
	if err := s.careerRepo.UpdateMilestone(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMilestone removes one of the user's milestones
func (s *CareerService) DeleteMilestone(ctx context.Context, id, userID int64) error {
	return s.careerRepo.DeleteMilestone(ctx, id, userID)
}

// CreateGoal records a career goal
func (s *CareerService) CreateGoal(ctx context.Context, userID int64, req dto.GoalRequest) (*models.CareerGoal, error) {
	targetDate, err := time.Parse(dateLayout, req.TargetDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("targetDate must be a YYYY-MM-DD date")
	}
	if req.Progress < models.GoalProgressMin || req.Progress > models.GoalProgressMax {
		return nil, apperrors.NewBadRequestError("progress must be between 0 and 100")
	}

	g := &models.CareerGoal{
		UserID:     userID,
		Title:      req.Title,
		TargetDate: targetDate,
		Progress:   req.Progress,
	}
	if err := s.careerRepo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ListGoals returns the user's goals
func (s *CareerService) ListGoals(ctx context.Context, userID int64) ([]models.CareerGoal, error) {
	return s.careerRepo.GetGoals(ctx, userID)
}

// UpdateGoal updates one of the user's goals
func (s *CareerService) UpdateGoal(ctx context.Context, id, userID int64, req dto.GoalRequest) (*models.CareerGoal, error) {
	targetDate, err := time.Parse(dateLayout, req.TargetDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("targetDate must be a YYYY-MM-DD date")
	}
	if req.Progress < models.GoalProgressMin || req.Progress > models.GoalProgressMax {
		return nil, apperrors.NewBadRequestError("progress must be between 0 and 100")
	}

	g := &models.CareerGoal{
		ID:         id,
		UserID:     userID,
		Title:      req.Title,
		TargetDate: targetDate,
		Progress:   req.Progress,
	}
	if err := s.careerRepo.UpdateGoal(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// DeleteGoal removes one of the user's goals
func (s *CareerService) DeleteGoal(ctx context.Context, id, userID int64) error {
	return s.careerRepo.DeleteGoal(ctx, id, userID)
}

// CreateSkill records a skill
func (s *CareerService) CreateSkill(ctx context.Context, userID int64, req dto.SkillRequest) (*models.SkillProgress, error) {
	if req.Level < models.SkillLevelMin || req.Level > models.SkillLevelMax {
		return nil, apperrors.NewBadRequestError("level must be between 1 and 5")
	}

	sk := &models.SkillProgress{
		UserID:    userID,
		SkillName: req.SkillName,
		Level:     req.Level,
	}
	if err := s.careerRepo.CreateSkill(ctx, sk); err != nil {
		return nil, err
	}
	return sk, nil
}

// ListSkills returns the user's skill records
func (s *CareerService) ListSkills(ctx context.Context, userID int64) ([]models.SkillProgress, error) {
	return s.careerRepo.GetSkills(ctx, userID)
}

// UpdateSkill updates one of the user's skill records
func (s *CareerService) UpdateSkill(ctx context.Context, id, userID int64, req dto.SkillRequest) (*models.SkillProgress, error) {
	if req.Level < models.SkillLevelMin || req.Level > models.SkillLevelMax {
		return nil, apperrors.NewBadRequestError("level must be between 1 and 5")
	}

	sk := &models.SkillProgress{
		ID:        id,
		UserID:    userID,
		SkillName: req.SkillName,
		Level:     req.Level,
	}
	if err := s.careerRepo.UpdateSkill(ctx, sk); err != nil {
		return nil, err
	}
	return sk, nil
}

// DeleteSkill removes one of the user's skill records
func (s *CareerService) DeleteSkill(ctx context.Context, id, userID int64) error {
	return s.careerRepo.DeleteSkill(ctx, id, userID)
}
