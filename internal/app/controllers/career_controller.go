package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arnav/gradlink/internal/app/models/dto"
	"github.com/arnav/gradlink/internal/app/services"
	"github.com/arnav/gradlink/internal/middleware"
)

// CareerController handles milestone, goal and skill tracking endpoints.
// Everything is scoped to the authenticated user.
type CareerController struct {
	careerService *services.CareerService
	logger        zerolog.Logger
}

// NewCareerController creates a new CareerController
func NewCareerController(careerService *services.CareerService, logger zerolog.Logger) *CareerController {
	return &CareerController{
		careerService: careerService,
		logger:        logger,
	}
}

// CreateMilestone records a career milestone
// @Summary Add a career milestone
// @Tags career
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MilestoneRequest true "Milestone"
// @Success 201 {object} dto.APIResponse{data=models.CareerMilestone}
// @Router /career/milestones [post]
func (c *CareerController) CreateMilestone(ctx *gin.Context) {
	var req dto.MilestoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	milestone, err := c.careerService.CreateMilestone(ctx.Request.Context(), userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: milestone, Timestamp: time.Now()})
}

// ListMilestones returns the caller's milestones
// @Summary List own milestones
// @Tags career
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /career/milestones [get]
func (c *CareerController) ListMilestones(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	milestones, err := c.careerService.ListMilestones(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: milestones, Timestamp: time.Now()})
}

// UpdateMilestone updates a milestone
// @Summary Update a milestone
// @Tags career
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Milestone id"
// @Param request body dto.MilestoneRequest true "Milestone"
// @Success 200 {object} dto.APIResponse{data=models.CareerMilestone}
// @Failure 404 {object} dto.ErrorResponse "Milestone not found"
// @Router /career/milestones/{id} [put]
func (c *CareerController) UpdateMilestone(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.MilestoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	milestone, err := c.careerService.UpdateMilestone(ctx.Request.Context(), id, userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: milestone, Timestamp: time.Now()})
}

// DeleteMilestone removes a milestone
// @Summary Delete a milestone
// @Tags career
// @Produce json
// @Security BearerAuth
// @Param id path int true "Milestone id"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Milestone not found"
// @Router /career/milestones/{id} [delete]
func (c *CareerController) DeleteMilestone(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	if err := c.careerService.DeleteMilestone(ctx.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Milestone deleted"},
		Timestamp: time.Now(),
	})
}

// CreateGoal records a career goal
// @Summary Add a career goal
// @Tags career
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GoalRequest true "Goal"
// @Success 201 {object} dto.APIResponse{data=models.CareerGoal}
// @Router /career/goals [post]
func (c *CareerController) CreateGoal(ctx *gin.Context) {
	var req dto.GoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	goal, err := c.careerService.CreateGoal(ctx.Request.Context(), userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: goal, Timestamp: time.Now()})
}

// ListGoals returns the caller's goals
// @Summary List own goals
// @Tags career
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /career/goals [get]
func (c *CareerController) ListGoals(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	goals, err := c.careerService.ListGoals(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: goals, Timestamp: time.Now()})
}

// UpdateGoal updates a goal
// @Summary Update a goal
// @Description Progress moves in either direction between 0 and 100.
// @Tags career
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal id"
// @Param request body dto.GoalRequest true "Goal"
// @Success 200 {object} dto.APIResponse{data=models.CareerGoal}
// @Failure 404 {object} dto.ErrorResponse "Goal not found"
// @Router /career/goals/{id} [put]
func (c *CareerController) UpdateGoal(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.GoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	goal, err := c.careerService.UpdateGoal(ctx.Request.Context(), id, userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: goal, Timestamp: time.Now()})
}

// DeleteGoal removes a goal
// @Summary Delete a goal
// @Tags career
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal id"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Goal not found"
// @Router /career/goals/{id} [delete]
func (c *CareerController) DeleteGoal(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	if err := c.careerService.DeleteGoal(ctx.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Goal deleted"},
		Timestamp: time.Now(),
	})
}

// CreateSkill records a skill
// @Summary Add a skill
// @Tags career
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SkillRequest true "Skill"
// @Success 201 {object} dto.APIResponse{data=models.SkillProgress}
// @Router /career/skills [post]
func (c *CareerController) CreateSkill(ctx *gin.Context) {
	var req dto.SkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	skill, err := c.careerService.CreateSkill(ctx.Request.Context(), userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: skill, Timestamp: time.Now()})
}

// ListSkills returns the caller's skill records
// @Summary List own skills
// @Tags career
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /career/skills [get]
func (c *CareerController) ListSkills(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	skills, err := c.careerService.ListSkills(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: skills, Timestamp: time.Now()})
}

// UpdateSkill updates a skill record
// @Summary Update a skill
// @Tags career
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Skill id"
// @Param request body dto.SkillRequest true "Skill"
// @Success 200 {object} dto.APIResponse{data=models.SkillProgress}
// @Failure 404 {object} dto.ErrorResponse "Skill not found"
// @Router /career/skills/{id} [put]
func (c *CareerController) UpdateSkill(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	skill, err := c.careerService.UpdateSkill(ctx.Request.Context(), id, userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: skill, Timestamp: time.Now()})
}

// DeleteSkill removes a skill record
// @Summary Delete a skill
// @Tags career
// @Produce json
// @Security BearerAuth
// @Param id path int true "Skill id"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Skill not found"
// @Router /career/skills/{id} [delete]
func (c *CareerController) DeleteSkill(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	if err := c.careerService.DeleteSkill(ctx.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Skill deleted"},
		Timestamp: time.Now(),
	})
}
