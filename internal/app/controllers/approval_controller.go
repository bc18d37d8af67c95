package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/app/models/dto"
	"github.com/arnav/gradlink/internal/app/services"
	"github.com/arnav/gradlink/internal/middleware"
	"github.com/arnav/gradlink/internal/pkg/helpers"
)

// ApprovalController handles the admin approval queue
type ApprovalController struct {
	approvalService *services.ApprovalService
	logger          zerolog.Logger
}

// NewApprovalController creates a new ApprovalController
func NewApprovalController(approvalService *services.ApprovalService, logger zerolog.Logger) *ApprovalController {
	return &ApprovalController{
		approvalService: approvalService,
		logger:          logger,
	}
}

// List returns the approval queue
// @Summary List approval items (admin)
// @Description Search and the status/type/priority filters apply together.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search over title and submitter name"
// @Param status query string false "pending, approved or rejected"
// @Param type query string false "profile, event, donation, job or content"
// @Param priority query string false "low, medium or high"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse
// @Router /admin/approvals [get]
func (c *ApprovalController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	params := dto.ApprovalListParams{
		Search:   ctx.Query("search"),
		Status:   ctx.Query("status"),
		Type:     ctx.Query("type"),
		Priority: ctx.Query("priority"),
		Page:     page,
		Size:     size,
	}

	approvals, total, err := c.approvalService.List(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: gin.H{
			"approvals":  approvals,
			"pagination": helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// Get returns one approval item with its typed details
// @Summary Get an approval item (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Approval id"
// @Success 200 {object} dto.APIResponse{data=models.Approval}
// @Failure 404 {object} dto.ErrorResponse "Approval not found"
// @Router /admin/approvals/{id} [get]
func (c *ApprovalController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	approval, err := c.approvalService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: approval, Timestamp: time.Now()})
}

// PendingCount returns the dashboard badge count
// @Summary Count pending approvals (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /admin/approvals/pending-count [get]
func (c *ApprovalController) PendingCount(ctx *gin.Context) {
	count, err := c.approvalService.PendingCount(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"pending": count}, Timestamp: time.Now()})
}

// Approve approves a pending item
// @Summary Approve a pending item (admin)
// @Description Decisions are final; a second decision on the same item returns 409.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Approval id"
// @Param request body dto.DecideApprovalRequest false "Optional note"
// @Success 200 {object} dto.APIResponse{data=models.Approval}
// @Failure 409 {object} dto.ErrorResponse "Already decided"
// @Router /admin/approvals/{id}/approve [post]
func (c *ApprovalController) Approve(ctx *gin.Context) {
	c.decide(ctx, models.StatusApproved)
}

// Reject rejects a pending item
// @Summary Reject a pending item (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Approval id"
// @Param request body dto.DecideApprovalRequest false "Optional note"
// @Success 200 {object} dto.APIResponse{data=models.Approval}
// @Failure 409 {object} dto.ErrorResponse "Already decided"
// @Router /admin/approvals/{id}/reject [post]
func (c *ApprovalController) Reject(ctx *gin.Context) {
	c.decide(ctx, models.StatusRejected)
}

func (c *ApprovalController) decide(ctx *gin.Context, status models.ReviewStatus) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.DecideApprovalRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
			return
		}
	}

	adminID, _ := middleware.GetUserID(ctx)
	approval, err := c.approvalService.Decide(ctx.Request.Context(), id, adminID, status, req.Note)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: approval, Timestamp: time.Now()})
}
