package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arnav/gradlink/internal/app/models/dto"
	"github.com/arnav/gradlink/internal/app/services"
	"github.com/arnav/gradlink/internal/middleware"
)

// LeaderboardController serves the alumni engagement leaderboard
type LeaderboardController struct {
	leaderboardService *services.LeaderboardService
	logger             zerolog.Logger
}

// NewLeaderboardController creates a new LeaderboardController
func NewLeaderboardController(leaderboardService *services.LeaderboardService, logger zerolog.Logger) *LeaderboardController {
	return &LeaderboardController{
		leaderboardService: leaderboardService,
		logger:             logger,
	}
}

// Top returns the highest-scoring alumni
// @Summary Get the alumni leaderboard
// @Tags leaderboard
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of entries (default 20, max 100)"
// @Success 200 {object} dto.APIResponse
// @Router /leaderboard [get]
func (c *LeaderboardController) Top(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	entries, err := c.leaderboardService.Top(ctx.Request.Context(), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: entries, Timestamp: time.Now()})
}
