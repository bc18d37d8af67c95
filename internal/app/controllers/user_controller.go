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
	"github.com/arnav/gradlink/internal/pkg/helpers"
)

// UserController handles profile and admin user management endpoints
type UserController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// GetMe returns the caller's profile
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /users/me [get]
func (c *UserController) GetMe(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	user, profile, err := c.userService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"user": user, "profile": profile},
		Timestamp: time.Now(),
	})
}

// UpdateMe updates the caller's profile
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Router /users/me [put]
func (c *UserController) UpdateMe(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	user, err := c.userService.UpdateProfile(ctx.Request.Context(), userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user, Timestamp: time.Now()})
}

// UploadProfilePhoto stores a new profile photo
// @Summary Upload a profile photo
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Image file (jpg, png or webp)"
// @Success 200 {object} dto.APIResponse
// @Router /users/me/photo [post]
func (c *UserController) UploadProfilePhoto(ctx *gin.Context) {
	file, err := ctx.FormFile("photo")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A photo file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	url, err := c.userService.UpdateProfilePhoto(ctx.Request.Context(), userID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"profilePhotoUrl": url},
		Timestamp: time.Now(),
	})
}

// UpdateMentorSettings updates the caller's mentoring configuration
// @Summary Update mentor settings
// @Description Alumni only. Sets company, title, hourly rate and availability.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateMentorSettingsRequest true "Mentor settings"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Not an alumni account"
// @Router /users/me/mentor-settings [put]
func (c *UserController) UpdateMentorSettings(ctx *gin.Context) {
	var req dto.UpdateMentorSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	if err := c.userService.UpdateMentorSettings(ctx.Request.Context(), userID, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Mentor settings updated"},
		Timestamp: time.Now(),
	})
}

// ListMentors returns alumni open to mentoring
// @Summary List available mentors
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search over name, company and title"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse
// @Router /mentors [get]
func (c *UserController) ListMentors(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	mentors, total, err := c.userService.ListMentors(ctx.Request.Context(), ctx.Query("search"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: gin.H{
			"mentors":    mentors,
			"pagination": helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// ListUsers returns the admin user list
// @Summary List users (admin)
// @Description Search and the role/department/status filters apply together.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search over name and email"
// @Param role query string false "Role filter"
// @Param department query string false "Department filter"
// @Param active query bool false "Active status filter"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse
// @Router /admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	params := dto.UserListParams{
		Search:     ctx.Query("search"),
		Role:       ctx.Query("role"),
		Department: ctx.Query("department"),
		Page:       page,
		Size:       size,
	}
	if activeStr := ctx.Query("active"); activeStr != "" {
		active := activeStr == "true"
		params.Active = &active
	}

	users, total, err := c.userService.ListUsers(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: gin.H{
			"users":      users,
			"pagination": helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// SetUserStatus activates or deactivates an account
// @Summary Activate or deactivate a user (admin)
// @Description Accounts are disabled, never deleted.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Param request body dto.SetUserStatusRequest true "Desired status"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id}/status [put]
func (c *UserController) SetUserStatus(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.SetUserStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.userService.SetUserStatus(ctx.Request.Context(), id, req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "User status updated"},
		Timestamp: time.Now(),
	})
}
