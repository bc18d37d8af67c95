// Package controllers handles HTTP request handling
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
)

// AuthController handles authentication and the signup wizard endpoints
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// StartSignup opens a signup wizard session
// @Summary Start the signup wizard
// @Description Opens a multi-step signup session for the given role. Students walk 5 steps, alumni 6.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.StartSignupRequest true "Signup role"
// @Success 201 {object} dto.APIResponse{data=wizard.State}
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Router /auth/signup [post]
func (c *AuthController) StartSignup(ctx *gin.Context) {
	var req dto.StartSignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	state, err := c.authService.StartSignup(models.RoleType(req.Role))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: state, Timestamp: time.Now()})
}

// SetSignupField writes one field of the signup form
// @Summary Set a signup wizard field
// @Description Stores a field value and clears that field's error immediately. Errors recompute on next.
// @Tags auth
// @Accept json
// @Produce json
// @Param sessionId path string true "Wizard session id"
// @Param request body dto.SetFieldRequest true "Field and value"
// @Success 200 {object} dto.APIResponse{data=wizard.State}
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /auth/signup/{sessionId}/fields [put]
func (c *AuthController) SetSignupField(ctx *gin.Context) {
	var req dto.SetFieldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	state, err := c.authService.SetSignupField(ctx.Param("sessionId"), req.Field, req.Value)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: state, Timestamp: time.Now()})
}

// SignupNext validates the current step and advances
// @Summary Advance the signup wizard
// @Description Validates only the current step. On failure the errors are returned and the step stays put. Passing the final step creates the account and returns a token pair.
// @Tags auth
// @Produce json
// @Param sessionId path string true "Wizard session id"
// @Success 200 {object} dto.APIResponse{data=wizard.State}
// @Success 201 {object} dto.APIResponse{data=dto.TokenResponse} "Account created"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /auth/signup/{sessionId}/next [post]
func (c *AuthController) SignupNext(ctx *gin.Context) {
	state, tokens, err := c.authService.SignupNext(ctx.Request.Context(), ctx.Param("sessionId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if tokens != nil {
		ctx.JSON(http.StatusCreated, dto.APIResponse{Data: tokens, Timestamp: time.Now()})
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: state, Timestamp: time.Now()})
}

// SignupPrevious steps the signup wizard back
// @Summary Step the signup wizard back
// @Description Moves one step back without validating. At step 1 it is a no-op.
// @Tags auth
// @Produce json
// @Param sessionId path string true "Wizard session id"
// @Success 200 {object} dto.APIResponse{data=wizard.State}
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /auth/signup/{sessionId}/previous [post]
func (c *AuthController) SignupPrevious(ctx *gin.Context) {
	state, err := c.authService.SignupPrevious(ctx.Param("sessionId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: state, Timestamp: time.Now()})
}

// CancelSignup discards a signup session
// @Summary Cancel the signup wizard
// @Tags auth
// @Produce json
// @Param sessionId path string true "Wizard session id"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /auth/signup/{sessionId} [delete]
func (c *AuthController) CancelSignup(ctx *gin.Context) {
	c.authService.CancelSignup(ctx.Param("sessionId"))
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Signup cancelled"},
		Timestamp: time.Now(),
	})
}

// Login authenticates a user
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse}
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account disabled"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	tokens, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: tokens, Timestamp: time.Now()})
}

// RefreshToken rotates a refresh token
// @Summary Refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse}
// @Failure 401 {object} dto.ErrorResponse "Expired, revoked or unknown token"
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	tokens, err := c.authService.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: tokens, Timestamp: time.Now()})
}

// Logout revokes the presented refresh token
// @Summary Log out
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token to revoke"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), req.RefreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Logged out"},
		Timestamp: time.Now(),
	})
}

// VerifyEmail consumes an email verification token
// @Summary Verify email address
// @Tags auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired token"
// @Router /auth/verify-email [get]
func (c *AuthController) VerifyEmail(ctx *gin.Context) {
	token := ctx.Query("token")
	if token == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Verification token is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authService.VerifyEmail(ctx.Request.Context(), token); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Email verified"},
		Timestamp: time.Now(),
	})
}

// ResendVerification sends a fresh verification email
// @Summary Resend the verification email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResendVerificationRequest true "Account email"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 409 {object} dto.ErrorResponse "Already verified"
// @Router /auth/resend-verification [post]
func (c *AuthController) ResendVerification(ctx *gin.Context) {
	var req dto.ResendVerificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.authService.ResendVerification(ctx.Request.Context(), req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Verification email sent"},
		Timestamp: time.Now(),
	})
}
