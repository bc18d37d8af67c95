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

// PaymentController handles the gateway callback endpoints
type PaymentController struct {
	paymentService *services.PaymentService
	logger         zerolog.Logger
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService *services.PaymentService, logger zerolog.Logger) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		logger:         logger,
	}
}

// Verify settles a checkout callback
// @Summary Verify a payment
// @Description Checks the gateway signature server-side. A valid signature captures the payment and confirms the booking; anything else routes the payment to failed.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VerifyPaymentRequest true "Checkout callback payload"
// @Success 200 {object} dto.APIResponse{data=dto.VerifyPaymentResponse}
// @Failure 400 {object} dto.ErrorResponse "Signature verification failed"
// @Failure 404 {object} dto.ErrorResponse "Unknown order"
// @Router /payments/verify [post]
func (c *PaymentController) Verify(ctx *gin.Context) {
	var req dto.VerifyPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.paymentService.Verify(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp, Timestamp: time.Now()})
}

// Dismiss records a checkout closed before completion
// @Summary Dismiss a checkout
// @Description Moves the payment to cancelled and releases the booking back to draft so the student can retry.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DismissPaymentRequest true "Order to dismiss"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Not a party to the payment's booking"
// @Failure 404 {object} dto.ErrorResponse "Unknown order"
// @Failure 409 {object} dto.ErrorResponse "Payment already settled"
// @Router /payments/dismiss [post]
func (c *PaymentController) Dismiss(ctx *gin.Context) {
	var req dto.DismissPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	role := models.RoleType(middleware.GetUserRole(ctx))
	if err := c.paymentService.Dismiss(ctx.Request.Context(), req.OrderID, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Checkout dismissed"},
		Timestamp: time.Now(),
	})
}

// Get returns one payment record
// @Summary Get a payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment id"
// @Success 200 {object} dto.APIResponse{data=models.Payment}
// @Failure 403 {object} dto.ErrorResponse "Not a party to the payment's booking"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Router /payments/{id} [get]
func (c *PaymentController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	role := models.RoleType(middleware.GetUserRole(ctx))
	pmt, err := c.paymentService.Get(ctx.Request.Context(), id, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: pmt, Timestamp: time.Now()})
}
