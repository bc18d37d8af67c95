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

// BookingController handles the booking wizard and the booking lists
type BookingController struct {
	bookingService *services.BookingService
	logger         zerolog.Logger
}

// NewBookingController creates a new BookingController
func NewBookingController(bookingService *services.BookingService, logger zerolog.Logger) *BookingController {
	return &BookingController{
		bookingService: bookingService,
		logger:         logger,
	}
}

// StartWizard opens a booking wizard session
// @Summary Start the booking wizard
// @Description Opens the four-step session booking flow. Nothing is persisted until checkout.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.APIResponse{data=wizard.State}
// @Router /bookings/wizard [post]
func (c *BookingController) StartWizard(ctx *gin.Context) {
	state := c.bookingService.StartWizard()
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: state, Timestamp: time.Now()})
}

// SetField writes one field of a booking session
// @Summary Set a booking wizard field
// @Description Stores a value and clears that field's error. Errors recompute on next.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Wizard session id"
// @Param request body dto.SetFieldRequest true "Field and value"
// @Success 200 {object} dto.APIResponse{data=wizard.State}
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /bookings/wizard/{sessionId}/fields [put]
func (c *BookingController) SetField(ctx *gin.Context) {
	var req dto.SetFieldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	state, err := c.bookingService.SetField(ctx.Param("sessionId"), req.Field, req.Value)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: state, Timestamp: time.Now()})
}

// Next validates the current step and advances
// @Summary Advance the booking wizard
// @Description Validates only the current step. On failure the step stays put and the errors are in the state.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Wizard session id"
// @Success 200 {object} dto.APIResponse{data=wizard.State}
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /bookings/wizard/{sessionId}/next [post]
func (c *BookingController) Next(ctx *gin.Context) {
	state, err := c.bookingService.Next(ctx.Param("sessionId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: state, Timestamp: time.Now()})
}

// Previous steps the booking wizard back
// @Summary Step the booking wizard back
// @Description Moves one step back without validating. At step 1 it is a no-op.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Wizard session id"
// @Success 200 {object} dto.APIResponse{data=wizard.State}
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /bookings/wizard/{sessionId}/previous [post]
func (c *BookingController) Previous(ctx *gin.Context) {
	state, err := c.bookingService.Previous(ctx.Param("sessionId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: state, Timestamp: time.Now()})
}

// GetState returns the wizard snapshot for rendering
// @Summary Get the booking wizard state
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Wizard session id"
// @Success 200 {object} dto.APIResponse{data=wizard.State}
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /bookings/wizard/{sessionId} [get]
func (c *BookingController) GetState(ctx *gin.Context) {
	state, err := c.bookingService.GetState(ctx.Param("sessionId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: state, Timestamp: time.Now()})
}

// Quote returns the summary-step price quote
// @Summary Quote a booking
// @Description Computes hours times the mentor's current hourly rate, in whole rupees.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Wizard session id"
// @Success 200 {object} dto.APIResponse{data=dto.BookingQuote}
// @Failure 404 {object} dto.ErrorResponse "Session or mentor not found"
// @Router /bookings/wizard/{sessionId}/quote [get]
func (c *BookingController) Quote(ctx *gin.Context) {
	quote, err := c.bookingService.Quote(ctx.Request.Context(), ctx.Param("sessionId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: quote, Timestamp: time.Now()})
}

// Checkout turns a completed wizard session into a gateway order
// @Summary Check out a booking
// @Description Students only. Creates the booking, opens a payment order and returns the checkout options for the gateway widget.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Wizard session id"
// @Success 201 {object} dto.APIResponse{data=dto.BookingCheckoutResponse}
// @Failure 400 {object} dto.ErrorResponse "Wizard not completed"
// @Failure 409 {object} dto.ErrorResponse "Mentor unavailable or slot taken"
// @Failure 502 {object} dto.ErrorResponse "Gateway order creation failed"
// @Router /bookings/wizard/{sessionId}/checkout [post]
func (c *BookingController) Checkout(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	resp, err := c.bookingService.Checkout(ctx.Request.Context(), ctx.Param("sessionId"), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp, Timestamp: time.Now()})
}

// CancelWizard discards a booking session
// @Summary Cancel the booking wizard
// @Description Dismisses the session and aborts any in-flight order creation it owns.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Wizard session id"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /bookings/wizard/{sessionId} [delete]
func (c *BookingController) CancelWizard(ctx *gin.Context) {
	c.bookingService.CancelWizard(ctx.Param("sessionId"))
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Booking wizard cancelled"},
		Timestamp: time.Now(),
	})
}

// ListMine returns the caller's bookings
// @Summary List own bookings
// @Description Students see sessions they booked; alumni see sessions booked with them.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /bookings [get]
func (c *BookingController) ListMine(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	role := models.RoleType(middleware.GetUserRole(ctx))

	var (
		bookings []models.Booking
		err      error
	)
	if role == models.RoleAlumni {
		bookings, err = c.bookingService.ListForMentor(ctx.Request.Context(), userID)
	} else {
		bookings, err = c.bookingService.ListForStudent(ctx.Request.Context(), userID)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: bookings, Timestamp: time.Now()})
}

// Get returns one booking
// @Summary Get a booking
// @Description Only the student, the mentor or an admin can read a booking.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking id"
// @Success 200 {object} dto.APIResponse{data=models.Booking}
// @Failure 403 {object} dto.ErrorResponse "Not a party to the booking"
// @Failure 404 {object} dto.ErrorResponse "Booking not found"
// @Router /bookings/{id} [get]
func (c *BookingController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	role := models.RoleType(middleware.GetUserRole(ctx))
	booking, err := c.bookingService.Get(ctx.Request.Context(), id, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: booking, Timestamp: time.Now()})
}
