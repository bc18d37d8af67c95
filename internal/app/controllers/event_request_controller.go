package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arnav/gradlink/internal/app/models/dto"
	"github.com/arnav/gradlink/internal/app/services"
	"github.com/arnav/gradlink/internal/middleware"
	"github.com/arnav/gradlink/internal/pkg/helpers"
)

// EventRequestController handles alumni event proposals
type EventRequestController struct {
	eventService *services.EventRequestService
	logger       zerolog.Logger
}

// NewEventRequestController creates a new EventRequestController
func NewEventRequestController(eventService *services.EventRequestService, logger zerolog.Logger) *EventRequestController {
	return &EventRequestController{
		eventService: eventService,
		logger:       logger,
	}
}

// Submit files an event request
// @Summary Submit an event request
// @Description Alumni only. Filing a request also queues an approval item; the admin decision drives both.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequestRequest true "Event proposal"
// @Success 201 {object} dto.APIResponse{data=models.EventRequest}
// @Failure 400 {object} dto.ErrorResponse "Past date or bad priority"
// @Router /events/requests [post]
func (c *EventRequestController) Submit(ctx *gin.Context) {
	var req dto.CreateEventRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	eventReq, err := c.eventService.Submit(ctx.Request.Context(), userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: eventReq, Timestamp: time.Now()})
}

// List returns event requests for the admin screens
// @Summary List event requests (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search over title and venue"
// @Param status query string false "Status filter"
// @Param priority query string false "Priority filter"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse
// @Router /admin/events/requests [get]
func (c *EventRequestController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	params := dto.EventRequestListParams{
		Search:   ctx.Query("search"),
		Status:   ctx.Query("status"),
		Priority: ctx.Query("priority"),
		Page:     page,
		Size:     size,
	}

	requests, total, err := c.eventService.List(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: gin.H{
			"eventRequests": requests,
			"pagination":    helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// Get returns one event request
// @Summary Get an event request
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event request id"
// @Success 200 {object} dto.APIResponse{data=models.EventRequest}
// @Failure 404 {object} dto.ErrorResponse "Event request not found"
// @Router /events/requests/{id} [get]
func (c *EventRequestController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	eventReq, err := c.eventService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: eventReq, Timestamp: time.Now()})
}

// ListMine returns the caller's submitted event requests
// @Summary List own event requests
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /events/requests/mine [get]
func (c *EventRequestController) ListMine(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	requests, err := c.eventService.ListMine(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: requests, Timestamp: time.Now()})
}
