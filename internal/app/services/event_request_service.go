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

// EventRequestService handles alumni event proposals. Submitting one also
// files an approval item of type "event" so the admin queue and the event
// screens read the same decision.
type EventRequestService struct {
	eventRepo    *repositories.EventRequestRepository
	approvalRepo *repositories.ApprovalRepository
	logger       zerolog.Logger
}

// NewEventRequestService creates a new EventRequestService
func NewEventRequestService(eventRepo *repositories.EventRequestRepository, approvalRepo *repositories.ApprovalRepository, logger zerolog.Logger) *EventRequestService {
	return &EventRequestService{
		eventRepo:    eventRepo,
		approvalRepo: approvalRepo,
		logger:       logger,
	}
}

// Submit files an event request together with its approval item
func (s *EventRequestService) Submit(ctx context.Context, submitterID int64, req dto.CreateEventRequestRequest) (*models.EventRequest, error) {
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, apperrors.NewBadRequestError("scheduledAt must be an RFC 3339 timestamp")
	}
	if scheduledAt.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("event date must be in the future")
	}
	if !models.ValidPriority(models.Priority(req.Priority)) {
		return nil, apperrors.NewBadRequestError("priority must be low, medium or high")
	}

	eventReq := &models.EventRequest{
		SubmitterID:   submitterID,
		Title:         req.Title,
		Description:   req.Description,
		Venue:         req.Venue,
		ScheduledAt:   scheduledAt,
		ExpectedCount: req.ExpectedCount,
		Priority:      models.Priority(req.Priority),
	}
	if err := s.eventRepo.Create(ctx, eventReq); err != nil {
		return nil, err
	}

	approval := &models.Approval{
		Type:        models.ApprovalTypeEvent,
		SubmitterID: submitterID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.Priority(req.Priority),
		Details: models.EventDetails{
			EventRequestID: eventReq.ID,
			Title:          req.Title,
			Venue:          req.Venue,
			ScheduledAt:    scheduledAt,
			ExpectedCount:  req.ExpectedCount,
		},
	}
	if err := s.approvalRepo.Create(ctx, approval); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("eventRequestID", eventReq.ID).
		Int64("approvalID", approval.ID).
		Int64("submitterID", submitterID).
		Msg("Event request submitted for approval")
	return eventReq, nil
}

// List returns event requests with filters applied as a conjunction
func (s *EventRequestService) List(ctx context.Context, params dto.EventRequestListParams) ([]models.EventRequest, int64, error) {
	return s.eventRepo.GetAll(ctx, params)
}

// Get returns one event request
func (s *EventRequestService) Get(ctx context.Context, id int64) (*models.EventRequest, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// ListMine returns the caller's submitted event requests
func (s *EventRequestService) ListMine(ctx context.Context, submitterID int64) ([]models.EventRequest, error) {
	return s.eventRepo.ListBySubmitter(ctx, submitterID)
}
