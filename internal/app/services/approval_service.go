package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/app/models/dto"
	"github.com/arnav/gradlink/internal/app/repositories"
	"github.com/arnav/gradlink/internal/pkg/apperrors"
)

// ApprovalService handles the canonical admin approval queue. A decision
// is one-way: once approved or rejected an item never reopens.
type ApprovalService struct {
	approvalRepo        *repositories.ApprovalRepository
	eventRepo           *repositories.EventRequestRepository
	notificationService *NotificationService
	logger              zerolog.Logger
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(
	approvalRepo *repositories.ApprovalRepository,
	eventRepo *repositories.EventRequestRepository,
	notificationService *NotificationService,
	logger zerolog.Logger,
) *ApprovalService {
	return &ApprovalService{
		approvalRepo:        approvalRepo,
		eventRepo:           eventRepo,
		notificationService: notificationService,
		logger:              logger,
	}
}

// List returns the approval queue. Search and the categorical filters are
// applied together, so the result is always a subset of the full queue.
func (s *ApprovalService) List(ctx context.Context, params dto.ApprovalListParams) ([]models.Approval, int64, error) {
	return s.approvalRepo.GetAll(ctx, params)
}

// Get returns one approval item with decoded details
func (s *ApprovalService) Get(ctx context.Context, id int64) (*models.Approval, error) {
	return s.approvalRepo.GetByID(ctx, id)
}

// PendingCount returns the dashboard badge count
func (s *ApprovalService) PendingCount(ctx context.Context) (int64, error) {
	return s.approvalRepo.CountPending(ctx)
}

// Decide approves or rejects a pending item. Exactly one row changes: the
// model transition is computed on a copy, the repository write is guarded
// on the pending status, and for event approvals the referenced event
// request is moved in the same call so the screens cannot drift.
func (s *ApprovalService) Decide(ctx context.Context, id, adminID int64, status models.ReviewStatus, note string) (*models.Approval, error) {
	if !status.IsTerminal() {
		return nil, apperrors.NewBadRequestError("decision must be approved or rejected")
	}

	approval, err := s.approvalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	decided, err := approval.Decide(status, adminID, note, time.Now())
	if err != nil {
		return nil, apperrors.ErrApprovalDecided
	}

	if err := s.approvalRepo.RecordDecision(ctx, decided); err != nil {
		return nil, err
	}

	if details, ok := decided.Details.(models.EventDetails); ok {
		if err := s.eventRepo.UpdateStatus(ctx, details.EventRequestID, status); err != nil {
			// The approval row is already decided; log the drift loudly
			s.logger.Error().Err(err).
				Int64("approvalID", decided.ID).
				Int64("eventRequestID", details.EventRequestID).
				Msg("Failed to sync event request with approval decision")
		}
	}

	s.notifySubmitter(ctx, &decided, status)

	s.logger.Info().
		Int64("approvalID", decided.ID).
		Int64("adminID", adminID).
		Str("status", string(status)).
		Msg("Approval decided")
	return &decided, nil
}

func (s *ApprovalService) notifySubmitter(ctx context.Context, approval *models.Approval, status models.ReviewStatus) {
	kind := models.NotificationApprovalDecided
	if approval.Type == models.ApprovalTypeEvent {
		kind = models.NotificationEventDecided
	}

	verb := "approved"
	if status == models.StatusRejected {
		verb = "rejected"
	}
	title := fmt.Sprintf("Your %s submission was %s", approval.Type, verb)
	body := approval.Title
	if approval.DecisionNote != nil {
		body = fmt.Sprintf("%s: %s", approval.Title, *approval.DecisionNote)
	}

	if err := s.notificationService.Notify(ctx, approval.SubmitterID, kind, title, body); err != nil {
		s.logger.Warn().Err(err).Int64("approvalID", approval.ID).Msg("Failed to notify submitter of decision")
	}
}
