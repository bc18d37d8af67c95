package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/app/models/dto"
	"github.com/arnav/gradlink/internal/pkg/apperrors"
	"github.com/arnav/gradlink/internal/pkg/email"
	"github.com/arnav/gradlink/internal/pkg/payment"
)

// paymentStore is the slice of the payment repository the service needs
type paymentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	UpdateStatus(ctx context.Context, id int64, from, to models.PaymentStatus) error
	RecordCapture(ctx context.Context, id int64, gatewayPaymentID string) error
	RecordFailure(ctx context.Context, id int64, reason string) error
}

// bookingStore covers the booking reads and status moves payments trigger
type bookingStore interface {
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to models.BookingStatus) error
}

type userStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type notifier interface {
	Notify(ctx context.Context, recipientID int64, kind models.NotificationKind, title, body string) error
}

// PaymentService verifies checkout callbacks and settles bookings. The
// browser's claim of success is never trusted: only a server-verified
// signature moves a payment to captured.
type PaymentService struct {
	paymentRepo  paymentStore
	bookingRepo  bookingStore
	userRepo     userStore
	gateway      payment.Gateway
	notifier     notifier
	emailService email.EmailService
	logger       zerolog.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo paymentStore,
	bookingRepo bookingStore,
	userRepo userStore,
	gateway payment.Gateway,
	notifier notifier,
	emailService email.EmailService,
	logger zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		gateway:      gateway,
		notifier:     notifier,
		emailService: emailService,
		logger:       logger,
	}
}

// Verify settles a checkout callback. The payment walks created ->
// verifying -> captured|failed; any signature mismatch or inconsistency
// routes to failed, never to captured. A captured payment confirms its
// booking and notifies both parties.
func (s *PaymentService) Verify(ctx context.Context, req dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error) {
	pmt, err := s.paymentRepo.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.UpdateStatus(ctx, pmt.ID, models.PaymentCreated, models.PaymentVerifying); err != nil {
		if errors.Is(err, apperrors.ErrInvalidStateTransition) {
			// Already settled one way or the other; report the stored outcome
			return s.settledResponse(ctx, pmt.ID)
		}
		return nil, err
	}

	if err := s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature); err != nil {
		s.fail(ctx, pmt, "signature verification failed")
		return &dto.VerifyPaymentResponse{Success: false, Status: string(models.PaymentFailed)}, apperrors.ErrVerificationFailed
	}

	if err := s.paymentRepo.RecordCapture(ctx, pmt.ID, req.PaymentID); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, pmt.BookingID)
	if err != nil {
		return nil, err
	}
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, models.BookingPendingPayment, models.BookingConfirmed); err != nil {
		return nil, err
	}

	s.announceConfirmation(ctx, booking, pmt)

	s.logger.Info().
		Int64("paymentID", pmt.ID).
		Int64("bookingID", booking.ID).
		Str("orderId", req.OrderID).
		Msg("Payment captured, booking confirmed")

	return &dto.VerifyPaymentResponse{
		Success:   true,
		Status:    string(models.PaymentCaptured),
		BookingID: booking.ID,
	}, nil
}

// Dismiss records a checkout dismissed before completion: the payment
// moves to its distinct cancelled state and the booking is released back
// to draft so the student can retry. Only a party to the booking or an
// admin may dismiss.
func (s *PaymentService) Dismiss(ctx context.Context, orderID string, callerID int64, callerRole models.RoleType) error {
	pmt, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	booking, err := s.bookingRepo.GetByID(ctx, pmt.BookingID)
	if err != nil {
		return err
	}
	if booking.StudentID != callerID && booking.MentorID != callerID && callerRole != models.RoleAdmin {
		return apperrors.NewForbiddenError("this payment is not yours")
	}

	if err := s.paymentRepo.UpdateStatus(ctx, pmt.ID, models.PaymentCreated, models.PaymentCancelled); err != nil {
		return err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, pmt.BookingID, models.BookingPendingPayment, models.BookingDraft); err != nil {
		s.logger.Warn().Err(err).Int64("bookingID", pmt.BookingID).Msg("Failed to release booking after checkout dismissal")
	}

	s.logger.Info().Int64("paymentID", pmt.ID).Str("orderId", orderID).Msg("Checkout dismissed, payment cancelled")
	return nil
}

// Get returns one payment record if the caller is a party to its booking
// or an admin
func (s *PaymentService) Get(ctx context.Context, id, callerID int64, callerRole models.RoleType) (*models.Payment, error) {
	pmt, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, pmt.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.StudentID != callerID && booking.MentorID != callerID && callerRole != models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("this payment is not yours")
	}
	return pmt, nil
}

func (s *PaymentService) settledResponse(ctx context.Context, paymentID int64) (*dto.VerifyPaymentResponse, error) {
	pmt, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return &dto.VerifyPaymentResponse{
		Success:   pmt.Status == models.PaymentCaptured,
		Status:    string(pmt.Status),
		BookingID: pmt.BookingID,
	}, nil
}

// fail records the failure and releases the held slot so the student can
// retry from a fresh checkout
func (s *PaymentService) fail(ctx context.Context, pmt *models.Payment, reason string) {
	if err := s.paymentRepo.RecordFailure(ctx, pmt.ID, reason); err != nil {
		s.logger.Error().Err(err).Int64("paymentID", pmt.ID).Msg("Failed to record payment failure")
	}

	if err := s.bookingRepo.UpdateStatus(ctx, pmt.BookingID, models.BookingPendingPayment, models.BookingDraft); err != nil {
		s.logger.Warn().Err(err).Int64("bookingID", pmt.BookingID).Msg("Failed to release booking after payment failure")
	}

	booking, err := s.bookingRepo.GetByID(ctx, pmt.BookingID)
	if err != nil {
		return
	}
	title := "Payment failed"
	body := fmt.Sprintf("Your payment for %q did not go through: %s", booking.Topic, reason)
	if err := s.notifier.Notify(ctx, booking.StudentID, models.NotificationPaymentFailed, title, body); err != nil {
		s.logger.Warn().Err(err).Int64("bookingID", booking.ID).Msg("Failed to notify student of payment failure")
	}
}

func (s *PaymentService) announceConfirmation(ctx context.Context, booking *models.Booking, pmt *models.Payment) {
	student, err := s.userRepo.GetByID(ctx, booking.StudentID)
	if err == nil {
		if err := s.emailService.SendBookingConfirmation(student.Email, student.FullName(), booking.Topic, pmt.Amount); err != nil {
			s.logger.Warn().Err(err).Int64("bookingID", booking.ID).Msg("Failed to send booking confirmation email")
		}
	}

	title := "Mentoring session confirmed"
	body := fmt.Sprintf("Payment received for %q", booking.Topic)
	for _, recipientID := range []int64{booking.StudentID, booking.MentorID} {
		if err := s.notifier.Notify(ctx, recipientID, models.NotificationBookingConfirmed, title, body); err != nil {
			s.logger.Warn().Err(err).Int64("bookingID", booking.ID).Int64("recipientID", recipientID).Msg("Failed to push booking confirmation")
		}
	}
}
