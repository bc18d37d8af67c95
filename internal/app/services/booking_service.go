package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/app/models/dto"
	"github.com/arnav/gradlink/internal/app/repositories"
	"github.com/arnav/gradlink/internal/pkg/apperrors"
	"github.com/arnav/gradlink/internal/pkg/payment"
	"github.com/arnav/gradlink/internal/pkg/validation"
	"github.com/arnav/gradlink/internal/pkg/wizard"
)

// BookingService runs the mentoring-session booking wizard and hands
// completed bookings to the payment gateway. The wizard session holds the
// form in memory; nothing is persisted until checkout starts.
type BookingService struct {
	bookingRepo *repositories.BookingRepository
	paymentRepo *repositories.PaymentRepository
	userRepo    *repositories.UserRepository
	wizardStore *wizard.Store
	gateway     payment.Gateway
	gatewayKey  string
	currency    string
	themeColor  string
	logger      zerolog.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingRepo *repositories.BookingRepository,
	paymentRepo *repositories.PaymentRepository,
	userRepo *repositories.UserRepository,
	wizardStore *wizard.Store,
	gateway payment.Gateway,
	gatewayKey string,
	currency string,
	themeColor string,
	logger zerolog.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		wizardStore: wizardStore,
		gateway:     gateway,
		gatewayKey:  gatewayKey,
		currency:    currency,
		themeColor:  themeColor,
		logger:      logger,
	}
}

// bookingDefinition is the four-step booking wizard
func bookingDefinition() *wizard.Definition {
	return &wizard.Definition{
		Name: "booking",
		Steps: []wizard.Step{
			{
				Name:     "details",
				Fields:   []string{"mentorId", "topic", "scheduledAt"},
				Validate: validateBookingDetails,
			},
			{
				Name:     "schedule",
				Fields:   []string{"hours", "message"},
				Validate: validateBookingSchedule,
			},
			{
				Name:     "contact",
				Fields:   []string{"name", "email", "phone"},
				Validate: validateBookingContact,
			},
			{
				Name:     "summary",
				Fields:   []string{"acceptTerms"},
				Validate: validateReviewStep,
			},
		},
	}
}

func validateBookingDetails(data wizard.Data) wizard.FieldErrors {
	errs := wizard.FieldErrors{}
	if id, err := strconv.ParseInt(data["mentorId"], 10, 64); err != nil || id <= 0 {
		errs["mentorId"] = "Choose a mentor"
	}
	if strings.TrimSpace(data["topic"]) == "" {
		errs["topic"] = "Tell your mentor what you want to discuss"
	}
	when, err := time.Parse(time.RFC3339, data["scheduledAt"])
	if err != nil {
		errs["scheduledAt"] = "Pick a session date and time"
	} else if when.Before(time.Now()) {
		errs["scheduledAt"] = "Session must be in the future"
	}
	return errs
}

func validateBookingSchedule(data wizard.Data) wizard.FieldErrors {
	errs := wizard.FieldErrors{}
	hours, err := strconv.Atoi(data["hours"])
	if err != nil || hours < validation.BookingHoursMin || hours > validation.BookingHoursMax {
		errs["hours"] = fmt.Sprintf("Sessions run %d to %d hours", validation.BookingHoursMin, validation.BookingHoursMax)
	}
	return errs
}

func validateBookingContact(data wizard.Data) wizard.FieldErrors {
	errs := wizard.FieldErrors{}
	if strings.TrimSpace(data["name"]) == "" {
		errs["name"] = "Name is required"
	}
	if !validation.IsValidEmail(strings.TrimSpace(data["email"])) {
		errs["email"] = "Enter a valid email address"
	}
	if phone := strings.TrimSpace(data["phone"]); phone != "" && !validation.IsValidPhone(phone) {
		errs["phone"] = "Enter a valid mobile number"
	}
	return errs
}

// StartWizard opens a booking wizard session
func (s *BookingService) StartWizard() wizard.State {
	session := s.wizardStore.Create(bookingDefinition())
	s.logger.Info().Str("sessionId", session.ID).Msg("Booking wizard started")
	return session.Snapshot()
}

// SetField writes one field of a booking session
func (s *BookingService) SetField(sessionID, field, value string) (wizard.State, error) {
	session, err := s.wizardStore.Get(sessionID)
	if err != nil {
		return wizard.State{}, apperrors.ErrWizardNotFound
	}
	session.SetField(field, value)
	return session.Snapshot(), nil
}

// Next validates the current step and advances when it is clean
func (s *BookingService) Next(sessionID string) (wizard.State, error) {
	session, err := s.wizardStore.Get(sessionID)
	if err != nil {
		return wizard.State{}, apperrors.ErrWizardNotFound
	}
	session.Next()
	return session.Snapshot(), nil
}

// Previous steps back without validating
func (s *BookingService) Previous(sessionID string) (wizard.State, error) {
	session, err := s.wizardStore.Get(sessionID)
	if err != nil {
		return wizard.State{}, apperrors.ErrWizardNotFound
	}
	session.Previous()
	return session.Snapshot(), nil
}

// GetState returns a snapshot for rendering
func (s *BookingService) GetState(sessionID string) (wizard.State, error) {
	session, err := s.wizardStore.Get(sessionID)
	if err != nil {
		return wizard.State{}, apperrors.ErrWizardNotFound
	}
	return session.Snapshot(), nil
}

// Quote computes the total for the summary step from the session data and
// the mentor's current hourly rate.
func (s *BookingService) Quote(ctx context.Context, sessionID string) (*dto.BookingQuote, error) {
	session, err := s.wizardStore.Get(sessionID)
	if err != nil {
		return nil, apperrors.ErrWizardNotFound
	}
	data := session.DataCopy()

	mentorID, _ := strconv.ParseInt(data["mentorId"], 10, 64)
	hours, _ := strconv.Atoi(data["hours"])

	profile, err := s.userRepo.GetAlumniProfileByUserID(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	return &dto.BookingQuote{
		Hours:       hours,
		HourlyRate:  profile.MentorRate,
		TotalAmount: models.BookingTotal(hours, profile.MentorRate),
		Currency:    s.currency,
	}, nil
}

// Checkout turns a completed wizard session into a draft booking plus a
// gateway order. The order request runs under a context tied to the
// session, so dismissing the wizard aborts it mid-flight. On success the
// booking moves to pending_payment and the checkout options are returned.
func (s *BookingService) Checkout(ctx context.Context, sessionID string, studentID int64) (*dto.BookingCheckoutResponse, error) {
	session, err := s.wizardStore.Get(sessionID)
	if err != nil {
		return nil, apperrors.ErrWizardNotFound
	}
	if !session.Completed() {
		return nil, apperrors.ErrStepInvalid
	}
	data := session.DataCopy()

	mentorID, _ := strconv.ParseInt(data["mentorId"], 10, 64)
	hours, _ := strconv.Atoi(data["hours"])
	scheduledAt, _ := time.Parse(time.RFC3339, data["scheduledAt"])

	mentor, err := s.userRepo.GetByID(ctx, mentorID)
	if err != nil {
		return nil, apperrors.ErrMentorNotFound
	}
	profile, err := s.userRepo.GetAlumniProfileByUserID(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if !profile.OpenToMentor || !mentor.IsActive {
		return nil, apperrors.ErrMentorUnavailable
	}

	if overlap, err := s.bookingRepo.HasOverlap(ctx, mentorID, scheduledAt, hours); err != nil {
		return nil, err
	} else if overlap {
		return nil, apperrors.NewConflictError("the mentor already has a session at that time")
	}

	total := models.BookingTotal(hours, profile.MentorRate)
	booking := &models.Booking{
		StudentID:   studentID,
		MentorID:    mentorID,
		Topic:       strings.TrimSpace(data["topic"]),
		ScheduledAt: scheduledAt,
		Hours:       hours,
		HourlyRate:  profile.MentorRate,
		TotalAmount: total,
		Message:     strings.TrimSpace(data["message"]),
		Status:      models.BookingDraft,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	// Tie the gateway call to the session so a dismissal cancels it
	orderCtx, cancel := context.WithCancel(ctx)
	session.SetCancel(cancel)
	defer session.SetCancel(nil)

	order, err := s.gateway.CreateOrder(orderCtx, payment.OrderRequest{
		Amount:   total,
		Currency: s.currency,
		Receipt:  fmt.Sprintf("booking_%d", booking.ID),
		Notes: map[string]string{
			"bookingId": strconv.FormatInt(booking.ID, 10),
			"topic":     booking.Topic,
		},
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("bookingID", booking.ID).Msg("Gateway order creation failed")
		if stErr := s.bookingRepo.UpdateStatus(ctx, booking.ID, models.BookingDraft, models.BookingCancelled); stErr != nil {
			s.logger.Error().Err(stErr).Int64("bookingID", booking.ID).Msg("Failed to cancel booking after order failure")
		}
		return nil, apperrors.ErrOrderCreationFailed
	}

	pmt := &models.Payment{
		BookingID:      booking.ID,
		GatewayOrderID: order.ID,
		Amount:         total,
		Currency:       s.currency,
		Status:         models.PaymentCreated,
	}
	if err := s.paymentRepo.Create(ctx, pmt); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, models.BookingDraft, models.BookingPendingPayment); err != nil {
		return nil, err
	}

	s.wizardStore.Delete(sessionID)
	s.logger.Info().
		Int64("bookingID", booking.ID).
		Int64("paymentID", pmt.ID).
		Str("orderId", order.ID).
		Int64("amount", total).
		Msg("Booking checkout started")

	return &dto.BookingCheckoutResponse{
		BookingID: booking.ID,
		PaymentID: pmt.ID,
		Quote: dto.BookingQuote{
			Hours:       hours,
			HourlyRate:  profile.MentorRate,
			TotalAmount: total,
			Currency:    s.currency,
		},
		Checkout: payment.CheckoutOptions{
			Key:         s.gatewayKey,
			Amount:      order.Amount,
			Currency:    order.Currency,
			Name:        "GradLink Mentoring",
			Description: booking.Topic,
			OrderID:     order.ID,
			Prefill: payment.CheckoutPrefill{
				Name:    strings.TrimSpace(data["name"]),
				Email:   strings.TrimSpace(data["email"]),
				Contact: strings.TrimSpace(data["phone"]),
			},
			ThemeColor: s.themeColor,
		},
	}, nil
}

// CancelWizard dismisses a booking wizard, aborting any in-flight order
// creation request the session owns.
func (s *BookingService) CancelWizard(sessionID string) {
	s.wizardStore.Delete(sessionID)
}

// ListForStudent returns the caller's bookings as a student
func (s *BookingService) ListForStudent(ctx context.Context, studentID int64) ([]models.Booking, error) {
	return s.bookingRepo.ListByStudent(ctx, studentID)
}

// ListForMentor returns the caller's bookings as a mentor
func (s *BookingService) ListForMentor(ctx context.Context, mentorID int64) ([]models.Booking, error) {
	return s.bookingRepo.ListByMentor(ctx, mentorID)
}

// Get returns one booking if the caller is a party to it or an admin
func (s *BookingService) Get(ctx context.Context, id, callerID int64, callerRole models.RoleType) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.StudentID != callerID && booking.MentorID != callerID && callerRole != models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("this booking is not yours")
	}
	return booking, nil
}
