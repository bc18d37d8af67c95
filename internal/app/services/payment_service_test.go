package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/app/models/dto"
	"github.com/arnav/gradlink/internal/pkg/apperrors"
	"github.com/arnav/gradlink/internal/pkg/payment"
)

type fakeGateway struct {
	verifyErr error
}

func (g *fakeGateway) CreateOrder(ctx context.Context, req payment.OrderRequest) (*payment.Order, error) {
	return nil, errors.New("not used")
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) error {
	return g.verifyErr
}

type fakePaymentStore struct {
	payments map[int64]*models.Payment
}

func (f *fakePaymentStore) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, apperrors.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentStore) GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.GatewayOrderID == orderID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperrors.ErrPaymentNotFound
}

func (f *fakePaymentStore) UpdateStatus(ctx context.Context, id int64, from, to models.PaymentStatus) error {
	p, ok := f.payments[id]
	if !ok {
		return apperrors.ErrPaymentNotFound
	}
	if p.Status != from {
		return apperrors.ErrInvalidStateTransition
	}
	p.Status = to
	return nil
}

func (f *fakePaymentStore) RecordCapture(ctx context.Context, id int64, gatewayPaymentID string) error {
	p, ok := f.payments[id]
	if !ok || p.Status != models.PaymentVerifying {
		return apperrors.ErrInvalidStateTransition
	}
	p.Status = models.PaymentCaptured
	p.GatewayPayID = &gatewayPaymentID
	return nil
}

func (f *fakePaymentStore) RecordFailure(ctx context.Context, id int64, reason string) error {
	p, ok := f.payments[id]
	if !ok || (p.Status != models.PaymentCreated && p.Status != models.PaymentVerifying) {
		return apperrors.ErrInvalidStateTransition
	}
	p.Status = models.PaymentFailed
	p.FailureReason = &reason
	return nil
}

type fakeBookingStore struct {
	bookings map[int64]*models.Booking
}

func (f *fakeBookingStore) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, apperrors.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingStore) UpdateStatus(ctx context.Context, id int64, from, to models.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return apperrors.ErrBookingNotFound
	}
	if b.Status != from {
		return apperrors.ErrInvalidStateTransition
	}
	b.Status = to
	return nil
}

type fakeUserStore struct {
	users map[int64]*models.User
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

type fakeNotifier struct {
	sent []models.NotificationKind
}

func (f *fakeNotifier) Notify(ctx context.Context, recipientID int64, kind models.NotificationKind, title, body string) error {
	f.sent = append(f.sent, kind)
	return nil
}

type fakeEmailSender struct {
	confirmations int
}

func (f *fakeEmailSender) SendVerificationEmail(toEmail, toName, token string) error { return nil }

func (f *fakeEmailSender) SendBookingConfirmation(toEmail, toName, topic string, amount int64) error {
	f.confirmations++
	return nil
}

type paymentFixture struct {
	svc      *PaymentService
	payments *fakePaymentStore
	bookings *fakeBookingStore
	notifier *fakeNotifier
	email    *fakeEmailSender
}

const (
	fixtureStudentID = int64(11)
	fixtureMentorID  = int64(22)
)

// newPaymentFixture wires a service around a booking held in
// pending_payment with its payment order freshly created.
func newPaymentFixture(t *testing.T, gateway *fakeGateway) *paymentFixture {
	t.Helper()

	f := &paymentFixture{
		payments: &fakePaymentStore{payments: map[int64]*models.Payment{
			1: {
				ID:             1,
				BookingID:      5,
				GatewayOrderID: "order_abc",
				Amount:         1000,
				Currency:       "INR",
				Status:         models.PaymentCreated,
			},
		}},
		bookings: &fakeBookingStore{bookings: map[int64]*models.Booking{
			5: {
				ID:        5,
				StudentID: fixtureStudentID,
				MentorID:  fixtureMentorID,
				Topic:     "System design interviews",
				Status:    models.BookingPendingPayment,
			},
		}},
		notifier: &fakeNotifier{},
		email:    &fakeEmailSender{},
	}
	f.svc = NewPaymentService(
		f.payments,
		f.bookings,
		&fakeUserStore{users: map[int64]*models.User{
			fixtureStudentID: {ID: fixtureStudentID, Email: "rohit@university.edu", FirstName: "Rohit", LastName: "Kumar"},
		}},
		gateway,
		f.notifier,
		f.email,
		zerolog.Nop(),
	)
	return f
}

func verifyRequest() dto.VerifyPaymentRequest {
	return dto.VerifyPaymentRequest{
		OrderID:   "order_abc",
		PaymentID: "pay_xyz",
		Signature: "sig",
	}
}

func TestVerifySuccessConfirmsBooking(t *testing.T) {
	f := newPaymentFixture(t, &fakeGateway{})

	resp, err := f.svc.Verify(context.Background(), verifyRequest())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, string(models.PaymentCaptured), resp.Status)

	assert.Equal(t, models.PaymentCaptured, f.payments.payments[1].Status)
	assert.Equal(t, models.BookingConfirmed, f.bookings.bookings[5].Status)
	assert.Equal(t, 1, f.email.confirmations)
	assert.Equal(t, []models.NotificationKind{
		models.NotificationBookingConfirmed,
		models.NotificationBookingConfirmed,
	}, f.notifier.sent)
}

func TestVerifyFailureReleasesBooking(t *testing.T) {
	f := newPaymentFixture(t, &fakeGateway{verifyErr: payment.ErrSignatureMismatch})

	resp, err := f.svc.Verify(context.Background(), verifyRequest())
	assert.ErrorIs(t, err, apperrors.ErrVerificationFailed)
	require.NotNil(t, resp)
	assert.False(t, resp.Success)

	// The payment is failed and the slot goes back to draft so the
	// student can retry checkout
	assert.Equal(t, models.PaymentFailed, f.payments.payments[1].Status)
	assert.Equal(t, models.BookingDraft, f.bookings.bookings[5].Status)
	assert.Equal(t, []models.NotificationKind{models.NotificationPaymentFailed}, f.notifier.sent)
}

func TestVerifyOnSettledPaymentReportsStoredOutcome(t *testing.T) {
	f := newPaymentFixture(t, &fakeGateway{})
	f.payments.payments[1].Status = models.PaymentCancelled

	resp, err := f.svc.Verify(context.Background(), verifyRequest())
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, string(models.PaymentCancelled), resp.Status)
}

func TestDismissReleasesBooking(t *testing.T) {
	f := newPaymentFixture(t, &fakeGateway{})

	err := f.svc.Dismiss(context.Background(), "order_abc", fixtureStudentID, models.RoleStudent)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentCancelled, f.payments.payments[1].Status)
	assert.Equal(t, models.BookingDraft, f.bookings.bookings[5].Status)
}

func TestDismissRejectsNonParty(t *testing.T) {
	f := newPaymentFixture(t, &fakeGateway{})

	err := f.svc.Dismiss(context.Background(), "order_abc", 99, models.RoleStudent)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// Nothing moved
	assert.Equal(t, models.PaymentCreated, f.payments.payments[1].Status)
	assert.Equal(t, models.BookingPendingPayment, f.bookings.bookings[5].Status)
}

func TestGetChecksBookingOwnership(t *testing.T) {
	f := newPaymentFixture(t, &fakeGateway{})

	cases := []struct {
		name     string
		callerID int64
		role     models.RoleType
		allowed  bool
	}{
		{"student party", fixtureStudentID, models.RoleStudent, true},
		{"mentor party", fixtureMentorID, models.RoleAlumni, true},
		{"admin", 1, models.RoleAdmin, true},
		{"unrelated student", 99, models.RoleStudent, false},
		{"unrelated alumni", 98, models.RoleAlumni, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pmt, err := f.svc.Get(context.Background(), 1, tc.callerID, tc.role)
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, "order_abc", pmt.GatewayOrderID)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
			}
		})
	}
}
