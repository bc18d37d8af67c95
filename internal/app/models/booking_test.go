package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingTotal(t *testing.T) {
	assert.Equal(t, int64(1000), BookingTotal(2, 500))
	assert.Equal(t, int64(500), BookingTotal(1, 500))
	assert.Equal(t, int64(6000), BookingTotal(8, 750))
}

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingDraft, BookingPendingPayment, true},
		{BookingDraft, BookingCancelled, true},
		{BookingDraft, BookingConfirmed, false},
		{BookingPendingPayment, BookingConfirmed, true},
		{BookingPendingPayment, BookingCancelled, true},
		{BookingPendingPayment, BookingDraft, true}, // release after a dismissed checkout
		{BookingConfirmed, BookingCancelled, false},
		{BookingConfirmed, BookingDraft, false},
		{BookingCancelled, BookingDraft, false},
		{BookingCancelled, BookingPendingPayment, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestBookingTransitionReturnsCopy(t *testing.T) {
	b := Booking{ID: 1, Status: BookingDraft}

	at := time.Now()
	next, err := b.Transition(BookingPendingPayment, at)
	require.NoError(t, err)

	assert.Equal(t, BookingPendingPayment, next.Status)
	assert.Equal(t, at, next.UpdatedAt)
	assert.Equal(t, BookingDraft, b.Status)
}

func TestBookingTransitionRejectsIllegalMove(t *testing.T) {
	b := Booking{ID: 1, Status: BookingConfirmed}
	_, err := b.Transition(BookingDraft, time.Now())
	assert.Error(t, err)
}

func TestPaymentStatusTransitions(t *testing.T) {
	cases := []struct {
		from    PaymentStatus
		to      PaymentStatus
		allowed bool
	}{
		{PaymentCreated, PaymentVerifying, true},
		{PaymentCreated, PaymentCancelled, true},
		{PaymentCreated, PaymentFailed, true},
		{PaymentCreated, PaymentCaptured, false}, // capture requires verification first
		{PaymentVerifying, PaymentCaptured, true},
		{PaymentVerifying, PaymentFailed, true},
		{PaymentVerifying, PaymentCancelled, false},
		{PaymentCaptured, PaymentFailed, false},
		{PaymentFailed, PaymentVerifying, false},
		{PaymentCancelled, PaymentVerifying, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestPaymentTransitionReturnsCopy(t *testing.T) {
	p := Payment{ID: 1, Status: PaymentCreated}

	next, err := p.Transition(PaymentVerifying, time.Now())
	require.NoError(t, err)

	assert.Equal(t, PaymentVerifying, next.Status)
	assert.Equal(t, PaymentCreated, p.Status)

	_, err = p.Transition(PaymentCaptured, time.Now())
	assert.Error(t, err)
}
