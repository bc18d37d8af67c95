package models

import (
	"fmt"
	"time"
)

// PaymentStatus tracks a payment order through verification.
// The flow is created -> verifying -> captured|failed, with a distinct
// cancelled terminal state for a checkout dismissed before completion.
type PaymentStatus string

const (
	PaymentCreated   PaymentStatus = "created"
	PaymentVerifying PaymentStatus = "verifying"
	PaymentCaptured  PaymentStatus = "captured"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Payment defines a payment order based on the 'payments' table.
// Amount is in whole rupees; conversion to the gateway's smallest
// currency unit happens inside the gateway client only.
type Payment struct {
	ID             int64         `json:"id" db:"id"`
	BookingID      int64         `json:"bookingId" db:"booking_id"`
	GatewayOrderID string        `json:"gatewayOrderId" db:"gateway_order_id"`
	GatewayPayID   *string       `json:"gatewayPaymentId,omitempty" db:"gateway_payment_id"`
	Amount         int64         `json:"amount" db:"amount"`
	Currency       string        `json:"currency" db:"currency"`
	Status         PaymentStatus `json:"status" db:"status"`
	FailureReason  *string       `json:"failureReason,omitempty" db:"failure_reason"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" db:"updated_at"`
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentCreated:   {PaymentVerifying, PaymentCancelled, PaymentFailed},
	PaymentVerifying: {PaymentCaptured, PaymentFailed},
	PaymentCaptured:  {},
	PaymentFailed:    {},
	PaymentCancelled: {},
}

// CanTransition reports whether a payment may move from one status to another
func (s PaymentStatus) CanTransition(to PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition returns a copy of the payment in the new status or an error
// if the move is not allowed
func (p Payment) Transition(to PaymentStatus, at time.Time) (Payment, error) {
	if !p.Status.CanTransition(to) {
		return Payment{}, fmt.Errorf("payment %d cannot move from %s to %s", p.ID, p.Status, to)
	}
	next := p
	next.Status = to
	next.UpdatedAt = at
	return next, nil
}
