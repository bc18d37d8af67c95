package dto

import (
	"github.com/arnav/gradlink/internal/pkg/payment"
)

// BookingQuote is the computed total shown on the summary step
type BookingQuote struct {
	Hours       int    `json:"hours"`
	HourlyRate  int64  `json:"hourlyRate"`
	TotalAmount int64  `json:"totalAmount"`
	Currency    string `json:"currency"`
}

// BookingCheckoutResponse is returned when the booking wizard completes:
// the persisted booking plus everything the checkout widget needs.
type BookingCheckoutResponse struct {
	BookingID int64                   `json:"bookingId"`
	PaymentID int64                   `json:"paymentId"`
	Quote     BookingQuote            `json:"quote"`
	Checkout  payment.CheckoutOptions `json:"checkout"`
}
