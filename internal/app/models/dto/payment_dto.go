package dto

// VerifyPaymentRequest is the checkout callback payload. The signature is
// verified server-side; the client's claim of success is never trusted.
type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// DismissPaymentRequest reports a checkout closed before completion
type DismissPaymentRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

// VerifyPaymentResponse reports the verified outcome
type VerifyPaymentResponse struct {
	Success   bool   `json:"success"`
	Status    string `json:"status"`
	BookingID int64  `json:"bookingId,omitempty"`
}
