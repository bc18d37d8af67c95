// Package payment wraps the external payment gateway behind a small
// interface: order creation and server-side signature verification.
// The rest of the application speaks whole rupees; conversion to the
// gateway's smallest currency unit happens here and nowhere else.
package payment

import (
	"context"
	"errors"
)

// Gateway errors
var (
	ErrOrderCreation     = errors.New("gateway order creation failed")
	ErrSignatureMismatch = errors.New("payment signature mismatch")
)

// subunitFactor converts whole rupees to paise at the gateway boundary
const subunitFactor = 100

// OrderRequest describes an order to be created with the gateway.
// Amount is in whole rupees.
type OrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// Order is the gateway's view of a created order. Amount is in the
// gateway's subunits as returned by the API.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway is the payment provider contract. Implementations must never
// report a payment as verified without a cryptographic signature check;
// the browser's word is not trusted.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) error
}

// CheckoutPrefill pre-populates the external checkout widget
type CheckoutPrefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// CheckoutOptions is the configuration object handed to the external
// checkout widget. The handler and dismissal callbacks are attached
// client-side; the server only supplies the data fields.
type CheckoutOptions struct {
	Key         string          `json:"key"`
	Amount      int64           `json:"amount"` // Subunits, as the widget expects
	Currency    string          `json:"currency"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	OrderID     string          `json:"order_id"`
	Prefill     CheckoutPrefill `json:"prefill"`
	ThemeColor  string          `json:"theme_color"`
}
