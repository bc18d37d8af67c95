package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignatureAccepts(t *testing.T) {
	client := NewClient(Config{KeyID: "key", KeySecret: "secret"}, zerolog.Nop())

	sig := signPayload("secret", "order_1", "pay_1")
	assert.NoError(t, client.VerifySignature("order_1", "pay_1", sig))
}

func TestVerifySignatureRejects(t *testing.T) {
	client := NewClient(Config{KeyID: "key", KeySecret: "secret"}, zerolog.Nop())

	cases := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
	}{
		{"wrong signature", "order_1", "pay_1", "deadbeef"},
		{"signature for another order", "order_2", "pay_1", signPayload("secret", "order_1", "pay_1")},
		{"signature for another payment", "order_1", "pay_2", signPayload("secret", "order_1", "pay_1")},
		{"signed with another secret", "order_1", "pay_1", signPayload("other", "order_1", "pay_1")},
		{"empty order id", "", "pay_1", signPayload("secret", "|pay_1", "")},
		{"empty signature", "order_1", "pay_1", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := client.VerifySignature(tc.orderID, tc.paymentID, tc.signature)
			assert.ErrorIs(t, err, ErrSignatureMismatch)
		})
	}
}

func TestCreateOrderConvertsToSubunits(t *testing.T) {
	var received orderPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(Order{
			ID:       "order_abc",
			Amount:   received.Amount,
			Currency: received.Currency,
			Receipt:  received.Receipt,
			Status:   "created",
		})
	}))
	defer srv.Close()

	client := NewClient(Config{KeyID: "key", KeySecret: "secret", BaseURL: srv.URL}, zerolog.Nop())

	order, err := client.CreateOrder(context.Background(), OrderRequest{
		Amount:   1000, // 2h * Rs. 500
		Currency: "INR",
		Receipt:  "booking_7",
		Notes:    map[string]string{"bookingId": "7"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100000), received.Amount, "the gateway sees paise, the application sees rupees")
	assert.Equal(t, "INR", received.Currency)
	assert.Equal(t, "booking_7", received.Receipt)
	assert.Equal(t, "order_abc", order.ID)
}

func TestCreateOrderGatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(Config{KeyID: "key", KeySecret: "secret", BaseURL: srv.URL}, zerolog.Nop())

	_, err := client.CreateOrder(context.Background(), OrderRequest{Amount: 500, Currency: "INR", Receipt: "booking_1"})
	assert.ErrorIs(t, err, ErrOrderCreation)
}

func TestCreateOrderHonorsContextCancellation(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(Config{KeyID: "key", KeySecret: "secret", BaseURL: srv.URL}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := client.CreateOrder(ctx, OrderRequest{Amount: 500, Currency: "INR", Receipt: "booking_1"})
		errCh <- err
	}()

	<-started
	cancel()

	err := <-errCh
	require.Error(t, err, "a dismissed wizard must abort the in-flight order request")
}
