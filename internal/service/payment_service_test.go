package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaadibazaarhub/marketplace-api/internal/apperror"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestPublicKey(t *testing.T) {
	_, err := NewPaymentService(PaymentConfig{}, nil).PublicKey()
	assert.ErrorIs(t, err, ErrPaymentsUnavailable)

	key, err := NewPaymentService(PaymentConfig{KeyID: "rzp_test_1"}, nil).PublicKey()
	require.NoError(t, err)
	assert.Equal(t, "rzp_test_1", key)
}

func TestCreateOrder(t *testing.T) {
	var got map[string]any
	var user, pass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, _ = r.BasicAuth()
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_9A33XWu170gUtm","amount":50000,"currency":"INR","status":"created"}`))
	}))
	defer srv.Close()

	svc := NewPaymentService(PaymentConfig{KeyID: "key", KeySecret: "secret", BaseURL: srv.URL}, nil)
	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{Amount: 50000, Receipt: "rcpt_1"})
	require.NoError(t, err)

	assert.Equal(t, "key", user)
	assert.Equal(t, "secret", pass)
	assert.Equal(t, float64(50000), got["amount"])
	assert.Equal(t, "INR", got["currency"])
	assert.Equal(t, float64(1), got["payment_capture"])
	assert.JSONEq(t, `{"id":"order_9A33XWu170gUtm","amount":50000,"currency":"INR","status":"created"}`, string(order))
}

func TestCreateOrder_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"description":"bad"}}`))
	}))
	defer srv.Close()
	ctx := context.Background()

	_, err := NewPaymentService(PaymentConfig{}, nil).CreateOrder(ctx, CreateOrderInput{Amount: 100})
	assert.ErrorIs(t, err, ErrPaymentsUnavailable)
	assert.Equal(t, apperror.Unavailable, apperror.KindOf(err))

	svc := NewPaymentService(PaymentConfig{KeyID: "k", KeySecret: "s", BaseURL: srv.URL}, nil)
	_, err = svc.CreateOrder(ctx, CreateOrderInput{Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CreateOrder(ctx, CreateOrderInput{Amount: 100})
	assert.Equal(t, apperror.BadGateway, apperror.KindOf(err))
}

func TestVerifyPayment(t *testing.T) {
	svc := NewPaymentService(PaymentConfig{KeyID: "k", KeySecret: "secret"}, nil)

	good := VerifyPaymentInput{OrderID: "order_1", PaymentID: "pay_1", Signature: sign("secret", "order_1", "pay_1")}
	assert.NoError(t, svc.VerifyPayment(good))

	bad := good
	bad.Signature = sign("other", "order_1", "pay_1")
	assert.ErrorIs(t, svc.VerifyPayment(bad), ErrSignatureMismatch)

	swapped := good
	swapped.OrderID, swapped.PaymentID = "pay_1", "order_1"
	assert.ErrorIs(t, svc.VerifyPayment(swapped), ErrSignatureMismatch)

	assert.ErrorIs(t, NewPaymentService(PaymentConfig{}, nil).VerifyPayment(good), ErrPaymentsUnavailable)
}
