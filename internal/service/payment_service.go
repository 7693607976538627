package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shaadibazaarhub/marketplace-api/internal/apperror"
)

const defaultRazorpayBaseURL = "https://api.razorpay.com"

type PaymentConfig struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Timeout   time.Duration
}

type CreateOrderInput struct {
	Amount   int64
	Currency string
	Receipt  string
}

type VerifyPaymentInput struct {
	OrderID   string
	PaymentID string
	Signature string
}

type PaymentService interface {
	PublicKey() (string, error)
	CreateOrder(ctx context.Context, in CreateOrderInput) (json.RawMessage, error)
	VerifyPayment(in VerifyPaymentInput) error
}

type paymentService struct {
	cfg    PaymentConfig
	client *http.Client
	log    *zap.Logger
}

func NewPaymentService(cfg PaymentConfig, log *zap.Logger) PaymentService {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultRazorpayBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &paymentService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log.Named("payment"),
	}
}

func (s *paymentService) PublicKey() (string, error) {
	if s.cfg.KeyID == "" {
		return "", ErrPaymentsUnavailable
	}
	return s.cfg.KeyID, nil
}

// CreateOrder registers an auto-captured order with the gateway and returns
// its JSON untouched.
func (s *paymentService) CreateOrder(ctx context.Context, in CreateOrderInput) (json.RawMessage, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if s.cfg.KeyID == "" || s.cfg.KeySecret == "" {
		return nil, ErrPaymentsUnavailable
	}
	currency := in.Currency
	if currency == "" {
		currency = "INR"
	}

	body, err := json.Marshal(map[string]any{
		"amount":          in.Amount,
		"currency":        currency,
		"receipt":         in.Receipt,
		"payment_capture": 1,
	})
	if err != nil {
		return nil, wrapInternal("encode order", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(s.cfg.BaseURL, "/")+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, wrapInternal("build order request", err)
	}
	req.SetBasicAuth(s.cfg.KeyID, s.cfg.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("create order request failed", zap.Error(err))
		return nil, apperror.Wrap(apperror.BadGateway, "failed to create order", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperror.Wrap(apperror.BadGateway, "failed to create order", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.log.Error("gateway rejected order", zap.Int("status", resp.StatusCode), zap.ByteString("body", raw))
		return nil, apperror.Wrap(apperror.BadGateway, "failed to create order",
			fmt.Errorf("gateway responded %d", resp.StatusCode))
	}
	if !json.Valid(raw) {
		return nil, apperror.New(apperror.BadGateway, "failed to create order")
	}
	return json.RawMessage(raw), nil
}

// VerifyPayment checks the checkout signature, hex(HMAC-SHA256(secret,
// order_id|payment_id)).
func (s *paymentService) VerifyPayment(in VerifyPaymentInput) error {
	if s.cfg.KeySecret == "" {
		return ErrPaymentsUnavailable
	}
	mac := hmac.New(sha256.New, []byte(s.cfg.KeySecret))
	mac.Write([]byte(in.OrderID + "|" + in.PaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(in.Signature)) {
		return ErrSignatureMismatch
	}
	return nil
}
