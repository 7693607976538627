package notification

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTwilioBaseURL = "https://api.twilio.com"

// Message is one outbound gateway call.
type Message struct {
	From string
	To   string
	Body string
}

// Gateway submits a single message to a messaging provider.
type Gateway interface {
	Send(ctx context.Context, msg Message) error
}

// GatewayError is a non-2xx answer from the provider.
type GatewayError struct {
	StatusCode int
	Detail     string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway responded %d: %s", e.StatusCode, e.Detail)
}

type TwilioConfig struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	Timeout    time.Duration
}

// TwilioGateway posts WhatsApp messages to the Twilio Messages API.
type TwilioGateway struct {
	cfg    TwilioConfig
	client *http.Client
}

func NewTwilioGateway(cfg TwilioConfig) *TwilioGateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultTwilioBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &TwilioGateway{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

func (g *TwilioGateway) Send(ctx context.Context, msg Message) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimRight(g.cfg.BaseURL, "/"), url.PathEscape(g.cfg.AccountSID))

	form := url.Values{}
	form.Set("From", msg.From)
	form.Set("To", channelPrefix+msg.To)
	form.Set("Body", msg.Body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build twilio request: %w", err)
	}
	req.SetBasicAuth(g.cfg.AccountSID, g.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request: %w", err)
	}
	defer resp.Body.Close()

	// 201 Created and 202 Accepted are the only success answers.
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusAccepted {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &GatewayError{StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(detail))}
	}
	return nil
}
