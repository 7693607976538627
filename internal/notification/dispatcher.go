// Package notification renders booking alerts and pushes them to the
// messaging gateway. Every method reports delivery as a value; nothing here
// returns an error to the booking flow.
package notification

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/shaadibazaarhub/marketplace-api/internal/notification")

type Config struct {
	Enabled            bool
	AccountSID         string
	AuthToken          string
	From               string
	AdminTo            string
	DefaultCountryCode string
}

// Outcome records which recipients were reached. It is informational only.
type Outcome struct {
	ProviderDelivered bool
	AdminDelivered    bool
}

type Dispatcher struct {
	cfg     Config
	gateway Gateway
	log     *zap.Logger
}

func NewDispatcher(cfg Config, gateway Gateway, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.DefaultCountryCode == "" {
		cfg.DefaultCountryCode = "91"
	}
	return &Dispatcher{cfg: cfg, gateway: gateway, log: log.Named("notification")}
}

// NotifyBookingCreated sends the provider alert and the admin summary
// independently; one failing does not stop the other.
func (d *Dispatcher) NotifyBookingCreated(ctx context.Context, alert BookingAlert) Outcome {
	ctx, span := tracer.Start(ctx, "notification.booking_created")
	defer span.End()

	out := Outcome{
		ProviderDelivered: d.SendProviderAlert(ctx, alert),
		AdminDelivered:    d.SendAdminAlert(ctx, alert),
	}
	span.SetAttributes(
		attribute.Bool("notification.provider_delivered", out.ProviderDelivered),
		attribute.Bool("notification.admin_delivered", out.AdminDelivered),
	)
	return out
}

func (d *Dispatcher) SendProviderAlert(ctx context.Context, alert BookingAlert) bool {
	log := d.log.With(zap.Uint("booking_id", alert.BookingID), zap.String("recipient", "provider"))
	if !d.ready(log) {
		return false
	}
	if strings.TrimSpace(alert.ProviderWhatsApp) == "" {
		log.Error("provider whatsapp number not provided")
		return false
	}
	return d.send(ctx, log, alert.ProviderWhatsApp, RenderProviderAlert(alert))
}

func (d *Dispatcher) SendAdminAlert(ctx context.Context, alert BookingAlert) bool {
	log := d.log.With(zap.Uint("booking_id", alert.BookingID), zap.String("recipient", "admin"))
	if !d.ready(log) {
		return false
	}
	if strings.TrimSpace(d.cfg.AdminTo) == "" {
		log.Error("admin whatsapp number not configured")
		return false
	}
	return d.send(ctx, log, d.cfg.AdminTo, RenderAdminAlert(alert))
}

func (d *Dispatcher) ready(log *zap.Logger) bool {
	if !d.cfg.Enabled {
		log.Info("whatsapp notifications are disabled")
		return false
	}
	if d.cfg.AccountSID == "" || d.cfg.AuthToken == "" || d.gateway == nil {
		log.Error("messaging gateway credentials not configured")
		return false
	}
	return true
}

func (d *Dispatcher) send(ctx context.Context, log *zap.Logger, rawTo, body string) bool {
	to := NormalizePhone(rawTo, d.cfg.DefaultCountryCode)
	err := d.gateway.Send(ctx, Message{From: d.cfg.From, To: to, Body: body})
	if err != nil {
		var ge *GatewayError
		if errors.As(err, &ge) {
			log.Error("messaging gateway rejected message",
				zap.String("to", to),
				zap.Int("status", ge.StatusCode),
				zap.String("detail", ge.Detail),
			)
		} else {
			log.Error("messaging gateway call failed", zap.String("to", to), zap.Error(err))
		}
		return false
	}
	log.Info("whatsapp message sent", zap.String("to", to))
	return true
}
