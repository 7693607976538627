package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/shaadibazaarhub/marketplace-api/internal/auth"
	"github.com/shaadibazaarhub/marketplace-api/internal/models"
	"github.com/shaadibazaarhub/marketplace-api/internal/notification"
	"github.com/shaadibazaarhub/marketplace-api/internal/repository"
)

const RoutingKeyBookingCreated = "booking.created"

var tracer = otel.Tracer("github.com/shaadibazaarhub/marketplace-api/internal/service")

type CreateBookingInput struct {
	ServiceID     uint
	EventDate     string
	Quantity      *int
	Notes         *string
	Address       *string
	DurationHours *int
}

// Notifier delivers best-effort booking alerts. The outcome is informational.
type Notifier interface {
	NotifyBookingCreated(ctx context.Context, alert notification.BookingAlert) notification.Outcome
}

// EventPublisher emits integration events. A nil publisher disables them.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// BookingCreatedEvent is the payload published after a booking commits.
type BookingCreatedEvent struct {
	BookingID  uint                 `json:"booking_id"`
	ServiceID  uint                 `json:"service_id"`
	ProviderID uint                 `json:"provider_id"`
	CustomerID uint                 `json:"customer_id"`
	EventDate  string               `json:"event_date"`
	Quantity   int                  `json:"quantity"`
	Status     models.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
}

type BookingService interface {
	CreateBooking(ctx context.Context, id auth.Identity, in CreateBookingInput) (*models.Booking, error)
	ListMyBookings(ctx context.Context, id auth.Identity) ([]models.Booking, error)
}

type bookingService struct {
	accounts  repository.AccountRepository
	services  repository.ServiceRepository
	bookings  repository.BookingRepository
	notifier  Notifier
	publisher EventPublisher
	log       *zap.Logger
}

func NewBookingService(
	accounts repository.AccountRepository,
	services repository.ServiceRepository,
	bookings repository.BookingRepository,
	notifier Notifier,
	publisher EventPublisher,
	log *zap.Logger,
) BookingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &bookingService{
		accounts:  accounts,
		services:  services,
		bookings:  bookings,
		notifier:  notifier,
		publisher: publisher,
		log:       log.Named("booking"),
	}
}

func (in CreateBookingInput) validate() (datatypes.Date, int, error) {
	day, err := time.Parse(models.EventDateLayout, strings.TrimSpace(in.EventDate))
	if err != nil {
		return datatypes.Date{}, 0, ErrInvalidEventDate
	}
	qty := 1
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if qty < 1 {
		return datatypes.Date{}, 0, ErrInvalidQuantity
	}
	if in.DurationHours != nil && *in.DurationHours <= 0 {
		return datatypes.Date{}, 0, ErrInvalidDuration
	}
	return datatypes.Date(day), qty, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, id auth.Identity, in CreateBookingInput) (*models.Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.create",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.Int64("booking.service_id", int64(in.ServiceID))),
	)
	defer span.End()

	// Role and input checks run before any transaction is opened.
	if err := auth.RequireRole(id, models.RoleCustomer); err != nil {
		return nil, err
	}
	eventDate, qty, err := in.validate()
	if err != nil {
		return nil, err
	}

	var (
		booking  *models.Booking
		customer *models.Account
		listing  *models.Service
	)
	err = s.bookings.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Customer and service (with provider) are read in the same transaction
		c, err := s.accounts.FindByID(ctx, tx, id.AccountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return wrapInternal("lookup customer", err)
		}
		svc, err := s.services.FindWithProvider(ctx, tx, in.ServiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrServiceNotFound
			}
			return wrapInternal("lookup service", err)
		}

		// 2. Insert, always pending
		b := &models.Booking{
			ServiceID:     svc.ID,
			CustomerID:    c.ID,
			EventDate:     eventDate,
			Quantity:      qty,
			Notes:         in.Notes,
			Address:       in.Address,
			DurationHours: in.DurationHours,
			Status:        models.StatusPending,
		}
		if err := s.bookings.Create(ctx, tx, b); err != nil {
			return wrapInternal("create booking", err)
		}

		booking, customer, listing = b, c, svc
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.log.Info("booking created",
		zap.Uint("booking_id", booking.ID),
		zap.Uint("service_id", booking.ServiceID),
		zap.Uint("customer_id", booking.CustomerID),
	)
	s.afterCommit(ctx, booking, customer, listing)
	return booking, nil
}

// afterCommit runs the best-effort side channels. It has no result so
// nothing here can change what the caller sees.
func (s *bookingService) afterCommit(ctx context.Context, b *models.Booking, customer *models.Account, svc *models.Service) {
	// the booking is committed; a cancelled request must not cut these short
	ctx = context.WithoutCancel(ctx)

	if s.notifier != nil {
		out := s.notifier.NotifyBookingCreated(ctx, bookingAlert(b, customer, svc))
		s.log.Debug("booking notifications attempted",
			zap.Uint("booking_id", b.ID),
			zap.Bool("provider_delivered", out.ProviderDelivered),
			zap.Bool("admin_delivered", out.AdminDelivered),
		)
	}

	if s.publisher != nil {
		ev := BookingCreatedEvent{
			BookingID:  b.ID,
			ServiceID:  b.ServiceID,
			ProviderID: svc.ProviderID,
			CustomerID: b.CustomerID,
			EventDate:  time.Time(b.EventDate).Format(models.EventDateLayout),
			Quantity:   b.Quantity,
			Status:     b.Status,
			CreatedAt:  b.CreatedAt,
		}
		if err := s.publisher.Publish(ctx, RoutingKeyBookingCreated, ev); err != nil {
			s.log.Warn("publish booking event failed", zap.Uint("booking_id", b.ID), zap.Error(err))
		}
	}
}

func bookingAlert(b *models.Booking, customer *models.Account, svc *models.Service) notification.BookingAlert {
	alert := notification.BookingAlert{
		BookingID:     b.ID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Mobile,
		CustomerAddr:  customer.Address,
		ServiceName:   svc.Name,
		ServicePrice:  svc.Price,
		EventDate:     time.Time(b.EventDate).Format(models.EventDateLayout),
		Quantity:      b.Quantity,
		DurationHours: b.DurationHours,
		Address:       b.Address,
		Notes:         b.Notes,
	}
	if p := svc.Provider; p != nil {
		alert.ProviderName = p.Name
		alert.ProviderPhone = p.Mobile
		if p.WhatsAppNumber != nil {
			alert.ProviderWhatsApp = *p.WhatsAppNumber
		}
	}
	return alert
}

// ListMyBookings scopes by role: customers see their own bookings, providers
// see bookings against listings they own.
func (s *bookingService) ListMyBookings(ctx context.Context, id auth.Identity) ([]models.Booking, error) {
	var (
		bookings []models.Booking
		err      error
	)
	switch id.Role {
	case models.RoleCustomer:
		bookings, err = s.bookings.ListByCustomer(ctx, id.AccountID)
	case models.RoleProvider:
		bookings, err = s.bookings.ListByProvider(ctx, id.AccountID)
	default:
		return nil, auth.ErrForbidden
	}
	if err != nil {
		return nil, wrapInternal("list bookings", err)
	}
	return bookings, nil
}
