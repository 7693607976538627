package service

import "github.com/shaadibazaarhub/marketplace-api/internal/apperror"

var (
	ErrCustomerNotFound   = apperror.New(apperror.NotFound, "customer not found")
	ErrServiceNotFound    = apperror.New(apperror.NotFound, "service not found")
	ErrAccountNotFound    = apperror.New(apperror.NotFound, "account not found")
	ErrEmailTaken         = apperror.New(apperror.Conflict, "email already registered")
	ErrInvalidCredentials = apperror.New(apperror.Unauthenticated, "invalid email or password")
	ErrNotOwner           = apperror.New(apperror.Forbidden, "not owner")
	ErrInvalidRole        = apperror.New(apperror.Validation, "role must be provider or customer")
	ErrInvalidEventDate   = apperror.New(apperror.Validation, "event_date must be YYYY-MM-DD")
	ErrInvalidQuantity    = apperror.New(apperror.Validation, "quantity must be at least 1")
	ErrInvalidDuration    = apperror.New(apperror.Validation, "duration_hours must be positive")
	ErrInvalidPrice       = apperror.New(apperror.Validation, "price must not be negative")

	ErrPaymentsUnavailable = apperror.New(apperror.Unavailable, "payment gateway is not configured")
	ErrInvalidAmount       = apperror.New(apperror.Validation, "invalid amount")
	ErrSignatureMismatch   = apperror.New(apperror.Validation, "signature verification failed")
)

func wrapInternal(msg string, err error) error {
	return apperror.Wrap(apperror.Internal, msg, err)
}
