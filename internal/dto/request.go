package dto

type RegisterRequest struct {
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Mobile         string  `json:"mobile" validate:"required"`
	WhatsAppNumber *string `json:"whatsapp_number"`
	Address        string  `json:"address" validate:"required"`
	Role           string  `json:"role" validate:"required"`
	Password       string  `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ServiceRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	PhotoURL    *string `json:"photo_url"`
	Location    string  `json:"location" validate:"required"`
}

type CreateBookingRequest struct {
	ServiceID     uint    `json:"service_id" validate:"required"`
	EventDate     string  `json:"event_date" validate:"required"`
	Quantity      *int    `json:"quantity"`
	Notes         *string `json:"notes"`
	Address       *string `json:"address"`
	DurationHours *int    `json:"duration_hours"`
}

// CreateOrderRequest amounts are in paise.
type CreateOrderRequest struct {
	Amount   int64  `json:"amount" validate:"gt=0"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt" validate:"required"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}
