package dto

import (
	"time"

	"github.com/shaadibazaarhub/marketplace-api/internal/models"
)

type AccountResponse struct {
	ID             uint        `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Mobile         string      `json:"mobile"`
	WhatsAppNumber *string     `json:"whatsapp_number"`
	Address        string      `json:"address"`
	Role           models.Role `json:"role"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ServiceResponse struct {
	ID          uint    `json:"id"`
	ProviderID  uint    `json:"provider_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	PhotoURL    *string `json:"photo_url"`
	Location    string  `json:"location"`
}

type BookingResponse struct {
	ID            uint                 `json:"id"`
	ServiceID     uint                 `json:"service_id"`
	CustomerID    uint                 `json:"customer_id"`
	EventDate     string               `json:"event_date"`
	Quantity      int                  `json:"quantity"`
	Notes         *string              `json:"notes"`
	Address       *string              `json:"address,omitempty"`
	DurationHours *int                 `json:"duration_hours,omitempty"`
	Status        models.BookingStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
}

type PaymentConfigResponse struct {
	KeyID string `json:"key_id"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func ToAccountResponse(a *models.Account) AccountResponse {
	return AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		Email:          a.Email,
		Mobile:         a.Mobile,
		WhatsAppNumber: a.WhatsAppNumber,
		Address:        a.Address,
		Role:           a.Role,
	}
}

func ToServiceResponse(s *models.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		ProviderID:  s.ProviderID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		PhotoURL:    s.PhotoURL,
		Location:    s.Location,
	}
}

func ToServiceResponses(services []models.Service) []ServiceResponse {
	resp := make([]ServiceResponse, len(services))
	for i := range services {
		resp[i] = ToServiceResponse(&services[i])
	}
	return resp
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		ServiceID:     b.ServiceID,
		CustomerID:    b.CustomerID,
		EventDate:     time.Time(b.EventDate).Format(models.EventDateLayout),
		Quantity:      b.Quantity,
		Notes:         b.Notes,
		Address:       b.Address,
		DurationHours: b.DurationHours,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
	}
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = ToBookingResponse(&bookings[i])
	}
	return resp
}
