package models

import (
	"time"

	"gorm.io/datatypes"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// EventDateLayout is the wire format of Booking.EventDate.
const EventDateLayout = "2006-01-02"

type Booking struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ServiceID     uint           `gorm:"not null;index" json:"service_id"`
	CustomerID    uint           `gorm:"not null;index" json:"customer_id"`
	EventDate     datatypes.Date `gorm:"not null" json:"event_date"`
	Quantity      int            `gorm:"not null;default:1;check:chk_bookings_quantity,quantity >= 1" json:"quantity"`
	Notes         *string        `json:"notes,omitempty"`
	Address       *string        `json:"address,omitempty"`
	DurationHours *int           `json:"duration_hours,omitempty"`
	Status        BookingStatus  `gorm:"type:varchar(20);not null;default:'pending';check:chk_bookings_status,status IN ('pending','confirmed','cancelled')" json:"status"`
	CreatedAt     time.Time      `json:"created_at"`

	Service  *Service `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"-"`
	Customer *Account `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}
