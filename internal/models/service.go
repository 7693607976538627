package models

import "time"

// Service is a listing owned by exactly one provider account.
type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProviderID  uint      `gorm:"not null;index" json:"provider_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `gorm:"type:decimal(12,2);not null" json:"price"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	Location    string    `gorm:"not null;index" json:"location"`
	CreatedAt   time.Time `json:"created_at"`

	Provider *Account `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"-"`
}
