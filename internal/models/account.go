package models

import (
	"fmt"
	"time"
)

// Role is fixed at registration and gates every authorization decision.
type Role string

const (
	RoleProvider Role = "provider"
	RoleCustomer Role = "customer"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleProvider, RoleCustomer:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string { return string(r) }

type Account struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Mobile         string    `gorm:"not null" json:"mobile"`
	WhatsAppNumber *string   `gorm:"column:whatsapp_number" json:"whatsapp_number,omitempty"`
	Address        string    `gorm:"not null" json:"address"`
	Role           Role      `gorm:"type:varchar(20);not null;check:chk_accounts_role,role IN ('provider','customer')" json:"role"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
