// Package seed loads sample accounts, listings and bookings into the store.
// Loading is idempotent: rows that already exist are left alone.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/shaadibazaarhub/marketplace-api/internal/auth"
	"github.com/shaadibazaarhub/marketplace-api/internal/models"
)

//go:embed fixtures.yaml
var DefaultFixtures []byte

type Account struct {
	Name           string  `yaml:"name"`
	Email          string  `yaml:"email"`
	Mobile         string  `yaml:"mobile"`
	WhatsAppNumber *string `yaml:"whatsapp_number"`
	Address        string  `yaml:"address"`
	Role           string  `yaml:"role"`
	Password       string  `yaml:"password"`
}

type Service struct {
	Provider    string  `yaml:"provider"`
	Name        string  `yaml:"name"`
	Description *string `yaml:"description"`
	Price       float64 `yaml:"price"`
	PhotoURL    *string `yaml:"photo_url"`
	Location    string  `yaml:"location"`
}

type Booking struct {
	Customer  string  `yaml:"customer"`
	Service   string  `yaml:"service"`
	EventDate string  `yaml:"event_date"`
	Quantity  int     `yaml:"quantity"`
	Notes     *string `yaml:"notes"`
	Status    string  `yaml:"status"`
}

type Fixtures struct {
	Accounts []Account `yaml:"accounts"`
	Services []Service `yaml:"services"`
	Bookings []Booking `yaml:"bookings"`
}

// Summary counts the rows actually inserted.
type Summary struct {
	Accounts int
	Services int
	Bookings int
}

func Parse(data []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &fx, nil
}

type loader struct {
	tx       *gorm.DB
	log      *zap.Logger
	accounts map[string]*models.Account
	services map[string]*models.Service
	summary  Summary
}

// Apply writes fx in one transaction. Accounts are matched by email,
// services by provider and name, bookings by customer, service and date.
func Apply(ctx context.Context, db *gorm.DB, fx *Fixtures, log *zap.Logger) (Summary, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var summary Summary
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l := &loader{
			tx:       tx,
			log:      log.Named("seed"),
			accounts: map[string]*models.Account{},
			services: map[string]*models.Service{},
		}
		for _, a := range fx.Accounts {
			if err := l.account(a); err != nil {
				return err
			}
		}
		for _, s := range fx.Services {
			if err := l.service(s); err != nil {
				return err
			}
		}
		for _, b := range fx.Bookings {
			if err := l.booking(b); err != nil {
				return err
			}
		}
		summary = l.summary
		return nil
	})
	return summary, err
}

func (l *loader) account(a Account) error {
	var existing models.Account
	err := l.tx.Where("email = ?", a.Email).First(&existing).Error
	if err == nil {
		l.log.Debug("account exists, skipping", zap.String("email", a.Email))
		l.accounts[a.Email] = &existing
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	role, err := models.ParseRole(a.Role)
	if err != nil {
		return fmt.Errorf("account %s: %w", a.Email, err)
	}
	hash, err := auth.HashPassword(a.Password)
	if err != nil {
		return err
	}
	acc := &models.Account{
		Name:           a.Name,
		Email:          a.Email,
		Mobile:         a.Mobile,
		WhatsAppNumber: a.WhatsAppNumber,
		Address:        a.Address,
		Role:           role,
		PasswordHash:   hash,
	}
	if err := l.tx.Create(acc).Error; err != nil {
		return fmt.Errorf("account %s: %w", a.Email, err)
	}
	l.accounts[a.Email] = acc
	l.summary.Accounts++
	return nil
}

func (l *loader) lookupAccount(email string) (*models.Account, error) {
	if acc, ok := l.accounts[email]; ok {
		return acc, nil
	}
	var acc models.Account
	if err := l.tx.Where("email = ?", email).First(&acc).Error; err != nil {
		return nil, fmt.Errorf("account %s: %w", email, err)
	}
	l.accounts[email] = &acc
	return &acc, nil
}

func (l *loader) service(s Service) error {
	provider, err := l.lookupAccount(s.Provider)
	if err != nil {
		return err
	}
	if provider.Role != models.RoleProvider {
		return fmt.Errorf("service %q: %s is not a provider", s.Name, s.Provider)
	}

	var existing models.Service
	err = l.tx.Where("provider_id = ? AND name = ?", provider.ID, s.Name).First(&existing).Error
	if err == nil {
		l.services[s.Name] = &existing
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	svc := &models.Service{
		ProviderID:  provider.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		PhotoURL:    s.PhotoURL,
		Location:    s.Location,
	}
	if err := l.tx.Create(svc).Error; err != nil {
		return fmt.Errorf("service %q: %w", s.Name, err)
	}
	l.services[s.Name] = svc
	l.summary.Services++
	return nil
}

func (l *loader) booking(b Booking) error {
	customer, err := l.lookupAccount(b.Customer)
	if err != nil {
		return err
	}
	svc, ok := l.services[b.Service]
	if !ok {
		return fmt.Errorf("booking: unknown service %q", b.Service)
	}
	day, err := time.Parse(models.EventDateLayout, b.EventDate)
	if err != nil {
		return fmt.Errorf("booking: %w", err)
	}

	var n int64
	err = l.tx.Model(&models.Booking{}).
		Where("customer_id = ? AND service_id = ? AND event_date = ?", customer.ID, svc.ID, datatypes.Date(day)).
		Count(&n).Error
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	status := models.BookingStatus(b.Status)
	if status == "" {
		status = models.StatusPending
	}
	qty := b.Quantity
	if qty < 1 {
		qty = 1
	}
	row := &models.Booking{
		ServiceID:  svc.ID,
		CustomerID: customer.ID,
		EventDate:  datatypes.Date(day),
		Quantity:   qty,
		Notes:      b.Notes,
		Status:     status,
	}
	if err := l.tx.Create(row).Error; err != nil {
		return fmt.Errorf("booking: %w", err)
	}
	l.summary.Bookings++
	return nil
}
