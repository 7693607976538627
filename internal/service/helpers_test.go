package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shaadibazaarhub/marketplace-api/internal/auth"
	"github.com/shaadibazaarhub/marketplace-api/internal/models"
	"github.com/shaadibazaarhub/marketplace-api/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.Options{Driver: database.DriverSQLite, DSN: database.MemoryDSN()})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func createAccount(t *testing.T, db *gorm.DB, name, email string, role models.Role, whatsapp *string) *models.Account {
	t.Helper()
	a := &models.Account{
		Name:           name,
		Email:          email,
		Mobile:         "9876543210",
		WhatsAppNumber: whatsapp,
		Address:        "12 MG Road, Pune",
		Role:           role,
		PasswordHash:   "not-a-real-hash",
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func createListing(t *testing.T, db *gorm.DB, providerID uint, name string, price float64) *models.Service {
	t.Helper()
	s := &models.Service{ProviderID: providerID, Name: name, Price: price, Location: "Mumbai"}
	require.NoError(t, db.Create(s).Error)
	return s
}

func identity(a *models.Account) auth.Identity {
	return auth.Identity{AccountID: a.ID, Role: a.Role}
}

func ptr[T any](v T) *T { return &v }
