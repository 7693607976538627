package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaadibazaarhub/marketplace-api/internal/auth"
	"github.com/shaadibazaarhub/marketplace-api/internal/dto"
	"github.com/shaadibazaarhub/marketplace-api/internal/models"
	"github.com/shaadibazaarhub/marketplace-api/internal/service"
)

func TestRegister_Handler(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, in service.RegisterInput) (*models.Account, error) {
			assert.Equal(t, "provider", in.Role)
			assert.Equal(t, "+919876543210", *in.WhatsAppNumber)
			return &models.Account{ID: 1, Name: in.Name, Email: in.Email, Mobile: in.Mobile,
				WhatsAppNumber: in.WhatsAppNumber, Address: in.Address, Role: models.RoleProvider, PasswordHash: "secret-hash"}, nil
		},
	}
	srv := newTestServer(t, Services{Auth: svc})

	body := `{"name":"Rajesh","email":"provider1@email.com","mobile":"9876543210","whatsapp_number":"+919876543210","address":"Mumbai","role":"provider","password":"password123"}`
	rec := srv.do(http.MethodPost, "/api/auth/register", body, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret-hash")
	resp := decode[dto.AccountResponse](t, rec)
	assert.Equal(t, models.RoleProvider, resp.Role)
	assert.Equal(t, "provider1@email.com", resp.Email)
}

func TestRegister_Handler_Conflict(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, in service.RegisterInput) (*models.Account, error) {
			return nil, service.ErrEmailTaken
		},
	}
	srv := newTestServer(t, Services{Auth: svc})

	body := `{"name":"A","email":"a@email.com","mobile":"1","address":"x","role":"customer","password":"p"}`
	rec := srv.do(http.MethodPost, "/api/auth/register", body, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, dto.ErrorResponse{Kind: "conflict", Message: "email already registered"}, decode[dto.ErrorResponse](t, rec))
}

func TestLogin_Handler(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			if password != "password123" {
				return "", service.ErrInvalidCredentials
			}
			return "signed.token.value", nil
		},
	}
	srv := newTestServer(t, Services{Auth: svc})

	rec := srv.do(http.MethodPost, "/api/auth/login", `{"email":"a@email.com","password":"password123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dto.TokenResponse{AccessToken: "signed.token.value", TokenType: "bearer"}, decode[dto.TokenResponse](t, rec))

	rec = srv.do(http.MethodPost, "/api/auth/login", `{"email":"a@email.com","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_Handler(t *testing.T) {
	svc := &mockAuthService{
		meFn: func(ctx context.Context, id auth.Identity) (*models.Account, error) {
			return &models.Account{ID: id.AccountID, Name: "C", Email: "c@email.com", Role: id.Role}, nil
		},
	}
	srv := newTestServer(t, Services{Auth: svc})

	rec := srv.do(http.MethodGet, "/api/auth/me", "", srv.token(t, 12, models.RoleCustomer))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(12), decode[dto.AccountResponse](t, rec).ID)

	rec = srv.do(http.MethodGet, "/api/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
