package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/shaadibazaarhub/marketplace-api/internal/auth"
	"github.com/shaadibazaarhub/marketplace-api/internal/middleware"
	"github.com/shaadibazaarhub/marketplace-api/internal/models"
	"github.com/shaadibazaarhub/marketplace-api/internal/repository"
	"github.com/shaadibazaarhub/marketplace-api/internal/service"
)

// --- Mock services ---

type mockAuthService struct {
	registerFn func(ctx context.Context, in service.RegisterInput) (*models.Account, error)
	loginFn    func(ctx context.Context, email, password string) (string, error)
	meFn       func(ctx context.Context, id auth.Identity) (*models.Account, error)
}

func (m *mockAuthService) Register(ctx context.Context, in service.RegisterInput) (*models.Account, error) {
	return m.registerFn(ctx, in)
}
func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return m.loginFn(ctx, email, password)
}
func (m *mockAuthService) Me(ctx context.Context, id auth.Identity) (*models.Account, error) {
	return m.meFn(ctx, id)
}

type mockListingService struct {
	createFn func(ctx context.Context, id auth.Identity, in service.ServiceInput) (*models.Service, error)
	listFn   func(ctx context.Context, filter repository.ServiceFilter) ([]models.Service, error)
	mineFn   func(ctx context.Context, id auth.Identity) ([]models.Service, error)
	getFn    func(ctx context.Context, serviceID uint) (*models.Service, error)
	updateFn func(ctx context.Context, id auth.Identity, serviceID uint, in service.ServiceInput) (*models.Service, error)
	deleteFn func(ctx context.Context, id auth.Identity, serviceID uint) error
}

func (m *mockListingService) Create(ctx context.Context, id auth.Identity, in service.ServiceInput) (*models.Service, error) {
	return m.createFn(ctx, id, in)
}
func (m *mockListingService) List(ctx context.Context, filter repository.ServiceFilter) ([]models.Service, error) {
	return m.listFn(ctx, filter)
}
func (m *mockListingService) Mine(ctx context.Context, id auth.Identity) ([]models.Service, error) {
	return m.mineFn(ctx, id)
}
func (m *mockListingService) Get(ctx context.Context, serviceID uint) (*models.Service, error) {
	return m.getFn(ctx, serviceID)
}
func (m *mockListingService) Update(ctx context.Context, id auth.Identity, serviceID uint, in service.ServiceInput) (*models.Service, error) {
	return m.updateFn(ctx, id, serviceID, in)
}
func (m *mockListingService) Delete(ctx context.Context, id auth.Identity, serviceID uint) error {
	return m.deleteFn(ctx, id, serviceID)
}

type mockBookingService struct {
	createFn func(ctx context.Context, id auth.Identity, in service.CreateBookingInput) (*models.Booking, error)
	listFn   func(ctx context.Context, id auth.Identity) ([]models.Booking, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, id auth.Identity, in service.CreateBookingInput) (*models.Booking, error) {
	return m.createFn(ctx, id, in)
}
func (m *mockBookingService) ListMyBookings(ctx context.Context, id auth.Identity) ([]models.Booking, error) {
	return m.listFn(ctx, id)
}

type mockPaymentService struct {
	keyFn    func() (string, error)
	orderFn  func(ctx context.Context, in service.CreateOrderInput) (json.RawMessage, error)
	verifyFn func(in service.VerifyPaymentInput) error
}

func (m *mockPaymentService) PublicKey() (string, error) { return m.keyFn() }
func (m *mockPaymentService) CreateOrder(ctx context.Context, in service.CreateOrderInput) (json.RawMessage, error) {
	return m.orderFn(ctx, in)
}
func (m *mockPaymentService) VerifyPayment(in service.VerifyPaymentInput) error {
	return m.verifyFn(in)
}

// --- Harness ---

type testServer struct {
	e      *echo.Echo
	tokens *auth.TokenService
}

func newTestServer(t *testing.T, svcs Services) *testServer {
	t.Helper()
	tokens, err := auth.NewTokenService(auth.TokenConfig{Secret: "handler-secret"})
	require.NoError(t, err)

	e := echo.New()
	e.Validator = middleware.NewValidator()
	e.HTTPErrorHandler = middleware.NewErrorHandler(nil)
	RegisterRoutes(e, auth.NewGuard(tokens), svcs)
	return &testServer{e: e, tokens: tokens}
}

func (s *testServer) token(t *testing.T, id uint, role models.Role) string {
	t.Helper()
	tok, err := s.tokens.Issue(id, role, 0)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
