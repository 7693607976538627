package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/shaadibazaarhub/marketplace-api/internal/apperror"
	"github.com/shaadibazaarhub/marketplace-api/internal/auth"
	"github.com/shaadibazaarhub/marketplace-api/internal/dto"
	"github.com/shaadibazaarhub/marketplace-api/internal/models"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestErrorHandler_Kinds(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantKind   string
		wantMsg    string
	}{
		{apperror.New(apperror.NotFound, "service not found"), http.StatusNotFound, "not_found", "service not found"},
		{apperror.New(apperror.Forbidden, "not owner"), http.StatusForbidden, "forbidden", "not owner"},
		{auth.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated", "not authenticated"},
		{apperror.New(apperror.Conflict, "email already registered"), http.StatusConflict, "conflict", "email already registered"},
		{echo.NewHTTPError(http.StatusBadRequest, "invalid request body"), http.StatusBadRequest, "validation", "invalid request body"},
		{echo.ErrNotFound, http.StatusNotFound, "not_found", "Not Found"},
		{errors.New("pq: connection reset"), http.StatusInternalServerError, "internal", internalMessage},
	}

	e := echo.New()
	h := NewErrorHandler(nil)
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		h(tc.err, e.NewContext(req, rec))

		assert.Equal(t, tc.wantStatus, rec.Code, tc.err.Error())
		resp := decodeError(t, rec)
		assert.Equal(t, tc.wantKind, resp.Kind)
		assert.Equal(t, tc.wantMsg, resp.Message)
	}
}

func TestErrorHandler_LogsInternalCause(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
	rec := httptest.NewRecorder()

	cause := apperror.Wrap(apperror.Internal, "create booking", errors.New("disk full"))
	NewErrorHandler(zap.New(core))(cause, e.NewContext(req, rec))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, internalMessage, decodeError(t, rec).Message)
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].ContextMap()["error"], "disk full")
}

func newGuard(t *testing.T) (*auth.Guard, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService(auth.TokenConfig{Secret: "mw-secret"})
	require.NoError(t, err)
	return auth.NewGuard(tokens), tokens
}

func TestJWTAuth(t *testing.T) {
	guard, tokens := newGuard(t)
	token, err := tokens.Issue(5, models.RoleCustomer, 0)
	require.NoError(t, err)

	e := echo.New()
	var seen auth.Identity
	handler := JWTAuth(guard)(func(c echo.Context) error {
		seen, err = Identity(c)
		return err
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))
	assert.Equal(t, uint(5), seen.AccountID)
	assert.Equal(t, models.RoleCustomer, seen.Role)

	for _, header := range []string{"", "Basic abc", "Bearer", "Bearer not.a.token"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(echo.HeaderAuthorization, header)
		}
		err := handler(e.NewContext(req, httptest.NewRecorder()))
		assert.ErrorIs(t, err, auth.ErrUnauthenticated, header)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	mw := RequireRole(models.RoleProvider)(ok)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.ErrorIs(t, mw(c), auth.ErrUnauthenticated)

	SetIdentity(c, auth.Identity{AccountID: 1, Role: models.RoleCustomer})
	assert.ErrorIs(t, mw(c), auth.ErrForbidden)

	rec := httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	SetIdentity(c, auth.Identity{AccountID: 1, Role: models.RoleProvider})
	require.NoError(t, mw(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestValidator(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&dto.LoginRequest{Email: "a@example.com", Password: "x"}))

	err := v.Validate(&dto.LoginRequest{Email: "nope"})
	require.Error(t, err)
	assert.Equal(t, apperror.Validation, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "email must be a valid email")
	assert.Contains(t, err.Error(), "password is required")

	err = v.Validate(&dto.CreateOrderRequest{Amount: 0, Receipt: "r"})
	assert.Contains(t, err.Error(), "amount must be greater than 0")
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := echo.New()
	e.Use(RequestLogger(zap.New(core)))
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request", entry.Message)
	assert.Equal(t, "/health", entry.ContextMap()["uri"])
	assert.Equal(t, int64(http.StatusOK), entry.ContextMap()["status"])
}
