package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"

	"github.com/shaadibazaarhub/marketplace-api/internal/auth"
	"github.com/shaadibazaarhub/marketplace-api/internal/middleware"
	"github.com/shaadibazaarhub/marketplace-api/internal/service"
)

const healthTimeout = 2 * time.Second

type Services struct {
	Auth     service.AuthService
	Listings service.ListingService
	Bookings service.BookingService
	Payments service.PaymentService

	// StoreCheck pings the database for /health. Nil skips the check.
	StoreCheck func(ctx context.Context) error
}

type healthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Database string `json:"database,omitempty"`
}

// RegisterRoutes mounts every API route. Protected routes authenticate
// through guard.
func RegisterRoutes(e *echo.Echo, guard *auth.Guard, svcs Services) {
	// clients call both /api/bookings and /api/bookings/
	e.Pre(echoMw.RemoveTrailingSlash())

	authn := middleware.JWTAuth(guard)

	e.GET("/health", health(svcs.StoreCheck))

	NewAuthHandler(svcs.Auth).RegisterRoutes(e, authn)
	NewServiceHandler(svcs.Listings).RegisterRoutes(e, authn)
	NewBookingHandler(svcs.Bookings).RegisterRoutes(e, authn)
	NewPaymentHandler(svcs.Payments).RegisterRoutes(e, authn)
}

func health(check func(ctx context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp := healthResponse{Status: "ok", Service: "marketplace-api"}
		if check == nil {
			return c.JSON(http.StatusOK, resp)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
		defer cancel()
		if err := check(ctx); err != nil {
			resp.Status, resp.Database = "degraded", "unavailable"
			return c.JSON(http.StatusServiceUnavailable, resp)
		}
		resp.Database = "ok"
		return c.JSON(http.StatusOK, resp)
	}
}
