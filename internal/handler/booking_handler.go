package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shaadibazaarhub/marketplace-api/internal/dto"
	"github.com/shaadibazaarhub/marketplace-api/internal/middleware"
	"github.com/shaadibazaarhub/marketplace-api/internal/models"
	"github.com/shaadibazaarhub/marketplace-api/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo, authn echo.MiddlewareFunc) {
	bookings := e.Group("/api/bookings", authn)
	// role is checked before the body is bound so a provider always gets 403
	bookings.POST("", h.CreateBooking, middleware.RequireRole(models.RoleCustomer))
	bookings.GET("/my", h.ListMyBookings)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	id, err := middleware.Identity(c)
	if err != nil {
		return err
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), id, service.CreateBookingInput{
		ServiceID:     req.ServiceID,
		EventDate:     req.EventDate,
		Quantity:      req.Quantity,
		Notes:         req.Notes,
		Address:       req.Address,
		DurationHours: req.DurationHours,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	id, err := middleware.Identity(c)
	if err != nil {
		return err
	}

	bookings, err := h.svc.ListMyBookings(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}
