package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shaadibazaarhub/marketplace-api/internal/dto"
	"github.com/shaadibazaarhub/marketplace-api/internal/service"
)

type PaymentHandler struct {
	svc service.PaymentService
}

func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, authn echo.MiddlewareFunc) {
	g := e.Group("/api/payments")
	g.GET("/config", h.Config)
	g.POST("/create-order", h.CreateOrder, authn)
	g.POST("/verify", h.Verify, authn)
}

func (h *PaymentHandler) Config(c echo.Context) error {
	key, err := h.svc.PublicKey()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.PaymentConfigResponse{KeyID: key})
}

func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.svc.CreateOrder(c.Request().Context(), service.CreateOrderInput{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
	})
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, order)
}

func (h *PaymentHandler) Verify(c echo.Context) error {
	var req dto.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.svc.VerifyPayment(service.VerifyPaymentInput{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.StatusResponse{Status: "verified"})
}
