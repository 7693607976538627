package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shaadibazaarhub/marketplace-api/internal/dto"
	"github.com/shaadibazaarhub/marketplace-api/internal/middleware"
	"github.com/shaadibazaarhub/marketplace-api/internal/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, authn echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.GET("/me", h.Me, authn)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.svc.Register(c.Request().Context(), service.RegisterInput{
		Name:           req.Name,
		Email:          req.Email,
		Mobile:         req.Mobile,
		WhatsAppNumber: req.WhatsAppNumber,
		Address:        req.Address,
		Role:           req.Role,
		Password:       req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	id, err := middleware.Identity(c)
	if err != nil {
		return err
	}

	account, err := h.svc.Me(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
