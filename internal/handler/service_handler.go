package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shaadibazaarhub/marketplace-api/internal/dto"
	"github.com/shaadibazaarhub/marketplace-api/internal/middleware"
	"github.com/shaadibazaarhub/marketplace-api/internal/models"
	"github.com/shaadibazaarhub/marketplace-api/internal/repository"
	"github.com/shaadibazaarhub/marketplace-api/internal/service"
)

// ServiceHandler serves the listing catalogue.
type ServiceHandler struct {
	svc service.ListingService
}

func NewServiceHandler(svc service.ListingService) *ServiceHandler {
	return &ServiceHandler{svc: svc}
}

func (h *ServiceHandler) RegisterRoutes(e *echo.Echo, authn echo.MiddlewareFunc) {
	g := e.Group("/api/services")
	providerOnly := middleware.RequireRole(models.RoleProvider)

	g.GET("", h.List)
	g.GET("/my", h.Mine, authn, providerOnly)
	g.GET("/:id", h.Get)
	g.POST("", h.Create, authn, providerOnly)
	g.PUT("/:id", h.Update, authn, providerOnly)
	g.DELETE("/:id", h.Delete, authn, providerOnly)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid service id")
	}
	return uint(id), nil
}

func bindService(c echo.Context) (service.ServiceInput, error) {
	var req dto.ServiceRequest
	if err := c.Bind(&req); err != nil {
		return service.ServiceInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return service.ServiceInput{}, err
	}
	return service.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		PhotoURL:    req.PhotoURL,
		Location:    req.Location,
	}, nil
}

func (h *ServiceHandler) List(c echo.Context) error {
	services, err := h.svc.List(c.Request().Context(), repository.ServiceFilter{
		Query:    c.QueryParam("q"),
		Location: c.QueryParam("location"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToServiceResponses(services))
}

func (h *ServiceHandler) Mine(c echo.Context) error {
	id, err := middleware.Identity(c)
	if err != nil {
		return err
	}
	services, err := h.svc.Mine(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToServiceResponses(services))
}

func (h *ServiceHandler) Get(c echo.Context) error {
	serviceID, err := parseID(c)
	if err != nil {
		return err
	}
	svc, err := h.svc.Get(c.Request().Context(), serviceID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToServiceResponse(svc))
}

func (h *ServiceHandler) Create(c echo.Context) error {
	id, err := middleware.Identity(c)
	if err != nil {
		return err
	}
	in, err := bindService(c)
	if err != nil {
		return err
	}
	svc, err := h.svc.Create(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.ToServiceResponse(svc))
}

func (h *ServiceHandler) Update(c echo.Context) error {
	id, err := middleware.Identity(c)
	if err != nil {
		return err
	}
	serviceID, err := parseID(c)
	if err != nil {
		return err
	}
	in, err := bindService(c)
	if err != nil {
		return err
	}
	svc, err := h.svc.Update(c.Request().Context(), id, serviceID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToServiceResponse(svc))
}

func (h *ServiceHandler) Delete(c echo.Context) error {
	id, err := middleware.Identity(c)
	if err != nil {
		return err
	}
	serviceID, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id, serviceID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
