package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shaadibazaarhub/marketplace-api/internal/auth"
	"github.com/shaadibazaarhub/marketplace-api/internal/models"
	"github.com/shaadibazaarhub/marketplace-api/internal/repository"
)

type ServiceInput struct {
	Name        string
	Description *string
	Price       float64
	PhotoURL    *string
	Location    string
}

// ListingService manages the provider-owned service catalogue.
type ListingService interface {
	Create(ctx context.Context, id auth.Identity, in ServiceInput) (*models.Service, error)
	List(ctx context.Context, filter repository.ServiceFilter) ([]models.Service, error)
	Mine(ctx context.Context, id auth.Identity) ([]models.Service, error)
	Get(ctx context.Context, serviceID uint) (*models.Service, error)
	Update(ctx context.Context, id auth.Identity, serviceID uint, in ServiceInput) (*models.Service, error)
	Delete(ctx context.Context, id auth.Identity, serviceID uint) error
}

type listingService struct {
	services repository.ServiceRepository
	log      *zap.Logger
}

func NewListingService(services repository.ServiceRepository, log *zap.Logger) ListingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &listingService{services: services, log: log.Named("listing")}
}

func (s *listingService) Create(ctx context.Context, id auth.Identity, in ServiceInput) (*models.Service, error) {
	if err := auth.RequireRole(id, models.RoleProvider); err != nil {
		return nil, err
	}
	if in.Price < 0 {
		return nil, ErrInvalidPrice
	}

	svc := &models.Service{
		ProviderID:  id.AccountID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		PhotoURL:    in.PhotoURL,
		Location:    in.Location,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, wrapInternal("create service", err)
	}
	s.log.Info("service created", zap.Uint("service_id", svc.ID), zap.Uint("provider_id", id.AccountID))
	return svc, nil
}

func (s *listingService) List(ctx context.Context, filter repository.ServiceFilter) ([]models.Service, error) {
	services, err := s.services.Search(ctx, filter)
	if err != nil {
		return nil, wrapInternal("search services", err)
	}
	return services, nil
}

func (s *listingService) Mine(ctx context.Context, id auth.Identity) ([]models.Service, error) {
	if err := auth.RequireRole(id, models.RoleProvider); err != nil {
		return nil, err
	}
	services, err := s.services.FindByProvider(ctx, id.AccountID)
	if err != nil {
		return nil, wrapInternal("list provider services", err)
	}
	return services, nil
}

func (s *listingService) Get(ctx context.Context, serviceID uint) (*models.Service, error) {
	svc, err := s.services.FindByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, wrapInternal("get service", err)
	}
	return svc, nil
}

// owned loads a listing and checks that the caller is a provider who owns it.
func (s *listingService) owned(ctx context.Context, id auth.Identity, serviceID uint) (*models.Service, error) {
	if err := auth.RequireRole(id, models.RoleProvider); err != nil {
		return nil, err
	}
	svc, err := s.Get(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc.ProviderID != id.AccountID {
		return nil, ErrNotOwner
	}
	return svc, nil
}

func (s *listingService) Update(ctx context.Context, id auth.Identity, serviceID uint, in ServiceInput) (*models.Service, error) {
	svc, err := s.owned(ctx, id, serviceID)
	if err != nil {
		return nil, err
	}
	if in.Price < 0 {
		return nil, ErrInvalidPrice
	}

	svc.Name = in.Name
	svc.Description = in.Description
	svc.Price = in.Price
	svc.PhotoURL = in.PhotoURL
	svc.Location = in.Location
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, wrapInternal("update service", err)
	}
	return svc, nil
}

func (s *listingService) Delete(ctx context.Context, id auth.Identity, serviceID uint) error {
	if _, err := s.owned(ctx, id, serviceID); err != nil {
		return err
	}
	if err := s.services.Delete(ctx, serviceID); err != nil {
		return wrapInternal("delete service", err)
	}
	s.log.Info("service deleted", zap.Uint("service_id", serviceID), zap.Uint("provider_id", id.AccountID))
	return nil
}
