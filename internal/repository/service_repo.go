package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/shaadibazaarhub/marketplace-api/internal/models"
)

// ServiceFilter narrows a listing search. Empty fields match everything.
type ServiceFilter struct {
	Query    string
	Location string
}

type ServiceRepository interface {
	Create(ctx context.Context, svc *models.Service) error
	Search(ctx context.Context, filter ServiceFilter) ([]models.Service, error)
	FindByProvider(ctx context.Context, providerID uint) ([]models.Service, error)
	FindByID(ctx context.Context, id uint) (*models.Service, error)
	FindWithProvider(ctx context.Context, tx *gorm.DB, id uint) (*models.Service, error)
	Update(ctx context.Context, svc *models.Service) error
	Delete(ctx context.Context, id uint) error
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, svc *models.Service) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

func (r *serviceRepository) Search(ctx context.Context, filter ServiceFilter) ([]models.Service, error) {
	q := r.db.WithContext(ctx).Model(&models.Service{})
	if strings.TrimSpace(filter.Query) != "" {
		p := likePattern(filter.Query)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", p, p)
	}
	if strings.TrimSpace(filter.Location) != "" {
		q = q.Where("LOWER(location) LIKE ?", likePattern(filter.Location))
	}

	var services []models.Service
	if err := q.Order("id DESC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) FindByProvider(ctx context.Context, providerID uint) ([]models.Service, error) {
	var services []models.Service
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("id DESC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// FindWithProvider loads a listing joined with its owning provider account,
// inside tx.
func (r *serviceRepository) FindWithProvider(ctx context.Context, tx *gorm.DB, id uint) (*models.Service, error) {
	var svc models.Service
	err := tx.WithContext(ctx).
		Joins("Provider").
		Where("services.id = ?", id).
		First(&svc).Error
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) Update(ctx context.Context, svc *models.Service) error {
	return r.db.WithContext(ctx).
		Model(&models.Service{ID: svc.ID}).
		Select("name", "description", "price", "photo_url", "location").
		Updates(svc).Error
}

func (r *serviceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Service{}, id).Error
}
