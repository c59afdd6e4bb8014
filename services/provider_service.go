package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-tab/models"
)

// ProviderService covers the subscription lifecycle: provider managers own a
// set of restaurants and control when each one expires.
type ProviderService struct {
	db *gorm.DB
}

func NewProviderService(db *gorm.DB) *ProviderService {
	return &ProviderService{db: db}
}

func (s *ProviderService) manager(providerManagerID uint) (*models.ProviderManager, error) {
	var manager models.ProviderManager
	if err := s.db.First(&manager, providerManagerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("provider manager not found")
		}
		return nil, err
	}
	return &manager, nil
}

// CreateRestaurant registers a restaurant under the manager's provider.
func (s *ProviderService) CreateRestaurant(providerManagerID uint, name string, maxTables int, expiresAt time.Time) (*models.Restaurant, error) {
	if name == "" {
		return nil, validation("restaurant name is required")
	}
	if maxTables < 1 {
		return nil, validation("max tables must be at least 1")
	}

	manager, err := s.manager(providerManagerID)
	if err != nil {
		return nil, err
	}

	restaurant := models.Restaurant{
		ProviderID: manager.ProviderID,
		Name:       name,
		MaxTables:  maxTables,
		ExpiresAt:  expiresAt,
	}
	if err := s.db.Create(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// ListRestaurants returns the provider's restaurants.
func (s *ProviderService) ListRestaurants(providerManagerID uint) ([]models.Restaurant, error) {
	manager, err := s.manager(providerManagerID)
	if err != nil {
		return nil, err
	}

	var restaurants []models.Restaurant
	err = s.db.
		Where("provider_id = ?", manager.ProviderID).
		Order("name asc").
		Find(&restaurants).Error
	return restaurants, err
}

// ChangeExpiration moves a restaurant's subscription end. Extending past
// now() reactivates an expired restaurant.
func (s *ProviderService) ChangeExpiration(providerManagerID, restaurantID uint, expiresAt time.Time) (*models.Restaurant, error) {
	manager, err := s.manager(providerManagerID)
	if err != nil {
		return nil, err
	}

	var restaurant models.Restaurant
	if err := s.db.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("restaurant not found")
		}
		return nil, err
	}
	if restaurant.ProviderID != manager.ProviderID {
		return nil, unauthorized("this restaurant belongs to another provider")
	}

	if err := s.db.Model(&restaurant).Update("expires_at", expiresAt).Error; err != nil {
		return nil, err
	}
	restaurant.ExpiresAt = expiresAt
	return &restaurant, nil
}
