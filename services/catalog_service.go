package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-tab/models"
	"github.com/yeremiapane/restaurant-tab/utils"
)

// CatalogService owns the restaurant's categories and products. All writes
// are manager-gated and require an active subscription; products are only
// read, never mutated, by the ordering flow.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) CreateCategory(managerID uint, name string) (*models.Category, error) {
	if len(name) < 2 {
		return nil, validation("category name needs at least 2 characters")
	}

	restaurant, err := activeRestaurantByManager(s.db, managerID)
	if err != nil {
		return nil, err
	}

	var existing int64
	err = s.db.Model(&models.Category{}).
		Where("restaurant_id = ? AND name = ?", restaurant.ID, name).
		Count(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, conflict(fmt.Sprintf("category %s already exists", name))
	}

	category := models.Category{
		RestaurantID: restaurant.ID,
		Name:         name,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CatalogService) UpdateCategory(managerID, categoryID uint, name string) (*models.Category, error) {
	if len(name) < 2 {
		return nil, validation("category name needs at least 2 characters")
	}

	restaurant, err := activeRestaurantByManager(s.db, managerID)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryOwnedBy(categoryID, restaurant.ID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(category).Update("name", name).Error; err != nil {
		return nil, err
	}
	category.Name = name
	return category, nil
}

func (s *CatalogService) DeleteCategory(managerID, categoryID uint) error {
	restaurant, err := activeRestaurantByManager(s.db, managerID)
	if err != nil {
		return err
	}

	category, err := s.categoryOwnedBy(categoryID, restaurant.ID)
	if err != nil {
		return err
	}

	return s.db.Delete(category).Error
}

func (s *CatalogService) ListCategories(restaurantID uint, page utils.Pagination) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Scopes(page.Scope()).
		Where("restaurant_id = ?", restaurantID).
		Order("name asc").
		Find(&categories).Error
	return categories, err
}

// CreateProductInput carries the manager-provided product fields.
type CreateProductInput struct {
	CategoryID                uint    `json:"category_id" binding:"required"`
	Name                      string  `json:"name" binding:"required"`
	Description               string  `json:"description"`
	ImageUrl                  *string `json:"image_url"`
	PriceInCents              int     `json:"price_in_cents" binding:"required"`
	AvailabilityType          string  `json:"availability_type" binding:"required"`
	AvailableAmount           int     `json:"available_amount"`
	IsAvailable               *bool   `json:"is_available"`
	EstimatedMinutesToPrepare *int    `json:"estimated_minutes_to_prepare"`
}

func (s *CatalogService) CreateProduct(managerID uint, input CreateProductInput) (*models.Product, error) {
	if input.PriceInCents < 0 {
		return nil, validation("price cannot be negative")
	}
	if input.AvailabilityType != models.AvailabilityTypeQuantity &&
		input.AvailabilityType != models.AvailabilityTypeAvailability {
		return nil, validation("unknown availability type")
	}
	if input.AvailabilityType == models.AvailabilityTypeQuantity && input.AvailableAmount < 0 {
		return nil, validation("available amount cannot be negative")
	}

	restaurant, err := activeRestaurantByManager(s.db, managerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.categoryOwnedBy(input.CategoryID, restaurant.ID); err != nil {
		return nil, err
	}

	isAvailable := true
	if input.IsAvailable != nil {
		isAvailable = *input.IsAvailable
	}

	product := models.Product{
		RestaurantID:              restaurant.ID,
		CategoryID:                input.CategoryID,
		Name:                      input.Name,
		Description:               input.Description,
		ImageUrl:                  input.ImageUrl,
		PriceInCents:              input.PriceInCents,
		AvailabilityType:          input.AvailabilityType,
		AvailableAmount:           input.AvailableAmount,
		IsAvailable:               isAvailable,
		EstimatedMinutesToPrepare: input.EstimatedMinutesToPrepare,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Category").First(&product, product.ID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProductInput carries optional product updates; nil fields are left
// untouched.
type UpdateProductInput struct {
	CategoryID                *uint   `json:"category_id"`
	Name                      *string `json:"name"`
	Description               *string `json:"description"`
	ImageUrl                  *string `json:"image_url"`
	PriceInCents              *int    `json:"price_in_cents"`
	AvailabilityType          *string `json:"availability_type"`
	AvailableAmount           *int    `json:"available_amount"`
	IsAvailable               *bool   `json:"is_available"`
	EstimatedMinutesToPrepare *int    `json:"estimated_minutes_to_prepare"`
}

func (s *CatalogService) UpdateProduct(managerID, productID uint, input UpdateProductInput) (*models.Product, error) {
	restaurant, err := activeRestaurantByManager(s.db, managerID)
	if err != nil {
		return nil, err
	}

	product, err := s.productOwnedBy(productID, restaurant.ID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.CategoryID != nil {
		if _, err := s.categoryOwnedBy(*input.CategoryID, restaurant.ID); err != nil {
			return nil, err
		}
		updates["category_id"] = *input.CategoryID
	}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.ImageUrl != nil {
		updates["image_url"] = *input.ImageUrl
	}
	if input.PriceInCents != nil {
		if *input.PriceInCents < 0 {
			return nil, validation("price cannot be negative")
		}
		updates["price_in_cents"] = *input.PriceInCents
	}
	if input.AvailabilityType != nil {
		if *input.AvailabilityType != models.AvailabilityTypeQuantity &&
			*input.AvailabilityType != models.AvailabilityTypeAvailability {
			return nil, validation("unknown availability type")
		}
		updates["availability_type"] = *input.AvailabilityType
	}
	if input.AvailableAmount != nil {
		if *input.AvailableAmount < 0 {
			return nil, validation("available amount cannot be negative")
		}
		updates["available_amount"] = *input.AvailableAmount
	}
	if input.IsAvailable != nil {
		updates["is_available"] = *input.IsAvailable
	}
	if input.EstimatedMinutesToPrepare != nil {
		updates["estimated_minutes_to_prepare"] = *input.EstimatedMinutesToPrepare
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.Preload("Category").First(product, productID).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(managerID, productID uint) error {
	restaurant, err := activeRestaurantByManager(s.db, managerID)
	if err != nil {
		return err
	}

	product, err := s.productOwnedBy(productID, restaurant.ID)
	if err != nil {
		return err
	}

	return s.db.Delete(product).Error
}

// ListProducts returns the manager-facing catalog, including sold-out
// products.
func (s *CatalogService) ListProducts(restaurantID uint, page utils.Pagination) ([]models.Product, error) {
	var products []models.Product
	err := s.db.Scopes(page.Scope()).
		Preload("Category").
		Where("restaurant_id = ?", restaurantID).
		Order("name asc").
		Find(&products).Error
	return products, err
}

// ListAvailableProducts is the customer-facing listing: QUANTITY products
// with zero stock are hidden, as are AVAILABILITY products turned off.
func (s *CatalogService) ListAvailableProducts(restaurantID uint, page utils.Pagination) ([]models.Product, error) {
	var products []models.Product
	err := s.db.Scopes(page.Scope()).
		Preload("Category").
		Where("restaurant_id = ?", restaurantID).
		Where(
			s.db.Where("availability_type = ? AND available_amount > 0", models.AvailabilityTypeQuantity).
				Or("availability_type = ? AND is_available = ?", models.AvailabilityTypeAvailability, true),
		).
		Order("name asc").
		Find(&products).Error
	return products, err
}

func (s *CatalogService) categoryOwnedBy(categoryID, restaurantID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("category not found")
		}
		return nil, err
	}
	if category.RestaurantID != restaurantID {
		return nil, unauthorized("this category belongs to another restaurant")
	}
	return &category, nil
}

func (s *CatalogService) productOwnedBy(productID, restaurantID uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("product not found")
		}
		return nil, err
	}
	if product.RestaurantID != restaurantID {
		return nil, unauthorized("this product belongs to another restaurant")
	}
	return &product, nil
}
