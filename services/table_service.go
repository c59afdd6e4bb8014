package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-tab/models"
)

// TableService manages a restaurant's physical tables: creation with
// sequential numbering and waiter assignment.
type TableService struct {
	db *gorm.DB
}

func NewTableService(db *gorm.DB) *TableService {
	return &TableService{db: db}
}

// Create adds the next table for the manager's restaurant. Numbers are
// assigned monotonically per restaurant and never reused; the restaurant's
// maxTables caps how many can exist.
func (s *TableService) Create(managerID uint) (*models.Table, error) {
	restaurant, err := s.activeRestaurantByManager(managerID)
	if err != nil {
		return nil, err
	}

	var table models.Table
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var highest int64
		row := tx.Model(&models.Table{}).
			Where("restaurant_id = ?", restaurant.ID).
			Select("COALESCE(MAX(number), 0)").
			Row()
		if err := row.Scan(&highest); err != nil {
			return err
		}

		next := int(highest) + 1
		if next > restaurant.MaxTables {
			return conflict("the restaurant reached its table limit")
		}

		table = models.Table{
			Number:       next,
			RestaurantID: restaurant.ID,
		}
		return tx.Create(&table).Error
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// AssignWaiter signs a waiter of the same restaurant to the table; a nil
// waiterID unassigns.
func (s *TableService) AssignWaiter(managerID, tableID uint, waiterID *uint) (*models.Table, error) {
	restaurant, err := s.activeRestaurantByManager(managerID)
	if err != nil {
		return nil, err
	}

	var table models.Table
	if err := s.db.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("table not found")
		}
		return nil, err
	}
	if table.RestaurantID != restaurant.ID {
		return nil, unauthorized("this table belongs to another restaurant")
	}

	if waiterID != nil {
		var waiter models.Waiter
		if err := s.db.First(&waiter, *waiterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFound("waiter not found")
			}
			return nil, err
		}
		if waiter.RestaurantID != restaurant.ID {
			return nil, validation("only waiters of the restaurant can be assigned to its tables")
		}
	}

	if err := s.db.Model(&table).Update("waiter_id", waiterID).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Waiter").First(&table, tableID).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// ListByManager returns every table of the manager's restaurant, ordered by
// number.
func (s *TableService) ListByManager(managerID uint) ([]models.Table, error) {
	var manager models.RestaurantManager
	if err := s.db.First(&manager, managerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("restaurant manager not found")
		}
		return nil, err
	}

	var tables []models.Table
	err := s.db.Preload("Waiter").
		Where("restaurant_id = ?", manager.RestaurantID).
		Order("number asc").
		Find(&tables).Error
	return tables, err
}

// ListByWaiter returns the tables assigned to the waiter.
func (s *TableService) ListByWaiter(waiterID uint) ([]models.Table, error) {
	var waiter models.Waiter
	if err := s.db.First(&waiter, waiterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("waiter not found")
		}
		return nil, err
	}

	var tables []models.Table
	err := s.db.
		Where("waiter_id = ?", waiterID).
		Order("number asc").
		Find(&tables).Error
	return tables, err
}

// activeRestaurantByManager resolves the manager's restaurant and enforces
// the subscription check shared by every catalog/table mutation.
func (s *TableService) activeRestaurantByManager(managerID uint) (*models.Restaurant, error) {
	return activeRestaurantByManager(s.db, managerID)
}

func activeRestaurantByManager(db *gorm.DB, managerID uint) (*models.Restaurant, error) {
	var manager models.RestaurantManager
	if err := db.Preload("Restaurant").First(&manager, managerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("restaurant manager not found")
		}
		return nil, err
	}

	if !manager.Restaurant.IsActive() {
		return nil, inactiveRestaurant("the restaurant subscription has expired")
	}
	return &manager.Restaurant, nil
}
