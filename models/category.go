package models

import "time"

type Category struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;uniqueIndex:idx_categories_restaurant_name" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	Name         string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_restaurant_name" json:"name"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}
