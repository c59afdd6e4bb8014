package models

import "time"

type Table struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Number is sequential per restaurant, assigned monotonically at creation.
	Number       int        `gorm:"not null;uniqueIndex:idx_tables_restaurant_number" json:"number"`
	RestaurantID uint       `gorm:"not null;uniqueIndex:idx_tables_restaurant_number" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	WaiterID     *uint      `gorm:"index" json:"waiter_id,omitempty"`
	Waiter       *Waiter    `gorm:"foreignKey:WaiterID" json:"waiter,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}
