package models

import "time"

type Waiter struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Username     string     `gorm:"type:varchar(255);unique;not null" json:"username"`
	Password     string     `gorm:"type:varchar(255);not null" json:"-"`
	// OneSignal player id used for push notifications, empty until the
	// waiter's device registers.
	OneSignalID string    `gorm:"type:varchar(255)" json:"onesignal_id"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
