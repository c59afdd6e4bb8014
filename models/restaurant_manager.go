package models

import "time"

type RestaurantManager struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Username     string     `gorm:"type:varchar(255);unique;not null" json:"username"`
	Password     string     `gorm:"type:varchar(255);not null" json:"-"`
	IsOwner      bool       `gorm:"not null;default:false" json:"is_owner"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}
