package models

import "time"

type Provider struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

type ProviderManager struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProviderID uint      `gorm:"not null;index" json:"provider_id"`
	Provider   Provider  `gorm:"foreignKey:ProviderID" json:"-"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Username   string    `gorm:"type:varchar(255);unique;not null" json:"username"`
	Password   string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
