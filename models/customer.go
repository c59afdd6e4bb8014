package models

import "time"

type Customer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Username    string    `gorm:"type:varchar(255);unique;not null" json:"username"`
	Password    string    `gorm:"type:varchar(255);not null" json:"-"`
	OneSignalID string    `gorm:"type:varchar(255)" json:"onesignal_id"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
