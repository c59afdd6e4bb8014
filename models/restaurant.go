package models

import "time"

type Restaurant struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProviderID uint      `gorm:"not null;index" json:"provider_id"`
	Provider   Provider  `gorm:"foreignKey:ProviderID" json:"-"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	BannerUrl  *string   `gorm:"type:varchar(255)" json:"banner_url,omitempty"`
	MaxTables  int       `gorm:"not null" json:"max_tables"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

// IsActive reports whether the restaurant subscription has not expired yet.
// Expired restaurants reject every session-mutating operation.
func (r *Restaurant) IsActive() bool {
	return time.Now().Before(r.ExpiresAt)
}
