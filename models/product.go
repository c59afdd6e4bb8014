package models

import "time"

// Availability models for a product. QUANTITY products carry a stock counter
// that is decremented per order; AVAILABILITY products are unlimited while
// the flag is on.
const (
	AvailabilityTypeQuantity     = "QUANTITY"
	AvailabilityTypeAvailability = "AVAILABILITY"
)

type Product struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	RestaurantID     uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant       Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	CategoryID       uint       `gorm:"not null;index" json:"category_id"`
	Category         Category   `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	Name             string     `gorm:"type:varchar(255);not null" json:"name"`
	Description      string     `gorm:"type:text" json:"description"`
	ImageUrl         *string    `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	PriceInCents     int        `gorm:"not null" json:"price_in_cents"`
	AvailabilityType string     `gorm:"type:varchar(20);not null;default:'AVAILABILITY'" json:"availability_type"`
	// AvailableAmount is only meaningful for QUANTITY products. It never goes
	// negative; all writers decrement it with a conditional UPDATE.
	AvailableAmount           int       `gorm:"not null;default:0" json:"available_amount"`
	IsAvailable               bool      `gorm:"not null;default:true" json:"is_available"`
	EstimatedMinutesToPrepare *int      `json:"estimated_minutes_to_prepare,omitempty"`
	CreatedAt                 time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt                 time.Time `gorm:"not null" json:"updated_at"`
}
