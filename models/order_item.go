package models

import "time"

const (
	ItemStatusRequested = "REQUESTED"
	ItemStatusServed    = "SERVED"
	ItemStatusCanceled  = "CANCELED"
)

// OrderItem is one product line within an order, identified by the composite
// (order, product) key. Product fields are denormalized at order time so that
// later catalog edits never change historical bills.
type OrderItem struct {
	OrderID   uint    `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	Order     Order   `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProductID uint    `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`

	Name         string  `gorm:"type:varchar(255);not null" json:"name"`
	Description  string  `gorm:"type:text" json:"description"`
	ImageUrl     *string `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	PriceInCents int     `gorm:"not null" json:"price_in_cents"`
	Amount       int     `gorm:"not null" json:"amount"`

	Status     string     `gorm:"type:varchar(20);not null;default:'REQUESTED'" json:"status"`
	ServedAt   *time.Time `json:"served_at,omitempty"`
	CanceledAt *time.Time `json:"canceled_at,omitempty"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}
