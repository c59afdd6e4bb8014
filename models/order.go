package models

import "time"

// Order is one "place order" action by a participant. It has no stored
// status: the order-level status is derived from its items on every read.
type Order struct {
	ID                 uint             `gorm:"primaryKey" json:"id"`
	TableSessionID     uint             `gorm:"not null;index" json:"table_session_id"`
	TableSession       TableSession     `gorm:"foreignKey:TableSessionID" json:"-"`
	TableParticipantID uint             `gorm:"not null;index" json:"table_participant_id"`
	TableParticipant   TableParticipant `gorm:"foreignKey:TableParticipantID" json:"-"`
	RequestedAt        time.Time        `gorm:"not null" json:"requested_at"`
	Items              []OrderItem      `gorm:"foreignKey:OrderID" json:"items"`
}
