package models

import "time"

const (
	SessionStatusOpened           = "OPENED"
	SessionStatusRequestedPayment = "REQUESTED_PAYMENT"
	SessionStatusFinished         = "FINISHED"
)

// TableSession is one dining visit at a table, from open to finish. Sessions
// are never deleted; a FINISHED session is the permanent record of the visit.
type TableSession struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	TableID uint  `gorm:"not null;index" json:"table_id"`
	Table   Table `gorm:"foreignKey:TableID" json:"table"`
	// Password is the 6-char lowercase join code shared between the people at
	// the table. Read-only after creation.
	Password string `gorm:"type:varchar(10);not null" json:"password"`
	Status   string `gorm:"type:varchar(20);not null;default:'OPENED'" json:"status"`
	// Categories snapshots the restaurant's category names at session
	// creation time.
	Categories         []string           `gorm:"serializer:json" json:"categories"`
	OpenedAt           time.Time          `gorm:"not null" json:"opened_at"`
	RequestedPaymentAt *time.Time         `json:"requested_payment_at,omitempty"`
	FinishedAt         *time.Time         `json:"finished_at,omitempty"`
	Participants       []TableParticipant `gorm:"foreignKey:TableSessionID" json:"participants"`
	Orders             []Order            `gorm:"foreignKey:TableSessionID" json:"orders"`
}

type TableParticipant struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	TableSessionID uint         `gorm:"not null;uniqueIndex:idx_participants_customer_session" json:"table_session_id"`
	TableSession   TableSession `gorm:"foreignKey:TableSessionID" json:"-"`
	CustomerID     uint         `gorm:"not null;uniqueIndex:idx_participants_customer_session" json:"customer_id"`
	Customer       Customer     `gorm:"foreignKey:CustomerID" json:"customer"`
	// IsLeader is true only for the customer who opened the session. The
	// leader is the only participant allowed to request payment.
	IsLeader bool      `gorm:"not null;default:false" json:"is_leader"`
	JoinedAt time.Time `gorm:"not null" json:"joined_at"`
}
