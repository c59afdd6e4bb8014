package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-tab/models"
	"github.com/yeremiapane/restaurant-tab/utils"
)

// TableSessionService drives the session lifecycle:
// OPENED -> REQUESTED_PAYMENT -> FINISHED. Every mutation runs inside one
// transaction and returns the session reloaded with everything the view
// builder needs.
type TableSessionService struct {
	db *gorm.DB
}

func NewTableSessionService(db *gorm.DB) *TableSessionService {
	return &TableSessionService{db: db}
}

// sessionPreloads loads the full object graph BuildSessionView expects.
func sessionPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Table").
		Preload("Table.Waiter").
		Preload("Participants").
		Preload("Participants.Customer").
		Preload("Orders").
		Preload("Orders.Items")
}

func (s *TableSessionService) loadSession(sessionID uint) (*models.TableSession, error) {
	var session models.TableSession
	if err := sessionPreloads(s.db).First(&session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("table session not found")
		}
		return nil, err
	}
	return &session, nil
}

// Create opens a session on a table: generates the join password, snapshots
// the restaurant's category names and registers the opening customer as
// leader. A table holds at most one open session at a time.
func (s *TableSessionService) Create(tableID, customerID uint) (*models.TableSession, error) {
	var table models.Table
	if err := s.db.Preload("Restaurant").First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("table not found")
		}
		return nil, err
	}

	if !table.Restaurant.IsActive() {
		return nil, inactiveRestaurant("the restaurant subscription has expired")
	}

	var sessionID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var open int64
		if err := tx.Model(&models.TableSession{}).
			Where("table_id = ? AND finished_at IS NULL", tableID).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return conflict("this table already has an open session")
		}

		var categories []string
		if err := tx.Model(&models.Category{}).
			Where("restaurant_id = ?", table.RestaurantID).
			Order("name asc").
			Pluck("name", &categories).Error; err != nil {
			return err
		}

		session := models.TableSession{
			TableID:    tableID,
			Password:   utils.GenerateSessionPassword(),
			Status:     models.SessionStatusOpened,
			Categories: categories,
			OpenedAt:   time.Now(),
		}
		if err := tx.Create(&session).Error; err != nil {
			return err
		}

		leader := models.TableParticipant{
			TableSessionID: session.ID,
			CustomerID:     customerID,
			IsLeader:       true,
			JoinedAt:       time.Now(),
		}
		if err := tx.Create(&leader).Error; err != nil {
			return err
		}

		sessionID = session.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadSession(sessionID)
}

// Join adds a customer to an open session, gated by the session password.
func (s *TableSessionService) Join(sessionID, customerID uint, password string) (*models.TableSession, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var session models.TableSession
		if err := tx.First(&session, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("table session not found")
			}
			return err
		}

		if session.FinishedAt != nil {
			return conflict("this session is already finished")
		}

		if password != session.Password {
			return invalidCredentials("wrong session password")
		}

		var existing int64
		if err := tx.Model(&models.TableParticipant{}).
			Where("table_session_id = ? AND customer_id = ?", sessionID, customerID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return conflict("you are already participating in this session")
		}

		participant := models.TableParticipant{
			TableSessionID: sessionID,
			CustomerID:     customerID,
			IsLeader:       false,
			JoinedAt:       time.Now(),
		}
		return tx.Create(&participant).Error
	})
	if err != nil {
		return nil, err
	}

	return s.loadSession(sessionID)
}

// RequestPayment moves the session to REQUESTED_PAYMENT. Who may request
// depends on the role: the session leader, a waiter of the table's restaurant
// or a manager of it. Re-requesting while already in REQUESTED_PAYMENT is
// allowed and simply refreshes the timestamp.
func (s *TableSessionService) RequestPayment(sessionID, requesterID uint, requesterRole string) (*models.TableSession, error) {
	session, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}

	if session.FinishedAt != nil {
		return nil, conflict("this session is already finished")
	}

	switch requesterRole {
	case RoleCustomer:
		if err := s.verifyLeader(sessionID, requesterID); err != nil {
			return nil, err
		}
	case RoleWaiter:
		if err := s.verifyWaiterRestaurant(requesterID, session.Table.RestaurantID); err != nil {
			return nil, err
		}
	case RoleRestaurant:
		if err := s.verifyManagerRestaurant(requesterID, session.Table.RestaurantID); err != nil {
			return nil, err
		}
	default:
		return nil, unauthorized("this role cannot request payment")
	}

	now := time.Now()
	err = s.db.Model(&models.TableSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"status":               models.SessionStatusRequestedPayment,
			"requested_payment_at": now,
		}).Error
	if err != nil {
		return nil, err
	}

	return s.loadSession(sessionID)
}

// Finish closes the session for good. Only a manager of the table's
// restaurant may finish it; FINISHED is terminal.
func (s *TableSessionService) Finish(sessionID, managerID uint) (*models.TableSession, error) {
	session, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == models.SessionStatusFinished {
		return nil, conflict("this session is already finished")
	}

	if err := s.verifyManagerRestaurant(managerID, session.Table.RestaurantID); err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Model(&models.TableSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"status":      models.SessionStatusFinished,
			"finished_at": now,
		}).Error
	if err != nil {
		return nil, err
	}

	return s.loadSession(sessionID)
}

// GetByID returns the fully loaded session.
func (s *TableSessionService) GetByID(sessionID uint) (*models.TableSession, error) {
	return s.loadSession(sessionID)
}

// GetActiveByTable returns the table's open session, or nil when the table
// is free.
func (s *TableSessionService) GetActiveByTable(tableID uint) (*models.TableSession, error) {
	var table models.Table
	if err := s.db.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("table not found")
		}
		return nil, err
	}

	var session models.TableSession
	err := sessionPreloads(s.db).
		Where("table_id = ? AND finished_at IS NULL", tableID).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// GetActiveByCustomer returns the non-finished session the customer is
// participating in, or nil.
func (s *TableSessionService) GetActiveByCustomer(customerID uint) (*models.TableSession, error) {
	var customer models.Customer
	if err := s.db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("customer not found")
		}
		return nil, err
	}

	var participant models.TableParticipant
	err := s.db.
		Joins("JOIN table_sessions ON table_sessions.id = table_participants.table_session_id").
		Where("table_participants.customer_id = ? AND table_sessions.status <> ?",
			customerID, models.SessionStatusFinished).
		First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return s.loadSession(participant.TableSessionID)
}

// VerifyParticipant checks that the customer belongs to the session. Used by
// the call-waiter endpoint, which mutates nothing but is participant-gated.
func (s *TableSessionService) VerifyParticipant(sessionID, customerID uint) error {
	var count int64
	err := s.db.Model(&models.TableParticipant{}).
		Where("table_session_id = ? AND customer_id = ?", sessionID, customerID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return unauthorized("you are not participating in this session")
	}
	return nil
}

func (s *TableSessionService) verifyLeader(sessionID, customerID uint) error {
	var participant models.TableParticipant
	err := s.db.
		Where("table_session_id = ? AND customer_id = ?", sessionID, customerID).
		First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return unauthorized("you are not participating in this session")
		}
		return err
	}
	if !participant.IsLeader {
		return unauthorized("only the session leader can request payment")
	}
	return nil
}

func (s *TableSessionService) verifyWaiterRestaurant(waiterID, restaurantID uint) error {
	var waiter models.Waiter
	if err := s.db.First(&waiter, waiterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("waiter not found")
		}
		return err
	}
	if waiter.RestaurantID != restaurantID {
		return unauthorized("this table belongs to another restaurant")
	}
	return nil
}

func (s *TableSessionService) verifyManagerRestaurant(managerID, restaurantID uint) error {
	var manager models.RestaurantManager
	if err := s.db.First(&manager, managerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("restaurant manager not found")
		}
		return err
	}
	if manager.RestaurantID != restaurantID {
		return unauthorized("this table belongs to another restaurant")
	}
	return nil
}
