package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-tab/models"
)

// OrderService places orders against the catalog and walks individual items
// through REQUESTED -> SERVED | CANCELED.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// OrderLine is one requested product line of PlaceOrder.
type OrderLine struct {
	ProductID uint `json:"product_id" binding:"required"`
	Amount    int  `json:"amount" binding:"required"`
}

// Actor identifies who serves or cancels an item: a waiter or a restaurant
// manager.
type Actor struct {
	ID   uint
	Role string
}

// PlaceOrder creates one order with one item per line, all inside a single
// transaction: if any line fails (unknown product, no stock, product turned
// off) nothing is persisted.
//
// QUANTITY stock is taken with one conditional UPDATE
// (available_amount = available_amount - n WHERE available_amount >= n)
// and the affected-row count decides success, so two concurrent orders can
// never jointly oversell a product.
func (s *OrderService) PlaceOrder(sessionID, customerID uint, lines []OrderLine) (*models.TableSession, error) {
	if len(lines) == 0 {
		return nil, validation("an order needs at least one product")
	}
	for _, line := range lines {
		if line.Amount < 1 {
			return nil, validation("product amount must be at least 1")
		}
	}

	var session models.TableSession
	if err := s.db.First(&session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("table session not found")
		}
		return nil, err
	}
	if session.FinishedAt != nil {
		return nil, conflict("this session is already finished")
	}

	var participant models.TableParticipant
	err := s.db.
		Where("table_session_id = ? AND customer_id = ?", sessionID, customerID).
		First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unauthorized("you are not participating in this session")
		}
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		order := models.Order{
			TableSessionID:     sessionID,
			TableParticipantID: participant.ID,
			RequestedAt:        time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range lines {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFound("one of the requested products was not found")
				}
				return err
			}

			switch product.AvailabilityType {
			case models.AvailabilityTypeQuantity:
				res := tx.Model(&models.Product{}).
					Where("id = ? AND available_amount >= ?", product.ID, line.Amount).
					UpdateColumn("available_amount", gorm.Expr("available_amount - ?", line.Amount))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return insufficientStock(fmt.Sprintf("%s is out of stock", product.Name))
				}

			case models.AvailabilityTypeAvailability:
				if !product.IsAvailable {
					return unavailable(fmt.Sprintf("%s is not available", product.Name))
				}

			default:
				return validation(fmt.Sprintf("%s has an unknown availability type", product.Name))
			}

			item := models.OrderItem{
				OrderID:      order.ID,
				ProductID:    product.ID,
				Name:         product.Name,
				Description:  product.Description,
				ImageUrl:     product.ImageUrl,
				PriceInCents: product.PriceInCents,
				Amount:       line.Amount,
				Status:       models.ItemStatusRequested,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return NewTableSessionService(s.db).loadSession(sessionID)
}

// ServeItem marks the (order, product) item as served.
func (s *OrderService) ServeItem(orderID, productID uint, actor Actor) (*models.TableSession, error) {
	return s.transitionItem(orderID, productID, actor, models.ItemStatusServed)
}

// CancelItem marks the (order, product) item as canceled. Canceling does not
// restock a QUANTITY product; the kitchen may already have consumed it.
func (s *OrderService) CancelItem(orderID, productID uint, actor Actor) (*models.TableSession, error) {
	return s.transitionItem(orderID, productID, actor, models.ItemStatusCanceled)
}

func (s *OrderService) transitionItem(orderID, productID uint, actor Actor, target string) (*models.TableSession, error) {
	var item models.OrderItem
	err := s.db.
		Preload("Order").
		Preload("Order.TableSession").
		Preload("Order.TableSession.Table").
		Where("order_id = ? AND product_id = ?", orderID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("order item not found")
		}
		return nil, err
	}

	restaurantID := item.Order.TableSession.Table.RestaurantID
	switch actor.Role {
	case RoleWaiter:
		if err := s.verifyWaiter(actor.ID, restaurantID); err != nil {
			return nil, err
		}
	case RoleRestaurant:
		if err := s.verifyManager(actor.ID, restaurantID); err != nil {
			return nil, err
		}
	default:
		return nil, unauthorized("this role cannot update order items")
	}

	sessionID := item.Order.TableSessionID

	// Repeating the transition already applied is a no-op; flipping between
	// the two terminal states is not allowed.
	if item.Status == target {
		return NewTableSessionService(s.db).loadSession(sessionID)
	}
	if item.Status != models.ItemStatusRequested {
		return nil, conflict(fmt.Sprintf("item is already %s", item.Status))
	}

	now := time.Now()
	updates := map[string]interface{}{"status": target}
	switch target {
	case models.ItemStatusServed:
		updates["served_at"] = now
	case models.ItemStatusCanceled:
		updates["canceled_at"] = now
	}

	err = s.db.Model(&models.OrderItem{}).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		Updates(updates).Error
	if err != nil {
		return nil, err
	}

	return NewTableSessionService(s.db).loadSession(sessionID)
}

func (s *OrderService) verifyWaiter(waiterID, restaurantID uint) error {
	var waiter models.Waiter
	if err := s.db.First(&waiter, waiterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("waiter not found")
		}
		return err
	}
	if waiter.RestaurantID != restaurantID {
		return unauthorized("this order belongs to another restaurant")
	}
	return nil
}

func (s *OrderService) verifyManager(managerID, restaurantID uint) error {
	var manager models.RestaurantManager
	if err := s.db.First(&manager, managerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("restaurant manager not found")
		}
		return err
	}
	if manager.RestaurantID != restaurantID {
		return unauthorized("this order belongs to another restaurant")
	}
	return nil
}
