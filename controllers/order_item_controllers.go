package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-tab/events"
	"github.com/yeremiapane/restaurant-tab/models"
	"github.com/yeremiapane/restaurant-tab/services"
	"github.com/yeremiapane/restaurant-tab/utils"
)

type OrderItemController struct {
	DB       *gorm.DB
	orders   *services.OrderService
	notifier services.Notifier
}

func NewOrderItemController(db *gorm.DB, notifier services.Notifier) *OrderItemController {
	return &OrderItemController{
		DB:       db,
		orders:   services.NewOrderService(db),
		notifier: notifier,
	}
}

// ServeItem -> waiter or manager marks one order line as delivered.
func (oic *OrderItemController) ServeItem(c *gin.Context) {
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}
	productID, ok := paramUint(c, "product_id")
	if !ok {
		return
	}

	userID, role := currentUser(c)
	session, err := oic.orders.ServeItem(orderID, productID, services.Actor{ID: userID, Role: role})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	view := services.BuildSessionView(session)
	events.Publish(events.TopicItemServed, view.ID, view)
	oic.notifyParticipants(view.ID, "Order update",
		fmt.Sprintf("An item of table %d was served", view.TableNumber))

	utils.InfoLogger.Printf("Item (order=%d product=%d) served", orderID, productID)
	utils.RespondJSON(c, http.StatusOK, "Item served", view)
}

// CancelItem -> waiter or manager cancels one order line. Canceled lines are
// excluded from every bill; stock already taken stays taken.
func (oic *OrderItemController) CancelItem(c *gin.Context) {
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}
	productID, ok := paramUint(c, "product_id")
	if !ok {
		return
	}

	userID, role := currentUser(c)
	session, err := oic.orders.CancelItem(orderID, productID, services.Actor{ID: userID, Role: role})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	view := services.BuildSessionView(session)
	events.Publish(events.TopicItemCanceled, view.ID, view)
	oic.notifyParticipants(view.ID, "Order update",
		fmt.Sprintf("An item of table %d was canceled", view.TableNumber))

	utils.InfoLogger.Printf("Item (order=%d product=%d) canceled", orderID, productID)
	utils.RespondJSON(c, http.StatusOK, "Item canceled", view)
}

// notifyParticipants pushes to every participant whose device registered.
func (oic *OrderItemController) notifyParticipants(sessionID uint, title, message string) {
	var playerIDs []string
	err := oic.DB.Model(&models.Customer{}).
		Joins("JOIN table_participants ON table_participants.customer_id = customers.id").
		Where("table_participants.table_session_id = ? AND customers.one_signal_id <> ''", sessionID).
		Pluck("customers.one_signal_id", &playerIDs).Error
	if err != nil {
		utils.ErrorLogger.Printf("load participant devices for session %d: %v", sessionID, err)
		return
	}

	for _, playerID := range playerIDs {
		oic.notifier.Notify(playerID, title, message)
	}
}
