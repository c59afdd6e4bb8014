package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-tab/events"
	"github.com/yeremiapane/restaurant-tab/services"
	"github.com/yeremiapane/restaurant-tab/utils"
)

type TableSessionController struct {
	DB       *gorm.DB
	sessions *services.TableSessionService
	orders   *services.OrderService
	notifier services.Notifier
}

func NewTableSessionController(db *gorm.DB, notifier services.Notifier) *TableSessionController {
	return &TableSessionController{
		DB:       db,
		sessions: services.NewTableSessionService(db),
		orders:   services.NewOrderService(db),
		notifier: notifier,
	}
}

// CreateSession -> a customer opens a session on a free table and becomes its
// leader.
func (tsc *TableSessionController) CreateSession(c *gin.Context) {
	var req struct {
		TableID uint `json:"table_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customerID, _ := currentUser(c)
	session, err := tsc.sessions.Create(req.TableID, customerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	view := services.BuildSessionView(session)
	events.Publish(events.TopicNewSession, view.ID, view)
	tsc.notifier.Notify(view.WaiterNotificationID, "New session",
		fmt.Sprintf("Table %d opened a new session", view.TableNumber))

	utils.InfoLogger.Printf("Session %d opened on table %d", view.ID, view.TableNumber)
	utils.RespondJSON(c, http.StatusCreated, "Session created", view)
}

// GetSession -> full session view including bill and per-participant bills.
func (tsc *TableSessionController) GetSession(c *gin.Context) {
	sessionID, ok := paramUint(c, "session_id")
	if !ok {
		return
	}

	session, err := tsc.sessions.GetByID(sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session detail", services.BuildSessionView(session))
}

// GetTableSession -> the table's open session, or null when the table is
// free. Lets a customer scanning the table QR decide between create and join.
func (tsc *TableSessionController) GetTableSession(c *gin.Context) {
	tableID, ok := paramUint(c, "table_id")
	if !ok {
		return
	}

	session, err := tsc.sessions.GetActiveByTable(tableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if session == nil {
		utils.RespondJSON(c, http.StatusOK, "Table is free", nil)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Open session on table", services.BuildSessionView(session))
}

// GetCurrentSession -> the non-finished session the calling customer sits in,
// or null.
func (tsc *TableSessionController) GetCurrentSession(c *gin.Context) {
	customerID, _ := currentUser(c)

	session, err := tsc.sessions.GetActiveByCustomer(customerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if session == nil {
		utils.RespondJSON(c, http.StatusOK, "No active session", nil)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Current session", services.BuildSessionView(session))
}

// JoinSession -> a customer joins with the table's session password.
func (tsc *TableSessionController) JoinSession(c *gin.Context) {
	sessionID, ok := paramUint(c, "session_id")
	if !ok {
		return
	}

	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customerID, _ := currentUser(c)
	session, err := tsc.sessions.Join(sessionID, customerID, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	view := services.BuildSessionView(session)
	events.Publish(events.TopicNewParticipant, view.ID, view)

	utils.RespondJSON(c, http.StatusOK, "Joined session", view)
}

// PlaceOrder -> a participant orders products; stock is taken atomically, the
// whole order fails if any line cannot be fulfilled.
func (tsc *TableSessionController) PlaceOrder(c *gin.Context) {
	sessionID, ok := paramUint(c, "session_id")
	if !ok {
		return
	}

	var req struct {
		Products []services.OrderLine `json:"products" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customerID, _ := currentUser(c)
	session, err := tsc.orders.PlaceOrder(sessionID, customerID, req.Products)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	view := services.BuildSessionView(session)
	events.Publish(events.TopicNewOrder, view.ID, view)
	tsc.notifier.Notify(view.WaiterNotificationID, "New order",
		fmt.Sprintf("Table %d placed a new order", view.TableNumber))

	utils.InfoLogger.Printf("New order on session %d (table %d)", view.ID, view.TableNumber)
	utils.RespondJSON(c, http.StatusCreated, "Order placed", view)
}

// RequestPayment -> the leader, a waiter or a manager flags the session as
// waiting for the bill.
func (tsc *TableSessionController) RequestPayment(c *gin.Context) {
	sessionID, ok := paramUint(c, "session_id")
	if !ok {
		return
	}

	userID, role := currentUser(c)
	session, err := tsc.sessions.RequestPayment(sessionID, userID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	view := services.BuildSessionView(session)
	events.Publish(events.TopicPaymentRequested, view.ID, view)
	tsc.notifier.Notify(view.WaiterNotificationID, "Payment requested",
		fmt.Sprintf("Table %d asked for the bill (%s)",
			view.TableNumber, utils.FormatPriceCents(view.TotalPriceCents)))

	utils.InfoLogger.Printf("Payment requested for session %d", view.ID)
	utils.RespondJSON(c, http.StatusOK, "Payment requested", view)
}

// FinishSession -> a manager closes the session after the table settled up.
func (tsc *TableSessionController) FinishSession(c *gin.Context) {
	sessionID, ok := paramUint(c, "session_id")
	if !ok {
		return
	}

	managerID, _ := currentUser(c)
	session, err := tsc.sessions.Finish(sessionID, managerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	view := services.BuildSessionView(session)
	events.Publish(events.TopicSessionFinished, view.ID, view)

	utils.InfoLogger.Printf("Session %d finished", view.ID)
	utils.RespondJSON(c, http.StatusOK, "Session finished", view)
}

// CallWaiter -> pings the table's waiter. Rate limited per customer so one
// impatient table cannot flood a waiter's phone.
func (tsc *TableSessionController) CallWaiter(c *gin.Context) {
	sessionID, ok := paramUint(c, "session_id")
	if !ok {
		return
	}

	customerID, _ := currentUser(c)
	if err := tsc.sessions.VerifyParticipant(sessionID, customerID); err != nil {
		respondServiceError(c, err)
		return
	}

	session, err := tsc.sessions.GetByID(sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	view := services.BuildSessionView(session)
	if view.Waiter == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("this table has no assigned waiter"))
		return
	}

	events.Publish(events.TopicWaiterCalled, view.ID, view)
	tsc.notifier.Notify(view.WaiterNotificationID, "Waiter called",
		fmt.Sprintf("Table %d is calling you", view.TableNumber))

	utils.RespondJSON(c, http.StatusOK, "Waiter called", nil)
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid "+name))
		return 0, false
	}
	return uint(value), true
}
