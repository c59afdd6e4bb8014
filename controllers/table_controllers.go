package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-tab/services"
	"github.com/yeremiapane/restaurant-tab/utils"
)

type TableController struct {
	DB     *gorm.DB
	tables *services.TableService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{
		DB:     db,
		tables: services.NewTableService(db),
	}
}

// CreateTable -> manager adds the next table, numbered sequentially up to the
// restaurant's table limit.
func (tc *TableController) CreateTable(c *gin.Context) {
	managerID, _ := currentUser(c)

	table, err := tc.tables.Create(managerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Table %d created for restaurant %d", table.Number, table.RestaurantID)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// AssignWaiter -> manager assigns (or with a null waiter_id, unassigns) a
// waiter to a table.
func (tc *TableController) AssignWaiter(c *gin.Context) {
	tableID, ok := paramUint(c, "table_id")
	if !ok {
		return
	}

	var req struct {
		WaiterID *uint `json:"waiter_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	managerID, _ := currentUser(c)
	table, err := tc.tables.AssignWaiter(managerID, tableID, req.WaiterID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Waiter assignment updated", table)
}

// ListTables -> every table of the manager's restaurant, with assigned
// waiters preloaded.
func (tc *TableController) ListTables(c *gin.Context) {
	managerID, _ := currentUser(c)

	tables, err := tc.tables.ListByManager(managerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// ListMyTables -> the tables assigned to the calling waiter.
func (tc *TableController) ListMyTables(c *gin.Context) {
	waiterID, _ := currentUser(c)

	tables, err := tc.tables.ListByWaiter(waiterID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Tables assigned to you", tables)
}
