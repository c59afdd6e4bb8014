package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-tab/services"
	"github.com/yeremiapane/restaurant-tab/utils"
)

type CategoryController struct {
	DB      *gorm.DB
	catalog *services.CatalogService
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{
		DB:      db,
		catalog: services.NewCatalogService(db),
	}
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	managerID, _ := currentUser(c)
	category, err := cc.catalog.CreateCategory(managerID, req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Category %q created for restaurant %d", category.Name, category.RestaurantID)
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	categoryID, ok := paramUint(c, "category_id")
	if !ok {
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	managerID, _ := currentUser(c)
	category, err := cc.catalog.UpdateCategory(managerID, categoryID, req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	categoryID, ok := paramUint(c, "category_id")
	if !ok {
		return
	}

	managerID, _ := currentUser(c)
	if err := cc.catalog.DeleteCategory(managerID, categoryID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"id": categoryID})
}

// ListCategories -> paginated categories of a restaurant, any authenticated
// role may read.
func (cc *CategoryController) ListCategories(c *gin.Context) {
	restaurantID, ok := paramUint(c, "restaurant_id")
	if !ok {
		return
	}

	categories, err := cc.catalog.ListCategories(restaurantID, utils.PaginationFromQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}
