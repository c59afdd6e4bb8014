package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-tab/services"
	"github.com/yeremiapane/restaurant-tab/utils"
)

type ProductController struct {
	DB      *gorm.DB
	catalog *services.CatalogService
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{
		DB:      db,
		catalog: services.NewCatalogService(db),
	}
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var input services.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	managerID, _ := currentUser(c)
	product, err := pc.catalog.CreateProduct(managerID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Product %q created for restaurant %d", product.Name, product.RestaurantID)
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	productID, ok := paramUint(c, "product_id")
	if !ok {
		return
	}

	var input services.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	managerID, _ := currentUser(c)
	product, err := pc.catalog.UpdateProduct(managerID, productID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	productID, ok := paramUint(c, "product_id")
	if !ok {
		return
	}

	managerID, _ := currentUser(c)
	if err := pc.catalog.DeleteProduct(managerID, productID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"id": productID})
}

// ListProducts -> the manager-facing catalog, sold-out products included.
func (pc *ProductController) ListProducts(c *gin.Context) {
	restaurantID, ok := paramUint(c, "restaurant_id")
	if !ok {
		return
	}

	products, err := pc.catalog.ListProducts(restaurantID, utils.PaginationFromQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// ListAvailableProducts -> what customers can actually order right now:
// QUANTITY products with stock and AVAILABILITY products turned on.
func (pc *ProductController) ListAvailableProducts(c *gin.Context) {
	restaurantID, ok := paramUint(c, "restaurant_id")
	if !ok {
		return
	}

	products, err := pc.catalog.ListAvailableProducts(restaurantID, utils.PaginationFromQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Available products", products)
}
