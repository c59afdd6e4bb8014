package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-tab/services"
	"github.com/yeremiapane/restaurant-tab/utils"
)

type RestaurantController struct {
	DB       *gorm.DB
	provider *services.ProviderService
}

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{
		DB:       db,
		provider: services.NewProviderService(db),
	}
}

// CreateRestaurant -> a provider manager registers a restaurant with its
// table limit and subscription end.
func (rc *RestaurantController) CreateRestaurant(c *gin.Context) {
	var req struct {
		Name      string    `json:"name" binding:"required"`
		MaxTables int       `json:"max_tables" binding:"required"`
		ExpiresAt time.Time `json:"expires_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	providerManagerID, _ := currentUser(c)
	restaurant, err := rc.provider.CreateRestaurant(providerManagerID, req.Name, req.MaxTables, req.ExpiresAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Restaurant %q created (expires %s)", restaurant.Name, restaurant.ExpiresAt)
	utils.RespondJSON(c, http.StatusCreated, "Restaurant created", restaurant)
}

// ListRestaurants -> the restaurants of the caller's provider.
func (rc *RestaurantController) ListRestaurants(c *gin.Context) {
	providerManagerID, _ := currentUser(c)

	restaurants, err := rc.provider.ListRestaurants(providerManagerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of restaurants", restaurants)
}

// ChangeExpiration -> moves a restaurant's subscription end; extending past
// now reactivates an expired restaurant.
func (rc *RestaurantController) ChangeExpiration(c *gin.Context) {
	restaurantID, ok := paramUint(c, "restaurant_id")
	if !ok {
		return
	}

	var req struct {
		ExpiresAt time.Time `json:"expires_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	providerManagerID, _ := currentUser(c)
	restaurant, err := rc.provider.ChangeExpiration(providerManagerID, restaurantID, req.ExpiresAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Expiration updated", restaurant)
}
