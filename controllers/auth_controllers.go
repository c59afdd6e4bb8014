package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-tab/models"
	"github.com/yeremiapane/restaurant-tab/services"
	"github.com/yeremiapane/restaurant-tab/utils"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

var errInvalidCredentials = errors.New("invalid credentials")

// RegisterCustomer -> self-service signup, customers are the only role that
// can register themselves.
func (ac *AuthController) RegisterCustomer(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	customer := models.Customer{
		Name:     req.Name,
		Username: req.Username,
		Password: string(hashed),
	}
	if err := ac.DB.Create(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, errors.New("username is already taken"))
		return
	}

	utils.InfoLogger.Printf("New customer registered: %s", customer.Username)
	utils.RespondJSON(c, http.StatusCreated, "Customer registered", gin.H{
		"customer_id": customer.ID,
	})
}

// LoginCustomer -> JWT with the customer role.
func (ac *AuthController) LoginCustomer(c *gin.Context) {
	var input credentials
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := ac.DB.Where("username = ?", input.Username).First(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errInvalidCredentials)
		return
	}
	ac.issueToken(c, customer.ID, services.RoleCustomer, customer.Password, input.Password)
}

// LoginWaiter -> JWT with the waiter role.
func (ac *AuthController) LoginWaiter(c *gin.Context) {
	var input credentials
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var waiter models.Waiter
	if err := ac.DB.Where("username = ?", input.Username).First(&waiter).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errInvalidCredentials)
		return
	}
	ac.issueToken(c, waiter.ID, services.RoleWaiter, waiter.Password, input.Password)
}

// LoginManager -> JWT with the restaurant role.
func (ac *AuthController) LoginManager(c *gin.Context) {
	var input credentials
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var manager models.RestaurantManager
	if err := ac.DB.Where("username = ?", input.Username).First(&manager).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errInvalidCredentials)
		return
	}
	ac.issueToken(c, manager.ID, services.RoleRestaurant, manager.Password, input.Password)
}

// LoginProvider -> JWT with the provider role.
func (ac *AuthController) LoginProvider(c *gin.Context) {
	var input credentials
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var manager models.ProviderManager
	if err := ac.DB.Where("username = ?", input.Username).First(&manager).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errInvalidCredentials)
		return
	}
	ac.issueToken(c, manager.ID, services.RoleProvider, manager.Password, input.Password)
}

func (ac *AuthController) issueToken(c *gin.Context, userID uint, role, hashed, plain string) {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errInvalidCredentials)
		return
	}

	token, err := utils.GenerateToken(userID, role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful: id=%d role=%s", userID, role)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"role":  role,
	})
}

// RegisterDevice stores the caller's OneSignal player id so the backend can
// push to their phone. Waiters and customers only.
func (ac *AuthController) RegisterDevice(c *gin.Context) {
	var req struct {
		OneSignalID string `json:"onesignal_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID, role := currentUser(c)

	var err error
	switch role {
	case services.RoleWaiter:
		err = ac.DB.Model(&models.Waiter{}).
			Where("id = ?", userID).
			Update("one_signal_id", req.OneSignalID).Error
	case services.RoleCustomer:
		err = ac.DB.Model(&models.Customer{}).
			Where("id = ?", userID).
			Update("one_signal_id", req.OneSignalID).Error
	default:
		utils.RespondError(c, http.StatusForbidden, errors.New("this role has no push device"))
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Device registered", nil)
}
