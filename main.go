package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-tab/config"
	"github.com/yeremiapane/restaurant-tab/models"
	"github.com/yeremiapane/restaurant-tab/router"
	"github.com/yeremiapane/restaurant-tab/services"
	"github.com/yeremiapane/restaurant-tab/utils"
)

func main() {
	utils.InitLogger()

	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	cfg := config.Load()
	utils.InitJWT(cfg.JWTSecret)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	autoMigrate(db)

	var notifier services.Notifier = services.NopNotifier{}
	if cfg.OneSignalAppID != "" {
		notifier = services.NewNotificationService(cfg)
	}

	r := router.SetupRouter(db, notifier)

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Provider{},
		&models.ProviderManager{},
		&models.Restaurant{},
		&models.RestaurantManager{},
		&models.Waiter{},
		&models.Customer{},
		&models.Table{},
		&models.Category{},
		&models.Product{},
		&models.TableSession{},
		&models.TableParticipant{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
