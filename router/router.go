package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-tab/controllers"
	"github.com/yeremiapane/restaurant-tab/middlewares"
	"github.com/yeremiapane/restaurant-tab/services"
)

// SetupRouter wires every endpoint. Four actor roles exist: customers sit at
// tables, waiters serve them, restaurant managers run the restaurant and
// provider managers run the subscription business.
func SetupRouter(db *gorm.DB, notifier services.Notifier) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.RequestID())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	authCtrl := controllers.NewAuthController(db)
	sessionCtrl := controllers.NewTableSessionController(db, notifier)
	itemCtrl := controllers.NewOrderItemController(db, notifier)
	tableCtrl := controllers.NewTableController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	productCtrl := controllers.NewProductController(db)
	restaurantCtrl := controllers.NewRestaurantController(db)
	eventsCtrl := controllers.NewEventsController()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Login and signup are throttled per IP.
	public := r.Group("/auth")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/customers/register", authCtrl.RegisterCustomer)
		public.POST("/customers/login", authCtrl.LoginCustomer)
		public.POST("/waiters/login", authCtrl.LoginWaiter)
		public.POST("/managers/login", authCtrl.LoginManager)
		public.POST("/providers/login", authCtrl.LoginProvider)
	}

	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.PATCH("/devices", authCtrl.RegisterDevice)

	// Catalog reads are open to every authenticated role; a customer browsing
	// the menu sees only what is orderable right now.
	auth.GET("/restaurants/:restaurant_id/categories", categoryCtrl.ListCategories)
	auth.GET("/restaurants/:restaurant_id/products", productCtrl.ListAvailableProducts)

	// Session lifecycle.
	auth.GET("/table-sessions/:session_id", sessionCtrl.GetSession)
	auth.GET("/tables/:table_id/session", sessionCtrl.GetTableSession)
	auth.PATCH("/table-sessions/:session_id/request-payment", sessionCtrl.RequestPayment)

	customer := auth.Group("/")
	customer.Use(middlewares.RequireRole(services.RoleCustomer))
	{
		customer.POST("/table-sessions", sessionCtrl.CreateSession)
		customer.POST("/table-sessions/:session_id/join", sessionCtrl.JoinSession)
		customer.POST("/table-sessions/:session_id/orders", sessionCtrl.PlaceOrder)
		customer.GET("/customers/me/table-session", sessionCtrl.GetCurrentSession)

		callWaiter := customer.Group("/")
		callWaiter.Use(middlewares.NewPerUserRateLimiter(30*time.Second, 1).Limit())
		callWaiter.POST("/table-sessions/:session_id/call-waiter", sessionCtrl.CallWaiter)
	}

	// Serving and canceling items is for the restaurant side only.
	staff := auth.Group("/")
	staff.Use(middlewares.RequireRole(services.RoleWaiter, services.RoleRestaurant))
	{
		staff.PATCH("/orders/:order_id/items/:product_id/serve", itemCtrl.ServeItem)
		staff.PATCH("/orders/:order_id/items/:product_id/cancel", itemCtrl.CancelItem)
	}

	waiter := auth.Group("/")
	waiter.Use(middlewares.RequireRole(services.RoleWaiter))
	{
		waiter.GET("/waiter/tables", tableCtrl.ListMyTables)
	}

	manager := auth.Group("/manager")
	manager.Use(middlewares.RequireRole(services.RoleRestaurant))
	{
		manager.POST("/tables", tableCtrl.CreateTable)
		manager.GET("/tables", tableCtrl.ListTables)
		manager.PATCH("/tables/:table_id/waiter", tableCtrl.AssignWaiter)

		manager.POST("/categories", categoryCtrl.CreateCategory)
		manager.PATCH("/categories/:category_id", categoryCtrl.UpdateCategory)
		manager.DELETE("/categories/:category_id", categoryCtrl.DeleteCategory)

		manager.POST("/products", productCtrl.CreateProduct)
		manager.PATCH("/products/:product_id", productCtrl.UpdateProduct)
		manager.DELETE("/products/:product_id", productCtrl.DeleteProduct)
		manager.GET("/restaurants/:restaurant_id/products", productCtrl.ListProducts)

		manager.PATCH("/table-sessions/:session_id/finish", sessionCtrl.FinishSession)
	}

	provider := auth.Group("/provider")
	provider.Use(middlewares.RequireRole(services.RoleProvider))
	{
		provider.POST("/restaurants", restaurantCtrl.CreateRestaurant)
		provider.GET("/restaurants", restaurantCtrl.ListRestaurants)
		provider.PATCH("/restaurants/:restaurant_id/expiration", restaurantCtrl.ChangeExpiration)
	}

	// Live session events over websocket; token comes in the query string.
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/events", eventsCtrl.Stream)
	}

	return r
}
