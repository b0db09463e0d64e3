package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/example/feria/internal/config"
	"github.com/example/feria/internal/handlers"
	"github.com/example/feria/internal/middleware"
	"github.com/example/feria/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	realtimeService := services.NewRealtimeService(rdb)
	whatsappService := services.NewWhatsAppService(cfg.PhoneCountryPrefix)
	checkoutService := services.NewCheckoutService(db, realtimeService, cfg.ShippingFlatFee, cfg.Currency)

	authHandler := handlers.NewAuthHandler(db, cfg)
	storeHandler := handlers.NewStoreHandler(db)
	productHandler := handlers.NewProductHandler(db)
	cartHandler := handlers.NewCartHandler(db, cfg.ShippingFlatFee)
	orderHandler := handlers.NewOrderHandler(db, checkoutService)
	sellerOrderHandler := handlers.NewSellerOrderHandler(db, realtimeService, whatsappService)
	profileHandler := handlers.NewProfileHandler(db)
	chatHandler := handlers.NewChatHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db)
	calendarHandler := handlers.NewCalendarHandler(db)
	eventsHandler := handlers.NewEventsHandler(db, realtimeService)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Public marketplace routes
	stores := api.Group("/stores")
	stores.Get("/", storeHandler.ListStores)
	stores.Get("/:id", storeHandler.GetStore)
	stores.Get("/:id/products", storeHandler.ListStoreProducts)

	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/:id", productHandler.GetProduct)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	cart := protected.Group("/cart")
	cart.Get("/", cartHandler.ListCart)
	cart.Get("/summary", cartHandler.CartSummary)
	cart.Post("/", cartHandler.AddToCart)
	cart.Put("/:id", cartHandler.UpdateCartItem)
	cart.Delete("/:id", cartHandler.RemoveCartItem)
	cart.Delete("/", cartHandler.ClearCart)

	protected.Post("/checkout", orderHandler.Checkout)
	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)

	protected.Get("/profile", profileHandler.GetProfile)
	protected.Put("/profile", profileHandler.UpdateProfile)

	protected.Get("/notifications", notificationHandler.ListNotifications)
	protected.Put("/notifications/:id/read", notificationHandler.MarkRead)

	protected.Get("/chat/:storeId", chatHandler.ListMessages)
	protected.Post("/chat/:storeId", chatHandler.SendMessage)

	protected.Get("/events/buyer", eventsHandler.BuyerEvents)

	// Seller routes
	seller := protected.Group("/seller", middleware.RequireSeller())

	seller.Get("/profile", profileHandler.GetSellerProfile)
	seller.Put("/profile", profileHandler.UpdateSellerProfile)
	seller.Get("/upload-path", storeHandler.UploadPath)

	seller.Get("/stores", storeHandler.ListMyStores)
	seller.Post("/stores", storeHandler.CreateStore)
	seller.Put("/stores/:id", storeHandler.UpdateStore)

	seller.Get("/products", productHandler.ListMyProducts)
	seller.Post("/products", productHandler.CreateProduct)
	seller.Put("/products/:id", productHandler.UpdateProduct)
	seller.Delete("/products/:id", productHandler.DeleteProduct)

	seller.Get("/orders", sellerOrderHandler.ListOrders)
	seller.Get("/orders/:id", sellerOrderHandler.GetOrder)
	seller.Put("/orders/:id/status", sellerOrderHandler.UpdateStatus)
	seller.Delete("/orders/:id", sellerOrderHandler.DeleteOrder)
	seller.Get("/orders/:id/whatsapp-link", sellerOrderHandler.WhatsAppLink)

	seller.Get("/chat/threads", chatHandler.ListThreads)
	seller.Get("/chat/:storeId/:buyerId", chatHandler.ListThreadMessages)
	seller.Post("/chat/:storeId/:buyerId", chatHandler.ReplyToThread)

	seller.Get("/calendar", calendarHandler.ListEvents)
	seller.Post("/calendar", calendarHandler.CreateEvent)
	seller.Put("/calendar/:id", calendarHandler.UpdateEvent)
	seller.Delete("/calendar/:id", calendarHandler.DeleteEvent)

	protected.Get("/events/store/:id", eventsHandler.StoreEvents)
}
