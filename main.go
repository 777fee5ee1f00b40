package main

import (
	"context"
	"log"
	"net"

	api "sunrisetrade-backend/cmd/api"
	customerdomain "sunrisetrade-backend/internal/customer/domain"
	customerRepo "sunrisetrade-backend/internal/customer/repository"
	customerUsecase "sunrisetrade-backend/internal/customer/usecase"
	notificationUsecase "sunrisetrade-backend/internal/notification/usecase"
	"sunrisetrade-backend/pkg/config"
	"sunrisetrade-backend/pkg/database"
	"sunrisetrade-backend/pkg/fcm"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&customerdomain.Customer{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize FCM client. Every endpoint but /health depends on it,
	// so a missing service account is fatal.
	fcmClient, err := fcm.NewClient(context.Background(), cfg.FirebaseCredentials)
	if err != nil {
		log.Fatal("Failed to initialize FCM client:", err)
	}

	if cfg.ShopifySecret == "" {
		log.Println("[WARN] SHOPIFY_SECRET not configured, order webhooks will be rejected")
	}

	// Initialize repositories and use cases (dependency injection)
	customerRepository := customerRepo.NewCustomerRepository(db)
	tokenUsecaseInstance := customerUsecase.NewTokenUsecase(customerRepository)
	notificationUsecaseInstance := notificationUsecase.NewNotificationUsecase(customerRepository, fcmClient)

	// Initialize HTTP handler
	handler := api.NewHandler(notificationUsecaseInstance, tokenUsecaseInstance, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if ip := localIPAddress(); ip != "" {
		log.Printf("Device test URL: http://%s:%s/api/send-notification", ip, cfg.Port)
	}
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// localIPAddress returns the first non-loopback IPv4 address, for
// pointing a phone on the same network at a dev server.
func localIPAddress() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		if ipNet, ok := addr.(*net.IPNet); ok && !ipNet.IP.IsLoopback() && ipNet.IP.To4() != nil {
			return ipNet.IP.String()
		}
	}
	return ""
}
