package api

import (
	"net/http"
	"time"

	customerDelivery "sunrisetrade-backend/internal/customer/delivery"
	notificationDelivery "sunrisetrade-backend/internal/notification/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, notificationHandler *notificationDelivery.NotificationHandler, tokenHandler *customerDelivery.TokenHandler, wellKnownDir string) {
	// Health check (no auth required)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"message":   "Firebase Notification Server is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Deep-link association files for the mobile app
	if wellKnownDir != "" {
		r.Static("/.well-known", wellKnownDir)
	}

	api := r.Group("/api")
	{
		api.POST("/webhook/order-created", notificationHandler.OrderCreatedWebhook)
		api.POST("/send-notification", notificationHandler.SendNotification)
		api.POST("/send-multicast-notification", notificationHandler.SendMulticastNotification)
		api.POST("/register-fcm-token", tokenHandler.RegisterToken)
	}
}
