package api

import (
	"net/http"

	customerDelivery "sunrisetrade-backend/internal/customer/delivery"
	customerUsecase "sunrisetrade-backend/internal/customer/usecase"
	notificationDelivery "sunrisetrade-backend/internal/notification/delivery"
	notificationUsecase "sunrisetrade-backend/internal/notification/usecase"
	"sunrisetrade-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	notificationHandler *notificationDelivery.NotificationHandler
	tokenHandler        *customerDelivery.TokenHandler
	config              *config.Config
}

func NewHandler(notificationUc notificationUsecase.NotificationUsecase, tokenUc customerUsecase.TokenUsecase, cfg *config.Config) *Handler {
	return &Handler{
		notificationHandler: notificationDelivery.NewNotificationHandler(notificationUc, cfg.ShopifySecret),
		tokenHandler:        customerDelivery.NewTokenHandler(tokenUc),
		config:              cfg,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.Use(corsMiddleware())

	SetupRoutes(r, h.notificationHandler, h.tokenHandler, h.config.WellKnownDir)

	return r.Run(addr)
}

// corsMiddleware allows any origin; the API serves mobile dev builds
// reaching a LAN address that changes between sessions.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
