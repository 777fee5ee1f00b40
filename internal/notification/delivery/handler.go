package delivery

import (
	"errors"
	"log"
	"net/http"

	notificationdto "sunrisetrade-backend/internal/notification/dto"
	"sunrisetrade-backend/internal/notification/usecase"
	"sunrisetrade-backend/pkg/fcm"
	"sunrisetrade-backend/pkg/shopify"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
	shopifySecret       string
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase, shopifySecret string) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
		shopifySecret:       shopifySecret,
	}
}

// OrderCreatedWebhook handles POST /api/webhook/order-created. The body
// is read raw: the HMAC covers the exact bytes Shopify sent. Responses
// are plain text on this route.
func (h *NotificationHandler) OrderCreatedWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	ok, err := shopify.VerifyWebhook(body, c.GetHeader(shopify.HMACHeader), h.shopifySecret)
	if errors.Is(err, shopify.ErrMissingSecret) {
		log.Println("[Webhook] SHOPIFY_SECRET is not set")
		c.String(http.StatusInternalServerError, "Missing secret")
		return
	}
	if !ok {
		log.Println("[Webhook] Invalid Shopify webhook signature")
		c.String(http.StatusUnauthorized, "Invalid signature")
		return
	}

	result, err := h.notificationUsecase.HandleOrderCreated(c.Request.Context(), body)
	if err != nil {
		log.Printf("[Webhook] Error in order-created webhook: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.String(http.StatusOK, string(result))
}

// SendNotification handles POST /api/send-notification
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	var req notificationdto.SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	messageID, err := h.notificationUsecase.SendToToken(c.Request.Context(), req)
	if errors.Is(err, usecase.ErrMissingToken) || errors.Is(err, usecase.ErrMissingNotification) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Printf("[FCM] Error sending notification: %v", err)
		c.JSON(http.StatusInternalServerError, notificationdto.ErrorResponse{
			Success: false,
			Error:   err.Error(),
			Code:    fcm.ErrorCode(err),
		})
		return
	}

	c.JSON(http.StatusOK, notificationdto.SendNotificationResponse{
		Success:   true,
		MessageID: messageID,
		Message:   "Notification sent successfully",
	})
}

// SendMulticastNotification handles POST /api/send-multicast-notification
func (h *NotificationHandler) SendMulticastNotification(c *gin.Context) {
	var req notificationdto.MulticastNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.notificationUsecase.SendMulticast(c.Request.Context(), req)
	if errors.Is(err, usecase.ErrMissingTokens) || errors.Is(err, usecase.ErrMissingNotification) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Printf("[FCM] Error sending multicast notification: %v", err)
		c.JSON(http.StatusInternalServerError, notificationdto.ErrorResponse{
			Success: false,
			Error:   err.Error(),
			Code:    fcm.ErrorCode(err),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
