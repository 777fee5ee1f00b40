package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"sunrisetrade-backend/internal/customer/repository"
	notificationdto "sunrisetrade-backend/internal/notification/dto"
	"sunrisetrade-backend/pkg/fcm"

	"firebase.google.com/go/v4/messaging"
)

var (
	// ErrMissingToken is returned when a send request has no target token.
	ErrMissingToken = errors.New("FCM token is required")
	// ErrMissingTokens is returned when a multicast request has no targets.
	ErrMissingTokens = errors.New("array of FCM tokens is required")
	// ErrMissingNotification is returned when title or body is absent.
	ErrMissingNotification = errors.New("notification title and body are required")
)

// Messenger is the slice of the FCM client the usecase depends on.
type Messenger interface {
	Send(ctx context.Context, msg *messaging.Message) (string, error)
	SendEachForMulticast(ctx context.Context, msg *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// OrderResult names the terminal state an order-created dispatch
// reached. Every value is a successful outcome for the webhook: orders
// without an identifiable or registered customer are expected.
type OrderResult string

const (
	OrderNoCustomer OrderResult = "No customer ID"
	OrderNoUser     OrderResult = "No user for this customer"
	OrderNoTokens   OrderResult = "No tokens"
	OrderNotified   OrderResult = "Notification sent"
)

// NotificationUsecase sends push notifications and keeps the token
// registry reconciled with delivery reports.
type NotificationUsecase interface {
	SendToToken(ctx context.Context, req notificationdto.SendNotificationRequest) (string, error)
	SendMulticast(ctx context.Context, req notificationdto.MulticastNotificationRequest) (*notificationdto.MulticastNotificationResponse, error)
	HandleOrderCreated(ctx context.Context, rawBody []byte) (OrderResult, error)
}

type notificationUsecase struct {
	customerRepo repository.CustomerRepository
	messenger    Messenger
	invalidToken func(error) bool
}

// NewNotificationUsecase creates a new instance of notificationUsecase
func NewNotificationUsecase(customerRepo repository.CustomerRepository, messenger Messenger) NotificationUsecase {
	return &notificationUsecase{
		customerRepo: customerRepo,
		messenger:    messenger,
		invalidToken: fcm.IsInvalidTokenError,
	}
}

// SendToToken delivers a caller-supplied notification to a single device.
func (u *notificationUsecase) SendToToken(ctx context.Context, req notificationdto.SendNotificationRequest) (string, error) {
	if req.Token == "" {
		return "", ErrMissingToken
	}
	if err := validateNotification(req.Notification); err != nil {
		return "", err
	}

	msg := &messaging.Message{
		Token: req.Token,
		Notification: &messaging.Notification{
			Title: req.Notification.Title,
			Body:  req.Notification.Body,
		},
		Data:    req.Data,
		Android: buildAndroidConfig(req.Notification, req.Android),
		APNS:    buildAPNSConfig(req.Notification, req.APNS),
	}

	log.Printf("[FCM] Sending notification %q to token %s", req.Notification.Title, truncateToken(req.Token))
	return u.messenger.Send(ctx, msg)
}

// SendMulticast delivers a caller-supplied notification to a list of
// devices and relays the per-token report.
func (u *notificationUsecase) SendMulticast(ctx context.Context, req notificationdto.MulticastNotificationRequest) (*notificationdto.MulticastNotificationResponse, error) {
	if len(req.Tokens) == 0 {
		return nil, ErrMissingTokens
	}
	if err := validateNotification(req.Notification); err != nil {
		return nil, err
	}

	msg := &messaging.MulticastMessage{
		Tokens: req.Tokens,
		Notification: &messaging.Notification{
			Title: req.Notification.Title,
			Body:  req.Notification.Body,
		},
		Data:    req.Data,
		Android: buildAndroidConfig(req.Notification, req.Android),
		APNS:    buildAPNSConfig(req.Notification, req.APNS),
	}

	log.Printf("[FCM] Sending multicast notification %q to %d devices", req.Notification.Title, len(req.Tokens))
	batch, err := u.messenger.SendEachForMulticast(ctx, msg)
	if err != nil {
		return nil, err
	}

	resp := &notificationdto.MulticastNotificationResponse{
		Success:      true,
		SuccessCount: batch.SuccessCount,
		FailureCount: batch.FailureCount,
		Responses:    make([]notificationdto.SendResult, 0, len(batch.Responses)),
		Message:      "Multicast notification sent",
	}
	for _, r := range batch.Responses {
		result := notificationdto.SendResult{Success: r.Success, MessageID: r.MessageID}
		if r.Error != nil {
			result.Error = r.Error.Error()
		}
		resp.Responses = append(resp.Responses, result)
	}
	return resp, nil
}

// orderPayload is the slice of a Shopify order webhook the dispatcher
// reads. Shopify sends numeric ids.
type orderPayload struct {
	ID       json.Number `json:"id"`
	Name     string      `json:"name"`
	Customer *struct {
		ID        json.Number `json:"id"`
		FirstName string      `json:"first_name"`
	} `json:"customer"`
}

// HandleOrderCreated dispatches the order-placed notification to every
// device registered for the order's customer, then prunes tokens the
// provider reported as invalid. Pruning is bookkeeping: the dispatch
// already happened, so a failed registry update is logged, not retried,
// and never fails the request.
func (u *notificationUsecase) HandleOrderCreated(ctx context.Context, rawBody []byte) (OrderResult, error) {
	var order orderPayload
	if err := json.Unmarshal(rawBody, &order); err != nil {
		return "", fmt.Errorf("parse order payload: %w", err)
	}

	if order.Customer == nil || order.Customer.ID.String() == "" {
		log.Println("[Webhook] No customer ID in order payload")
		return OrderNoCustomer, nil
	}
	shopifyCustomerID := order.Customer.ID.String()
	customerName := order.Customer.FirstName
	if customerName == "" {
		customerName = "Customer"
	}

	customer, err := u.customerRepo.FindByShopifyCustomerID(shopifyCustomerID)
	if err != nil {
		return "", err
	}
	if customer == nil {
		log.Printf("[Webhook] No user found for customer ID %s", shopifyCustomerID)
		return OrderNoUser, nil
	}

	tokens := dedupeTokens(customer.FCMTokens)
	if len(tokens) == 0 {
		log.Printf("[Webhook] No FCM tokens for customer %s", shopifyCustomerID)
		return OrderNoTokens, nil
	}

	badge := 1
	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: fmt.Sprintf("Thank you for your order, %s!", customerName),
			Body:  fmt.Sprintf("Your order %s has been placed successfully.", order.Name),
		},
		Data: map[string]string{
			"orderId": order.ID.String(),
			"screen":  "Orders",
		},
		Android: &messaging.AndroidConfig{
			Priority:     "high",
			Notification: &messaging.AndroidNotification{Sound: "default"},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default", Badge: &badge},
			},
		},
	}

	batch, err := u.messenger.SendEachForMulticast(ctx, msg)
	if err != nil {
		return "", err
	}
	log.Printf("[FCM] Order %s multicast: %d success, %d failures", order.Name, batch.SuccessCount, batch.FailureCount)

	var invalidTokens []string
	for i, r := range batch.Responses {
		if !r.Success && u.invalidToken(r.Error) {
			log.Printf("[FCM] Removing invalid token %s: %v", truncateToken(tokens[i]), r.Error)
			invalidTokens = append(invalidTokens, tokens[i])
		}
	}
	if len(invalidTokens) > 0 {
		if err := u.customerRepo.RemoveTokens(shopifyCustomerID, invalidTokens); err != nil {
			log.Printf("[FCM] Failed to remove invalid tokens for customer %s: %v", shopifyCustomerID, err)
		}
	}

	return OrderNotified, nil
}

func validateNotification(n *notificationdto.Notification) error {
	if n == nil || n.Title == "" || n.Body == "" {
		return ErrMissingNotification
	}
	return nil
}

// buildAndroidConfig merges caller overrides over the defaults the
// mobile client expects: heads-up delivery with the platform sound.
func buildAndroidConfig(n *notificationdto.Notification, o *notificationdto.AndroidOverrides) *messaging.AndroidConfig {
	cfg := &messaging.AndroidConfig{
		Priority: "high",
		Notification: &messaging.AndroidNotification{
			Title: n.Title,
			Body:  n.Body,
			Color: "#FF4081",
			Sound: "default",
		},
	}
	if o == nil {
		return cfg
	}
	if o.Priority != "" {
		cfg.Priority = o.Priority
	}
	if o.Sound != "" {
		cfg.Notification.Sound = o.Sound
	}
	if o.Color != "" {
		cfg.Notification.Color = o.Color
	}
	return cfg
}

func buildAPNSConfig(n *notificationdto.Notification, o *notificationdto.APNSOverrides) *messaging.APNSConfig {
	badge := 1
	aps := &messaging.Aps{
		Alert: &messaging.ApsAlert{
			Title: n.Title,
			Body:  n.Body,
		},
		Sound:            "default",
		Badge:            &badge,
		ContentAvailable: true,
	}
	if o != nil {
		if o.Sound != "" {
			aps.Sound = o.Sound
		}
		if o.Badge != nil {
			aps.Badge = o.Badge
		}
	}
	return &messaging.APNSConfig{
		Payload: &messaging.APNSPayload{Aps: aps},
	}
}

// dedupeTokens drops empty and repeated tokens while keeping order.
// Stored records never contain duplicates, but the dispatch does not
// rely on that.
func dedupeTokens(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	var out []string
	for _, t := range tokens {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func truncateToken(token string) string {
	if len(token) <= 20 {
		return token
	}
	return token[:20] + "..."
}
