package fcm

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/errorutils"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Client wraps Firebase Cloud Messaging functionality
type Client struct {
	messagingClient *messaging.Client
}

// NewClient creates a new FCM client using the provided credentials file
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	log.Println("[FCM] Client initialized successfully")
	return &Client{
		messagingClient: messagingClient,
	}, nil
}

// Send delivers a single message and returns the provider message id.
func (c *Client) Send(ctx context.Context, msg *messaging.Message) (string, error) {
	return c.messagingClient.Send(ctx, msg)
}

// SendEachForMulticast fans msg out to every token it carries and
// returns the per-token batch response.
func (c *Client) SendEachForMulticast(ctx context.Context, msg *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	return c.messagingClient.SendEachForMulticast(ctx, msg)
}

// IsInvalidTokenError reports whether err marks the target token as
// unusable: unregistered, never valid, or rejected as an argument.
// Tokens failing this way are safe to remove from the registry.
func IsInvalidTokenError(err error) bool {
	if err == nil {
		return false
	}
	return messaging.IsRegistrationTokenNotRegistered(err) || errorutils.IsInvalidArgument(err)
}

// ErrorCode maps a messaging error to a stable code string for API
// responses.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case messaging.IsRegistrationTokenNotRegistered(err):
		return "messaging/registration-token-not-registered"
	case errorutils.IsInvalidArgument(err):
		return "messaging/invalid-argument"
	case messaging.IsQuotaExceeded(err):
		return "messaging/quota-exceeded"
	case messaging.IsSenderIDMismatch(err):
		return "messaging/sender-id-mismatch"
	case errorutils.IsUnavailable(err):
		return "messaging/server-unavailable"
	case errorutils.IsInternal(err):
		return "messaging/internal-error"
	default:
		return "UNKNOWN_ERROR"
	}
}
