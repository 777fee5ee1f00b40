package dto

// Notification carries the user-visible fields of a push message
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// AndroidOverrides are caller-supplied Android delivery options, merged
// over the server defaults (high priority, default sound).
type AndroidOverrides struct {
	Priority string `json:"priority,omitempty"`
	Sound    string `json:"sound,omitempty"`
	Color    string `json:"color,omitempty"`
}

// APNSOverrides are caller-supplied APNs delivery options, merged over
// the server defaults (default sound, badge 1).
type APNSOverrides struct {
	Sound string `json:"sound,omitempty"`
	Badge *int   `json:"badge,omitempty"`
}

// SendNotificationRequest is the body of POST /api/send-notification.
type SendNotificationRequest struct {
	Token        string            `json:"token"`
	Notification *Notification     `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
	Android      *AndroidOverrides `json:"android,omitempty"`
	APNS         *APNSOverrides    `json:"apns,omitempty"`
}

// SendNotificationResponse reports a successful single-token delivery.
type SendNotificationResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Message   string `json:"message"`
}

// MulticastNotificationRequest is the body of POST /api/send-multicast-notification.
type MulticastNotificationRequest struct {
	Tokens       []string          `json:"tokens"`
	Notification *Notification     `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
	Android      *AndroidOverrides `json:"android,omitempty"`
	APNS         *APNSOverrides    `json:"apns,omitempty"`
}

// SendResult relays the provider's verdict for one token.
type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// MulticastNotificationResponse relays the provider's per-token report
// verbatim to the caller.
type MulticastNotificationResponse struct {
	Success      bool         `json:"success"`
	SuccessCount int          `json:"successCount"`
	FailureCount int          `json:"failureCount"`
	Responses    []SendResult `json:"responses"`
	Message      string       `json:"message"`
}

// ErrorResponse is the 500-level body of the send endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}
