package dto

// RegisterTokenRequest is the body of POST /api/register-fcm-token.
// ShopifyCustomerID may be a plain id or a global-id resource path
// (gid://shopify/Customer/42).
type RegisterTokenRequest struct {
	ShopifyCustomerID string `json:"shopifyCustomerID"`
	Token             string `json:"token"`
}

// RegisterTokenResponse reports which of the three registration
// outcomes happened; exactly one of the flags is set.
type RegisterTokenResponse struct {
	Success   bool `json:"success"`
	Created   bool `json:"created,omitempty"`
	Added     bool `json:"added,omitempty"`
	Duplicate bool `json:"duplicate,omitempty"`
}
