package domain

import (
	"time"

	"github.com/lib/pq"
)

// Customer maps a Shopify customer to the FCM device tokens registered
// for push notifications. FCMTokens has set semantics: the repository
// only ever appends a token that is not already present, and a record
// that loses all tokens keeps an empty array rather than being deleted.
type Customer struct {
	ID                string         `json:"id" gorm:"primaryKey"`
	ShopifyCustomerID string         `json:"shopify_customer_id" gorm:"uniqueIndex;not null"`
	FCMTokens         pq.StringArray `json:"-" gorm:"type:text[];not null;default:'{}'"` // Don't expose tokens in JSON
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}
