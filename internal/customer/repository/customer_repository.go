package repository

import (
	"errors"
	"time"

	customerdomain "sunrisetrade-backend/internal/customer/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RegistrationOutcome describes what a token registration did to the
// customer's record.
type RegistrationOutcome string

const (
	OutcomeCreated   RegistrationOutcome = "created"
	OutcomeAdded     RegistrationOutcome = "added"
	OutcomeDuplicate RegistrationOutcome = "duplicate"
)

// CustomerRepository defines the token-registry operations
type CustomerRepository interface {
	FindByShopifyCustomerID(shopifyCustomerID string) (*customerdomain.Customer, error)
	AddTokenIfAbsent(shopifyCustomerID, token string) (RegistrationOutcome, error)
	RemoveTokens(shopifyCustomerID string, tokens []string) error
}

// customerRepository implements CustomerRepository interface
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new instance of customerRepository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{
		db: db,
	}
}

// FindByShopifyCustomerID returns the customer's record, or nil when no
// token was ever registered for that customer.
func (r *customerRepository) FindByShopifyCustomerID(shopifyCustomerID string) (*customerdomain.Customer, error) {
	var customer customerdomain.Customer
	err := r.db.Where("shopify_customer_id = ?", shopifyCustomerID).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// AddTokenIfAbsent adds token to the customer's set, creating the record
// on first registration. The append is guarded inside the store so
// concurrent registrations cannot produce a duplicate entry.
func (r *customerRepository) AddTokenIfAbsent(shopifyCustomerID, token string) (RegistrationOutcome, error) {
	res := r.db.Model(&customerdomain.Customer{}).
		Where("shopify_customer_id = ? AND NOT (? = ANY(fcm_tokens))", shopifyCustomerID, token).
		Updates(map[string]interface{}{
			"fcm_tokens": gorm.Expr("array_append(fcm_tokens, ?)", token),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected > 0 {
		return OutcomeAdded, nil
	}

	existing, err := r.FindByShopifyCustomerID(shopifyCustomerID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return OutcomeDuplicate, nil
	}

	customer := &customerdomain.Customer{
		ID:                uuid.New().String(),
		ShopifyCustomerID: shopifyCustomerID,
		FCMTokens:         pq.StringArray{token},
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	create := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shopify_customer_id"}},
		DoNothing: true,
	}).Create(customer)
	if create.Error != nil {
		return "", create.Error
	}
	if create.RowsAffected == 0 {
		// Lost a first-registration race; append against the winner's row.
		return r.AddTokenIfAbsent(shopifyCustomerID, token)
	}
	return OutcomeCreated, nil
}

// RemoveTokens drops the given tokens from the customer's set. The set
// difference is computed inside the store, never as a read-modify-write
// of a cached copy. Tokens not present are ignored.
func (r *customerRepository) RemoveTokens(shopifyCustomerID string, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	return r.db.Model(&customerdomain.Customer{}).
		Where("shopify_customer_id = ?", shopifyCustomerID).
		Updates(map[string]interface{}{
			"fcm_tokens": gorm.Expr("ARRAY(SELECT unnest(fcm_tokens) EXCEPT SELECT unnest(?::text[]))", pq.Array(tokens)),
			"updated_at": time.Now(),
		}).Error
}
