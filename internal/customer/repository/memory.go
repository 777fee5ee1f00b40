package repository

import (
	"sync"
	"time"

	customerdomain "sunrisetrade-backend/internal/customer/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// memoryCustomerRepository is a map-backed CustomerRepository for tests
// and for running the server locally without Postgres. It enforces the
// same set semantics as the SQL implementation.
type memoryCustomerRepository struct {
	mu        sync.Mutex
	customers map[string]*customerdomain.Customer
}

// NewMemoryCustomerRepository creates an empty in-memory registry.
func NewMemoryCustomerRepository() CustomerRepository {
	return &memoryCustomerRepository{
		customers: make(map[string]*customerdomain.Customer),
	}
}

func (r *memoryCustomerRepository) FindByShopifyCustomerID(shopifyCustomerID string) (*customerdomain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer, ok := r.customers[shopifyCustomerID]
	if !ok {
		return nil, nil
	}
	copied := *customer
	copied.FCMTokens = append(pq.StringArray{}, customer.FCMTokens...)
	return &copied, nil
}

func (r *memoryCustomerRepository) AddTokenIfAbsent(shopifyCustomerID, token string) (RegistrationOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer, ok := r.customers[shopifyCustomerID]
	if !ok {
		r.customers[shopifyCustomerID] = &customerdomain.Customer{
			ID:                uuid.New().String(),
			ShopifyCustomerID: shopifyCustomerID,
			FCMTokens:         pq.StringArray{token},
			CreatedAt:         time.Now(),
			UpdatedAt:         time.Now(),
		}
		return OutcomeCreated, nil
	}
	for _, existing := range customer.FCMTokens {
		if existing == token {
			return OutcomeDuplicate, nil
		}
	}
	customer.FCMTokens = append(customer.FCMTokens, token)
	customer.UpdatedAt = time.Now()
	return OutcomeAdded, nil
}

func (r *memoryCustomerRepository) RemoveTokens(shopifyCustomerID string, tokens []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer, ok := r.customers[shopifyCustomerID]
	if !ok {
		return nil
	}
	remove := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		remove[t] = true
	}
	kept := customer.FCMTokens[:0]
	for _, t := range customer.FCMTokens {
		if !remove[t] {
			kept = append(kept, t)
		}
	}
	customer.FCMTokens = kept
	customer.UpdatedAt = time.Now()
	return nil
}
