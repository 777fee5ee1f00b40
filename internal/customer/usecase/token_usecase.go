package usecase

import (
	"errors"
	"strings"

	"sunrisetrade-backend/internal/customer/repository"
)

// ErrMissingFields is returned when the customer id or token is empty
// after normalization. Handlers map it to a 400.
var ErrMissingFields = errors.New("shopifyCustomerId and token are required")

// TokenUsecase registers FCM device tokens for Shopify customers
type TokenUsecase interface {
	RegisterToken(shopifyCustomerID, token string) (repository.RegistrationOutcome, error)
}

type tokenUsecase struct {
	customerRepo repository.CustomerRepository
}

// NewTokenUsecase creates a new instance of tokenUsecase
func NewTokenUsecase(customerRepo repository.CustomerRepository) TokenUsecase {
	return &tokenUsecase{
		customerRepo: customerRepo,
	}
}

// RegisterToken stores token in the customer's set. The id may arrive
// as a global-id resource path; only its final path segment identifies
// the customer, and normalization happens before any lookup.
func (u *tokenUsecase) RegisterToken(shopifyCustomerID, token string) (repository.RegistrationOutcome, error) {
	id := normalizeCustomerID(shopifyCustomerID)
	if id == "" || token == "" {
		return "", ErrMissingFields
	}
	return u.customerRepo.AddTokenIfAbsent(id, token)
}

func normalizeCustomerID(id string) string {
	parts := strings.Split(id, "/")
	return parts[len(parts)-1]
}
