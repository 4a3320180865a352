package ordering

import (
	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// Contact is a delivery address plus phone owned by an account. Orders
// reference a contact at placement.
type Contact struct {
	shared.BaseEntity
	AccountID uuid.UUID
	City      string
	Street    string
	House     string
	Building  string
	Apartment string
	Phone     string
}

// NewContact creates a delivery contact for the account.
func NewContact(accountID uuid.UUID, city, street, house, building, apartment, phone string) (*Contact, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Contact account cannot be empty")
	}
	if city == "" || street == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Contact city and street are required")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Contact phone is required")
	}
	return &Contact{
		BaseEntity: shared.NewBaseEntity(),
		AccountID:  accountID,
		City:       city,
		Street:     street,
		House:      house,
		Building:   building,
		Apartment:  apartment,
		Phone:      phone,
	}, nil
}
