package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// Shop represents a supplier storefront. A shop is created on first feed
// ingestion (or explicit registration) and is never hard-deleted; its owner
// toggles the Active trading state instead.
type Shop struct {
	shared.BaseEntity
	Name    string
	OwnerID uuid.UUID
	Active  bool
	FeedURL string
}

// NewShop creates a shop owned by the given supplier account.
func NewShop(name string, ownerID uuid.UUID) (*Shop, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SHOP_NAME", "Shop name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_SHOP_NAME", "Shop name cannot exceed 100 characters")
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Shop owner cannot be empty")
	}
	return &Shop{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		OwnerID:    ownerID,
		Active:     true,
	}, nil
}

// SetActive toggles the trading state.
func (s *Shop) SetActive(active bool) {
	s.Active = active
	s.UpdatedAt = time.Now()
}

// SetFeedURL records the last ingested feed location.
func (s *Shop) SetFeedURL(url string) {
	s.FeedURL = url
	s.UpdatedAt = time.Now()
}
