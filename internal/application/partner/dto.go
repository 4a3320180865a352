package partner

import (
	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/catalog"
)

// ShopStateResponse is the partner's view of their shop.
type ShopStateResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Active  bool      `json:"active"`
	FeedURL string    `json:"feed_url,omitempty"`
}

// UpdateStateRequest toggles whether the shop accepts orders
type UpdateStateRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// IngestRequest triggers a price list import. An empty URL re-imports the
// shop's stored feed URL.
type IngestRequest struct {
	URL string `json:"url" binding:"omitempty,url"`
}

// AdvanceOrderRequest moves an incoming order to a new status
type AdvanceOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

// ToShopStateResponse converts a shop to the partner API shape
func ToShopStateResponse(shop *catalog.Shop) *ShopStateResponse {
	return &ShopStateResponse{
		ID:      shop.ID,
		Name:    shop.Name,
		Active:  shop.Active,
		FeedURL: shop.FeedURL,
	}
}
