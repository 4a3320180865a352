package ordering

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/ordering"
	"github.com/markethub/backend/internal/domain/shared"
)

// BasketService manages the account's single basket. Every mutation validates
// listings against the live catalog and returns the refreshed basket with
// current prices.
type BasketService struct {
	orders  ordering.OrderRepository
	catalog catalog.ListingQuery
	logger  *zap.Logger
}

// NewBasketService creates a new BasketService
func NewBasketService(orders ordering.OrderRepository, listings catalog.ListingQuery, logger *zap.Logger) *BasketService {
	return &BasketService{
		orders:  orders,
		catalog: listings,
		logger:  logger,
	}
}

// GetBasket returns the account's basket. Reading never creates one; the
// basket materializes on the first write, so an account that only browses
// gets an empty view and no row.
func (s *BasketService) GetBasket(ctx context.Context, accountID uuid.UUID) (*OrderResponse, error) {
	basket, err := s.orders.FindBasket(ctx, accountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return emptyBasketResponse(), nil
		}
		return nil, err
	}
	return ToOrderResponse(basket), nil
}

// AddItems appends listing lines to the basket. A listing already in the
// basket is added as a separate line. Listings that are unknown or belong to
// a deactivated shop are rejected.
func (s *BasketService) AddItems(ctx context.Context, accountID uuid.UUID, requests []ItemRequest) (*OrderResponse, error) {
	if len(requests) == 0 {
		return nil, shared.NewValidationError("No items to add")
	}

	basket, err := s.orders.FindOrCreateBasket(ctx, accountID)
	if err != nil {
		return nil, err
	}

	items := make([]ordering.OrderItem, 0, len(requests))
	for _, req := range requests {
		detail, err := s.catalog.FindDetail(ctx, req.ListingID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewConstraintError(
					"Listing " + req.ListingID.String() + " is not available for purchase")
			}
			return nil, err
		}
		if detail.ShopID != req.ShopID {
			return nil, shared.NewConstraintError(
				"Listing " + req.ListingID.String() + " is not available for purchase from that shop")
		}

		item, err := ordering.NewItem(basket.ID, req.ListingID, detail.ShopID, req.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := s.orders.AppendItems(ctx, basket.ID, items); err != nil {
		return nil, err
	}

	s.logger.Debug("Basket items added",
		zap.String("account_id", accountID.String()),
		zap.Int("count", len(items)),
	)
	return s.refresh(ctx, accountID)
}

// UpdateItems sets quantities of existing basket lines. Without a basket
// there is nothing to update; that is not an error, just zero lines touched.
func (s *BasketService) UpdateItems(ctx context.Context, accountID uuid.UUID, requests []ItemUpdateRequest) (*OrderResponse, error) {
	if len(requests) == 0 {
		return nil, shared.NewValidationError("No items to update")
	}

	quantities := make(map[uuid.UUID]int, len(requests))
	for _, req := range requests {
		if req.Quantity <= 0 {
			return nil, shared.NewValidationError("Item quantity must be positive")
		}
		quantities[req.ID] = req.Quantity
	}

	basket, err := s.orders.FindBasket(ctx, accountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return emptyBasketResponse(), nil
		}
		return nil, err
	}

	if err := s.orders.UpdateItemQuantities(ctx, basket.ID, quantities); err != nil {
		return nil, err
	}
	return s.refresh(ctx, accountID)
}

// RemoveItems deletes basket lines by item id. Unknown and foreign ids were
// already filtered away or are ignored by the repository; an absent basket
// means zero removals, not an error.
func (s *BasketService) RemoveItems(ctx context.Context, accountID uuid.UUID, itemIDs []uuid.UUID) (*OrderResponse, error) {
	basket, err := s.orders.FindBasket(ctx, accountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return emptyBasketResponse(), nil
		}
		return nil, err
	}

	if len(itemIDs) > 0 {
		if err := s.orders.DeleteItems(ctx, basket.ID, itemIDs); err != nil {
			return nil, err
		}
	}
	return s.refresh(ctx, accountID)
}

func (s *BasketService) refresh(ctx context.Context, accountID uuid.UUID) (*OrderResponse, error) {
	basket, err := s.orders.FindBasket(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(basket), nil
}

// emptyBasketResponse is the view of an account that has no basket row yet.
func emptyBasketResponse() *OrderResponse {
	return &OrderResponse{
		Status: string(ordering.StatusBasket),
		Items:  []OrderItemResponse{},
		Total:  decimal.Zero,
	}
}
