package partner

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	catalogapp "github.com/markethub/backend/internal/application/catalog"
	orderingapp "github.com/markethub/backend/internal/application/ordering"
	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/ordering"
	"github.com/markethub/backend/internal/domain/shared"
)

// Service covers the partner workflow: shop state, feed imports and the
// shop's view of incoming orders. Every operation resolves the shop through
// the calling account, so a partner can only ever touch their own shop.
type Service struct {
	store  catalog.Store
	orders ordering.OrderRepository
	ingest *catalogapp.IngestService
	logger *zap.Logger
}

// NewService creates a new partner Service
func NewService(
	store catalog.Store,
	orders ordering.OrderRepository,
	ingest *catalogapp.IngestService,
	logger *zap.Logger,
) *Service {
	return &Service{
		store:  store,
		orders: orders,
		ingest: ingest,
		logger: logger,
	}
}

// GetShop returns the partner's shop. A shop only exists after the first
// successful feed import.
func (s *Service) GetShop(ctx context.Context, ownerID uuid.UUID) (*ShopStateResponse, error) {
	shop, err := s.store.FindShopByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ToShopStateResponse(shop), nil
}

// SetShopState toggles whether the shop accepts orders. An inactive shop's
// listings disappear from the catalog but already placed orders keep moving.
func (s *Service) SetShopState(ctx context.Context, ownerID uuid.UUID, active bool) (*ShopStateResponse, error) {
	shop, err := s.store.FindShopByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	shop.SetActive(active)
	if err := s.store.SaveShop(ctx, shop); err != nil {
		return nil, err
	}

	s.logger.Info("Shop state changed",
		zap.String("shop_id", shop.ID.String()),
		zap.Bool("active", active),
	)
	return ToShopStateResponse(shop), nil
}

// Ingest imports a price list for the partner's shop. With an empty URL the
// shop's stored feed URL is re-imported; a given URL is stored on success.
func (s *Service) Ingest(ctx context.Context, ownerID uuid.UUID, feedURL string) (*catalogapp.IngestResult, error) {
	if feedURL == "" {
		shop, err := s.store.FindShopByOwner(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		if shop.FeedURL == "" {
			return nil, shared.NewValidationError("The shop has no stored feed URL; provide one")
		}
		feedURL = shop.FeedURL
	}

	result, err := s.ingest.IngestFromURL(ctx, ownerID, feedURL)
	if err != nil {
		return nil, err
	}

	// The shop exists after a successful import; remember the URL for
	// later re-imports.
	shop, err := s.store.FindShopByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if shop.FeedURL != feedURL {
		shop.SetFeedURL(feedURL)
		if err := s.store.SaveShop(ctx, shop); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ListIncomingOrders returns placed orders containing the shop's listings,
// restricted to the shop's lines.
func (s *Service) ListIncomingOrders(ctx context.Context, ownerID uuid.UUID) ([]orderingapp.OrderResponse, error) {
	shop, err := s.store.FindShopByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.ListIncomingForShop(ctx, shop.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]orderingapp.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *orderingapp.ToOrderResponse(&orders[i])
	}
	return responses, nil
}

// AdvanceOrder moves an incoming order to the given workflow status. Orders
// without any of the shop's lines are invisible to the partner.
func (s *Service) AdvanceOrder(ctx context.Context, ownerID, orderID uuid.UUID, status string) (*orderingapp.OrderResponse, error) {
	shop, err := s.store.FindShopByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	shopItems := make([]ordering.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		if item.ShopID == shop.ID {
			shopItems = append(shopItems, item)
		}
	}
	if len(shopItems) == 0 || !order.Status.IsPlaced() {
		return nil, shared.ErrNotFound
	}

	if err := order.Advance(ordering.OrderStatus(status)); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order advanced",
		zap.String("order_id", order.ID.String()),
		zap.String("shop_id", shop.ID.String()),
		zap.String("status", status),
	)

	order.Items = shopItems
	return orderingapp.ToOrderResponse(order), nil
}
