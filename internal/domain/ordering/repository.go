package ordering

import (
	"context"

	"github.com/google/uuid"
)

// ItemQuantity pairs a listing with a requested quantity, as submitted by
// basket mutation requests.
type ItemQuantity struct {
	ListingID uuid.UUID
	Quantity  int
}

// OrderRepository persists orders and their items. Basket mutations lock the
// basket row for the duration of the change, so concurrent requests from the
// same account serialize instead of corrupting item state.
type OrderRepository interface {
	// FindOrCreateBasket returns the account's basket, creating an empty one
	// if none exists. At most one basket per account is enforced by a
	// partial unique index.
	FindOrCreateBasket(ctx context.Context, accountID uuid.UUID) (*Order, error)

	// FindBasket returns the account's basket with items annotated from the
	// live catalog, or shared.ErrNotFound when the account has none.
	FindBasket(ctx context.Context, accountID uuid.UUID) (*Order, error)

	// AppendItems adds lines to the basket. Duplicate listings append as
	// separate lines rather than merging.
	AppendItems(ctx context.Context, basketID uuid.UUID, items []OrderItem) error

	// UpdateItemQuantities sets quantities of existing basket lines keyed by
	// item id. Unknown ids are ignored.
	UpdateItemQuantities(ctx context.Context, basketID uuid.UUID, quantities map[uuid.UUID]int) error

	// DeleteItems removes basket lines by item id. Unknown ids are ignored.
	DeleteItems(ctx context.Context, basketID uuid.UUID, itemIDs []uuid.UUID) error

	// Place atomically re-checks that the order is still a basket with at
	// least one item, then persists the placement.
	Place(ctx context.Context, order *Order) error

	// Save persists status changes on a placed order.
	Save(ctx context.Context, order *Order) error

	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// ListPlacedForAccount returns the account's placed orders, newest
	// first, items annotated.
	ListPlacedForAccount(ctx context.Context, accountID uuid.UUID) ([]Order, error)

	// ListIncomingForShop returns placed orders containing at least one item
	// from the shop, restricted to that shop's lines.
	ListIncomingForShop(ctx context.Context, shopID uuid.UUID) ([]Order, error)
}

// ContactRepository persists delivery contacts.
type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	Save(ctx context.Context, contact *Contact) error
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]Contact, error)
	Delete(ctx context.Context, id uuid.UUID, accountID uuid.UUID) error
}
