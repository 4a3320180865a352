package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Store persists the normalized catalog entities. All find-or-create methods
// are atomic upserts (insert-on-conflict-do-nothing then re-select), so
// concurrent ingestions never fail on uniqueness races.
//
// Transaction returns a Store bound to a database transaction; the full
// replace of a shop's listings runs inside one so readers see either the old
// or the new catalog, never a transient empty one.
type Store interface {
	Transaction(ctx context.Context, fn func(Store) error) error

	UpsertShop(ctx context.Context, name string, ownerID uuid.UUID) (*Shop, error)
	SaveShop(ctx context.Context, shop *Shop) error
	FindShopByOwner(ctx context.Context, ownerID uuid.UUID) (*Shop, error)
	ListActiveShops(ctx context.Context) ([]Shop, error)

	UpsertCategory(ctx context.Context, id int, name string) (*Category, error)
	AttachShopCategory(ctx context.Context, categoryID int, shopID uuid.UUID) error
	ListCategories(ctx context.Context) ([]Category, error)

	UpsertProduct(ctx context.Context, name string, categoryID int) (*Product, error)
	UpsertParameter(ctx context.Context, name string) (*Parameter, error)

	// UpsertListing inserts the listing or, when the shop already offers
	// the same external id, updates that row in place and rewrites the
	// listing's id to the stored one. Parameter values are replaced.
	UpsertListing(ctx context.Context, listing *Listing) error

	// PruneShopListings removes the shop's listings whose external ids are
	// not in the keep list, cascading their parameter values. An empty keep
	// list wipes the whole shop. Must run inside Transaction together with
	// the upserts of the same feed.
	PruneShopListings(ctx context.Context, shopID uuid.UUID, keepExternalIDs []int) error
}

// ListingFilter narrows catalog browse queries. Zero values mean "any".
type ListingFilter struct {
	ShopID     uuid.UUID
	CategoryID int
}

// ListingQuery is the read side of the catalog used by browse endpoints and
// the basket engine. Results only cover active shops.
type ListingQuery interface {
	Search(ctx context.Context, filter ListingFilter) ([]ListingDetail, error)
	FindDetail(ctx context.Context, listingID uuid.UUID) (*ListingDetail, error)
}
