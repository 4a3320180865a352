package catalog

import (
	"github.com/markethub/backend/internal/domain/shared"
)

// Product is the catalog-wide notion of a good. The (Name, CategoryID) pair
// identifies a product for upsert matching during ingestion; per-shop price
// and stock live on Listing.
type Product struct {
	shared.BaseEntity
	Name       string
	CategoryID int
}

// NewProduct creates a product in the given category.
func NewProduct(name string, categoryID int) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if categoryID <= 0 {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Product category must be a positive id")
	}
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		CategoryID: categoryID,
	}, nil
}
