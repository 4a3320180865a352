package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/catalog"
)

// SearchFilter narrows listing browse queries. Zero values mean "any".
type SearchFilter struct {
	ShopID     uuid.UUID
	CategoryID int
}

// ParameterResponse is one listing attribute in API responses.
type ParameterResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ListingResponse is a purchasable listing with its product, category and
// shop context.
type ListingResponse struct {
	ID           uuid.UUID           `json:"id"`
	ExternalID   int                 `json:"external_id"`
	ProductName  string              `json:"product_name"`
	Model        string              `json:"model"`
	Price        decimal.Decimal     `json:"price"`
	PriceRRC     decimal.Decimal     `json:"price_rrc"`
	Quantity     int                 `json:"quantity"`
	CategoryID   int                 `json:"category_id"`
	CategoryName string              `json:"category_name"`
	ShopID       uuid.UUID           `json:"shop_id"`
	ShopName     string              `json:"shop_name"`
	Parameters   []ParameterResponse `json:"parameters,omitempty"`
}

// CategoryResponse is a catalog category
type CategoryResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ShopResponse is a shop visible to buyers
type ShopResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Active bool      `json:"active"`
}

// IngestResult summarizes one completed feed ingestion run.
type IngestResult struct {
	ShopID     uuid.UUID `json:"shop_id"`
	ShopName   string    `json:"shop_name"`
	Categories int       `json:"categories"`
	Listings   int       `json:"listings"`
}

// ToListingResponse converts a listing detail to its API shape
func ToListingResponse(detail *catalog.ListingDetail) ListingResponse {
	params := make([]ParameterResponse, 0, len(detail.Parameters))
	for _, p := range detail.Parameters {
		params = append(params, ParameterResponse{Name: p.Name, Value: p.Value})
	}
	return ListingResponse{
		ID:           detail.ID,
		ExternalID:   detail.ExternalID,
		ProductName:  detail.ProductName,
		Model:        detail.Model,
		Price:        detail.Price,
		PriceRRC:     detail.PriceRRC,
		Quantity:     detail.Quantity,
		CategoryID:   detail.CategoryID,
		CategoryName: detail.CategoryName,
		ShopID:       detail.ShopID,
		ShopName:     detail.ShopName,
		Parameters:   params,
	}
}

// ToCategoryResponse converts a category to its API shape
func ToCategoryResponse(category *catalog.Category) CategoryResponse {
	return CategoryResponse{ID: category.ID, Name: category.Name}
}

// ToShopResponse converts a shop to its API shape
func ToShopResponse(shop *catalog.Shop) ShopResponse {
	return ShopResponse{ID: shop.ID, Name: shop.Name, Active: shop.Active}
}
