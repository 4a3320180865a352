package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/shared"
)

// Parameter is an entry in the canonical dictionary of attribute names.
type Parameter struct {
	shared.BaseEntity
	Name string
}

// ListingParameter holds one attribute value of a listing.
type ListingParameter struct {
	ListingID   uuid.UUID
	ParameterID uuid.UUID
	Name        string
	Value       string
}

// Listing is a product as offered by a specific shop. Price, stock and model
// are per-shop. Every ingestion run replaces the shop's listing set with the
// feed's contents; a listing that stays in the feed keeps its id across runs,
// identified by (shop, external id).
type Listing struct {
	shared.BaseEntity
	ProductID  uuid.UUID
	ShopID     uuid.UUID
	ExternalID int
	Model      string
	Price      decimal.Decimal
	PriceRRC   decimal.Decimal
	Quantity   int
	Parameters []ListingParameter
}

// NewListing creates a listing for a product in a shop.
func NewListing(productID, shopID uuid.UUID, externalID int, model string, price, priceRRC decimal.Decimal, quantity int) (*Listing, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Listing product cannot be empty")
	}
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Listing shop cannot be empty")
	}
	if price.IsNegative() || priceRRC.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Listing price cannot be negative")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Listing quantity cannot be negative")
	}
	return &Listing{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		ShopID:     shopID,
		ExternalID: externalID,
		Model:      model,
		Price:      price,
		PriceRRC:   priceRRC,
		Quantity:   quantity,
	}, nil
}

// AddParameter appends an attribute value to the listing.
func (l *Listing) AddParameter(param *Parameter, value string) {
	l.Parameters = append(l.Parameters, ListingParameter{
		ListingID:   l.ID,
		ParameterID: param.ID,
		Name:        param.Name,
		Value:       value,
	})
}

// ListingDetail is a listing annotated with its product, category and shop
// context, as returned by catalog browse queries.
type ListingDetail struct {
	Listing
	ProductName  string
	CategoryID   int
	CategoryName string
	ShopName     string
}
