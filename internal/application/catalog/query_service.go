package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/catalog"
)

// QueryService serves buyer-facing catalog reads. Only listings of active
// shops are ever returned.
type QueryService struct {
	store catalog.Store
	query catalog.ListingQuery
}

// NewQueryService creates a new QueryService
func NewQueryService(store catalog.Store, query catalog.ListingQuery) *QueryService {
	return &QueryService{store: store, query: query}
}

// SearchListings returns listings matching the filter
func (s *QueryService) SearchListings(ctx context.Context, filter SearchFilter) ([]ListingResponse, error) {
	details, err := s.query.Search(ctx, catalog.ListingFilter{
		ShopID:     filter.ShopID,
		CategoryID: filter.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]ListingResponse, len(details))
	for i := range details {
		responses[i] = ToListingResponse(&details[i])
	}
	return responses, nil
}

// GetListing returns one listing with its full context
func (s *QueryService) GetListing(ctx context.Context, id uuid.UUID) (*ListingResponse, error) {
	detail, err := s.query.FindDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToListingResponse(detail)
	return &response, nil
}

// ListCategories returns every known category
func (s *QueryService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses, nil
}

// ListShops returns every shop currently accepting orders
func (s *QueryService) ListShops(ctx context.Context) ([]ShopResponse, error) {
	shops, err := s.store.ListActiveShops(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ShopResponse, len(shops))
	for i := range shops {
		responses[i] = ToShopResponse(&shops[i])
	}
	return responses, nil
}
