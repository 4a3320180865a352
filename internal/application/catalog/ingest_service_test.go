package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/cache"
	"github.com/markethub/backend/internal/infrastructure/feed"
)

// ============================================================================
// Mocks
// ============================================================================

// MockStore is a mock implementation of catalog.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Transaction(ctx context.Context, fn func(catalog.Store) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(m)
}

func (m *MockStore) UpsertShop(ctx context.Context, name string, ownerID uuid.UUID) (*catalog.Shop, error) {
	args := m.Called(ctx, name, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Shop), args.Error(1)
}

func (m *MockStore) SaveShop(ctx context.Context, shop *catalog.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}

func (m *MockStore) FindShopByOwner(ctx context.Context, ownerID uuid.UUID) (*catalog.Shop, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Shop), args.Error(1)
}

func (m *MockStore) ListActiveShops(ctx context.Context) ([]catalog.Shop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Shop), args.Error(1)
}

func (m *MockStore) UpsertCategory(ctx context.Context, id int, name string) (*catalog.Category, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockStore) AttachShopCategory(ctx context.Context, categoryID int, shopID uuid.UUID) error {
	args := m.Called(ctx, categoryID, shopID)
	return args.Error(0)
}

func (m *MockStore) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockStore) UpsertProduct(ctx context.Context, name string, categoryID int) (*catalog.Product, error) {
	args := m.Called(ctx, name, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockStore) UpsertParameter(ctx context.Context, name string) (*catalog.Parameter, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Parameter), args.Error(1)
}

func (m *MockStore) UpsertListing(ctx context.Context, listing *catalog.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockStore) PruneShopListings(ctx context.Context, shopID uuid.UUID, keepExternalIDs []int) error {
	args := m.Called(ctx, shopID, keepExternalIDs)
	return args.Error(0)
}

// MockFetcher is a mock implementation of feed.Fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	args := m.Called(ctx, feedURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// ============================================================================
// Fixtures
// ============================================================================

const testFeed = `shop: Connection Hub
categories:
  - id: 224
    name: Smartphones
goods:
  - id: 4216292
    category: 224
    name: Smartphone Alpha
    model: alpha-10
    price: 110.50
    price_rrc: 116.00
    quantity: 14
    parameters:
      "Color": "black"
  - id: 4216313
    category: 224
    name: Smartphone Beta
    model: beta-256
    price: 65.00
    price_rrc: 69.90
    quantity: 7
`

func newIngestService(store *MockStore, fetcher *MockFetcher) *IngestService {
	return NewIngestService(
		store,
		fetcher,
		feed.NewParser(),
		cache.NewLocalShopLocker(),
		time.Minute,
		zap.NewNop(),
	)
}

func mustShop(t *testing.T, name string, ownerID uuid.UUID) *catalog.Shop {
	t.Helper()
	shop, err := catalog.NewShop(name, ownerID)
	require.NoError(t, err)
	return shop
}

// ============================================================================
// Tests
// ============================================================================

func TestIngestService_IngestFromURL(t *testing.T) {
	store := new(MockStore)
	fetcher := new(MockFetcher)
	svc := newIngestService(store, fetcher)

	ownerID := uuid.New()
	shop := mustShop(t, "Connection Hub", ownerID)
	product := &catalog.Product{BaseEntity: shared.NewBaseEntity(), Name: "x", CategoryID: 224}
	param := &catalog.Parameter{BaseEntity: shared.NewBaseEntity(), Name: "Color"}

	fetcher.On("Fetch", mock.Anything, "https://supplier.example.com/feed.yaml").
		Return([]byte(testFeed), nil)
	store.On("Transaction", mock.Anything).Return(nil)
	store.On("UpsertShop", mock.Anything, "Connection Hub", ownerID).Return(shop, nil)
	store.On("UpsertCategory", mock.Anything, 224, "Smartphones").
		Return(&catalog.Category{ID: 224, Name: "Smartphones"}, nil)
	store.On("AttachShopCategory", mock.Anything, 224, shop.ID).Return(nil)
	store.On("UpsertProduct", mock.Anything, "Smartphone Alpha", 224).Return(product, nil)
	store.On("UpsertProduct", mock.Anything, "Smartphone Beta", 224).Return(product, nil)
	store.On("UpsertParameter", mock.Anything, "Color").Return(param, nil)
	store.On("UpsertListing", mock.Anything, mock.AnythingOfType("*catalog.Listing")).Return(nil)
	store.On("PruneShopListings", mock.Anything, shop.ID, []int{4216292, 4216313}).Return(nil)

	result, err := svc.IngestFromURL(context.Background(), ownerID, "https://supplier.example.com/feed.yaml")
	require.NoError(t, err)

	assert.Equal(t, shop.ID, result.ShopID)
	assert.Equal(t, "Connection Hub", result.ShopName)
	assert.Equal(t, 1, result.Categories)
	assert.Equal(t, 2, result.Listings)

	store.AssertNumberOfCalls(t, "UpsertListing", 2)
	store.AssertNumberOfCalls(t, "PruneShopListings", 1)
}

func TestIngestService_FetchFailure(t *testing.T) {
	store := new(MockStore)
	fetcher := new(MockFetcher)
	svc := newIngestService(store, fetcher)

	fetcher.On("Fetch", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	_, err := svc.IngestFromURL(context.Background(), uuid.New(), "https://supplier.example.com/feed.yaml")
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeFetchFailed, domainErr.Code)
	store.AssertNotCalled(t, "Transaction", mock.Anything)
}

func TestIngestService_RejectsMalformedURL(t *testing.T) {
	store := new(MockStore)
	fetcher := new(MockFetcher)
	svc := newIngestService(store, fetcher)

	for _, feedURL := range []string{"", "not a url", "ftp://supplier.example.com/feed.yaml", "/relative/feed.yaml"} {
		_, err := svc.IngestFromURL(context.Background(), uuid.New(), feedURL)
		require.Error(t, err, "url %q must be rejected", feedURL)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
	}
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestIngestService_InvalidDocument(t *testing.T) {
	store := new(MockStore)
	fetcher := new(MockFetcher)
	svc := newIngestService(store, fetcher)

	fetcher.On("Fetch", mock.Anything, mock.Anything).
		Return([]byte("shop: Broken\ngoods: []\n"), nil)

	_, err := svc.IngestFromURL(context.Background(), uuid.New(), "https://supplier.example.com/feed.yaml")
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeParseFailed, domainErr.Code)
	store.AssertNotCalled(t, "Transaction", mock.Anything)
}

func TestIngestService_ConcurrentRunRejected(t *testing.T) {
	store := new(MockStore)
	fetcher := new(MockFetcher)
	locker := cache.NewLocalShopLocker()
	svc := NewIngestService(store, fetcher, feed.NewParser(), locker, time.Minute, zap.NewNop())

	ownerID := uuid.New()
	release, acquired, err := locker.Acquire(context.Background(), ownerID.String(), time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)
	defer release()

	_, err = svc.IngestFromURL(context.Background(), ownerID, "https://supplier.example.com/feed.yaml")
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INGEST_IN_PROGRESS", domainErr.Code)
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestIngestService_TransactionRollsBackOnError(t *testing.T) {
	store := new(MockStore)
	fetcher := new(MockFetcher)
	svc := newIngestService(store, fetcher)

	ownerID := uuid.New()
	shop := mustShop(t, "Connection Hub", ownerID)

	fetcher.On("Fetch", mock.Anything, mock.Anything).Return([]byte(testFeed), nil)
	store.On("Transaction", mock.Anything).Return(nil)
	store.On("UpsertShop", mock.Anything, "Connection Hub", ownerID).Return(shop, nil)
	store.On("UpsertCategory", mock.Anything, 224, "Smartphones").
		Return(nil, errors.New("constraint violation"))

	_, err := svc.IngestFromURL(context.Background(), ownerID, "https://supplier.example.com/feed.yaml")
	require.Error(t, err)
	store.AssertNotCalled(t, "PruneShopListings", mock.Anything, mock.Anything, mock.Anything)
}
