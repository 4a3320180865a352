package catalog

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/cache"
	"github.com/markethub/backend/internal/infrastructure/feed"
)

// IngestService imports supplier price lists. Each run replaces the whole
// catalog of the owner's shop in one transaction; runs for the same owner are
// serialized through the shop locker.
type IngestService struct {
	store   catalog.Store
	fetcher feed.Fetcher
	parser  *feed.Parser
	locker  cache.ShopLocker
	lockTTL time.Duration
	logger  *zap.Logger
}

// NewIngestService creates a new IngestService
func NewIngestService(
	store catalog.Store,
	fetcher feed.Fetcher,
	parser *feed.Parser,
	locker cache.ShopLocker,
	lockTTL time.Duration,
	logger *zap.Logger,
) *IngestService {
	return &IngestService{
		store:   store,
		fetcher: fetcher,
		parser:  parser,
		locker:  locker,
		lockTTL: lockTTL,
		logger:  logger,
	}
}

// IngestFromURL downloads, validates and imports a feed on behalf of the
// shop owner. A rejected document leaves the previous catalog untouched.
func (s *IngestService) IngestFromURL(ctx context.Context, ownerID uuid.UUID, feedURL string) (*IngestResult, error) {
	if err := validateFeedURL(feedURL); err != nil {
		return nil, err
	}

	release, acquired, err := s.locker.Acquire(ctx, ownerID.String(), s.lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, shared.NewDomainError("INGEST_IN_PROGRESS", "Another import for this shop is already running")
	}
	defer release()

	started := time.Now()
	s.logger.Info("Feed ingestion started",
		zap.String("owner_id", ownerID.String()),
		zap.String("feed_url", feedURL),
	)

	raw, err := s.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		s.logger.Warn("Feed fetch failed", zap.String("feed_url", feedURL), zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeFetchFailed, "Could not download the price list")
	}

	doc, err := s.parser.Parse(raw)
	if err != nil {
		s.logger.Warn("Feed rejected", zap.String("feed_url", feedURL), zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeParseFailed, err.Error())
	}

	result, err := s.Import(ctx, ownerID, doc)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Feed ingestion completed",
		zap.String("shop_id", result.ShopID.String()),
		zap.String("shop", result.ShopName),
		zap.Int("categories", result.Categories),
		zap.Int("listings", result.Listings),
		zap.Duration("took", time.Since(started)),
	)
	return result, nil
}

// validateFeedURL rejects URLs the fetcher could never download, before any
// lock is taken or request sent.
func validateFeedURL(feedURL string) error {
	parsed, err := url.ParseRequestURI(feedURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return shared.NewValidationError("Feed URL must be an absolute http or https URL")
	}
	return nil
}

// Import writes an already validated feed into the catalog. The whole write
// runs in one transaction, so concurrent readers see either the previous
// listings or the new ones.
func (s *IngestService) Import(ctx context.Context, ownerID uuid.UUID, doc *catalog.Feed) (*IngestResult, error) {
	result := &IngestResult{ShopName: doc.Shop}

	err := s.store.Transaction(ctx, func(tx catalog.Store) error {
		shop, err := tx.UpsertShop(ctx, doc.Shop, ownerID)
		if err != nil {
			return err
		}
		result.ShopID = shop.ID

		for _, c := range doc.Categories {
			if _, err := tx.UpsertCategory(ctx, c.ID, c.Name); err != nil {
				return err
			}
			if err := tx.AttachShopCategory(ctx, c.ID, shop.ID); err != nil {
				return err
			}
		}
		result.Categories = len(doc.Categories)

		keep := make([]int, 0, len(doc.Goods))
		for _, good := range doc.Goods {
			product, err := tx.UpsertProduct(ctx, good.Name, good.Category)
			if err != nil {
				return err
			}

			listing, err := catalog.NewListing(
				product.ID,
				shop.ID,
				good.ID,
				good.Model,
				decimal.NewFromFloat(good.Price),
				decimal.NewFromFloat(good.PriceRRC),
				good.Quantity,
			)
			if err != nil {
				return err
			}

			for name, value := range good.Parameters {
				param, err := tx.UpsertParameter(ctx, name)
				if err != nil {
					return err
				}
				listing.AddParameter(param, value)
			}

			if err := tx.UpsertListing(ctx, listing); err != nil {
				return err
			}
			keep = append(keep, good.ID)
		}

		// Drop what the feed no longer carries; listings restated by the
		// feed kept their ids through the upserts above.
		if err := tx.PruneShopListings(ctx, shop.ID, keep); err != nil {
			return err
		}
		result.Listings = len(doc.Goods)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
