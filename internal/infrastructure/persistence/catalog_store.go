package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/persistence/models"
)

// GormCatalogStore implements catalog.Store and catalog.ListingQuery using GORM.
type GormCatalogStore struct {
	db *gorm.DB
}

// NewGormCatalogStore creates a new GormCatalogStore
func NewGormCatalogStore(db *gorm.DB) *GormCatalogStore {
	return &GormCatalogStore{db: db}
}

// Transaction runs fn against a store bound to a database transaction.
func (s *GormCatalogStore) Transaction(ctx context.Context, fn func(catalog.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormCatalogStore{db: tx})
	})
}

// UpsertShop finds or creates the shop identified by (name, owner). The
// insert-on-conflict-do-nothing plus re-select sequence keeps concurrent
// ingestions from failing on the uniqueness race.
func (s *GormCatalogStore) UpsertShop(ctx context.Context, name string, ownerID uuid.UUID) (*catalog.Shop, error) {
	shop, err := catalog.NewShop(name, ownerID)
	if err != nil {
		return nil, err
	}
	model := models.ShopModelFromDomain(shop)
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model).Error; err != nil {
		return nil, err
	}

	var found models.ShopModel
	if err := s.db.WithContext(ctx).
		Where("name = ? AND owner_id = ?", name, ownerID).
		First(&found).Error; err != nil {
		return nil, err
	}
	return found.ToDomain(), nil
}

// SaveShop persists changes to an existing shop.
func (s *GormCatalogStore) SaveShop(ctx context.Context, shop *catalog.Shop) error {
	model := models.ShopModelFromDomain(shop)
	result := s.db.WithContext(ctx).Model(&models.ShopModel{}).
		Where("id = ?", shop.ID).
		Updates(map[string]any{
			"name":       model.Name,
			"active":     model.Active,
			"feed_url":   model.FeedURL,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindShopByOwner returns the shop owned by the account.
func (s *GormCatalogStore) FindShopByOwner(ctx context.Context, ownerID uuid.UUID) (*catalog.Shop, error) {
	var model models.ShopModel
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListActiveShops returns all shops currently accepting orders.
func (s *GormCatalogStore) ListActiveShops(ctx context.Context) ([]catalog.Shop, error) {
	var found []models.ShopModel
	if err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name").
		Find(&found).Error; err != nil {
		return nil, err
	}
	shops := make([]catalog.Shop, 0, len(found))
	for i := range found {
		shops = append(shops, *found[i].ToDomain())
	}
	return shops, nil
}

// UpsertCategory creates the category or refreshes its name.
func (s *GormCatalogStore) UpsertCategory(ctx context.Context, id int, name string) (*catalog.Category, error) {
	model := models.CategoryModel{ID: id, Name: name}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).
		Create(&model).Error; err != nil {
		return nil, err
	}

	var found models.CategoryModel
	if err := s.db.WithContext(ctx).First(&found, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return found.ToDomain(), nil
}

// AttachShopCategory records that the shop's feed references the category.
// Associations accumulate; they are never removed by later feeds.
func (s *GormCatalogStore) AttachShopCategory(ctx context.Context, categoryID int, shopID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ShopCategoryModel{CategoryID: categoryID, ShopID: shopID}).Error
}

// ListCategories returns all known categories.
func (s *GormCatalogStore) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var found []models.CategoryModel
	if err := s.db.WithContext(ctx).Order("id").Find(&found).Error; err != nil {
		return nil, err
	}
	categories := make([]catalog.Category, 0, len(found))
	for i := range found {
		categories = append(categories, *found[i].ToDomain())
	}
	return categories, nil
}

// UpsertProduct finds or creates the product identified by (name, category).
func (s *GormCatalogStore) UpsertProduct(ctx context.Context, name string, categoryID int) (*catalog.Product, error) {
	product, err := catalog.NewProduct(name, categoryID)
	if err != nil {
		return nil, err
	}
	model := models.ProductModelFromDomain(product)
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model).Error; err != nil {
		return nil, err
	}

	var found models.ProductModel
	if err := s.db.WithContext(ctx).
		Where("name = ? AND category_id = ?", name, categoryID).
		First(&found).Error; err != nil {
		return nil, err
	}
	return found.ToDomain(), nil
}

// UpsertParameter finds or creates a parameter dictionary entry.
func (s *GormCatalogStore) UpsertParameter(ctx context.Context, name string) (*catalog.Parameter, error) {
	if name == "" {
		return nil, shared.NewValidationError("Parameter name cannot be empty")
	}
	model := models.ParameterModel{
		BaseModel: models.BaseModel{},
		Name:      name,
	}
	model.FromDomainBaseEntity(shared.NewBaseEntity())
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model).Error; err != nil {
		return nil, err
	}

	var found models.ParameterModel
	if err := s.db.WithContext(ctx).
		Where("name = ?", name).
		First(&found).Error; err != nil {
		return nil, err
	}
	return found.ToDomain(), nil
}

// UpsertListing inserts the listing or refreshes the row already holding its
// (shop, external id) pair. The stored id wins, so order lines referencing a
// listing survive re-imports of the same feed; parameter values are replaced.
func (s *GormCatalogStore) UpsertListing(ctx context.Context, listing *catalog.Listing) error {
	db := s.db.WithContext(ctx)

	model := models.ListingModelFromDomain(listing)
	params := model.Parameters
	model.Parameters = nil
	if err := db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "shop_id"}, {Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"product_id", "model", "price", "price_rrc", "quantity", "updated_at",
			}),
		}).
		Create(model).Error; err != nil {
		return err
	}

	var found models.ListingModel
	if err := db.
		Where("shop_id = ? AND external_id = ?", listing.ShopID, listing.ExternalID).
		First(&found).Error; err != nil {
		return err
	}
	listing.ID = found.ID
	listing.CreatedAt = found.CreatedAt

	if err := db.Where("listing_id = ?", found.ID).
		Delete(&models.ListingParameterModel{}).Error; err != nil {
		return err
	}
	if len(params) == 0 {
		return nil
	}
	for i := range params {
		params[i].ListingID = found.ID
	}
	for i := range listing.Parameters {
		listing.Parameters[i].ListingID = found.ID
	}
	return db.Create(&params).Error
}

// PruneShopListings removes the shop's listings that the latest feed no
// longer carries. Listing parameters are deleted explicitly so the wipe does
// not depend on database cascades.
func (s *GormCatalogStore) PruneShopListings(ctx context.Context, shopID uuid.UUID, keepExternalIDs []int) error {
	db := s.db.WithContext(ctx)

	doomed := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.ListingModel{}).
		Select("id").
		Where("shop_id = ?", shopID)
	if len(keepExternalIDs) > 0 {
		doomed = doomed.Where("external_id NOT IN ?", keepExternalIDs)
	}
	if err := db.
		Where("listing_id IN (?)", doomed).
		Delete(&models.ListingParameterModel{}).Error; err != nil {
		return err
	}

	del := db.Where("shop_id = ?", shopID)
	if len(keepExternalIDs) > 0 {
		del = del.Where("external_id NOT IN ?", keepExternalIDs)
	}
	return del.Delete(&models.ListingModel{}).Error
}

// Search returns annotated listings over active shops matching the filter.
func (s *GormCatalogStore) Search(ctx context.Context, filter catalog.ListingFilter) ([]catalog.ListingDetail, error) {
	var found []models.ListingModel
	query := s.db.WithContext(ctx).
		Preload("Parameters").
		Joins("JOIN shops ON shops.id = listings.shop_id").
		Where("shops.active = ?", true)

	if filter.ShopID != uuid.Nil {
		query = query.Where("listings.shop_id = ?", filter.ShopID)
	}
	if filter.CategoryID != 0 {
		query = query.
			Joins("JOIN products ON products.id = listings.product_id").
			Where("products.category_id = ?", filter.CategoryID)
	}

	if err := query.Order("listings.external_id").Find(&found).Error; err != nil {
		return nil, err
	}
	return s.annotateAll(ctx, found)
}

// annotateAll joins product, category and shop context onto listing rows
// with batched lookups.
func (s *GormCatalogStore) annotateAll(ctx context.Context, found []models.ListingModel) ([]catalog.ListingDetail, error) {
	if len(found) == 0 {
		return []catalog.ListingDetail{}, nil
	}

	productIDs := make([]uuid.UUID, 0, len(found))
	shopIDs := make([]uuid.UUID, 0, len(found))
	for i := range found {
		productIDs = append(productIDs, found[i].ProductID)
		shopIDs = append(shopIDs, found[i].ShopID)
	}

	var products []models.ProductModel
	if err := s.db.WithContext(ctx).Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	productsByID := make(map[uuid.UUID]models.ProductModel, len(products))
	categoryIDs := make([]int, 0, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
		categoryIDs = append(categoryIDs, p.CategoryID)
	}

	var categories []models.CategoryModel
	if err := s.db.WithContext(ctx).Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
		return nil, err
	}
	categoriesByID := make(map[int]models.CategoryModel, len(categories))
	for _, c := range categories {
		categoriesByID[c.ID] = c
	}

	var shops []models.ShopModel
	if err := s.db.WithContext(ctx).Where("id IN ?", shopIDs).Find(&shops).Error; err != nil {
		return nil, err
	}
	shopsByID := make(map[uuid.UUID]models.ShopModel, len(shops))
	for _, sh := range shops {
		shopsByID[sh.ID] = sh
	}

	details := make([]catalog.ListingDetail, 0, len(found))
	for i := range found {
		product := productsByID[found[i].ProductID]
		category := categoriesByID[product.CategoryID]
		shop := shopsByID[found[i].ShopID]
		details = append(details, catalog.ListingDetail{
			Listing:      *found[i].ToDomain(),
			ProductName:  product.Name,
			CategoryID:   category.ID,
			CategoryName: category.Name,
			ShopName:     shop.Name,
		})
	}
	return details, nil
}

// FindDetail returns one annotated listing, restricted to active shops.
func (s *GormCatalogStore) FindDetail(ctx context.Context, listingID uuid.UUID) (*catalog.ListingDetail, error) {
	var model models.ListingModel
	if err := s.db.WithContext(ctx).
		Preload("Parameters").
		Joins("JOIN shops ON shops.id = listings.shop_id").
		Where("shops.active = ? AND listings.id = ?", true, listingID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return s.annotate(ctx, &model)
}

// annotate joins product, category and shop context onto a listing row.
func (s *GormCatalogStore) annotate(ctx context.Context, model *models.ListingModel) (*catalog.ListingDetail, error) {
	var product models.ProductModel
	if err := s.db.WithContext(ctx).First(&product, "id = ?", model.ProductID).Error; err != nil {
		return nil, err
	}
	var category models.CategoryModel
	if err := s.db.WithContext(ctx).First(&category, "id = ?", product.CategoryID).Error; err != nil {
		return nil, err
	}
	var shop models.ShopModel
	if err := s.db.WithContext(ctx).First(&shop, "id = ?", model.ShopID).Error; err != nil {
		return nil, err
	}

	return &catalog.ListingDetail{
		Listing:      *model.ToDomain(),
		ProductName:  product.Name,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		ShopName:     shop.Name,
	}, nil
}
