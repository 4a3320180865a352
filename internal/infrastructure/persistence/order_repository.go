package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/markethub/backend/internal/domain/ordering"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements ordering.OrderRepository using GORM.
// Basket mutations run in a transaction that locks the basket row, so
// concurrent requests from one account serialize.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindOrCreateBasket returns the account's basket, creating one when absent.
func (r *GormOrderRepository) FindOrCreateBasket(ctx context.Context, accountID uuid.UUID) (*ordering.Order, error) {
	var model models.OrderModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Items").
			Where("account_id = ? AND status = ?", accountID, ordering.StatusBasket).
			First(&model).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		basket, err := ordering.NewBasket(accountID)
		if err != nil {
			return err
		}
		created := models.OrderModelFromDomain(basket)
		if err := tx.Create(created).Error; err != nil {
			// A concurrent request created the basket first; the partial
			// unique index rejects ours, so re-read theirs.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return tx.Preload("Items").
					Where("account_id = ? AND status = ?", accountID, ordering.StatusBasket).
					First(&model).Error
			}
			return err
		}
		model = *created
		return nil
	})
	if err != nil {
		return nil, err
	}

	order := model.ToDomain()
	if err := r.annotateItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// FindBasket returns the account's basket with annotated items.
func (r *GormOrderRepository) FindBasket(ctx context.Context, accountID uuid.UUID) (*ordering.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("account_id = ? AND status = ?", accountID, ordering.StatusBasket).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	order := model.ToDomain()
	if err := r.annotateItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// AppendItems adds lines to the basket. Duplicate listings append as extra
// lines; nothing merges.
func (r *GormOrderRepository) AppendItems(ctx context.Context, basketID uuid.UUID, items []ordering.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBasket(tx, basketID); err != nil {
			return err
		}
		rows := make([]models.OrderItemModel, 0, len(items))
		for i := range items {
			rows = append(rows, *models.OrderItemModelFromDomain(&items[i]))
		}
		return tx.Create(&rows).Error
	})
}

// UpdateItemQuantities sets quantities of existing basket lines. Ids not
// belonging to the basket are ignored.
func (r *GormOrderRepository) UpdateItemQuantities(ctx context.Context, basketID uuid.UUID, quantities map[uuid.UUID]int) error {
	if len(quantities) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBasket(tx, basketID); err != nil {
			return err
		}
		for itemID, quantity := range quantities {
			if quantity <= 0 {
				return shared.NewValidationError("Item quantity must be positive")
			}
			if err := tx.Model(&models.OrderItemModel{}).
				Where("id = ? AND order_id = ?", itemID, basketID).
				Update("quantity", quantity).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteItems removes basket lines by item id. Unknown ids are ignored.
func (r *GormOrderRepository) DeleteItems(ctx context.Context, basketID uuid.UUID, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBasket(tx, basketID); err != nil {
			return err
		}
		return tx.Where("order_id = ? AND id IN ?", basketID, itemIDs).
			Delete(&models.OrderItemModel{}).Error
	})
}

// Place persists the basket-to-placed transition. The basket row is locked
// and its state re-checked inside the transaction, so two concurrent
// placements cannot both succeed.
func (r *GormOrderRepository) Place(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.OrderModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, "id = ?", order.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if current.Status != ordering.StatusBasket {
			return shared.NewDomainError("INVALID_STATE", "Order is no longer a basket")
		}

		var itemCount int64
		if err := tx.Model(&models.OrderItemModel{}).
			Where("order_id = ?", order.ID).
			Count(&itemCount).Error; err != nil {
			return err
		}
		if itemCount == 0 {
			return shared.NewDomainError("EMPTY_BASKET", "Cannot place an order with no items")
		}

		return tx.Model(&models.OrderModel{}).
			Where("id = ?", order.ID).
			Updates(map[string]any{
				"status":     order.Status,
				"contact_id": order.ContactID,
				"placed_at":  order.PlacedAt,
				"updated_at": order.UpdatedAt,
			}).Error
	})
}

// Save persists a status change on a placed order.
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	result := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":     order.Status,
			"updated_at": order.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID returns an order with annotated items.
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	order := model.ToDomain()
	if err := r.annotateItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListPlacedForAccount returns the account's placed orders, newest first.
func (r *GormOrderRepository) ListPlacedForAccount(ctx context.Context, accountID uuid.UUID) ([]ordering.Order, error) {
	var found []models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("account_id = ? AND status <> ?", accountID, ordering.StatusBasket).
		Order("placed_at DESC").
		Find(&found).Error; err != nil {
		return nil, err
	}

	orders := make([]ordering.Order, 0, len(found))
	for i := range found {
		order := found[i].ToDomain()
		if err := r.annotateItems(ctx, order); err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

// ListIncomingForShop returns placed orders containing the shop's lines,
// with items restricted to that shop. Matching runs on the shop id stored
// with each line, so orders stay visible after a feed replaces the listings
// they were built from.
func (r *GormOrderRepository) ListIncomingForShop(ctx context.Context, shopID uuid.UUID) ([]ordering.Order, error) {
	var orderIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.OrderItemModel{}).
		Distinct("order_items.order_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.shop_id = ? AND orders.status <> ?", shopID, ordering.StatusBasket).
		Pluck("order_items.order_id", &orderIDs).Error; err != nil {
		return nil, err
	}
	if len(orderIDs) == 0 {
		return []ordering.Order{}, nil
	}

	var found []models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id IN ?", orderIDs).
		Order("placed_at DESC").
		Find(&found).Error; err != nil {
		return nil, err
	}

	orders := make([]ordering.Order, 0, len(found))
	for i := range found {
		order := found[i].ToDomain()
		if err := r.annotateItems(ctx, order); err != nil {
			return nil, err
		}
		// Keep only the lines sold by this shop.
		shopItems := order.Items[:0]
		for _, item := range order.Items {
			if item.ShopID == shopID {
				shopItems = append(shopItems, item)
			}
		}
		order.Items = shopItems
		orders = append(orders, *order)
	}
	return orders, nil
}

// lockBasket takes a row lock on the basket and verifies it still is one.
func lockBasket(tx *gorm.DB, basketID uuid.UUID) error {
	var basket models.OrderModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&basket, "id = ?", basketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return err
	}
	if basket.Status != ordering.StatusBasket {
		return shared.NewDomainError("INVALID_STATE", "Order is no longer a basket")
	}
	return nil
}

// annotateItems fills item prices and naming from the live catalog. Lines
// whose listing was replaced away by a newer feed keep zero price and empty
// product names; the shop name still resolves through the stored shop id.
func (r *GormOrderRepository) annotateItems(ctx context.Context, order *ordering.Order) error {
	if len(order.Items) == 0 {
		return nil
	}

	listingIDs := make([]uuid.UUID, 0, len(order.Items))
	shopIDs := make([]uuid.UUID, 0, len(order.Items))
	for i := range order.Items {
		listingIDs = append(listingIDs, order.Items[i].ListingID)
		shopIDs = append(shopIDs, order.Items[i].ShopID)
	}

	var listings []models.ListingModel
	if err := r.db.WithContext(ctx).
		Preload("Parameters").
		Where("id IN ?", listingIDs).
		Find(&listings).Error; err != nil {
		return err
	}
	listingsByID := make(map[uuid.UUID]models.ListingModel, len(listings))
	productIDs := make([]uuid.UUID, 0, len(listings))
	for _, l := range listings {
		listingsByID[l.ID] = l
		productIDs = append(productIDs, l.ProductID)
	}

	productsByID := make(map[uuid.UUID]models.ProductModel)
	categoriesByID := make(map[int]models.CategoryModel)

	if len(productIDs) > 0 {
		var products []models.ProductModel
		if err := r.db.WithContext(ctx).Where("id IN ?", productIDs).Find(&products).Error; err != nil {
			return err
		}
		categoryIDs := make([]int, 0, len(products))
		for _, p := range products {
			productsByID[p.ID] = p
			categoryIDs = append(categoryIDs, p.CategoryID)
		}

		var categories []models.CategoryModel
		if err := r.db.WithContext(ctx).Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
			return err
		}
		for _, c := range categories {
			categoriesByID[c.ID] = c
		}
	}

	var shops []models.ShopModel
	if err := r.db.WithContext(ctx).Where("id IN ?", shopIDs).Find(&shops).Error; err != nil {
		return err
	}
	shopsByID := make(map[uuid.UUID]models.ShopModel, len(shops))
	for _, sh := range shops {
		shopsByID[sh.ID] = sh
	}

	for i := range order.Items {
		order.Items[i].ShopName = shopsByID[order.Items[i].ShopID].Name

		listing, ok := listingsByID[order.Items[i].ListingID]
		if !ok {
			continue
		}
		product := productsByID[listing.ProductID]
		category := categoriesByID[product.CategoryID]

		order.Items[i].Price = listing.Price
		order.Items[i].ProductName = product.Name
		order.Items[i].Model = listing.Model
		order.Items[i].CategoryID = category.ID
		order.Items[i].CategoryName = category.Name
		if len(listing.Parameters) > 0 {
			params := make(map[string]string, len(listing.Parameters))
			for _, p := range listing.Parameters {
				params[p.ParameterName] = p.Value
			}
			order.Items[i].Parameters = params
		}
	}
	return nil
}
