package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/catalog"
)

// ShopModel is the persistence model for the Shop domain entity.
type ShopModel struct {
	BaseModel
	Name    string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_shop_name_owner,priority:1"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shop_name_owner,priority:2;index"`
	Active  bool      `gorm:"not null;default:true"`
	FeedURL string    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ShopModel) TableName() string {
	return "shops"
}

// ToDomain converts the persistence model to a domain Shop entity.
func (m *ShopModel) ToDomain() *catalog.Shop {
	return &catalog.Shop{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		OwnerID:    m.OwnerID,
		Active:     m.Active,
		FeedURL:    m.FeedURL,
	}
}

// FromDomain populates the persistence model from a domain Shop entity.
func (m *ShopModel) FromDomain(s *catalog.Shop) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Name = s.Name
	m.OwnerID = s.OwnerID
	m.Active = s.Active
	m.FeedURL = s.FeedURL
}

// ShopModelFromDomain creates a new persistence model from a domain Shop entity.
func ShopModelFromDomain(s *catalog.Shop) *ShopModel {
	m := &ShopModel{}
	m.FromDomain(s)
	return m
}

// CategoryModel is the persistence model for the Category domain entity.
// The primary key is the feed-supplied integer id, not a generated uuid.
type CategoryModel struct {
	ID        int       `gorm:"primary_key;autoIncrement:false"`
	Name      string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ShopCategoryModel is the accumulate-only association between shops and
// the categories their feeds have referenced.
type ShopCategoryModel struct {
	CategoryID int       `gorm:"primary_key;autoIncrement:false"`
	ShopID     uuid.UUID `gorm:"type:uuid;primary_key"`
}

// TableName returns the table name for GORM
func (ShopCategoryModel) TableName() string {
	return "shop_categories"
}

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	BaseModel
	Name       string `gorm:"type:varchar(200);not null;uniqueIndex:idx_product_name_category,priority:1"`
	CategoryID int    `gorm:"not null;uniqueIndex:idx_product_name_category,priority:2;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		CategoryID: m.CategoryID,
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.CategoryID = p.CategoryID
	return m
}

// ParameterModel is the persistence model for the Parameter dictionary.
type ParameterModel struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (ParameterModel) TableName() string {
	return "parameters"
}

// ToDomain converts the persistence model to a domain Parameter entity.
func (m *ParameterModel) ToDomain() *catalog.Parameter {
	return &catalog.Parameter{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
	}
}

// ListingModel is the persistence model for the Listing domain entity. The
// unique (shop, external id) pair lets feed imports upsert listings in place,
// keeping ids stable across re-imports.
type ListingModel struct {
	BaseModel
	ProductID  uuid.UUID               `gorm:"type:uuid;not null;index"`
	ShopID     uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex:idx_listings_shop_external,priority:1"`
	ExternalID int                     `gorm:"not null;uniqueIndex:idx_listings_shop_external,priority:2"`
	Model      string                  `gorm:"type:varchar(100)"`
	Price      decimal.Decimal         `gorm:"type:decimal(18,2);not null;default:0"`
	PriceRRC   decimal.Decimal         `gorm:"type:decimal(18,2);not null;default:0"`
	Quantity   int                     `gorm:"not null;default:0"`
	Parameters []ListingParameterModel `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ListingModel) TableName() string {
	return "listings"
}

// ToDomain converts the persistence model to a domain Listing entity.
func (m *ListingModel) ToDomain() *catalog.Listing {
	listing := &catalog.Listing{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		ShopID:     m.ShopID,
		ExternalID: m.ExternalID,
		Model:      m.Model,
		Price:      m.Price,
		PriceRRC:   m.PriceRRC,
		Quantity:   m.Quantity,
	}
	for _, p := range m.Parameters {
		listing.Parameters = append(listing.Parameters, catalog.ListingParameter{
			ListingID:   p.ListingID,
			ParameterID: p.ParameterID,
			Name:        p.ParameterName,
			Value:       p.Value,
		})
	}
	return listing
}

// ListingModelFromDomain creates a new persistence model from a domain Listing entity.
func ListingModelFromDomain(l *catalog.Listing) *ListingModel {
	m := &ListingModel{}
	m.FromDomainBaseEntity(l.BaseEntity)
	m.ProductID = l.ProductID
	m.ShopID = l.ShopID
	m.ExternalID = l.ExternalID
	m.Model = l.Model
	m.Price = l.Price
	m.PriceRRC = l.PriceRRC
	m.Quantity = l.Quantity
	for _, p := range l.Parameters {
		m.Parameters = append(m.Parameters, ListingParameterModel{
			ListingID:     l.ID,
			ParameterID:   p.ParameterID,
			ParameterName: p.Name,
			Value:         p.Value,
		})
	}
	return m
}

// ListingParameterModel holds one attribute value of a listing. ParameterName
// is denormalized so listing reads avoid a join against the dictionary.
type ListingParameterModel struct {
	ListingID     uuid.UUID `gorm:"type:uuid;primary_key"`
	ParameterID   uuid.UUID `gorm:"type:uuid;primary_key"`
	ParameterName string    `gorm:"type:varchar(100);not null"`
	Value         string    `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (ListingParameterModel) TableName() string {
	return "listing_parameters"
}
