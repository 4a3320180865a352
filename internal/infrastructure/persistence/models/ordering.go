package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/ordering"
)

// OrderModel is the persistence model for the Order aggregate. The partial
// unique index on (account_id) WHERE status = 'basket' enforces at most one
// basket per account; it is created by migrations, not by AutoMigrate.
type OrderModel struct {
	BaseModel
	AccountID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Status    ordering.OrderStatus `gorm:"type:varchar(20);not null;default:'basket';index"`
	ContactID *uuid.UUID           `gorm:"type:uuid"`
	PlacedAt  *time.Time
	Items     []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order aggregate.
// Item annotations (price, names) are filled separately from the catalog.
func (m *OrderModel) ToDomain() *ordering.Order {
	order := &ordering.Order{
		BaseEntity: m.BaseModel.ToDomain(),
		AccountID:  m.AccountID,
		Status:     m.Status,
		ContactID:  m.ContactID,
		PlacedAt:   m.PlacedAt,
	}
	for i := range m.Items {
		order.Items = append(order.Items, *m.Items[i].ToDomain())
	}
	return order
}

// OrderModelFromDomain creates a new persistence model from a domain Order.
func OrderModelFromDomain(o *ordering.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomainBaseEntity(o.BaseEntity)
	m.AccountID = o.AccountID
	m.Status = o.Status
	m.ContactID = o.ContactID
	m.PlacedAt = o.PlacedAt
	for i := range o.Items {
		m.Items = append(m.Items, *OrderItemModelFromDomain(&o.Items[i]))
	}
	return m
}

// OrderItemModel is the persistence model for one order line. The shop id is
// denormalized from the listing at add time; listings are replaced wholesale
// by feed imports, so the line must not depend on its listing row surviving.
// Prices are read from the live catalog.
type OrderItemModel struct {
	BaseModel
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;index"`
	ShopID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem.
func (m *OrderItemModel) ToDomain() *ordering.OrderItem {
	return &ordering.OrderItem{
		BaseEntity: m.BaseModel.ToDomain(),
		OrderID:    m.OrderID,
		ListingID:  m.ListingID,
		ShopID:     m.ShopID,
		Quantity:   m.Quantity,
	}
}

// OrderItemModelFromDomain creates a new persistence model from a domain OrderItem.
func OrderItemModelFromDomain(i *ordering.OrderItem) *OrderItemModel {
	m := &OrderItemModel{}
	m.FromDomainBaseEntity(i.BaseEntity)
	m.OrderID = i.OrderID
	m.ListingID = i.ListingID
	m.ShopID = i.ShopID
	m.Quantity = i.Quantity
	return m
}

// ContactModel is the persistence model for delivery contacts.
type ContactModel struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	City      string    `gorm:"type:varchar(100);not null"`
	Street    string    `gorm:"type:varchar(200);not null"`
	House     string    `gorm:"type:varchar(20)"`
	Building  string    `gorm:"type:varchar(20)"`
	Apartment string    `gorm:"type:varchar(20)"`
	Phone     string    `gorm:"type:varchar(30);not null"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the persistence model to a domain Contact.
func (m *ContactModel) ToDomain() *ordering.Contact {
	return &ordering.Contact{
		BaseEntity: m.BaseModel.ToDomain(),
		AccountID:  m.AccountID,
		City:       m.City,
		Street:     m.Street,
		House:      m.House,
		Building:   m.Building,
		Apartment:  m.Apartment,
		Phone:      m.Phone,
	}
}

// ContactModelFromDomain creates a new persistence model from a domain Contact.
func ContactModelFromDomain(c *ordering.Contact) *ContactModel {
	m := &ContactModel{}
	m.FromDomainBaseEntity(c.BaseEntity)
	m.AccountID = c.AccountID
	m.City = c.City
	m.Street = c.Street
	m.House = c.House
	m.Building = c.Building
	m.Apartment = c.Apartment
	m.Phone = c.Phone
	return m
}
