package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/ordering"
)

// ItemRequest adds one listing line to the basket. The shop must be the one
// actually offering the listing; the pair is checked against the catalog.
type ItemRequest struct {
	ListingID uuid.UUID `json:"listing_id" binding:"required"`
	ShopID    uuid.UUID `json:"shop_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// ItemUpdateRequest sets the quantity of an existing basket line
type ItemUpdateRequest struct {
	ID       uuid.UUID `json:"id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,gt=0"`
}

// OrderItemResponse is one order line with its catalog annotations.
type OrderItemResponse struct {
	ID           uuid.UUID         `json:"id"`
	ListingID    uuid.UUID         `json:"listing_id"`
	Quantity     int               `json:"quantity"`
	Price        decimal.Decimal   `json:"price"`
	Subtotal     decimal.Decimal   `json:"subtotal"`
	ProductName  string            `json:"product_name"`
	Model        string            `json:"model,omitempty"`
	ShopID       uuid.UUID         `json:"shop_id"`
	ShopName     string            `json:"shop_name"`
	CategoryID   int               `json:"category_id"`
	CategoryName string            `json:"category_name"`
	Parameters   map[string]string `json:"parameters,omitempty"`
}

// OrderResponse is an order (basket or placed) with its computed total.
type OrderResponse struct {
	ID        uuid.UUID           `json:"id"`
	Status    string              `json:"status"`
	ContactID *uuid.UUID          `json:"contact_id,omitempty"`
	PlacedAt  *time.Time          `json:"placed_at,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	Items     []OrderItemResponse `json:"items"`
	Total     decimal.Decimal     `json:"total"`
}

// ContactRequest creates a delivery contact
type ContactRequest struct {
	City      string `json:"city" binding:"required"`
	Street    string `json:"street" binding:"required"`
	House     string `json:"house"`
	Building  string `json:"building"`
	Apartment string `json:"apartment"`
	Phone     string `json:"phone" binding:"required"`
}

// ContactResponse is a stored delivery contact
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	City      string    `json:"city"`
	Street    string    `json:"street"`
	House     string    `json:"house,omitempty"`
	Building  string    `json:"building,omitempty"`
	Apartment string    `json:"apartment,omitempty"`
	Phone     string    `json:"phone"`
}

// ToOrderResponse converts an order to its API shape
func ToOrderResponse(order *ordering.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ID:           item.ID,
			ListingID:    item.ListingID,
			Quantity:     item.Quantity,
			Price:        item.Price,
			Subtotal:     item.Subtotal(),
			ProductName:  item.ProductName,
			Model:        item.Model,
			ShopID:       item.ShopID,
			ShopName:     item.ShopName,
			CategoryID:   item.CategoryID,
			CategoryName: item.CategoryName,
			Parameters:   item.Parameters,
		}
	}
	return &OrderResponse{
		ID:        order.ID,
		Status:    string(order.Status),
		ContactID: order.ContactID,
		PlacedAt:  order.PlacedAt,
		CreatedAt: order.CreatedAt,
		Items:     items,
		Total:     order.TotalSum(),
	}
}

// ToContactResponse converts a contact to its API shape
func ToContactResponse(contact *ordering.Contact) ContactResponse {
	return ContactResponse{
		ID:        contact.ID,
		City:      contact.City,
		Street:    contact.Street,
		House:     contact.House,
		Building:  contact.Building,
		Apartment: contact.Apartment,
		Phone:     contact.Phone,
	}
}
