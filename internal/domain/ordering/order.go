package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/shared"
)

// OrderStatus is the lifecycle state of an order. Every account has at most
// one order in StatusBasket; placement moves it to StatusNew and the partner
// workflow advances it from there.
type OrderStatus string

const (
	StatusBasket    OrderStatus = "basket"
	StatusNew       OrderStatus = "new"
	StatusConfirmed OrderStatus = "confirmed"
	StatusAssembled OrderStatus = "assembled"
	StatusSent      OrderStatus = "sent"
	StatusDelivered OrderStatus = "delivered"
	StatusCanceled  OrderStatus = "canceled"
)

// IsValid checks if the status is a known one.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusBasket, StatusNew, StatusConfirmed, StatusAssembled, StatusSent, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// IsPlaced reports whether the order has left the basket stage.
func (s OrderStatus) IsPlaced() bool {
	return s.IsValid() && s != StatusBasket
}

// CanTransitionTo checks if a direct transition to the target status is
// allowed. Cancellation is possible from any non-terminal placed state.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	allowed, ok := statusTransitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusBasket:    {StatusNew},
	StatusNew:       {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusAssembled, StatusCanceled},
	StatusAssembled: {StatusSent, StatusCanceled},
	StatusSent:      {StatusDelivered, StatusCanceled},
	StatusDelivered: {},
	StatusCanceled:  {},
}

// OrderItem is one line of an order. It references a listing by id and keeps
// the selling shop denormalized, so the line stays attributable to its shop
// even after a later feed replaces the listing. Price and naming are
// annotated from the live catalog when the order is loaded, so totals always
// reflect current shop prices.
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID
	ListingID uuid.UUID
	ShopID    uuid.UUID
	Quantity  int

	// Read-time catalog annotations, not persisted with the item.
	Price        decimal.Decimal
	ProductName  string
	Model        string
	ShopName     string
	CategoryID   int
	CategoryName string
	Parameters   map[string]string
}

// Subtotal is quantity times the annotated unit price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the aggregate behind both the basket and placed orders; the two
// differ only by status. A basket has no contact until placement.
type Order struct {
	shared.BaseEntity
	AccountID uuid.UUID
	Status    OrderStatus
	ContactID *uuid.UUID
	PlacedAt  *time.Time
	Items     []OrderItem
}

// NewBasket creates an empty basket for the account.
func NewBasket(accountID uuid.UUID) (*Order, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Order account cannot be empty")
	}
	return &Order{
		BaseEntity: shared.NewBaseEntity(),
		AccountID:  accountID,
		Status:     StatusBasket,
	}, nil
}

// NewItem creates an order line for a listing sold by the given shop.
func NewItem(orderID, listingID, shopID uuid.UUID, quantity int) (*OrderItem, error) {
	if listingID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LISTING", "Order item listing cannot be empty")
	}
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Order item shop cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Order item quantity must be positive")
	}
	return &OrderItem{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		ListingID:  listingID,
		ShopID:     shopID,
		Quantity:   quantity,
	}, nil
}

// TotalSum computes the order total from the annotated item prices.
func (o *Order) TotalSum() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Place converts the basket into a placed order bound to a delivery contact.
func (o *Order) Place(contactID uuid.UUID) error {
	if o.Status != StatusBasket {
		return shared.NewDomainError("INVALID_STATE", "Only a basket can be placed")
	}
	if contactID == uuid.Nil {
		return shared.NewDomainError("INVALID_CONTACT", "A delivery contact is required to place an order")
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_BASKET", "Cannot place an order with no items")
	}
	now := time.Now()
	o.Status = StatusNew
	o.ContactID = &contactID
	o.PlacedAt = &now
	o.UpdatedAt = now
	return nil
}

// Advance moves a placed order to the next workflow status.
func (o *Order) Advance(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+string(target))
	}
	if target == StatusNew {
		return shared.NewDomainError("INVALID_TRANSITION", "Orders are placed through the basket, not by status update")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Cannot transition order from "+string(o.Status)+" to "+string(target))
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}
