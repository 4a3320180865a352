package ordering

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/ordering"
	"github.com/markethub/backend/internal/domain/shared"
)

// OrderService handles order placement and the buyer's view of placed orders.
type OrderService struct {
	orders   ordering.OrderRepository
	contacts ordering.ContactRepository
	logger   *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orders ordering.OrderRepository, contacts ordering.ContactRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		contacts: contacts,
		logger:   logger,
	}
}

// Place converts the account's basket into a placed order bound to one of
// the account's delivery contacts. The caller names the order to place; an
// id that is not the caller's current basket resolves to nothing, like any
// contact that is not the caller's own.
func (s *OrderService) Place(ctx context.Context, accountID, orderID, contactID uuid.UUID) (*OrderResponse, error) {
	contact, err := s.contacts.FindByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if contact.AccountID != accountID {
		return nil, shared.ErrNotFound
	}

	basket, err := s.orders.FindBasket(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if basket.ID != orderID {
		return nil, shared.ErrNotFound
	}

	if err := basket.Place(contactID); err != nil {
		return nil, err
	}
	if err := s.orders.Place(ctx, basket); err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_id", basket.ID.String()),
		zap.String("account_id", accountID.String()),
		zap.Int("items", len(basket.Items)),
	)
	return ToOrderResponse(basket), nil
}

// List returns the account's placed orders, newest first
func (s *OrderService) List(ctx context.Context, accountID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orders.ListPlacedForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *ToOrderResponse(&orders[i])
	}
	return responses, nil
}

// Get returns one placed order owned by the account
func (s *OrderService) Get(ctx context.Context, accountID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.findOwned(ctx, accountID, orderID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// Cancel cancels the account's placed order. Delivered and already canceled
// orders cannot be canceled.
func (s *OrderService) Cancel(ctx context.Context, accountID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.findOwned(ctx, accountID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Advance(ordering.StatusCanceled); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order canceled",
		zap.String("order_id", order.ID.String()),
		zap.String("account_id", accountID.String()),
	)
	return ToOrderResponse(order), nil
}

// findOwned loads a placed order and hides other accounts' orders and
// baskets behind not-found.
func (s *OrderService) findOwned(ctx context.Context, accountID, orderID uuid.UUID) (*ordering.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.AccountID != accountID || !order.Status.IsPlaced() {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

// CreateContact stores a delivery contact for the account
func (s *OrderService) CreateContact(ctx context.Context, accountID uuid.UUID, req ContactRequest) (*ContactResponse, error) {
	contact, err := ordering.NewContact(accountID, req.City, req.Street, req.House, req.Building, req.Apartment, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	response := ToContactResponse(contact)
	return &response, nil
}

// UpdateContact replaces the fields of a contact owned by the account.
// Foreign contacts are hidden behind not-found.
func (s *OrderService) UpdateContact(ctx context.Context, accountID, contactID uuid.UUID, req ContactRequest) (*ContactResponse, error) {
	contact, err := s.contacts.FindByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if contact.AccountID != accountID {
		return nil, shared.ErrNotFound
	}

	contact.City = req.City
	contact.Street = req.Street
	contact.House = req.House
	contact.Building = req.Building
	contact.Apartment = req.Apartment
	contact.Phone = req.Phone
	if err := s.contacts.Save(ctx, contact); err != nil {
		return nil, err
	}
	response := ToContactResponse(contact)
	return &response, nil
}

// ListContacts returns the account's delivery contacts
func (s *OrderService) ListContacts(ctx context.Context, accountID uuid.UUID) ([]ContactResponse, error) {
	contacts, err := s.contacts.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	responses := make([]ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = ToContactResponse(&contacts[i])
	}
	return responses, nil
}

// DeleteContact removes a contact owned by the account
func (s *OrderService) DeleteContact(ctx context.Context, accountID, contactID uuid.UUID) error {
	return s.contacts.Delete(ctx, contactID, accountID)
}
