package ordering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, StatusBasket.CanTransitionTo(StatusNew))
	assert.True(t, StatusNew.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusAssembled))
	assert.True(t, StatusAssembled.CanTransitionTo(StatusSent))
	assert.True(t, StatusSent.CanTransitionTo(StatusDelivered))

	assert.True(t, StatusNew.CanTransitionTo(StatusCanceled))
	assert.True(t, StatusSent.CanTransitionTo(StatusCanceled))

	assert.False(t, StatusBasket.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusDelivered.CanTransitionTo(StatusCanceled))
	assert.False(t, StatusCanceled.CanTransitionTo(StatusNew))
	assert.False(t, StatusNew.CanTransitionTo(StatusSent))
}

func TestOrderStatusIsPlaced(t *testing.T) {
	assert.False(t, StatusBasket.IsPlaced())
	assert.True(t, StatusNew.IsPlaced())
	assert.True(t, StatusDelivered.IsPlaced())
	assert.False(t, OrderStatus("bogus").IsPlaced())
}

func TestNewBasket(t *testing.T) {
	accountID := uuid.New()
	basket, err := NewBasket(accountID)
	require.NoError(t, err)
	assert.Equal(t, StatusBasket, basket.Status)
	assert.Equal(t, accountID, basket.AccountID)
	assert.Nil(t, basket.ContactID)
	assert.Empty(t, basket.Items)

	_, err = NewBasket(uuid.Nil)
	assert.Error(t, err)
}

func TestNewItemValidation(t *testing.T) {
	orderID := uuid.New()

	_, err := NewItem(orderID, uuid.Nil, uuid.New(), 1)
	assert.Error(t, err)

	_, err = NewItem(orderID, uuid.New(), uuid.Nil, 1)
	assert.Error(t, err)

	_, err = NewItem(orderID, uuid.New(), uuid.New(), 0)
	assert.Error(t, err)

	shopID := uuid.New()
	item, err := NewItem(orderID, uuid.New(), shopID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, shopID, item.ShopID)
}

func TestOrderTotalSum(t *testing.T) {
	basket, err := NewBasket(uuid.New())
	require.NoError(t, err)

	basket.Items = []OrderItem{
		{Quantity: 2, Price: decimal.NewFromInt(100)},
		{Quantity: 3, Price: decimal.NewFromInt(50)},
	}
	assert.True(t, basket.TotalSum().Equal(decimal.NewFromInt(350)))

	basket.Items = nil
	assert.True(t, basket.TotalSum().IsZero())
}

func TestOrderPlace(t *testing.T) {
	basket, err := NewBasket(uuid.New())
	require.NoError(t, err)
	contactID := uuid.New()

	err = basket.Place(contactID)
	assert.Error(t, err, "empty basket cannot be placed")

	item, err := NewItem(basket.ID, uuid.New(), uuid.New(), 1)
	require.NoError(t, err)
	basket.Items = []OrderItem{*item}

	err = basket.Place(uuid.Nil)
	assert.Error(t, err, "placement requires a contact")

	err = basket.Place(contactID)
	require.NoError(t, err)
	assert.Equal(t, StatusNew, basket.Status)
	require.NotNil(t, basket.ContactID)
	assert.Equal(t, contactID, *basket.ContactID)
	assert.NotNil(t, basket.PlacedAt)

	err = basket.Place(contactID)
	assert.Error(t, err, "placed order cannot be placed again")
}

func TestOrderAdvance(t *testing.T) {
	order, err := NewBasket(uuid.New())
	require.NoError(t, err)
	item, err := NewItem(order.ID, uuid.New(), uuid.New(), 1)
	require.NoError(t, err)
	order.Items = []OrderItem{*item}
	require.NoError(t, order.Place(uuid.New()))

	require.NoError(t, order.Advance(StatusConfirmed))
	assert.Equal(t, StatusConfirmed, order.Status)

	err = order.Advance(StatusDelivered)
	assert.Error(t, err, "cannot skip assembly and shipment")

	err = order.Advance(StatusNew)
	assert.Error(t, err, "new is only reachable through placement")

	err = order.Advance(OrderStatus("bogus"))
	assert.Error(t, err)

	require.NoError(t, order.Advance(StatusCanceled))
	assert.Equal(t, StatusCanceled, order.Status)
	assert.Error(t, order.Advance(StatusAssembled))
}

func TestNewContactValidation(t *testing.T) {
	accountID := uuid.New()

	_, err := NewContact(uuid.Nil, "Berlin", "Main St", "1", "", "", "+4930000000")
	assert.Error(t, err)

	_, err = NewContact(accountID, "", "Main St", "1", "", "", "+4930000000")
	assert.Error(t, err)

	_, err = NewContact(accountID, "Berlin", "Main St", "1", "", "", "")
	assert.Error(t, err)

	contact, err := NewContact(accountID, "Berlin", "Main St", "1", "A", "12", "+4930000000")
	require.NoError(t, err)
	assert.Equal(t, "Berlin", contact.City)
}
