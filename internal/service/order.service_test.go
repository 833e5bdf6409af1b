package service

import (
	"context"
	"testing"

	"sparkles-laundry/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() CreateOrderInput {
	return CreateOrderInput{
		Items: []ItemInput{
			{Name: "Shirt", Price: decimal.NewFromInt(800), Quantity: 2},
		},
		ServiceType:     "dry-clean",
		PickupAddress:   "1 Pickup St",
		DeliveryAddress: "2 Delivery Ave",
	}
}

func TestCreateOrderComputesTotal(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo())
	order, err := svc.Create(context.Background(), uuid.New(), validInput())
	require.NoError(t, err)

	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(1600)))
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, domain.PaymentPending, order.PaymentStatus)
}

func TestCreateOrderValidation(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo())
	userID := uuid.New()

	cases := []struct {
		name   string
		mutate func(*CreateOrderInput)
	}{
		{"no items", func(in *CreateOrderInput) { in.Items = nil }},
		{"bad service type", func(in *CreateOrderInput) { in.ServiceType = "ironing" }},
		{"no pickup address", func(in *CreateOrderInput) { in.PickupAddress = "  " }},
		{"no delivery address", func(in *CreateOrderInput) { in.DeliveryAddress = "" }},
		{"zero quantity", func(in *CreateOrderInput) { in.Items[0].Quantity = 0 }},
		{"negative price", func(in *CreateOrderInput) { in.Items[0].Price = decimal.NewFromInt(-1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := svc.Create(context.Background(), userID, input)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
}

func TestUserCanOnlyCancel(t *testing.T) {
	user := uuid.New()
	order := testOrder(user, "1600")
	svc := NewOrderService(newFakeOrderRepo(order))

	for _, status := range []domain.OrderStatus{domain.OrderProcessing, domain.OrderCompleted, domain.OrderDelivered} {
		_, err := svc.UpdateStatusForUser(context.Background(), order.ID, user, status)
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err), "status %s", status)
	}
}

func TestUserCancelPendingOrder(t *testing.T) {
	user := uuid.New()
	order := testOrder(user, "1600")
	svc := NewOrderService(newFakeOrderRepo(order))

	updated, err := svc.UpdateStatusForUser(context.Background(), order.ID, user, domain.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, updated.Status)
}

func TestUserCancelNonPendingConflicts(t *testing.T) {
	user := uuid.New()
	order := testOrder(user, "1600")
	order.Status = domain.OrderProcessing
	svc := NewOrderService(newFakeOrderRepo(order))

	_, err := svc.UpdateStatusForUser(context.Background(), order.ID, user, domain.OrderCancelled)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestUserCancelScopedToOwner(t *testing.T) {
	order := testOrder(uuid.New(), "1600")
	svc := NewOrderService(newFakeOrderRepo(order))

	_, err := svc.UpdateStatusForUser(context.Background(), order.ID, uuid.New(), domain.OrderCancelled)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestAdminUpdateStatusUnrestricted(t *testing.T) {
	order := testOrder(uuid.New(), "1600")
	order.Status = domain.OrderDelivered
	repo := newFakeOrderRepo(order)
	svc := NewOrderService(repo)

	// Admin may jump to any of the five statuses regardless of the
	// current one.
	for _, status := range []domain.OrderStatus{
		domain.OrderPending, domain.OrderProcessing, domain.OrderCompleted,
		domain.OrderDelivered, domain.OrderCancelled,
	} {
		updated, err := svc.AdminUpdateStatus(context.Background(), order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	_, err := svc.AdminUpdateStatus(context.Background(), order.ID, "shipped")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
