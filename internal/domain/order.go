package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderCompleted, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the owner-facing lifecycle allows moving
// from s to next. Admin updates bypass this check.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	switch s {
	case OrderPending:
		return next == OrderProcessing || next == OrderCancelled
	case OrderProcessing:
		return next == OrderCompleted || next == OrderDelivered
	}
	return false
}

type ServiceType string

const (
	ServiceWashFold  ServiceType = "wash-fold"
	ServiceDryClean  ServiceType = "dry-clean"
	ServiceComforter ServiceType = "comforter"
	ServiceMixed     ServiceType = "mixed"
)

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceWashFold, ServiceDryClean, ServiceComforter, ServiceMixed:
		return true
	}
	return false
}

type OrderItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type Order struct {
	ID                  uuid.UUID       `json:"id"`
	UserID              uuid.UUID       `json:"userId"`
	Items               []OrderItem     `json:"items"`
	ServiceType         ServiceType     `json:"serviceType"`
	TotalPrice          decimal.Decimal `json:"totalPrice"`
	Status              OrderStatus     `json:"status"`
	PickupAddress       string          `json:"pickupAddress"`
	DeliveryAddress     string          `json:"deliveryAddress"`
	SpecialInstructions string          `json:"specialInstructions"`
	PaymentStatus       PaymentStatus   `json:"paymentStatus"`
	PaymentMethod       PaymentMethod   `json:"paymentMethod,omitempty"`
	PaymentID           string          `json:"paymentId,omitempty"`
	PaymentReference    string          `json:"paymentReference,omitempty"`
	ChargeAmount        decimal.Decimal `json:"-"`
	ChargeCurrency      string          `json:"-"`
	PaidAmount          decimal.Decimal `json:"paidAmount"`
	PaidCurrency        string          `json:"paidCurrency,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// TotalPrice is the checkout-time sum of line items. It is never
// re-derived after the order is persisted.
func TotalPrice(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
