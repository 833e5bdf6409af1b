package service

import (
	"context"
	"strings"
	"time"

	"sparkles-laundry/internal/domain"
	"sparkles-laundry/internal/repo"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemInput struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Quantity int             `json:"quantity" binding:"required,min=1"`
}

type CreateOrderInput struct {
	Items               []ItemInput `json:"items" binding:"required,min=1,dive"`
	ServiceType         string      `json:"serviceType" binding:"required"`
	PickupAddress       string      `json:"pickupAddress" binding:"required"`
	DeliveryAddress     string      `json:"deliveryAddress" binding:"required"`
	SpecialInstructions string      `json:"specialInstructions"`
}

type OrderService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*domain.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	GetForUser(ctx context.Context, orderID, userID uuid.UUID) (*domain.Order, error)
	// UpdateStatusForUser lets the owner cancel a pending order and
	// nothing else; any other target status is forbidden.
	UpdateStatusForUser(ctx context.Context, orderID, userID uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
	// AdminUpdateStatus may set any of the five statuses directly.
	AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
}

type orderService struct {
	orders repo.OrderRepo
}

func NewOrderService(orders repo.OrderRepo) OrderService {
	return &orderService{orders: orders}
}

func (s *orderService) Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, domain.Validation("At least one item is required")
	}
	serviceType := domain.ServiceType(input.ServiceType)
	if !serviceType.Valid() {
		return nil, domain.Validation("Invalid service type")
	}
	if strings.TrimSpace(input.PickupAddress) == "" {
		return nil, domain.Validation("Pickup address is required")
	}
	if strings.TrimSpace(input.DeliveryAddress) == "" {
		return nil, domain.Validation("Delivery address is required")
	}

	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, it := range input.Items {
		if it.Quantity < 1 {
			return nil, domain.Validation("Item quantity must be at least 1")
		}
		if it.Price.IsNegative() {
			return nil, domain.Validation("Item price cannot be negative")
		}
		items = append(items, domain.OrderItem{Name: it.Name, Price: it.Price, Quantity: it.Quantity})
	}

	now := time.Now()
	order := &domain.Order{
		ID:                  uuid.New(),
		UserID:              userID,
		Items:               items,
		ServiceType:         serviceType,
		TotalPrice:          domain.TotalPrice(items),
		Status:              domain.OrderPending,
		PickupAddress:       input.PickupAddress,
		DeliveryAddress:     input.DeliveryAddress,
		SpecialInstructions: input.SpecialInstructions,
		PaymentStatus:       domain.PaymentPending,
		PaidAmount:          decimal.Zero,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *orderService) GetForUser(ctx context.Context, orderID, userID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.FindByIdForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("Order not found")
	}
	return order, nil
}

func (s *orderService) UpdateStatusForUser(ctx context.Context, orderID, userID uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.Validation("Invalid status")
	}
	if status != domain.OrderCancelled {
		return nil, domain.Forbidden("Only cancellation is allowed")
	}

	order, err := s.orders.FindByIdForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("Order not found")
	}
	if !order.Status.CanTransition(domain.OrderCancelled) {
		return nil, domain.Conflict("Only pending orders can be cancelled")
	}

	if err := s.orders.UpdateStatus(ctx, orderID, domain.OrderCancelled); err != nil {
		return nil, err
	}
	order.Status = domain.OrderCancelled
	return order, nil
}

func (s *orderService) AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.Validation("Invalid status. Valid options: pending, processing, completed, delivered, cancelled")
	}

	order, err := s.orders.FindById(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("Order not found")
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}
