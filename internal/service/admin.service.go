package service

import (
	"context"

	"sparkles-laundry/internal/domain"
	"sparkles-laundry/internal/repo"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Stats struct {
	TotalOrders      int             `json:"totalOrders"`
	PendingOrders    int             `json:"pendingOrders"`
	ProcessingOrders int             `json:"processingOrders"`
	CompletedOrders  int             `json:"completedOrders"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	PaidOrders       int             `json:"paidOrders"`
	PendingPayments  int             `json:"pendingPayments"`
	TotalUsers       int             `json:"totalUsers"`
}

type AdminService interface {
	Stats(ctx context.Context) (*Stats, error)
	ListOrders(ctx context.Context) ([]repo.AdminOrder, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type adminService struct {
	orders repo.OrderRepo
	users  repo.UserRepo
}

func NewAdminService(orders repo.OrderRepo, users repo.UserRepo) AdminService {
	return &adminService{orders: orders, users: users}
}

func (s *adminService) Stats(ctx context.Context) (*Stats, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalOrders: len(orders), TotalRevenue: decimal.Zero}
	for _, o := range orders {
		switch o.Status {
		case domain.OrderPending:
			stats.PendingOrders++
		case domain.OrderProcessing:
			stats.ProcessingOrders++
		case domain.OrderCompleted, domain.OrderDelivered:
			stats.CompletedOrders++
		}
		switch o.PaymentStatus {
		case domain.PaymentPaid:
			stats.PaidOrders++
		case domain.PaymentPending:
			stats.PendingPayments++
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalPrice)
	}

	stats.TotalUsers, err = s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *adminService) ListOrders(ctx context.Context) ([]repo.AdminOrder, error) {
	return s.orders.ListAll(ctx)
}

func (s *adminService) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.FindById(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("Order not found")
	}
	return order, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}
