package worker

import (
	"context"
	"log"
	"time"

	"sparkles-laundry/internal/domain"
	"sparkles-laundry/internal/repo"
	"sparkles-laundry/internal/service"
)

const (
	stuckAfter = 10 * time.Minute
	batchSize  = 50
)

// ReconciliationWorker periodically re-verifies orders that are still
// payment-pending with an outstanding card reference. The default
// deployment leaves it off; clients then drive verification themselves
// by polling the status endpoint.
type ReconciliationWorker struct {
	orders   repo.OrderRepo
	payments service.PaymentService
	interval time.Duration
}

func NewReconciliationWorker(orders repo.OrderRepo, payments service.PaymentService, interval time.Duration) *ReconciliationWorker {
	return &ReconciliationWorker{
		orders:   orders,
		payments: payments,
		interval: interval,
	}
}

func (rw *ReconciliationWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(rw.interval)
	defer ticker.Stop()

	log.Println("Reconciliation worker started")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := rw.process(ctx); err != nil {
				log.Printf("Reconciliation failed: %v", err)
			}
		}
	}
}

func (rw *ReconciliationWorker) process(ctx context.Context) error {
	stuck, err := rw.orders.FindStuckPayments(ctx, stuckAfter, batchSize)
	if err != nil {
		return err
	}
	if len(stuck) == 0 {
		return nil
	}

	log.Printf("Found %d stuck payments. Re-verifying...", len(stuck))

	for _, order := range stuck {
		if order.PaymentMethod != domain.MethodCard {
			continue // only the card rail supports pull verification
		}
		if _, err := rw.payments.VerifyCardPayment(ctx, order.PaymentReference); err != nil {
			// Still unpaid or provider unavailable; next sweep retries.
			log.Printf("Re-verify order %s: %v", order.ID, err)
		}
	}
	return nil
}
