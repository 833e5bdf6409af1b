package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"sparkles-laundry/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const orderColumns = `id, user_id, items, service_type, total_price, status,
	pickup_address, delivery_address, special_instructions,
	payment_status, payment_method, payment_id, payment_reference,
	charge_amount, charge_currency, paid_amount, paid_currency,
	created_at, updated_at`

// AdminOrder is an order joined with its owner for the admin listing.
type AdminOrder struct {
	domain.Order
	OwnerName  string `json:"ownerName"`
	OwnerEmail string `json:"ownerEmail"`
}

type OrderRepo interface {
	Create(ctx context.Context, order *domain.Order) error
	// FindById returns (nil, nil) when no order matches.
	FindById(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	FindByIdForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Order, error)
	FindByReference(ctx context.Context, reference string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]AdminOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	// SetPaymentAttempt records the chosen method, the provider
	// correlation tokens and the exact quoted charge for the attempt.
	SetPaymentAttempt(ctx context.Context, id uuid.UUID, method domain.PaymentMethod, paymentID, reference string, amount decimal.Decimal, currency string) error
	// MarkPaid applies a confirmed payment in a single conditional
	// update: sets payment fields and advances a pending order to
	// processing. Returns false when the order was already paid, so
	// webhook redelivery cannot double-apply.
	MarkPaid(ctx context.Context, id uuid.UUID, amount decimal.Decimal, currency string) (bool, error)
	MarkPaymentFailed(ctx context.Context, id uuid.UUID) error
	// FindStuckPayments returns orders still payment-pending with an
	// outstanding card reference, untouched for longer than olderThan.
	FindStuckPayments(ctx context.Context, olderThan time.Duration, limit int) ([]domain.Order, error)
}

type orderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepo {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, items, service_type, total_price, status,
			pickup_address, delivery_address, special_instructions,
			payment_status, paid_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		order.ID, order.UserID, items, order.ServiceType, order.TotalPrice, order.Status,
		order.PickupAddress, order.DeliveryAddress, order.SpecialInstructions,
		order.PaymentStatus, order.PaidAmount, order.CreatedAt, order.UpdatedAt,
	)
	return err
}

func (r *orderRepo) FindById(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrder(row)
}

func (r *orderRepo) FindByIdForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 AND user_id = $2`, id, userID)
	return scanOrder(row)
}

func (r *orderRepo) FindByReference(ctx context.Context, reference string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE payment_reference = $1`, reference)
	return scanOrder(row)
}

func (r *orderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (r *orderRepo) ListAll(ctx context.Context) ([]AdminOrder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.items, o.service_type, o.total_price, o.status,
			o.pickup_address, o.delivery_address, o.special_instructions,
			o.payment_status, o.payment_method, o.payment_id, o.payment_reference,
			o.charge_amount, o.charge_currency, o.paid_amount, o.paid_currency,
			o.created_at, o.updated_at, u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []AdminOrder
	for rows.Next() {
		var (
			o         domain.Order
			items     []byte
			method    sql.NullString
			paymentID sql.NullString
			reference sql.NullString
			chargeAmt decimal.NullDecimal
			chargeCur sql.NullString
			paidCur   sql.NullString
			name      string
			email     string
		)
		if err := rows.Scan(
			&o.ID, &o.UserID, &items, &o.ServiceType, &o.TotalPrice, &o.Status,
			&o.PickupAddress, &o.DeliveryAddress, &o.SpecialInstructions,
			&o.PaymentStatus, &method, &paymentID, &reference,
			&chargeAmt, &chargeCur, &o.PaidAmount, &paidCur,
			&o.CreatedAt, &o.UpdatedAt, &name, &email,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, err
		}
		applyNullables(&o, method, paymentID, reference, chargeAmt, chargeCur, paidCur)
		orders = append(orders, AdminOrder{Order: o, OwnerName: name, OwnerEmail: email})
	}
	return orders, rows.Err()
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	return err
}

func (r *orderRepo) SetPaymentAttempt(ctx context.Context, id uuid.UUID, method domain.PaymentMethod, paymentID, reference string, amount decimal.Decimal, currency string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET payment_method = $2,
		    payment_id = NULLIF($3, ''),
		    payment_reference = NULLIF($4, ''),
		    charge_amount = $5,
		    charge_currency = $6,
		    updated_at = now()
		WHERE id = $1`,
		id, method, paymentID, reference, amount, currency)
	return err
}

func (r *orderRepo) MarkPaid(ctx context.Context, id uuid.UUID, amount decimal.Decimal, currency string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET payment_status = 'paid',
		    paid_amount = $2,
		    paid_currency = $3,
		    status = CASE WHEN status = 'pending' THEN 'processing' ELSE status END,
		    updated_at = now()
		WHERE id = $1 AND payment_status <> 'paid'`,
		id, amount, currency)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *orderRepo) MarkPaymentFailed(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET payment_status = 'failed', updated_at = now()
		WHERE id = $1 AND payment_status = 'pending'`, id)
	return err
}

func (r *orderRepo) FindStuckPayments(ctx context.Context, olderThan time.Duration, limit int) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE payment_status = 'pending'
		AND payment_reference IS NOT NULL
		AND updated_at < $1
		ORDER BY updated_at
		LIMIT $2`,
		time.Now().Add(-olderThan), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row *sql.Row) (*domain.Order, error) {
	order, err := scanOrderRow(row)
	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func scanOrderRow(row rowScanner) (*domain.Order, error) {
	var (
		o         domain.Order
		items     []byte
		method    sql.NullString
		paymentID sql.NullString
		reference sql.NullString
		chargeAmt decimal.NullDecimal
		chargeCur sql.NullString
		paidCur   sql.NullString
	)
	err := row.Scan(
		&o.ID, &o.UserID, &items, &o.ServiceType, &o.TotalPrice, &o.Status,
		&o.PickupAddress, &o.DeliveryAddress, &o.SpecialInstructions,
		&o.PaymentStatus, &method, &paymentID, &reference,
		&chargeAmt, &chargeCur, &o.PaidAmount, &paidCur,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, err
	}
	applyNullables(&o, method, paymentID, reference, chargeAmt, chargeCur, paidCur)
	return &o, nil
}

func applyNullables(o *domain.Order, method, paymentID, reference sql.NullString, chargeAmt decimal.NullDecimal, chargeCur, paidCur sql.NullString) {
	o.PaymentMethod = domain.PaymentMethod(method.String)
	o.PaymentID = paymentID.String
	o.PaymentReference = reference.String
	if chargeAmt.Valid {
		o.ChargeAmount = chargeAmt.Decimal
	}
	o.ChargeCurrency = chargeCur.String
	o.PaidCurrency = paidCur.String
}
