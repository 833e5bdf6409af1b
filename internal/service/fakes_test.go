package service

import (
	"context"
	"net/http"
	"time"

	"sparkles-laundry/internal/domain"
	"sparkles-laundry/internal/infrastructure/payment"
	"sparkles-laundry/internal/repo"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeOrderRepo struct {
	orders map[uuid.UUID]*domain.Order
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[uuid.UUID]*domain.Order)}
	for _, o := range orders {
		clone := *o
		r.orders[o.ID] = &clone
	}
	return r
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

func (r *fakeOrderRepo) FindById(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	clone := *o
	return &clone, nil
}

func (r *fakeOrderRepo) FindByIdForUser(_ context.Context, id, userID uuid.UUID) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok || o.UserID != userID {
		return nil, nil
	}
	clone := *o
	return &clone, nil
}

func (r *fakeOrderRepo) FindByReference(_ context.Context, reference string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.PaymentReference == reference {
			clone := *o
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListAll(context.Context) ([]repo.AdminOrder, error) {
	var out []repo.AdminOrder
	for _, o := range r.orders {
		out = append(out, repo.AdminOrder{Order: *o})
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus) error {
	if o, ok := r.orders[id]; ok {
		o.Status = status
		o.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeOrderRepo) SetPaymentAttempt(_ context.Context, id uuid.UUID, method domain.PaymentMethod, paymentID, reference string, amount decimal.Decimal, currency string) error {
	if o, ok := r.orders[id]; ok {
		o.PaymentMethod = method
		o.PaymentID = paymentID
		o.PaymentReference = reference
		o.ChargeAmount = amount
		o.ChargeCurrency = currency
		o.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeOrderRepo) MarkPaid(_ context.Context, id uuid.UUID, amount decimal.Decimal, currency string) (bool, error) {
	o, ok := r.orders[id]
	if !ok || o.PaymentStatus == domain.PaymentPaid {
		return false, nil
	}
	o.PaymentStatus = domain.PaymentPaid
	o.PaidAmount = amount
	o.PaidCurrency = currency
	if o.Status == domain.OrderPending {
		o.Status = domain.OrderProcessing
	}
	o.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeOrderRepo) MarkPaymentFailed(_ context.Context, id uuid.UUID) error {
	if o, ok := r.orders[id]; ok && o.PaymentStatus == domain.PaymentPending {
		o.PaymentStatus = domain.PaymentFailed
		o.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeOrderRepo) FindStuckPayments(context.Context, time.Duration, int) ([]domain.Order, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		clone := *u
		r.users[u.ID] = &clone
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindById(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) List(context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Count(context.Context) (int, error) {
	return len(r.users), nil
}

type fakeRateRepo struct {
	rate domain.ExchangeRate
}

func (r *fakeRateRepo) Get(context.Context) (*domain.ExchangeRate, error) {
	rate := r.rate
	return &rate, nil
}

func (r *fakeRateRepo) Update(_ context.Context, newRate decimal.Decimal, updatedBy uuid.UUID) (*domain.ExchangeRate, error) {
	r.rate.Rate = newRate
	r.rate.LastUpdated = time.Now()
	r.rate.UpdatedBy = uuid.NullUUID{UUID: updatedBy, Valid: true}
	rate := r.rate
	return &rate, nil
}

type fakeCardGateway struct {
	initiateResult *payment.InitiateResult
	initiateErr    error
	verifyResult   *payment.VerifyResult
	verifyErr      error
	initiateCalls  int
	lastInitiate   payment.InitiateRequest
}

func (g *fakeCardGateway) Initiate(_ context.Context, req payment.InitiateRequest) (*payment.InitiateResult, error) {
	g.initiateCalls++
	g.lastInitiate = req
	if g.initiateErr != nil {
		return nil, g.initiateErr
	}
	if g.initiateResult != nil {
		return g.initiateResult, nil
	}
	return &payment.InitiateResult{
		Reference:        req.Reference,
		AuthorizationURL: "https://checkout.example/" + req.Reference,
		AccessCode:       "AC_test",
	}, nil
}

func (g *fakeCardGateway) Verify(context.Context, string) (*payment.VerifyResult, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.verifyResult, nil
}

type fakeCryptoGateway struct {
	manual        bool
	initiateErr   error
	initiateCalls int
	lastInitiate  payment.InitiateRequest
}

func (g *fakeCryptoGateway) Initiate(_ context.Context, req payment.InitiateRequest) (*payment.InitiateResult, error) {
	g.initiateCalls++
	g.lastInitiate = req
	if g.initiateErr != nil {
		return nil, g.initiateErr
	}
	if g.manual {
		return &payment.InitiateResult{
			PaymentID:     "MANUAL_1",
			Reference:     req.Reference,
			Manual:        true,
			WalletAddress: "TTestWallet",
			Network:       "TRC20",
		}, nil
	}
	return &payment.InitiateResult{
		PaymentID:   "prepay-123",
		Reference:   req.Reference,
		CheckoutURL: "https://pay.example/checkout",
		QRCodeURL:   "https://pay.example/qr",
		ExpireTime:  4102444800000,
	}, nil
}

func (g *fakeCryptoGateway) VerifySignature(http.Header, []byte) error { return nil }

func (g *fakeCryptoGateway) VerificationEnabled() bool { return !g.manual }
