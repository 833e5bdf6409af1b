package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"sparkles-laundry/internal/domain"
	"sparkles-laundry/internal/infrastructure/payment"
	"sparkles-laundry/internal/repo"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dust payments below this floor get rejected by the provider anyway,
// so they are refused up front.
var minStablecoinAmount = decimal.RequireFromString("5")

const (
	stablecoinCurrency = "USDT"
	tradeNoPrefix      = "SPARKLES"
)

type PaymentStatusInfo struct {
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	PaidAmount    decimal.Decimal      `json:"paidAmount"`
	PaidCurrency  string               `json:"paidCurrency,omitempty"`
}

// PaymentService coordinates payment attempts across the two provider
// rails and applies confirmed outcomes back onto orders. It never holds
// its own copy of an order; every operation reads and writes through
// the order repo.
type PaymentService interface {
	CreateStablecoinPayment(ctx context.Context, orderID, userID uuid.UUID) (*domain.PaymentDescriptor, error)
	CreateCardPayment(ctx context.Context, orderID, userID uuid.UUID) (*domain.PaymentDescriptor, error)
	VerifyCardPayment(ctx context.Context, reference string) (*domain.Order, error)
	// ProcessWebhook verifies and applies a provider-pushed
	// confirmation. Idempotent under redelivery.
	ProcessWebhook(ctx context.Context, header http.Header, body []byte) error
	// Confirm applies a confirmed outcome onto the order. A second
	// application with the same amount is a no-op success.
	Confirm(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal, currency string) error
	Status(ctx context.Context, orderID, userID uuid.UUID) (*PaymentStatusInfo, error)
	// SimulatePayment marks an order paid without a provider; allowed
	// only while the stablecoin rail runs in manual/testnet mode.
	SimulatePayment(ctx context.Context, orderID, userID uuid.UUID) (*domain.Order, error)
}

type paymentService struct {
	orders   repo.OrderRepo
	users    repo.UserRepo
	rates    repo.RateRepo
	card     payment.CardGateway
	crypto   payment.CryptoGateway
	currency string
}

func NewPaymentService(
	orders repo.OrderRepo,
	users repo.UserRepo,
	rates repo.RateRepo,
	card payment.CardGateway,
	crypto payment.CryptoGateway,
	currency string,
) PaymentService {
	return &paymentService{
		orders:   orders,
		users:    users,
		rates:    rates,
		card:     card,
		crypto:   crypto,
		currency: currency,
	}
}

func (s *paymentService) CreateStablecoinPayment(ctx context.Context, orderID, userID uuid.UUID) (*domain.PaymentDescriptor, error) {
	order, err := s.payableOrder(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	rate, err := s.rates.Get(ctx)
	if err != nil {
		return nil, err
	}
	amount := order.TotalPrice.Div(rate.Rate).Round(2)
	if amount.LessThan(minStablecoinAmount) {
		return nil, domain.Validation(fmt.Sprintf(
			"Minimum USDT payment is 5.00 USDT. Your order is ~%s USDT.", amount.StringFixed(2)))
	}

	reference := fmt.Sprintf("%s_%s_%d", tradeNoPrefix, order.ID, time.Now().UnixMilli())
	result, err := s.crypto.Initiate(ctx, payment.InitiateRequest{
		OrderID:     order.ID,
		Reference:   reference,
		Amount:      amount,
		Currency:    stablecoinCurrency,
		Description: "Laundry service - " + string(order.ServiceType),
	})
	if err != nil {
		return nil, err
	}

	if err := s.orders.SetPaymentAttempt(ctx, order.ID, domain.MethodStablecoin,
		result.PaymentID, result.Reference, amount, stablecoinCurrency); err != nil {
		return nil, err
	}

	return &domain.PaymentDescriptor{
		OrderID:       order.ID,
		Amount:        amount,
		Currency:      stablecoinCurrency,
		PaymentID:     result.PaymentID,
		Reference:     result.Reference,
		CheckoutURL:   result.CheckoutURL,
		QRCodeURL:     result.QRCodeURL,
		ExpireTime:    result.ExpireTime,
		Manual:        result.Manual,
		WalletAddress: result.WalletAddress,
		Network:       result.Network,
	}, nil
}

func (s *paymentService) CreateCardPayment(ctx context.Context, orderID, userID uuid.UUID) (*domain.PaymentDescriptor, error) {
	order, err := s.payableOrder(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("User not found")
	}

	reference := fmt.Sprintf("ORDER_%s_%d", order.ID, time.Now().UnixMilli())
	result, err := s.card.Initiate(ctx, payment.InitiateRequest{
		OrderID:       order.ID,
		Reference:     reference,
		Amount:        order.TotalPrice,
		Currency:      s.currency,
		CustomerEmail: user.Email,
	})
	if err != nil {
		return nil, err
	}

	if err := s.orders.SetPaymentAttempt(ctx, order.ID, domain.MethodCard,
		"", result.Reference, order.TotalPrice, s.currency); err != nil {
		return nil, err
	}

	return &domain.PaymentDescriptor{
		OrderID:          order.ID,
		Amount:           order.TotalPrice,
		Currency:         s.currency,
		Reference:        result.Reference,
		AuthorizationURL: result.AuthorizationURL,
		AccessCode:       result.AccessCode,
	}, nil
}

func (s *paymentService) VerifyCardPayment(ctx context.Context, reference string) (*domain.Order, error) {
	order, err := s.orders.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("Order not found")
	}

	result, err := s.card.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}
	if !result.Paid {
		if result.Failed {
			if err := s.orders.MarkPaymentFailed(ctx, order.ID); err != nil {
				return nil, err
			}
		}
		return nil, domain.Conflict("Payment verification failed")
	}

	if err := s.Confirm(ctx, order.ID, result.Amount, result.Currency); err != nil {
		return nil, err
	}
	return s.orders.FindById(ctx, order.ID)
}

type webhookEnvelope struct {
	BizType string `json:"bizType"`
	Data    struct {
		MerchantTradeNo string      `json:"merchantTradeNo"`
		OrderAmount     json.Number `json:"orderAmount"`
	} `json:"data"`
}

func (s *paymentService) ProcessWebhook(ctx context.Context, header http.Header, body []byte) error {
	if s.crypto.VerificationEnabled() {
		if err := s.crypto.VerifySignature(header, body); err != nil {
			return err
		}
	}

	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.Validation("malformed webhook payload")
	}
	if envelope.BizType != "PAY" {
		return nil // not a payment notification, acknowledge and move on
	}

	orderID, err := orderIDFromTradeNo(envelope.Data.MerchantTradeNo)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(envelope.Data.OrderAmount.String())
	if err != nil {
		return domain.Validation("malformed webhook amount")
	}

	return s.Confirm(ctx, orderID, amount, stablecoinCurrency)
}

func (s *paymentService) Confirm(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal, currency string) error {
	order, err := s.orders.FindById(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.NotFound("No order matches this payment")
	}

	if order.PaymentStatus == domain.PaymentPaid {
		if order.PaidAmount.Equal(amount) {
			return nil // redelivery of an applied confirmation
		}
		return domain.Conflict("Order already paid with a different amount")
	}

	if !order.ChargeAmount.IsZero() && !amount.Equal(order.ChargeAmount) {
		log.Printf("payment amount mismatch for order %s: confirmed %s %s, expected %s %s",
			order.ID, amount, currency, order.ChargeAmount, order.ChargeCurrency)
		return domain.Conflict("Confirmed amount does not match the expected charge")
	}

	applied, err := s.orders.MarkPaid(ctx, orderID, amount, currency)
	if err != nil {
		return err
	}
	if applied {
		log.Printf("payment confirmed for order %s: %s %s", order.ID, amount, currency)
	}
	return nil
}

func (s *paymentService) Status(ctx context.Context, orderID, userID uuid.UUID) (*PaymentStatusInfo, error) {
	order, err := s.orders.FindByIdForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("Order not found")
	}
	return &PaymentStatusInfo{
		PaymentStatus: order.PaymentStatus,
		PaidAmount:    order.PaidAmount,
		PaidCurrency:  order.PaidCurrency,
	}, nil
}

func (s *paymentService) SimulatePayment(ctx context.Context, orderID, userID uuid.UUID) (*domain.Order, error) {
	if s.crypto.VerificationEnabled() {
		return nil, domain.Forbidden("Simulated payments are only available in manual mode")
	}

	order, err := s.orders.FindByIdForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("Order not found")
	}

	amount := order.ChargeAmount
	currency := order.ChargeCurrency
	if amount.IsZero() {
		amount = order.TotalPrice
		currency = stablecoinCurrency
	}
	if _, err := s.orders.MarkPaid(ctx, order.ID, amount, currency); err != nil {
		return nil, err
	}
	return s.orders.FindById(ctx, order.ID)
}

func (s *paymentService) payableOrder(ctx context.Context, orderID, userID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.FindByIdForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("Order not found")
	}
	if order.PaymentStatus == domain.PaymentPaid {
		return nil, domain.Conflict("Order is already paid")
	}
	return order, nil
}

// orderIDFromTradeNo unpacks PREFIX_<orderid>_<timestamp>.
func orderIDFromTradeNo(tradeNo string) (uuid.UUID, error) {
	parts := strings.Split(tradeNo, "_")
	if len(parts) < 2 {
		return uuid.Nil, domain.NotFound("No order matches this payment")
	}
	orderID, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, domain.NotFound("No order matches this payment")
	}
	return orderID, nil
}
