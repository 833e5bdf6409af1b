package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	MethodCard       PaymentMethod = "card"
	MethodStablecoin PaymentMethod = "stablecoin"
)

// PaymentDescriptor is what the caller needs to complete a payment
// attempt: either a hosted checkout to redirect to, or (manual mode) a
// wallet address to settle against out-of-band.
type PaymentDescriptor struct {
	OrderID          uuid.UUID       `json:"orderId"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	PaymentID        string          `json:"paymentId,omitempty"`
	Reference        string          `json:"reference,omitempty"`
	CheckoutURL      string          `json:"checkoutUrl,omitempty"`
	AuthorizationURL string          `json:"authorizationUrl,omitempty"`
	AccessCode       string          `json:"accessCode,omitempty"`
	QRCodeURL        string          `json:"qrCodeUrl,omitempty"`
	ExpireTime       int64           `json:"expireTime,omitempty"`
	Manual           bool            `json:"manual,omitempty"`
	WalletAddress    string          `json:"walletAddress,omitempty"`
	Network          string          `json:"network,omitempty"`
}
