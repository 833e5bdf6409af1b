// Package payment holds the adapters that translate generic payment
// operations into the two external provider protocols.
package payment

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InitiateRequest struct {
	OrderID       uuid.UUID
	Reference     string
	Amount        decimal.Decimal
	Currency      string
	Description   string
	CustomerEmail string
}

type InitiateResult struct {
	PaymentID        string
	Reference        string
	CheckoutURL      string
	AuthorizationURL string
	AccessCode       string
	QRCodeURL        string
	ExpireTime       int64

	// Manual mode: no provider call was made; the caller presents the
	// wallet details to the user for out-of-band settlement.
	Manual        bool
	WalletAddress string
	Network       string
}

type VerifyResult struct {
	// Paid is set on a provider-confirmed successful charge, Failed on
	// a terminal decline. Neither set means still in flight.
	Paid     bool
	Failed   bool
	Amount   decimal.Decimal
	Currency string
}

// CardGateway is the synchronous rail: a hosted checkout is created up
// front and the outcome is pulled by reference when the user returns.
type CardGateway interface {
	Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error)
	Verify(ctx context.Context, reference string) (*VerifyResult, error)
}

// CryptoGateway is the asynchronous rail: the outcome arrives as a
// signed webhook, verified against the configured secret.
type CryptoGateway interface {
	Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error)
	VerifySignature(header http.Header, body []byte) error
	// VerificationEnabled is false only in manual/testnet mode, which
	// is an explicit configuration state, never inferred per request.
	VerificationEnabled() bool
}
