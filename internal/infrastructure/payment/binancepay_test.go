package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sparkles-laundry/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "webhook-secret"

func signPayload(secret, timestamp, nonce string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(timestamp + "\n" + nonce + "\n" + string(body) + "\n"))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}

func signedHeaders(secret string, body []byte) http.Header {
	h := http.Header{}
	h.Set(headerTimestamp, "1700000000000")
	h.Set(headerNonce, "0123456789abcdef0123456789abcdef")
	h.Set(headerSignature, signPayload(secret, "1700000000000", "0123456789abcdef0123456789abcdef", body))
	return h
}

func TestVerifySignatureValid(t *testing.T) {
	g := NewBinancePayGateway("key", testSecret, "merchant", "", "", "", "")
	body := []byte(`{"bizType":"PAY"}`)
	assert.NoError(t, g.VerifySignature(signedHeaders(testSecret, body), body))
}

func TestVerifySignatureCaseInsensitive(t *testing.T) {
	g := NewBinancePayGateway("key", testSecret, "merchant", "", "", "", "")
	body := []byte(`{"bizType":"PAY"}`)
	h := signedHeaders(testSecret, body)
	h.Set(headerSignature, strings.ToLower(h.Get(headerSignature)))
	assert.NoError(t, g.VerifySignature(h, body))
}

func TestVerifySignatureTampered(t *testing.T) {
	g := NewBinancePayGateway("key", testSecret, "merchant", "", "", "", "")
	body := []byte(`{"bizType":"PAY"}`)
	h := signedHeaders(testSecret, body)

	err := g.VerifySignature(h, []byte(`{"bizType":"PAY","data":{}}`))
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	h.Set(headerSignature, signPayload("wrong-secret", "1700000000000", "0123456789abcdef0123456789abcdef", body))
	err = g.VerifySignature(h, body)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestVerifySignatureMissingHeaders(t *testing.T) {
	g := NewBinancePayGateway("key", testSecret, "merchant", "", "", "", "")
	body := []byte(`{}`)

	for _, drop := range []string{headerSignature, headerTimestamp, headerNonce} {
		h := signedHeaders(testSecret, body)
		h.Del(drop)
		err := g.VerifySignature(h, body)
		assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err), "missing %s", drop)
	}
}

func TestVerificationEnabled(t *testing.T) {
	assert.True(t, NewBinancePayGateway("key", testSecret, "m", "", "", "", "").VerificationEnabled())
	assert.False(t, NewBinancePayGateway("", "", "", "", "", "", "").VerificationEnabled())
}

func TestInitiateManualModeWithoutCredentials(t *testing.T) {
	g := NewBinancePayGateway("", "", "", "https://unreachable.invalid", "http://localhost:3000", "TWallet123", "TRC20")

	result, err := g.Initiate(context.Background(), InitiateRequest{
		OrderID:   uuid.New(),
		Reference: "SPARKLES_x_1",
		Amount:    decimal.RequireFromString("34.48"),
		Currency:  "USDT",
	})
	require.NoError(t, err)
	assert.True(t, result.Manual)
	assert.Equal(t, "TWallet123", result.WalletAddress)
	assert.Equal(t, "TRC20", result.Network)
	assert.True(t, strings.HasPrefix(result.PaymentID, "MANUAL_"))
}

func TestInitiateSignsAndParsesResponse(t *testing.T) {
	var captured struct {
		headers http.Header
		body    []byte
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/binancepay/openapi/v2/order", r.URL.Path)
		captured.headers = r.Header.Clone()
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		captured.body = b
		json.NewEncoder(w).Encode(map[string]any{
			"status": "SUCCESS",
			"data": map[string]any{
				"prepayId":    "prepay-789",
				"checkoutUrl": "https://pay.example/checkout",
				"qrcodeLink":  "https://pay.example/qr",
				"expireTime":  4102444800000,
			},
		})
	}))
	defer srv.Close()

	g := NewBinancePayGateway("api-key", testSecret, "merchant", srv.URL, "http://localhost:3000", "", "")
	orderID := uuid.New()
	result, err := g.Initiate(context.Background(), InitiateRequest{
		OrderID:     orderID,
		Reference:   "SPARKLES_" + orderID.String() + "_1",
		Amount:      decimal.RequireFromString("5"),
		Currency:    "USDT",
		Description: "Laundry service - dry-clean",
	})
	require.NoError(t, err)
	assert.Equal(t, "prepay-789", result.PaymentID)
	assert.Equal(t, "https://pay.example/checkout", result.CheckoutURL)
	assert.Equal(t, "https://pay.example/qr", result.QRCodeURL)
	assert.EqualValues(t, 4102444800000, result.ExpireTime)

	ts := captured.headers.Get(headerTimestamp)
	nonce := captured.headers.Get(headerNonce)
	require.NotEmpty(t, ts)
	require.Len(t, nonce, 32)
	assert.Equal(t, "api-key", captured.headers.Get(headerCertSN))
	assert.Equal(t,
		signPayload(testSecret, ts, nonce, captured.body),
		captured.headers.Get(headerSignature),
		"outbound request must be signed over timestamp, nonce and body")

	var sent binanceOrderRequest
	require.NoError(t, json.Unmarshal(captured.body, &sent))
	assert.Equal(t, "5.00", sent.OrderAmount)
	assert.Equal(t, "USDT", sent.Currency)
	assert.Equal(t, "WEB", sent.Env.TerminalType)
}

func TestInitiateProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "FAIL", "errorMessage": "merchant disabled"})
	}))
	defer srv.Close()

	g := NewBinancePayGateway("api-key", testSecret, "merchant", srv.URL, "http://localhost:3000", "", "")
	_, err := g.Initiate(context.Background(), InitiateRequest{
		OrderID:   uuid.New(),
		Reference: "SPARKLES_x_1",
		Amount:    decimal.RequireFromString("5"),
		Currency:  "USDT",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindRemote, domain.KindOf(err))
	assert.Contains(t, err.Error(), "merchant disabled")
}

func TestGenerateNonceLengthAndUniqueness(t *testing.T) {
	a, err := generateNonce(32)
	require.NoError(t, err)
	b, err := generateNonce(32)
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
