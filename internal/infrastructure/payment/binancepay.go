package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sparkles-laundry/internal/domain"
)

const (
	headerSignature = "BinancePay-Signature"
	headerTimestamp = "BinancePay-Timestamp"
	headerNonce     = "BinancePay-Nonce"
	headerCertSN    = "BinancePay-Certificate-SN"
)

// BinancePayGateway drives the stablecoin rail. With no credentials
// configured it runs in manual/testnet mode: Initiate hands back a
// wallet address instead of calling out, and webhook signature checks
// are off. That mode is a deployment decision, not a per-request guess.
type BinancePayGateway struct {
	apiKey        string
	secret        string
	merchantID    string
	baseURL       string
	appURL        string
	manualWallet  string
	manualNetwork string
	client        *http.Client
}

func NewBinancePayGateway(apiKey, secret, merchantID, baseURL, appURL, manualWallet, manualNetwork string) *BinancePayGateway {
	return &BinancePayGateway{
		apiKey:        apiKey,
		secret:        secret,
		merchantID:    merchantID,
		baseURL:       baseURL,
		appURL:        appURL,
		manualWallet:  manualWallet,
		manualNetwork: manualNetwork,
		client:        &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *BinancePayGateway) VerificationEnabled() bool {
	return g.secret != ""
}

func (g *BinancePayGateway) configured() bool {
	return g.apiKey != "" && g.secret != ""
}

type binanceOrderRequest struct {
	Env struct {
		TerminalType string `json:"terminalType"`
	} `json:"env"`
	MerchantTradeNo string      `json:"merchantTradeNo"`
	OrderAmount     string      `json:"orderAmount"`
	Currency        string      `json:"currency"`
	Goods           binanceGood `json:"goods"`
	ReturnURL       string      `json:"returnUrl"`
	CancelURL       string      `json:"cancelUrl"`
	WebhookURL      string      `json:"webhookUrl"`
}

type binanceGood struct {
	GoodsType        string `json:"goodsType"`
	GoodsCategory    string `json:"goodsCategory"`
	ReferenceGoodsID string `json:"referenceGoodsId"`
	GoodsName        string `json:"goodsName"`
	GoodsDetail      string `json:"goodsDetail"`
}

type binanceOrderResponse struct {
	Status string `json:"status"`
	Data   struct {
		PrepayID    string `json:"prepayId"`
		CheckoutURL string `json:"checkoutUrl"`
		QRCodeLink  string `json:"qrcodeLink"`
		ExpireTime  int64  `json:"expireTime"`
	} `json:"data"`
	ErrorMessage string `json:"errorMessage"`
}

func (g *BinancePayGateway) Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error) {
	if !g.configured() {
		return &InitiateResult{
			PaymentID:     fmt.Sprintf("MANUAL_%d", time.Now().UnixMilli()),
			Reference:     req.Reference,
			Manual:        true,
			WalletAddress: g.manualWallet,
			Network:       g.manualNetwork,
		}, nil
	}

	orderReq := binanceOrderRequest{
		MerchantTradeNo: req.Reference,
		OrderAmount:     req.Amount.StringFixed(2),
		Currency:        req.Currency,
		Goods: binanceGood{
			GoodsType:        "02", // virtual goods
			GoodsCategory:    "Z000",
			ReferenceGoodsID: req.OrderID.String(),
			GoodsName:        fmt.Sprintf("Sparkles Laundry Order #%s", shortID(req.OrderID.String())),
			GoodsDetail:      req.Description,
		},
		ReturnURL:  g.appURL + "/dashboard",
		CancelURL:  g.appURL + "/checkout?orderId=" + req.OrderID.String(),
		WebhookURL: g.appURL + "/api/payments/webhook",
	}
	orderReq.Env.TerminalType = "WEB"

	body, err := json.Marshal(orderReq)
	if err != nil {
		return nil, err
	}

	timestamp := time.Now().UnixMilli()
	nonce, err := generateNonce(32)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/binancepay/openapi/v2/order", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(headerTimestamp, fmt.Sprintf("%d", timestamp))
	httpReq.Header.Set(headerNonce, nonce)
	httpReq.Header.Set(headerCertSN, g.apiKey)
	httpReq.Header.Set(headerSignature, g.sign(fmt.Sprintf("%d", timestamp), nonce, body))

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, domain.Remote("stablecoin provider unreachable", err)
	}
	defer resp.Body.Close()

	var orderResp binanceOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return nil, domain.Remote("invalid response from stablecoin provider", err)
	}
	if orderResp.Status != "SUCCESS" {
		msg := orderResp.ErrorMessage
		if msg == "" {
			msg = "unknown error"
		}
		return nil, domain.Remote("failed to create payment: "+msg, nil)
	}

	return &InitiateResult{
		PaymentID:   orderResp.Data.PrepayID,
		Reference:   req.Reference,
		CheckoutURL: orderResp.Data.CheckoutURL,
		QRCodeURL:   orderResp.Data.QRCodeLink,
		ExpireTime:  orderResp.Data.ExpireTime,
	}, nil
}

// VerifySignature checks the webhook signature: HMAC-SHA512 over the
// literal timestamp, nonce and payload bytes, hex-encoded, compared
// case-insensitively. All three headers must be present.
func (g *BinancePayGateway) VerifySignature(header http.Header, body []byte) error {
	received := header.Get(headerSignature)
	timestamp := header.Get(headerTimestamp)
	nonce := header.Get(headerNonce)
	if received == "" || timestamp == "" || nonce == "" {
		return domain.Unauthorized("missing signature headers")
	}

	expected := g.sign(timestamp, nonce, body)
	if !hmac.Equal([]byte(strings.ToUpper(received)), []byte(expected)) {
		return domain.Unauthorized("invalid signature")
	}
	return nil
}

func (g *BinancePayGateway) sign(timestamp, nonce string, body []byte) string {
	payload := timestamp + "\n" + nonce + "\n" + string(body) + "\n"
	mac := hmac.New(sha512.New, []byte(g.secret))
	mac.Write([]byte(payload))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}

// generateNonce draws from crypto/rand; nonces are never reused.
func generateNonce(length int) (string, error) {
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf)[:length], nil
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}
