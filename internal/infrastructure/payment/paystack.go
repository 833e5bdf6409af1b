package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sparkles-laundry/internal/domain"

	"github.com/shopspring/decimal"
)

var minorUnits = decimal.NewFromInt(100)

// PaystackGateway drives the card rail. Amounts cross the wire in minor
// currency units (kobo); the reference is generated on our side and
// echoed back by the provider.
type PaystackGateway struct {
	secretKey   string
	baseURL     string
	callbackURL string
	client      *http.Client
}

func NewPaystackGateway(secretKey, baseURL, callbackURL string) *PaystackGateway {
	return &PaystackGateway{
		secretKey:   secretKey,
		baseURL:     baseURL,
		callbackURL: callbackURL,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

type paystackInitRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Reference   string            `json:"reference"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CallbackURL string            `json:"callback_url,omitempty"`
}

type paystackResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string          `json:"authorization_url"`
		AccessCode       string          `json:"access_code"`
		Reference        string          `json:"reference"`
		Status           string          `json:"status"`
		Amount           int64           `json:"amount"`
		Currency         string          `json:"currency"`
	} `json:"data"`
}

func (g *PaystackGateway) Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error) {
	if g.secretKey == "" {
		return nil, domain.Remote("card payments are not configured", nil)
	}

	body, err := json.Marshal(paystackInitRequest{
		Email:       req.CustomerEmail,
		Amount:      req.Amount.Mul(minorUnits).Round(0).IntPart(),
		Reference:   req.Reference,
		Metadata:    map[string]string{"orderId": req.OrderID.String()},
		CallbackURL: g.callbackURL,
	})
	if err != nil {
		return nil, err
	}

	var resp paystackResponse
	if err := g.do(ctx, http.MethodPost, "/transaction/initialize", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, domain.Remote("failed to initialize payment: "+resp.Message, nil)
	}

	return &InitiateResult{
		Reference:        resp.Data.Reference,
		AuthorizationURL: resp.Data.AuthorizationURL,
		AccessCode:       resp.Data.AccessCode,
	}, nil
}

func (g *PaystackGateway) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	if g.secretKey == "" {
		return nil, domain.Remote("card payments are not configured", nil)
	}

	var resp paystackResponse
	if err := g.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, domain.Remote("payment verification failed: "+resp.Message, nil)
	}

	result := &VerifyResult{
		Amount:   decimal.NewFromInt(resp.Data.Amount).Div(minorUnits),
		Currency: resp.Data.Currency,
	}
	switch resp.Data.Status {
	case "success":
		result.Paid = true
	case "failed":
		result.Failed = true
	}
	return result, nil
}

func (g *PaystackGateway) do(ctx context.Context, method, path string, body []byte, out *paystackResponse) error {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.Remote("card provider unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return domain.Remote(fmt.Sprintf("card provider returned %d", resp.StatusCode), nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.Remote("invalid response from card provider", err)
	}
	return nil
}
