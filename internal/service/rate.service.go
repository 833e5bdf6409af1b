package service

import (
	"context"

	"sparkles-laundry/internal/domain"
	"sparkles-laundry/internal/repo"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Conversion struct {
	Local decimal.Decimal `json:"local"`
	USDT  decimal.Decimal `json:"usdt"`
	Rate  decimal.Decimal `json:"rate"`
}

type RateService interface {
	Get(ctx context.Context) (*domain.ExchangeRate, error)
	Update(ctx context.Context, rate decimal.Decimal, updatedBy uuid.UUID) (*domain.ExchangeRate, error)
	Convert(ctx context.Context, localAmount decimal.Decimal) (*Conversion, error)
}

type rateService struct {
	rates repo.RateRepo
}

func NewRateService(rates repo.RateRepo) RateService {
	return &rateService{rates: rates}
}

func (s *rateService) Get(ctx context.Context) (*domain.ExchangeRate, error) {
	return s.rates.Get(ctx)
}

func (s *rateService) Update(ctx context.Context, rate decimal.Decimal, updatedBy uuid.UUID) (*domain.ExchangeRate, error) {
	if !rate.IsPositive() {
		return nil, domain.Validation("Valid rate is required")
	}
	return s.rates.Update(ctx, rate, updatedBy)
}

func (s *rateService) Convert(ctx context.Context, localAmount decimal.Decimal) (*Conversion, error) {
	if !localAmount.IsPositive() {
		return nil, domain.Validation("Valid amount is required")
	}
	rate, err := s.rates.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &Conversion{
		Local: localAmount,
		USDT:  localAmount.Div(rate.Rate).Round(2),
		Rate:  rate.Rate,
	}, nil
}
