package repo

import (
	"context"
	"database/sql"

	"sparkles-laundry/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// defaultRate seeds the singleton the first time anything reads it.
var defaultRate = decimal.RequireFromString("1450")

type RateRepo interface {
	// Get reads the singleton rate, creating it with the default value
	// when missing. Every caller sees the freshest row; there is no
	// cache in front of it.
	Get(ctx context.Context) (*domain.ExchangeRate, error)
	Update(ctx context.Context, rate decimal.Decimal, updatedBy uuid.UUID) (*domain.ExchangeRate, error)
}

type rateRepo struct {
	db *sql.DB
}

func NewRateRepo(db *sql.DB) RateRepo {
	return &rateRepo{db: db}
}

func (r *rateRepo) Get(ctx context.Context) (*domain.ExchangeRate, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO exchange_rate (id, rate) VALUES (1, $1) ON CONFLICT (id) DO NOTHING`,
		defaultRate)
	if err != nil {
		return nil, err
	}

	var rate domain.ExchangeRate
	err = r.db.QueryRowContext(ctx,
		`SELECT rate, last_updated, updated_by FROM exchange_rate WHERE id = 1`).
		Scan(&rate.Rate, &rate.LastUpdated, &rate.UpdatedBy)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *rateRepo) Update(ctx context.Context, newRate decimal.Decimal, updatedBy uuid.UUID) (*domain.ExchangeRate, error) {
	var rate domain.ExchangeRate
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO exchange_rate (id, rate, last_updated, updated_by)
		VALUES (1, $1, now(), $2)
		ON CONFLICT (id) DO UPDATE
		SET rate = EXCLUDED.rate,
		    last_updated = EXCLUDED.last_updated,
		    updated_by = EXCLUDED.updated_by
		RETURNING rate, last_updated, updated_by`,
		newRate, updatedBy).
		Scan(&rate.Rate, &rate.LastUpdated, &rate.UpdatedBy)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}
