package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ExchangeRate is a singleton record: the current stablecoin-to-local
// ratio, overwritten in place on update. It is not a historical ledger.
type ExchangeRate struct {
	Rate        decimal.Decimal `json:"rate"`
	LastUpdated time.Time       `json:"lastUpdated"`
	UpdatedBy   uuid.NullUUID   `json:"-"`
}
