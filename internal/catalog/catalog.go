// Package catalog holds the static service and pricing table. There is
// no runtime mutation; pricing changes ship with a deploy.
package catalog

import (
	"sparkles-laundry/internal/domain"

	"github.com/shopspring/decimal"
)

type Item struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type Service struct {
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"basePrice"`
	Unit      string          `json:"unit"`
	Items     []Item          `json:"items"`
}

var services = map[domain.ServiceType]Service{
	domain.ServiceWashFold: {
		Name:      "Wash & Fold",
		BasePrice: price("1.50"),
		Unit:      "lb",
		Items: []Item{
			{Name: "Regular Clothes (per lb)", Price: price("1.50")},
			{Name: "Bedding (per lb)", Price: price("1.75")},
			{Name: "Towels (per lb)", Price: price("1.50")},
		},
	},
	domain.ServiceDryClean: {
		Name:      "Dry Cleaning",
		BasePrice: price("5.00"),
		Unit:      "item",
		Items: []Item{
			{Name: "Shirt", Price: price("5.00")},
			{Name: "Pants", Price: price("7.00")},
			{Name: "Suit (2-piece)", Price: price("15.00")},
			{Name: "Suit (3-piece)", Price: price("20.00")},
			{Name: "Dress", Price: price("12.00")},
			{Name: "Coat/Jacket", Price: price("12.00")},
			{Name: "Tie", Price: price("5.00")},
			{Name: "Sweater", Price: price("8.00")},
		},
	},
	domain.ServiceComforter: {
		Name:      "Comforters & Large Items",
		BasePrice: price("25.00"),
		Unit:      "item",
		Items: []Item{
			{Name: "Comforter (Twin)", Price: price("20.00")},
			{Name: "Comforter (Full/Queen)", Price: price("25.00")},
			{Name: "Comforter (King)", Price: price("30.00")},
			{Name: "Duvet Cover", Price: price("15.00")},
			{Name: "Blanket", Price: price("15.00")},
			{Name: "Curtains (per panel)", Price: price("12.00")},
		},
	},
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// All returns the full catalog keyed by service type.
func All() map[domain.ServiceType]Service { return services }

// Get looks up one service type.
func Get(t domain.ServiceType) (Service, bool) {
	s, ok := services[t]
	return s, ok
}
