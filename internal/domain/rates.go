package domain

import (
	"github.com/shopspring/decimal"
)

// RateSourceMetalPriceAPI identifies the upstream pricing provider.
const RateSourceMetalPriceAPI = "metalpriceapi"

// MetalRate is a normalized per-gram market rate for the basis metal.
type MetalRate struct {
	Basis     NisabBasis      `json:"basis"`
	Metal     string          `json:"metal"`
	Currency  string          `json:"currency"`
	PerGram   decimal.Decimal `json:"per_gram"`
	Timestamp int64           `json:"timestamp"`
	Source    string          `json:"source"`
}
