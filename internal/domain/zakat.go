package domain

import (
	"github.com/shopspring/decimal"
)

// NisabBasis selects which metal's threshold governs eligibility.
type NisabBasis string

const (
	NisabBasisGold   NisabBasis = "gold"
	NisabBasisSilver NisabBasis = "silver"
)

func (b NisabBasis) Valid() bool {
	return b == NisabBasisGold || b == NisabBasisSilver
}

// MetalSymbol returns the provider symbol for the basis metal.
func (b NisabBasis) MetalSymbol() string {
	if b == NisabBasisGold {
		return "XAU"
	}
	return "XAG"
}

// GoldPurity is a fineness bucket for gold holdings. The three standard
// karat grades carry their own market rate per gram; the custom bucket
// carries an explicit purity percentage applied as a rate multiplier.
type GoldPurity string

const (
	GoldPurity24K    GoldPurity = "24k"
	GoldPurity22K    GoldPurity = "22k"
	GoldPurity18K    GoldPurity = "18k"
	GoldPurityCustom GoldPurity = "custom"
)

// Declaration is the raw financial snapshot exactly as the user entered it.
// All numeric fields are free text; empty, non-numeric and negative values
// are treated as unset when the declaration is normalized for calculation.
// Declarations are persisted verbatim so a reloaded form shows what was typed.
type Declaration struct {
	Cash        string `json:"cash"`
	BankBalance string `json:"bank_balance"`

	// Flat gold variant: a single weight and rate.
	GoldGrams       string `json:"gold_grams"`
	GoldRatePerGram string `json:"gold_rate_per_gram"`

	// Per-karat gold variant: purity-bucketed holdings. When any bucket is
	// present it takes precedence over the flat fields.
	GoldHoldings []GoldHoldingDeclaration `json:"gold_holdings,omitempty" validate:"omitempty,dive"`

	SilverGrams       string `json:"silver_grams"`
	SilverRatePerGram string `json:"silver_rate_per_gram"`

	Investments    string `json:"investments"`
	BusinessAssets string `json:"business_assets"`
	MoneyOwed      string `json:"money_owed"`
	Debts          string `json:"debts"`

	NisabBasis NisabBasis `json:"nisab_basis" validate:"omitempty,oneof=gold silver"`
}

// GoldHoldingDeclaration is one purity bucket as entered.
type GoldHoldingDeclaration struct {
	Purity        GoldPurity `json:"purity" validate:"required,oneof=24k 22k 18k custom"`
	PurityPercent string     `json:"purity_percent,omitempty"`
	Grams         string     `json:"grams"`
	RatePerGram   string     `json:"rate_per_gram"`
}

// ZakatInput is the normalized snapshot fed to the calculator. Every field
// is a non-negative decimal; unset fields normalize to zero.
type ZakatInput struct {
	Cash        decimal.Decimal
	BankBalance decimal.Decimal

	GoldGrams       decimal.Decimal
	GoldRatePerGram decimal.Decimal
	GoldHoldings    []GoldHolding

	SilverGrams       decimal.Decimal
	SilverRatePerGram decimal.Decimal

	Investments    decimal.Decimal
	BusinessAssets decimal.Decimal
	MoneyOwed      decimal.Decimal
	Debts          decimal.Decimal

	NisabBasis NisabBasis
}

// GoldHolding is a normalized purity bucket.
type GoldHolding struct {
	Purity        GoldPurity
	PurityPercent decimal.Decimal // 0-100, custom bucket only
	Grams         decimal.Decimal
	RatePerGram   decimal.Decimal
}

// ZakatResult is the computed outcome. It is derived and ephemeral,
// recomputed from the current declaration on demand, never persisted.
type ZakatResult struct {
	TotalAssets decimal.Decimal `json:"total_assets"`
	NetWealth   decimal.Decimal `json:"net_wealth"`

	NisabBasis     NisabBasis      `json:"nisab_basis"`
	NisabThreshold decimal.Decimal `json:"nisab_threshold"`

	// NisabRateMissing marks the threshold as undetermined because the basis
	// metal has no rate. It is a normal result state, not an error, so the
	// caller can prompt for the missing rate instead of reporting
	// ineligibility.
	NisabRateMissing bool `json:"nisab_rate_missing"`

	Eligible bool            `json:"eligible"`
	ZakatDue decimal.Decimal `json:"zakat_due"`

	Breakdown Breakdown `json:"breakdown"`
}

// Breakdown retains the per-category subtotals for display and audit.
type Breakdown struct {
	Cash           decimal.Decimal `json:"cash"`
	BankBalance    decimal.Decimal `json:"bank_balance"`
	GoldValue      decimal.Decimal `json:"gold_value"`
	SilverValue    decimal.Decimal `json:"silver_value"`
	Investments    decimal.Decimal `json:"investments"`
	BusinessAssets decimal.Decimal `json:"business_assets"`
	MoneyOwed      decimal.Decimal `json:"money_owed"`
	Debts          decimal.Decimal `json:"debts"`
}

// DTOs for requests and responses

type SummaryResponse struct {
	Summary string      `json:"summary"`
	Result  ZakatResult `json:"result"`
}

type TabPreferenceRequest struct {
	Tab string `json:"tab" validate:"required,oneof=home pillars zakat hajj settings"`
}

type TabPreferenceResponse struct {
	DeviceID string `json:"device_id"`
	Tab      string `json:"tab"`
}
