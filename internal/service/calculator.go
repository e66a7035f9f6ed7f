package service

import (
	"github.com/shopspring/decimal"

	"github.com/segyhp/zakat-engine/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// NisabConfig fixes the metal weights defining the nisab threshold and the
// zakat rate. There is exactly one constant set, injected from configuration.
type NisabConfig struct {
	GoldGrams   decimal.Decimal
	SilverGrams decimal.Decimal
	ZakatRate   decimal.Decimal
}

// Weight returns the nisab weight in grams for the basis metal.
func (n NisabConfig) Weight(basis domain.NisabBasis) decimal.Decimal {
	if basis == domain.NisabBasisGold {
		return n.GoldGrams
	}
	return n.SilverGrams
}

// Calculate derives a ZakatResult from a normalized input. It is a pure
// function: deterministic, synchronous, total over its input domain. It
// never fails; the only error-like outcome is the NisabRateMissing flag.
func Calculate(input domain.ZakatInput, nisab NisabConfig) domain.ZakatResult {
	goldValue := calculateGoldValue(input)
	silverValue := input.SilverGrams.Mul(input.SilverRatePerGram)

	totalAssets := input.Cash.
		Add(input.BankBalance).
		Add(goldValue).
		Add(silverValue).
		Add(input.Investments).
		Add(input.BusinessAssets).
		Add(input.MoneyOwed)

	// Debts can never produce negative wealth.
	netWealth := totalAssets.Sub(input.Debts)
	if netWealth.IsNegative() {
		netWealth = decimal.Zero
	}

	result := domain.ZakatResult{
		TotalAssets: totalAssets,
		NetWealth:   netWealth,
		NisabBasis:  input.NisabBasis,
		ZakatDue:    decimal.Zero,
		Breakdown: domain.Breakdown{
			Cash:           input.Cash,
			BankBalance:    input.BankBalance,
			GoldValue:      goldValue,
			SilverValue:    silverValue,
			Investments:    input.Investments,
			BusinessAssets: input.BusinessAssets,
			MoneyOwed:      input.MoneyOwed,
			Debts:          input.Debts,
		},
	}

	basisRate := basisRatePerGram(input)
	if !basisRate.IsPositive() {
		// Threshold is undetermined without a rate; eligibility is forced
		// false with a distinct flag so callers can prompt for the rate
		// instead of claiming the user is below threshold.
		result.NisabThreshold = decimal.Zero
		result.NisabRateMissing = true
		return result
	}

	result.NisabThreshold = nisab.Weight(input.NisabBasis).Mul(basisRate)
	// The threshold is inclusive: net wealth exactly at nisab is eligible.
	result.Eligible = netWealth.GreaterThanOrEqual(result.NisabThreshold)

	if result.Eligible {
		result.ZakatDue = netWealth.Mul(nisab.ZakatRate)
	}

	return result
}

// calculateGoldValue supports both gold representations. When any purity
// bucket is declared, the per-karat variant wins; otherwise the flat single
// weight and rate apply. The custom bucket's purity percentage scales its
// rate relative to pure metal.
func calculateGoldValue(input domain.ZakatInput) decimal.Decimal {
	if len(input.GoldHoldings) == 0 {
		return input.GoldGrams.Mul(input.GoldRatePerGram)
	}

	value := decimal.Zero
	for _, holding := range input.GoldHoldings {
		rate := holding.RatePerGram
		if holding.Purity == domain.GoldPurityCustom {
			rate = rate.Mul(holding.PurityPercent).Div(oneHundred)
		}
		value = value.Add(holding.Grams.Mul(rate))
	}

	return value
}

// basisRatePerGram resolves the per-gram rate of the basis metal. For gold
// under the per-karat variant the flat rate field still governs the
// threshold when set; the 24k bucket's rate is the fallback, being the pure
// metal the nisab weight refers to.
func basisRatePerGram(input domain.ZakatInput) decimal.Decimal {
	if input.NisabBasis == domain.NisabBasisSilver {
		return input.SilverRatePerGram
	}

	if input.GoldRatePerGram.IsPositive() {
		return input.GoldRatePerGram
	}

	for _, holding := range input.GoldHoldings {
		if holding.Purity == domain.GoldPurity24K && holding.RatePerGram.IsPositive() {
			return holding.RatePerGram
		}
	}

	return decimal.Zero
}
