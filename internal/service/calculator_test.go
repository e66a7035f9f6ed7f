package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/segyhp/zakat-engine/internal/domain"
)

func testNisab() NisabConfig {
	return NisabConfig{
		GoldGrams:   decimal.RequireFromString("87.48"),
		SilverGrams: decimal.RequireFromString("612.36"),
		ZakatRate:   decimal.RequireFromString("0.025"),
	}
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name              string
		input             domain.ZakatInput
		expectedTotal     decimal.Decimal
		expectedNet       decimal.Decimal
		expectedThreshold decimal.Decimal
		expectedEligible  bool
		expectedDue       decimal.Decimal
		rateMissing       bool
	}{
		{
			name: "cash above silver nisab",
			input: domain.ZakatInput{
				Cash:              amount("100000"),
				SilverRatePerGram: amount("80"),
				NisabBasis:        domain.NisabBasisSilver,
			},
			expectedTotal:     amount("100000"),
			expectedNet:       amount("100000"),
			expectedThreshold: amount("48988.8"), // 612.36 * 80
			expectedEligible:  true,
			expectedDue:       amount("2500"),
		},
		{
			name:        "all fields unset",
			input:       domain.ZakatInput{NisabBasis: domain.NisabBasisSilver},
			rateMissing: true,
		},
		{
			name: "debts exceed assets",
			input: domain.ZakatInput{
				Cash:              amount("50000"),
				Debts:             amount("60000"),
				SilverRatePerGram: amount("80"),
				NisabBasis:        domain.NisabBasisSilver,
			},
			expectedTotal:     amount("50000"),
			expectedNet:       amount("0"),
			expectedThreshold: amount("48988.8"),
			expectedEligible:  false,
			expectedDue:       amount("0"),
		},
		{
			name: "flat gold below gold nisab",
			input: domain.ZakatInput{
				GoldGrams:       amount("10"),
				GoldRatePerGram: amount("6000"),
				NisabBasis:      domain.NisabBasisGold,
			},
			expectedTotal:     amount("60000"),
			expectedNet:       amount("60000"),
			expectedThreshold: amount("524880"), // 87.48 * 6000
			expectedEligible:  false,
			expectedDue:       amount("0"),
		},
		{
			name: "net wealth exactly at threshold is eligible",
			input: domain.ZakatInput{
				Cash:              amount("48988.8"),
				SilverRatePerGram: amount("80"),
				NisabBasis:        domain.NisabBasisSilver,
			},
			expectedTotal:     amount("48988.8"),
			expectedNet:       amount("48988.8"),
			expectedThreshold: amount("48988.8"),
			expectedEligible:  true,
			expectedDue:       amount("1224.72"),
		},
		{
			name: "large wealth with missing basis rate",
			input: domain.ZakatInput{
				Cash:       amount("1000000"),
				NisabBasis: domain.NisabBasisSilver,
			},
			expectedTotal: amount("1000000"),
			expectedNet:   amount("1000000"),
			rateMissing:   true,
		},
		{
			name: "every asset category summed",
			input: domain.ZakatInput{
				Cash:              amount("100"),
				BankBalance:       amount("200"),
				GoldGrams:         amount("2"),
				GoldRatePerGram:   amount("50"),
				SilverGrams:       amount("10"),
				SilverRatePerGram: amount("4"),
				Investments:       amount("300"),
				BusinessAssets:    amount("400"),
				MoneyOwed:         amount("500"),
				Debts:             amount("140"),
				NisabBasis:        domain.NisabBasisSilver,
			},
			expectedTotal:     amount("1640"), // 100+200+100+40+300+400+500
			expectedNet:       amount("1500"),
			expectedThreshold: amount("2449.44"), // 612.36 * 4
			expectedEligible:  false,
			expectedDue:       amount("0"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Calculate(tt.input, testNisab())

			if tt.rateMissing {
				assert.True(t, result.NisabRateMissing)
				assert.False(t, result.Eligible)
				assert.True(t, result.ZakatDue.IsZero())
				assert.True(t, result.NisabThreshold.IsZero())
				return
			}

			assert.False(t, result.NisabRateMissing)
			assert.True(t, result.TotalAssets.Equal(tt.expectedTotal),
				"total assets: expected %v, got %v", tt.expectedTotal, result.TotalAssets)
			assert.True(t, result.NetWealth.Equal(tt.expectedNet),
				"net wealth: expected %v, got %v", tt.expectedNet, result.NetWealth)
			assert.True(t, result.NisabThreshold.Equal(tt.expectedThreshold),
				"threshold: expected %v, got %v", tt.expectedThreshold, result.NisabThreshold)
			assert.Equal(t, tt.expectedEligible, result.Eligible)
			assert.True(t, result.ZakatDue.Equal(tt.expectedDue),
				"due: expected %v, got %v", tt.expectedDue, result.ZakatDue)
		})
	}
}

func TestCalculate_PerKaratGold(t *testing.T) {
	input := domain.ZakatInput{
		GoldHoldings: []domain.GoldHolding{
			{Purity: domain.GoldPurity24K, Grams: amount("10"), RatePerGram: amount("6000")},
			{Purity: domain.GoldPurity18K, Grams: amount("10"), RatePerGram: amount("4500")},
			{Purity: domain.GoldPurityCustom, Grams: amount("10"), RatePerGram: amount("6000"), PurityPercent: amount("50")},
		},
		NisabBasis: domain.NisabBasisGold,
	}

	result := Calculate(input, testNisab())

	// 60000 + 45000 + 30000 (custom bucket rate halved by purity)
	assert.True(t, result.Breakdown.GoldValue.Equal(amount("135000")),
		"gold value: got %v", result.Breakdown.GoldValue)
	assert.True(t, result.TotalAssets.Equal(amount("135000")))

	// Threshold resolves from the 24k bucket when the flat rate is unset.
	assert.False(t, result.NisabRateMissing)
	assert.True(t, result.NisabThreshold.Equal(amount("524880")))
	assert.False(t, result.Eligible)
}

func TestCalculate_PerKaratWinsOverFlat(t *testing.T) {
	input := domain.ZakatInput{
		GoldGrams:       amount("1000"),
		GoldRatePerGram: amount("9999"),
		GoldHoldings: []domain.GoldHolding{
			{Purity: domain.GoldPurity22K, Grams: amount("5"), RatePerGram: amount("100")},
		},
		NisabBasis: domain.NisabBasisSilver,
		// Silver rate left unset on purpose
	}

	result := Calculate(input, testNisab())

	assert.True(t, result.Breakdown.GoldValue.Equal(amount("500")),
		"flat fields must be ignored when buckets are present, got %v", result.Breakdown.GoldValue)
	assert.True(t, result.NisabRateMissing)
}

func TestCalculate_Idempotent(t *testing.T) {
	input := domain.ZakatInput{
		Cash:              amount("12345.67"),
		SilverGrams:       amount("700"),
		SilverRatePerGram: amount("82.5"),
		Debts:             amount("1000"),
		NisabBasis:        domain.NisabBasisSilver,
	}

	first := Calculate(input, testNisab())
	second := Calculate(input, testNisab())

	assert.Equal(t, first, second)
}

func TestCalculate_Monotonicity(t *testing.T) {
	base := domain.ZakatInput{
		Cash:              amount("10000"),
		BankBalance:       amount("5000"),
		Investments:       amount("2000"),
		SilverRatePerGram: amount("80"),
		NisabBasis:        domain.NisabBasisSilver,
	}
	baseline := Calculate(base, testNisab())

	bumps := map[string]domain.ZakatInput{}

	bumped := base
	bumped.Cash = bumped.Cash.Add(amount("100"))
	bumps["cash"] = bumped

	bumped = base
	bumped.BankBalance = bumped.BankBalance.Add(amount("100"))
	bumps["bank balance"] = bumped

	bumped = base
	bumped.Investments = bumped.Investments.Add(amount("100"))
	bumps["investments"] = bumped

	bumped = base
	bumped.BusinessAssets = bumped.BusinessAssets.Add(amount("100"))
	bumps["business assets"] = bumped

	bumped = base
	bumped.MoneyOwed = bumped.MoneyOwed.Add(amount("100"))
	bumps["money owed"] = bumped

	bumped = base
	bumped.SilverGrams = bumped.SilverGrams.Add(amount("100"))
	bumps["silver grams"] = bumped

	for field, input := range bumps {
		result := Calculate(input, testNisab())
		assert.True(t, result.TotalAssets.GreaterThanOrEqual(baseline.TotalAssets),
			"%s: total assets decreased", field)
		assert.True(t, result.NetWealth.GreaterThanOrEqual(baseline.NetWealth),
			"%s: net wealth decreased", field)
		assert.True(t, result.ZakatDue.GreaterThanOrEqual(baseline.ZakatDue),
			"%s: zakat due decreased", field)
	}
}

func TestCalculate_NeverNegative(t *testing.T) {
	inputs := []domain.ZakatInput{
		{Debts: amount("999999999"), NisabBasis: domain.NisabBasisSilver},
		{Cash: amount("1"), Debts: amount("2"), SilverRatePerGram: amount("80"), NisabBasis: domain.NisabBasisSilver},
		{NisabBasis: domain.NisabBasisGold},
	}

	for _, input := range inputs {
		result := Calculate(input, testNisab())
		assert.False(t, result.NetWealth.IsNegative())
		assert.False(t, result.ZakatDue.IsNegative())
	}
}
