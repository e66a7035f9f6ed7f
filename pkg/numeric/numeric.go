package numeric

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a user-declared numeric field: either a parsed non-negative
// decimal or unset. Empty, non-numeric and negative raw input all normalize
// to unset rather than producing a validation error.
type Amount struct {
	value decimal.Decimal
	set   bool
}

// Unset returns the unset marker.
func Unset() Amount {
	return Amount{}
}

// FromDecimal wraps an already-parsed value. Negative values collapse to unset.
func FromDecimal(d decimal.Decimal) Amount {
	if d.IsNegative() {
		return Amount{}
	}
	return Amount{value: d, set: true}
}

// ParseAmount converts raw user-entered text to an Amount.
func ParseAmount(raw string) Amount {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Amount{}
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Amount{}
	}

	return FromDecimal(d)
}

// IsSet reports whether the field carries a value.
func (a Amount) IsSet() bool {
	return a.set
}

// OrZero returns the parsed value, or zero for the unset marker.
func (a Amount) OrZero() decimal.Decimal {
	if !a.set {
		return decimal.Zero
	}
	return a.value
}

func (a Amount) String() string {
	if !a.set {
		return ""
	}
	return a.value.String()
}
