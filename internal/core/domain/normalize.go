package domain

import "github.com/shopspring/decimal"

// NormalizeRate converts a provider's raw quote into the canonical storage
// direction and precision. The raw quote is "unitMultiplier home = raw
// quoteCode" as published by the provider; the stored rate is always
// "1 base = rate quote".
//
// Rescaling happens before quantization so that multi-unit currencies
// (quoted per 100 or per 1000 units) lose no precision, and quantization
// uses banker's rounding to RateScale digits. This is the single place
// multi-unit and precision handling occur; providers never touch storage
// precision themselves.
func NormalizeRate(homeCode, quoteCode string, raw decimal.Decimal, unitMultiplier int64) (string, string, decimal.Decimal) {
	rate := raw
	if unitMultiplier > 1 {
		rate = rate.Div(decimal.NewFromInt(unitMultiplier))
	}
	return NormalizeCode(homeCode), NormalizeCode(quoteCode), rate.RoundBank(RateScale)
}

// QuantizeRate truncates a stored value to the same precision a freshly
// normalized rate carries, so two representations of the same economic rate
// compare equal. Used by the sync upsert to skip spurious writes.
func QuantizeRate(rate decimal.Decimal) decimal.Decimal {
	return rate.RoundBank(RateScale)
}
