package models

import "github.com/shopspring/decimal"

var decimalOneHundred = decimal.NewFromInt(100)

// CalculateTax extracts the tax portion embedded in a tax-inclusive total.
//
// totalAmount already contains the tax; the pre-tax base is derived by
// division: pre = total / (1 + rate/100), tax = total - pre. The result is
// rounded to 2 decimal places with banker's rounding (RoundBank) so that the
// same inputs always produce the same cents on financial reports.
//
// A zero or negative rate yields zero tax. Negative rates are a caller
// precondition violation, not a runtime error.
func CalculateTax(totalAmount decimal.Decimal, taxRatePercent decimal.Decimal) decimal.Decimal {
	if taxRatePercent.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	multiplier := decimal.NewFromInt(1).Add(taxRatePercent.Div(decimalOneHundred))
	preTax := totalAmount.Div(multiplier)
	return totalAmount.Sub(preTax).RoundBank(2)
}

// TaxInclusiveTotal is the inverse of CalculateTax: given a pre-tax base it
// returns the tax-inclusive total.
func TaxInclusiveTotal(preTax decimal.Decimal, taxRatePercent decimal.Decimal) decimal.Decimal {
	if taxRatePercent.LessThanOrEqual(decimal.Zero) {
		return preTax
	}
	multiplier := decimal.NewFromInt(1).Add(taxRatePercent.Div(decimalOneHundred))
	return preTax.Mul(multiplier).RoundBank(2)
}
