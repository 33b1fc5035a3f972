// Package finance holds the pure calculation routines behind invoice
// totals, inventory valuation, and profitability figures. Every
// monetary result is rounded to 2 decimals half away from zero after
// each discrete step; multi-step callers must keep that intermediate
// rounding to reproduce stored totals exactly.
package finance

import "math"

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// VAT returns the tax on an amount at the given fractional rate.
func VAT(amount, rate float64) float64 {
	return Round2(amount * rate)
}

// TotalWithVAT adds tax to a subtotal.
func TotalWithVAT(subtotal, rate float64) float64 {
	return Round2(subtotal + VAT(subtotal, rate))
}

// SubtotalFromTotal backs the tax out of a gross amount.
func SubtotalFromTotal(total, rate float64) float64 {
	return Round2(total / (1 + rate))
}

// Discount returns the reduction on an amount at the given rate.
func Discount(amount, rate float64) float64 {
	return Round2(amount * rate)
}

// AmountAfterDiscount applies Discount and rounds the remainder.
func AmountAfterDiscount(amount, rate float64) float64 {
	return Round2(amount - Discount(amount, rate))
}

// ProfitMargin is the profit as a percentage of cost. A zero cost
// yields 0 rather than infinity.
func ProfitMargin(sellPrice, costPrice float64) float64 {
	if costPrice == 0 {
		return 0
	}
	return Round2((sellPrice - costPrice) / costPrice * 100)
}

// ProfitAmount is the absolute profit per unit.
func ProfitAmount(sellPrice, costPrice float64) float64 {
	return Round2(sellPrice - costPrice)
}

// Markup is the profit as a percentage of the selling price. A zero
// cost yields 0.
func Markup(sellPrice, costPrice float64) float64 {
	if costPrice == 0 {
		return 0
	}
	return Round2((sellPrice - costPrice) / sellPrice * 100)
}

// LineInput is the quantity/price pair invoice totals are derived from.
type LineInput struct {
	Quantity  int
	UnitPrice float64
}

// Totals is the snapshot stored on an invoice at creation.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	VAT      float64 `json:"vat"`
	Total    float64 `json:"total"`
}

// InvoiceTotals derives the invoice snapshot from its lines. The VAT is
// computed from the unrounded running subtotal; subtotal, vat, and
// total are then rounded independently. Changing that order changes
// stored totals by a cent on edge inputs.
func InvoiceTotals(lines []LineInput, rate float64) Totals {
	var subtotal float64
	for _, l := range lines {
		subtotal += float64(l.Quantity) * l.UnitPrice
	}
	vat := VAT(subtotal, rate)
	return Totals{
		Subtotal: Round2(subtotal),
		VAT:      Round2(vat),
		Total:    Round2(subtotal + vat),
	}
}

// StockInput is the quantity/cost pair valuation functions consume.
type StockInput struct {
	Quantity int
	Cost     float64
}

// InventoryValue sums quantity * cost with no rounding applied. The
// asymmetry with the VAT-path functions is intentional.
func InventoryValue(items []StockInput) float64 {
	var total float64
	for _, it := range items {
		total += float64(it.Quantity) * it.Cost
	}
	return total
}

// AverageCost is the simple mean unit cost, 0 for an empty set.
func AverageCost(costs []float64) float64 {
	if len(costs) == 0 {
		return 0
	}
	var sum float64
	for _, c := range costs {
		sum += c
	}
	return Round2(sum / float64(len(costs)))
}

// WeightedAverageCost weights unit costs by quantity on hand, 0 when
// nothing is in stock.
func WeightedAverageCost(items []StockInput) float64 {
	var qty int
	var value float64
	for _, it := range items {
		qty += it.Quantity
		value += float64(it.Quantity) * it.Cost
	}
	if qty == 0 {
		return 0
	}
	return Round2(value / float64(qty))
}

// BreakEvenUnits is the unit count needed to cover fixed costs. When
// the selling price does not exceed the variable cost the answer is
// +Inf; the division is guarded, never computed.
func BreakEvenUnits(fixedCosts, variableCost, sellPrice float64) float64 {
	if sellPrice <= variableCost {
		return math.Inf(1)
	}
	return math.Ceil(fixedCosts / (sellPrice - variableCost))
}

// ContributionMargin is the per-unit amount available to cover fixed
// costs.
func ContributionMargin(sellPrice, variableCost float64) float64 {
	return sellPrice - variableCost
}

// ContributionMarginRatio expresses the contribution margin as a
// fraction of the selling price, 0 for a free item.
func ContributionMarginRatio(sellPrice, variableCost float64) float64 {
	if sellPrice == 0 {
		return 0
	}
	return (sellPrice - variableCost) / sellPrice
}

// CompoundInterest grows a principal at rate over time with the given
// compounding frequency per period.
func CompoundInterest(principal, rate, periods, frequency float64) float64 {
	return principal * math.Pow(1+rate/frequency, frequency*periods)
}

// SimpleInterest is principal * rate * time.
func SimpleInterest(principal, rate, periods float64) float64 {
	return principal * rate * periods
}

// PaymentAmount is the fixed monthly payment amortizing a principal at
// an annual rate over the given number of monthly periods.
func PaymentAmount(principal, annualRate float64, periods int) float64 {
	if annualRate == 0 {
		return principal / float64(periods)
	}
	monthly := annualRate / 12
	factor := math.Pow(1+monthly, float64(periods))
	return principal * (monthly * factor) / (factor - 1)
}

// FutureValue compounds a present value forward.
func FutureValue(presentValue, rate float64, periods int) float64 {
	return presentValue * math.Pow(1+rate, float64(periods))
}

// PresentValue discounts a future value back.
func PresentValue(futureValue, rate float64, periods int) float64 {
	return futureValue / math.Pow(1+rate, float64(periods))
}
