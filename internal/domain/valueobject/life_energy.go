package valueobject

import "github.com/shopspring/decimal"

// LifeEnergyPrecision is the number of decimal places kept on life energy hours.
const LifeEnergyPrecision int32 = 2

// LifeEnergyHours converts a spend amount into hours of paid work.
// A missing or non-positive wage yields zero hours instead of an error.
// The result is rounded once, half away from zero, and never re-rounded by callers.
func LifeEnergyHours(spent decimal.Decimal, hourlyWage *decimal.Decimal) decimal.Decimal {
	if hourlyWage == nil || !hourlyWage.IsPositive() {
		return decimal.Zero
	}
	return spent.DivRound(*hourlyWage, LifeEnergyPrecision)
}
