package severance

import (
	"github.com/shopspring/decimal"
	"github.com/warp/severance-engine/lft"
)

// =============================================================================
// BASE PAY DERIVATION
// =============================================================================
// Package-level functions use lft.Default(); Calculator methods use the
// calculator's own table.

// DailySalary is monthly / 30. Unrounded; the components built on it round.
func DailySalary(monthly decimal.Decimal) (decimal.Decimal, error) {
	return dailySalary(lft.Default(), monthly)
}

// TenureYears is whole days of service / 365.25, never negative.
func TenureYears(hire, termination Date) decimal.Decimal {
	return tenureYears(lft.Default(), hire, termination)
}

// TenureFloor truncates fractional tenure to completed years.
func TenureFloor(tenure decimal.Decimal) int {
	if tenure.IsNegative() {
		return 0
	}
	return int(tenure.Floor().IntPart())
}

// DaysWorkedInTerminationYear counts days from the later of the hire date and
// January 1st of the termination year through the termination date,
// inclusive, clamped to [0, 365].
func DaysWorkedInTerminationYear(hire, termination Date) int {
	return daysWorkedInTerminationYear(lft.Default(), hire, termination)
}

func dailySalary(table *lft.Table, monthly decimal.Decimal) (decimal.Decimal, error) {
	if !monthly.IsPositive() {
		return decimal.Zero, invalid("monthlySalary", "must be greater than zero")
	}
	return monthly.Div(decimalInt(table.DaysPerMonth())), nil
}

func tenureYears(table *lft.Table, hire, termination Date) decimal.Decimal {
	days := DaysBetween(hire, termination)
	if days <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(days)).Div(table.TenureDaysPerYear())
}

func daysWorkedInTerminationYear(table *lft.Table, hire, termination Date) int {
	start := StartOfYear(termination.Year())
	if hire.After(start) {
		start = hire
	}
	days := DaysBetween(start, termination) + 1
	switch {
	case days < 0:
		return 0
	case days > table.DaysPerYear():
		return table.DaysPerYear()
	}
	return days
}

func decimalInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// roundMoney rounds to centavos, half away from zero.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
