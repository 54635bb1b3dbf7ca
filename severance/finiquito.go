/*
finiquito.go - Severance ("finiquito") calculator

PURPOSE:
  Computes what is owed on any separation, whatever the reason.

ALGORITHM:
  daily          = monthlySalary / 30
  daysInYear     = days worked in the termination year (inclusive, <= 365)
  tenure         = days of service / 365.25
  bonus          = daily x bonusDays x daysInYear / 365       (bonusDays default 15)
  vacationPay    = daily x (override ?? table(floor(tenure)))
  vacationPremium= vacationPay x 0.25
  pendingWages   = daily x day-of-month of the termination date
  total          = bonus + vacationPay + vacationPremium + pendingWages

  pendingWages uses the termination day-of-month even when the hire date
  falls inside that same month.

ADVISORIES:
  Monthly salary above 25 x minimum wage x 30 adds a note and a warning log
  line. The calculation proceeds.

SEE ALSO:
  - liquidacion.go: builds on this result
  - derive.go: daily salary, tenure and day counts
*/
package severance

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/warp/severance-engine/lft"
)

// =============================================================================
// CALCULATOR
// =============================================================================

// Calculator binds the calculators to a legal table and a logger for advisories.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	table  *lft.Table
	logger *slog.Logger
}

// NewCalculator returns a calculator. nil arguments select lft.Default() and
// slog.Default().
func NewCalculator(table *lft.Table, logger *slog.Logger) *Calculator {
	if table == nil {
		table = lft.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{table: table, logger: logger}
}

// Table returns the legal table in use.
func (c *Calculator) Table() *lft.Table { return c.table }

// CalculateSeverance runs the finiquito with the default calculator.
func CalculateSeverance(in TerminationInput) (*SeveranceResult, error) {
	return NewCalculator(nil, nil).CalculateSeverance(in)
}

// CalculateSeverance computes the finiquito.
func (c *Calculator) CalculateSeverance(in TerminationInput) (*SeveranceResult, error) {
	if err := ValidateTerminationInput(in, c.table).Err(); err != nil {
		return nil, err
	}

	daily, err := dailySalary(c.table, in.MonthlySalary)
	if err != nil {
		return nil, err
	}
	daysInYear := daysWorkedInTerminationYear(c.table, in.HireDate, in.TerminationDate)
	tenure := tenureYears(c.table, in.HireDate, in.TerminationDate)
	completed := TenureFloor(tenure)

	bonusDays := c.table.MinimumBonusDays()
	if in.BonusDays != nil {
		bonusDays = *in.BonusDays
	}
	vacationDays := c.table.VacationDaysForTenure(completed)
	if in.PendingVacationDays != nil {
		vacationDays = *in.PendingVacationDays
	}

	bonus := c.proportionalBonus(daily, bonusDays, daysInYear)
	vacationPay := roundMoney(daily.Mul(decimalInt(vacationDays)))
	vacationPremium := roundMoney(vacationPay.Mul(c.table.VacationPremiumRate()))
	pendingWages := roundMoney(daily.Mul(decimalInt(in.TerminationDate.Day())))
	total := bonus.Add(vacationPay).Add(vacationPremium).Add(pendingWages)

	res := &SeveranceResult{
		MonthlySalary:    in.MonthlySalary,
		HireDate:         in.HireDate,
		TerminationDate:  in.TerminationDate,
		DailySalary:      roundMoney(daily),
		DaysWorkedInYear: daysInYear,
		TenureYears:      tenure.Round(4),
		CompletedYears:   completed,
		VacationDays:     vacationDays,
		BonusDays:        bonusDays,
		Bonus:            bonus,
		VacationPay:      vacationPay,
		VacationPremium:  vacationPremium,
		PendingWages:     pendingWages,
		Total:            total,
		Breakdown: []LineItem{
			lineItem(ConceptBonus, bonus),
			lineItem(ConceptVacation, vacationPay),
			lineItem(ConceptVacationPremium, vacationPremium),
			lineItem(ConceptPendingWages, pendingWages),
		},
		Notes: []string{},
	}

	if ceiling := c.table.HighMonthlySalary(); in.MonthlySalary.GreaterThan(ceiling) {
		note := fmt.Sprintf("Monthly salary %s exceeds %s (%s x minimum wage x %d); verify the amount",
			in.MonthlySalary.StringFixed(2), ceiling.StringFixed(2),
			c.table.HighSalaryMultiple(), c.table.DaysPerMonth())
		res.Notes = append(res.Notes, note)
		c.logger.Warn("high monthly salary in termination calculation",
			"ceiling", ceiling.String(),
		)
	}

	return res, nil
}

// proportionalBonus is daily x bonusDays x daysInYear / 365, never negative.
func (c *Calculator) proportionalBonus(daily decimal.Decimal, bonusDays, daysInYear int) decimal.Decimal {
	if !daily.IsPositive() || daysInYear <= 0 || bonusDays <= 0 {
		return decimal.Zero
	}
	return roundMoney(
		daily.Mul(decimalInt(bonusDays)).
			Mul(decimalInt(daysInYear)).
			Div(decimalInt(c.table.DaysPerYear())),
	)
}
