/*
Package lft holds the Ley Federal del Trabajo reference data used to compute
termination payments.

PURPOSE:
  One immutable Table with the minimum wage, the seniority-indexed vacation
  and integration-factor step tables, and the fixed legal rates (vacation
  premium, bonus days, seniority premium rate and cap, indemnification months).

LOOKUP POLICY:
  Tables are keyed by COMPLETED years of service. Callers truncate fractional
  tenure before the lookup (4.9 years -> 4). Keys past the last step clamp to
  the last step; keys below the first step (0, negative) fall back to the
  first step. Neither case is an error.

    table.VacationDaysForTenure(4)   // 18
    table.VacationDaysForTenure(45)  // 30
    table.VacationDaysForTenure(0)   // 12 (year-1 fallback)

LOADING:
  Default() parses the embedded tables.yaml once. LoadFile/Load parse an
  override (e.g. after the annual minimum-wage update) and validate it,
  reporting every problem at once.
  A Table has no setters; every accessor returns a value or a copy.

SEE ALSO:
  - loader.go: YAML parsing and validation
  - severance/finiquito.go, severance/liquidacion.go: consumers
*/
package lft

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// STEP TABLES
// =============================================================================

// Tier maps the first year of service of a step to its vacation days.
type Tier struct {
	FromYear int `json:"fromYear"`
	Days     int `json:"days"`
}

// FactorTier maps the first year of service of a step to its integration factor.
type FactorTier struct {
	FromYear int             `json:"fromYear"`
	Factor   decimal.Decimal `json:"factor"`
}

// =============================================================================
// TABLE
// =============================================================================

// Table is the immutable set of legal constants.
type Table struct {
	dataYear    int
	description string

	minimumDailyWage      decimal.Decimal
	vacationPremiumRate   decimal.Decimal
	minimumBonusDays      int
	seniorityDaysPerYear  int
	seniorityWageCap      decimal.Decimal
	indemnificationMonths int
	daysPerMonth          int
	daysPerYear           int
	tenureDaysPerYear     decimal.Decimal
	maxTenureYears        int
	highSalaryMultiple    decimal.Decimal
	maxMonthlySalary      decimal.Decimal

	vacation []Tier
	factors  []FactorTier
}

func (t *Table) DataYear() int { return t.dataYear }
func (t *Table) MinimumDailyWage() decimal.Decimal { return t.minimumDailyWage }
func (t *Table) VacationPremiumRate() decimal.Decimal { return t.vacationPremiumRate }
func (t *Table) MinimumBonusDays() int { return t.minimumBonusDays }
func (t *Table) SeniorityPremiumDaysPerYear() int { return t.seniorityDaysPerYear }
func (t *Table) SeniorityPremiumWageCap() decimal.Decimal { return t.seniorityWageCap }
func (t *Table) IndemnificationMonths() int { return t.indemnificationMonths }
func (t *Table) DaysPerMonth() int { return t.daysPerMonth }
func (t *Table) DaysPerYear() int { return t.daysPerYear }
func (t *Table) TenureDaysPerYear() decimal.Decimal { return t.tenureDaysPerYear }
func (t *Table) MaxTenureYears() int { return t.maxTenureYears }
func (t *Table) HighSalaryMultiple() decimal.Decimal { return t.highSalaryMultiple }

// MaxMonthlySalary is the largest monthly salary a calculation accepts.
func (t *Table) MaxMonthlySalary() decimal.Decimal { return t.maxMonthlySalary }

// SeniorityPremiumDailyCap is the highest daily wage the seniority premium
// may be computed on: cap multiple x minimum wage.
func (t *Table) SeniorityPremiumDailyCap() decimal.Decimal {
	return t.minimumDailyWage.Mul(t.seniorityWageCap)
}

// HighMonthlySalary is the monthly salary above which a calculation carries
// a sanity advisory: multiple x minimum wage x days per month.
func (t *Table) HighMonthlySalary() decimal.Decimal {
	return t.minimumDailyWage.Mul(t.highSalaryMultiple).Mul(decimal.NewFromInt(int64(t.daysPerMonth)))
}

// HighIntegratedDailyWage is the SDI above which a liquidation carries an advisory.
func (t *Table) HighIntegratedDailyWage() decimal.Decimal {
	return t.minimumDailyWage.Mul(t.highSalaryMultiple)
}

// VacationDaysForTenure returns the annual vacation entitlement for the given
// number of completed years of service.
func (t *Table) VacationDaysForTenure(years int) int {
	return t.vacation[stepIndex(len(t.vacation), func(i int) int { return t.vacation[i].FromYear }, years)].Days
}

// IntegrationFactorForTenure returns the SDI integration factor for the given
// number of completed years of service.
func (t *Table) IntegrationFactorForTenure(years int) decimal.Decimal {
	return t.factors[stepIndex(len(t.factors), func(i int) int { return t.factors[i].FromYear }, years)].Factor
}

// stepIndex returns the last step whose FromYear <= years, or the first step
// when years precedes every step. Steps are sorted ascending (loader enforces it).
func stepIndex(n int, fromYear func(int) int, years int) int {
	idx := 0
	for i := 0; i < n; i++ {
		if fromYear(i) > years {
			break
		}
		idx = i
	}
	return idx
}

// =============================================================================
// SNAPSHOT - Read-only export for API responses
// =============================================================================

// Snapshot is a JSON-friendly copy of the table.
type Snapshot struct {
	DataYear                    int             `json:"dataYear"`
	Description                 string          `json:"description"`
	MinimumDailyWage            decimal.Decimal `json:"minimumDailyWage"`
	VacationPremiumRate         decimal.Decimal `json:"vacationPremiumRate"`
	MinimumBonusDays            int             `json:"minimumBonusDays"`
	SeniorityPremiumDaysPerYear int             `json:"seniorityPremiumDaysPerYear"`
	SeniorityPremiumDailyCap    decimal.Decimal `json:"seniorityPremiumDailyCap"`
	IndemnificationMonths       int             `json:"indemnificationMonths"`
	MaxTenureYears              int             `json:"maxTenureYears"`
	MaxMonthlySalary            decimal.Decimal `json:"maxMonthlySalary"`
	VacationDays                []Tier          `json:"vacationDays"`
	IntegrationFactors          []FactorTier    `json:"integrationFactors"`
}

// Snapshot copies the table into an exportable value.
func (t *Table) Snapshot() Snapshot {
	vacation := make([]Tier, len(t.vacation))
	copy(vacation, t.vacation)
	factors := make([]FactorTier, len(t.factors))
	copy(factors, t.factors)

	return Snapshot{
		DataYear:                    t.dataYear,
		Description:                 t.description,
		MinimumDailyWage:            t.minimumDailyWage,
		VacationPremiumRate:         t.vacationPremiumRate,
		MinimumBonusDays:            t.minimumBonusDays,
		SeniorityPremiumDaysPerYear: t.seniorityDaysPerYear,
		SeniorityPremiumDailyCap:    t.SeniorityPremiumDailyCap(),
		IndemnificationMonths:       t.indemnificationMonths,
		MaxTenureYears:              t.maxTenureYears,
		MaxMonthlySalary:            t.maxMonthlySalary,
		VacationDays:                vacation,
		IntegrationFactors:          factors,
	}
}
