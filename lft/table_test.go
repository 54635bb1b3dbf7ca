package lft_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/severance-engine/lft"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// =============================================================================
// VACATION TABLE
// =============================================================================

func TestVacationDaysForTenure_Steps(t *testing.T) {
	table := lft.Default()

	cases := []struct {
		years int
		want  int
	}{
		{1, 12}, {2, 14}, {3, 16}, {4, 18},
		{5, 20}, {9, 20},
		{10, 22}, {14, 22},
		{15, 24}, {19, 24},
		{20, 26}, {24, 26},
		{25, 28}, {29, 28},
		{30, 30}, {45, 30}, {100, 30},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, table.VacationDaysForTenure(c.years), "years=%d", c.years)
	}
}

func TestVacationDaysForTenure_BelowFirstStepFallsBackToYearOne(t *testing.T) {
	table := lft.Default()

	assert.Equal(t, 12, table.VacationDaysForTenure(0))
	assert.Equal(t, 12, table.VacationDaysForTenure(-3))
}

// =============================================================================
// INTEGRATION FACTORS
// =============================================================================

func TestIntegrationFactorForTenure_Steps(t *testing.T) {
	table := lft.Default()

	cases := []struct {
		years int
		want  string
	}{
		{1, "1.0493"}, {2, "1.0507"}, {3, "1.0521"}, {4, "1.0534"},
		{5, "1.0548"}, {9, "1.0548"}, {10, "1.0562"}, {15, "1.0575"},
		{20, "1.0589"}, {25, "1.0603"}, {30, "1.0616"}, {42, "1.0616"},
		{0, "1.0493"}, {-1, "1.0493"},
	}
	for _, c := range cases {
		got := table.IntegrationFactorForTenure(c.years)
		assert.True(t, got.Equal(dec(c.want)), "years=%d: got %s want %s", c.years, got, c.want)
	}
}

func TestIntegrationFactors_MatchVacationFormula(t *testing.T) {
	// factor = 1 + (15 + vacationDays * 0.25) / 365, rounded to 4 places
	table := lft.Default()
	for years := 1; years <= 35; years++ {
		vacation := decimal.NewFromInt(int64(table.VacationDaysForTenure(years)))
		want := decimal.NewFromInt(1).Add(
			decimal.NewFromInt(15).Add(vacation.Mul(dec("0.25"))).Div(decimal.NewFromInt(365)),
		).Round(4)
		got := table.IntegrationFactorForTenure(years)
		assert.True(t, got.Equal(want), "years=%d: got %s want %s", years, got, want)
	}
}

// =============================================================================
// DERIVED LIMITS
// =============================================================================

func TestDefaultTable_Constants(t *testing.T) {
	table := lft.Default()

	assert.True(t, table.MinimumDailyWage().Equal(dec("248.93")))
	assert.True(t, table.VacationPremiumRate().Equal(dec("0.25")))
	assert.Equal(t, 15, table.MinimumBonusDays())
	assert.Equal(t, 12, table.SeniorityPremiumDaysPerYear())
	assert.Equal(t, 3, table.IndemnificationMonths())
	assert.Equal(t, 50, table.MaxTenureYears())
	assert.True(t, table.SeniorityPremiumDailyCap().Equal(dec("497.86")))
	assert.True(t, table.HighMonthlySalary().Equal(dec("186697.5")))
	assert.True(t, table.HighIntegratedDailyWage().Equal(dec("6223.25")))
	assert.True(t, table.MaxMonthlySalary().Equal(dec("10000000")))
}

func TestSnapshot_IsACopy(t *testing.T) {
	table := lft.Default()

	snap := table.Snapshot()
	snap.VacationDays[0].Days = 99

	assert.Equal(t, 12, table.VacationDaysForTenure(1), "mutating a snapshot must not touch the table")
	assert.Len(t, snap.IntegrationFactors, 10)
}

// =============================================================================
// LOADER
// =============================================================================

const validDoc = `
metadata: {data_year: 2025, description: "override"}
minimum_daily_wage: "278.80"
vacation_premium_rate: "0.25"
minimum_bonus_days: 15
seniority_premium_days_per_year: 12
seniority_premium_wage_cap: "2"
indemnification_months: 3
days_per_month: 30
days_per_year: 365
tenure_days_per_year: "365.25"
max_tenure_years: 50
high_salary_multiple: "25"
max_monthly_salary: "5000000"
vacation_days:
  - {from_year: 1, days: 12}
  - {from_year: 5, days: 20}
integration_factors:
  - {from_year: 1, factor: "1.0493"}
  - {from_year: 5, factor: "1.0548"}
`

func TestLoad_Override(t *testing.T) {
	table, err := lft.Load(strings.NewReader(validDoc))
	require.NoError(t, err)

	assert.Equal(t, 2025, table.DataYear())
	assert.True(t, table.MinimumDailyWage().Equal(dec("278.80")))
	assert.Equal(t, 12, table.VacationDaysForTenure(4))
	assert.Equal(t, 20, table.VacationDaysForTenure(7))
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]string{
		"negative wage":   strings.Replace(validDoc, `"278.80"`, `"-1"`, 1),
		"not a decimal":   strings.Replace(validDoc, `"278.80"`, `"abc"`, 1),
		"unsorted steps":  strings.Replace(validDoc, "{from_year: 5, days: 20}", "{from_year: 1, days: 20}", 1),
		"missing year 1":  strings.Replace(validDoc, "{from_year: 1, days: 12}", "{from_year: 2, days: 12}", 1),
		"factor below 1":  strings.Replace(validDoc, `"1.0548"`, `"0.9"`, 1),
		"unknown field":   validDoc + "\nsurprise: 1\n",
		"zero bonus days": strings.Replace(validDoc, "minimum_bonus_days: 15", "minimum_bonus_days: 0", 1),
		"no salary limit": strings.Replace(validDoc, `max_monthly_salary: "5000000"`, "", 1),
	}
	for name, doc := range cases {
		_, err := lft.Load(strings.NewReader(doc))
		assert.ErrorIs(t, err, lft.ErrInvalidTable, name)
	}
}

func TestLoad_ReportsEveryProblem(t *testing.T) {
	// GIVEN: An override with three independent mistakes
	doc := strings.Replace(validDoc, `"278.80"`, `"abc"`, 1)
	doc = strings.Replace(doc, "minimum_bonus_days: 15", "minimum_bonus_days: 0", 1)
	doc = strings.Replace(doc, `"1.0548"`, `"0.9"`, 1)

	// WHEN: Loading it
	_, err := lft.Load(strings.NewReader(doc))

	// THEN: All of them are reported at once
	require.ErrorIs(t, err, lft.ErrInvalidTable)
	assert.Contains(t, err.Error(), `minimum_daily_wage: "abc" is not a decimal`)
	assert.Contains(t, err.Error(), "minimum_bonus_days must be positive")
	assert.Contains(t, err.Error(), "integration_factors[from_year=5].factor must be >= 1")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := lft.LoadFile("does-not-exist.yaml")
	assert.Error(t, err)
}
