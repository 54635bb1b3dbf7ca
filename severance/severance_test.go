package severance_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/severance-engine/lft"
	"github.com/warp/severance-engine/severance"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) severance.Date {
	return severance.NewDate(year, month, day)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(n int) *int { return &n }
func boolPtr(b bool) *bool { return &b }

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, got.Equal(money(want)), append([]any{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

// reference case used across tests: 15000/month, 2020-01-15 .. 2024-01-15
func referenceInput() severance.TerminationInput {
	return severance.TerminationInput{
		MonthlySalary:   money("15000"),
		HireDate:        date(2020, time.January, 15),
		TerminationDate: date(2024, time.January, 15),
	}
}

func newCalculator(buf *bytes.Buffer) *severance.Calculator {
	return severance.NewCalculator(lft.Default(), slog.New(slog.NewTextHandler(buf, nil)))
}

// =============================================================================
// BASE PAY DERIVATION
// =============================================================================

func TestDailySalary(t *testing.T) {
	daily, err := severance.DailySalary(money("15000"))
	require.NoError(t, err)
	assertMoney(t, "500", daily)

	_, err = severance.DailySalary(decimal.Zero)
	assert.ErrorIs(t, err, severance.ErrInvalidInput)

	_, err = severance.DailySalary(money("-1"))
	assert.ErrorIs(t, err, severance.ErrInvalidInput)
}

func TestTenureYears(t *testing.T) {
	assertMoney(t, "4", severance.TenureYears(date(2020, time.January, 15), date(2024, time.January, 15)))
	assertMoney(t, "0", severance.TenureYears(date(2024, time.May, 1), date(2024, time.May, 1)))
	assertMoney(t, "0", severance.TenureYears(date(2024, time.May, 10), date(2024, time.May, 1)), "inverted dates clamp to zero")

	tenure := severance.TenureYears(date(2023, time.January, 1), date(2024, time.January, 1))
	assert.True(t, tenure.LessThan(decimal.NewFromInt(1)), "365 days is under 365.25")
	assert.Equal(t, 0, severance.TenureFloor(tenure))

	// 424 calendar years: 154,863 days, beyond what time.Duration can hold
	long := severance.TenureYears(date(1600, time.January, 1), date(2024, time.January, 1))
	assert.True(t, long.GreaterThan(decimal.RequireFromString("423.99")), long.String())
	assert.True(t, long.LessThan(decimal.NewFromInt(424)), long.String())
	assert.Equal(t, 423, severance.TenureFloor(long))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, severance.DaysBetween(date(2024, time.May, 1), date(2024, time.May, 1)))
	assert.Equal(t, 366, severance.DaysBetween(date(2024, time.January, 1), date(2025, time.January, 1)))
	assert.Equal(t, -9, severance.DaysBetween(date(2024, time.May, 10), date(2024, time.May, 1)))
	assert.Equal(t, 154863, severance.DaysBetween(date(1600, time.January, 1), date(2024, time.January, 1)))
}

func TestCalculateSeverance_CenturiesOfTenure(t *testing.T) {
	// GIVEN: A span far beyond the form ceiling, which calculators accept
	in := referenceInput()
	in.HireDate = date(1600, time.January, 1)
	in.TerminationDate = date(2024, time.January, 1)

	// WHEN: Calculating
	res, err := severance.CalculateSeverance(in)

	// THEN: Tenure reflects the full span
	require.NoError(t, err)
	assert.Equal(t, 423, res.CompletedYears)
	assert.Equal(t, 30, res.VacationDays)
}

func TestTenureFloor_Truncates(t *testing.T) {
	assert.Equal(t, 4, severance.TenureFloor(money("4.9999")))
	assert.Equal(t, 5, severance.TenureFloor(money("5")))
	assert.Equal(t, 0, severance.TenureFloor(money("-2.5")))
}

func TestDaysWorkedInTerminationYear(t *testing.T) {
	cases := []struct {
		name       string
		hire, term severance.Date
		want       int
	}{
		{"hired in prior year", date(2020, time.January, 15), date(2024, time.January, 15), 15},
		{"hired same year", date(2024, time.March, 1), date(2024, time.March, 31), 31},
		{"same day", date(2024, time.June, 3), date(2024, time.June, 3), 1},
		{"full leap year clamps", date(2010, time.June, 1), date(2024, time.December, 31), 365},
		{"full common year", date(2010, time.June, 1), date(2023, time.December, 31), 365},
		{"inverted clamps to zero", date(2024, time.May, 10), date(2024, time.May, 1), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, severance.DaysWorkedInTerminationYear(c.hire, c.term))
		})
	}
}

// =============================================================================
// FINIQUITO
// =============================================================================

func TestCalculateSeverance_ReferenceCase(t *testing.T) {
	// GIVEN: 15000/month, hired 2020-01-15, terminated 2024-01-15
	// WHEN: Computing the finiquito
	// THEN: Every component follows the documented formulas
	res, err := severance.CalculateSeverance(referenceInput())
	require.NoError(t, err)

	assertMoney(t, "500", res.DailySalary)
	assertMoney(t, "4", res.TenureYears)
	assert.Equal(t, 4, res.CompletedYears)
	assert.Equal(t, 15, res.DaysWorkedInYear)
	assert.Equal(t, 18, res.VacationDays)
	assert.Equal(t, 15, res.BonusDays)

	assertMoney(t, "308.22", res.Bonus, "500 x 15 x 15 / 365")
	assertMoney(t, "9000", res.VacationPay)
	assertMoney(t, "2250", res.VacationPremium)
	assertMoney(t, "7500", res.PendingWages)
	assertMoney(t, "19058.22", res.Total)

	require.Len(t, res.Breakdown, 4)
	assert.Equal(t, severance.ConceptBonus, res.Breakdown[0].Concept)
	assert.Equal(t, "Aguinaldo proporcional", res.Breakdown[0].Label)
	assert.Empty(t, res.Notes)
	assert.Equal(t, severance.KindSeverance, res.Kind())
}

func TestCalculateSeverance_SumInvariant(t *testing.T) {
	salaries := []string{"7468.10", "9999.99", "10000", "15000", "33333.33", "87654.32", "250000"}
	hires := []severance.Date{
		date(1999, time.February, 28), date(2016, time.July, 31), date(2023, time.November, 2), date(2024, time.February, 29),
	}
	term := date(2024, time.October, 17)

	for _, s := range salaries {
		for _, h := range hires {
			res, err := severance.CalculateSeverance(severance.TerminationInput{
				MonthlySalary: money(s), HireDate: h, TerminationDate: term,
			})
			require.NoError(t, err)

			sum := res.Bonus.Add(res.VacationPay).Add(res.VacationPremium).Add(res.PendingWages)
			assert.True(t, res.Total.Equal(sum), "salary %s hire %s: total %s != %s", s, h, res.Total, sum)

			var items decimal.Decimal
			for _, li := range res.Breakdown {
				items = items.Add(li.Amount)
			}
			assert.True(t, res.Total.Equal(items), "breakdown must add up to total")
		}
	}
}

func TestCalculateSeverance_MonotonicInSalary(t *testing.T) {
	hire, term := date(2018, time.April, 9), date(2024, time.September, 23)

	var prev *severance.SeveranceResult
	for salary := int64(1000); salary <= 300000; salary += 1777 {
		res, err := severance.CalculateSeverance(severance.TerminationInput{
			MonthlySalary: decimal.NewFromInt(salary), HireDate: hire, TerminationDate: term,
		})
		require.NoError(t, err)
		if prev != nil {
			assert.True(t, res.Bonus.GreaterThanOrEqual(prev.Bonus))
			assert.True(t, res.VacationPay.GreaterThanOrEqual(prev.VacationPay))
			assert.True(t, res.VacationPremium.GreaterThanOrEqual(prev.VacationPremium))
			assert.True(t, res.PendingWages.GreaterThanOrEqual(prev.PendingWages))
			assert.True(t, res.Total.GreaterThanOrEqual(prev.Total))
		}
		prev = res
	}
}

func TestCalculateSeverance_Idempotent(t *testing.T) {
	a, err := severance.CalculateSeverance(referenceInput())
	require.NoError(t, err)
	b, err := severance.CalculateSeverance(referenceInput())
	require.NoError(t, err)

	ab, err := severance.MarshalResult(a)
	require.NoError(t, err)
	bb, err := severance.MarshalResult(b)
	require.NoError(t, err)
	assert.Equal(t, ab, bb)
}

func TestCalculateSeverance_Overrides(t *testing.T) {
	in := referenceInput()
	in.PendingVacationDays = intPtr(5)
	in.BonusDays = intPtr(30)

	res, err := severance.CalculateSeverance(in)
	require.NoError(t, err)

	assert.Equal(t, 5, res.VacationDays)
	assert.Equal(t, 30, res.BonusDays)
	assertMoney(t, "2500", res.VacationPay)
	assertMoney(t, "625", res.VacationPremium)
	assertMoney(t, "616.44", res.Bonus, "500 x 30 x 15 / 365")
}

func TestCalculateSeverance_ZeroPendingVacationOverride(t *testing.T) {
	in := referenceInput()
	in.PendingVacationDays = intPtr(0)

	res, err := severance.CalculateSeverance(in)
	require.NoError(t, err)
	assertMoney(t, "0", res.VacationPay)
	assertMoney(t, "0", res.VacationPremium)
}

func TestCalculateSeverance_PendingWagesUseDayOfMonth(t *testing.T) {
	// Hired on the 20th, terminated on the 5th of the next month: still 5 days.
	res, err := severance.CalculateSeverance(severance.TerminationInput{
		MonthlySalary:   money("9000"),
		HireDate:        date(2024, time.April, 20),
		TerminationDate: date(2024, time.May, 5),
	})
	require.NoError(t, err)
	assertMoney(t, "1500", res.PendingWages)
}

func TestCalculateSeverance_FutureTerminationIsCalculable(t *testing.T) {
	in := referenceInput()
	in.TerminationDate = date(2099, time.March, 3)

	_, err := severance.CalculateSeverance(in)
	assert.NoError(t, err)
}

func TestCalculateSeverance_HighSalaryAdvisory(t *testing.T) {
	// GIVEN: salary above 25 x 248.93 x 30 = 186697.50
	var buf bytes.Buffer
	calc := newCalculator(&buf)

	in := referenceInput()
	in.MonthlySalary = money("200000")

	res, err := calc.CalculateSeverance(in)

	// THEN: The calculation succeeds with a note and a warning log line
	require.NoError(t, err)
	require.Len(t, res.Notes, 1)
	assert.Contains(t, res.Notes[0], "exceeds 186697.50")
	assert.Contains(t, buf.String(), "high monthly salary")
}

func TestCalculateSeverance_AggregatesAllIssues(t *testing.T) {
	_, err := severance.CalculateSeverance(severance.TerminationInput{
		BonusDays:           intPtr(0),
		PendingVacationDays: intPtr(-1),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, severance.ErrInvalidInput)
	assert.True(t, severance.IsClientError(err))

	var verr *severance.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"hireDate is required",
		"terminationDate is required",
		"monthlySalary must be greater than zero",
		"pendingVacationDays must not be negative",
		"bonusDays must be greater than zero",
	}, verr.Issues.Strings())
}

func TestCalculateSeverance_RejectsInvertedDates(t *testing.T) {
	in := referenceInput()
	in.HireDate, in.TerminationDate = in.TerminationDate, in.HireDate

	_, err := severance.CalculateSeverance(in)
	assert.ErrorIs(t, err, severance.ErrInvalidInput)
	assert.Contains(t, err.Error(), "terminationDate must be on or after hireDate")
}
