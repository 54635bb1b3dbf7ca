package severance

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/severance-engine/lft"
)

// =============================================================================
// CALCULATOR PRECONDITIONS
// =============================================================================

// maxSalaryScale bounds the decimal places accepted for a salary.
const maxSalaryScale = 10

// ValidateTerminationInput returns every finiquito precondition violation
// against table (nil selects lft.Default()). An empty result means the input
// is calculable.
func ValidateTerminationInput(in TerminationInput, table *lft.Table) Issues {
	if table == nil {
		table = lft.Default()
	}
	var issues Issues

	if in.HireDate.IsZero() {
		issues.add("hireDate", "is required")
	}
	if in.TerminationDate.IsZero() {
		issues.add("terminationDate", "is required")
	}
	if !in.HireDate.IsZero() && !in.TerminationDate.IsZero() && in.TerminationDate.Before(in.HireDate) {
		issues.add("terminationDate", "must be on or after hireDate")
	}
	validateSalary(&issues, in.MonthlySalary, table.MaxMonthlySalary())
	if in.PendingVacationDays != nil && *in.PendingVacationDays < 0 {
		issues.add("pendingVacationDays", "must not be negative")
	}
	if in.BonusDays != nil && *in.BonusDays <= 0 {
		issues.add("bonusDays", "must be greater than zero")
	}
	return issues
}

// ValidateLiquidationInput adds the termination-reason check.
func ValidateLiquidationInput(in LiquidationInput, table *lft.Table) Issues {
	issues := ValidateTerminationInput(in.TerminationInput, table)

	switch {
	case in.Reason == "":
		issues.add("terminationReason", "is required")
	case !in.Reason.Valid():
		issues.add("terminationReason", "must be one of "+reasonList())
	}
	return issues
}

// validateSalary never expands the decimal: an exponent like 1e5000000 is
// rejected by its digit count before any comparison or rounding.
func validateSalary(issues *Issues, salary, limit decimal.Decimal) {
	switch {
	case !salary.IsPositive():
		issues.add("monthlySalary", "must be greater than zero")
	case salary.Exponent() < -maxSalaryScale:
		issues.add("monthlySalary", "must have at most "+strconv.Itoa(maxSalaryScale)+" decimal places")
	case magnitude(salary) > magnitude(limit) || salary.GreaterThan(limit):
		issues.add("monthlySalary", "must not exceed "+limit.StringFixed(2))
	}
}

// magnitude is the number of integer digits of a positive decimal.
func magnitude(d decimal.Decimal) int64 {
	return int64(d.NumDigits()) + int64(d.Exponent())
}

func reasonList() string {
	names := make([]string, len(Reasons))
	for i, r := range Reasons {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// =============================================================================
// FORM VALIDATION (optional, caller-invoked)
// =============================================================================

// ValidateForm is the proactive check a form runs before submitting. On top
// of the calculator preconditions for kind it rejects dates after today and
// tenure beyond the table's practical ceiling. The calculators never call
// it: a future termination date is calculable.
func ValidateForm(in LiquidationInput, kind Kind, today Date, table *lft.Table) Issues {
	if table == nil {
		table = lft.Default()
	}

	var issues Issues
	if kind == KindLiquidation {
		issues = ValidateLiquidationInput(in, table)
	} else {
		issues = ValidateTerminationInput(in.TerminationInput, table)
	}

	if !in.HireDate.IsZero() && in.HireDate.After(today) {
		issues.add("hireDate", "must not be in the future")
	}
	if !in.TerminationDate.IsZero() && in.TerminationDate.After(today) {
		issues.add("terminationDate", "must not be in the future")
	}
	if !in.HireDate.IsZero() && !in.TerminationDate.IsZero() {
		tenure := tenureYears(table, in.HireDate, in.TerminationDate)
		if tenure.GreaterThan(decimalInt(table.MaxTenureYears())) {
			issues.add("hireDate", "implies a tenure above the practical ceiling of "+strconv.Itoa(table.MaxTenureYears())+" years")
		}
	}
	return issues
}
