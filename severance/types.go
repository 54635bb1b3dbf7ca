/*
Package severance computes Mexican termination payments under the LFT.

PURPOSE:
  Two pure calculators over an immutable lft.Table:

    finiquito   (CalculateSeverance)   what is owed on ANY separation:
                proportional annual bonus, pending vacation, vacation
                premium and wages for the days worked in the last month.
    liquidacion (CalculateLiquidation) the finiquito plus, depending on the
                termination reason, constitutional indemnification
                (3 months of integrated wage) and seniority premium
                (12 days per completed year on a capped daily wage).

KEY CONCEPTS IN THIS FILE (types.go):
  - TerminationInput / LiquidationInput: calculator inputs
  - SeveranceResult / LiquidationResult: itemized outputs
  - Result: closed union over the two result shapes, tagged by Kind

PRECISION:
  Money is decimal.Decimal. Every money component is rounded to centavos
  when produced and totals are sums of rounded components, so
  Total == sum(components) holds exactly. Tenure keeps full precision and is
  only truncated for table lookups.

DETERMINISM:
  No clock, no randomness, no shared mutable state. Identical inputs give
  identical results and concurrent calls need no coordination.

SEE ALSO:
  - derive.go: daily salary, tenure, days worked
  - validation.go: shared precondition checks
  - finiquito.go, liquidacion.go: the calculators
  - lft/table.go: legal constants
*/
package severance

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// KIND - Discriminator for the Result union
// =============================================================================

type Kind string

const (
	KindSeverance   Kind = "finiquito"
	KindLiquidation Kind = "liquidacion"
)

// ParseKind accepts the Spanish wire names and their English equivalents.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "finiquito", "severance":
		return KindSeverance, nil
	case "liquidacion", "liquidación", "liquidation":
		return KindLiquidation, nil
	}
	return "", fmt.Errorf("unknown calculation type %q", s)
}

// =============================================================================
// TERMINATION REASON
// =============================================================================

type TerminationReason string

const (
	ReasonUnjustifiedDismissal TerminationReason = "unjustified_dismissal"
	ReasonJustifiedDismissal   TerminationReason = "justified_dismissal"
	ReasonVoluntaryResignation TerminationReason = "voluntary_resignation"
	ReasonMutualAgreement      TerminationReason = "mutual_agreement"
)

// Reasons lists every recognised reason in display order.
var Reasons = []TerminationReason{
	ReasonUnjustifiedDismissal,
	ReasonJustifiedDismissal,
	ReasonVoluntaryResignation,
	ReasonMutualAgreement,
}

var reasonAliases = map[string]TerminationReason{
	"unjustified_dismissal": ReasonUnjustifiedDismissal,
	"despido_injustificado": ReasonUnjustifiedDismissal,
	"justified_dismissal":   ReasonJustifiedDismissal,
	"despido_justificado":   ReasonJustifiedDismissal,
	"voluntary_resignation": ReasonVoluntaryResignation,
	"renuncia_voluntaria":   ReasonVoluntaryResignation,
	"renuncia":              ReasonVoluntaryResignation,
	"mutual_agreement":      ReasonMutualAgreement,
	"mutuo_acuerdo":         ReasonMutualAgreement,
}

// ParseReason normalises English or Spanish reason names. Spaces and dashes
// are treated as underscores, so "voluntary resignation" is accepted.
func ParseReason(s string) (TerminationReason, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	r, ok := reasonAliases[key]
	return r, ok
}

func (r TerminationReason) Valid() bool {
	for _, known := range Reasons {
		if r == known {
			return true
		}
	}
	return false
}

// defaults returns whether indemnification and seniority premium apply when
// the caller does not override them.
func (r TerminationReason) defaults() (indemnification, seniorityPremium bool) {
	switch r {
	case ReasonUnjustifiedDismissal:
		return true, true
	default:
		return false, true
	}
}

// Description is the advisory text attached to every liquidation.
func (r TerminationReason) Description() string {
	switch r {
	case ReasonUnjustifiedDismissal:
		return "Unjustified dismissal: constitutional indemnification (3 months of integrated wage) and seniority premium apply"
	case ReasonJustifiedDismissal:
		return "Justified dismissal: no constitutional indemnification; seniority premium applies"
	case ReasonVoluntaryResignation:
		return "Voluntary resignation: no constitutional indemnification; seniority premium applies"
	case ReasonMutualAgreement:
		return "Mutual agreement: no constitutional indemnification; seniority premium applies"
	}
	return string(r)
}

// =============================================================================
// INPUTS
// =============================================================================

// TerminationInput describes one separation for the finiquito calculator.
type TerminationInput struct {
	MonthlySalary   decimal.Decimal
	HireDate        Date
	TerminationDate Date

	// PendingVacationDays overrides the table entitlement when set.
	PendingVacationDays *int
	// BonusDays overrides the 15-day legal minimum when set.
	BonusDays *int
}

// LiquidationInput adds the termination reason and its overrides.
type LiquidationInput struct {
	TerminationInput

	Reason TerminationReason

	// nil means "use the reason's default".
	ApplyIndemnification  *bool
	ApplySeniorityPremium *bool
}

// =============================================================================
// RESULTS
// =============================================================================

// Concept identifies a line of the breakdown.
type Concept string

const (
	ConceptBonus            Concept = "aguinaldo"
	ConceptVacation         Concept = "vacaciones"
	ConceptVacationPremium  Concept = "prima_vacacional"
	ConceptPendingWages     Concept = "salario_pendiente"
	ConceptIndemnification  Concept = "indemnizacion"
	ConceptSeniorityPremium Concept = "prima_antiguedad"
)

var conceptLabels = map[Concept]string{
	ConceptBonus:            "Aguinaldo proporcional",
	ConceptVacation:         "Vacaciones",
	ConceptVacationPremium:  "Prima vacacional",
	ConceptPendingWages:     "Salario pendiente",
	ConceptIndemnification:  "Indemnización constitucional",
	ConceptSeniorityPremium: "Prima de antigüedad",
}

func (c Concept) Label() string { return conceptLabels[c] }

// LineItem is one itemized component of a result.
type LineItem struct {
	Concept Concept         `json:"concept"`
	Label   string          `json:"label"`
	Amount  decimal.Decimal `json:"amount"`
}

func lineItem(c Concept, amount decimal.Decimal) LineItem {
	return LineItem{Concept: c, Label: c.Label(), Amount: amount}
}

// Result is implemented only by *SeveranceResult and *LiquidationResult.
// Branch with a type switch:
//
//	switch r := res.(type) {
//	case *SeveranceResult:   ...
//	case *LiquidationResult: ...
//	}
type Result interface {
	Kind() Kind
	GrandTotal() decimal.Decimal
	isResult()
}

// SeveranceResult is the itemized finiquito.
type SeveranceResult struct {
	MonthlySalary   decimal.Decimal `json:"monthlySalary"`
	HireDate        Date            `json:"hireDate"`
	TerminationDate Date            `json:"terminationDate"`

	DailySalary      decimal.Decimal `json:"dailySalary"`
	DaysWorkedInYear int             `json:"daysWorkedInYear"`
	TenureYears      decimal.Decimal `json:"tenureYears"`
	CompletedYears   int             `json:"completedYears"`
	VacationDays     int             `json:"vacationDays"`
	BonusDays        int             `json:"bonusDays"`

	Bonus           decimal.Decimal `json:"bonus"`
	VacationPay     decimal.Decimal `json:"vacationPay"`
	VacationPremium decimal.Decimal `json:"vacationPremium"`
	PendingWages    decimal.Decimal `json:"pendingWages"`
	Total           decimal.Decimal `json:"total"`

	Breakdown []LineItem `json:"breakdown"`
	Notes     []string   `json:"notes"`
}

func (*SeveranceResult) Kind() Kind { return KindSeverance }
func (r *SeveranceResult) GrandTotal() decimal.Decimal { return r.Total }
func (*SeveranceResult) isResult() {}

// LiquidationResult is the finiquito plus indemnification components.
type LiquidationResult struct {
	Severance SeveranceResult   `json:"severance"`
	Reason    TerminationReason `json:"reason"`

	IntegrationFactor   decimal.Decimal `json:"integrationFactor"`
	IntegratedDailyWage decimal.Decimal `json:"integratedDailyWage"`

	IndemnificationApplied bool            `json:"indemnificationApplied"`
	Indemnification        decimal.Decimal `json:"indemnification"`

	SeniorityPremiumApplied   bool            `json:"seniorityPremiumApplied"`
	SeniorityPremiumDailyRate decimal.Decimal `json:"seniorityPremiumDailyRate"`
	SeniorityPremium          decimal.Decimal `json:"seniorityPremium"`

	Total     decimal.Decimal `json:"total"`
	Breakdown []LineItem      `json:"breakdown"`
	Notes     []string        `json:"notes"`
}

func (*LiquidationResult) Kind() Kind { return KindLiquidation }
func (r *LiquidationResult) GrandTotal() decimal.Decimal { return r.Total }
func (*LiquidationResult) isResult() {}

// Compile-time checks
var (
	_ Result = (*SeveranceResult)(nil)
	_ Result = (*LiquidationResult)(nil)
)
