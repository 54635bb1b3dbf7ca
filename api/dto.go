/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication and the conversion
  from the loosely typed request body to the calculator inputs.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Calculation:
    CalculateRequest, RecordDTO, ValidationDTO

  Scenarios:
    ScenarioDTO

VALIDATION:
  Request parsing only reports values that cannot be converted (bad dates,
  bad type). Business preconditions are checked by the severance package.

SEE ALSO:
  - handlers.go: Uses these types
  - severance/validation.go: Precondition checks
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/severance-engine/lft"
	"github.com/warp/severance-engine/severance"
	"github.com/warp/severance-engine/store"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CalculateRequest is the body of POST /api/finiquito and /validate.
type CalculateRequest struct {
	// Type is "finiquito" or "liquidacion". Empty means liquidacion when a
	// termination reason is given, finiquito otherwise.
	Type string `json:"type,omitempty"`

	MonthlySalary       decimal.Decimal `json:"monthlySalary"`
	HireDate            string          `json:"hireDate"`
	TerminationDate     string          `json:"terminationDate"`
	PendingVacationDays *int            `json:"pendingVacationDays,omitempty"`
	BonusDays           *int            `json:"bonusDays,omitempty"`

	TerminationReason     string `json:"terminationReason,omitempty"`
	ApplyIndemnification  *bool  `json:"applyIndemnification,omitempty"`
	ApplySeniorityPremium *bool  `json:"applySeniorityPremium,omitempty"`
}

// toInput converts the request. Any issue returned already includes the
// precondition checks for the resolved kind, so the caller can stop there.
func (req CalculateRequest) toInput(table *lft.Table) (severance.Kind, severance.LiquidationInput, severance.Issues) {
	var (
		in     severance.LiquidationInput
		issues severance.Issues
		failed = map[string]bool{}
	)

	kind := severance.KindSeverance
	switch {
	case req.Type != "":
		k, err := severance.ParseKind(req.Type)
		if err != nil {
			issues = append(issues, severance.Issue{Field: "type", Message: "must be finiquito or liquidacion"})
		} else {
			kind = k
		}
	case req.TerminationReason != "":
		kind = severance.KindLiquidation
	}

	parseDate := func(field, value string) severance.Date {
		d, err := severance.ParseDate(value)
		if err != nil {
			issues = append(issues, severance.Issue{Field: field, Message: "must be a date in YYYY-MM-DD format"})
			failed[field] = true
		}
		return d
	}
	in.HireDate = parseDate("hireDate", req.HireDate)
	in.TerminationDate = parseDate("terminationDate", req.TerminationDate)

	in.MonthlySalary = req.MonthlySalary
	in.PendingVacationDays = req.PendingVacationDays
	in.BonusDays = req.BonusDays
	in.ApplyIndemnification = req.ApplyIndemnification
	in.ApplySeniorityPremium = req.ApplySeniorityPremium

	if reason, ok := severance.ParseReason(req.TerminationReason); ok {
		in.Reason = reason
	} else {
		in.Reason = severance.TerminationReason(req.TerminationReason)
	}

	if len(issues) == 0 {
		return kind, in, nil
	}

	var rest severance.Issues
	if kind == severance.KindLiquidation {
		rest = severance.ValidateLiquidationInput(in, table)
	} else {
		rest = severance.ValidateTerminationInput(in.TerminationInput, table)
	}
	for _, issue := range rest {
		if !failed[issue.Field] {
			issues = append(issues, issue)
		}
	}
	return kind, in, issues
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// RecordDTO is a stored calculation.
type RecordDTO struct {
	ID        string           `json:"id"`
	Kind      severance.Kind   `json:"kind"`
	Result    severance.Result `json:"result"`
	CreatedAt string           `json:"createdAt"`
	ExpiresAt string           `json:"expiresAt"`
	PDFURL    string           `json:"pdfUrl"`
}

func toRecordDTO(rec store.Record) RecordDTO {
	return RecordDTO{
		ID:        rec.ID,
		Kind:      rec.Kind,
		Result:    rec.Result,
		CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
		ExpiresAt: rec.ExpiresAt.UTC().Format(time.RFC3339),
		PDFURL:    "/api/finiquito/" + rec.ID + "/pdf",
	}
}

// ValidationDTO answers POST /api/finiquito/validate.
type ValidationDTO struct {
	Valid  bool             `json:"valid"`
	Kind   severance.Kind   `json:"kind"`
	Issues severance.Issues `json:"issues"`
}

// ScenarioDTO describes a worked example.
type ScenarioDTO struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Request     CalculateRequest `json:"request"`
}
