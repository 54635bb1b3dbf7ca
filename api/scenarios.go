/*
scenarios.go - Worked examples for demos and front-end smoke tests

PURPOSE:
  Provides pre-built calculation requests that exercise specific rules.
  Running a scenario goes through the same path as POST /api/finiquito,
  so the result is stored and has a receipt.

AVAILABLE SCENARIOS:
  reference-unjustified:  4 years, unjustified dismissal, capped premium
  finiquito-only:         Same employee, finiquito only
  voluntary-resignation:  20 years, no constitutional indemnification
  under-one-year:         No seniority premium, first-year factor
  override-indemnity:     Mutual agreement with indemnification forced on
  mid-month-hire:         Pending wages use the termination day-of-month
  high-salary:            Salary and SDI advisories

USAGE VIA API:
  GET  /api/scenarios
  POST /api/scenarios/reference-unjustified/run

ADDING NEW SCENARIOS:
  Append to 'scenarios' with an ID, a description and the request body.

SEE ALSO:
  - handlers.go: calculate, shared with Calculate
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "reference-unjustified",
		Name:        "Unjustified Dismissal",
		Description: "15,000/month, 2020-01-15 to 2024-01-15: indemnification plus capped seniority premium",
		Category:    "liquidacion",
		Request: CalculateRequest{
			MonthlySalary:     decimal.NewFromInt(15000),
			HireDate:          "2020-01-15",
			TerminationDate:   "2024-01-15",
			TerminationReason: "unjustified_dismissal",
		},
	},
	{
		ID:          "finiquito-only",
		Name:        "Finiquito",
		Description: "Same employee, separation components only",
		Category:    "finiquito",
		Request: CalculateRequest{
			Type:            "finiquito",
			MonthlySalary:   decimal.NewFromInt(15000),
			HireDate:        "2020-01-15",
			TerminationDate: "2024-01-15",
		},
	},
	{
		ID:          "voluntary-resignation",
		Name:        "Voluntary Resignation",
		Description: "20 years of service: seniority premium but no constitutional indemnification",
		Category:    "liquidacion",
		Request: CalculateRequest{
			MonthlySalary:     decimal.NewFromInt(80000),
			HireDate:          "2004-03-01",
			TerminationDate:   "2024-03-01",
			TerminationReason: "voluntary_resignation",
		},
	},
	{
		ID:          "under-one-year",
		Name:        "Under One Year",
		Description: "Six months of service: no seniority premium, first-year integration factor",
		Category:    "liquidacion",
		Request: CalculateRequest{
			MonthlySalary:     decimal.NewFromInt(12000),
			HireDate:          "2024-02-01",
			TerminationDate:   "2024-08-15",
			TerminationReason: "unjustified_dismissal",
		},
	},
	{
		ID:          "override-indemnity",
		Name:        "Negotiated Exit",
		Description: "Mutual agreement where the employer still pays the constitutional indemnification",
		Category:    "liquidacion",
		Request: CalculateRequest{
			MonthlySalary:        decimal.NewFromInt(22000),
			HireDate:             "2017-09-04",
			TerminationDate:      "2024-06-28",
			TerminationReason:    "mutual_agreement",
			ApplyIndemnification: boolPtr(true),
		},
	},
	{
		ID:          "mid-month-hire",
		Name:        "Short Tenure",
		Description: "Hired on the 20th, out on the 5th of the next month: five days of pending wages",
		Category:    "finiquito",
		Request: CalculateRequest{
			MonthlySalary:   decimal.NewFromInt(9000),
			HireDate:        "2024-04-20",
			TerminationDate: "2024-05-05",
		},
	},
	{
		ID:          "high-salary",
		Name:        "High Salary",
		Description: "Salary above 25x minimum wage: calculated, with advisories",
		Category:    "liquidacion",
		Request: CalculateRequest{
			MonthlySalary:     decimal.NewFromInt(250000),
			HireDate:          "2012-01-09",
			TerminationDate:   "2024-10-31",
			TerminationReason: "unjustified_dismissal",
		},
	},
}

func findScenario(id string) (ScenarioDTO, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return ScenarioDTO{}, false
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	success(w, "", scenarios)
}

// RunScenario calculates and stores a scenario's request.
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	s, ok := findScenario(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Scenario not found")
		return
	}
	h.calculate(w, r, s.Request, "Scenario "+s.ID+" calculated")
}

func boolPtr(b bool) *bool { return &b }
