/*
liquidacion.go - Indemnification ("liquidación") calculator

PURPOSE:
  Extends the finiquito with the components that depend on WHY the
  relationship ended.

ALGORITHM:
  severance = CalculateSeverance(input)
  factor    = table.IntegrationFactorForTenure(floor(tenure))
  sdi       = round2(daily x factor)

  applies   = reason default, overridden by explicit flags:
                unjustified dismissal          -> indemnification + premium
                justified / resignation / mutual -> premium only

  indemnification = sdi x 30 x 3                      (when it applies)
  premium         = min(daily, 2 x minimum wage) x 12 x floor(tenure)
                    (when it applies AND tenure >= 1 year)
  total           = severance.total + indemnification + premium

ADVISORIES (Notes):
  - reason description (always)
  - explicit override of a reason default
  - tenure under one year: no seniority premium
  - daily rate capped at 2x minimum wage
  - SDI above 25x minimum wage
*/
package severance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CalculateLiquidation runs the liquidación with the default calculator.
func CalculateLiquidation(in LiquidationInput) (*LiquidationResult, error) {
	return NewCalculator(nil, nil).CalculateLiquidation(in)
}

// IntegratedDailyWage is daily x factor rounded to centavos.
func IntegratedDailyWage(daily, factor decimal.Decimal) (decimal.Decimal, error) {
	if !daily.IsPositive() {
		return decimal.Zero, invalid("dailySalary", "must be greater than zero")
	}
	if !factor.IsPositive() {
		return decimal.Zero, invalid("integrationFactor", "must be greater than zero")
	}
	return roundMoney(daily.Mul(factor)), nil
}

// CalculateLiquidation computes the finiquito plus indemnification components.
func (c *Calculator) CalculateLiquidation(in LiquidationInput) (*LiquidationResult, error) {
	if err := ValidateLiquidationInput(in, c.table).Err(); err != nil {
		return nil, err
	}

	sev, err := c.CalculateSeverance(in.TerminationInput)
	if err != nil {
		return nil, err
	}

	// The rounded DailySalary on the result is the display value; recompute
	// the exact one so SDI and the premium rate see full precision.
	daily, err := dailySalary(c.table, in.MonthlySalary)
	if err != nil {
		return nil, err
	}

	factor := c.table.IntegrationFactorForTenure(sev.CompletedYears)
	sdi, err := IntegratedDailyWage(daily, factor)
	if err != nil {
		return nil, err
	}

	res := &LiquidationResult{
		Severance:                 *sev,
		Reason:                    in.Reason,
		IntegrationFactor:         factor,
		IntegratedDailyWage:       sdi,
		Indemnification:           decimal.Zero,
		SeniorityPremiumDailyRate: decimal.Zero,
		SeniorityPremium:          decimal.Zero,
	}
	notes := append([]string{}, sev.Notes...)
	notes = append(notes, in.Reason.Description())

	applyIndemnification, applyPremium := in.Reason.defaults()
	if in.ApplyIndemnification != nil {
		if *in.ApplyIndemnification != applyIndemnification {
			notes = append(notes, overrideNote("Constitutional indemnification", *in.ApplyIndemnification))
		}
		applyIndemnification = *in.ApplyIndemnification
	}
	if in.ApplySeniorityPremium != nil {
		if *in.ApplySeniorityPremium != applyPremium {
			notes = append(notes, overrideNote("Seniority premium", *in.ApplySeniorityPremium))
		}
		applyPremium = *in.ApplySeniorityPremium
	}

	if applyIndemnification {
		res.IndemnificationApplied = true
		days := c.table.DaysPerMonth() * c.table.IndemnificationMonths()
		res.Indemnification = roundMoney(sdi.Mul(decimalInt(days)))
	}

	if applyPremium {
		if sev.CompletedYears < 1 {
			notes = append(notes, "No seniority premium: tenure is under 1 year")
		} else {
			rate := daily
			if capRate := c.table.SeniorityPremiumDailyCap(); daily.GreaterThan(capRate) {
				rate = capRate
				notes = append(notes, fmt.Sprintf(
					"Daily rate capped at %sx minimum wage (%s) for seniority premium purposes",
					c.table.SeniorityPremiumWageCap(), capRate.StringFixed(2)))
			}
			res.SeniorityPremiumApplied = true
			res.SeniorityPremiumDailyRate = roundMoney(rate)
			days := c.table.SeniorityPremiumDaysPerYear() * sev.CompletedYears
			res.SeniorityPremium = roundMoney(rate.Mul(decimalInt(days)))
		}
	}

	if high := c.table.HighIntegratedDailyWage(); sdi.GreaterThan(high) {
		notes = append(notes, fmt.Sprintf(
			"Integrated daily wage %s is unusually high (above %s); verify the integration factor",
			sdi.StringFixed(2), high.StringFixed(2)))
		c.logger.Warn("high integrated daily wage",
			"sdi", sdi.String(),
			"threshold", high.String(),
		)
	}

	res.Total = sev.Total.Add(res.Indemnification).Add(res.SeniorityPremium)
	res.Breakdown = append(append([]LineItem{}, sev.Breakdown...),
		lineItem(ConceptIndemnification, res.Indemnification),
		lineItem(ConceptSeniorityPremium, res.SeniorityPremium),
	)
	res.Notes = notes
	return res, nil
}

func overrideNote(component string, applied bool) string {
	if applied {
		return component + " applied by explicit override of the reason default"
	}
	return component + " excluded by explicit override of the reason default"
}
