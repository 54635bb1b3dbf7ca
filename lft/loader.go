package lft

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTableYAML []byte

// ErrInvalidTable is returned when a table document is malformed or
// violates the step-table rules.
var ErrInvalidTable = errors.New("invalid legal table")

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the embedded table. It panics if the embedded document is
// invalid, which is a build defect rather than a runtime condition.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Load(bytes.NewReader(defaultTableYAML))
		if err != nil {
			panic(fmt.Sprintf("lft: embedded table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// LoadFile parses and validates a YAML table from disk.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open legal table: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// =============================================================================
// YAML DOCUMENT
// =============================================================================

type tableDoc struct {
	Metadata struct {
		DataYear    int    `yaml:"data_year"`
		Description string `yaml:"description"`
	} `yaml:"metadata"`

	MinimumDailyWage      string `yaml:"minimum_daily_wage"`
	VacationPremiumRate   string `yaml:"vacation_premium_rate"`
	MinimumBonusDays      int    `yaml:"minimum_bonus_days"`
	SeniorityDaysPerYear  int    `yaml:"seniority_premium_days_per_year"`
	SeniorityWageCap      string `yaml:"seniority_premium_wage_cap"`
	IndemnificationMonths int    `yaml:"indemnification_months"`
	DaysPerMonth          int    `yaml:"days_per_month"`
	DaysPerYear           int    `yaml:"days_per_year"`
	TenureDaysPerYear     string `yaml:"tenure_days_per_year"`
	MaxTenureYears        int    `yaml:"max_tenure_years"`
	HighSalaryMultiple    string `yaml:"high_salary_multiple"`
	MaxMonthlySalary      string `yaml:"max_monthly_salary"`

	VacationDays []struct {
		FromYear int `yaml:"from_year"`
		Days     int `yaml:"days"`
	} `yaml:"vacation_days"`

	IntegrationFactors []struct {
		FromYear int    `yaml:"from_year"`
		Factor   string `yaml:"factor"`
	} `yaml:"integration_factors"`
}

// Load parses and validates a YAML table.
func Load(r io.Reader) (*Table, error) {
	var doc tableDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}

	p := &parser{}
	t := &Table{
		dataYear:              doc.Metadata.DataYear,
		description:           doc.Metadata.Description,
		minimumDailyWage:      p.positive("minimum_daily_wage", doc.MinimumDailyWage),
		vacationPremiumRate:   p.positive("vacation_premium_rate", doc.VacationPremiumRate),
		minimumBonusDays:      p.positiveInt("minimum_bonus_days", doc.MinimumBonusDays),
		seniorityDaysPerYear:  p.positiveInt("seniority_premium_days_per_year", doc.SeniorityDaysPerYear),
		seniorityWageCap:      p.positive("seniority_premium_wage_cap", doc.SeniorityWageCap),
		indemnificationMonths: p.positiveInt("indemnification_months", doc.IndemnificationMonths),
		daysPerMonth:          p.positiveInt("days_per_month", doc.DaysPerMonth),
		daysPerYear:           p.positiveInt("days_per_year", doc.DaysPerYear),
		tenureDaysPerYear:     p.positive("tenure_days_per_year", doc.TenureDaysPerYear),
		maxTenureYears:        p.positiveInt("max_tenure_years", doc.MaxTenureYears),
		highSalaryMultiple:    p.positive("high_salary_multiple", doc.HighSalaryMultiple),
		maxMonthlySalary:      p.positive("max_monthly_salary", doc.MaxMonthlySalary),
	}

	for _, v := range doc.VacationDays {
		p.positiveInt(fmt.Sprintf("vacation_days[from_year=%d].days", v.FromYear), v.Days)
		t.vacation = append(t.vacation, Tier{FromYear: v.FromYear, Days: v.Days})
	}
	for _, f := range doc.IntegrationFactors {
		factor := p.positive(fmt.Sprintf("integration_factors[from_year=%d].factor", f.FromYear), f.Factor)
		if factor.IsPositive() && factor.LessThan(decimal.NewFromInt(1)) {
			p.fail("integration_factors[from_year=%d].factor must be >= 1", f.FromYear)
		}
		t.factors = append(t.factors, FactorTier{FromYear: f.FromYear, Factor: factor})
	}

	p.steps("vacation_days", len(t.vacation), func(i int) int { return t.vacation[i].FromYear })
	p.steps("integration_factors", len(t.factors), func(i int) int { return t.factors[i].FromYear })

	if err := p.err(); err != nil {
		return nil, err
	}
	return t, nil
}

// parser collects every validation failure so one pass over an override
// table reports all of its problems.
type parser struct {
	problems []string
}

func (p *parser) fail(format string, args ...any) {
	p.problems = append(p.problems, fmt.Sprintf(format, args...))
}

func (p *parser) err() error {
	if len(p.problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidTable, strings.Join(p.problems, "; "))
}

func (p *parser) positive(field, raw string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		p.fail("%s: %q is not a decimal", field, raw)
		return decimal.Zero
	}
	if !d.IsPositive() {
		p.fail("%s must be positive", field)
	}
	return d
}

func (p *parser) positiveInt(field string, v int) int {
	if v <= 0 {
		p.fail("%s must be positive", field)
	}
	return v
}

// steps checks a step table starts at year 1 and is strictly ascending.
func (p *parser) steps(field string, n int, fromYear func(int) int) {
	if n == 0 {
		p.fail("%s is empty", field)
		return
	}
	if fromYear(0) != 1 {
		p.fail("%s must start at from_year 1", field)
	}
	for i := 1; i < n; i++ {
		if fromYear(i) <= fromYear(i-1) {
			p.fail("%s must be strictly ascending by from_year", field)
			return
		}
	}
}
