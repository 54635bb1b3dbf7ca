package api

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/warp/severance-engine/lft"
	"github.com/warp/severance-engine/severance"
	"github.com/warp/severance-engine/store"
)

// =============================================================================
// PDF RECEIPT
// =============================================================================

const receiptDateLayout = "02/01/2006"

// RenderReceipt writes a one-page receipt for a stored calculation: header
// data, the itemized breakdown, the total and any advisory notes.
func RenderReceipt(w io.Writer, rec store.Record, table *lft.Table) error {
	var sev *severance.SeveranceResult
	var liq *severance.LiquidationResult
	switch r := rec.Result.(type) {
	case *severance.SeveranceResult:
		sev = r
	case *severance.LiquidationResult:
		liq = r
		sev = &r.Severance
	default:
		return fmt.Errorf("unsupported result type %T", rec.Result)
	}

	pdf := gofpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(receiptTitle(rec.Kind)), false)
	pdf.SetCreator("severance-engine", false)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(receiptTitle(rec.Kind)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Folio %s  |  Calculado %s", rec.ID, rec.CreatedAt.Format(receiptDateLayout))), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	field := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(65, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
	}
	field("Salario mensual", money(sev.MonthlySalary))
	field("Salario diario", money(sev.DailySalary))
	field("Fecha de ingreso", sev.HireDate.Time.Format(receiptDateLayout))
	field("Fecha de baja", sev.TerminationDate.Time.Format(receiptDateLayout))
	field("Antigüedad", fmt.Sprintf("%s años (%d completos)", sev.TenureYears.StringFixed(2), sev.CompletedYears))
	field("Días laborados en el año", fmt.Sprintf("%d", sev.DaysWorkedInYear))
	if liq != nil {
		field("Motivo", reasonLabel(liq.Reason))
		field("Factor de integración", liq.IntegrationFactor.String())
		field("Salario diario integrado", money(liq.IntegratedDailyWage))
	}
	pdf.Ln(4)

	pdf.SetFillColor(230, 230, 230)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(120, 7, "Concepto", "1", 0, "L", true, 0, "")
	pdf.CellFormat(0, 7, "Importe", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	breakdown, total, notes := sev.Breakdown, sev.Total, sev.Notes
	if liq != nil {
		breakdown, total, notes = liq.Breakdown, liq.Total, liq.Notes
	}
	for _, item := range breakdown {
		pdf.CellFormat(120, 7, tr(item.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, money(item.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 8, "Total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(0, 8, money(total), "1", 1, "R", true, 0, "")

	if len(notes) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "Observaciones", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, n := range notes {
			pdf.MultiCell(0, 5, tr("- "+n), "", "L", false)
		}
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 4, tr(fmt.Sprintf(
		"Cálculo informativo conforme a la Ley Federal del Trabajo con salario mínimo de %s (%d). No sustituye asesoría legal.",
		money(table.MinimumDailyWage()), table.DataYear())), "", "L", false)

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func receiptTitle(kind severance.Kind) string {
	if kind == severance.KindLiquidation {
		return "Recibo de liquidación"
	}
	return "Recibo de finiquito"
}

func reasonLabel(r severance.TerminationReason) string {
	switch r {
	case severance.ReasonUnjustifiedDismissal:
		return "Despido injustificado"
	case severance.ReasonJustifiedDismissal:
		return "Despido justificado"
	case severance.ReasonVoluntaryResignation:
		return "Renuncia voluntaria"
	case severance.ReasonMutualAgreement:
		return "Mutuo acuerdo"
	}
	return string(r)
}

// money formats as $12,345.67.
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + "$" + b.String() + "." + frac
}
