package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"workforce/internal/domain/attendance"
)

type Service struct {
	store     *Store
	reportDir string
}

func NewService(store *Store, reportDir string) *Service {
	return &Service{store: store, reportDir: reportDir}
}

// GeneratePerformancePDF renders the stored performance result for one
// employee/cycle pair and returns the file path.
func (s *Service) GeneratePerformancePDF(ctx context.Context, employeeID, cycleID string) (string, error) {
	report, err := s.store.performanceReport(ctx, employeeID, cycleID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.reportDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.reportDir, fmt.Sprintf("performance_%s_%s.pdf", employeeID, cycleID))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", report.FirstName, report.LastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Cycle: %s", report.CycleName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Computed: %s", report.Result.ComputedAt.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Sections")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, section := range report.Result.SectionScores {
		line := fmt.Sprintf("%s: %.1f%% raw, %.2f points", section.SectionName, section.RawPercentage*100, section.CappedContribution)
		if section.IsNoteworthy {
			line += " (noteworthy)"
		}
		pdf.Cell(0, 7, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Base score: %.2f", report.Result.BaseScore))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Noteworthy bonus: %.2f", report.Result.NoteworthyBonus))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Overall: %.2f - %s", report.Result.OverallScore, report.Result.PerformanceBand))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}

// GenerateChargeStatementPDF renders an employee's attendance charges for a
// period, with waived charges excluded from the total.
func (s *Service) GenerateChargeStatementPDF(ctx context.Context, employeeID string, from, to time.Time) (string, error) {
	statement, err := s.store.chargeStatement(ctx, employeeID, from, to)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.reportDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.reportDir, fmt.Sprintf("charges_%s_%s.pdf", employeeID, from.Format("20060102")))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Attendance Charge Statement")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", statement.FirstName, statement.LastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", from.Format("2006-01-02"), to.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	for _, charge := range statement.Charges {
		line := fmt.Sprintf("%s  %s  %s", charge.ChargeDate.Format("2006-01-02"), charge.ChargeType, charge.ChargeAmount.StringFixed(2))
		if charge.IsEscalated {
			line += fmt.Sprintf("  (%.1fx escalation)", charge.EscalationMultiplier)
		}
		if charge.Status == attendance.ChargeStatusWaived {
			line += "  [waived]"
		}
		pdf.Cell(0, 7, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total due: %s", statement.Total.StringFixed(2)))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
