package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
	"github.com/dreamfactorysoftware/df-admin-api/internal/repositories"
	"github.com/dreamfactorysoftware/df-admin-api/internal/utils"
)

// ReportsService renders the downloadable PDF summaries linked from the
// console's limits page.
type ReportsService struct {
	LimitRepo repositories.LimitRepository
	RequestID string
	// Loader is swappable for tests.
	Loader func() ([]models.Limit, error)
}

func (s ReportsService) loadLimits() ([]models.Limit, error) {
	if s.Loader != nil {
		return s.Loader()
	}
	return s.LimitRepo.ListAll()
}

// GenerateLimitsReport renders every configured rate limit as a table.
func (s ReportsService) GenerateLimitsReport() ([]byte, string, error) {
	limits, err := s.loadLimits()
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "reports", "limits_report", fmt.Sprintf("rows=%d", len(limits)))
	return buildLimitsPDF(limits)
}

func buildLimitsPDF(limits []models.Limit) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Rate Limits", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RATE LIMITS")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	headers := []string{"ID", "Name", "Type", "Rate", "Period", "Active"}
	widths := []float64{15, 80, 70, 25, 30, 20}

	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range limits {
		active := "no"
		if l.IsActive {
			active = "yes"
		}
		cells := []string{
			fmt.Sprintf("%d", l.ID),
			truncate(l.Name, 48),
			truncate(l.Type, 40),
			fmt.Sprintf("%d", l.Rate),
			l.Period,
			active,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(limits) == 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "No rate limits configured.", "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("LIMITS_%s.pdf", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
