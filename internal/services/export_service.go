package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"wayfare/internal/models/response_models"
)

type ExportServiceInterface interface {
	RenderText(itinerary *response_models.Itinerary, budget response_models.BudgetSummary) []byte
	RenderPDF(itinerary *response_models.Itinerary, budget response_models.BudgetSummary) ([]byte, error)
}

type ExportService struct{}

func NewExportService() ExportServiceInterface {
	return &ExportService{}
}

// RenderText produces the flat day/activity listing for the text
// download.
func (e *ExportService) RenderText(itinerary *response_models.Itinerary, budget response_models.BudgetSummary) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Trip to %s\n", itinerary.Destination)
	if itinerary.Summary != "" {
		fmt.Fprintf(&buf, "%s\n", itinerary.Summary)
	}
	buf.WriteString("\n")

	for _, day := range itinerary.Days {
		fmt.Fprintf(&buf, "Day %d\n", day.Day)
		for _, act := range day.Activities {
			fmt.Fprintf(&buf, "  - %s", act.Name)
			if act.TimeOfDay != "" {
				fmt.Fprintf(&buf, " (%s)", act.TimeOfDay)
			}
			fmt.Fprintf(&buf, ": $%.2f", act.EstimatedCost)
			if act.Category != "" {
				fmt.Fprintf(&buf, " [%s]", act.Category)
			}
			fmt.Fprintf(&buf, "\n    %s\n", act.Location)
			if act.Description != "" {
				fmt.Fprintf(&buf, "    %s\n", act.Description)
			}
		}
		buf.WriteString("\n")
	}

	fmt.Fprintf(&buf, "Estimated total: $%.2f\n", budget.Total)
	fmt.Fprintf(&buf, "Budget ceiling:  $%.2f\n", budget.Ceiling)
	fmt.Fprintf(&buf, "Status: %s ($%.2f %s budget)\n", budget.Status, abs(budget.Delta), overOrUnder(budget.Delta))

	return buf.Bytes()
}

// RenderPDF produces a printable version of the same listing.
func (e *ExportService) RenderPDF(itinerary *response_models.Itinerary, budget response_models.BudgetSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(170, 10, fmt.Sprintf("Trip to %s", itinerary.Destination), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(170, 6, "Generated "+time.Now().Format("02 Jan 2006, 15:04 UTC"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)

	if itinerary.Summary != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(170, 5, itinerary.Summary, "", "L", false)
		pdf.Ln(2)
	}

	sectionHeader := func(title string) {
		pdf.SetFillColor(35, 55, 75)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(1)
	}

	for _, day := range itinerary.Days {
		sectionHeader(fmt.Sprintf("Day %d", day.Day))
		for _, act := range day.Activities {
			pdf.SetFont("Helvetica", "B", 10)
			label := act.Name
			if act.TimeOfDay != "" {
				label = act.TimeOfDay + ": " + label
			}
			pdf.CellFormat(130, 6, label, "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.CellFormat(40, 6, fmt.Sprintf("$%.2f", act.EstimatedCost), "", 1, "R", false, 0, "")

			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(100, 100, 100)
			pdf.MultiCell(170, 4.5, act.Location, "", "L", false)
			if act.Description != "" {
				pdf.MultiCell(170, 4.5, act.Description, "", "L", false)
			}
			pdf.SetTextColor(0, 0, 0)
			pdf.Ln(1)
		}
		pdf.Ln(2)
	}

	sectionHeader("Budget")
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}
	row("Estimated total", fmt.Sprintf("$%.2f", budget.Total))
	row("Budget ceiling", fmt.Sprintf("$%.2f", budget.Ceiling))
	row("Status", fmt.Sprintf("%s ($%.2f %s budget)", budget.Status, abs(budget.Delta), overOrUnder(budget.Delta)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func overOrUnder(delta float64) string {
	if delta > 0 {
		return "over"
	}
	return "under"
}
