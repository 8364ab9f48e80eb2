package services

import (
	"bytes"
	"fmt"
	"strings"

	"construction-tracker-api/models"

	"github.com/go-pdf/fpdf"
)

// BuildProjectReport renders a project summary document: a key-value
// details block followed by the materials table. Materials must be loaded
// with their Category and Unit relations. All figures come from the cost
// aggregator; no new computation happens here.
func BuildProjectReport(project *models.Project, spending *ProjectSpending, materials []models.MaterialEntry) (*bytes.Buffer, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle(fmt.Sprintf("Project Report: %s", project.Name), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(44, 62, 80)
	pdf.CellFormat(0, 12, fmt.Sprintf("Project Report: %s", project.Name), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	location := project.Location
	if location == "" {
		location = "N/A"
	}
	details := [][2]string{
		{"Location:", location},
		{"Status:", statusLabel(project.Status)},
		{"Start Date:", project.StartDate.Format("2006-01-02")},
		{"Budget:", project.Budget.StringFixed(2)},
		{"Total Spent:", spending.TotalSpent.StringFixed(2)},
		{"Remaining:", spending.RemainingBudget.StringFixed(2)},
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range details {
		pdf.SetFillColor(232, 232, 232)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 8, row[0], "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(110, 8, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Materials List", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	headers := []string{"Date", "Category", "Description", "Qty", "Cost"}
	widths := []float64{25, 32, 65, 28, 28}

	pdf.SetFillColor(54, 96, 146)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	for i := range materials {
		m := &materials[i]
		fill := i%2 == 1
		pdf.SetFillColor(240, 240, 240)

		description := truncateRunes(m.Description, 40)
		cells := []string{
			m.PurchaseDate.Format("2006-01-02"),
			m.Category.Name,
			description,
			fmt.Sprintf("%s %s", m.Quantity.String(), m.Unit.Abbreviation),
			m.Cost.StringFixed(2),
		}
		for j, cell := range cells {
			pdf.CellFormat(widths[j], 7, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return &buf, nil
}

// truncateRunes shortens s to at most n characters. Truncation happens on
// rune boundaries so a multi-byte character is never split.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// statusLabel turns a status value into a display label, e.g.
// in_progress -> In Progress.
func statusLabel(status string) string {
	words := strings.Split(status, "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
