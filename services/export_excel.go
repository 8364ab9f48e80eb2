package services

import (
	"fmt"

	"construction-tracker-api/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const materialsSheet = "Materials"

var materialsHeaders = []string{
	"Date", "Category", "Description", "Quantity", "Unit",
	"Cost", "Supplier", "Has Receipt", "Notes",
}

var materialsColumnWidths = map[string]float64{
	"A": 12, "B": 15, "C": 40, "D": 10, "E": 8,
	"F": 12, "G": 25, "H": 12, "I": 30,
}

// BuildMaterialsWorkbook renders a project's materials as a spreadsheet:
// a styled header row, one row per material and a totals row. Materials
// must be loaded with their Category and Unit relations.
func BuildMaterialsWorkbook(project *models.Project, materials []models.MaterialEntry, totalSpent decimal.Decimal) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", materialsSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating bold style: %w", err)
	}

	for col, header := range materialsHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(materialsSheet, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(materialsSheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for i := range materials {
		m := &materials[i]
		row := i + 2
		hasReceipt := "No"
		if m.HasReceipt {
			hasReceipt = "Yes"
		}
		values := []interface{}{
			m.PurchaseDate.Format("2006-01-02"),
			m.Category.Name,
			m.Description,
			m.Quantity.InexactFloat64(),
			m.Unit.Abbreviation,
			m.Cost.InexactFloat64(),
			m.Supplier,
			hasReceipt,
			m.Notes,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(materialsSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	totalRow := len(materials) + 3
	labelCell, err := excelize.CoordinatesToCellName(5, totalRow)
	if err != nil {
		return nil, err
	}
	valueCell, err := excelize.CoordinatesToCellName(6, totalRow)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellValue(materialsSheet, labelCell, "TOTAL:"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(materialsSheet, valueCell, totalSpent.InexactFloat64()); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(materialsSheet, labelCell, valueCell, boldStyle); err != nil {
		return nil, err
	}

	for col, width := range materialsColumnWidths {
		if err := f.SetColWidth(materialsSheet, col, col, width); err != nil {
			return nil, err
		}
	}

	return f, nil
}
