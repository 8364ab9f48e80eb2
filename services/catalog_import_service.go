package services

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"construction-tracker-api/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ImportResult summarizes one bulk load: rows created, rows skipped
// (duplicates and malformed lines) and the per-row warnings explaining
// each skip. A bad row never aborts the batch.
type ImportResult struct {
	Created  int      `json:"created"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r *ImportResult) warn(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// importRecord is one data row with its source position for warnings.
type importRecord struct {
	line   int
	fields []string
}

// CatalogImportService loads reference tables (categories, units, the
// material catalog) from delimited text files or spreadsheets. Duplicate
// keys are skipped, never overwritten.
type CatalogImportService struct {
	db *gorm.DB
}

func NewCatalogImportService(db *gorm.DB) *CatalogImportService {
	return &CatalogImportService{db: db}
}

// readRecords loads data rows from path. Text files take one record per
// line, pipe- or comma-separated, with blank lines and # comments ignored.
// Spreadsheets take one record per row with the header row skipped.
func readRecords(path string) ([]importRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return readTextRecords(path)
	case ".xlsx", ".xls":
		return readExcelRecords(path)
	default:
		return nil, fmt.Errorf("unsupported file format %q: use .txt, .xls or .xlsx", filepath.Ext(path))
	}
}

func readTextRecords(path string) ([]importRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []importRecord
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		records = append(records, importRecord{line: lineNum, fields: splitFields(line)})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func readExcelRecords(path string) ([]importRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}

	var records []importRecord
	for i, row := range rows {
		if i == 0 { // header row
			continue
		}
		fields := make([]string, 0, len(row))
		empty := true
		for _, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell != "" {
				empty = false
			}
			fields = append(fields, cell)
		}
		if empty {
			continue
		}
		records = append(records, importRecord{line: i + 1, fields: fields})
	}
	return records, nil
}

// splitFields splits a text line on pipes, falling back to commas.
func splitFields(line string) []string {
	sep := "|"
	if !strings.Contains(line, "|") {
		sep = ","
	}
	parts := strings.Split(line, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

// ImportMaterialCategories loads `key | name` rows into material_categories.
func (s *CatalogImportService) ImportMaterialCategories(path string) (*ImportResult, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, rec := range records {
		key, name := field(rec.fields, 0), field(rec.fields, 1)
		if key == "" || name == "" {
			result.warn("Line %d: invalid format, skipping", rec.line)
			result.Skipped++
			continue
		}

		var count int64
		if err := s.db.Model(&models.MaterialCategory{}).Where("category_key = ?", key).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			result.warn("Line %d: category %q already exists", rec.line, key)
			result.Skipped++
			continue
		}

		if err := s.db.Create(&models.MaterialCategory{Key: key, Name: name}).Error; err != nil {
			return nil, err
		}
		result.Created++
	}
	return result, nil
}

// ImportLaborCategories loads `key | name` rows into labor_categories.
func (s *CatalogImportService) ImportLaborCategories(path string) (*ImportResult, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, rec := range records {
		key, name := field(rec.fields, 0), field(rec.fields, 1)
		if key == "" || name == "" {
			result.warn("Line %d: invalid format, skipping", rec.line)
			result.Skipped++
			continue
		}

		var count int64
		if err := s.db.Model(&models.LaborCategory{}).Where("category_key = ?", key).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			result.warn("Line %d: category %q already exists", rec.line, key)
			result.Skipped++
			continue
		}

		if err := s.db.Create(&models.LaborCategory{Key: key, Name: name}).Error; err != nil {
			return nil, err
		}
		result.Created++
	}
	return result, nil
}

// ImportUnits loads `name | abbreviation` rows into material_units.
// A row with only a name gets the first three letters as its abbreviation.
func (s *CatalogImportService) ImportUnits(path string) (*ImportResult, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, rec := range records {
		name := field(rec.fields, 0)
		if name == "" {
			result.warn("Line %d: invalid format, skipping", rec.line)
			result.Skipped++
			continue
		}
		abbreviation := field(rec.fields, 1)
		if abbreviation == "" {
			if len(name) > 3 {
				abbreviation = name[:3]
			} else {
				abbreviation = name
			}
		}

		var count int64
		if err := s.db.Model(&models.MaterialUnit{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			result.warn("Line %d: unit %q already exists", rec.line, name)
			result.Skipped++
			continue
		}

		if err := s.db.Create(&models.MaterialUnit{Name: name, Abbreviation: abbreviation}).Error; err != nil {
			return nil, err
		}
		result.Created++
	}
	return result, nil
}

// ImportMaterialCatalog loads `category_key | description | unit_name | cost`
// rows into the material catalog. Unknown categories skip the row; an
// unknown unit leaves the unit null with a warning. A duplicate is the same
// (category, description) pair.
func (s *CatalogImportService) ImportMaterialCatalog(path string) (*ImportResult, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, rec := range records {
		categoryKey, description := field(rec.fields, 0), field(rec.fields, 1)
		unitName, costRaw := field(rec.fields, 2), field(rec.fields, 3)

		if categoryKey == "" || description == "" || unitName == "" {
			result.warn("Line %d: invalid format, skipping", rec.line)
			result.Skipped++
			continue
		}

		var category models.MaterialCategory
		if err := s.db.Where("category_key = ?", categoryKey).First(&category).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				result.warn("Line %d: unknown category %q", rec.line, categoryKey)
				result.Skipped++
				continue
			}
			return nil, err
		}

		var unitID *uint
		var unit models.MaterialUnit
		if err := s.db.Where("name = ?", unitName).First(&unit).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return nil, err
			}
			result.warn("Line %d: unit %q not found, leaving unit empty", rec.line, unitName)
		} else {
			unitID = &unit.UnitID
		}

		cost := decimal.Zero
		if costRaw != "" {
			parsed, err := decimal.NewFromString(costRaw)
			if err != nil {
				result.warn("Line %d: invalid cost %q, skipping", rec.line, costRaw)
				result.Skipped++
				continue
			}
			cost = parsed
		}

		var count int64
		err := s.db.Model(&models.MaterialCatalog{}).
			Where("category_id = ? AND description = ?", category.CategoryID, description).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			result.warn("Line %d: %q - %q already exists", rec.line, category.Name, description)
			result.Skipped++
			continue
		}

		entry := models.MaterialCatalog{
			CategoryID:  category.CategoryID,
			Description: description,
			UnitID:      unitID,
			DefaultCost: cost,
		}
		if err := s.db.Create(&entry).Error; err != nil {
			return nil, err
		}
		result.Created++
	}
	return result, nil
}
