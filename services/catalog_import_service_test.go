package services

import (
	"os"
	"path/filepath"
	"testing"

	"construction-tracker-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImportFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write import file: %v", err)
	}
	return path
}

func TestImportMaterialCategoriesFromPipeDelimitedFile(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogImportService(db)

	path := writeImportFile(t, "categories.txt", `# construction material categories
wood | Wood & Lumber
cement | Cement & Concrete
electrical | Electrical
`)

	result, err := svc.ImportMaterialCategories(path)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Warnings)

	var categories []models.MaterialCategory
	require.NoError(t, db.Order("category_id").Find(&categories).Error)
	require.Len(t, categories, 3)
	assert.Equal(t, "wood", categories[0].Key)
	assert.Equal(t, "Wood & Lumber", categories[0].Name)
}

func TestImportSkipsDuplicatesAndMalformedRows(t *testing.T) {
	db := newTestDB(t)
	seedMaterialCategory(t, db, "wood", "Wood")
	svc := NewCatalogImportService(db)

	path := writeImportFile(t, "categories.txt", `wood | Wood & Lumber
cement | Cement & Concrete
only-a-key
plumbing | Plumbing
`)

	result, err := svc.ImportMaterialCategories(path)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], `"wood" already exists`)
	assert.Contains(t, result.Warnings[1], "invalid format")

	var count int64
	require.NoError(t, db.Model(&models.MaterialCategory{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestImportAcceptsCommaDelimitedLines(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogImportService(db)

	path := writeImportFile(t, "labor.txt", `mason, Mason
carpenter, Carpenter
`)

	result, err := svc.ImportLaborCategories(path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)

	var mason models.LaborCategory
	require.NoError(t, db.Where("category_key = ?", "mason").First(&mason).Error)
	assert.Equal(t, "Mason", mason.Name)
}

func TestImportUnitsDefaultsAbbreviation(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogImportService(db)

	path := writeImportFile(t, "units.txt", `Pieces | pcs
Kilograms
Bag
`)

	result, err := svc.ImportUnits(path)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Created)

	var kg models.MaterialUnit
	require.NoError(t, db.Where("name = ?", "Kilograms").First(&kg).Error)
	assert.Equal(t, "Kil", kg.Abbreviation)

	var bag models.MaterialUnit
	require.NoError(t, db.Where("name = ?", "Bag").First(&bag).Error)
	assert.Equal(t, "Bag", bag.Abbreviation)
}

func TestImportMaterialCatalogResolvesCategoryAndUnit(t *testing.T) {
	db := newTestDB(t)
	wood := seedMaterialCategory(t, db, "wood", "Wood")
	unit := seedUnit(t, db, "Pieces", "pcs")
	svc := NewCatalogImportService(db)

	path := writeImportFile(t, "catalog.txt", `wood | 2x4 lumber 8ft | Pieces | 5.25
wood | Plywood sheet | Sheets | 32.00
steel | Rebar #4 | Pieces | 8.50
`)

	result, err := svc.ImportMaterialCatalog(path)
	require.NoError(t, err)

	// Unknown unit still creates the row; unknown category skips it.
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], `unit "Sheets" not found`)
	assert.Contains(t, result.Warnings[1], `unknown category "steel"`)

	var lumber models.MaterialCatalog
	require.NoError(t, db.Where("description = ?", "2x4 lumber 8ft").First(&lumber).Error)
	assert.Equal(t, wood.CategoryID, lumber.CategoryID)
	require.NotNil(t, lumber.UnitID)
	assert.Equal(t, unit.UnitID, *lumber.UnitID)
	assert.True(t, lumber.DefaultCost.Equal(dec(t, "5.25")))

	var plywood models.MaterialCatalog
	require.NoError(t, db.Where("description = ?", "Plywood sheet").First(&plywood).Error)
	assert.Nil(t, plywood.UnitID)
}

func TestImportMaterialCatalogSkipsDuplicateDescription(t *testing.T) {
	db := newTestDB(t)
	seedMaterialCategory(t, db, "wood", "Wood")
	seedUnit(t, db, "Pieces", "pcs")
	svc := NewCatalogImportService(db)

	path := writeImportFile(t, "catalog.txt", `wood | 2x4 lumber 8ft | Pieces | 5.25
wood | 2x4 lumber 8ft | Pieces | 6.00
`)

	result, err := svc.ImportMaterialCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Skipped)

	var first models.MaterialCatalog
	require.NoError(t, db.Where("description = ?", "2x4 lumber 8ft").First(&first).Error)
	assert.True(t, first.DefaultCost.Equal(dec(t, "5.25")), "first row wins, never overwritten")
}

func TestImportRejectsUnsupportedExtension(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogImportService(db)

	path := writeImportFile(t, "categories.csv", "wood,Wood\n")

	_, err := svc.ImportMaterialCategories(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")
}
