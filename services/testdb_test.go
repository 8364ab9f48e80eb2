package services

import (
	"testing"
	"time"

	"construction-tracker-api/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB creates an in-memory SQLite database with the full schema so
// unique indexes and cascade rules behave like the real store. The pool is
// pinned to one connection because each in-memory connection is its own
// database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	tables := []interface{}{
		&models.User{},
		&models.Project{},
		&models.MaterialCategory{},
		&models.MaterialUnit{},
		&models.MaterialCatalog{},
		&models.MaterialEntry{},
		&models.LaborCategory{},
		&models.LaborEntry{},
		&models.Receipt{},
		&models.ProjectPhoto{},
		&models.ActivityLog{},
		&models.BudgetAlert{},
	}
	for _, table := range tables {
		if err := db.AutoMigrate(table); err != nil {
			t.Fatalf("failed to migrate %T: %v", table, err)
		}
	}

	return db
}

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", value, err)
	}
	return d
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{Email: "builder@example.com", PasswordHash: "x", FullName: "Test Builder"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedProject(t *testing.T, db *gorm.DB, owner models.User, budget string) models.Project {
	t.Helper()
	project := models.Project{
		Name:      "Smith Residence Renovation",
		Budget:    dec(t, budget),
		Status:    models.ProjectStatusInProgress,
		StartDate: date(2024, time.January, 1),
		CreatedBy: owner.UserID,
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return project
}

func seedMaterialCategory(t *testing.T, db *gorm.DB, key, name string) models.MaterialCategory {
	t.Helper()
	category := models.MaterialCategory{Key: key, Name: name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed material category: %v", err)
	}
	return category
}

func seedUnit(t *testing.T, db *gorm.DB, name, abbreviation string) models.MaterialUnit {
	t.Helper()
	unit := models.MaterialUnit{Name: name, Abbreviation: abbreviation}
	if err := db.Create(&unit).Error; err != nil {
		t.Fatalf("failed to seed unit: %v", err)
	}
	return unit
}

func seedLaborCategory(t *testing.T, db *gorm.DB, key, name string) models.LaborCategory {
	t.Helper()
	category := models.LaborCategory{Key: key, Name: name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed labor category: %v", err)
	}
	return category
}

func seedMaterial(t *testing.T, db *gorm.DB, project models.Project, category models.MaterialCategory, unit models.MaterialUnit, cost string, purchased time.Time) models.MaterialEntry {
	t.Helper()
	entry := models.MaterialEntry{
		ProjectID:    project.ProjectID,
		CategoryID:   category.CategoryID,
		Description:  "2x4 lumber, 8ft length",
		Quantity:     dec(t, "10"),
		UnitID:       unit.UnitID,
		Cost:         dec(t, cost),
		PurchaseDate: purchased,
		CreatedBy:    project.CreatedBy,
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("failed to seed material entry: %v", err)
	}
	return entry
}

func seedLabor(t *testing.T, db *gorm.DB, project models.Project, category models.LaborCategory, workDate time.Time, workers int, rate string) models.LaborEntry {
	t.Helper()
	entry := models.LaborEntry{
		ProjectID:        project.ProjectID,
		CategoryID:       category.CategoryID,
		WorkDate:         workDate,
		NumberOfWorkers:  workers,
		RatePerWorkerDay: dec(t, rate),
		CreatedBy:        project.CreatedBy,
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("failed to seed labor entry: %v", err)
	}
	return entry
}
