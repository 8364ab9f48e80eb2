package services

import (
	"testing"
	"time"

	"construction-tracker-api/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalsAreZeroForEmptyProject(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	project := seedProject(t, db, user, "0")
	agg := NewCostAggregator(db)

	spending, err := agg.ProjectSpending(&project)
	require.NoError(t, err)

	assert.True(t, spending.MaterialCost.IsZero())
	assert.True(t, spending.LaborCost.IsZero())
	assert.True(t, spending.TotalSpent.IsZero())
	// Zero budget must yield zero utilization, not a division error.
	assert.True(t, spending.Utilization.IsZero())
}

func TestProjectSpendingSumsMaterialsAndLabor(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	project := seedProject(t, db, user, "1000")
	category := seedMaterialCategory(t, db, "wood", "Wood")
	unit := seedUnit(t, db, "Pieces", "pcs")
	mason := seedLaborCategory(t, db, "mason", "Mason")

	seedMaterial(t, db, project, category, unit, "300.50", date(2024, time.January, 10))
	seedMaterial(t, db, project, category, unit, "199.50", date(2024, time.January, 20))
	seedLabor(t, db, project, mason, date(2024, time.January, 15), 2, "100")

	agg := NewCostAggregator(db)
	spending, err := agg.ProjectSpending(&project)
	require.NoError(t, err)

	assert.True(t, spending.MaterialCost.Equal(dec(t, "500.00")), "material cost = %s", spending.MaterialCost)
	assert.True(t, spending.LaborCost.Equal(dec(t, "200")), "labor cost = %s", spending.LaborCost)
	assert.True(t, spending.TotalSpent.Equal(dec(t, "700.00")), "total spent = %s", spending.TotalSpent)
	assert.True(t, spending.RemainingBudget.Equal(dec(t, "300.00")), "remaining = %s", spending.RemainingBudget)
	assert.True(t, spending.Utilization.Equal(dec(t, "70")), "utilization = %s", spending.Utilization)
}

func TestRepeatedReadsAgreeWithoutWrites(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	project := seedProject(t, db, user, "1000")
	category := seedMaterialCategory(t, db, "cement", "Cement")
	unit := seedUnit(t, db, "Bags", "bag")
	seedMaterial(t, db, project, category, unit, "420.69", date(2024, time.March, 1))

	agg := NewCostAggregator(db)
	first, err := agg.TotalSpent(project.ProjectID)
	require.NoError(t, err)
	second, err := agg.TotalSpent(project.ProjectID)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestUtilizationPercentage(t *testing.T) {
	cases := []struct {
		name   string
		spent  string
		budget string
		want   string
	}{
		{"zero budget", "500", "0", "0"},
		{"zero spend", "0", "1000", "0"},
		{"partial", "800", "1000", "80"},
		{"exceeded", "1200", "1000", "120"},
		{"fractional", "333", "1000", "33.3"},
		{"kept exact near a boundary", "7495", "10000", "74.95"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spent, _ := decimal.NewFromString(tc.spent)
			budget, _ := decimal.NewFromString(tc.budget)
			want, _ := decimal.NewFromString(tc.want)
			got := UtilizationPercentage(spent, budget)
			if !got.Equal(want) {
				t.Fatalf("UtilizationPercentage(%s, %s) = %s, want %s", tc.spent, tc.budget, got, want)
			}
		})
	}
}

func TestMaterialBreakdownSortsByCostDescending(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	project := seedProject(t, db, user, "10000")
	wood := seedMaterialCategory(t, db, "wood", "Wood")
	cement := seedMaterialCategory(t, db, "cement", "Cement")
	unit := seedUnit(t, db, "Pieces", "pcs")

	seedMaterial(t, db, project, wood, unit, "100", date(2024, time.January, 1))
	seedMaterial(t, db, project, wood, unit, "150", date(2024, time.January, 2))
	seedMaterial(t, db, project, cement, unit, "900", date(2024, time.January, 3))

	agg := NewCostAggregator(db)
	breakdown, err := agg.MaterialBreakdown(project.ProjectID)
	require.NoError(t, err)

	require.Len(t, breakdown, 2)
	assert.Equal(t, "Cement", breakdown[0].CategoryName)
	assert.True(t, breakdown[0].TotalCost.Equal(dec(t, "900")))
	assert.Equal(t, 1, breakdown[0].EntryCount)
	assert.Equal(t, "Wood", breakdown[1].CategoryName)
	assert.True(t, breakdown[1].TotalCost.Equal(dec(t, "250")))
	assert.Equal(t, 2, breakdown[1].EntryCount)
}

func TestLaborBreakdownMultipliesWorkersByRate(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	project := seedProject(t, db, user, "10000")
	mason := seedLaborCategory(t, db, "mason", "Mason")
	carpenter := seedLaborCategory(t, db, "carpenter", "Carpenter")

	seedLabor(t, db, project, mason, date(2024, time.February, 1), 3, "150")     // 450
	seedLabor(t, db, project, mason, date(2024, time.February, 2), 2, "150")     // 300
	seedLabor(t, db, project, carpenter, date(2024, time.February, 1), 1, "200") // 200

	agg := NewCostAggregator(db)
	breakdown, err := agg.LaborBreakdown(project.ProjectID)
	require.NoError(t, err)

	require.Len(t, breakdown, 2)
	assert.Equal(t, "Mason", breakdown[0].CategoryName)
	assert.True(t, breakdown[0].TotalCost.Equal(dec(t, "750")))
	assert.Equal(t, 2, breakdown[0].EntryCount)
	assert.Equal(t, "Carpenter", breakdown[1].CategoryName)
	assert.True(t, breakdown[1].TotalCost.Equal(dec(t, "200")))
}

func TestMonthlyTimelineDefaultsMissingSideToZero(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	project := seedProject(t, db, user, "10000")
	category := seedMaterialCategory(t, db, "wood", "Wood")
	unit := seedUnit(t, db, "Pieces", "pcs")
	mason := seedLaborCategory(t, db, "mason", "Mason")

	// Material cost in January only, labor cost in February only.
	seedMaterial(t, db, project, category, unit, "500", date(2024, time.January, 12))
	seedLabor(t, db, project, mason, date(2024, time.February, 5), 2, "100")

	agg := NewCostAggregator(db)
	timeline, err := agg.MonthlyTimeline([]uint{project.ProjectID})
	require.NoError(t, err)

	require.Len(t, timeline, 2)
	assert.Equal(t, "2024-01", timeline[0].Month)
	assert.True(t, timeline[0].MaterialCost.Equal(dec(t, "500")))
	assert.True(t, timeline[0].LaborCost.IsZero())
	assert.Equal(t, "2024-02", timeline[1].Month)
	assert.True(t, timeline[1].MaterialCost.IsZero())
	assert.True(t, timeline[1].LaborCost.Equal(dec(t, "200")))
}

func TestMonthlyTimelineAccumulatesWithinMonth(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	project := seedProject(t, db, user, "10000")
	category := seedMaterialCategory(t, db, "wood", "Wood")
	unit := seedUnit(t, db, "Pieces", "pcs")
	mason := seedLaborCategory(t, db, "mason", "Mason")

	seedMaterial(t, db, project, category, unit, "100", date(2024, time.March, 1))
	seedMaterial(t, db, project, category, unit, "200", date(2024, time.March, 28))
	seedLabor(t, db, project, mason, date(2024, time.March, 10), 1, "80")
	seedLabor(t, db, project, mason, date(2024, time.March, 11), 1, "80")

	agg := NewCostAggregator(db)
	timeline, err := agg.MonthlyTimeline([]uint{project.ProjectID})
	require.NoError(t, err)

	require.Len(t, timeline, 1)
	assert.Equal(t, "2024-03", timeline[0].Month)
	assert.True(t, timeline[0].MaterialCost.Equal(dec(t, "300")))
	assert.True(t, timeline[0].LaborCost.Equal(dec(t, "160")))
}

func TestMonthlyTimelineEmptyProjectSet(t *testing.T) {
	db := newTestDB(t)
	agg := NewCostAggregator(db)

	timeline, err := agg.MonthlyTimeline(nil)
	require.NoError(t, err)
	assert.Empty(t, timeline)
}

func TestLaborEntryUniquePerProjectCategoryAndDate(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	project := seedProject(t, db, user, "10000")
	mason := seedLaborCategory(t, db, "mason", "Mason")

	seedLabor(t, db, project, mason, date(2024, time.April, 1), 2, "100")

	duplicate := models.LaborEntry{
		ProjectID:        project.ProjectID,
		CategoryID:       mason.CategoryID,
		WorkDate:         date(2024, time.April, 1),
		NumberOfWorkers:  5,
		RatePerWorkerDay: dec(t, "120"),
		CreatedBy:        user.UserID,
	}
	err := db.Create(&duplicate).Error
	require.Error(t, err, "second entry for the same project/category/date must be rejected")

	// A different date for the same role is fine.
	next := duplicate
	next.WorkDate = date(2024, time.April, 2)
	require.NoError(t, db.Create(&next).Error)
}
