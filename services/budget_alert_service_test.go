package services

import (
	"testing"
	"time"

	"construction-tracker-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoAlertBelowWarningThreshold(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	project := seedProject(t, db, user, "1000")
	category := seedMaterialCategory(t, db, "wood", "Wood")
	unit := seedUnit(t, db, "Pieces", "pcs")
	seedMaterial(t, db, project, category, unit, "700", date(2024, time.January, 5))

	evaluator := NewBudgetAlertEvaluator(db)
	alert, err := evaluator.EvaluateAndRaise(&project)
	require.NoError(t, err)
	assert.Nil(t, alert)

	var count int64
	require.NoError(t, db.Model(&models.BudgetAlert{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWarningAlertAtSeventyFivePercent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	project := seedProject(t, db, user, "1000")
	category := seedMaterialCategory(t, db, "wood", "Wood")
	unit := seedUnit(t, db, "Pieces", "pcs")
	seedMaterial(t, db, project, category, unit, "800", date(2024, time.January, 5))

	evaluator := NewBudgetAlertEvaluator(db)
	alert, err := evaluator.EvaluateAndRaise(&project)
	require.NoError(t, err)

	require.NotNil(t, alert)
	assert.Equal(t, models.AlertTypeWarning, alert.AlertType)
	assert.True(t, alert.Percentage.Equal(dec(t, "80")))
	assert.Contains(t, alert.Message, "80.0%")
	assert.False(t, alert.IsRead)
	assert.False(t, alert.EmailSent)
}

func TestOnlyMostSevereThresholdRaises(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	project := seedProject(t, db, user, "1000")
	category := seedMaterialCategory(t, db, "wood", "Wood")
	unit := seedUnit(t, db, "Pieces", "pcs")

	// 95% crosses both warning and critical; only critical fires.
	seedMaterial(t, db, project, category, unit, "950", date(2024, time.January, 5))

	evaluator := NewBudgetAlertEvaluator(db)
	alert, err := evaluator.EvaluateAndRaise(&project)
	require.NoError(t, err)

	require.NotNil(t, alert)
	assert.Equal(t, models.AlertTypeCritical, alert.AlertType)

	var count int64
	require.NoError(t, db.Model(&models.BudgetAlert{}).
		Where("project_id = ?", project.ProjectID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSuppressedThresholdFallsThroughToLowerOne(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	project := seedProject(t, db, user, "1000")
	category := seedMaterialCategory(t, db, "wood", "Wood")
	unit := seedUnit(t, db, "Pieces", "pcs")

	// 95% crosses critical and warning at once.
	seedMaterial(t, db, project, category, unit, "950", date(2024, time.January, 5))

	evaluator := NewBudgetAlertEvaluator(db)
	first, err := evaluator.EvaluateAndRaise(&project)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, models.AlertTypeCritical, first.AlertType)

	// Critical already exists, so the next call owes the warning alert.
	second, err := evaluator.EvaluateAndRaise(&project)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, models.AlertTypeWarning, second.AlertType)

	third, err := evaluator.EvaluateAndRaise(&project)
	require.NoError(t, err)
	assert.Nil(t, third, "both crossed types exist, nothing left to raise")

	var count int64
	require.NoError(t, db.Model(&models.BudgetAlert{}).
		Where("project_id = ?", project.ProjectID).
		Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestNoAlertJustBelowWarningBoundary(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	project := seedProject(t, db, user, "10000")
	category := seedMaterialCategory(t, db, "wood", "Wood")
	unit := seedUnit(t, db, "Pieces", "pcs")

	// 74.95%: would round up to 75.0 but has not crossed the boundary.
	seedMaterial(t, db, project, category, unit, "7495", date(2024, time.January, 5))

	evaluator := NewBudgetAlertEvaluator(db)
	alert, err := evaluator.EvaluateAndRaise(&project)
	require.NoError(t, err)
	assert.Nil(t, alert)

	var count int64
	require.NoError(t, db.Model(&models.BudgetAlert{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWarningAlertAtExactBoundary(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	project := seedProject(t, db, user, "10000")
	category := seedMaterialCategory(t, db, "wood", "Wood")
	unit := seedUnit(t, db, "Pieces", "pcs")
	seedMaterial(t, db, project, category, unit, "7500", date(2024, time.January, 5))

	evaluator := NewBudgetAlertEvaluator(db)
	alert, err := evaluator.EvaluateAndRaise(&project)
	require.NoError(t, err)

	require.NotNil(t, alert)
	assert.Equal(t, models.AlertTypeWarning, alert.AlertType)
	assert.True(t, alert.Percentage.Equal(dec(t, "75")))
}

func TestRepeatedEvaluationDoesNotDuplicateAlerts(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	project := seedProject(t, db, user, "1000")
	category := seedMaterialCategory(t, db, "wood", "Wood")
	unit := seedUnit(t, db, "Pieces", "pcs")
	seedMaterial(t, db, project, category, unit, "800", date(2024, time.January, 5))

	evaluator := NewBudgetAlertEvaluator(db)
	first, err := evaluator.EvaluateAndRaise(&project)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := evaluator.EvaluateAndRaise(&project)
	require.NoError(t, err)
	assert.Nil(t, second, "same threshold must not raise twice")

	var count int64
	require.NoError(t, db.Model(&models.BudgetAlert{}).
		Where("project_id = ?", project.ProjectID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEscalationKeepsEarlierAlerts(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	project := seedProject(t, db, user, "1000")
	category := seedMaterialCategory(t, db, "wood", "Wood")
	unit := seedUnit(t, db, "Pieces", "pcs")
	mason := seedLaborCategory(t, db, "mason", "Mason")

	seedMaterial(t, db, project, category, unit, "800", date(2024, time.January, 5))
	evaluator := NewBudgetAlertEvaluator(db)
	warning, err := evaluator.EvaluateAndRaise(&project)
	require.NoError(t, err)
	require.NotNil(t, warning)
	require.Equal(t, models.AlertTypeWarning, warning.AlertType)

	// Two more days of labor push spend to 1000 exactly, crossing 100%.
	seedLabor(t, db, project, mason, date(2024, time.January, 6), 2, "100")

	exceeded, err := evaluator.EvaluateAndRaise(&project)
	require.NoError(t, err)
	require.NotNil(t, exceeded)
	assert.Equal(t, models.AlertTypeExceeded, exceeded.AlertType)
	assert.True(t, exceeded.Percentage.Equal(dec(t, "100")))

	var alerts []models.BudgetAlert
	require.NoError(t, db.Where("project_id = ?", project.ProjectID).
		Order("alert_id").Find(&alerts).Error)
	require.Len(t, alerts, 2)
	assert.Equal(t, models.AlertTypeWarning, alerts[0].AlertType)
	assert.Equal(t, models.AlertTypeExceeded, alerts[1].AlertType)
}

func TestReadAlertStillSuppressesReAlerting(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	project := seedProject(t, db, user, "1000")
	category := seedMaterialCategory(t, db, "wood", "Wood")
	unit := seedUnit(t, db, "Pieces", "pcs")
	seedMaterial(t, db, project, category, unit, "800", date(2024, time.January, 5))

	evaluator := NewBudgetAlertEvaluator(db)
	alert, err := evaluator.EvaluateAndRaise(&project)
	require.NoError(t, err)
	require.NotNil(t, alert)

	require.NoError(t, db.Model(alert).Update("is_read", true).Error)

	again, err := evaluator.EvaluateAndRaise(&project)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestZeroBudgetProjectNeverAlerts(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	project := seedProject(t, db, user, "0")
	category := seedMaterialCategory(t, db, "wood", "Wood")
	unit := seedUnit(t, db, "Pieces", "pcs")
	seedMaterial(t, db, project, category, unit, "5000", date(2024, time.January, 5))

	evaluator := NewBudgetAlertEvaluator(db)
	alert, err := evaluator.EvaluateAndRaise(&project)
	require.NoError(t, err)
	assert.Nil(t, alert)
}
