package services

import (
	"fmt"
	"sort"

	"construction-tracker-api/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CostAggregator computes spend totals for projects on demand. Every method
// is a fresh read: nothing is cached, so two calls without an intervening
// write always agree.
type CostAggregator struct {
	db *gorm.DB
}

func NewCostAggregator(db *gorm.DB) *CostAggregator {
	return &CostAggregator{db: db}
}

// ProjectSpending is the derived cost summary for one project.
type ProjectSpending struct {
	MaterialCost    decimal.Decimal `json:"material_cost"`
	LaborCost       decimal.Decimal `json:"labor_cost"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
	Utilization     decimal.Decimal `json:"utilization_percentage"`
}

// CategoryBreakdown is a per-category cost slice.
type CategoryBreakdown struct {
	CategoryName string          `json:"category_name"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	EntryCount   int             `json:"entry_count"`
}

// MonthlySpending is one month in the merged material/labor timeline.
type MonthlySpending struct {
	Month        string          `json:"month"` // YYYY-MM
	MaterialCost decimal.Decimal `json:"material_cost"`
	LaborCost    decimal.Decimal `json:"labor_cost"`
}

// TotalMaterialCost sums material entry costs for the project, zero when
// it has none.
func (a *CostAggregator) TotalMaterialCost(projectID uint) (decimal.Decimal, error) {
	row := a.db.Model(&models.MaterialEntry{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(SUM(cost), 0)").
		Row()

	var total decimal.Decimal
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("summing material costs: %w", err)
	}
	return total, nil
}

// TotalLaborCost sums workers x daily rate over the project's labor
// entries. The multiplication stays in Go so the figures keep decimal
// precision on every database backend.
func (a *CostAggregator) TotalLaborCost(projectID uint) (decimal.Decimal, error) {
	var entries []models.LaborEntry
	if err := a.db.Where("project_id = ?", projectID).Find(&entries).Error; err != nil {
		return decimal.Zero, fmt.Errorf("loading labor entries: %w", err)
	}

	total := decimal.Zero
	for i := range entries {
		total = total.Add(entries[i].TotalCost())
	}
	return total, nil
}

// TotalSpent is material cost plus labor cost.
func (a *CostAggregator) TotalSpent(projectID uint) (decimal.Decimal, error) {
	materials, err := a.TotalMaterialCost(projectID)
	if err != nil {
		return decimal.Zero, err
	}
	labor, err := a.TotalLaborCost(projectID)
	if err != nil {
		return decimal.Zero, err
	}
	return materials.Add(labor), nil
}

// UtilizationPercentage returns total_spent / budget * 100, and zero for a
// zero budget. The guard is explicit: a zero-budget project must never
// produce a division error. The result is the exact ratio; threshold
// comparisons depend on it, so rounding happens only at display and
// storage time.
func UtilizationPercentage(totalSpent, budget decimal.Decimal) decimal.Decimal {
	if budget.IsZero() {
		return decimal.Zero
	}
	return totalSpent.Div(budget).Mul(decimal.NewFromInt(100))
}

// ProjectSpending computes the full derived summary for one project.
func (a *CostAggregator) ProjectSpending(project *models.Project) (*ProjectSpending, error) {
	materials, err := a.TotalMaterialCost(project.ProjectID)
	if err != nil {
		return nil, err
	}
	labor, err := a.TotalLaborCost(project.ProjectID)
	if err != nil {
		return nil, err
	}

	total := materials.Add(labor)
	return &ProjectSpending{
		MaterialCost:    materials,
		LaborCost:       labor,
		TotalSpent:      total,
		RemainingBudget: project.Budget.Sub(total),
		Utilization:     UtilizationPercentage(total, project.Budget).Round(1),
	}, nil
}

// MaterialBreakdown groups material costs by category, most expensive first.
func (a *CostAggregator) MaterialBreakdown(projectID uint) ([]CategoryBreakdown, error) {
	return a.MaterialBreakdownForProjects([]uint{projectID})
}

// MaterialBreakdownForProjects is MaterialBreakdown across several projects.
func (a *CostAggregator) MaterialBreakdownForProjects(projectIDs []uint) ([]CategoryBreakdown, error) {
	if len(projectIDs) == 0 {
		return []CategoryBreakdown{}, nil
	}

	var entries []models.MaterialEntry
	err := a.db.Preload("Category").
		Where("project_id IN ?", projectIDs).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("loading material entries: %w", err)
	}

	byCategory := make(map[string]*CategoryBreakdown)
	for i := range entries {
		name := entries[i].Category.Name
		row, ok := byCategory[name]
		if !ok {
			row = &CategoryBreakdown{CategoryName: name, TotalCost: decimal.Zero}
			byCategory[name] = row
		}
		row.TotalCost = row.TotalCost.Add(entries[i].Cost)
		row.EntryCount++
	}

	return sortBreakdown(byCategory), nil
}

// LaborBreakdown groups labor costs by role, most expensive first.
func (a *CostAggregator) LaborBreakdown(projectID uint) ([]CategoryBreakdown, error) {
	return a.LaborBreakdownForProjects([]uint{projectID})
}

// LaborBreakdownForProjects is LaborBreakdown across several projects.
func (a *CostAggregator) LaborBreakdownForProjects(projectIDs []uint) ([]CategoryBreakdown, error) {
	if len(projectIDs) == 0 {
		return []CategoryBreakdown{}, nil
	}

	var entries []models.LaborEntry
	err := a.db.Preload("Category").
		Where("project_id IN ?", projectIDs).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("loading labor entries: %w", err)
	}

	byCategory := make(map[string]*CategoryBreakdown)
	for i := range entries {
		name := entries[i].Category.Name
		row, ok := byCategory[name]
		if !ok {
			row = &CategoryBreakdown{CategoryName: name, TotalCost: decimal.Zero}
			byCategory[name] = row
		}
		row.TotalCost = row.TotalCost.Add(entries[i].TotalCost())
		row.EntryCount++
	}

	return sortBreakdown(byCategory), nil
}

func sortBreakdown(byCategory map[string]*CategoryBreakdown) []CategoryBreakdown {
	rows := make([]CategoryBreakdown, 0, len(byCategory))
	for _, row := range byCategory {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].TotalCost.Equal(rows[j].TotalCost) {
			return rows[i].TotalCost.GreaterThan(rows[j].TotalCost)
		}
		return rows[i].CategoryName < rows[j].CategoryName
	})
	return rows
}

// MonthlyTimeline merges material costs (by purchase month) and labor costs
// (by work month) for the given projects into one chronological series.
// A month present on only one side carries a zero for the other.
func (a *CostAggregator) MonthlyTimeline(projectIDs []uint) ([]MonthlySpending, error) {
	if len(projectIDs) == 0 {
		return []MonthlySpending{}, nil
	}

	byMonth := make(map[string]*MonthlySpending)
	monthOf := func(month string) *MonthlySpending {
		row, ok := byMonth[month]
		if !ok {
			row = &MonthlySpending{
				Month:        month,
				MaterialCost: decimal.Zero,
				LaborCost:    decimal.Zero,
			}
			byMonth[month] = row
		}
		return row
	}

	var materials []models.MaterialEntry
	if err := a.db.Where("project_id IN ?", projectIDs).Find(&materials).Error; err != nil {
		return nil, fmt.Errorf("loading material entries: %w", err)
	}
	for i := range materials {
		row := monthOf(materials[i].PurchaseDate.Format("2006-01"))
		row.MaterialCost = row.MaterialCost.Add(materials[i].Cost)
	}

	var labor []models.LaborEntry
	if err := a.db.Where("project_id IN ?", projectIDs).Find(&labor).Error; err != nil {
		return nil, fmt.Errorf("loading labor entries: %w", err)
	}
	for i := range labor {
		row := monthOf(labor[i].WorkDate.Format("2006-01"))
		row.LaborCost = row.LaborCost.Add(labor[i].TotalCost())
	}

	timeline := make([]MonthlySpending, 0, len(byMonth))
	for _, row := range byMonth {
		timeline = append(timeline, *row)
	}
	sort.Slice(timeline, func(i, j int) bool {
		return timeline[i].Month < timeline[j].Month
	})
	return timeline, nil
}
