package services

import (
	"fmt"

	"construction-tracker-api/config"
	"construction-tracker-api/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetAlertEvaluator decides whether a mutation pushed a project across a
// spend threshold and records at most one alert per threshold type. It is a
// one-shot crossing detector, not a monitor: it only runs when called after
// a mutation, and it never removes or downgrades alerts when spend drops.
type BudgetAlertEvaluator struct {
	db         *gorm.DB
	aggregator *CostAggregator
}

func NewBudgetAlertEvaluator(db *gorm.DB) *BudgetAlertEvaluator {
	return &BudgetAlertEvaluator{db: db, aggregator: NewCostAggregator(db)}
}

// EvaluateAndRaise checks the project's utilization against the alert
// thresholds in descending severity and creates the first alert whose
// threshold is crossed and whose type does not yet exist for the project.
// A threshold whose type already exists falls through to the next lower
// one, so a project at 95% with a critical alert on record still gets its
// warning alert. Returns the created alert, or nil when nothing crossed.
// Callers treat failures as best-effort bookkeeping: they log and move on,
// never rolling back the mutation that triggered the evaluation.
func (e *BudgetAlertEvaluator) EvaluateAndRaise(project *models.Project) (*models.BudgetAlert, error) {
	spent, err := e.aggregator.TotalSpent(project.ProjectID)
	if err != nil {
		return nil, err
	}
	percentage := UtilizationPercentage(spent, project.Budget)

	thresholds := []struct {
		limit     decimal.Decimal
		alertType string
		message   string
	}{
		{decimal.NewFromInt(100), models.AlertTypeExceeded,
			fmt.Sprintf("Budget exceeded! Spent %s of %s (%s%%)",
				spent.StringFixed(2), project.Budget.StringFixed(2), percentage.StringFixed(1))},
		{decimal.NewFromInt(90), models.AlertTypeCritical,
			fmt.Sprintf("Critical: %s%% of budget used (%s of %s)",
				percentage.StringFixed(1), spent.StringFixed(2), project.Budget.StringFixed(2))},
		{decimal.NewFromInt(75), models.AlertTypeWarning,
			fmt.Sprintf("Warning: %s%% of budget used (%s of %s)",
				percentage.StringFixed(1), spent.StringFixed(2), project.Budget.StringFixed(2))},
	}

	for _, t := range thresholds {
		if !percentage.GreaterThanOrEqual(t.limit) {
			continue
		}

		var count int64
		err := e.db.Model(&models.BudgetAlert{}).
			Where("project_id = ? AND alert_type = ?", project.ProjectID, t.alertType).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("checking existing %s alert: %w", t.alertType, err)
		}
		if count > 0 {
			// Read state is ignored: a read alert still suppresses its
			// type. Lower thresholds stay eligible.
			continue
		}

		alert := &models.BudgetAlert{
			ProjectID:  project.ProjectID,
			AlertType:  t.alertType,
			Percentage: percentage.Round(1),
			Message:    t.message,
		}
		if err := e.db.Create(alert).Error; err != nil {
			return nil, fmt.Errorf("creating %s alert: %w", t.alertType, err)
		}
		return alert, nil
	}
	return nil, nil
}

// DispatchAlertEmail emails the alert to the project owner and marks it
// email_sent. Failures are the caller's to log; the alert row stays
// unsent so a later dispatch can retry.
func DispatchAlertEmail(db *gorm.DB, alert *models.BudgetAlert) error {
	if alert == nil || alert.EmailSent {
		return nil
	}

	var project models.Project
	if err := db.Preload("Owner").First(&project, alert.ProjectID).Error; err != nil {
		return fmt.Errorf("loading project for alert %d: %w", alert.AlertID, err)
	}
	if project.Owner.Email == "" {
		return nil
	}

	subject := fmt.Sprintf("Budget alert for %s", project.Name)
	body := fmt.Sprintf("<p>%s</p>", alert.Message)
	if err := config.SendMail([]string{project.Owner.Email}, subject, body); err != nil {
		return err
	}

	return db.Model(alert).Update("email_sent", true).Error
}
