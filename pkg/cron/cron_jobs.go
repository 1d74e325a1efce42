package cron

import (
	"budget_tracker/pkg/utils"
	"context"
	"database/sql"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

func StartCronJobs(db *sql.DB) *cron.Cron {
	c := cron.New()

	// Runs daily at 08:00 — email users who are over budget this month
	_, err := c.AddFunc("0 8 * * *", func() {
		if err := SendBudgetOverrunAlerts(db); err != nil {
			utils.Logger.Errorf("Cron job failed to send budget alerts: %v", err)
		}
	})
	if err != nil {
		utils.Logger.Errorf("Failed to schedule budget alert job: %v", err)
	}

	c.Start()
	utils.Logger.Info("Cron jobs started (budget overrun alerts daily at 08:00)")
	return c
}

// -------------------------------------------------------------
// Find current-month budgets whose spend exceeds the allocation
// and send each affected user a digest email
// -------------------------------------------------------------
func SendBudgetOverrunAlerts(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	query := `
		SELECT u.email, u.first_name, c.name, b.allocated_amount, COALESCE(SUM(t.amount), 0) AS spent
		FROM budgets b
		JOIN users u ON u.id = b.user_id
		JOIN categories c ON c.id = b.category_id
		LEFT JOIN transactions t ON t.user_id = b.user_id AND t.category_id = b.category_id
			AND t.type = 'EXPENSE' AND MONTH(t.date) = b.month AND YEAR(t.date) = b.year
		WHERE b.month = ? AND b.year = ? AND u.inactive_status = FALSE
		GROUP BY b.id, u.email, u.first_name, c.name, b.allocated_amount
		HAVING spent > b.allocated_amount
	`

	rows, err := db.QueryContext(ctx, query, month, year)
	if err != nil {
		return utils.ErrorHandler(err, "failed to query budget overruns")
	}
	defer rows.Close()

	type recipient struct {
		firstName string
		overruns  []utils.BudgetOverrun
	}
	byEmail := map[string]*recipient{}

	for rows.Next() {
		var email, firstName string
		var o utils.BudgetOverrun
		var allocated, spent decimal.Decimal
		if err := rows.Scan(&email, &firstName, &o.Category, &allocated, &spent); err != nil {
			return err
		}
		o.Allocated = allocated
		o.Spent = spent

		if byEmail[email] == nil {
			byEmail[email] = &recipient{firstName: firstName}
		}
		byEmail[email].overruns = append(byEmail[email].overruns, o)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for email, rec := range byEmail {
		if err := utils.SendBudgetAlertEmail(email, rec.firstName, month, year, rec.overruns); err != nil {
			utils.Logger.Errorf("failed to send budget alert to %s: %v", email, err)
			continue
		}
		utils.Logger.Infof("budget alert sent to %s (%d categories over)", email, len(rec.overruns))
	}

	return nil
}
