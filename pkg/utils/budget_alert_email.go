package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type BudgetOverrun struct {
	Category  string
	Allocated decimal.Decimal
	Spent     decimal.Decimal
}

func SendBudgetAlertEmail(to, firstName string, month, year int, overruns []BudgetOverrun) error {
	subject := fmt.Sprintf("Budget alert: %d categor(ies) over budget for %d/%d", len(overruns), month, year)

	var rows strings.Builder
	for _, o := range overruns {
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding:8px;border:1px solid #ddd;">%s</td><td style="padding:8px;border:1px solid #ddd;">%s</td><td style="padding:8px;border:1px solid #ddd;color:#c0392b;">%s</td></tr>`,
			o.Category, o.Allocated.StringFixed(2), o.Spent.StringFixed(2)))
	}

	body := fmt.Sprintf(`
	<html>
	<body style="font-family: Arial, sans-serif; color: #333;">
		<h2>Hi %s,</h2>
		<p>The following budgets for %d/%d have been exceeded:</p>
		<table style="border-collapse:collapse;">
			<tr>
				<th style="padding:8px;border:1px solid #ddd;text-align:left;">Category</th>
				<th style="padding:8px;border:1px solid #ddd;text-align:left;">Allocated</th>
				<th style="padding:8px;border:1px solid #ddd;text-align:left;">Spent</th>
			</tr>
			%s
		</table>
		<p>You can adjust your budgets or review your transactions any time.</p>
		<p>— Budget Tracker</p>
	</body>
	</html>`, firstName, month, year, rows.String())

	return SendEmail(to, subject, body)
}
