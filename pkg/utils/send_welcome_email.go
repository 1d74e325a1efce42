package utils

import (
	"fmt"
)

func SendWelcomeEmail(to, firstName string) error {
	subject := fmt.Sprintf("Welcome to Budget Tracker, %s!", firstName)

	body := fmt.Sprintf(`
	<html>
	<body style="font-family: Arial, sans-serif; color: #333;">
		<h2>Welcome aboard, %s!</h2>
		<p>Your Budget Tracker account is ready. Start by creating a few income
		and expense categories, then record transactions and set monthly budgets
		to see how your spending compares.</p>
		<p>Happy tracking!</p>
		<p>— The Budget Tracker team</p>
	</body>
	</html>`, firstName)

	return SendEmail(to, subject, body)
}
