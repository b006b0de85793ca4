package finance

import (
	"context"

	"github.com/walletwise/finance/pkg/models"
	"golang.org/x/sync/errgroup"
)

// recentTransactions is the number of transactions in the overview.
const recentTransactions = 10

// Overview is the dashboard of the principal.
type Overview struct {
	Wallets             []models.Wallet          `json:"wallets"`
	Budgets             []BudgetStatus           `json:"budgets"`
	Month               *models.MonthlySummary   `json:"month"` // Current month, nil without transactions
	RecentTransactions  []models.Transaction     `json:"recent_transactions"`
	Expenses            []models.CategorySummary `json:"expenses"` // Expenses of the current month by category
	UnreadNotifications []models.Notification    `json:"unread_notifications"`
}

// Overview reads the dashboard of the principal. The parts are read
// concurrently, the first failure cancels the others.
func (c *Client) Overview(ctx context.Context) (Overview, error) {
	var o Overview

	today := c.today()
	year, month := today.Month().Year(), today.Month().Number()
	start := today.Month().FirstDay()
	end := today.Month().AddDate(0, 1).FirstDay().AddDays(-1)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		o.Wallets, err = c.ListWallets(ctx)
		return
	})

	g.Go(func() (err error) {
		o.Budgets, err = c.ListBudgets(ctx)
		return
	})

	g.Go(func() error {
		summaries, err := c.MonthlySummary(ctx, &year, &month)
		if err == nil && len(summaries) > 0 {
			o.Month = &summaries[0]
		}
		return err
	})

	g.Go(func() (err error) {
		o.RecentTransactions, err = c.RecentTransactions(ctx, recentTransactions)
		return
	})

	g.Go(func() (err error) {
		o.Expenses, err = c.CategorySummary(ctx, &start, &end, models.CategoryTypeExpense)
		return
	})

	g.Go(func() (err error) {
		o.UnreadNotifications, err = c.UnreadNotifications(ctx)
		return
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	return o, nil
}
