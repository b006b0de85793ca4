package finance

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/walletwise/finance/internal/types"
	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/cache"
	"github.com/walletwise/finance/pkg/models"
	"golang.org/x/sync/errgroup"
)

// statusConcurrency limits the parallel spent queries of ListBudgets.
const statusConcurrency = 4

var budgetKeys = []cache.Key{cache.Budgets}

// BudgetInput is the data of a budget to create or update. Without a
// period, the budget applies to the current calendar month.
type BudgetInput struct {
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Description *string         `json:"description"`
	PeriodStart *types.Date     `json:"period_start"` // Inclusive
	PeriodEnd   *types.Date     `json:"period_end"`   // Exclusive
	WorkspaceID *uuid.UUID      `json:"workspace_id"`
}

func (in BudgetInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name", msgRequired)
	}

	if !in.Amount.IsPositive() {
		return invalid("amount", msgPositive)
	}

	if in.CategoryID == uuid.Nil {
		return invalid("category_id", msgRequired)
	}

	if (in.PeriodStart == nil) != (in.PeriodEnd == nil) {
		return invalid("period_end", msgRequired)
	}

	if in.PeriodStart != nil && !in.PeriodStart.Before(*in.PeriodEnd) {
		return invalid("period_end", msgDateRange)
	}

	return nil
}

// BudgetStatus is a budget with the amount spent in its period.
type BudgetStatus struct {
	models.Budget
	CategoryName string          `json:"category_name" example:"Alimentação"`
	Start        types.Date      `json:"start" example:"2024-03-01"` // First day of the period
	End          types.Date      `json:"end" example:"2024-04-01"`   // Day after the period
	Spent        decimal.Decimal `json:"spent" example:"512.30"`
	Remaining    decimal.Decimal `json:"remaining" example:"287.70"`
	Exceeded     bool            `json:"exceeded"`
}

// period returns the half-open period of the budget. Budgets without a
// period cover the current calendar month.
func (c *Client) period(b models.Budget) (start, end types.Date) {
	if b.PeriodStart != nil && b.PeriodEnd != nil {
		return *b.PeriodStart, *b.PeriodEnd
	}

	month := c.today().Month()
	return month.FirstDay(), month.AddDate(0, 1).FirstDay()
}

// status computes the spent amount of the budget from the expenses of its
// category in its period.
func (c *Client) status(ctx context.Context, b models.Budget) (BudgetStatus, error) {
	start, end := c.period(b)
	last := end.AddDays(-1)
	expense := models.TransactionTypeExpense

	filter := TransactionFilter{
		StartDate:  &start,
		EndDate:    &last,
		Type:       &expense,
		CategoryID: &b.CategoryID,
	}

	transactions, err := c.backend.Transactions().Select(ctx, filter.Query())
	if err != nil {
		return BudgetStatus{}, err
	}

	name := c.printer.Sprintf(msgNoCategory)
	if b.Category != nil {
		name = b.Category.Name
	}

	total := spent(transactions)
	return BudgetStatus{
		Budget:       b,
		CategoryName: name,
		Start:        start,
		End:          end,
		Spent:        total,
		Remaining:    b.Amount.Sub(total),
		Exceeded:     total.GreaterThan(b.Amount),
	}, nil
}

// BudgetStatus returns the status of the budget in its period.
func (c *Client) BudgetStatus(ctx context.Context, budget models.Budget) (BudgetStatus, error) {
	status, err := call(ctx, c, func(ctx context.Context) (BudgetStatus, error) {
		return c.status(ctx, budget)
	})
	if err != nil {
		return BudgetStatus{}, c.fail("budget status", err)
	}

	return status, nil
}

// ListBudgets returns the status of all budgets, ordered by name.
func (c *Client) ListBudgets(ctx context.Context) ([]BudgetStatus, error) {
	q := backend.NewQuery().Join("category").OrderBy("name", false)

	// The status depends on the current month.
	parts := q.String() + "&today=" + c.today().String()

	statuses, err := read(ctx, c, cache.Budgets, parts, func(ctx context.Context) ([]BudgetStatus, error) {
		budgets, err := c.backend.Budgets().Select(ctx, q)
		if err != nil {
			return nil, err
		}

		statuses := make([]BudgetStatus, len(budgets))
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(statusConcurrency)
		for i, b := range budgets {
			g.Go(func() error {
				s, err := c.status(ctx, b)
				statuses[i] = s
				return err
			})
		}

		return statuses, g.Wait()
	})
	if err != nil {
		return nil, c.fail("list budgets", err)
	}

	return statuses, nil
}

// GetBudget returns the status of a single budget.
func (c *Client) GetBudget(ctx context.Context, id uuid.UUID) (BudgetStatus, error) {
	status, err := call(ctx, c, func(ctx context.Context) (BudgetStatus, error) {
		budget, err := c.backend.Budgets().Single(ctx, backend.ByID(id).Join("category"))
		if err != nil {
			return BudgetStatus{}, err
		}
		return c.status(ctx, budget)
	})
	if err != nil {
		return BudgetStatus{}, c.fail("get budget", err)
	}

	return status, nil
}

func (c *Client) CreateBudget(ctx context.Context, in BudgetInput) (BudgetStatus, error) {
	p, err := c.requireSession(ctx)
	if err != nil {
		return BudgetStatus{}, err
	}

	if err := in.Validate(); err != nil {
		return BudgetStatus{}, c.validation(err)
	}

	created, err := call(ctx, c, func(ctx context.Context) (models.Budget, error) {
		return c.backend.Budgets().Insert(ctx, models.Budget{
			UserID:      p.ID,
			WorkspaceID: in.WorkspaceID,
			Name:        in.Name,
			Amount:      in.Amount,
			CategoryID:  in.CategoryID,
			Description: in.Description,
			PeriodStart: in.PeriodStart,
			PeriodEnd:   in.PeriodEnd,
		})
	})
	if err != nil {
		return BudgetStatus{}, c.fail("create budget", err)
	}

	c.Invalidate(budgetKeys...)
	return c.GetBudget(ctx, created.ID)
}

func (c *Client) UpdateBudget(ctx context.Context, id uuid.UUID, in BudgetInput) (BudgetStatus, error) {
	if _, err := c.requireSession(ctx); err != nil {
		return BudgetStatus{}, err
	}

	if err := in.Validate(); err != nil {
		return BudgetStatus{}, c.validation(err)
	}

	patch := backend.Patch{
		"name":         strings.TrimSpace(in.Name),
		"amount":       in.Amount,
		"category_id":  in.CategoryID,
		"description":  nullable(in.Description),
		"period_start": nullable(in.PeriodStart),
		"period_end":   nullable(in.PeriodEnd),
	}

	updated, err := call(ctx, c, func(ctx context.Context) ([]models.Budget, error) {
		return c.backend.Budgets().Update(ctx, backend.ByID(id), patch)
	})
	if err != nil {
		return BudgetStatus{}, c.fail("update budget", err)
	}

	if len(updated) == 0 {
		return BudgetStatus{}, c.notFound("update budget", backend.TableBudgets, id)
	}

	c.Invalidate(budgetKeys...)
	return c.GetBudget(ctx, id)
}

func (c *Client) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	deleted, err := call(ctx, c, func(ctx context.Context) (int64, error) {
		return c.backend.Budgets().Delete(ctx, backend.ByID(id))
	})
	if err != nil {
		return c.fail("delete budget", err)
	}

	if deleted == 0 {
		return c.notFound("delete budget", backend.TableBudgets, id)
	}

	c.Invalidate(budgetKeys...)
	return nil
}
