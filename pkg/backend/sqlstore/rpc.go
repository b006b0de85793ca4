package sqlstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/walletwise/finance/internal/types"
	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/models"
	"gorm.io/gorm"
)

// precision is the number of decimal places stored for amounts.
const precision = 8

type monthlyRow struct {
	Year         int
	Month        int
	TotalIncome  decimal.NullDecimal
	TotalExpense decimal.NullDecimal
}

type categoryRow struct {
	CategoryID    *uuid.UUID
	CategoryName  *string
	CategoryColor *string
	CategoryIcon  *string
	TotalAmount   decimal.NullDecimal
}

type cashFlowRow struct {
	Date    types.Date
	Income  decimal.NullDecimal
	Expense decimal.NullDecimal
}

type resourceRow struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// visibleTransactions selects the transactions visible to the principal
// under the alias "t".
func (s *Store) visibleTransactions(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("transactions AS t").
		Scopes(ownedPolicy.read("t", principal(ctx)))
}

func dateRange(db *gorm.DB, start, end *types.Date) *gorm.DB {
	if start != nil {
		db = db.Where("t.date >= ?", *start)
	}

	if end != nil {
		db = db.Where("t.date <= ?", *end)
	}

	return db
}

func sum(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal.Round(precision)
}

func (s *Store) MonthlySummary(ctx context.Context, year, month *int) ([]models.MonthlySummary, error) {
	var rows []monthlyRow

	query := s.visibleTransactions(ctx).Select(
		"CAST(strftime('%Y', t.date) AS INTEGER) AS year",
		"CAST(strftime('%m', t.date) AS INTEGER) AS month",
		"SUM(CASE WHEN t.type = 'income' THEN t.amount ELSE 0 END) AS total_income",
		"SUM(CASE WHEN t.type = 'expense' THEN t.amount ELSE 0 END) AS total_expense",
	)

	if year != nil {
		query = query.Where("CAST(strftime('%Y', t.date) AS INTEGER) = ?", *year)
	}

	if month != nil {
		query = query.Where("CAST(strftime('%m', t.date) AS INTEGER) = ?", *month)
	}

	err := query.Group("year, month").Order("year DESC, month DESC").Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	summaries := make([]models.MonthlySummary, 0, len(rows))
	for _, r := range rows {
		income, expense := sum(r.TotalIncome), sum(r.TotalExpense)
		summaries = append(summaries, models.MonthlySummary{
			Year:         r.Year,
			Month:        r.Month,
			TotalIncome:  income,
			TotalExpense: expense,
			Balance:      income.Sub(expense),
		})
	}

	return summaries, nil
}

func (s *Store) CategorySummary(ctx context.Context, params backend.CategorySummaryParams) ([]models.CategorySummary, error) {
	if !params.Type.Valid() {
		return nil, fmt.Errorf("%w: category summary for type %q", backend.ErrInvalidQuery, params.Type)
	}

	var rows []categoryRow

	query := s.visibleTransactions(ctx).
		Select(
			"t.category_id AS category_id",
			"c.name AS category_name",
			"c.color AS category_color",
			"c.icon AS category_icon",
			"SUM(t.amount) AS total_amount",
		).
		Joins("LEFT JOIN categories AS c ON c.id = t.category_id").
		Where("t.type = ?", params.Type)

	err := dateRange(query, params.Start, params.End).
		Group("t.category_id").
		Order("total_amount DESC, category_name").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	summaries := make([]models.CategorySummary, 0, len(rows))
	for _, r := range rows {
		name := ""
		if r.CategoryName != nil {
			name = *r.CategoryName
		}

		summaries = append(summaries, models.CategorySummary{
			CategoryID:    r.CategoryID,
			CategoryName:  name,
			CategoryColor: r.CategoryColor,
			CategoryIcon:  r.CategoryIcon,
			TotalAmount:   sum(r.TotalAmount),
		})
	}

	return models.WithPercentages(summaries), nil
}

func (s *Store) CashFlow(ctx context.Context, start, end *types.Date) ([]models.CashFlow, error) {
	var rows []cashFlowRow

	query := s.visibleTransactions(ctx).Select(
		"t.date AS date",
		"SUM(CASE WHEN t.type = 'income' THEN t.amount ELSE 0 END) AS income",
		"SUM(CASE WHEN t.type = 'expense' THEN t.amount ELSE 0 END) AS expense",
	)

	err := dateRange(query, start, end).Group("t.date").Order("t.date ASC").Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	flows := make([]models.CashFlow, 0, len(rows))
	for _, r := range rows {
		income, expense := sum(r.Income), sum(r.Expense)
		flows = append(flows, models.CashFlow{
			Date:    r.Date,
			Income:  income,
			Expense: expense,
			Balance: income.Sub(expense),
		})
	}

	return flows, nil
}

func (s *Store) WorkspaceResources(ctx context.Context, workspaceID uuid.UUID) ([]models.WorkspaceResource, error) {
	member, err := s.IsWorkspaceMember(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if !member {
		return nil, fmt.Errorf("%w: you are not a member of workspace %s", backend.ErrForbidden, workspaceID)
	}

	sources := []struct {
		resource string
		table    string
		name     string
	}{
		{"wallet", backend.TableWallets, "name"},
		{"category", backend.TableCategories, "name"},
		{"credit_card", backend.TableCreditCards, "name"},
		{"budget", backend.TableBudgets, "name"},
		{"transaction", backend.TableTransactions, "description"},
	}

	resources := []models.WorkspaceResource{}
	for _, src := range sources {
		var rows []resourceRow

		err := s.db.WithContext(ctx).
			Table(src.table).
			Select(fmt.Sprintf("id, %s AS name, created_at", src.name)).
			Where("workspace_id = ?", workspaceID).
			Scan(&rows).Error
		if err != nil {
			return nil, translate(err)
		}

		for _, r := range rows {
			resources = append(resources, models.WorkspaceResource{
				ResourceType: src.resource,
				ResourceID:   r.ID,
				ResourceName: r.Name,
				CreatedAt:    r.CreatedAt.UTC(),
			})
		}
	}

	sort.SliceStable(resources, func(i, j int) bool {
		return resources[i].CreatedAt.After(resources[j].CreatedAt)
	})

	return resources, nil
}

func (s *Store) UnreadNotifications(ctx context.Context) ([]models.Notification, error) {
	return s.notifications.Select(ctx, backend.NewQuery().Eq("is_read", false).OrderBy("created_at", true))
}

func (s *Store) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	rows, err := s.notifications.Update(ctx, backend.ByID(id), backend.Patch{"is_read": true})
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return fmt.Errorf("%w: notification %s", backend.ErrNotFound, id)
	}

	return nil
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context) error {
	_, err := s.notifications.Update(ctx, backend.NewQuery().Eq("is_read", false), backend.Patch{"is_read": true})
	return err
}

func (s *Store) activeSubscriptions(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Scopes(personalPolicy.read(backend.TableSubscriptions, principal(ctx))).
		Where("subscriptions.status = ? AND subscriptions.current_period_end > ?", models.SubscriptionActive, s.now().UTC())
}

func (s *Store) CurrentPlan(ctx context.Context) (models.CurrentPlan, error) {
	var sub models.Subscription
	err := s.activeSubscriptions(ctx).Preload("Plan").Order("subscriptions.current_period_end DESC").First(&sub).Error
	if err != nil {
		return models.CurrentPlan{}, translate(err)
	}

	plan := models.CurrentPlan{
		SubscriptionID:    sub.ID,
		PlanID:            sub.PlanID,
		Status:            sub.Status,
		CurrentPeriodEnd:  sub.CurrentPeriodEnd,
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}

	if sub.Plan != nil {
		plan.PlanName = sub.Plan.Name
		plan.PlanPrice = sub.Plan.Price
		plan.PlanInterval = sub.Plan.Interval
		plan.PlanFeatures = sub.Plan.Features
	}

	return plan, nil
}

func (s *Store) HasActiveSubscription(ctx context.Context) (bool, error) {
	var count int64
	err := s.activeSubscriptions(ctx).Count(&count).Error
	if err != nil {
		return false, translate(err)
	}

	return count > 0, nil
}

func (s *Store) IsWorkspaceMember(ctx context.Context, workspaceID uuid.UUID) (bool, error) {
	return s.HasWorkspaceRole(ctx, workspaceID)
}

func (s *Store) HasWorkspaceRole(ctx context.Context, workspaceID uuid.UUID, roles ...models.WorkspaceRole) (bool, error) {
	query := s.db.WithContext(ctx).
		Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, principal(ctx))

	if len(roles) > 0 {
		query = query.Where("role IN ?", roles)
	}

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return false, translate(err)
	}

	return count > 0, nil
}
