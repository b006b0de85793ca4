package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/walletwise/finance/internal/types"
)

// MonthlySummary is the income and expense of one calendar month.
type MonthlySummary struct {
	Month        int             `json:"month" example:"3"`
	Year         int             `json:"year" example:"2024"`
	TotalIncome  decimal.Decimal `json:"total_income" example:"5400"`
	TotalExpense decimal.Decimal `json:"total_expense" example:"3120.55"`
	Balance      decimal.Decimal `json:"balance" example:"2279.45"`
}

// CategorySummary is the total of one category in a period and its share of
// the total of all categories of the same type.
type CategorySummary struct {
	CategoryID    *uuid.UUID      `json:"category_id"`
	CategoryName  string          `json:"category_name" example:"Groceries"`
	CategoryColor *string         `json:"category_color" example:"#22C55E"`
	CategoryIcon  *string         `json:"category_icon" example:"shopping-cart"`
	TotalAmount   decimal.Decimal `json:"total_amount" example:"640.20"`
	Percentage    decimal.Decimal `json:"percentage" example:"20.52"`
}

// CashFlow is the income and expense of a single day.
type CashFlow struct {
	Date    types.Date      `json:"date" example:"2024-03-15"`
	Income  decimal.Decimal `json:"income" example:"0"`
	Expense decimal.Decimal `json:"expense" example:"152.37"`
	Balance decimal.Decimal `json:"balance" example:"-152.37"`
}

// WorkspaceResource is a resource that belongs to a workspace.
type WorkspaceResource struct {
	ResourceType string    `json:"resource_type" example:"wallet"`
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name" example:"Shared account"`
	CreatedAt    time.Time `json:"created_at"`
}

// CurrentPlan is the plan of the active subscription of a user.
type CurrentPlan struct {
	SubscriptionID    uuid.UUID          `json:"subscription_id"`
	PlanID            uuid.UUID          `json:"plan_id"`
	PlanName          string             `json:"plan_name" example:"Premium"`
	PlanPrice         decimal.Decimal    `json:"plan_price" example:"19.90"`
	PlanInterval      PlanInterval       `json:"plan_interval" example:"monthly"`
	PlanFeatures      Features           `json:"plan_features"`
	Status            SubscriptionStatus `json:"status" example:"active"`
	CurrentPeriodEnd  time.Time          `json:"current_period_end"`
	CancelAtPeriodEnd bool               `json:"cancel_at_period_end"`
}

// WithPercentages sets the share of every category in the total of all
// categories, rounded to two decimal places. If the total is zero, all
// shares are zero.
func WithPercentages(summaries []CategorySummary) []CategorySummary {
	total := decimal.Zero
	for _, s := range summaries {
		total = total.Add(s.TotalAmount)
	}

	hundred := decimal.NewFromInt(100)
	for i := range summaries {
		if total.IsZero() {
			summaries[i].Percentage = decimal.Zero
			continue
		}
		summaries[i].Percentage = summaries[i].TotalAmount.Div(total).Mul(hundred).Round(2)
	}

	return summaries
}
