// Package backend defines the contract of the relational backend the finance
// client talks to: table scoped CRUD, a session principal and aggregation
// functions. Authorization is enforced by the backend, not by its callers.
package backend

import (
	"context"

	"github.com/google/uuid"
	"github.com/walletwise/finance/internal/types"
	"github.com/walletwise/finance/pkg/models"
)

// Table names
const (
	TableWallets           = "wallets"
	TableCategories        = "categories"
	TableCreditCards       = "credit_cards"
	TableBudgets           = "budgets"
	TableTransactions      = "transactions"
	TableWorkspaces        = "workspaces"
	TableWorkspaceMembers  = "workspace_members"
	TableNotifications     = "notifications"
	TableSubscriptions     = "subscriptions"
	TableSubscriptionPlans = "subscription_plans"
)

// Table is a table scoped CRUD interface. Every call is executed on behalf of
// the principal carried by the context.
type Table[T any] interface {
	// Select returns all visible rows matching the query.
	Select(ctx context.Context, q Query) ([]T, error)

	// Single returns the only visible row matching the query. It returns
	// ErrNotFound if no row matches.
	Single(ctx context.Context, q Query) (T, error)

	// Insert stores the row and returns it as stored.
	Insert(ctx context.Context, row T) (T, error)

	// Update applies the patch to all rows matching the query and returns
	// them as stored.
	Update(ctx context.Context, q Query, patch Patch) ([]T, error)

	// Delete deletes all rows matching the query and returns the number
	// of deleted rows.
	Delete(ctx context.Context, q Query) (int64, error)
}

// CategorySummaryParams are the arguments of the category summary function.
type CategorySummaryParams struct {
	Start *types.Date
	End   *types.Date
	Type  models.CategoryType
}

// Backend is the relational backend.
type Backend interface {
	// Session returns the principal of the current session or nil
	// if there is none.
	Session(ctx context.Context) (*Principal, error)

	Wallets() Table[models.Wallet]
	Categories() Table[models.Category]
	CreditCards() Table[models.CreditCard]
	Budgets() Table[models.Budget]
	Transactions() Table[models.Transaction]
	Workspaces() Table[models.Workspace]
	WorkspaceMembers() Table[models.WorkspaceMember]
	Notifications() Table[models.Notification]
	Subscriptions() Table[models.Subscription]
	SubscriptionPlans() Table[models.SubscriptionPlan]

	// MonthlySummary returns income and expense per month. With a nil year
	// or month, all months are returned.
	MonthlySummary(ctx context.Context, year, month *int) ([]models.MonthlySummary, error)

	// CategorySummary returns the totals per category of one type in the
	// inclusive date range.
	CategorySummary(ctx context.Context, params CategorySummaryParams) ([]models.CategorySummary, error)

	// CashFlow returns income and expense per day in the inclusive date range.
	CashFlow(ctx context.Context, start, end *types.Date) ([]models.CashFlow, error)

	// WorkspaceResources lists the wallets, categories, budgets, credit cards
	// and transactions of a workspace.
	WorkspaceResources(ctx context.Context, workspaceID uuid.UUID) ([]models.WorkspaceResource, error)

	// UnreadNotifications returns the unread notifications of the principal, newest first.
	UnreadNotifications(ctx context.Context) ([]models.Notification, error)

	// MarkNotificationRead marks a single notification as read.
	MarkNotificationRead(ctx context.Context, id uuid.UUID) error

	// MarkAllNotificationsRead marks all notifications of the principal as read.
	MarkAllNotificationsRead(ctx context.Context) error

	// CurrentPlan returns the plan of the active subscription of the principal.
	// It returns ErrNotFound if there is no active subscription.
	CurrentPlan(ctx context.Context) (models.CurrentPlan, error)

	HasActiveSubscription(ctx context.Context) (bool, error)

	IsWorkspaceMember(ctx context.Context, workspaceID uuid.UUID) (bool, error)

	// HasWorkspaceRole reports if the principal has one of the roles in the workspace.
	HasWorkspaceRole(ctx context.Context, workspaceID uuid.UUID, roles ...models.WorkspaceRole) (bool, error)
}
