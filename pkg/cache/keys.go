package cache

// Key identifies a cached collection. Mutations invalidate collections
// by key, never single entries.
type Key string

const (
	Wallets           Key = "wallets"
	Categories        Key = "categories"
	CreditCards       Key = "credit_cards"
	Budgets           Key = "budgets"
	Transactions      Key = "transactions"
	MonthlySummary    Key = "monthly_summary"
	CategorySummary   Key = "category_summary"
	CashFlow          Key = "cash_flow"
	Workspaces        Key = "workspaces"
	WorkspaceMembers  Key = "workspace_members"
	Notifications     Key = "notifications"
	Subscriptions     Key = "subscriptions"
	SubscriptionPlans Key = "subscription_plans"
)

// Keys returns all keys.
func Keys() []Key {
	return []Key{
		Wallets,
		Categories,
		CreditCards,
		Budgets,
		Transactions,
		MonthlySummary,
		CategorySummary,
		CashFlow,
		Workspaces,
		WorkspaceMembers,
		Notifications,
		Subscriptions,
		SubscriptionPlans,
	}
}

// Aggregates are the keys of all views derived from transactions.
var Aggregates = []Key{Budgets, MonthlySummary, CategorySummary, CashFlow}
