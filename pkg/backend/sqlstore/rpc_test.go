package sqlstore_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/walletwise/finance/internal/types"
	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/models"
)

func (suite *TestSuiteStandard) TestMonthlySummary() {
	wallet := suite.createTestWallet(suite.alice, models.Wallet{})

	suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, Type: models.TransactionTypeIncome, Amount: decimal.NewFromInt(3000), Date: types.NewDate(2024, 2, 1)})
	suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, Type: models.TransactionTypeExpense, Amount: decimal.NewFromFloat(0.1), Date: types.NewDate(2024, 2, 3)})
	suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, Type: models.TransactionTypeExpense, Amount: decimal.NewFromFloat(0.2), Date: types.NewDate(2024, 2, 28)})
	suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(50), Date: types.NewDate(2024, 3, 1)})

	// Transfers are neither income nor expense
	other := suite.createTestWallet(suite.alice, models.Wallet{})
	suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, DestinationWalletID: &other.ID, Type: models.TransactionTypeTransfer, Amount: decimal.NewFromInt(999), Date: types.NewDate(2024, 3, 2)})

	// Other users' transactions are not included
	bobs := suite.createTestWallet(suite.bob, models.Wallet{})
	suite.createTestTransaction(suite.bob, models.Transaction{WalletID: bobs.ID, Type: models.TransactionTypeIncome, Amount: decimal.NewFromInt(1), Date: types.NewDate(2024, 3, 2)})

	summaries, err := suite.store.MonthlySummary(suite.alice, nil, nil)
	suite.Require().Nil(err)
	suite.Require().Len(summaries, 2)

	suite.Assert().Equal(2024, summaries[0].Year)
	suite.Assert().Equal(3, summaries[0].Month)
	suite.assertDecimal("0", summaries[0].TotalIncome)
	suite.assertDecimal("50", summaries[0].TotalExpense)
	suite.assertDecimal("-50", summaries[0].Balance)

	suite.Assert().Equal(2, summaries[1].Month)
	suite.assertDecimal("3000", summaries[1].TotalIncome)
	suite.assertDecimal("0.3", summaries[1].TotalExpense)
	suite.assertDecimal("2999.7", summaries[1].Balance)

	year, month := 2024, 2
	summaries, err = suite.store.MonthlySummary(suite.alice, &year, &month)
	suite.Require().Nil(err)
	suite.Require().Len(summaries, 1)
	suite.Assert().Equal(2, summaries[0].Month)

	month = 7
	summaries, err = suite.store.MonthlySummary(suite.alice, &year, &month)
	suite.Require().Nil(err)
	suite.Assert().Empty(summaries, "a month without transactions is an empty result, not an error")
}

func (suite *TestSuiteStandard) TestCategorySummary() {
	wallet := suite.createTestWallet(suite.alice, models.Wallet{})
	food := suite.createTestCategory(suite.alice, models.Category{Name: "Food"})
	fun := suite.createTestCategory(suite.alice, models.Category{Name: "Fun"})

	suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, CategoryID: &food.ID, Amount: decimal.NewFromInt(100), Date: types.NewDate(2024, 3, 1)})
	suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, CategoryID: &food.ID, Amount: decimal.NewFromInt(100), Date: types.NewDate(2024, 3, 2)})
	suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, CategoryID: &fun.ID, Amount: decimal.NewFromInt(50), Date: types.NewDate(2024, 3, 3)})
	suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, Amount: decimal.NewFromInt(50), Date: types.NewDate(2024, 3, 4)})
	suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, CategoryID: &fun.ID, Amount: decimal.NewFromInt(1000), Date: types.NewDate(2024, 4, 1)})

	start, end := types.NewDate(2024, 3, 1), types.NewDate(2024, 3, 31)
	summaries, err := suite.store.CategorySummary(suite.alice, backend.CategorySummaryParams{Start: &start, End: &end, Type: models.CategoryTypeExpense})
	suite.Require().Nil(err)
	suite.Require().Len(summaries, 3)

	suite.Assert().Equal("Food", summaries[0].CategoryName)
	suite.assertDecimal("200", summaries[0].TotalAmount)
	suite.assertDecimal("66.67", summaries[0].Percentage)

	// Equal totals are ordered by name, uncategorized first
	suite.Assert().Nil(summaries[1].CategoryID)
	suite.Assert().Equal("", summaries[1].CategoryName)
	suite.Assert().Equal("Fun", summaries[2].CategoryName)

	total := decimal.Zero
	for _, s := range summaries {
		total = total.Add(s.Percentage)
	}
	suite.Assert().True(total.Sub(decimal.NewFromInt(100)).Abs().LessThanOrEqual(decimal.RequireFromString("0.05")), "percentages sum to %s", total)

	summaries, err = suite.store.CategorySummary(suite.alice, backend.CategorySummaryParams{Start: &start, End: &end, Type: models.CategoryTypeIncome})
	suite.Require().Nil(err)
	suite.Assert().Empty(summaries)

	_, err = suite.store.CategorySummary(suite.alice, backend.CategorySummaryParams{Type: "transfer"})
	suite.Assert().ErrorIs(err, backend.ErrInvalidQuery)
}

func (suite *TestSuiteStandard) TestCashFlow() {
	wallet := suite.createTestWallet(suite.alice, models.Wallet{})

	suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, Type: models.TransactionTypeIncome, Amount: decimal.NewFromInt(10), Date: types.NewDate(2024, 3, 1)})
	suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(4), Date: types.NewDate(2024, 3, 1)})
	suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(7), Date: types.NewDate(2024, 3, 3)})
	suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(7), Date: types.NewDate(2024, 3, 9)})

	start, end := types.NewDate(2024, 3, 1), types.NewDate(2024, 3, 3)
	flows, err := suite.store.CashFlow(suite.alice, &start, &end)
	suite.Require().Nil(err)
	suite.Require().Len(flows, 2)

	suite.Assert().Equal("2024-03-01", flows[0].Date.String())
	suite.assertDecimal("10", flows[0].Income)
	suite.assertDecimal("4", flows[0].Expense)
	suite.assertDecimal("6", flows[0].Balance)

	suite.Assert().Equal("2024-03-03", flows[1].Date.String())
	suite.assertDecimal("-7", flows[1].Balance)
}

func (suite *TestSuiteStandard) TestNotifications() {
	_, err := suite.store.Notifications().Insert(suite.alice, models.Notification{UserID: id(suite.alice), Title: "Hi", Message: "Welcome"})
	suite.Require().Nil(err)
	second, err := suite.store.Notifications().Insert(suite.alice, models.Notification{UserID: id(suite.alice), Title: "Budget", Message: "Exceeded", Type: models.NotificationWarning})
	suite.Require().Nil(err)

	unread, err := suite.store.UnreadNotifications(suite.alice)
	suite.Require().Nil(err)
	suite.Assert().Len(unread, 2)

	err = suite.store.MarkNotificationRead(suite.alice, second.ID)
	suite.Require().Nil(err)

	unread, err = suite.store.UnreadNotifications(suite.alice)
	suite.Require().Nil(err)
	suite.Require().Len(unread, 1)
	suite.Assert().Equal("Hi", unread[0].Title)
	suite.Assert().Equal(models.NotificationInfo, unread[0].Type)

	// Bob cannot mark Alice's notification
	err = suite.store.MarkNotificationRead(suite.bob, unread[0].ID)
	suite.Assert().ErrorIs(err, backend.ErrNotFound)

	err = suite.store.MarkAllNotificationsRead(suite.alice)
	suite.Require().Nil(err)

	unread, err = suite.store.UnreadNotifications(suite.alice)
	suite.Require().Nil(err)
	suite.Assert().Empty(unread)

	err = suite.store.MarkAllNotificationsRead(context.Background())
	suite.Assert().ErrorIs(err, backend.ErrUnauthenticated)
}

func (suite *TestSuiteStandard) TestSubscriptions() {
	active, err := suite.store.HasActiveSubscription(suite.alice)
	suite.Require().Nil(err)
	suite.Assert().False(active)

	_, err = suite.store.CurrentPlan(suite.alice)
	suite.Assert().ErrorIs(err, backend.ErrNotFound)

	plans, err := suite.store.SubscriptionPlans().Select(suite.alice, backend.NewQuery().Eq("is_active", true).OrderBy("price", false))
	suite.Require().Nil(err)
	suite.Require().Len(plans, 3)
	premium := plans[1]

	// Users cannot subscribe themselves
	_, err = suite.store.Subscriptions().Insert(suite.alice, models.Subscription{UserID: id(suite.alice), PlanID: premium.ID, Status: models.SubscriptionActive})
	suite.Assert().ErrorIs(err, backend.ErrForbidden)

	expired := models.Subscription{UserID: id(suite.alice), PlanID: premium.ID, Status: models.SubscriptionActive, CurrentPeriodStart: now.AddDate(0, -2, 0), CurrentPeriodEnd: now.AddDate(0, -1, 0)}
	suite.Require().Nil(suite.store.DB().Create(&expired).Error)

	active, err = suite.store.HasActiveSubscription(suite.alice)
	suite.Require().Nil(err)
	suite.Assert().False(active, "a subscription past its period end is not active")

	current := models.Subscription{UserID: id(suite.alice), PlanID: premium.ID, Status: models.SubscriptionActive, CurrentPeriodStart: now.AddDate(0, 0, -5), CurrentPeriodEnd: now.Add(24 * time.Hour * 25)}
	suite.Require().Nil(suite.store.DB().Create(&current).Error)

	active, err = suite.store.HasActiveSubscription(suite.alice)
	suite.Require().Nil(err)
	suite.Assert().True(active)

	plan, err := suite.store.CurrentPlan(suite.alice)
	suite.Require().Nil(err)
	suite.Assert().Equal(current.ID, plan.SubscriptionID)
	suite.Assert().Equal("Premium", plan.PlanName)
	suite.assertDecimal("19.9", plan.PlanPrice)
	suite.Assert().Contains(plan.PlanFeatures, "workspaces")

	active, err = suite.store.HasActiveSubscription(suite.bob)
	suite.Require().Nil(err)
	suite.Assert().False(active)
}
