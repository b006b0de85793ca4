package v1_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/walletwise/finance/internal/test"
	"github.com/walletwise/finance/internal/types"
	"github.com/walletwise/finance/pkg/finance"
	"github.com/walletwise/finance/pkg/models"
)

func (suite *TestSuiteStandard) TestTransactions() {
	wallet := suite.createTestWallet(suite.alice, finance.WalletInput{Name: "Checking"})
	savings := suite.createTestWallet(suite.alice, finance.WalletInput{Name: "Savings"})

	salary := suite.createTestTransaction(suite.alice, finance.TransactionInput{WalletID: wallet.ID, Type: models.TransactionTypeIncome, Amount: amount("2000"), Description: "Salary", IsPaid: true})
	suite.createTestTransaction(suite.alice, finance.TransactionInput{WalletID: wallet.ID, Amount: amount("35.50"), Description: "Pizza", IsPaid: true})
	suite.createTestTransaction(suite.alice, finance.TransactionInput{WalletID: wallet.ID, Amount: amount("120"), Description: "Electricity"})
	suite.createTestTransaction(suite.alice, finance.TransactionInput{WalletID: wallet.ID, DestinationWalletID: &savings.ID, Type: models.TransactionTypeTransfer, Amount: amount("500"), IsPaid: true})

	r := suite.request(suite.alice, http.MethodGet, "/v1/wallets/"+wallet.ID.String(), nil)
	suite.assertDecimal("1464.5", decode[models.Wallet](suite, r, http.StatusOK).Balance)

	tests := []struct {
		query string
		count int
	}{
		{"", 4},
		{"?type=all", 4},
		{"?type=expense", 2},
		{"?isPaid=false", 1},
		{"?isPaid=true", 3},
		{"?search=PIZ", 1},
		{"?minAmount=100&maxAmount=600", 2},
		{fmt.Sprintf("?walletId=%s", savings.ID), 0},
		{fmt.Sprintf("?walletId=%s&type=transfer", wallet.ID), 1},
		{fmt.Sprintf("?startDate=%s", types.DateOf(time.Now()).AddDays(1)), 0},
	}

	for _, tt := range tests {
		r := suite.request(suite.alice, http.MethodGet, "/v1/transactions"+tt.query, nil)
		suite.Assert().Len(decode[[]models.Transaction](suite, r, http.StatusOK), tt.count, "Query %q", tt.query)
	}

	for _, query := range []string{"?walletId=nope", "?minAmount=ten", "?isPaid=maybe", "?startDate=yesterday", "?type=refund", "?minAmount=10&maxAmount=5"} {
		r := suite.request(suite.alice, http.MethodGet, "/v1/transactions"+query, nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	}

	r = suite.request(suite.alice, http.MethodGet, "/v1/transactions/recent?limit=2", nil)
	suite.Assert().Len(decode[[]models.Transaction](suite, r, http.StatusOK), 2)

	r = suite.request(suite.alice, http.MethodGet, "/v1/transactions/recent?limit=0", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(suite.alice, http.MethodGet, "/v1/transactions/"+salary.ID.String(), nil)
	fetched := decode[models.Transaction](suite, r, http.StatusOK)
	suite.Require().NotNil(fetched.Wallet, "Wallet must be embedded")
	suite.Assert().Equal("Checking", fetched.Wallet.Name)

	in := finance.TransactionInput{WalletID: wallet.ID, Type: models.TransactionTypeIncome, Amount: amount("2100"), Description: "Salary", Date: salary.Date, IsPaid: true}
	r = suite.request(suite.alice, http.MethodPatch, "/v1/transactions/"+salary.ID.String(), in)
	suite.assertDecimal("2100", decode[models.Transaction](suite, r, http.StatusOK).Amount)

	r = suite.request(suite.alice, http.MethodDelete, "/v1/transactions/"+salary.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.alice, http.MethodGet, "/v1/wallets/"+wallet.ID.String(), nil)
	suite.assertDecimal("-535.5", decode[models.Wallet](suite, r, http.StatusOK).Balance)
}

func (suite *TestSuiteStandard) TestBudgets() {
	wallet := suite.createTestWallet(suite.alice, finance.WalletInput{})

	r := suite.request(suite.alice, http.MethodPost, "/v1/categories", finance.CategoryInput{Name: "Food", Type: models.CategoryTypeExpense})
	food := decode[models.Category](suite, r, http.StatusCreated)

	suite.createTestTransaction(suite.alice, finance.TransactionInput{WalletID: wallet.ID, CategoryID: &food.ID, Amount: amount("80"), IsPaid: true})

	r = suite.request(suite.alice, http.MethodPost, "/v1/budgets", finance.BudgetInput{Name: "Food", Amount: amount("50"), CategoryID: food.ID})
	budget := decode[finance.BudgetStatus](suite, r, http.StatusCreated)
	suite.assertDecimal("80", budget.Spent)
	suite.assertDecimal("-30", budget.Remaining)
	suite.Assert().True(budget.Exceeded)
	suite.Assert().Equal("Food", budget.CategoryName)

	r = suite.request(suite.alice, http.MethodGet, "/v1/budgets", nil)
	suite.Assert().Len(decode[[]finance.BudgetStatus](suite, r, http.StatusOK), 1)

	r = suite.request(suite.alice, http.MethodPatch, "/v1/budgets/"+budget.ID.String(), finance.BudgetInput{Name: "Food", Amount: amount("100"), CategoryID: food.ID})
	suite.Assert().False(decode[finance.BudgetStatus](suite, r, http.StatusOK).Exceeded)

	r = suite.request(suite.alice, http.MethodPost, "/v1/budgets", finance.BudgetInput{Name: "Broken", Amount: amount("-1"), CategoryID: food.ID})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(suite.alice, http.MethodDelete, "/v1/budgets/"+budget.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestSummaries() {
	wallet := suite.createTestWallet(suite.alice, finance.WalletInput{})
	suite.createTestTransaction(suite.alice, finance.TransactionInput{WalletID: wallet.ID, Type: models.TransactionTypeIncome, Amount: amount("1000")})
	suite.createTestTransaction(suite.alice, finance.TransactionInput{WalletID: wallet.ID, Amount: amount("250")})

	today := types.DateOf(time.Now())

	r := suite.request(suite.alice, http.MethodGet, fmt.Sprintf("/v1/summaries/monthly?year=%d&month=%d", today.Time().Year(), today.Time().Month()), nil)
	months := decode[[]models.MonthlySummary](suite, r, http.StatusOK)
	suite.Require().Len(months, 1)
	suite.assertDecimal("1000", months[0].TotalIncome)
	suite.assertDecimal("250", months[0].TotalExpense)
	suite.assertDecimal("750", months[0].Balance)

	r = suite.request(suite.alice, http.MethodGet, "/v1/summaries/monthly?month=13", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(suite.alice, http.MethodGet, "/v1/summaries/categories", nil)
	categories := decode[[]models.CategorySummary](suite, r, http.StatusOK)
	suite.Require().Len(categories, 1)
	suite.Assert().Nil(categories[0].CategoryID)
	suite.assertDecimal("100", categories[0].Percentage)

	r = suite.request(suite.alice, http.MethodGet, fmt.Sprintf("/v1/summaries/cash-flow?startDate=%s&endDate=%s", today, today), nil)
	flow := decode[[]models.CashFlow](suite, r, http.StatusOK)
	suite.Require().Len(flow, 1)
	suite.assertDecimal("750", flow[0].Balance)

	r = suite.request(suite.alice, http.MethodGet, fmt.Sprintf("/v1/summaries/cash-flow?startDate=%s&endDate=%s", today, today.AddDays(-1)), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestOverview() {
	wallet := suite.createTestWallet(suite.alice, finance.WalletInput{Balance: amount("10")})
	suite.createTestTransaction(suite.alice, finance.TransactionInput{WalletID: wallet.ID, Amount: amount("4"), IsPaid: true})

	r := suite.request(suite.alice, http.MethodGet, "/v1/overview", nil)
	overview := decode[finance.Overview](suite, r, http.StatusOK)
	suite.Require().Len(overview.Wallets, 1)
	suite.assertDecimal("6", overview.Wallets[0].Balance)
	suite.Assert().Len(overview.RecentTransactions, 1)
	suite.Require().NotNil(overview.Month)
	suite.assertDecimal("4", overview.Month.TotalExpense)

	r = suite.request(suite.alice, http.MethodGet, "/v1/overview", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}
