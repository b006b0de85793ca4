package finance_test

import (
	"encoding/json"
	"testing"

	"github.com/walletwise/finance/internal/types"
	"github.com/walletwise/finance/pkg/finance"
	"github.com/walletwise/finance/pkg/models"
	"golang.org/x/text/language"
)

// createSummaryFixture creates transactions in February and March 2024.
func (suite *TestSuiteStandard) createSummaryFixture() (food, rent models.Category) {
	wallet := suite.createTestWallet(suite.alice, finance.WalletInput{})
	savings := suite.createTestWallet(suite.alice, finance.WalletInput{})
	food = suite.createTestCategory(suite.alice, finance.CategoryInput{Name: "Food", Color: ptr("#22C55E"), Icon: ptr("utensils")})
	rent = suite.createTestCategory(suite.alice, finance.CategoryInput{Name: "Rent"})
	salary := suite.createTestCategory(suite.alice, finance.CategoryInput{Name: "Salary", Type: models.CategoryTypeIncome})

	for _, in := range []finance.TransactionInput{
		{WalletID: wallet.ID, CategoryID: &salary.ID, Type: models.TransactionTypeIncome, Amount: amount("5000"), Date: types.NewDate(2024, 2, 1), IsPaid: true},
		{WalletID: wallet.ID, CategoryID: &rent.ID, Amount: amount("1500"), Date: types.NewDate(2024, 2, 5), IsPaid: true},
		{WalletID: wallet.ID, CategoryID: &food.ID, Amount: amount("320.40"), Date: types.NewDate(2024, 2, 5)},
		{WalletID: wallet.ID, CategoryID: &salary.ID, Type: models.TransactionTypeIncome, Amount: amount("5000"), Date: types.NewDate(2024, 3, 1), IsPaid: true},
		{WalletID: wallet.ID, CategoryID: &rent.ID, Amount: amount("1500"), Date: types.NewDate(2024, 3, 5), IsPaid: true},
		{WalletID: wallet.ID, CategoryID: &food.ID, Amount: amount("210.10"), Date: types.NewDate(2024, 3, 8)},
		{WalletID: wallet.ID, CategoryID: &food.ID, Amount: amount("89.90"), Date: types.NewDate(2024, 3, 8)},
		{WalletID: wallet.ID, Amount: amount("45"), Date: types.NewDate(2024, 3, 12)},
		{WalletID: wallet.ID, DestinationWalletID: &savings.ID, Type: models.TransactionTypeTransfer, Amount: amount("1000"), Date: types.NewDate(2024, 3, 15), IsPaid: true},
	} {
		suite.createTestTransaction(suite.alice, in)
	}

	return food, rent
}

func (suite *TestSuiteStandard) TestMonthlySummary() {
	suite.createSummaryFixture()

	summaries, err := suite.client.MonthlySummary(suite.alice, nil, nil)
	suite.Require().Nil(err)
	suite.Require().Len(summaries, 2)

	suite.Assert().Equal(2024, summaries[0].Year)
	suite.Assert().Equal(3, summaries[0].Month, "Newest month must be first")
	suite.assertDecimal("5000", summaries[0].TotalIncome)
	suite.assertDecimal("1845", summaries[0].TotalExpense, "Transfers are not expenses")
	suite.assertDecimal("3155", summaries[0].Balance)

	suite.Assert().Equal(2, summaries[1].Month)
	suite.assertDecimal("3179.6", summaries[1].Balance)

	summaries, err = suite.client.MonthlySummary(suite.alice, ptr(2024), ptr(2))
	suite.Require().Nil(err)
	suite.Require().Len(summaries, 1)
	suite.assertDecimal("1820.40", summaries[0].TotalExpense)

	summaries, err = suite.client.MonthlySummary(suite.bob, nil, nil)
	suite.Require().Nil(err)
	suite.Assert().Empty(summaries, "An empty result is not an error")
}

func (suite *TestSuiteStandard) TestMonthlySummaryInvalidMonth() {
	_, err := suite.client.MonthlySummary(suite.alice, ptr(2024), ptr(13))
	suite.Assert().ErrorIs(err, finance.ErrValidation)
}

func (suite *TestSuiteStandard) TestCategorySummary() {
	food, rent := suite.createSummaryFixture()
	start, end := types.NewDate(2024, 3, 1), types.NewDate(2024, 3, 31)

	summaries, err := suite.client.CategorySummary(suite.alice, &start, &end, models.CategoryTypeExpense)
	suite.Require().Nil(err)
	suite.Require().Len(summaries, 3)

	suite.Assert().Equal(rent.ID, *summaries[0].CategoryID)
	suite.assertDecimal("1500", summaries[0].TotalAmount)
	suite.assertDecimal("81.30", summaries[0].Percentage)

	suite.Assert().Equal(food.ID, *summaries[1].CategoryID)
	suite.Assert().Equal("Food", summaries[1].CategoryName)
	suite.Assert().Equal("#22C55E", *summaries[1].CategoryColor)
	suite.assertDecimal("300", summaries[1].TotalAmount)
	suite.assertDecimal("16.26", summaries[1].Percentage)

	suite.Assert().Nil(summaries[2].CategoryID, "Uncategorized transactions form their own group")
	suite.Assert().Equal("No category", summaries[2].CategoryName)
	suite.assertDecimal("45", summaries[2].TotalAmount)
	suite.assertDecimal("2.44", summaries[2].Percentage)
}

func (suite *TestSuiteStandard) TestCategorySummaryUncategorizedName() {
	wallet := suite.createTestWallet(suite.alice, finance.WalletInput{})
	zoo := suite.createTestCategory(suite.alice, finance.CategoryInput{Name: "Zoo"})

	// Equal totals are ordered by name, uncategorized first
	suite.createTestTransaction(suite.alice, finance.TransactionInput{WalletID: wallet.ID, CategoryID: &zoo.ID, Amount: amount("20"), Date: types.NewDate(2024, 3, 2)})
	suite.createTestTransaction(suite.alice, finance.TransactionInput{WalletID: wallet.ID, Amount: amount("20"), Date: types.NewDate(2024, 3, 3)})

	tests := []struct {
		name   string
		client *finance.Client
		label  string
	}{
		{"Database", suite.newClient(suite.store), "No category"},
		{"Database pt-BR", suite.newClient(suite.store, finance.WithLocale(language.BrazilianPortuguese)), "Sem Categoria"},
		{"Fallback", suite.newClient(withoutFunctions{suite.store}), "No category"},
		{"Fallback pt-BR", suite.newClient(withoutFunctions{suite.store}, finance.WithLocale(language.BrazilianPortuguese)), "Sem Categoria"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			summaries, err := tt.client.CategorySummary(suite.alice, nil, nil, models.CategoryTypeExpense)
			suite.Require().Nil(err)
			suite.Require().Len(summaries, 2)

			suite.Assert().Nil(summaries[0].CategoryID)
			suite.Assert().Equal(tt.label, summaries[0].CategoryName)
			suite.Assert().Equal(zoo.ID, *summaries[1].CategoryID)
			suite.Assert().Equal("Zoo", summaries[1].CategoryName)
		})
	}
}

func (suite *TestSuiteStandard) TestCategorySummaryValidation() {
	_, err := suite.client.CategorySummary(suite.alice, nil, nil, "transfer")
	suite.Assert().ErrorIs(err, finance.ErrValidation)

	start, end := types.NewDate(2024, 3, 2), types.NewDate(2024, 3, 1)
	_, err = suite.client.CategorySummary(suite.alice, &start, &end, models.CategoryTypeExpense)
	suite.Assert().ErrorIs(err, finance.ErrValidation)
}

func (suite *TestSuiteStandard) TestCashFlow() {
	suite.createSummaryFixture()
	start, end := types.NewDate(2024, 3, 1), types.NewDate(2024, 3, 8)

	flows, err := suite.client.CashFlow(suite.alice, &start, &end)
	suite.Require().Nil(err)
	suite.Require().Len(flows, 3)

	suite.Assert().Equal("2024-03-01", flows[0].Date.String())
	suite.assertDecimal("5000", flows[0].Balance)
	suite.Assert().Equal("2024-03-05", flows[1].Date.String())
	suite.assertDecimal("-1500", flows[1].Balance)
	suite.Assert().Equal("2024-03-08", flows[2].Date.String())
	suite.assertDecimal("300", flows[2].Expense)
}

// The reducers must produce the same rows as the backend functions.
func (suite *TestSuiteStandard) TestAggregationFallback() {
	suite.createSummaryFixture()
	fallback := suite.newClient(withoutFunctions{suite.store})

	start, end := types.NewDate(2024, 2, 1), types.NewDate(2024, 3, 31)

	tests := []struct {
		name string
		fn   func(c *finance.Client) (any, error)
	}{
		{"Monthly summary", func(c *finance.Client) (any, error) { return c.MonthlySummary(suite.alice, nil, nil) }},
		{"Monthly summary of a year", func(c *finance.Client) (any, error) { return c.MonthlySummary(suite.alice, ptr(2024), nil) }},
		{"Monthly summary of a month", func(c *finance.Client) (any, error) { return c.MonthlySummary(suite.alice, ptr(2024), ptr(3)) }},
		{"Monthly summary of a month in all years", func(c *finance.Client) (any, error) { return c.MonthlySummary(suite.alice, nil, ptr(2)) }},
		{"Expenses by category", func(c *finance.Client) (any, error) {
			return c.CategorySummary(suite.alice, &start, &end, models.CategoryTypeExpense)
		}},
		{"Income by category", func(c *finance.Client) (any, error) {
			return c.CategorySummary(suite.alice, nil, nil, models.CategoryTypeIncome)
		}},
		{"Cash flow", func(c *finance.Client) (any, error) { return c.CashFlow(suite.alice, &start, &end) }},
		{"Cash flow without range", func(c *finance.Client) (any, error) { return c.CashFlow(suite.alice, nil, nil) }},
		{"Empty", func(c *finance.Client) (any, error) { return c.CashFlow(suite.bob, nil, nil) }},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			expected, err := tt.fn(suite.client)
			suite.Require().Nil(err)

			actual, err := tt.fn(fallback)
			suite.Require().Nil(err)

			e, _ := json.Marshal(expected)
			a, _ := json.Marshal(actual)
			suite.Assert().JSONEq(string(e), string(a))
		})
	}
}
