package v1_test

import (
	"net/http"

	"github.com/walletwise/finance/internal/test"
	"github.com/walletwise/finance/pkg/finance"
	"github.com/walletwise/finance/pkg/models"
)

func (suite *TestSuiteStandard) TestWallets() {
	wallet := suite.createTestWallet(suite.alice, finance.WalletInput{Name: " Savings ", Balance: amount("100"), Type: models.WalletTypeInvestment})
	suite.Assert().Equal("Savings", wallet.Name)
	suite.Assert().Equal(models.DefaultCurrency, wallet.Currency)
	suite.assertDecimal("100", wallet.Balance)

	r := suite.request(suite.alice, http.MethodGet, "/v1/wallets", nil)
	suite.Assert().Len(decode[[]models.Wallet](suite, r, http.StatusOK), 1)

	r = suite.request(suite.bob, http.MethodGet, "/v1/wallets", nil)
	suite.Assert().Len(decode[[]models.Wallet](suite, r, http.StatusOK), 0, "Wallets of other users must not be visible")

	r = suite.request(suite.alice, http.MethodPatch, "/v1/wallets/"+wallet.ID.String(), finance.WalletInput{Name: "Retirement", Type: models.WalletTypeInvestment, Balance: amount("5000")})
	updated := decode[models.Wallet](suite, r, http.StatusOK)
	suite.Assert().Equal("Retirement", updated.Name)
	suite.assertDecimal("100", updated.Balance, "Balance must not be updated directly")

	r = suite.request(suite.alice, http.MethodDelete, "/v1/wallets/"+wallet.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.alice, http.MethodGet, "/v1/wallets/"+wallet.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestWalletOptions() {
	wallet := suite.createTestWallet(suite.alice, finance.WalletInput{})

	tests := []struct {
		path  string
		allow string
	}{
		{"/v1/wallets", "OPTIONS, GET, POST"},
		{"/v1/wallets/" + wallet.ID.String(), "OPTIONS, GET, PATCH, DELETE"},
	}

	for _, tt := range tests {
		r := suite.request(suite.alice, http.MethodOptions, tt.path, nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
		suite.Assert().Equal(tt.allow, r.Header().Get("allow"), tt.path)
	}
}

func (suite *TestSuiteStandard) TestCategories() {
	r := suite.request(suite.alice, http.MethodPost, "/v1/categories", finance.CategoryInput{Name: "Salary", Type: models.CategoryTypeIncome})
	category := decode[models.Category](suite, r, http.StatusCreated)
	suite.Assert().False(category.IsSystem)

	r = suite.request(suite.alice, http.MethodGet, "/v1/categories?type=income", nil)
	categories := decode[[]models.Category](suite, r, http.StatusOK)
	suite.Require().NotEmpty(categories)
	for _, c := range categories {
		suite.Assert().Equal(models.CategoryTypeIncome, c.Type)
	}

	r = suite.request(suite.alice, http.MethodGet, "/v1/categories?type=refund", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var system models.Category
	for _, c := range decode[[]models.Category](suite, suite.request(suite.alice, http.MethodGet, "/v1/categories", nil), http.StatusOK) {
		if c.IsSystem {
			system = c
			break
		}
	}
	suite.Require().True(system.IsSystem, "No system category found")

	r = suite.request(suite.alice, http.MethodDelete, "/v1/categories/"+system.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestCreditCards() {
	wallet := suite.createTestWallet(suite.alice, finance.WalletInput{})

	r := suite.request(suite.alice, http.MethodPost, "/v1/credit-cards", finance.CreditCardInput{Name: "Visa", Limit: amount("1000"), ClosingDay: 3, DueDay: 10, WalletID: wallet.ID})
	card := decode[models.CreditCard](suite, r, http.StatusCreated)
	suite.assertDecimal("1000", card.AvailableCredit)

	r = suite.request(suite.alice, http.MethodPost, "/v1/credit-cards", finance.CreditCardInput{Name: "Visa", Limit: amount("1000"), ClosingDay: 32, DueDay: 10, WalletID: wallet.ID})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(suite.alice, http.MethodGet, "/v1/credit-cards/"+card.ID.String(), nil)
	suite.Assert().Equal("Visa", decode[models.CreditCard](suite, r, http.StatusOK).Name)

	r = suite.request(suite.alice, http.MethodDelete, "/v1/credit-cards/"+card.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}
