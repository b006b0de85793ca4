package finance_test

import (
	"github.com/google/uuid"
	"github.com/walletwise/finance/pkg/finance"
	"github.com/walletwise/finance/pkg/models"
)

func (suite *TestSuiteStandard) TestListWalletsDefaultFirst() {
	suite.createTestWallet(suite.alice, finance.WalletInput{Name: "Bank"})
	suite.createTestWallet(suite.alice, finance.WalletInput{Name: "Savings", IsDefault: true})
	suite.createTestWallet(suite.alice, finance.WalletInput{Name: "Cash"})

	wallets, err := suite.client.ListWallets(suite.alice)
	suite.Require().Nil(err)

	names := []string{}
	for _, w := range wallets {
		names = append(names, w.Name)
	}
	suite.Assert().Equal([]string{"Savings", "Bank", "Cash"}, names)
}

func (suite *TestSuiteStandard) TestCreateWalletDefaults() {
	wallet := suite.createTestWallet(suite.alice, finance.WalletInput{Name: "Wallet", Balance: amount("12.34")})

	suite.Assert().Equal(principalID(suite.alice), wallet.UserID)
	suite.Assert().Equal(models.DefaultCurrency, wallet.Currency)
	suite.Assert().Equal(models.WalletTypeChecking, wallet.Type)
	suite.assertDecimal("12.34", wallet.Balance, "The balance on creation is the initial balance")

	wallet = suite.createTestWallet(suite.alice, finance.WalletInput{Name: "Travel", Currency: "eur", Type: models.WalletTypeCash})
	suite.Assert().Equal("EUR", wallet.Currency)
	suite.Assert().Equal(models.WalletTypeCash, wallet.Type)
}

func (suite *TestSuiteStandard) TestWalletValidation() {
	tests := []struct {
		name  string
		field string
		in    finance.WalletInput
	}{
		{"No name", "name", finance.WalletInput{Name: " "}},
		{"Unknown currency", "currency", finance.WalletInput{Name: "Wallet", Currency: "QQQ"}},
		{"Malformed currency", "currency", finance.WalletInput{Name: "Wallet", Currency: "Euro"}},
		{"Unknown type", "type", finance.WalletInput{Name: "Wallet", Type: "piggy_bank"}},
	}

	for _, tt := range tests {
		_, err := suite.client.CreateWallet(suite.alice, tt.in)
		suite.Assert().ErrorIs(err, finance.ErrValidation, tt.name)
	}
}

func (suite *TestSuiteStandard) TestUpdateWalletKeepsBalance() {
	wallet := suite.createTestWallet(suite.alice, finance.WalletInput{Name: "Bank", Balance: amount("100")})
	suite.createTestTransaction(suite.alice, finance.TransactionInput{WalletID: wallet.ID, Amount: amount("30"), IsPaid: true})

	updated, err := suite.client.UpdateWallet(suite.alice, wallet.ID, finance.WalletInput{Name: "Main bank", Balance: amount("1000000"), Color: ptr("#000000")})
	suite.Require().Nil(err)

	suite.Assert().Equal("Main bank", updated.Name)
	suite.Assert().Equal("#000000", *updated.Color)
	suite.assertDecimal("70", updated.Balance, "The balance must only change with transactions")
}

func (suite *TestSuiteStandard) TestSingleDefaultWallet() {
	first := suite.createTestWallet(suite.alice, finance.WalletInput{Name: "First", IsDefault: true})
	second := suite.createTestWallet(suite.alice, finance.WalletInput{Name: "Second", IsDefault: true})

	first, err := suite.client.GetWallet(suite.alice, first.ID)
	suite.Require().Nil(err)
	suite.Assert().False(first.IsDefault)

	second, err = suite.client.GetWallet(suite.alice, second.ID)
	suite.Require().Nil(err)
	suite.Assert().True(second.IsDefault)
}

func (suite *TestSuiteStandard) TestDeleteWallet() {
	wallet := suite.createTestWallet(suite.alice, finance.WalletInput{})
	used := suite.createTestWallet(suite.alice, finance.WalletInput{})
	suite.createTestTransaction(suite.alice, finance.TransactionInput{WalletID: used.ID, Amount: amount("1")})

	err := suite.client.DeleteWallet(suite.bob, wallet.ID)
	suite.Assert().ErrorIs(err, finance.ErrNotFound)

	err = suite.client.DeleteWallet(suite.alice, wallet.ID)
	suite.Assert().Nil(err)

	err = suite.client.DeleteWallet(suite.alice, used.ID)
	suite.Assert().ErrorIs(err, finance.ErrBackend, "Wallets with transactions cannot be deleted")

	err = suite.client.DeleteWallet(suite.alice, uuid.New())
	suite.Assert().ErrorIs(err, finance.ErrNotFound)
}
