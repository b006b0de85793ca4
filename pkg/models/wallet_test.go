package models_test

import (
	"github.com/google/uuid"
	"github.com/walletwise/finance/pkg/models"
)

func (suite *TestSuiteStandard) TestWalletDefaults() {
	wallet := suite.createTestWallet(models.Wallet{
		UserID:   uuid.New(),
		Name:     "  Cash  ",
		Currency: " usd",
	})

	suite.Assert().Equal("Cash", wallet.Name)
	suite.Assert().Equal("USD", wallet.Currency)
	suite.Assert().Equal(models.WalletTypeChecking, wallet.Type)

	wallet = suite.createTestWallet(models.Wallet{UserID: uuid.New()})
	suite.Assert().Equal(models.DefaultCurrency, wallet.Currency)
}

func (suite *TestSuiteStandard) TestWalletInvalidTypeOnRead() {
	wallet := suite.createTestWallet(models.Wallet{UserID: uuid.New()})

	err := suite.db.Exec("UPDATE wallets SET type = 'piggy_bank' WHERE id = ?", wallet.ID).Error
	suite.Require().Nil(err)

	var found models.Wallet
	err = suite.db.First(&found, wallet.ID).Error
	suite.Assert().ErrorIs(err, models.ErrInvalidRow)
}
