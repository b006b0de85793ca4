package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/walletwise/finance/internal/types"
	"github.com/walletwise/finance/pkg/models"
)

func (suite *TestSuiteStandard) TestTransactionDateStoredAsDay() {
	owner := uuid.New()
	wallet := suite.createTestWallet(models.Wallet{UserID: owner})

	transaction := suite.createTestTransaction(models.Transaction{
		UserID:   owner,
		WalletID: wallet.ID,
		Type:     models.TransactionTypeExpense,
		Amount:   decimal.NewFromFloat(12.5),
		Date:     types.NewDate(2024, 3, 15),
	})

	var raw string
	err := suite.db.Raw("SELECT CAST(date AS TEXT) FROM transactions WHERE id = ?", transaction.ID).Row().Scan(&raw)
	suite.Require().Nil(err)
	suite.Assert().Equal("2024-03-15", raw)

	var found models.Transaction
	err = suite.db.First(&found, transaction.ID).Error
	suite.Require().Nil(err)
	suite.Assert().Equal("2024-03-15", found.Date.String())
	suite.Assert().True(decimal.NewFromFloat(12.5).Equal(found.Amount))
}

func (suite *TestSuiteStandard) TestTransactionWalletsDifferent() {
	owner := uuid.New()
	wallet := suite.createTestWallet(models.Wallet{UserID: owner})

	err := suite.db.Create(&models.Transaction{
		UserID:              owner,
		WalletID:            wallet.ID,
		DestinationWalletID: &wallet.ID,
		Type:                models.TransactionTypeTransfer,
		Amount:              decimal.NewFromFloat(10),
		Date:                types.NewDate(2024, 3, 15),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrWalletsNotDifferent)
}

func (suite *TestSuiteStandard) TestTransactionMissingWallet() {
	err := suite.db.Create(&models.Transaction{
		UserID:   uuid.New(),
		WalletID: uuid.New(),
		Type:     models.TransactionTypeIncome,
		Amount:   decimal.NewFromFloat(10),
		Date:     types.NewDate(2024, 3, 15),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrReferenceMissing)
}

func (suite *TestSuiteStandard) TestWalletStillReferenced() {
	owner := uuid.New()
	wallet := suite.createTestWallet(models.Wallet{UserID: owner})
	suite.createTestTransaction(models.Transaction{
		UserID:   owner,
		WalletID: wallet.ID,
		Type:     models.TransactionTypeIncome,
		Amount:   decimal.NewFromFloat(10),
		Date:     types.NewDate(2024, 3, 15),
	})

	err := suite.db.Delete(&wallet).Error
	suite.Assert().ErrorIs(err, models.ErrStillReferenced)
}

func (suite *TestSuiteStandard) TestTransactionSignedAmount() {
	source := uuid.New()
	destination := uuid.New()
	amount := decimal.NewFromFloat(25)

	tests := []struct {
		name        string
		transaction models.Transaction
		source      decimal.Decimal
		destination decimal.Decimal
	}{
		{"Income", models.Transaction{Type: models.TransactionTypeIncome, IsPaid: true, WalletID: source, Amount: amount}, amount, decimal.Zero},
		{"Expense", models.Transaction{Type: models.TransactionTypeExpense, IsPaid: true, WalletID: source, Amount: amount}, amount.Neg(), decimal.Zero},
		{"Transfer", models.Transaction{Type: models.TransactionTypeTransfer, IsPaid: true, WalletID: source, DestinationWalletID: &destination, Amount: amount}, amount.Neg(), amount},
		{"Unpaid", models.Transaction{Type: models.TransactionTypeExpense, IsPaid: false, WalletID: source, Amount: amount}, decimal.Zero, decimal.Zero},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.source.Equal(tt.transaction.SignedAmount(source)), "source: %s", tt.transaction.SignedAmount(source))
			assert.True(t, tt.destination.Equal(tt.transaction.SignedAmount(destination)), "destination: %s", tt.transaction.SignedAmount(destination))
		})
	}
}
