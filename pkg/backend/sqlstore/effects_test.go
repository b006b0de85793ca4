package sqlstore_test

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/walletwise/finance/internal/types"
	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/models"
)

func (suite *TestSuiteStandard) TestBalanceIncomeAndExpense() {
	wallet := suite.createTestWallet(suite.alice, models.Wallet{Balance: decimal.NewFromInt(100)})

	suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, Type: models.TransactionTypeIncome, Amount: decimal.NewFromFloat(0.1), IsPaid: true})
	suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, Type: models.TransactionTypeIncome, Amount: decimal.NewFromFloat(0.2), IsPaid: true})
	suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, Type: models.TransactionTypeExpense, Amount: decimal.NewFromFloat(30.5), IsPaid: true})

	// Unpaid transactions do not change the balance
	suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(1000), IsPaid: false})

	suite.assertDecimal("69.8", suite.balance(suite.alice, wallet.ID))
}

func (suite *TestSuiteStandard) TestBalanceTransfer() {
	source := suite.createTestWallet(suite.alice, models.Wallet{Balance: decimal.NewFromInt(500)})
	destination := suite.createTestWallet(suite.alice, models.Wallet{})

	transfer := suite.createTestTransaction(suite.alice, models.Transaction{
		WalletID:            source.ID,
		DestinationWalletID: &destination.ID,
		Type:                models.TransactionTypeTransfer,
		Amount:              decimal.NewFromInt(200),
		IsPaid:              true,
	})

	suite.assertDecimal("300", suite.balance(suite.alice, source.ID))
	suite.assertDecimal("200", suite.balance(suite.alice, destination.ID))

	deleted, err := suite.store.Transactions().Delete(suite.alice, backend.ByID(transfer.ID))
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(1), deleted)

	suite.assertDecimal("500", suite.balance(suite.alice, source.ID))
	suite.assertDecimal("0", suite.balance(suite.alice, destination.ID))
}

func (suite *TestSuiteStandard) TestBalanceUpdateRevertsOldEffect() {
	first := suite.createTestWallet(suite.alice, models.Wallet{})
	second := suite.createTestWallet(suite.alice, models.Wallet{})

	transaction := suite.createTestTransaction(suite.alice, models.Transaction{WalletID: first.ID, Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(40), IsPaid: false})
	suite.assertDecimal("0", suite.balance(suite.alice, first.ID))

	tests := []struct {
		name   string
		patch  backend.Patch
		first  string
		second string
	}{
		{"Mark as paid", backend.Patch{"is_paid": true}, "-40", "0"},
		{"Change amount", backend.Patch{"amount": decimal.NewFromInt(25)}, "-25", "0"},
		{"Change type", backend.Patch{"type": models.TransactionTypeIncome}, "25", "0"},
		{"Move to other wallet", backend.Patch{"wallet_id": second.ID}, "0", "25"},
		{"Turn into transfer", backend.Patch{"type": models.TransactionTypeTransfer, "destination_wallet_id": first.ID}, "25", "-25"},
		{"Mark as unpaid", backend.Patch{"is_paid": false}, "0", "0"},
	}

	for _, tt := range tests {
		_, err := suite.store.Transactions().Update(suite.alice, backend.ByID(transaction.ID), tt.patch)
		suite.Require().Nil(err, tt.name)
		suite.assertDecimal(tt.first, suite.balance(suite.alice, first.ID), tt.name)
		suite.assertDecimal(tt.second, suite.balance(suite.alice, second.ID), tt.name)
	}
}

func (suite *TestSuiteStandard) TestBalanceFailedUpdateRollsBack() {
	wallet := suite.createTestWallet(suite.alice, models.Wallet{})
	transaction := suite.createTestTransaction(suite.alice, models.Transaction{WalletID: wallet.ID, Type: models.TransactionTypeIncome, Amount: decimal.NewFromInt(10), IsPaid: true})

	// A transfer needs a destination
	_, err := suite.store.Transactions().Update(suite.alice, backend.ByID(transaction.ID), backend.Patch{"type": models.TransactionTypeTransfer})
	suite.Assert().ErrorIs(err, backend.ErrConstraint)

	suite.assertDecimal("10", suite.balance(suite.alice, wallet.ID))
	found, err := suite.store.Transactions().Single(suite.alice, backend.ByID(transaction.ID))
	suite.Require().Nil(err)
	suite.Assert().Equal(models.TransactionTypeIncome, found.Type)
}

func (suite *TestSuiteStandard) TestSingleDefaultWallet() {
	first := suite.createTestWallet(suite.alice, models.Wallet{IsDefault: true})
	second := suite.createTestWallet(suite.alice, models.Wallet{IsDefault: true})
	bobs := suite.createTestWallet(suite.bob, models.Wallet{IsDefault: true})

	defaults, err := suite.store.Wallets().Select(suite.alice, backend.NewQuery().Eq("is_default", true))
	suite.Require().Nil(err)
	suite.Require().Len(defaults, 1)
	suite.Assert().Equal(second.ID, defaults[0].ID)

	_, err = suite.store.Wallets().Update(suite.alice, backend.ByID(first.ID), backend.Patch{"is_default": true})
	suite.Require().Nil(err)

	defaults, err = suite.store.Wallets().Select(suite.alice, backend.NewQuery().Eq("is_default", true))
	suite.Require().Nil(err)
	suite.Require().Len(defaults, 1)
	suite.Assert().Equal(first.ID, defaults[0].ID)

	// Other users are not affected
	bobsDefault, err := suite.store.Wallets().Single(suite.bob, backend.ByID(bobs.ID))
	suite.Require().Nil(err)
	suite.Assert().True(bobsDefault.IsDefault)
}

func (suite *TestSuiteStandard) TestWorkspaceMembership() {
	owner := id(suite.alice)
	workspace, err := suite.store.Workspaces().Insert(suite.alice, models.Workspace{OwnerID: owner, Name: "Family"})
	suite.Require().Nil(err)

	isOwner, err := suite.store.HasWorkspaceRole(suite.alice, workspace.ID, models.RoleOwner)
	suite.Require().Nil(err)
	suite.Assert().True(isOwner, "the creator must become the owner")

	shared := suite.createTestWallet(suite.alice, models.Wallet{Name: "Shared", WorkspaceID: &workspace.ID})

	// Bob is not a member yet
	wallets, err := suite.store.Wallets().Select(suite.bob, backend.NewQuery())
	suite.Require().Nil(err)
	suite.Assert().Len(wallets, 0)

	_, err = suite.store.WorkspaceMembers().Insert(suite.alice, models.WorkspaceMember{WorkspaceID: workspace.ID, UserID: id(suite.bob), Role: models.RoleViewer})
	suite.Require().Nil(err)

	// As viewer, Bob can read but not write
	wallets, err = suite.store.Wallets().Select(suite.bob, backend.NewQuery())
	suite.Require().Nil(err)
	suite.Require().Len(wallets, 1)
	suite.Assert().Equal(shared.ID, wallets[0].ID)

	_, err = suite.store.Wallets().Update(suite.bob, backend.ByID(shared.ID), backend.Patch{"name": "Bob's"})
	suite.Assert().ErrorIs(err, backend.ErrForbidden)

	_, err = suite.store.Wallets().Insert(suite.bob, models.Wallet{UserID: id(suite.bob), Name: "Sneaky", WorkspaceID: &workspace.ID})
	suite.Assert().ErrorIs(err, backend.ErrForbidden)

	// Viewers cannot add members
	_, err = suite.store.WorkspaceMembers().Insert(suite.bob, models.WorkspaceMember{WorkspaceID: workspace.ID, UserID: uuid.New(), Role: models.RoleMember})
	suite.Assert().ErrorIs(err, backend.ErrForbidden)

	// Nobody promotes themselves
	_, err = suite.store.WorkspaceMembers().Update(suite.bob, backend.NewQuery().Eq("workspace_id", workspace.ID).Eq("user_id", id(suite.bob)), backend.Patch{"role": models.RoleAdmin})
	suite.Assert().ErrorIs(err, backend.ErrForbidden)

	// Promoted to member, Bob can write
	_, err = suite.store.WorkspaceMembers().Update(suite.alice, backend.NewQuery().Eq("workspace_id", workspace.ID).Eq("user_id", id(suite.bob)), backend.Patch{"role": models.RoleMember})
	suite.Require().Nil(err)

	_, err = suite.store.Wallets().Update(suite.bob, backend.ByID(shared.ID), backend.Patch{"name": "Ours"})
	suite.Assert().Nil(err)

	// Adding Bob twice fails
	_, err = suite.store.WorkspaceMembers().Insert(suite.alice, models.WorkspaceMember{WorkspaceID: workspace.ID, UserID: id(suite.bob), Role: models.RoleViewer})
	suite.Assert().ErrorIs(err, backend.ErrConstraint)

	// The only owner cannot leave
	_, err = suite.store.WorkspaceMembers().Delete(suite.alice, backend.NewQuery().Eq("workspace_id", workspace.ID).Eq("user_id", owner))
	suite.Assert().ErrorIs(err, backend.ErrConstraint)

	resources, err := suite.store.WorkspaceResources(suite.bob, workspace.ID)
	suite.Require().Nil(err)
	suite.Require().Len(resources, 1)
	suite.Assert().Equal("wallet", resources[0].ResourceType)
	suite.Assert().Equal("Ours", resources[0].ResourceName)

	_, err = suite.store.WorkspaceResources(backendWithNewPrincipal(), workspace.ID)
	suite.Assert().ErrorIs(err, backend.ErrForbidden)
}

func (suite *TestSuiteStandard) TestViewerCannotChangeSharedBalance() {
	workspace, err := suite.store.Workspaces().Insert(suite.alice, models.Workspace{OwnerID: id(suite.alice), Name: "Family"})
	suite.Require().Nil(err)

	shared := suite.createTestWallet(suite.alice, models.Wallet{Name: "Shared", Balance: decimal.NewFromInt(1000), WorkspaceID: &workspace.ID})
	bobs := suite.createTestWallet(suite.bob, models.Wallet{Balance: decimal.NewFromInt(50)})

	_, err = suite.store.WorkspaceMembers().Insert(suite.alice, models.WorkspaceMember{WorkspaceID: workspace.ID, UserID: id(suite.bob), Role: models.RoleViewer})
	suite.Require().Nil(err)

	_, err = suite.store.Transactions().Insert(suite.bob, models.Transaction{UserID: id(suite.bob), WalletID: shared.ID, Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(900), IsPaid: true, Date: types.DateOf(now)})
	suite.Assert().ErrorIs(err, backend.ErrForbidden, "a viewer must not spend from a shared wallet")

	_, err = suite.store.Transactions().Insert(suite.bob, models.Transaction{UserID: id(suite.bob), WalletID: bobs.ID, DestinationWalletID: &shared.ID, Type: models.TransactionTypeTransfer, Amount: decimal.NewFromInt(10), IsPaid: true, Date: types.DateOf(now)})
	suite.Assert().ErrorIs(err, backend.ErrForbidden, "a viewer must not transfer into a shared wallet")

	suite.assertDecimal("1000", suite.balance(suite.alice, shared.ID))
	suite.assertDecimal("50", suite.balance(suite.bob, bobs.ID))

	// As member, Bob spends from the shared wallet
	members := backend.NewQuery().Eq("workspace_id", workspace.ID).Eq("user_id", id(suite.bob))
	_, err = suite.store.WorkspaceMembers().Update(suite.alice, members, backend.Patch{"role": models.RoleMember})
	suite.Require().Nil(err)

	spent := suite.createTestTransaction(suite.bob, models.Transaction{WalletID: shared.ID, Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(100), IsPaid: true})
	suite.assertDecimal("900", suite.balance(suite.alice, shared.ID))

	// Demoted to viewer again, Bob cannot revert the expense
	_, err = suite.store.WorkspaceMembers().Update(suite.alice, members, backend.Patch{"role": models.RoleViewer})
	suite.Require().Nil(err)

	_, err = suite.store.Transactions().Delete(suite.bob, backend.ByID(spent.ID))
	suite.Assert().ErrorIs(err, backend.ErrForbidden)

	_, err = suite.store.Transactions().Update(suite.bob, backend.ByID(spent.ID), backend.Patch{"amount": decimal.NewFromInt(1)})
	suite.Assert().ErrorIs(err, backend.ErrForbidden)

	suite.assertDecimal("900", suite.balance(suite.alice, shared.ID))
}
