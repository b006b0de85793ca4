package sqlstore

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/models"
	"gorm.io/gorm"
)

var (
	errSystemCategory = fmt.Errorf("%w: system categories are managed by the operator", backend.ErrForbidden)
	errForeignOwner   = fmt.Errorf("%w: workspaces can only be created for yourself", backend.ErrForbidden)
	errNoOwner        = fmt.Errorf("%w: a workspace needs at least one owner", backend.ErrConstraint)
)

func forbidInsert[T any](*gorm.DB, uuid.UUID, *T) error {
	return fmt.Errorf("%w: rows of this table are managed by the operator", backend.ErrForbidden)
}

func transactionReferences(t models.Transaction) []reference {
	return []reference{
		{backend.TableWallets, &t.WalletID, true},
		{backend.TableWallets, t.DestinationWalletID, true},
		{backend.TableCategories, t.CategoryID, false},
		{backend.TableCreditCards, t.CreditCardID, false},
	}
}

// checkTransfer enforces that transfers, and only transfers, have a
// destination wallet different from the source wallet.
func checkTransfer(t models.Transaction) error {
	if t.Type != models.TransactionTypeTransfer {
		if t.DestinationWalletID != nil {
			return fmt.Errorf("%w: only transfers have a destination wallet", backend.ErrConstraint)
		}
		return nil
	}

	if t.DestinationWalletID == nil {
		return fmt.Errorf("%w: a transfer needs a destination wallet", backend.ErrConstraint)
	}

	if *t.DestinationWalletID == t.WalletID {
		return fmt.Errorf("%w: %w", backend.ErrConstraint, models.ErrWalletsNotDifferent)
	}

	return nil
}

func checkCreditCard(c models.CreditCard) error {
	if c.ClosingDay < 1 || c.ClosingDay > 31 || c.DueDay < 1 || c.DueDay > 31 {
		return fmt.Errorf("%w: closing and due day must be between 1 and 31", backend.ErrConstraint)
	}

	if !c.Limit.IsPositive() {
		return fmt.Errorf("%w: the credit limit must be positive", backend.ErrConstraint)
	}

	if c.AvailableCredit.GreaterThan(c.Limit) {
		return fmt.Errorf("%w: the available credit cannot exceed the limit", backend.ErrConstraint)
	}

	return nil
}

// applyBalances updates the balances of all wallets touched by a change of
// a transaction from old to updated. The zero transaction stands for a row
// that does not exist, i.e. before an insert or after a delete.
//
// The principal needs write access to every wallet whose balance changes.
func (s *Store) applyBalances(tx *gorm.DB, p uuid.UUID, old, updated models.Transaction) error {
	seen := map[uuid.UUID]bool{uuid.Nil: true}

	for _, id := range append(old.Wallets(), updated.Wallets()...) {
		if seen[id] {
			continue
		}
		seen[id] = true

		delta := updated.SignedAmount(id).Sub(old.SignedAmount(id))
		if delta.IsZero() {
			continue
		}

		writable, err := s.has(tx, p, backend.TableWallets, id, true)
		if err != nil {
			return err
		}

		if !writable {
			return fmt.Errorf("%w: the balance of wallet %s is read-only for you", backend.ErrForbidden, id)
		}

		var wallet models.Wallet
		err = tx.First(&wallet, "id = ?", id).Error
		if err != nil {
			return err
		}

		err = tx.Model(&wallet).UpdateColumn("balance", wallet.Balance.Add(delta).Round(8)).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// keepSingleDefault clears the default flag of all other wallets of the owner
// when the wallet is the default.
func keepSingleDefault(tx *gorm.DB, w models.Wallet) error {
	if !w.IsDefault {
		return nil
	}

	return tx.Model(&models.Wallet{}).
		Where("user_id = ? AND id != ? AND is_default = ?", w.UserID, w.ID, true).
		UpdateColumn("is_default", false).Error
}

// memberCheck allows owners and admins to add members with any role but owner.
func memberCheck(tx *gorm.DB, p uuid.UUID, m models.WorkspaceMember) error {
	if !m.Role.Valid() || m.Role == models.RoleOwner {
		return fmt.Errorf("%w: role %q cannot be assigned", backend.ErrConstraint, m.Role)
	}

	var count int64
	err := tx.Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ? AND role IN ?", m.WorkspaceID, p, []models.WorkspaceRole{models.RoleOwner, models.RoleAdmin}).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count == 0 {
		return fmt.Errorf("%w: only owners and admins can add members to workspace %s", backend.ErrForbidden, m.WorkspaceID)
	}

	return nil
}

// roleCheck allows owners and admins to change roles. Only owners can make
// others owners.
func roleCheck(tx *gorm.DB, p uuid.UUID, old, m models.WorkspaceMember) error {
	if old.Role == m.Role {
		return nil
	}

	role := old.Role
	if old.UserID != p {
		var own models.WorkspaceMember
		err := tx.Where("workspace_id = ? AND user_id = ?", m.WorkspaceID, p).Limit(1).Find(&own).Error
		if err != nil {
			return err
		}
		role = own.Role
	}

	if role != models.RoleOwner && (role != models.RoleAdmin || m.Role == models.RoleOwner) {
		return fmt.Errorf("%w: role %q cannot assign role %q in workspace %s", backend.ErrForbidden, role, m.Role, m.WorkspaceID)
	}

	return nil
}

// keepOwner rejects changes that leave a workspace without owner.
func keepOwner(tx *gorm.DB, workspaceID uuid.UUID) error {
	var count int64
	err := tx.Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND role = ?", workspaceID, models.RoleOwner).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count == 0 {
		return errNoOwner
	}

	return nil
}
