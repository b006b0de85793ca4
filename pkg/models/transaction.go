package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/walletwise/finance/internal/types"
	"gorm.io/gorm"
)

// Transaction moves money into, out of or between wallets.
//
// Amounts are always positive, the type decides the direction. A transfer
// moves the amount from the wallet to the destination wallet.
type Transaction struct {
	DefaultModel
	UserID              uuid.UUID            `json:"user_id" gorm:"type:uuid;index"`
	WorkspaceID         *uuid.UUID           `json:"workspace_id" gorm:"type:uuid;index"`
	WalletID            uuid.UUID            `json:"wallet_id" gorm:"type:uuid;index;check:wallets_different,destination_wallet_id IS NULL OR wallet_id != destination_wallet_id"`
	Wallet              *Wallet              `json:"wallet,omitempty"`
	DestinationWalletID *uuid.UUID           `json:"destination_wallet_id" gorm:"type:uuid"`
	DestinationWallet   *Wallet              `json:"destination_wallet,omitempty"`
	CategoryID          *uuid.UUID           `json:"category_id" gorm:"type:uuid;index"`
	Category            *Category            `json:"category,omitempty"`
	CreditCardID        *uuid.UUID           `json:"credit_card_id" gorm:"type:uuid"`
	CreditCard          *CreditCard          `json:"credit_card,omitempty"`
	Description         string               `json:"description" example:"Weekly groceries"`
	Amount              decimal.Decimal      `json:"amount" gorm:"type:DECIMAL(20,8)" example:"152.37"`
	Type                TransactionType      `json:"type" example:"expense"`
	Date                types.Date           `json:"date" gorm:"index" example:"2024-03-15"`
	IsPaid              bool                 `json:"is_paid"`
	IsRecurring         bool                 `json:"is_recurring"`
	RecurrenceFrequency *RecurrenceFrequency `json:"recurrence_frequency" example:"monthly"`
	RecurrenceEndDate   *types.Date          `json:"recurrence_end_date" example:"2024-12-31"`
	Notes               *string              `json:"notes"`
}

func (t Transaction) Owner() uuid.UUID { return t.UserID }

func (t Transaction) Workspace() *uuid.UUID { return t.WorkspaceID }

func (t *Transaction) SetOwner(id uuid.UUID) { t.UserID = id }

func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Description = strings.TrimSpace(t.Description)
	return nil
}

func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	_ = t.Timestamps.AfterFind(tx)

	if !t.Type.Valid() {
		return fmt.Errorf("%w: transaction %s has type %q", ErrInvalidRow, t.ID, t.Type)
	}

	if t.RecurrenceFrequency != nil && !t.RecurrenceFrequency.Valid() {
		return fmt.Errorf("%w: transaction %s has recurrence frequency %q", ErrInvalidRow, t.ID, *t.RecurrenceFrequency)
	}

	return nil
}

// SignedAmount returns the effect of the transaction on the balance of the wallet
// with the given ID, taking only paid transactions into account.
func (t Transaction) SignedAmount(walletID uuid.UUID) decimal.Decimal {
	if !t.IsPaid {
		return decimal.Zero
	}

	switch t.Type {
	case TransactionTypeIncome:
		if t.WalletID == walletID {
			return t.Amount
		}
	case TransactionTypeExpense:
		if t.WalletID == walletID {
			return t.Amount.Neg()
		}
	case TransactionTypeTransfer:
		effect := decimal.Zero
		if t.WalletID == walletID {
			effect = effect.Sub(t.Amount)
		}
		if t.DestinationWalletID != nil && *t.DestinationWalletID == walletID {
			effect = effect.Add(t.Amount)
		}
		return effect
	}

	return decimal.Zero
}

// Wallets returns the IDs of all wallets the transaction touches.
func (t Transaction) Wallets() []uuid.UUID {
	ids := []uuid.UUID{t.WalletID}
	if t.DestinationWalletID != nil {
		ids = append(ids, *t.DestinationWalletID)
	}
	return ids
}
