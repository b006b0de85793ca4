package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultCurrency is used for wallets created without a currency.
const DefaultCurrency = "BRL"

// Wallet is an account holding money, e.g. a checking account or cash.
//
// The balance is maintained by the store as a side effect of paid
// transactions and is never written directly by clients.
type Wallet struct {
	DefaultModel
	UserID      uuid.UUID       `json:"user_id" gorm:"type:uuid;index"`
	WorkspaceID *uuid.UUID      `json:"workspace_id" gorm:"type:uuid;index"`
	Name        string          `json:"name" example:"Nubank"`
	Balance     decimal.Decimal `json:"balance" gorm:"type:DECIMAL(20,8)" example:"1520.35"`
	Currency    string          `json:"currency" example:"BRL"`
	Type        WalletType      `json:"type" example:"checking"`
	Color       *string         `json:"color" example:"#8A05BE"`
	Icon        *string         `json:"icon" example:"wallet"`
	IsDefault   bool            `json:"is_default"`
}

func (w Wallet) Owner() uuid.UUID { return w.UserID }

func (w Wallet) Workspace() *uuid.UUID { return w.WorkspaceID }

func (w *Wallet) SetOwner(id uuid.UUID) { w.UserID = id }

// BeforeSave trims whitespace and applies defaults.
func (w *Wallet) BeforeSave(_ *gorm.DB) (err error) {
	w.Name = strings.TrimSpace(w.Name)
	w.Currency = strings.ToUpper(strings.TrimSpace(w.Currency))

	if w.Currency == "" {
		w.Currency = DefaultCurrency
	}

	if w.Type == "" {
		w.Type = WalletTypeChecking
	}

	return nil
}

// AfterFind rejects rows with values outside of the schema.
func (w *Wallet) AfterFind(tx *gorm.DB) (err error) {
	_ = w.Timestamps.AfterFind(tx)

	if !w.Type.Valid() {
		return fmt.Errorf("%w: wallet %s has type %q", ErrInvalidRow, w.ID, w.Type)
	}

	return nil
}
