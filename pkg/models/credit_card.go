package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreditCard is a card paid off from a wallet.
type CreditCard struct {
	DefaultModel
	UserID          uuid.UUID       `json:"user_id" gorm:"type:uuid;index"`
	WorkspaceID     *uuid.UUID      `json:"workspace_id" gorm:"type:uuid;index"`
	Name            string          `json:"name" example:"Visa Gold"`
	Limit           decimal.Decimal `json:"limit" gorm:"column:credit_limit;type:DECIMAL(20,8)" example:"5000"`
	AvailableCredit decimal.Decimal `json:"available_credit" gorm:"type:DECIMAL(20,8)" example:"3250.10"`
	ClosingDay      int             `json:"closing_day" example:"3"`
	DueDay          int             `json:"due_day" example:"10"`
	Color           *string         `json:"color" example:"#1E3A8A"`
	WalletID        uuid.UUID       `json:"wallet_id" gorm:"type:uuid"`
	Wallet          *Wallet         `json:"wallet,omitempty"`
}

func (c CreditCard) Owner() uuid.UUID { return c.UserID }

func (c CreditCard) Workspace() *uuid.UUID { return c.WorkspaceID }

func (c *CreditCard) SetOwner(id uuid.UUID) { c.UserID = id }

func (c *CreditCard) BeforeSave(_ *gorm.DB) (err error) {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}

func (c *CreditCard) AfterFind(tx *gorm.DB) (err error) {
	_ = c.Timestamps.AfterFind(tx)

	if c.ClosingDay < 1 || c.ClosingDay > 31 || c.DueDay < 1 || c.DueDay > 31 {
		return fmt.Errorf("%w: credit card %s has closing day %d and due day %d", ErrInvalidRow, c.ID, c.ClosingDay, c.DueDay)
	}

	return nil
}
