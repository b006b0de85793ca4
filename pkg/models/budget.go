package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/walletwise/finance/internal/types"
	"gorm.io/gorm"
)

// Budget is a spending limit for one category.
//
// The amount spent is never stored, it is derived from the transactions
// of the category in the budget period.
type Budget struct {
	DefaultModel
	UserID      uuid.UUID       `json:"user_id" gorm:"type:uuid;index"`
	WorkspaceID *uuid.UUID      `json:"workspace_id" gorm:"type:uuid;index"`
	Name        string          `json:"name" example:"Groceries"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"800"`
	CategoryID  uuid.UUID       `json:"category_id" gorm:"type:uuid"`
	Category    *Category       `json:"category,omitempty"`
	Description *string         `json:"description" example:"Supermarket and bakery"`
	PeriodStart *types.Date     `json:"period_start" example:"2024-03-01"` // First day of the period, inclusive
	PeriodEnd   *types.Date     `json:"period_end" example:"2024-04-01"`   // End of the period, exclusive
}

func (b Budget) Owner() uuid.UUID { return b.UserID }

func (b Budget) Workspace() *uuid.UUID { return b.WorkspaceID }

func (b *Budget) SetOwner(id uuid.UUID) { b.UserID = id }

func (b *Budget) BeforeSave(_ *gorm.DB) (err error) {
	b.Name = strings.TrimSpace(b.Name)
	return nil
}
