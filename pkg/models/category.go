package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups transactions of one type.
//
// System categories have no owner, are visible to everyone and are read-only.
type Category struct {
	DefaultModel
	UserID      *uuid.UUID   `json:"user_id" gorm:"type:uuid;uniqueIndex:category_owner_type_name"`
	WorkspaceID *uuid.UUID   `json:"workspace_id" gorm:"type:uuid;index"`
	Name        string       `json:"name" gorm:"uniqueIndex:category_owner_type_name" example:"Groceries"`
	Type        CategoryType `json:"type" gorm:"uniqueIndex:category_owner_type_name" example:"expense"`
	Icon        *string      `json:"icon" example:"shopping-cart"`
	Color       *string      `json:"color" example:"#22C55E"`
	IsSystem    bool         `json:"is_system"`
}

func (c Category) Owner() uuid.UUID {
	if c.UserID == nil {
		return uuid.Nil
	}
	return *c.UserID
}

func (c Category) Workspace() *uuid.UUID { return c.WorkspaceID }

func (c *Category) SetOwner(id uuid.UUID) { c.UserID = &id }

func (c *Category) BeforeSave(_ *gorm.DB) (err error) {
	c.Name = strings.TrimSpace(c.Name)

	if c.Type == "" {
		c.Type = CategoryTypeExpense
	}

	return nil
}

func (c *Category) AfterFind(tx *gorm.DB) (err error) {
	_ = c.Timestamps.AfterFind(tx)

	if !c.Type.Valid() {
		return fmt.Errorf("%w: category %s has type %q", ErrInvalidRow, c.ID, c.Type)
	}

	return nil
}
