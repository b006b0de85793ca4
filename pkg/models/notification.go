package models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is a message addressed to a single user.
type Notification struct {
	DefaultModel
	UserID  uuid.UUID        `json:"user_id" gorm:"type:uuid;index"`
	Title   string           `json:"title" example:"Budget exceeded"`
	Message string           `json:"message" example:"You spent more than planned on Groceries"`
	Type    NotificationType `json:"type" example:"warning"`
	Link    *string          `json:"link" example:"/budgets"`
	IsRead  bool             `json:"is_read"`
}

func (n Notification) Owner() uuid.UUID { return n.UserID }

func (n Notification) Workspace() *uuid.UUID { return nil }

func (n *Notification) SetOwner(id uuid.UUID) { n.UserID = id }

func (n *Notification) BeforeSave(_ *gorm.DB) (err error) {
	if n.Type == "" {
		n.Type = NotificationInfo
	}
	return nil
}

func (n *Notification) AfterFind(tx *gorm.DB) (err error) {
	_ = n.Timestamps.AfterFind(tx)

	if !n.Type.Valid() {
		return fmt.Errorf("%w: notification %s has type %q", ErrInvalidRow, n.ID, n.Type)
	}

	return nil
}
