package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workspace groups resources shared between several members.
type Workspace struct {
	DefaultModel
	Name        string            `json:"name" example:"Family"`
	Description *string           `json:"description" example:"Shared household expenses"`
	OwnerID     uuid.UUID         `json:"owner_id" gorm:"type:uuid;index"`
	Members     []WorkspaceMember `json:"members,omitempty"`
}

func (w Workspace) Owner() uuid.UUID { return w.OwnerID }

func (w Workspace) Workspace() *uuid.UUID { return &w.ID }

func (w *Workspace) SetOwner(id uuid.UUID) { w.OwnerID = id }

func (w *Workspace) BeforeSave(_ *gorm.DB) (err error) {
	w.Name = strings.TrimSpace(w.Name)
	return nil
}

// WorkspaceMember is the membership of a user in a workspace.
type WorkspaceMember struct {
	Timestamps
	WorkspaceID uuid.UUID     `json:"workspace_id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID     `json:"user_id" gorm:"type:uuid;primaryKey"`
	Role        WorkspaceRole `json:"role" example:"member"`
}

func (m WorkspaceMember) Owner() uuid.UUID { return m.UserID }

func (m WorkspaceMember) Workspace() *uuid.UUID { return &m.WorkspaceID }

// SetOwner is a no-op. The member row belongs to the member, not to whoever adds it.
func (m *WorkspaceMember) SetOwner(uuid.UUID) {}

func (m *WorkspaceMember) AfterFind(tx *gorm.DB) (err error) {
	_ = m.Timestamps.AfterFind(tx)

	if !m.Role.Valid() {
		return fmt.Errorf("%w: member %s of workspace %s has role %q", ErrInvalidRow, m.UserID, m.WorkspaceID, m.Role)
	}

	return nil
}
