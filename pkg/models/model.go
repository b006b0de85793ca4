package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultModel is the base model for all rows identified by a generated ID.
type DefaultModel struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey" example:"65392deb-5e92-4268-b114-297faad6cdce"` // UUID for the resource
	Timestamps
}

// Timestamps only contains the timestamps that gorm sets automatically to enable other
// primary keys than ID.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" example:"2024-04-02T19:28:44.491514Z"` // Time the resource was created
	UpdatedAt time.Time `json:"updated_at" example:"2024-04-17T20:14:01.048145Z"` // Last time the resource was updated
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Timestamps) AfterFind(_ *gorm.DB) (err error) {
	t.CreatedAt = t.CreatedAt.In(time.UTC)
	t.UpdatedAt = t.UpdatedAt.In(time.UTC)
	return nil
}

// BeforeCreate generates the ID for the resource. IDs are always assigned
// by the store, whatever the caller put into the row.
func (m *DefaultModel) BeforeCreate(_ *gorm.DB) (err error) {
	m.ID = uuid.New()
	return nil
}

// Owned is implemented by rows that belong to a principal and,
// optionally, to a workspace.
type Owned interface {
	Owner() uuid.UUID
	Workspace() *uuid.UUID
	SetOwner(uuid.UUID)
}
