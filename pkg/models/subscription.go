package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Features is the list of features a plan unlocks, stored as a JSON array.
type Features []string

func (f *Features) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*f = Features{}
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Features", value)
	}

	return json.Unmarshal(data, f)
}

func (f Features) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}

	data, err := json.Marshal(f)
	return string(data), err
}

func (Features) GormDataType() string {
	return "text"
}

// SubscriptionPlan is a plan users can subscribe to. Plans are managed by the
// operator and read-only for users.
type SubscriptionPlan struct {
	DefaultModel
	Name        string          `json:"name" example:"Premium"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:DECIMAL(20,8)" example:"19.90"`
	Interval    PlanInterval    `json:"interval" example:"monthly"`
	Features    Features        `json:"features"`
	IsActive    bool            `json:"is_active"`
}

func (p *SubscriptionPlan) AfterFind(tx *gorm.DB) (err error) {
	_ = p.Timestamps.AfterFind(tx)

	if !p.Interval.Valid() {
		return fmt.Errorf("%w: plan %s has interval %q", ErrInvalidRow, p.ID, p.Interval)
	}

	return nil
}

// Subscription is the subscription of a user to a plan.
type Subscription struct {
	DefaultModel
	UserID             uuid.UUID          `json:"user_id" gorm:"type:uuid;index"`
	PlanID             uuid.UUID          `json:"plan_id" gorm:"type:uuid"`
	Plan               *SubscriptionPlan  `json:"plan,omitempty"`
	Status             SubscriptionStatus `json:"status" example:"active"`
	CurrentPeriodStart time.Time          `json:"current_period_start"`
	CurrentPeriodEnd   time.Time          `json:"current_period_end"`
	CancelAtPeriodEnd  bool               `json:"cancel_at_period_end"`
}

func (s Subscription) Owner() uuid.UUID { return s.UserID }

func (s Subscription) Workspace() *uuid.UUID { return nil }

func (s *Subscription) SetOwner(id uuid.UUID) { s.UserID = id }

func (s *Subscription) AfterFind(tx *gorm.DB) (err error) {
	_ = s.Timestamps.AfterFind(tx)
	s.CurrentPeriodStart = s.CurrentPeriodStart.In(time.UTC)
	s.CurrentPeriodEnd = s.CurrentPeriodEnd.In(time.UTC)

	if !s.Status.Valid() {
		return fmt.Errorf("%w: subscription %s has status %q", ErrInvalidRow, s.ID, s.Status)
	}

	return nil
}

// Active reports if the subscription is active at the given time.
func (s Subscription) Active(now time.Time) bool {
	return s.Status == SubscriptionActive && now.Before(s.CurrentPeriodEnd)
}
