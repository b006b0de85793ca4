package models

import "golang.org/x/exp/slices"

type WalletType string

const (
	WalletTypeChecking   WalletType = "checking"
	WalletTypeCreditCard WalletType = "credit_card"
	WalletTypeInvestment WalletType = "investment"
	WalletTypeCash       WalletType = "cash"
)

func (t WalletType) Valid() bool {
	return slices.Contains([]WalletType{WalletTypeChecking, WalletTypeCreditCard, WalletTypeInvestment, WalletTypeCash}, t)
}

type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

func (t TransactionType) Valid() bool {
	return slices.Contains([]TransactionType{TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer}, t)
}

type RecurrenceFrequency string

const (
	RecurrenceDaily   RecurrenceFrequency = "daily"
	RecurrenceWeekly  RecurrenceFrequency = "weekly"
	RecurrenceMonthly RecurrenceFrequency = "monthly"
	RecurrenceYearly  RecurrenceFrequency = "yearly"
)

func (f RecurrenceFrequency) Valid() bool {
	return slices.Contains([]RecurrenceFrequency{RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly}, f)
}

type WorkspaceRole string

const (
	RoleOwner  WorkspaceRole = "owner"
	RoleAdmin  WorkspaceRole = "admin"
	RoleMember WorkspaceRole = "member"
	RoleViewer WorkspaceRole = "viewer"
)

// WriteRoles are the roles allowed to modify resources of a workspace.
var WriteRoles = []WorkspaceRole{RoleOwner, RoleAdmin, RoleMember}

func (r WorkspaceRole) Valid() bool {
	return slices.Contains([]WorkspaceRole{RoleOwner, RoleAdmin, RoleMember, RoleViewer}, r)
}

// CanWrite reports if members with the role may modify workspace resources.
func (r WorkspaceRole) CanWrite() bool {
	return slices.Contains(WriteRoles, r)
}

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

func (t NotificationType) Valid() bool {
	return slices.Contains([]NotificationType{NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError}, t)
}

type PlanInterval string

const (
	IntervalMonthly PlanInterval = "monthly"
	IntervalYearly  PlanInterval = "yearly"
)

func (i PlanInterval) Valid() bool {
	return i == IntervalMonthly || i == IntervalYearly
}

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionExpired  SubscriptionStatus = "expired"
)

func (s SubscriptionStatus) Valid() bool {
	return slices.Contains([]SubscriptionStatus{SubscriptionActive, SubscriptionCanceled, SubscriptionExpired}, s)
}
