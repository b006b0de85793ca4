package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/walletwise/finance/internal/types"
	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/models"
)

// TypeAll is the transaction type filter matching all types.
const TypeAll models.TransactionType = "all"

// transactionJoins are the relations embedded in every transaction read.
var transactionJoins = []string{"wallet", "destination_wallet", "category", "credit_card"}

// TransactionFilter selects transactions. Every field is optional, a nil
// field does not constrain the result. Zero values are values: an IsPaid of
// false selects unpaid transactions only.
type TransactionFilter struct {
	StartDate    *types.Date             `form:"startDate"`    // First day, inclusive
	EndDate      *types.Date             `form:"endDate"`      // Last day, inclusive
	Type         *models.TransactionType `form:"type"`         // TypeAll does not constrain the type
	WalletID     *uuid.UUID              `form:"walletId"`     // Source wallet
	CategoryID   *uuid.UUID              `form:"categoryId"`   // Category
	CreditCardID *uuid.UUID              `form:"creditCardId"` // Credit card
	IsPaid       *bool                   `form:"isPaid"`       // Paid state
	Search       string                  `form:"search"`       // Case-insensitive substring of the description
	MinAmount    *decimal.Decimal        `form:"minAmount"`    // Minimum amount, inclusive
	MaxAmount    *decimal.Decimal        `form:"maxAmount"`    // Maximum amount, inclusive
}

// Validate rejects filters that no transaction can match.
func (f TransactionFilter) Validate() error {
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return invalid("startDate", msgDateRange)
	}

	if f.Type != nil && *f.Type != TypeAll && !f.Type.Valid() {
		return invalid("type", msgInvalidValue)
	}

	if f.MinAmount != nil && f.MaxAmount != nil && f.MinAmount.GreaterThan(*f.MaxAmount) {
		return invalid("minAmount", msgAmountRange)
	}

	return nil
}

// Query returns the backend query for the filter. Transactions are ordered
// newest first and embed their wallets, category and credit card.
//
// Query does not validate the filter, call Validate first.
func (f TransactionFilter) Query() backend.Query {
	q := backend.NewQuery().Join(transactionJoins...)

	if f.StartDate != nil {
		q = q.Gte("date", *f.StartDate)
	}

	if f.EndDate != nil {
		q = q.Lte("date", *f.EndDate)
	}

	if f.Type != nil && *f.Type != TypeAll {
		q = q.Eq("type", *f.Type)
	}

	if f.WalletID != nil {
		q = q.Eq("wallet_id", *f.WalletID)
	}

	if f.CategoryID != nil {
		q = q.Eq("category_id", *f.CategoryID)
	}

	if f.CreditCardID != nil {
		q = q.Eq("credit_card_id", *f.CreditCardID)
	}

	if f.IsPaid != nil {
		q = q.Eq("is_paid", *f.IsPaid)
	}

	if f.Search != "" {
		q = q.ILike("description", f.Search)
	}

	if f.MinAmount != nil {
		q = q.Gte("amount", *f.MinAmount)
	}

	if f.MaxAmount != nil {
		q = q.Lte("amount", *f.MaxAmount)
	}

	return q.OrderBy("date", true).OrderBy("created_at", true)
}
