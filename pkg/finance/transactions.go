package finance

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/walletwise/finance/internal/types"
	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/cache"
	"github.com/walletwise/finance/pkg/models"
)

// transactionKeys are invalidated by every transaction write. Balances
// change with paid transactions, so wallets are included.
var transactionKeys = append([]cache.Key{cache.Transactions, cache.Wallets}, cache.Aggregates...)

// TransactionInput is the data of a transaction to create or update.
//
// Dates are calendar days. Use types.DateOf to convert a point in time,
// it takes the day in UTC.
type TransactionInput struct {
	WalletID            uuid.UUID                   `json:"wallet_id"`
	DestinationWalletID *uuid.UUID                  `json:"destination_wallet_id"`
	CategoryID          *uuid.UUID                  `json:"category_id"`
	CreditCardID        *uuid.UUID                  `json:"credit_card_id"`
	WorkspaceID         *uuid.UUID                  `json:"workspace_id"`
	Description         string                      `json:"description"`
	Amount              decimal.Decimal             `json:"amount"`
	Type                models.TransactionType      `json:"type"`
	Date                types.Date                  `json:"date"`
	IsPaid              bool                        `json:"is_paid"`
	IsRecurring         bool                        `json:"is_recurring"`
	RecurrenceFrequency *models.RecurrenceFrequency `json:"recurrence_frequency"`
	RecurrenceEndDate   *types.Date                 `json:"recurrence_end_date"`
	Notes               *string                     `json:"notes"`
}

// Validate checks the input without contacting the backend.
func (in TransactionInput) Validate() error {
	if strings.TrimSpace(in.Description) == "" {
		return invalid("description", msgRequired)
	}

	if !in.Amount.IsPositive() {
		return invalid("amount", msgPositive)
	}

	if !in.Type.Valid() {
		return invalid("type", msgInvalidValue)
	}

	if in.WalletID == uuid.Nil {
		return invalid("wallet_id", msgRequired)
	}

	if in.Date.IsZero() {
		return invalid("date", msgRequired)
	}

	if in.Type == models.TransactionTypeTransfer {
		if in.DestinationWalletID == nil || *in.DestinationWalletID == in.WalletID {
			return invalid("destination_wallet_id", msgTransferWallet)
		}
	} else if in.DestinationWalletID != nil {
		return invalid("destination_wallet_id", msgOnlyTransfers)
	}

	if in.RecurrenceFrequency != nil && !in.RecurrenceFrequency.Valid() {
		return invalid("recurrence_frequency", msgInvalidValue)
	}

	if in.RecurrenceEndDate != nil && in.RecurrenceEndDate.Before(in.Date) {
		return invalid("recurrence_end_date", msgInvalidValue)
	}

	return nil
}

func (in TransactionInput) model(owner uuid.UUID) models.Transaction {
	return models.Transaction{
		UserID:              owner,
		WorkspaceID:         in.WorkspaceID,
		WalletID:            in.WalletID,
		DestinationWalletID: in.DestinationWalletID,
		CategoryID:          in.CategoryID,
		CreditCardID:        in.CreditCardID,
		Description:         in.Description,
		Amount:              in.Amount,
		Type:                in.Type,
		Date:                in.Date,
		IsPaid:              in.IsPaid,
		IsRecurring:         in.IsRecurring,
		RecurrenceFrequency: in.RecurrenceFrequency,
		RecurrenceEndDate:   in.RecurrenceEndDate,
		Notes:               in.Notes,
	}
}

// patch returns all updatable columns. Unset optional fields are written as
// NULL so that previous values are cleared.
func (in TransactionInput) patch() backend.Patch {
	return backend.Patch{
		"wallet_id":             in.WalletID,
		"destination_wallet_id": nullable(in.DestinationWalletID),
		"category_id":           nullable(in.CategoryID),
		"credit_card_id":        nullable(in.CreditCardID),
		"description":           strings.TrimSpace(in.Description),
		"amount":                in.Amount,
		"type":                  in.Type,
		"date":                  in.Date,
		"is_paid":               in.IsPaid,
		"is_recurring":          in.IsRecurring,
		"recurrence_frequency":  nullable(in.RecurrenceFrequency),
		"recurrence_end_date":   nullable(in.RecurrenceEndDate),
		"notes":                 nullable(in.Notes),
	}
}

// nullable returns the value p points to, or an untyped nil for NULL.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// ListTransactions returns the transactions matching the filter, newest first.
func (c *Client) ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error) {
	if err := filter.Validate(); err != nil {
		return nil, c.validation(err)
	}

	q := filter.Query()
	transactions, err := read(ctx, c, cache.Transactions, q.String(), func(ctx context.Context) ([]models.Transaction, error) {
		return c.backend.Transactions().Select(ctx, q)
	})
	if err != nil {
		return nil, c.fail("list transactions", err)
	}

	return transactions, nil
}

// RecentTransactions returns the newest transactions.
func (c *Client) RecentTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	q := TransactionFilter{}.Query().WithLimit(limit)
	transactions, err := read(ctx, c, cache.Transactions, q.String(), func(ctx context.Context) ([]models.Transaction, error) {
		return c.backend.Transactions().Select(ctx, q)
	})
	if err != nil {
		return nil, c.fail("recent transactions", err)
	}

	return transactions, nil
}

// GetTransaction returns a single transaction with its relations.
func (c *Client) GetTransaction(ctx context.Context, id uuid.UUID) (models.Transaction, error) {
	transaction, err := call(ctx, c, func(ctx context.Context) (models.Transaction, error) {
		return c.backend.Transactions().Single(ctx, backend.ByID(id).Join(transactionJoins...))
	})
	if err != nil {
		return models.Transaction{}, c.fail("get transaction", err)
	}

	return transaction, nil
}

// CreateTransaction stores a transaction of the session principal and
// returns it as stored.
func (c *Client) CreateTransaction(ctx context.Context, in TransactionInput) (models.Transaction, error) {
	p, err := c.requireSession(ctx)
	if err != nil {
		return models.Transaction{}, err
	}

	if err := in.Validate(); err != nil {
		return models.Transaction{}, c.validation(err)
	}

	created, err := call(ctx, c, func(ctx context.Context) (models.Transaction, error) {
		return c.backend.Transactions().Insert(ctx, in.model(p.ID))
	})
	if err != nil {
		return models.Transaction{}, c.fail("create transaction", err)
	}

	c.Invalidate(transactionKeys...)
	return c.GetTransaction(ctx, created.ID)
}

// UpdateTransaction replaces all fields of the transaction with the input.
func (c *Client) UpdateTransaction(ctx context.Context, id uuid.UUID, in TransactionInput) (models.Transaction, error) {
	if _, err := c.requireSession(ctx); err != nil {
		return models.Transaction{}, err
	}

	if err := in.Validate(); err != nil {
		return models.Transaction{}, c.validation(err)
	}

	updated, err := call(ctx, c, func(ctx context.Context) ([]models.Transaction, error) {
		return c.backend.Transactions().Update(ctx, backend.ByID(id), in.patch())
	})
	if err != nil {
		return models.Transaction{}, c.fail("update transaction", err)
	}

	if len(updated) == 0 {
		return models.Transaction{}, c.notFound("update transaction", backend.TableTransactions, id)
	}

	c.Invalidate(transactionKeys...)
	return c.GetTransaction(ctx, id)
}

// DeleteTransaction deletes the transaction. Its effect on wallet balances
// is reverted by the backend.
func (c *Client) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	deleted, err := call(ctx, c, func(ctx context.Context) (int64, error) {
		return c.backend.Transactions().Delete(ctx, backend.ByID(id))
	})
	if err != nil {
		return c.fail("delete transaction", err)
	}

	if deleted == 0 {
		return c.notFound("delete transaction", backend.TableTransactions, id)
	}

	c.Invalidate(transactionKeys...)
	return nil
}
