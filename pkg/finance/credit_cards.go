package finance

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/cache"
	"github.com/walletwise/finance/pkg/models"
)

var creditCardKeys = []cache.Key{cache.CreditCards, cache.Transactions}

// CreditCardInput is the data of a credit card to create or update.
type CreditCardInput struct {
	Name            string           `json:"name"`
	Limit           decimal.Decimal  `json:"limit"`
	AvailableCredit *decimal.Decimal `json:"available_credit"` // Defaults to the limit
	ClosingDay      int              `json:"closing_day"`
	DueDay          int              `json:"due_day"`
	Color           *string          `json:"color"`
	WalletID        uuid.UUID        `json:"wallet_id"`
	WorkspaceID     *uuid.UUID       `json:"workspace_id"`
}

func (in CreditCardInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name", msgRequired)
	}

	if !in.Limit.IsPositive() {
		return invalid("limit", msgPositive)
	}

	if in.AvailableCredit != nil {
		if in.AvailableCredit.IsNegative() {
			return invalid("available_credit", msgNotNegative)
		}

		if in.AvailableCredit.GreaterThan(in.Limit) {
			return invalid("available_credit", msgCreditAboveLimit)
		}
	}

	if in.ClosingDay < 1 || in.ClosingDay > 31 {
		return invalid("closing_day", msgDayOfMonth)
	}

	if in.DueDay < 1 || in.DueDay > 31 {
		return invalid("due_day", msgDayOfMonth)
	}

	if in.WalletID == uuid.Nil {
		return invalid("wallet_id", msgRequired)
	}

	return nil
}

func (in CreditCardInput) available() decimal.Decimal {
	if in.AvailableCredit == nil {
		return in.Limit
	}
	return *in.AvailableCredit
}

// ListCreditCards returns the credit cards by name with the wallet they
// are paid from.
func (c *Client) ListCreditCards(ctx context.Context) ([]models.CreditCard, error) {
	q := backend.NewQuery().Join("wallet").OrderBy("name", false)
	cards, err := read(ctx, c, cache.CreditCards, q.String(), func(ctx context.Context) ([]models.CreditCard, error) {
		return c.backend.CreditCards().Select(ctx, q)
	})
	if err != nil {
		return nil, c.fail("list credit cards", err)
	}

	return cards, nil
}

func (c *Client) GetCreditCard(ctx context.Context, id uuid.UUID) (models.CreditCard, error) {
	card, err := call(ctx, c, func(ctx context.Context) (models.CreditCard, error) {
		return c.backend.CreditCards().Single(ctx, backend.ByID(id).Join("wallet"))
	})
	if err != nil {
		return models.CreditCard{}, c.fail("get credit card", err)
	}

	return card, nil
}

func (c *Client) CreateCreditCard(ctx context.Context, in CreditCardInput) (models.CreditCard, error) {
	p, err := c.requireSession(ctx)
	if err != nil {
		return models.CreditCard{}, err
	}

	if err := in.Validate(); err != nil {
		return models.CreditCard{}, c.validation(err)
	}

	card, err := call(ctx, c, func(ctx context.Context) (models.CreditCard, error) {
		return c.backend.CreditCards().Insert(ctx, models.CreditCard{
			UserID:          p.ID,
			WorkspaceID:     in.WorkspaceID,
			Name:            in.Name,
			Limit:           in.Limit,
			AvailableCredit: in.available(),
			ClosingDay:      in.ClosingDay,
			DueDay:          in.DueDay,
			Color:           in.Color,
			WalletID:        in.WalletID,
		})
	})
	if err != nil {
		return models.CreditCard{}, c.fail("create credit card", err)
	}

	c.Invalidate(creditCardKeys...)
	return card, nil
}

func (c *Client) UpdateCreditCard(ctx context.Context, id uuid.UUID, in CreditCardInput) (models.CreditCard, error) {
	if _, err := c.requireSession(ctx); err != nil {
		return models.CreditCard{}, err
	}

	if err := in.Validate(); err != nil {
		return models.CreditCard{}, c.validation(err)
	}

	patch := backend.Patch{
		"name":             strings.TrimSpace(in.Name),
		"credit_limit":     in.Limit,
		"available_credit": in.available(),
		"closing_day":      in.ClosingDay,
		"due_day":          in.DueDay,
		"color":            nullable(in.Color),
		"wallet_id":        in.WalletID,
	}

	updated, err := call(ctx, c, func(ctx context.Context) ([]models.CreditCard, error) {
		return c.backend.CreditCards().Update(ctx, backend.ByID(id).Join("wallet"), patch)
	})
	if err != nil {
		return models.CreditCard{}, c.fail("update credit card", err)
	}

	if len(updated) == 0 {
		return models.CreditCard{}, c.notFound("update credit card", backend.TableCreditCards, id)
	}

	c.Invalidate(creditCardKeys...)
	return updated[0], nil
}

// DeleteCreditCard deletes a credit card. Cards with transactions cannot be deleted.
func (c *Client) DeleteCreditCard(ctx context.Context, id uuid.UUID) error {
	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	deleted, err := call(ctx, c, func(ctx context.Context) (int64, error) {
		return c.backend.CreditCards().Delete(ctx, backend.ByID(id))
	})
	if err != nil {
		return c.fail("delete credit card", err)
	}

	if deleted == 0 {
		return c.notFound("delete credit card", backend.TableCreditCards, id)
	}

	c.Invalidate(creditCardKeys...)
	return nil
}
