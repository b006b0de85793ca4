package finance

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/cache"
	"github.com/walletwise/finance/pkg/models"
	"golang.org/x/text/currency"
)

// Wallets and credit cards are embedded in transactions.
var walletKeys = []cache.Key{cache.Wallets, cache.Transactions, cache.CreditCards}

// WalletInput is the data of a wallet to create or update.
type WalletInput struct {
	Name        string            `json:"name"`
	Balance     decimal.Decimal   `json:"balance"` // Initial balance, ignored on update
	Currency    string            `json:"currency"`
	Type        models.WalletType `json:"type"`
	Color       *string           `json:"color"`
	Icon        *string           `json:"icon"`
	IsDefault   bool              `json:"is_default"`
	WorkspaceID *uuid.UUID        `json:"workspace_id"`
}

func (in WalletInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name", msgRequired)
	}

	if in.Type != "" && !in.Type.Valid() {
		return invalid("type", msgInvalidValue)
	}

	if in.Currency != "" {
		if _, err := currency.ParseISO(in.currencyCode()); err != nil {
			return invalid("currency", msgInvalidValue)
		}
	}

	return nil
}

func (in WalletInput) currencyCode() string {
	if in.Currency == "" {
		return models.DefaultCurrency
	}
	return strings.ToUpper(strings.TrimSpace(in.Currency))
}

func (in WalletInput) walletType() models.WalletType {
	if in.Type == "" {
		return models.WalletTypeChecking
	}
	return in.Type
}

// ListWallets returns all wallets, the default wallet first and the
// others by name.
func (c *Client) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	q := backend.NewQuery().OrderBy("is_default", true).OrderBy("name", false)
	wallets, err := read(ctx, c, cache.Wallets, q.String(), func(ctx context.Context) ([]models.Wallet, error) {
		return c.backend.Wallets().Select(ctx, q)
	})
	if err != nil {
		return nil, c.fail("list wallets", err)
	}

	return wallets, nil
}

func (c *Client) GetWallet(ctx context.Context, id uuid.UUID) (models.Wallet, error) {
	wallet, err := call(ctx, c, func(ctx context.Context) (models.Wallet, error) {
		return c.backend.Wallets().Single(ctx, backend.ByID(id))
	})
	if err != nil {
		return models.Wallet{}, c.fail("get wallet", err)
	}

	return wallet, nil
}

func (c *Client) CreateWallet(ctx context.Context, in WalletInput) (models.Wallet, error) {
	p, err := c.requireSession(ctx)
	if err != nil {
		return models.Wallet{}, err
	}

	if err := in.Validate(); err != nil {
		return models.Wallet{}, c.validation(err)
	}

	wallet, err := call(ctx, c, func(ctx context.Context) (models.Wallet, error) {
		return c.backend.Wallets().Insert(ctx, models.Wallet{
			UserID:      p.ID,
			WorkspaceID: in.WorkspaceID,
			Name:        in.Name,
			Balance:     in.Balance,
			Currency:    in.currencyCode(),
			Type:        in.walletType(),
			Color:       in.Color,
			Icon:        in.Icon,
			IsDefault:   in.IsDefault,
		})
	})
	if err != nil {
		return models.Wallet{}, c.fail("create wallet", err)
	}

	c.Invalidate(walletKeys...)
	return wallet, nil
}

// UpdateWallet updates all fields but the balance, which only changes
// with transactions.
func (c *Client) UpdateWallet(ctx context.Context, id uuid.UUID, in WalletInput) (models.Wallet, error) {
	if _, err := c.requireSession(ctx); err != nil {
		return models.Wallet{}, err
	}

	if err := in.Validate(); err != nil {
		return models.Wallet{}, c.validation(err)
	}

	patch := backend.Patch{
		"name":       strings.TrimSpace(in.Name),
		"currency":   in.currencyCode(),
		"type":       in.walletType(),
		"color":      nullable(in.Color),
		"icon":       nullable(in.Icon),
		"is_default": in.IsDefault,
	}

	updated, err := call(ctx, c, func(ctx context.Context) ([]models.Wallet, error) {
		return c.backend.Wallets().Update(ctx, backend.ByID(id), patch)
	})
	if err != nil {
		return models.Wallet{}, c.fail("update wallet", err)
	}

	if len(updated) == 0 {
		return models.Wallet{}, c.notFound("update wallet", backend.TableWallets, id)
	}

	c.Invalidate(walletKeys...)
	return updated[0], nil
}

// DeleteWallet deletes a wallet. Wallets with transactions or credit
// cards cannot be deleted.
func (c *Client) DeleteWallet(ctx context.Context, id uuid.UUID) error {
	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	deleted, err := call(ctx, c, func(ctx context.Context) (int64, error) {
		return c.backend.Wallets().Delete(ctx, backend.ByID(id))
	})
	if err != nil {
		return c.fail("delete wallet", err)
	}

	if deleted == 0 {
		return c.notFound("delete wallet", backend.TableWallets, id)
	}

	c.Invalidate(walletKeys...)
	return nil
}
