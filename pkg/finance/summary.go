package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/walletwise/finance/internal/types"
	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/cache"
	"github.com/walletwise/finance/pkg/models"
)

// aggregate calls the backend function rpc. If the backend does not offer
// it, the transactions matching the filter are fetched and reduced instead.
func aggregate[T any](ctx context.Context, c *Client, op string, rpc func(context.Context) (T, error), filter TransactionFilter, reduce func([]models.Transaction) T) (T, error) {
	result, err := rpc(ctx)
	if !errors.Is(err, backend.ErrFunctionUnavailable) {
		return result, err
	}

	c.logger.Debug().Str("operation", op).Msg("backend function unavailable, reducing over transactions")

	transactions, err := c.backend.Transactions().Select(ctx, filter.Query())
	if err != nil {
		return result, err
	}

	return reduce(transactions), nil
}

// MonthlySummary returns income, expense and balance per month, newest
// first. A nil year or month returns all years or months.
func (c *Client) MonthlySummary(ctx context.Context, year, month *int) ([]models.MonthlySummary, error) {
	if month != nil && (*month < 1 || *month > 12) {
		return nil, c.validation(invalid("month", msgMonth))
	}

	var filter TransactionFilter
	switch {
	case year != nil && month != nil:
		first := types.NewDate(*year, time.Month(*month), 1)
		last := first.Month().AddDate(0, 1).FirstDay().AddDays(-1)
		filter.StartDate, filter.EndDate = &first, &last
	case year != nil:
		first, last := types.NewDate(*year, time.January, 1), types.NewDate(*year, time.December, 31)
		filter.StartDate, filter.EndDate = &first, &last
	}

	summaries, err := read(ctx, c, cache.MonthlySummary, fmt.Sprintf("year=%s&month=%s", optional(year), optional(month)), func(ctx context.Context) ([]models.MonthlySummary, error) {
		return aggregate(ctx, c, "monthly summary", func(ctx context.Context) ([]models.MonthlySummary, error) {
			return c.backend.MonthlySummary(ctx, year, month)
		}, filter, func(transactions []models.Transaction) []models.MonthlySummary {
			return reduceMonthly(transactions, year, month)
		})
	})
	if err != nil {
		return nil, c.fail("monthly summary", err)
	}

	return summaries, nil
}

// CategorySummary returns the total per category of the type in the
// inclusive date range, largest first, with the share of each category in
// the total of the type.
func (c *Client) CategorySummary(ctx context.Context, start, end *types.Date, categoryType models.CategoryType) ([]models.CategorySummary, error) {
	if !categoryType.Valid() {
		return nil, c.validation(invalid("type", msgInvalidValue))
	}

	transactionType := models.TransactionType(categoryType)
	filter := TransactionFilter{StartDate: start, EndDate: end, Type: &transactionType}
	if err := filter.Validate(); err != nil {
		return nil, c.validation(err)
	}

	params := backend.CategorySummaryParams{Start: start, End: end, Type: categoryType}
	parts := fmt.Sprintf("start=%s&end=%s&type=%s", optional(start), optional(end), categoryType)

	summaries, err := read(ctx, c, cache.CategorySummary, parts, func(ctx context.Context) ([]models.CategorySummary, error) {
		summaries, err := aggregate(ctx, c, "category summary", func(ctx context.Context) ([]models.CategorySummary, error) {
			return c.backend.CategorySummary(ctx, params)
		}, filter, func(transactions []models.Transaction) []models.CategorySummary {
			return reduceCategories(transactions, categoryType)
		})
		if err != nil {
			return nil, err
		}

		// Transactions without category are grouped under a localized name
		for i := range summaries {
			if summaries[i].CategoryID == nil {
				summaries[i].CategoryName = c.printer.Sprintf(msgNoCategory)
			}
		}

		return summaries, nil
	})
	if err != nil {
		return nil, c.fail("category summary", err)
	}

	return summaries, nil
}

// CashFlow returns income, expense and balance per day in the inclusive
// date range, oldest first. Days without transactions are omitted.
func (c *Client) CashFlow(ctx context.Context, start, end *types.Date) ([]models.CashFlow, error) {
	filter := TransactionFilter{StartDate: start, EndDate: end}
	if err := filter.Validate(); err != nil {
		return nil, c.validation(err)
	}

	parts := fmt.Sprintf("start=%s&end=%s", optional(start), optional(end))
	flows, err := read(ctx, c, cache.CashFlow, parts, func(ctx context.Context) ([]models.CashFlow, error) {
		return aggregate(ctx, c, "cash flow", func(ctx context.Context) ([]models.CashFlow, error) {
			return c.backend.CashFlow(ctx, start, end)
		}, filter, reduceCashFlow)
	})
	if err != nil {
		return nil, c.fail("cash flow", err)
	}

	return flows, nil
}

// optional formats an optional value for cache scopes.
func optional[T any](p *T) string {
	if p == nil {
		return ""
	}
	return fmt.Sprint(*p)
}
