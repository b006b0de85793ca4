package finance

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/walletwise/finance/pkg/models"
)

// The reducers derive aggregates from transaction sets when the backend
// does not offer the aggregation. They produce the same rows as the
// backend functions.

// flow returns the income and expense part of a transaction. Transfers
// are neither.
func flow(t models.Transaction) (income, expense decimal.Decimal) {
	switch t.Type {
	case models.TransactionTypeIncome:
		return t.Amount, decimal.Zero
	case models.TransactionTypeExpense:
		return decimal.Zero, t.Amount
	}
	return decimal.Zero, decimal.Zero
}

// spent is the sum of all expenses.
func spent(transactions []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		_, expense := flow(t)
		total = total.Add(expense)
	}
	return total
}

// reduceMonthly sums income and expense per calendar month, newest first.
// A nil year or month does not constrain the result.
func reduceMonthly(transactions []models.Transaction, year, month *int) []models.MonthlySummary {
	buckets := map[string]*models.MonthlySummary{}

	for _, t := range transactions {
		m := t.Date.Month()
		if (year != nil && m.Year() != *year) || (month != nil && m.Number() != *month) {
			continue
		}

		b, ok := buckets[m.String()]
		if !ok {
			b = &models.MonthlySummary{Year: m.Year(), Month: m.Number(), TotalIncome: decimal.Zero, TotalExpense: decimal.Zero}
			buckets[m.String()] = b
		}

		income, expense := flow(t)
		b.TotalIncome = b.TotalIncome.Add(income)
		b.TotalExpense = b.TotalExpense.Add(expense)
	}

	summaries := make([]models.MonthlySummary, 0, len(buckets))
	for _, b := range buckets {
		b.Balance = b.TotalIncome.Sub(b.TotalExpense)
		summaries = append(summaries, *b)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Year != summaries[j].Year {
			return summaries[i].Year > summaries[j].Year
		}
		return summaries[i].Month > summaries[j].Month
	})

	return summaries
}

// reduceCategories sums the transactions of the type per category, largest
// total first. Transactions without category form their own group.
func reduceCategories(transactions []models.Transaction, categoryType models.CategoryType) []models.CategorySummary {
	var groups []*models.CategorySummary
	byID := map[uuid.UUID]*models.CategorySummary{}

	for _, t := range transactions {
		if string(t.Type) != string(categoryType) {
			continue
		}

		key := uuid.Nil
		if t.CategoryID != nil {
			key = *t.CategoryID
		}

		g, ok := byID[key]
		if !ok {
			g = &models.CategorySummary{CategoryID: t.CategoryID, TotalAmount: decimal.Zero}
			if t.Category != nil {
				g.CategoryName = t.Category.Name
				g.CategoryColor = t.Category.Color
				g.CategoryIcon = t.Category.Icon
			}
			byID[key] = g
			groups = append(groups, g)
		}

		g.TotalAmount = g.TotalAmount.Add(t.Amount)
	}

	summaries := make([]models.CategorySummary, 0, len(groups))
	for _, g := range groups {
		summaries = append(summaries, *g)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if !summaries[i].TotalAmount.Equal(summaries[j].TotalAmount) {
			return summaries[i].TotalAmount.GreaterThan(summaries[j].TotalAmount)
		}
		return summaries[i].CategoryName < summaries[j].CategoryName
	})

	return models.WithPercentages(summaries)
}

// reduceCashFlow sums income and expense per day, oldest first.
func reduceCashFlow(transactions []models.Transaction) []models.CashFlow {
	buckets := map[string]*models.CashFlow{}

	for _, t := range transactions {
		b, ok := buckets[t.Date.String()]
		if !ok {
			b = &models.CashFlow{Date: t.Date, Income: decimal.Zero, Expense: decimal.Zero}
			buckets[t.Date.String()] = b
		}

		income, expense := flow(t)
		b.Income = b.Income.Add(income)
		b.Expense = b.Expense.Add(expense)
	}

	flows := make([]models.CashFlow, 0, len(buckets))
	for _, b := range buckets {
		b.Balance = b.Income.Sub(b.Expense)
		flows = append(flows, *b)
	}

	sort.Slice(flows, func(i, j int) bool {
		return flows[i].Date.Before(flows[j].Date)
	})

	return flows
}
