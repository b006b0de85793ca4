package sqlstore

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/walletwise/finance/pkg/models"
	"gorm.io/gorm"
)

var systemCategories = []models.Category{
	{Name: "Salário", Type: models.CategoryTypeIncome},
	{Name: "Investimentos", Type: models.CategoryTypeIncome},
	{Name: "Outras receitas", Type: models.CategoryTypeIncome},
	{Name: "Alimentação", Type: models.CategoryTypeExpense},
	{Name: "Moradia", Type: models.CategoryTypeExpense},
	{Name: "Transporte", Type: models.CategoryTypeExpense},
	{Name: "Saúde", Type: models.CategoryTypeExpense},
	{Name: "Educação", Type: models.CategoryTypeExpense},
	{Name: "Lazer", Type: models.CategoryTypeExpense},
	{Name: "Outras despesas", Type: models.CategoryTypeExpense},
}

var plans = []models.SubscriptionPlan{
	{Name: "Free", Price: decimal.Zero, Interval: models.IntervalMonthly, Features: models.Features{"wallets", "budgets"}, IsActive: true},
	{Name: "Premium", Price: decimal.RequireFromString("19.90"), Interval: models.IntervalMonthly, Features: models.Features{"wallets", "budgets", "workspaces", "reports"}, IsActive: true},
	{Name: "Premium Yearly", Price: decimal.RequireFromString("199.00"), Interval: models.IntervalYearly, Features: models.Features{"wallets", "budgets", "workspaces", "reports"}, IsActive: true},
}

// Seed creates the system categories and subscription plans if the
// database has none.
func (s *Store) Seed(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Where("is_system = ?", true).Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			for _, c := range systemCategories {
				c.IsSystem = true
				if err := tx.Create(&c).Error; err != nil {
					return fmt.Errorf("error seeding category %s: %w", c.Name, err)
				}
			}
		}

		if err := tx.Model(&models.SubscriptionPlan{}).Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			for _, p := range plans {
				if err := tx.Create(&p).Error; err != nil {
					return fmt.Errorf("error seeding plan %s: %w", p.Name, err)
				}
			}
		}

		return nil
	})
}
