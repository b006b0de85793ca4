package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/walletwise/finance/pkg/models"
)

func (suite *TestSuiteStandard) TestWithPercentages() {
	summaries := models.WithPercentages([]models.CategorySummary{
		{CategoryName: "A", TotalAmount: decimal.NewFromInt(1)},
		{CategoryName: "B", TotalAmount: decimal.NewFromInt(2)},
	})

	suite.Assert().Equal("33.33", summaries[0].Percentage.StringFixed(2))
	suite.Assert().Equal("66.67", summaries[1].Percentage.StringFixed(2))
}

func (suite *TestSuiteStandard) TestWithPercentagesZeroTotal() {
	summaries := models.WithPercentages([]models.CategorySummary{
		{CategoryName: "A", TotalAmount: decimal.Zero},
		{CategoryName: "B", TotalAmount: decimal.Zero},
	})

	for _, s := range summaries {
		suite.Assert().True(s.Percentage.IsZero(), "%s has percentage %s", s.CategoryName, s.Percentage)
	}
}
