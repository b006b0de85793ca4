package finance_test

import (
	"context"

	"github.com/walletwise/finance/pkg/finance"
	"github.com/walletwise/finance/pkg/models"
)

func (suite *TestSuiteStandard) TestListCategories() {
	suite.createTestCategory(suite.alice, finance.CategoryInput{Name: "Aardvark food", Type: models.CategoryTypeExpense})
	suite.createTestCategory(suite.alice, finance.CategoryInput{Name: "Allowance", Type: models.CategoryTypeIncome})
	suite.createTestCategory(suite.bob, finance.CategoryInput{Name: "Bob's category"})

	categories, err := suite.client.ListCategories(suite.alice, nil)
	suite.Require().Nil(err)
	suite.Assert().Len(categories, 12, "System categories and own categories")
	suite.Assert().Equal("Aardvark food", categories[0].Name, "Categories must be ordered by name")

	expense := models.CategoryTypeExpense
	categories, err = suite.client.ListCategories(suite.alice, &expense)
	suite.Require().Nil(err)
	suite.Assert().Len(categories, 8)
	for _, c := range categories {
		suite.Assert().Equal(models.CategoryTypeExpense, c.Type)
	}

	// Without session, only the system categories are visible
	categories, err = suite.client.ListCategories(context.Background(), nil)
	suite.Require().Nil(err)
	suite.Assert().Len(categories, 10)

	_, err = suite.client.ListCategories(suite.alice, ptr(models.CategoryType("transfer")))
	suite.Assert().ErrorIs(err, finance.ErrValidation)
}

func (suite *TestSuiteStandard) TestCategoryNameUniquePerType() {
	suite.createTestCategory(suite.alice, finance.CategoryInput{Name: "Gifts", Type: models.CategoryTypeExpense})

	_, err := suite.client.CreateCategory(suite.alice, finance.CategoryInput{Name: "Gifts", Type: models.CategoryTypeExpense})
	suite.Assert().ErrorIs(err, finance.ErrBackend)

	// Same name with another type or for another user is fine
	suite.createTestCategory(suite.alice, finance.CategoryInput{Name: "Gifts", Type: models.CategoryTypeIncome})
	suite.createTestCategory(suite.bob, finance.CategoryInput{Name: "Gifts", Type: models.CategoryTypeExpense})
}

func (suite *TestSuiteStandard) TestSystemCategoriesAreReadOnly() {
	categories, err := suite.client.ListCategories(suite.alice, nil)
	suite.Require().Nil(err)

	var system models.Category
	for _, c := range categories {
		if c.IsSystem {
			system = c
			break
		}
	}
	suite.Require().True(system.IsSystem)

	_, err = suite.client.UpdateCategory(suite.alice, system.ID, finance.CategoryInput{Name: "Mine now", Type: system.Type})
	suite.Assert().ErrorIs(err, finance.ErrBackend)

	err = suite.client.DeleteCategory(suite.alice, system.ID)
	suite.Assert().ErrorIs(err, finance.ErrBackend)
}

func (suite *TestSuiteStandard) TestUpdateAndDeleteCategory() {
	category := suite.createTestCategory(suite.alice, finance.CategoryInput{Name: "Pets", Icon: ptr("dog")})

	updated, err := suite.client.UpdateCategory(suite.alice, category.ID, finance.CategoryInput{Name: "Animals", Type: models.CategoryTypeExpense})
	suite.Require().Nil(err)
	suite.Assert().Equal("Animals", updated.Name)
	suite.Assert().Nil(updated.Icon)

	err = suite.client.DeleteCategory(suite.alice, category.ID)
	suite.Require().Nil(err)

	_, err = suite.client.GetCategory(suite.alice, category.ID)
	suite.Assert().ErrorIs(err, finance.ErrNotFound)
}
