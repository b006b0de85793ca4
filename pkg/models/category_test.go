package models_test

import (
	"github.com/google/uuid"
	"github.com/walletwise/finance/pkg/models"
)

func (suite *TestSuiteStandard) TestCategoryNameUniquePerType() {
	owner := uuid.New()

	suite.createTestCategory(models.Category{UserID: &owner, Name: "Salary", Type: models.CategoryTypeIncome})

	// Same name with a different type is fine
	suite.createTestCategory(models.Category{UserID: &owner, Name: "Salary", Type: models.CategoryTypeExpense})

	// Same name for a different user is fine
	other := uuid.New()
	suite.createTestCategory(models.Category{UserID: &other, Name: "Salary", Type: models.CategoryTypeIncome})

	err := suite.db.Create(&models.Category{UserID: &owner, Name: "Salary", Type: models.CategoryTypeIncome}).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestCategorySystemOwner() {
	category := suite.createTestCategory(models.Category{IsSystem: true, Name: "Other"})
	suite.Assert().Equal(uuid.Nil, category.Owner())
	suite.Assert().Equal(models.CategoryTypeExpense, category.Type)

	id := uuid.New()
	category.SetOwner(id)
	suite.Assert().Equal(id, category.Owner())
}
