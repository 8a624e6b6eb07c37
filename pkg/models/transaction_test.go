package models_test

import (
	"time"

	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestTransactionKeepsWallClock() {
	tz := time.FixedZone("UTC+8", 8*60*60)

	transaction := suite.createTestTransaction(models.Transaction{
		Date:   time.Date(2023, 10, 5, 8, 0, 0, 0, tz),
		Amount: decimal.NewFromFloat(12.5),
		Type:   models.TransactionTypeExpense,
	})

	var stored models.Transaction
	suite.Require().Nil(suite.db.First(&stored, "id = ?", transaction.ID).Error)

	suite.Assert().Equal(time.UTC, stored.Date.Location())
	suite.Assert().True(time.Date(2023, 10, 5, 8, 0, 0, 0, time.UTC).Equal(stored.Date))
}

func (suite *TestSuiteStandard) TestTransactionKeepsDayAcrossMidnight() {
	tz := time.FixedZone("UTC+8", 8*60*60)

	transaction := suite.createTestTransaction(models.Transaction{
		Date: time.Date(2023, 11, 1, 0, 30, 0, 0, tz),
		Type: models.TransactionTypeExpense,
	})

	suite.Assert().Equal(time.November, transaction.Date.Month())
	suite.Assert().Equal(1, transaction.Date.Day())
}

func (suite *TestSuiteStandard) TestTransactionZeroDateIsNow() {
	before := time.Now().Add(-time.Second)
	transaction := suite.createTestTransaction(models.Transaction{
		Amount: decimal.NewFromFloat(1),
		Type:   models.TransactionTypeExpense,
	})

	suite.Assert().True(transaction.Date.After(before))
	suite.Assert().Equal(time.UTC, transaction.Date.Location())
}

func (suite *TestSuiteStandard) TestTransactionTrimWhitespace() {
	transaction := suite.createTestTransaction(models.Transaction{
		Type:        models.TransactionTypeIncome,
		Description: "  Salary \n",
	})

	suite.Assert().Equal("Salary", transaction.Description)
}

func (suite *TestSuiteStandard) TestTransactionTypeInvalid() {
	err := suite.db.Create(&models.Transaction{Type: "transfer"}).Error
	suite.Assert().ErrorIs(err, models.ErrTransactionTypeInvalid)
}

func (suite *TestSuiteStandard) TestTransactionNilReferencesStoredAsNull() {
	nilID := uuid.Nil
	transaction := suite.createTestTransaction(models.Transaction{
		Type:       models.TransactionTypeExpense,
		CategoryID: &nilID,
		PersonID:   &nilID,
	})

	suite.Assert().Nil(transaction.CategoryID)
	suite.Assert().Nil(transaction.PersonID)
}

func (suite *TestSuiteStandard) TestTransactionCategoryDoesNotExist() {
	categoryID := uuid.New()
	err := suite.db.Create(&models.Transaction{Type: models.TransactionTypeExpense, CategoryID: &categoryID}).Error
	suite.Assert().ErrorIs(err, models.ErrReferenceNotFound)
}

func (suite *TestSuiteStandard) TestTransactionDeductionsOnExpense() {
	err := suite.db.Create(&models.Transaction{
		Type: models.TransactionTypeExpense,
		IncomeDetails: []models.IncomeDetail{
			{ItemName: "Income tax", Amount: decimal.NewFromInt(10)},
		},
	}).Error
	suite.Assert().ErrorIs(err, models.ErrDeductionsOnExpense)
}

func (suite *TestSuiteStandard) TestTransactionIncomeDetails() {
	transaction := suite.createTestTransaction(models.Transaction{
		Type:   models.TransactionTypeIncome,
		Amount: decimal.NewFromInt(5000),
		IncomeDetails: []models.IncomeDetail{
			{ItemName: "Income tax", Amount: decimal.NewFromInt(300)},
			{ItemName: " Pension ", Amount: decimal.NewFromInt(400)},
		},
	})

	var stored models.Transaction
	suite.Require().Nil(suite.db.Preload("IncomeDetails").First(&stored, "id = ?", transaction.ID).Error)

	suite.Require().Len(stored.IncomeDetails, 2)
	suite.Assert().True(decimal.NewFromInt(700).Equal(stored.Deductions()), stored.Deductions().String())
	suite.Assert().True(decimal.NewFromInt(4300).Equal(stored.NetAmount()), stored.NetAmount().String())
}

func (suite *TestSuiteStandard) TestIncomeDetailItemNameEmpty() {
	err := suite.db.Create(&models.Transaction{
		Type:          models.TransactionTypeIncome,
		IncomeDetails: []models.IncomeDetail{{ItemName: " "}},
	}).Error
	suite.Assert().ErrorIs(err, models.ErrDeductionItemEmpty)
}

func (suite *TestSuiteStandard) TestTransactionTypeValid() {
	suite.Assert().True(models.TransactionTypeIncome.Valid())
	suite.Assert().True(models.TransactionTypeExpense.Valid())
	suite.Assert().False(models.TransactionType("").Valid())
}
