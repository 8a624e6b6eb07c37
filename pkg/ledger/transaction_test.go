package ledger_test

import (
	"time"

	"github.com/OuterCloud/family-account-book/pkg/ledger"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

func (suite *TestSuiteStandard) TestCreateExpenseCreatesCategoryAndPerson() {
	transaction, err := suite.service.CreateExpense(suite.ctx, ledger.TransactionCreate{
		Date:         date(2023, 10, 5),
		Amount:       decimal.NewFromInt(100),
		Description:  "Dinner",
		CategoryName: "餐饮",
		PersonName:   "Alice",
	})
	suite.Require().Nil(err)

	suite.Assert().NotEqual(uuid.Nil, transaction.ID)
	suite.Assert().Equal(models.TransactionTypeExpense, transaction.Type)
	suite.Require().NotNil(transaction.CategoryID)
	suite.Require().NotNil(transaction.PersonID)

	var category models.Category
	suite.Require().Nil(suite.db.First(&category, "id = ?", transaction.CategoryID).Error)
	suite.Assert().Equal("餐饮", category.Name)
	suite.Assert().Equal("", category.Description)

	var person models.Person
	suite.Require().Nil(suite.db.First(&person, "id = ?", transaction.PersonID).Error)
	suite.Assert().Equal("Alice", person.Name)

	suite.Assert().Equal([]string{"transaction.created"}, suite.publisher.kinds())
}

func (suite *TestSuiteStandard) TestCreateExpenseReusesCategory() {
	first, err := suite.service.CreateExpense(suite.ctx, ledger.TransactionCreate{Amount: decimal.NewFromInt(1), CategoryName: "交通"})
	suite.Require().Nil(err)

	second, err := suite.service.CreateExpense(suite.ctx, ledger.TransactionCreate{Amount: decimal.NewFromInt(2), CategoryName: "交通"})
	suite.Require().Nil(err)

	suite.Assert().Equal(*first.CategoryID, *second.CategoryID)
	suite.Assert().Equal(int64(1), suite.count(&models.Category{}))
}

func (suite *TestSuiteStandard) TestCreateExpenseWithoutPerson() {
	transaction, err := suite.service.CreateExpense(suite.ctx, ledger.TransactionCreate{Amount: decimal.NewFromInt(3), CategoryName: "Rent"})
	suite.Require().Nil(err)

	suite.Assert().Nil(transaction.PersonID)
	suite.Assert().Equal(int64(0), suite.count(&models.Person{}))
}

func (suite *TestSuiteStandard) TestCreateExpenseUncategorized() {
	transaction, err := suite.service.CreateExpense(suite.ctx, ledger.TransactionCreate{Amount: decimal.NewFromInt(3)})
	suite.Require().Nil(err)

	suite.Assert().Nil(transaction.CategoryID)
	suite.Assert().Equal(int64(0), suite.count(&models.Category{}))
}

func (suite *TestSuiteStandard) TestCreateExpenseNegativeAmount() {
	transaction, err := suite.service.CreateExpense(suite.ctx, ledger.TransactionCreate{Amount: decimal.NewFromFloat(-12.345)})
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromFloat(-12.345).Equal(transaction.Amount))
}

func (suite *TestSuiteStandard) TestCreateIncomeWithDeductions() {
	transaction, err := suite.service.CreateIncome(suite.ctx, ledger.TransactionCreate{
		Date:         date(2023, 10, 31),
		Amount:       decimal.NewFromInt(10000),
		Description:  "Salary",
		CategoryName: "Salary",
		PersonName:   "Bob",
		Deductions: []ledger.Deduction{
			{ItemName: "Income tax", Amount: decimal.NewFromInt(800)},
			{ItemName: "Social insurance", Amount: decimal.NewFromInt(1050)},
		},
	})
	suite.Require().Nil(err)

	suite.Assert().Equal(models.TransactionTypeIncome, transaction.Type)
	suite.Require().Len(transaction.IncomeDetails, 2)
	suite.Assert().Equal(int64(2), suite.count(&models.IncomeDetail{}))
	suite.Assert().True(decimal.NewFromInt(8150).Equal(transaction.NetAmount()))
}

func (suite *TestSuiteStandard) TestCreateExpenseWithDeductions() {
	_, err := suite.service.CreateExpense(suite.ctx, ledger.TransactionCreate{
		Amount:       decimal.NewFromInt(10),
		CategoryName: "Food",
		Deductions:   []ledger.Deduction{{ItemName: "Tax", Amount: decimal.NewFromInt(1)}},
	})
	suite.Assert().ErrorIs(err, models.ErrDeductionsOnExpense)

	// Validation happens before any write
	suite.Assert().Equal(int64(0), suite.count(&models.Category{}))
	suite.Assert().Empty(suite.publisher.kinds())
}

func (suite *TestSuiteStandard) TestCreateIncomeDeductionItemEmpty() {
	_, err := suite.service.CreateIncome(suite.ctx, ledger.TransactionCreate{
		Amount:     decimal.NewFromInt(10),
		PersonName: "Bob",
		Deductions: []ledger.Deduction{{ItemName: "  "}},
	})
	suite.Assert().ErrorIs(err, models.ErrDeductionItemEmpty)
	suite.Assert().Equal(int64(0), suite.count(&models.Person{}))
	suite.Assert().Equal(int64(0), suite.count(&models.Transaction{}))
}

func (suite *TestSuiteStandard) TestCreateTransactionPublishFailure() {
	suite.publisher.err = errBrokerDown

	_, err := suite.service.CreateExpense(suite.ctx, ledger.TransactionCreate{Amount: decimal.NewFromInt(10)})
	suite.Assert().Nil(err)
	suite.Assert().Equal(int64(1), suite.count(&models.Transaction{}))
}

func (suite *TestSuiteStandard) TestCreateTransactionDatabaseError() {
	suite.DisconnectDB()

	_, err := suite.service.CreateExpense(suite.ctx, ledger.TransactionCreate{Amount: decimal.NewFromInt(10), CategoryName: "Food"})
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestGetTransaction() {
	created, err := suite.service.CreateIncome(suite.ctx, ledger.TransactionCreate{
		Amount:     decimal.NewFromInt(100),
		Deductions: []ledger.Deduction{{ItemName: "Tax", Amount: decimal.NewFromInt(10)}},
	})
	suite.Require().Nil(err)

	transaction, found, err := suite.service.GetTransaction(suite.ctx, created.ID)
	suite.Require().Nil(err)
	suite.Require().True(found)
	suite.Assert().Len(transaction.IncomeDetails, 1)

	_, found, err = suite.service.GetTransaction(suite.ctx, uuid.New())
	suite.Assert().Nil(err)
	suite.Assert().False(found)
}

func (suite *TestSuiteStandard) TestUpdateTransaction() {
	created, err := suite.service.CreateExpense(suite.ctx, ledger.TransactionCreate{
		Date:         date(2023, 10, 5),
		Amount:       decimal.NewFromInt(100),
		Description:  "Dinner",
		CategoryName: "餐饮",
	})
	suite.Require().Nil(err)

	updated, found, err := suite.service.UpdateTransaction(suite.ctx, created.ID, ledger.TransactionPatch{
		Amount:       ptr(decimal.NewFromInt(120)),
		Description:  ptr("Dinner with friends"),
		CategoryName: ptr("Restaurants"),
		PersonName:   ptr("Carol"),
	})
	suite.Require().Nil(err)
	suite.Require().True(found)

	suite.Assert().True(decimal.NewFromInt(120).Equal(updated.Amount))
	suite.Assert().Equal("Dinner with friends", updated.Description)
	suite.Assert().True(date(2023, 10, 5).Equal(updated.Date), "date must not change")
	suite.Assert().NotEqual(*created.CategoryID, *updated.CategoryID)
	suite.Require().NotNil(updated.PersonID)
	suite.Assert().False(updated.UpdatedAt.Before(created.UpdatedAt))

	suite.Assert().Equal(int64(2), suite.count(&models.Category{}))
	suite.Assert().Equal([]string{"transaction.created", "transaction.updated"}, suite.publisher.kinds())
}

func (suite *TestSuiteStandard) TestUpdateTransactionEmptyNamesIgnored() {
	created, err := suite.service.CreateExpense(suite.ctx, ledger.TransactionCreate{
		Amount:       decimal.NewFromInt(100),
		CategoryName: "餐饮",
		PersonName:   "Alice",
	})
	suite.Require().Nil(err)

	updated, found, err := suite.service.UpdateTransaction(suite.ctx, created.ID, ledger.TransactionPatch{
		CategoryName: ptr(""),
		PersonName:   ptr(""),
	})
	suite.Require().Nil(err)
	suite.Require().True(found)

	suite.Assert().Equal(*created.CategoryID, *updated.CategoryID)
	suite.Assert().Equal(*created.PersonID, *updated.PersonID)
}

func (suite *TestSuiteStandard) TestUpdateTransactionNotFound() {
	_, found, err := suite.service.UpdateTransaction(suite.ctx, uuid.New(), ledger.TransactionPatch{Description: ptr("nothing")})
	suite.Assert().Nil(err)
	suite.Assert().False(found)
	suite.Assert().Empty(suite.publisher.kinds())
}

func (suite *TestSuiteStandard) TestUpdateTransactionInvalidType() {
	created, err := suite.service.CreateExpense(suite.ctx, ledger.TransactionCreate{Amount: decimal.NewFromInt(1)})
	suite.Require().Nil(err)

	_, _, err = suite.service.UpdateTransaction(suite.ctx, created.ID, ledger.TransactionPatch{Type: ptr(models.TransactionType("transfer"))})
	suite.Assert().ErrorIs(err, models.ErrTransactionTypeInvalid)
}

func (suite *TestSuiteStandard) TestUpdateIncomeToExpenseRemovesDeductions() {
	created, err := suite.service.CreateIncome(suite.ctx, ledger.TransactionCreate{
		Amount:     decimal.NewFromInt(100),
		Deductions: []ledger.Deduction{{ItemName: "Tax", Amount: decimal.NewFromInt(10)}},
	})
	suite.Require().Nil(err)

	updated, found, err := suite.service.UpdateTransaction(suite.ctx, created.ID, ledger.TransactionPatch{Type: ptr(models.TransactionTypeExpense)})
	suite.Require().Nil(err)
	suite.Require().True(found)

	suite.Assert().Empty(updated.IncomeDetails)
	suite.Assert().Equal(int64(0), suite.count(&models.IncomeDetail{}))
}

func (suite *TestSuiteStandard) TestDeleteTransaction() {
	created, err := suite.service.CreateIncome(suite.ctx, ledger.TransactionCreate{
		Amount:     decimal.NewFromInt(100),
		Deductions: []ledger.Deduction{{ItemName: "Tax", Amount: decimal.NewFromInt(10)}},
	})
	suite.Require().Nil(err)

	deleted, err := suite.service.DeleteTransaction(suite.ctx, created.ID)
	suite.Require().Nil(err)
	suite.Assert().True(deleted)

	suite.Assert().Equal(int64(0), suite.count(&models.Transaction{}))
	suite.Assert().Equal(int64(0), suite.count(&models.IncomeDetail{}))
	suite.Assert().Equal([]string{"transaction.created", "transaction.deleted"}, suite.publisher.kinds())
}

func (suite *TestSuiteStandard) TestDeleteTransactionNotFound() {
	deleted, err := suite.service.DeleteTransaction(suite.ctx, uuid.New())
	suite.Assert().Nil(err)
	suite.Assert().False(deleted)
}

func (suite *TestSuiteStandard) TestFindOrCreateInsideTransaction() {
	var categoryID, personID uuid.UUID

	err := suite.db.Transaction(func(tx *gorm.DB) error {
		var err error
		categoryID, err = suite.service.FindOrCreateCategory(tx, " Utilities ")
		if err != nil {
			return err
		}

		again, err := suite.service.FindOrCreateCategory(tx, "Utilities")
		suite.Assert().Equal(categoryID, again)

		personID, err = suite.service.FindOrCreatePerson(tx, "Dave")
		return err
	})
	suite.Require().Nil(err)

	suite.Assert().NotEqual(uuid.Nil, categoryID)
	suite.Assert().NotEqual(uuid.Nil, personID)
	suite.Assert().Equal(int64(1), suite.count(&models.Category{}))
}
