package ledger_test

import (
	"github.com/OuterCloud/family-account-book/pkg/ledger"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createCategory(name string, parentID *uuid.UUID) models.Category {
	c, err := suite.service.CreateCategory(suite.ctx, ledger.CategoryCreate{Name: name, ParentID: parentID})
	suite.Require().Nil(err)
	return c
}

func (suite *TestSuiteStandard) TestListCategoriesOrderedByName() {
	_ = suite.createCategory("Travel", nil)
	_ = suite.createCategory("Food", nil)
	_ = suite.createCategory("Rent", nil)

	categories, err := suite.service.ListCategories(suite.ctx)
	suite.Require().Nil(err)
	suite.Require().Len(categories, 3)
	suite.Assert().Equal("Food", categories[0].Name)
	suite.Assert().Equal("Rent", categories[1].Name)
	suite.Assert().Equal("Travel", categories[2].Name)
}

func (suite *TestSuiteStandard) TestListCategoriesEmpty() {
	categories, err := suite.service.ListCategories(suite.ctx)
	suite.Require().Nil(err)
	suite.Assert().NotNil(categories)
	suite.Assert().Len(categories, 0)
}

func (suite *TestSuiteStandard) TestCreateCategoryDuplicateName() {
	_ = suite.createCategory("Food", nil)

	_, err := suite.service.CreateCategory(suite.ctx, ledger.CategoryCreate{Name: "Food"})
	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestGetCategory() {
	created := suite.createCategory("Food", nil)

	category, found, err := suite.service.GetCategory(suite.ctx, created.ID)
	suite.Require().Nil(err)
	suite.Require().True(found)
	suite.Assert().Equal("Food", category.Name)

	_, found, err = suite.service.GetCategory(suite.ctx, uuid.New())
	suite.Assert().Nil(err)
	suite.Assert().False(found)
}

func (suite *TestSuiteStandard) TestUpdateCategory() {
	parent := suite.createCategory("Living", nil)
	category := suite.createCategory("Food", nil)

	updated, found, err := suite.service.UpdateCategory(suite.ctx, category.ID, ledger.CategoryPatch{
		Name:        ptr("Groceries"),
		Description: ptr("Supermarket"),
		ParentID:    &parent.ID,
	})
	suite.Require().Nil(err)
	suite.Require().True(found)
	suite.Assert().Equal("Groceries", updated.Name)
	suite.Assert().Equal("Supermarket", updated.Description)
	suite.Assert().Equal(parent.ID, *updated.ParentID)

	// The Nil UUID removes the parent
	updated, _, err = suite.service.UpdateCategory(suite.ctx, category.ID, ledger.CategoryPatch{ParentID: ptr(uuid.Nil)})
	suite.Require().Nil(err)
	suite.Assert().Nil(updated.ParentID)
}

func (suite *TestSuiteStandard) TestUpdateCategoryCycle() {
	root := suite.createCategory("Living", nil)
	child := suite.createCategory("Food", &root.ID)
	grandchild := suite.createCategory("Groceries", &child.ID)

	_, _, err := suite.service.UpdateCategory(suite.ctx, root.ID, ledger.CategoryPatch{ParentID: &grandchild.ID})
	suite.Assert().ErrorIs(err, models.ErrCategoryCycle)

	_, _, err = suite.service.UpdateCategory(suite.ctx, root.ID, ledger.CategoryPatch{ParentID: &root.ID})
	suite.Assert().ErrorIs(err, models.ErrCategoryCycle)

	stored, _, err := suite.service.GetCategory(suite.ctx, root.ID)
	suite.Require().Nil(err)
	suite.Assert().Nil(stored.ParentID)
}

func (suite *TestSuiteStandard) TestUpdateCategoryParentDoesNotExist() {
	category := suite.createCategory("Food", nil)

	_, _, err := suite.service.UpdateCategory(suite.ctx, category.ID, ledger.CategoryPatch{ParentID: ptr(uuid.New())})
	suite.Assert().ErrorIs(err, models.ErrReferenceNotFound)
}

func (suite *TestSuiteStandard) TestUpdateCategoryNotFound() {
	_, found, err := suite.service.UpdateCategory(suite.ctx, uuid.New(), ledger.CategoryPatch{Name: ptr("Nope")})
	suite.Assert().Nil(err)
	suite.Assert().False(found)
}

func (suite *TestSuiteStandard) TestDeleteCategory() {
	category := suite.createCategory("Food", nil)

	deleted, err := suite.service.DeleteCategory(suite.ctx, category.ID)
	suite.Require().Nil(err)
	suite.Assert().True(deleted)
	suite.Assert().Equal(int64(0), suite.count(&models.Category{}))

	// Names are free again after deletion
	_ = suite.createCategory("Food", nil)
}

func (suite *TestSuiteStandard) TestDeleteCategoryInUse() {
	transaction, err := suite.service.CreateExpense(suite.ctx, ledger.TransactionCreate{Amount: decimal.NewFromInt(5), CategoryName: "Food"})
	suite.Require().Nil(err)

	deleted, err := suite.service.DeleteCategory(suite.ctx, *transaction.CategoryID)
	suite.Require().Nil(err)
	suite.Assert().False(deleted)

	// Category and reference are intact
	stored, found, err := suite.service.GetTransaction(suite.ctx, transaction.ID)
	suite.Require().Nil(err)
	suite.Require().True(found)
	suite.Assert().Equal(*transaction.CategoryID, *stored.CategoryID)
	suite.Assert().Equal(int64(1), suite.count(&models.Category{}))
}

func (suite *TestSuiteStandard) TestDeleteCategoryWithChildren() {
	parent := suite.createCategory("Living", nil)
	_ = suite.createCategory("Food", &parent.ID)

	deleted, err := suite.service.DeleteCategory(suite.ctx, parent.ID)
	suite.Require().Nil(err)
	suite.Assert().False(deleted)
}

func (suite *TestSuiteStandard) TestDeleteCategoryNotFound() {
	deleted, err := suite.service.DeleteCategory(suite.ctx, uuid.New())
	suite.Assert().Nil(err)
	suite.Assert().False(deleted)
}

func (suite *TestSuiteStandard) TestDeleteCategoryDatabaseError() {
	category := suite.createCategory("Food", nil)
	suite.DisconnectDB()

	_, err := suite.service.DeleteCategory(suite.ctx, category.ID)
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
