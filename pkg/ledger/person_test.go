package ledger_test

import (
	"github.com/OuterCloud/family-account-book/pkg/ledger"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestPersonLifecycle() {
	person, err := suite.service.CreatePerson(suite.ctx, ledger.PersonCreate{Name: "Alice", Description: "Mum"})
	suite.Require().Nil(err)

	got, found, err := suite.service.GetPerson(suite.ctx, person.ID)
	suite.Require().Nil(err)
	suite.Require().True(found)
	suite.Assert().Equal("Mum", got.Description)

	updated, found, err := suite.service.UpdatePerson(suite.ctx, person.ID, ledger.PersonPatch{Name: ptr("Alicia")})
	suite.Require().Nil(err)
	suite.Require().True(found)
	suite.Assert().Equal("Alicia", updated.Name)
	suite.Assert().Equal("Mum", updated.Description)

	deleted, err := suite.service.DeletePerson(suite.ctx, person.ID)
	suite.Require().Nil(err)
	suite.Assert().True(deleted)

	suite.Assert().Equal([]string{"person.created", "person.updated", "person.deleted"}, suite.publisher.kinds())
}

func (suite *TestSuiteStandard) TestListPersonsOrderedByName() {
	for _, name := range []string{"Charlie", "Alice", "Bob"} {
		_, err := suite.service.CreatePerson(suite.ctx, ledger.PersonCreate{Name: name})
		suite.Require().Nil(err)
	}

	persons, err := suite.service.ListPersons(suite.ctx)
	suite.Require().Nil(err)
	suite.Require().Len(persons, 3)
	suite.Assert().Equal("Alice", persons[0].Name)
	suite.Assert().Equal("Charlie", persons[2].Name)
}

func (suite *TestSuiteStandard) TestCreatePersonNameEmpty() {
	_, err := suite.service.CreatePerson(suite.ctx, ledger.PersonCreate{Name: " "})
	suite.Assert().ErrorIs(err, models.ErrNameEmpty)
}

func (suite *TestSuiteStandard) TestUpdatePersonDuplicateName() {
	_, err := suite.service.CreatePerson(suite.ctx, ledger.PersonCreate{Name: "Alice"})
	suite.Require().Nil(err)
	bob, err := suite.service.CreatePerson(suite.ctx, ledger.PersonCreate{Name: "Bob"})
	suite.Require().Nil(err)

	_, _, err = suite.service.UpdatePerson(suite.ctx, bob.ID, ledger.PersonPatch{Name: ptr("Alice")})
	suite.Assert().ErrorIs(err, models.ErrPersonNameNotUnique)
}

func (suite *TestSuiteStandard) TestUpdatePersonNotFound() {
	_, found, err := suite.service.UpdatePerson(suite.ctx, uuid.New(), ledger.PersonPatch{Name: ptr("Nobody")})
	suite.Assert().Nil(err)
	suite.Assert().False(found)
}

func (suite *TestSuiteStandard) TestDeletePersonInUse() {
	transaction, err := suite.service.CreateExpense(suite.ctx, ledger.TransactionCreate{Amount: decimal.NewFromInt(5), PersonName: "Alice"})
	suite.Require().Nil(err)

	deleted, err := suite.service.DeletePerson(suite.ctx, *transaction.PersonID)
	suite.Require().Nil(err)
	suite.Assert().False(deleted)

	stored, _, err := suite.service.GetTransaction(suite.ctx, transaction.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(*transaction.PersonID, *stored.PersonID)
	suite.Assert().Equal(int64(1), suite.count(&models.Person{}))
}

func (suite *TestSuiteStandard) TestDeletePersonNotFound() {
	deleted, err := suite.service.DeletePerson(suite.ctx, uuid.New())
	suite.Assert().Nil(err)
	suite.Assert().False(deleted)
}
