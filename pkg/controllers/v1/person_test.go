package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/OuterCloud/family-account-book/pkg/controllers/v1"
	"github.com/OuterCloud/family-account-book/pkg/ledger"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/OuterCloud/family-account-book/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestPersonsCreate() {
	person := suite.createTestPerson(suite.T(), ledger.PersonCreate{Name: "Alice", Description: "Pays the rent"})

	assert.Equal(suite.T(), "Alice", person.Name)
	assert.Equal(suite.T(), "Pays the rent", person.Description)
	assert.Equal(suite.T(), "http://example.com/v1/persons/"+person.ID.String(), person.Links.Self)
	assert.Equal(suite.T(), "http://example.com/v1/transactions?person=Alice", person.Links.Transactions)

	r := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/persons", ledger.PersonCreate{Name: "Alice"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	assert.Equal(suite.T(), models.ErrPersonNameNotUnique.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))

	r = test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/persons", ledger.PersonCreate{})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	assert.Equal(suite.T(), models.ErrNameEmpty.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestPersonsListAndGet() {
	bob := suite.createTestPerson(suite.T(), ledger.PersonCreate{Name: "Bob"})
	suite.createTestPerson(suite.T(), ledger.PersonCreate{Name: "Alice"})

	r := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/persons", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.PersonListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Require().Len(list.Data, 2)
	assert.Equal(suite.T(), "Alice", list.Data[0].Name)
	assert.Equal(suite.T(), "Bob", list.Data[1].Name)

	r = test.Request(suite.controller, suite.T(), http.MethodGet, bob.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PersonResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), bob.ID, response.Data.ID)

	r = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/persons/"+uuid.NewString(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestPersonsUpdate() {
	person := suite.createTestPerson(suite.T(), ledger.PersonCreate{Name: "Alice"})

	r := test.Request(suite.controller, suite.T(), http.MethodPatch, person.Links.Self, map[string]any{"name": "Alicia"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PersonResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Alicia", response.Data.Name)

	r = test.Request(suite.controller, suite.T(), http.MethodPatch, "http://example.com/v1/persons/"+uuid.NewString(), map[string]any{"name": "Carol"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestPersonsDelete() {
	unused := suite.createTestPerson(suite.T(), ledger.PersonCreate{Name: "Carol"})
	transaction := suite.createTestTransaction(suite.T(), v1.TransactionCreate{
		TransactionCreate: ledger.TransactionCreate{
			Amount:     decimal.NewFromInt(10),
			PersonName: "Alice",
		},
	})

	tests := []struct {
		name   string
		url    string
		status int
	}{
		{"Unused", unused.Links.Self, http.StatusNoContent},
		{"Unused again", unused.Links.Self, http.StatusNotFound},
		{"In use", "http://example.com/v1/persons/" + transaction.PersonID.String(), http.StatusConflict},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodDelete, tt.url, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestPersonsOptionsDetail() {
	person := suite.createTestPerson(suite.T(), ledger.PersonCreate{Name: "Alice"})

	r := test.Request(suite.controller, suite.T(), http.MethodOptions, person.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))

	r = test.Request(suite.controller, suite.T(), http.MethodOptions, "http://example.com/v1/persons/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
