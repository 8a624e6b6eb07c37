package v1

import (
	"context"

	"github.com/OuterCloud/family-account-book/pkg/ledger"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionCreate is the request body for new transactions.
type TransactionCreate struct {
	Type models.TransactionType `json:"type" example:"expense"` // Either "income" or "expense"
	ledger.TransactionCreate
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.Transaction
	CategoryName string           `json:"categoryName" example:"Groceries"` // Name of the category, empty for uncategorized transactions
	PersonName   string           `json:"personName" example:"Alice"`       // Name of the person
	Links        TransactionLinks `json:"links"`
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the transaction
	Error *string      `json:"error,omitempty" example:"the transaction type is not supported"` // The error, if any occurred
}

type TransactionListResponse struct {
	Data  []Transaction `json:"data"`                                                     // List of transactions
	Error *string       `json:"error,omitempty" example:"could not parse the date, use the YYYY-MM-DD format"` // The error, if any occurred
}

// names resolves category and person IDs to their names.
type names struct {
	categories map[uuid.UUID]string
	persons    map[uuid.UUID]string
}

func (co Controller) names(ctx context.Context) (names, error) {
	categories, err := co.Ledger.ListCategories(ctx)
	if err != nil {
		return names{}, err
	}

	persons, err := co.Ledger.ListPersons(ctx)
	if err != nil {
		return names{}, err
	}

	n := names{
		categories: make(map[uuid.UUID]string, len(categories)),
		persons:    make(map[uuid.UUID]string, len(persons)),
	}

	for _, c := range categories {
		n.categories[c.ID] = c.Name
	}

	for _, p := range persons {
		n.persons[p.ID] = p.Name
	}

	return n, nil
}

// transaction returns the API v1 representation of the resource
func (n names) transaction(c *gin.Context, model models.Transaction) Transaction {
	t := Transaction{
		Transaction: model,
		Links: TransactionLinks{
			Self: c.GetString(string(models.ContextURL)) + "/v1/transactions/" + model.ID.String(),
		},
	}

	if model.IncomeDetails == nil {
		t.IncomeDetails = []models.IncomeDetail{}
	}

	if model.CategoryID != nil {
		t.CategoryName = n.categories[*model.CategoryID]
	}

	if model.PersonID != nil {
		t.PersonName = n.persons[*model.PersonID]
	}

	return t
}

// transaction returns the API v1 representation of a single transaction.
func (co Controller) transaction(c *gin.Context, model models.Transaction) (Transaction, error) {
	n, err := co.names(c.Request.Context())
	if err != nil {
		return Transaction{}, err
	}

	return n.transaction(c, model), nil
}
