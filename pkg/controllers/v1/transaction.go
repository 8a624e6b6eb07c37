package v1

import (
	"net/http"

	"github.com/OuterCloud/family-account-book/pkg/httperrors"
	"github.com/OuterCloud/family-account-book/pkg/httputil"
	"github.com/OuterCloud/family-account-book/pkg/ledger"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/gin-gonic/gin"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", co.OptionsTransactionDetail)
		r.GET("/:id", co.GetTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [options]
func (co Controller) OptionsTransactionDetail(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	_, ok, err := co.Ledger.GetTransaction(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}

	if !ok {
		abort(c, httperrors.ErrNotFound)
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create transaction
// @Description	Creates an income or an expense. Categories and persons are referenced by name and created if they do not exist.
// @Tags			Transactions
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			transaction	body		TransactionCreate	true	"Transaction"
// @Router			/v1/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	var create TransactionCreate
	if err := httputil.BindData(c, &create); err != nil {
		abort(c, err)
		return
	}

	var (
		transaction models.Transaction
		err         error
	)

	switch create.Type {
	case models.TransactionTypeExpense:
		transaction, err = co.Ledger.CreateExpense(c.Request.Context(), create.TransactionCreate)
	case models.TransactionTypeIncome:
		transaction, err = co.Ledger.CreateIncome(c.Request.Context(), create.TransactionCreate)
	default:
		err = models.ErrTransactionTypeInvalid
	}

	if err != nil {
		abort(c, err)
		return
	}

	data, err := co.transaction(c, transaction)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: &data})
}

// @Summary		Get transactions
// @Description	Returns a list of transactions, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			from		query	string	false	"Transactions at and after this date, YYYY-MM-DD"
// @Param			until		query	string	false	"Transactions before and at this date, YYYY-MM-DD"
// @Param			type		query	string	false	"Filter by type, income or expense"
// @Param			category	query	string	false	"Filter by category name"
// @Param			person		query	string	false	"Filter by person name"
// @Param			description	query	string	false	"Filter by description. Accepts * as wildcard"
// @Param			offset		query	uint	false	"The offset of the first Transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Transactions to return. Defaults to no limit."
func (co Controller) GetTransactions(c *gin.Context) {
	filter, err := transactionFilter(c)
	if err != nil {
		abort(c, err)
		return
	}

	transactions, err := co.Ledger.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		abort(c, err)
		return
	}

	n, err := co.names(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		data = append(data, n.transaction(c, t))
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: data})
}

// transactionFilter parses the query string into a filter.
func transactionFilter(c *gin.Context) (ledger.TransactionFilter, error) {
	from, err := httputil.ParseDate(c.Query("from"))
	if err != nil {
		return ledger.TransactionFilter{}, err
	}

	until, err := httputil.ParseDate(c.Query("until"))
	if err != nil {
		return ledger.TransactionFilter{}, err
	}

	transactionType := models.TransactionType(c.Query("type"))
	if transactionType != "" && !transactionType.Valid() {
		return ledger.TransactionFilter{}, models.ErrTransactionTypeInvalid
	}

	offset, err := httputil.QueryInt(c, "offset", 0)
	if err != nil {
		return ledger.TransactionFilter{}, err
	}

	limit, err := httputil.QueryInt(c, "limit", 0)
	if err != nil {
		return ledger.TransactionFilter{}, err
	}

	return ledger.TransactionFilter{
		From:         from,
		Until:        until,
		Type:         transactionType,
		CategoryName: c.Query("category"),
		PersonName:   c.Query("person"),
		Description:  c.Query("description"),
		Offset:       offset,
		Limit:        limit,
	}, nil
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	transaction, ok, err := co.Ledger.GetTransaction(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}

	if !ok {
		abort(c, httperrors.ErrNotFound)
		return
	}

	data, err := co.transaction(c, transaction)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Update transaction
// @Description	Updates an existing transaction. Only values to be updated need to be specified.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		string					true	"ID formatted as string"
// @Param			transaction	body		ledger.TransactionPatch	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	var patch ledger.TransactionPatch
	if err := httputil.BindData(c, &patch); err != nil {
		abort(c, err)
		return
	}

	transaction, ok, err := co.Ledger.UpdateTransaction(c.Request.Context(), id, patch)
	if err != nil {
		abort(c, err)
		return
	}

	if !ok {
		abort(c, httperrors.ErrNotFound)
		return
	}

	data, err := co.transaction(c, transaction)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction together with its deductions
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	ok, err := co.Ledger.DeleteTransaction(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}

	if !ok {
		abort(c, httperrors.ErrNotFound)
		return
	}

	c.Status(http.StatusNoContent)
}
