package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
		r.OPTIONS("/summary", httputil.OptionsGet)
		r.GET("/summary", GetTransactionSummary)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// getTransaction loads the transaction if it exists and belongs to the
// authenticated user. A foreign transaction is indistinguishable from a
// missing one.
func getTransaction(c *gin.Context) (models.Transaction, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.Transaction{}, err
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, "id = ? AND user_id = ?", uri.ID.UUID, currentUser(c).ID).Error
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// filteredTransactions loads the user's transactions matching the query
// string filters, ordered by date descending.
func filteredTransactions(c *gin.Context, filter TransactionQueryFilter, paginate bool) ([]models.Transaction, int64, error) {
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("date DESC").
		Where("user_id = ?", currentUser(c).ID).
		Where(&filterModel, queryFields...)

	if filter.Type != "" {
		transactionType := models.TransactionType(filter.Type)
		if !transactionType.Valid() {
			return nil, 0, models.ErrTransactionTypeInvalid
		}
		q = q.Where("type = ?", transactionType)
	}

	if slices.Contains(setFields, "FromDate") {
		q = q.Where("date >= ?", filter.FromDate)
	}

	if slices.Contains(setFields, "UntilDate") {
		q = q.Where("date <= ?", filter.UntilDate)
	}

	if paginate {
		// Set the offset. Does not need checking since the default is 0
		q = q.Offset(int(filter.Offset))

		// Default to 50 transactions and set the limit
		limit := 50
		if slices.Contains(setFields, "Limit") {
			limit = filter.Limit
		}
		q = q.Limit(limit)
	}

	var transactions []models.Transaction
	err := q.Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	return transactions, count, nil
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
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	_, err := getTransaction(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create transaction
// @Description	Creates a new transaction and updates the account balance
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	transaction := editable.model(currentUser(c))

	err = models.CreateTransaction(models.DB, &transaction)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusCreated, TransactionResponse{Data: &data})
}

// @Summary		Get transactions
// @Description	Returns a list of the user's transactions
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			account		query	string	false	"Filter by account ID"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			type		query	string	false	"Filter by transaction type"
// @Param			fromDate	query	string	false	"Transactions on or after this date (YYYY-MM-DD)"
// @Param			untilDate	query	string	false	"Transactions on or before this date (YYYY-MM-DD)"
// @Param			offset		query	uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of transactions to return. Defaults to 50."
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &s})
		return
	}

	transactions, count, err := filteredTransactions(c, filter, true)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(transaction))
	}

	limit := 50
	if c.Request.URL.Query().Has("limit") {
		limit = filter.Limit
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get transaction summary
// @Description	Returns totals and counts per transaction type for the filtered transactions
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionSummaryResponse
// @Failure		400	{object}	TransactionSummaryResponse
// @Failure		500	{object}	TransactionSummaryResponse
// @Router			/v1/transactions/summary [get]
// @Param			account		query	string	false	"Filter by account ID"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			type		query	string	false	"Filter by transaction type"
// @Param			fromDate	query	string	false	"Transactions on or after this date (YYYY-MM-DD)"
// @Param			untilDate	query	string	false	"Transactions on or before this date (YYYY-MM-DD)"
func GetTransactionSummary(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, TransactionSummaryResponse{Error: &s})
		return
	}

	transactions, _, err := filteredTransactions(c, filter, false)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionSummaryResponse{Error: &s})
		return
	}

	summary := models.Summarize(transactions)
	c.JSON(http.StatusOK, TransactionSummaryResponse{Data: &summary})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	transaction, err := getTransaction(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Update transaction
// @Description	Update an existing transaction. Only values to be updated need to be specified. The balances of all affected accounts are updated.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	transaction, err := getTransaction(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	var data TransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	err = models.UpdateTransaction(models.DB, &transaction, data.model(currentUser(c)), updateFields...)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	r := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &r})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction and updates the account balance
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	transaction, err := getTransaction(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DeleteTransaction(models.DB, transaction)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
