package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterAccountRoutes registers the routes for accounts with
// the RouterGroup that is passed.
func RegisterAccountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAccountList)
		r.GET("", GetAccounts)
		r.POST("", CreateAccount)
		r.OPTIONS("/recalculate-balances", httputil.OptionsPost)
		r.POST("/recalculate-balances", RecalculateBalances)
	}

	// Account with ID
	{
		r.OPTIONS("/:id", OptionsAccountDetail)
		r.GET("/:id", GetAccount)
		r.GET("/:id/transactions", GetAccountTransactions)
		r.GET("/:id/balance", GetAccountBalance)
		r.PATCH("/:id", UpdateAccount)
		r.DELETE("/:id", DeleteAccount)
	}
}

// getAccount loads the account if it exists and belongs to the
// authenticated user. A foreign account is indistinguishable from a
// missing one.
func getAccount(c *gin.Context) (models.Account, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.Account{}, err
	}

	var account models.Account
	err = models.DB.First(&account, "id = ? AND user_id = ?", uri.ID.UUID, currentUser(c).ID).Error
	if err != nil {
		return models.Account{}, err
	}

	return account, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Router			/v1/accounts [options]
func OptionsAccountList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id} [options]
func OptionsAccountDetail(c *gin.Context) {
	_, err := getAccount(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create account
// @Description	Creates a new account with a balance of zero
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		201		{object}	AccountResponse
// @Failure		400		{object}	AccountResponse
// @Failure		500		{object}	AccountResponse
// @Param			account	body		AccountEditable	true	"Account"
// @Router			/v1/accounts [post]
func CreateAccount(c *gin.Context) {
	var editable AccountEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{Error: &s})
		return
	}

	account := editable.model(currentUser(c))

	err = models.DB.Create(&account).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{Error: &s})
		return
	}

	data, err := newAccount(models.DB, account)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, AccountResponse{Data: &data})
}

// @Summary		Get accounts
// @Description	Returns a list of the user's accounts
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountListResponse
// @Failure		400	{object}	AccountListResponse
// @Failure		500	{object}	AccountListResponse
// @Router			/v1/accounts [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			type		query	string	false	"Filter by account type"
// @Param			archived	query	bool	false	"Is the account archived?"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first account returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of accounts to return. Defaults to 50."
func GetAccounts(c *gin.Context) {
	var filter AccountQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("name ASC").
		Where("user_id = ?", currentUser(c).ID).
		Where(&models.Account{Archived: filter.Archived}, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	if filter.Type != "" {
		accountType := models.AccountType(filter.Type)
		if !accountType.Valid() {
			s := models.ErrAccountTypeInvalid.Error()
			c.JSON(http.StatusBadRequest, AccountListResponse{Error: &s})
			return
		}
		q = q.Where("type = ?", accountType)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 accounts and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var accounts []models.Account
	err := q.Find(&accounts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountListResponse{Error: &s})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountListResponse{Error: &s})
		return
	}

	data := make([]Account, 0)
	for _, account := range accounts {
		apiResource, err := newAccount(models.DB, account)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), AccountListResponse{Error: &s})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, AccountListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get account
// @Description	Returns a specific account
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountResponse
// @Failure		400	{object}	AccountResponse
// @Failure		404	{object}	AccountResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id} [get]
func GetAccount(c *gin.Context) {
	account, err := getAccount(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{Error: &s})
		return
	}

	data, err := newAccount(models.DB, account)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &data})
}

// @Summary		Get account transactions
// @Description	Returns the transactions booked on a specific account
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		404	{object}	TransactionListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id}/transactions [get]
func GetAccountTransactions(c *gin.Context) {
	account, err := getAccount(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	transactions, err := account.Transactions(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: data})
}

// @Summary		Get account balance
// @Description	Returns the balance of the account together with its income and expense totals
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountBalanceResponse
// @Failure		400	{object}	AccountBalanceResponse
// @Failure		404	{object}	AccountBalanceResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id}/balance [get]
func GetAccountBalance(c *gin.Context) {
	account, err := getAccount(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountBalanceResponse{Error: &s})
		return
	}

	transactions, err := account.Transactions(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountBalanceResponse{Error: &s})
		return
	}

	summary := models.Summarize(transactions)

	c.JSON(http.StatusOK, AccountBalanceResponse{
		Data: &AccountBalance{
			AccountName:      account.Name,
			CurrentBalance:   account.Balance,
			TotalIncome:      summary.TotalIncome,
			TotalExpenses:    summary.TotalExpenses.Sub(summary.TotalTransfers),
			TransactionCount: summary.TransactionCount,
		},
	})
}

// @Summary		Recalculate balances
// @Description	Recomputes the balance of every account of the user from its transactions and corrects any drift
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	RecalculateResponse
// @Failure		500	{object}	RecalculateResponse
// @Router			/v1/accounts/recalculate-balances [post]
func RecalculateBalances(c *gin.Context) {
	// Scope the sweep to the accounts of the authenticated user
	db := models.DB.Where("user_id = ?", currentUser(c).ID).Session(&gorm.Session{})

	changes, err := models.RecalculateBalances(db)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecalculateResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, RecalculateResponse{Data: changes})
}

// @Summary		Update account
// @Description	Update an existing account. Only values to be updated need to be specified. The balance cannot be set, it is derived from the account's transactions.
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		200		{object}	AccountResponse
// @Failure		400		{object}	AccountResponse
// @Failure		404		{object}	AccountResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			account	body		AccountEditable	true	"Account"
// @Router			/v1/accounts/{id} [patch]
func UpdateAccount(c *gin.Context) {
	account, err := getAccount(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AccountEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{Error: &s})
		return
	}

	var data AccountEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{Error: &s})
		return
	}

	err = models.DB.Model(&account).Select("", updateFields...).Updates(data.model(currentUser(c))).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{Error: &s})
		return
	}

	r, err := newAccount(models.DB, account)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &r})
}

// @Summary		Delete account
// @Description	Deletes an account and all of its transactions
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id} [delete]
func DeleteAccount(c *gin.Context) {
	account, err := getAccount(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DeleteAccount(models.DB, account)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
