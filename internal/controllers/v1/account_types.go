package v1

import (
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountEditable represents all user configurable parameters
type AccountEditable struct {
	Name     string             `json:"name" example:"Checking" default:""`                       // Name of the account
	Type     models.AccountType `json:"type" example:"checking" default:"other"`                  // Type of the account
	Note     string             `json:"note" example:"Main account at the local bank" default:""` // Notes about the account
	Archived bool               `json:"archived" example:"true" default:"false"`                  // Is the account archived?
}

func (editable AccountEditable) model(user models.User) models.Account {
	return models.Account{
		UserID:   user.ID,
		Name:     editable.Name,
		Type:     editable.Type,
		Note:     editable.Note,
		Archived: editable.Archived,
	}
}

type Account struct {
	models.DefaultModel
	AccountEditable

	// These fields are computed
	Balance          decimal.Decimal `json:"balance" example:"271.91"`               // Balance derived from the account's transactions
	TypeDisplay      string          `json:"typeDisplay" example:"Checking Account"` // Human readable account type
	TransactionCount int64           `json:"transactionCount" example:"37"`          // Number of transactions on this account
}

func newAccount(db *gorm.DB, model models.Account) (Account, error) {
	var count int64
	err := db.Model(&models.Transaction{}).Where("account_id = ?", model.ID).Count(&count).Error
	if err != nil {
		return Account{}, err
	}

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name:     model.Name,
			Type:     model.Type,
			Note:     model.Note,
			Archived: model.Archived,
		},
		Balance:          model.Balance,
		TypeDisplay:      model.Type.Display(),
		TransactionCount: count,
	}, nil
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`                                                          // List of accounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// AccountBalance is the per-account rollup.
type AccountBalance struct {
	AccountName      string          `json:"accountName" example:"Checking"`  // Name of the account
	CurrentBalance   decimal.Decimal `json:"currentBalance" example:"271.91"` // The stored balance of the account
	TotalIncome      decimal.Decimal `json:"totalIncome" example:"2500"`      // Sum of all income transactions
	TotalExpenses    decimal.Decimal `json:"totalExpenses" example:"2228.09"` // Sum of all expense transactions
	TransactionCount int             `json:"transactionCount" example:"37"`   // Number of transactions on this account
}

type AccountBalanceResponse struct {
	Data  *AccountBalance `json:"data"`                                                          // Balance data for the account
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecalculateResponse struct {
	Data  []models.BalanceChange `json:"data"`                                            // Accounts whose stored balance was corrected
	Error *string                `json:"error" example:"an error occurred on the server"` // The error, if any occurred
}

type AccountQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Note     string `form:"note" filterField:"false"`   // By note
	Type     string `form:"type" filterField:"false"`   // By account type
	Archived bool   `form:"archived"`                   // Is the account archived?
	Search   string `form:"search" filterField:"false"` // By string in name or note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first account returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of accounts to return. Defaults to 50.
}
