package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	ledger_uuid "github.com/pocketledger/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	AccountID   uuid.UUID              `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`          // ID of the account the transaction is booked on
	CategoryID  *uuid.UUID             `json:"categoryId" example:"dafd9a74-6aeb-46b9-9f5a-cfca624fea85"`         // Optional ID of the category
	Type        models.TransactionType `json:"type" example:"expense" default:"expense"`                          // Type of the transaction
	Amount      decimal.Decimal        `json:"amount" example:"14.50"`                                            // Amount, always positive
	Description string                 `json:"description" example:"Weekly groceries" default:""`                 // Description of the transaction
	Note        string                 `json:"note" example:"Paid in cash" default:""`                            // Notes about the transaction
	Date        time.Time              `json:"date" example:"2026-08-12T00:00:00Z"`                               // Calendar date of the booking
}

func (editable TransactionEditable) model(user models.User) models.Transaction {
	return models.Transaction{
		UserID:      user.ID,
		AccountID:   editable.AccountID,
		CategoryID:  editable.CategoryID,
		Type:        editable.Type,
		Amount:      editable.Amount,
		Description: editable.Description,
		Note:        editable.Note,
		Date:        editable.Date,
	}
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable

	// These fields are computed
	TypeDisplay string `json:"typeDisplay" example:"Expense"` // Human readable transaction type
}

func newTransaction(model models.Transaction) Transaction {
	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			AccountID:   model.AccountID,
			CategoryID:  model.CategoryID,
			Type:        model.Type,
			Amount:      model.Amount,
			Description: model.Description,
			Note:        model.Note,
			Date:        model.Date,
		},
		TypeDisplay: model.Type.Display(),
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionSummaryResponse struct {
	Data  *models.TransactionSummary `json:"data"`                                                          // The rollup over the filtered transactions
	Error *string                    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	AccountID  ledger_uuid.UUID `form:"account"`                                                // By ID of the account
	CategoryID ledger_uuid.UUID `form:"category"`                                               // By ID of the category
	Type       string           `form:"type" filterField:"false"`                               // By transaction type
	FromDate   time.Time        `form:"fromDate" filterField:"false" time_format:"2006-01-02"`  // Transactions on or after this date
	UntilDate  time.Time        `form:"untilDate" filterField:"false" time_format:"2006-01-02"` // Transactions on or before this date
	Offset     uint             `form:"offset" filterField:"false"`                             // The offset of the first transaction returned. Defaults to 0.
	Limit      int              `form:"limit" filterField:"false"`                              // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	var categoryID *uuid.UUID
	if f.CategoryID.UUID != uuid.Nil {
		id := f.CategoryID.UUID
		categoryID = &id
	}

	return models.Transaction{
		AccountID:  f.AccountID.UUID,
		CategoryID: categoryID,
	}
}
