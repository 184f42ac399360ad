package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is the closed set of transaction kinds.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

var transactionTypeDisplay = map[TransactionType]string{
	TransactionTypeIncome:   "Income",
	TransactionTypeExpense:  "Expense",
	TransactionTypeTransfer: "Transfer",
}

// Display returns the human readable name for the transaction type.
func (t TransactionType) Display() string {
	return transactionTypeDisplay[t]
}

// Valid reports whether the transaction type is one of the known kinds.
func (t TransactionType) Valid() bool {
	_, ok := transactionTypeDisplay[t]
	return ok
}

// Transaction represents a single booking on an account.
//
// A transaction always belongs to exactly one account and to at most one
// category. Account and category must belong to the same user as the
// transaction itself.
type Transaction struct {
	DefaultModel
	User        User      `json:"-"`
	UserID      uuid.UUID
	Account     Account `json:"-"`
	AccountID   uuid.UUID
	Category    Category `json:"-"`
	CategoryID  *uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Description string
	Note        string
	Date        time.Time // The calendar date of the booking, distinct from CreatedAt
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	// Enforce dates to be in UTC
	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - validates the amount and the transaction type
//   - sets the timezone for the date to UTC
//   - trims whitespace from string fields
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Description = strings.TrimSpace(t.Description)
	t.Note = strings.TrimSpace(t.Note)

	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	// Ensure that the category ID is nil and not a pointer to a nil UUID
	if t.CategoryID != nil && *t.CategoryID == uuid.Nil {
		t.CategoryID = nil
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Transaction)
	return t.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the referenced account and category before
// committing an update to the database.
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Transaction)
	if !ok {
		// Batch updates (e.g. detaching a deleted category) bypass the
		// reference checks, they never change ownership
		return nil
	}

	if tx.Statement.Changed("Amount") && !toSave.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if tx.Statement.Changed("Type") && !toSave.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	if tx.Statement.Changed("AccountID") || tx.Statement.Changed("CategoryID") {
		// The owner never changes on update
		toSave.UserID = t.UserID

		if !tx.Statement.Changed("AccountID") {
			toSave.AccountID = t.AccountID
		}

		return t.checkIntegrity(tx, toSave)
	}

	return nil
}

// CreateTransaction persists the transaction and recomputes the affected
// account's balance.
//
// Both writes happen in one database transaction: when the recomputation
// fails, the mutation is rolled back with it so that a stale balance is
// never observable.
func CreateTransaction(db *gorm.DB, transaction *Transaction) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(transaction).Error
		if err != nil {
			return err
		}

		return RecomputeBalance(tx, transaction.AccountID)
	})
}

// UpdateTransaction applies the changes to the fields passed and
// recomputes the balance of every account touched by the mutation. When
// the transaction moves to another account, that is both the old and the
// new account.
func UpdateTransaction(db *gorm.DB, transaction *Transaction, changes Transaction, fields ...any) error {
	oldAccountID := transaction.AccountID

	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(transaction).Select("", fields...).Updates(changes).Error
		if err != nil {
			return err
		}

		err = RecomputeBalance(tx, transaction.AccountID)
		if err != nil {
			return err
		}

		if transaction.AccountID != oldAccountID {
			return RecomputeBalance(tx, oldAccountID)
		}

		return nil
	})
}

// DeleteTransaction removes the transaction and recomputes the affected
// account's balance.
func DeleteTransaction(db *gorm.DB, transaction Transaction) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Delete(&transaction).Error
		if err != nil {
			return err
		}

		return RecomputeBalance(tx, transaction.AccountID)
	})
}

// checkIntegrity verifies that the referenced account and category exist
// and belong to the transaction's user.
//
// A resource of another user is reported exactly like a missing one so
// that the API never leaks whether it exists.
func (t *Transaction) checkIntegrity(tx *gorm.DB, toSave Transaction) error {
	err := tx.First(&Account{}, "id = ? AND user_id = ?", toSave.AccountID, toSave.UserID).Error
	if err != nil {
		return err
	}

	if toSave.CategoryID != nil && *toSave.CategoryID != uuid.Nil {
		err = tx.First(&Category{}, "id = ? AND user_id = ?", *toSave.CategoryID, toSave.UserID).Error
		if err != nil {
			return err
		}
	}

	return nil
}
