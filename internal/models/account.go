package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountType is the closed set of account kinds.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeCash       AccountType = "cash"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeOther      AccountType = "other"
)

var accountTypeDisplay = map[AccountType]string{
	AccountTypeChecking:   "Checking",
	AccountTypeSavings:    "Savings",
	AccountTypeCreditCard: "Credit Card",
	AccountTypeCash:       "Cash",
	AccountTypeInvestment: "Investment",
	AccountTypeOther:      "Other",
}

// Display returns the human readable name for the account type.
func (t AccountType) Display() string {
	return accountTypeDisplay[t]
}

// Valid reports whether the account type is one of the known kinds.
func (t AccountType) Valid() bool {
	_, ok := accountTypeDisplay[t]
	return ok
}

// Account represents a real-world account, e.g. a bank account or a wallet.
//
// The balance is derived from the account's transactions and is never set
// by clients. It is updated in the same database transaction as every
// transaction mutation, see RecomputeBalance.
type Account struct {
	DefaultModel
	User     User      `json:"-"`
	UserID   uuid.UUID `gorm:"uniqueIndex:account_user_id_name"`
	Name     string    `gorm:"uniqueIndex:account_user_id_name"`
	Type     AccountType
	Balance  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Note     string
	Archived bool
}

// BeforeSave validates the account type and trims whitespace from all
// strings.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)

	if a.Type == "" {
		a.Type = AccountTypeOther
	}

	if !a.Type.Valid() {
		return ErrAccountTypeInvalid
	}

	return nil
}

// BeforeUpdate validates the new account type before committing an
// update. BeforeSave only sees the already persisted values on updates.
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Account)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("Type") && !toSave.Type.Valid() {
		return ErrAccountTypeInvalid
	}

	return nil
}

// DeleteAccount removes the account together with all of its
// transactions. Accounts own their transactions, unlike categories.
func DeleteAccount(db *gorm.DB, account Account) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("account_id = ?", account.ID).Delete(&Transaction{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&account).Error
	})
}

// Transactions returns all transactions for this account.
func (a Account) Transactions(db *gorm.DB) ([]Transaction, error) {
	var transactions []Transaction

	err := db.Where("account_id = ?", a.ID).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// ComputeBalance sums the account's income transactions and subtracts its
// expense transactions.
//
// The sum is always computed from the full transaction set instead of
// applying deltas. This trades a little read work for correctness: no
// drift can accumulate from missed updates or out-of-band data edits.
func (a Account) ComputeBalance(db *gorm.DB) (decimal.Decimal, error) {
	// An account that has not been created yet has no transactions
	if a.ID == uuid.Nil {
		return decimal.Zero, nil
	}

	transactions, err := a.Transactions(db)
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for _, t := range transactions {
		switch t.Type {
		case TransactionTypeIncome:
			balance = balance.Add(t.Amount)
		case TransactionTypeExpense:
			balance = balance.Sub(t.Amount)
		}
	}

	return balance, nil
}

// RecomputeBalance recalculates the balance of the account with the ID
// passed and persists it. Only the balance field is written.
//
// Callers that mutate transactions must call this within the same
// database transaction as the mutation so that a failed recomputation
// rolls back the mutation with it.
func RecomputeBalance(tx *gorm.DB, accountID uuid.UUID) error {
	var account Account
	err := tx.First(&account, "id = ?", accountID).Error
	if err != nil {
		return err
	}

	balance, err := account.ComputeBalance(tx)
	if err != nil {
		return err
	}

	return tx.Model(&account).Select("Balance").Updates(Account{Balance: balance}).Error
}

// BalanceChange reports an account whose stored balance did not match the
// balance derived from its transactions.
type BalanceChange struct {
	AccountID   uuid.UUID       `json:"accountId" example:"d4bbe105-7c37-4c83-a03b-6d3ecf410af1"`
	AccountName string          `json:"accountName" example:"Checking"`
	OldBalance  decimal.Decimal `json:"oldBalance" example:"271.91"`
	NewBalance  decimal.Decimal `json:"newBalance" example:"308.18"`
}

// RecalculateBalances recomputes the balance of every account and
// persists every value that differs from the stored one.
//
// This is the repair path for balance drift, e.g. after a bulk import.
// Running it twice in a row produces no changes on the second run. The
// sweep is not atomic as a whole, each account is recomputed and
// persisted independently.
func RecalculateBalances(db *gorm.DB) ([]BalanceChange, error) {
	var accounts []Account
	err := db.Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	changes := make([]BalanceChange, 0)
	for _, account := range accounts {
		balance, err := account.ComputeBalance(db)
		if err != nil {
			return nil, err
		}

		if balance.Equal(account.Balance) {
			continue
		}

		err = db.Model(&account).Select("Balance").Updates(Account{Balance: balance}).Error
		if err != nil {
			return nil, err
		}

		log.Info().
			Str("account", account.Name).
			Str("oldBalance", account.Balance.String()).
			Str("newBalance", balance.String()).
			Msg("balance recalculated")

		changes = append(changes, BalanceChange{
			AccountID:   account.ID,
			AccountName: account.Name,
			OldBalance:  account.Balance,
			NewBalance:  balance,
		})
	}

	return changes, nil
}
