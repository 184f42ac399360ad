package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestTransactionAmountNotPositive() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		err := models.CreateTransaction(models.DB, &models.Transaction{
			UserID:      user.ID,
			AccountID:   account.ID,
			Type:        models.TransactionTypeExpense,
			Amount:      amount,
			Description: "Invalid",
		})
		suite.Assert().ErrorIs(err, models.ErrAmountNotPositive)
	}

	// The rejected mutations had no side effects
	var reloaded models.Account
	suite.Require().NoError(models.DB.First(&reloaded, "id = ?", account.ID).Error)
	suite.Assert().True(reloaded.Balance.IsZero())
}

func (suite *TestSuiteStandard) TestTransactionTypeInvalid() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})

	err := models.CreateTransaction(models.DB, &models.Transaction{
		UserID:      user.ID,
		AccountID:   account.ID,
		Type:        "donation",
		Amount:      decimal.NewFromInt(1),
		Description: "Invalid",
	})
	suite.Assert().ErrorIs(err, models.ErrTransactionTypeInvalid)
}

func (suite *TestSuiteStandard) TestTransactionAccountOfOtherUser() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	foreign := suite.createTestAccount(models.Account{UserID: other.ID})

	err := models.CreateTransaction(models.DB, &models.Transaction{
		UserID:      user.ID,
		AccountID:   foreign.ID,
		Type:        models.TransactionTypeExpense,
		Amount:      decimal.NewFromInt(5),
		Description: "Not yours",
	})

	// Another user's account is reported like a missing one
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestTransactionAccountMissing() {
	user := suite.createTestUser(models.User{})

	err := models.CreateTransaction(models.DB, &models.Transaction{
		UserID:      user.ID,
		AccountID:   uuid.New(),
		Type:        models.TransactionTypeExpense,
		Amount:      decimal.NewFromInt(5),
		Description: "Nowhere",
	})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestTransactionCategoryOfOtherUser() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})
	foreign := suite.createTestCategory(models.Category{UserID: other.ID})

	err := models.CreateTransaction(models.DB, &models.Transaction{
		UserID:      user.ID,
		AccountID:   account.ID,
		CategoryID:  &foreign.ID,
		Type:        models.TransactionTypeExpense,
		Amount:      decimal.NewFromInt(5),
		Description: "Not your category",
	})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestTransactionDateDefaults() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})

	transaction := suite.createTestTransaction(models.Transaction{
		UserID:      user.ID,
		AccountID:   account.ID,
		Type:        models.TransactionTypeExpense,
		Amount:      decimal.NewFromInt(1),
		Description: "No date set",
	})

	suite.Assert().False(transaction.Date.IsZero())
	suite.Assert().Equal(time.UTC, transaction.Date.Location())
}

func (suite *TestSuiteStandard) TestTransactionMoveBetweenAccounts() {
	user := suite.createTestUser(models.User{})
	source := suite.createTestAccount(models.Account{UserID: user.ID})
	destination := suite.createTestAccount(models.Account{UserID: user.ID})

	transaction := suite.createTestTransaction(models.Transaction{
		UserID:      user.ID,
		AccountID:   source.ID,
		Type:        models.TransactionTypeExpense,
		Amount:      decimal.NewFromInt(42),
		Description: "Moves around",
	})

	err := models.UpdateTransaction(models.DB, &transaction, models.Transaction{AccountID: destination.ID}, "AccountID")
	suite.Require().NoError(err)

	var reloadedSource, reloadedDestination models.Account
	suite.Require().NoError(models.DB.First(&reloadedSource, "id = ?", source.ID).Error)
	suite.Require().NoError(models.DB.First(&reloadedDestination, "id = ?", destination.ID).Error)

	suite.Assert().True(reloadedSource.Balance.IsZero(), "source balance is %s, expected 0", reloadedSource.Balance)
	suite.Assert().True(reloadedDestination.Balance.Equal(decimal.NewFromInt(-42)), "destination balance is %s, expected -42", reloadedDestination.Balance)

	// Money is conserved: the sum of both balance changes is zero when
	// ignoring the moved transaction's own amount
	sourceChange := reloadedSource.Balance.Sub(decimal.NewFromInt(-42))
	destinationChange := reloadedDestination.Balance.Sub(decimal.Zero)
	suite.Assert().True(sourceChange.Add(destinationChange).IsZero())
}

func (suite *TestSuiteStandard) TestTransactionUpdateAmountRecomputes() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})

	transaction := suite.createTestTransaction(models.Transaction{
		UserID:      user.ID,
		AccountID:   account.ID,
		Type:        models.TransactionTypeIncome,
		Amount:      decimal.NewFromInt(100),
		Description: "Paycheck",
	})

	err := models.UpdateTransaction(models.DB, &transaction, models.Transaction{Amount: decimal.NewFromInt(150)}, "Amount")
	suite.Require().NoError(err)

	var reloaded models.Account
	suite.Require().NoError(models.DB.First(&reloaded, "id = ?", account.ID).Error)
	suite.Assert().True(reloaded.Balance.Equal(decimal.NewFromInt(150)))
}

func (suite *TestSuiteStandard) TestTransactionDeleteRecomputes() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})

	transaction := suite.createTestTransaction(models.Transaction{
		UserID:      user.ID,
		AccountID:   account.ID,
		Type:        models.TransactionTypeIncome,
		Amount:      decimal.NewFromInt(35),
		Description: "Short-lived",
	})

	suite.Require().NoError(models.DeleteTransaction(models.DB, transaction))

	var reloaded models.Account
	suite.Require().NoError(models.DB.First(&reloaded, "id = ?", account.ID).Error)
	suite.Assert().True(reloaded.Balance.IsZero())
}
