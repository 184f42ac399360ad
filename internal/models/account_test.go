package models_test

import (
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestAccountComputeBalance() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})

	_ = suite.createTestTransaction(models.Transaction{
		UserID:      user.ID,
		AccountID:   account.ID,
		Type:        models.TransactionTypeIncome,
		Amount:      decimal.NewFromInt(500),
		Description: "Salary",
	})
	_ = suite.createTestTransaction(models.Transaction{
		UserID:      user.ID,
		AccountID:   account.ID,
		Type:        models.TransactionTypeExpense,
		Amount:      decimal.NewFromInt(200),
		Description: "Groceries",
	})

	// Transfers do not change the account balance
	_ = suite.createTestTransaction(models.Transaction{
		UserID:      user.ID,
		AccountID:   account.ID,
		Type:        models.TransactionTypeTransfer,
		Amount:      decimal.NewFromInt(50),
		Description: "To broker",
	})

	balance, err := account.ComputeBalance(models.DB)
	suite.Require().NoError(err)
	suite.Assert().True(balance.Equal(decimal.NewFromInt(300)), "balance is %s, expected 300", balance)

	// The stored balance was kept in sync by the mutations
	var reloaded models.Account
	suite.Require().NoError(models.DB.First(&reloaded, "id = ?", account.ID).Error)
	suite.Assert().True(reloaded.Balance.Equal(balance), "stored balance %s drifted from computed %s", reloaded.Balance, balance)
}

func (suite *TestSuiteStandard) TestAccountComputeBalanceNotCreated() {
	balance, err := models.Account{}.ComputeBalance(models.DB)
	suite.Require().NoError(err)
	suite.Assert().True(balance.IsZero(), "an account without an ID must have a zero balance")
}

func (suite *TestSuiteStandard) TestAccountComputeBalanceEmpty() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})

	balance, err := account.ComputeBalance(models.DB)
	suite.Require().NoError(err)
	suite.Assert().True(balance.IsZero())
}

func (suite *TestSuiteStandard) TestRecalculateBalances() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})

	_ = suite.createTestTransaction(models.Transaction{
		UserID:      user.ID,
		AccountID:   account.ID,
		Type:        models.TransactionTypeIncome,
		Amount:      decimal.NewFromInt(120),
		Description: "Refund",
	})

	// Corrupt the stored balance to simulate drift
	err := models.DB.Model(&account).Select("Balance").Updates(models.Account{Balance: decimal.NewFromInt(9999)}).Error
	suite.Require().NoError(err)

	changes, err := models.RecalculateBalances(models.DB)
	suite.Require().NoError(err)
	suite.Require().Len(changes, 1)
	suite.Assert().Equal(account.ID, changes[0].AccountID)
	suite.Assert().True(changes[0].OldBalance.Equal(decimal.NewFromInt(9999)))
	suite.Assert().True(changes[0].NewBalance.Equal(decimal.NewFromInt(120)))

	// The sweep is idempotent: a second run reports no changes
	changes, err = models.RecalculateBalances(models.DB)
	suite.Require().NoError(err)
	suite.Assert().Len(changes, 0)
}

func (suite *TestSuiteStandard) TestAccountTypeInvalid() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.Account{
		UserID: user.ID,
		Name:   "Shoebox",
		Type:   "shoebox",
	}).Error
	suite.Assert().ErrorIs(err, models.ErrAccountTypeInvalid)
}

func (suite *TestSuiteStandard) TestAccountTypeDisplay() {
	suite.Assert().Equal("Credit Card", models.AccountTypeCreditCard.Display())
	suite.Assert().Equal("Checking", models.AccountTypeChecking.Display())
}

func (suite *TestSuiteStandard) TestAccountNameNotUnique() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})

	err := models.DB.Create(&models.Account{
		UserID: user.ID,
		Name:   account.Name,
		Type:   models.AccountTypeSavings,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrAccountNameNotUnique)

	// The same name is fine for another user
	other := suite.createTestUser(models.User{})
	err = models.DB.Create(&models.Account{
		UserID: other.ID,
		Name:   account.Name,
		Type:   models.AccountTypeSavings,
	}).Error
	suite.Assert().NoError(err)
}

func (suite *TestSuiteStandard) TestDeleteAccountCascades() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})
	other := suite.createTestAccount(models.Account{UserID: user.ID})

	_ = suite.createTestTransaction(models.Transaction{
		UserID:      user.ID,
		AccountID:   account.ID,
		Type:        models.TransactionTypeExpense,
		Amount:      decimal.NewFromInt(10),
		Description: "Coffee",
	})
	kept := suite.createTestTransaction(models.Transaction{
		UserID:      user.ID,
		AccountID:   other.ID,
		Type:        models.TransactionTypeIncome,
		Amount:      decimal.NewFromInt(75),
		Description: "Found money",
	})

	suite.Require().NoError(models.DeleteAccount(models.DB, account))

	var count int64
	suite.Require().NoError(models.DB.Model(&models.Transaction{}).Where("account_id = ?", account.ID).Count(&count).Error)
	suite.Assert().Zero(count, "transactions of a deleted account must be deleted with it")

	// The other account and its transactions are untouched
	var reloaded models.Transaction
	suite.Assert().NoError(models.DB.First(&reloaded, "id = ?", kept.ID).Error)
}
