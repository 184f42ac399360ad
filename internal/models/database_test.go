package models_test

import (
	"github.com/pocketledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestConnectInvalidPath() {
	err := models.Connect("/does-not-exist/ledger.db")
	suite.Assert().Error(err)
}

func (suite *TestSuiteStandard) TestUserEmailNotUnique() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.User{
		Email:        user.Email,
		PasswordHash: "does not matter",
	}).Error
	suite.Assert().ErrorIs(err, models.ErrUserEmailNotUnique)
}

func (suite *TestSuiteStandard) TestUserEmailNormalized() {
	user := suite.createTestUser(models.User{Email: "  Someone@Example.COM "})
	suite.Assert().Equal("someone@example.com", user.Email)
}

func (suite *TestSuiteStandard) TestClosedDatabaseReturnsGeneralError() {
	suite.CloseDB()

	var users []models.User
	err := models.DB.Find(&users).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
