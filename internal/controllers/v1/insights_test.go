package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestInsightsEmpty() {
	token := accessToken(suite.T())

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/insights", "", bearer(token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.InsightsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Len(suite.T(), response.Insights, 0, "A user without transactions gets no insights")
	assert.True(suite.T(), response.SpendingData.CurrentMonth.Income.IsZero())
	assert.True(suite.T(), response.SpendingData.CurrentMonth.Expenses.IsZero())
	assert.WithinDuration(suite.T(), time.Now(), response.GeneratedAt, time.Minute)
}

func (suite *TestSuiteStandard) TestInsights() {
	token := accessToken(suite.T())

	a := createTestAccount(suite.T(), token, v1.AccountEditable{})
	groceries := createTestCategory(suite.T(), token, v1.CategoryEditable{Name: "Groceries"})
	groceriesID := groceries.Data.ID

	now := time.Now().In(time.UTC)

	// Current window
	_ = createTestTransaction(suite.T(), token, v1.TransactionEditable{
		AccountID:   a.Data.ID,
		Type:        models.TransactionTypeIncome,
		Amount:      decimal.NewFromInt(1000),
		Description: "Salary",
		Date:        now.AddDate(0, 0, -1),
	})

	_ = createTestTransaction(suite.T(), token, v1.TransactionEditable{
		AccountID:  a.Data.ID,
		CategoryID: &groceriesID,
		Type:       models.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(300),
		Date:       now.AddDate(0, 0, -2),
	})

	// Previous window
	_ = createTestTransaction(suite.T(), token, v1.TransactionEditable{
		AccountID: a.Data.ID,
		Type:      models.TransactionTypeExpense,
		Amount:    decimal.NewFromInt(350),
		Date:      now.AddDate(0, 0, -45),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/insights", "", bearer(token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.InsightsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.SpendingData.CurrentMonth.Income.Equal(decimal.NewFromInt(1000)), "Income is %s", response.SpendingData.CurrentMonth.Income)
	assert.True(suite.T(), response.SpendingData.CurrentMonth.Expenses.Equal(decimal.NewFromInt(300)), "Expenses is %s", response.SpendingData.CurrentMonth.Expenses)
	assert.True(suite.T(), response.SpendingData.CurrentMonth.Balance.Equal(decimal.NewFromInt(700)), "Balance is %s", response.SpendingData.CurrentMonth.Balance)
	assert.True(suite.T(), response.SpendingData.PreviousMonth.Expenses.Equal(decimal.NewFromInt(350)), "Previous expenses is %s", response.SpendingData.PreviousMonth.Expenses)

	require.Len(suite.T(), response.SpendingData.TopCategories, 1)
	assert.Equal(suite.T(), "Groceries", response.SpendingData.TopCategories[0].Category)
	assert.True(suite.T(), response.SpendingData.TopCategories[0].Amount.Equal(decimal.NewFromInt(300)))

	require.NotEmpty(suite.T(), response.Insights)

	titles := make([]string, 0, len(response.Insights))
	for _, insight := range response.Insights {
		titles = append(titles, insight.Title)
	}

	// 700 of 1000 saved is a 70% savings rate
	assert.Equal(suite.T(), "Excellent Financial Health", titles[0])
	assert.Contains(suite.T(), titles, "Food & Dining Spending")
	assert.Contains(suite.T(), titles, "Single Income Source")
}

// TestInsightsUserScoping verifies that the insights only consider the
// transactions of the authenticated user.
func (suite *TestSuiteStandard) TestInsightsUserScoping() {
	owner := accessToken(suite.T())
	stranger := accessToken(suite.T())

	_ = createTestTransaction(suite.T(), owner, v1.TransactionEditable{
		Type:   models.TransactionTypeExpense,
		Amount: decimal.NewFromInt(100),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/insights", "", bearer(stranger))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.InsightsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.SpendingData.CurrentMonth.Expenses.IsZero())
	assert.Len(suite.T(), response.Insights, 0)
}
