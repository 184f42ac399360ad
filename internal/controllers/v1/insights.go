package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/insights"
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// RegisterInsightRoutes registers the routes for insights with
// the RouterGroup that is passed.
func RegisterInsightRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetInsights)
}

// MonthFigures are the aggregates for one 30-day window.
type MonthFigures struct {
	Income   decimal.Decimal `json:"income" example:"2500"`   // Sum of all income in the window
	Expenses decimal.Decimal `json:"expenses" example:"1780"` // Sum of all expenses in the window
	Balance  decimal.Decimal `json:"balance" example:"720"`   // Income minus expenses and transfers
}

type SpendingData struct {
	CurrentMonth  MonthFigures             `json:"currentMonth"`  // The trailing 30 days
	PreviousMonth MonthFigures             `json:"previousMonth"` // Days 31 to 60 back
	TopCategories []insights.CategorySpend `json:"topCategories"` // Up to five expense categories by total
}

type InsightsResponse struct {
	Insights     []insights.Insight `json:"insights"`                                                                      // Observations in evaluation order
	SpendingData SpendingData       `json:"spendingData"`                                                                  // The figures the observations are based on
	GeneratedAt  time.Time          `json:"generatedAt" example:"2026-08-30T10:32:00Z"`                                    // Time the insights were computed
	Error        *string            `json:"error,omitempty" example:"an error occurred on the server during your request"` // The error, if any occurred
}

// @Summary		Get insights
// @Description	Derives observations from the user's transactions of the last 60 days
// @Tags			Insights
// @Produce		json
// @Success		200	{object}	InsightsResponse
// @Failure		500	{object}	InsightsResponse
// @Router			/v1/insights [get]
func GetInsights(c *gin.Context) {
	user := currentUser(c)

	now := time.Now().UTC()
	currentStart := now.AddDate(0, 0, -30)
	previousStart := now.AddDate(0, 0, -60)

	var current []models.Transaction
	err := models.DB.
		Preload("Category").
		Where("user_id = ? AND date > ? AND date <= ?", user.ID, currentStart, now).
		Find(&current).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsightsResponse{Error: &s})
		return
	}

	var previous []models.Transaction
	err = models.DB.
		Where("user_id = ? AND date > ? AND date <= ?", user.ID, previousStart, currentStart).
		Find(&previous).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsightsResponse{Error: &s})
		return
	}

	figures := insights.Compute(current, previous, now)

	c.JSON(http.StatusOK, InsightsResponse{
		Insights: insights.Generate(figures),
		SpendingData: SpendingData{
			CurrentMonth: MonthFigures{
				Income:   figures.Income,
				Expenses: figures.Expenses,
				Balance:  figures.Balance,
			},
			PreviousMonth: MonthFigures{
				Income:   figures.PreviousIncome,
				Expenses: figures.PreviousExpenses,
				Balance:  figures.PreviousBalance,
			},
			TopCategories: figures.TopCategories,
		},
		GeneratedAt: now,
	})
}
