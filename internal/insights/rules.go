package insights

import (
	"strings"

	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// rule evaluates the figures and contributes at most one insight.
type rule func(Figures) (Insight, bool)

// rules are evaluated in exactly this order. The order is part of the
// API contract: clients render the insights as returned.
var rules = []rule{
	overallHealth,
	spendingTrend,
	topCategory,
	incomeChange,
	recommendation,
	burnRate,
	transactionSize,
	categoryDiversity,
	largeSmallSplit,
	largestExpense,
	incomeStreams,
	savingsBenchmark,
	budgetBreakdown,
	spendingVelocity,
	cashFlowProjection,
	expenseRatio,
	categoryConcentration,
}

var printer = message.NewPrinter(language.English)

// Fixed rule thresholds.
var (
	hundred              = decimal.NewFromInt(100)
	significantChange    = decimal.NewFromInt(100)
	weeksPerMonth        = decimal.NewFromFloat(4.33)
	savingsGoal          = decimal.NewFromInt(1000)
	smallPurchase        = decimal.NewFromInt(20)
	excellentSavingsRate = decimal.NewFromFloat(0.2)
	goodSavingsRate      = decimal.NewFromFloat(0.1)
	eliteSavingsRate     = decimal.NewFromFloat(0.3)
)

// money formats an amount with grouping, e.g. "1,234.56".
func money(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.InexactFloat64())
}

// percent formats a ratio that is already scaled to 0..100.
func percent(d decimal.Decimal) string {
	return printer.Sprintf("%.1f%%", d.InexactFloat64())
}

// percentage returns num/den scaled to 0..100. The denominator must be
// checked by the caller.
func percentage(num, den decimal.Decimal) decimal.Decimal {
	return num.Div(den).Mul(hundred)
}

// overallHealth classifies the savings rate or the deficit severity.
func overallHealth(f Figures) (Insight, bool) {
	if f.Income.IsZero() && f.Expenses.IsZero() {
		return Insight{}, false
	}

	if f.Balance.IsPositive() && f.Income.IsPositive() {
		rate := f.Balance.Div(f.Income)

		switch {
		case rate.GreaterThanOrEqual(excellentSavingsRate):
			return Insight{
				Title:   "Excellent Financial Health",
				Message: printer.Sprintf("You saved %s of your income in the last 30 days. Keep this up and your savings will compound nicely.", percent(rate.Mul(hundred))),
			}, true
		case rate.GreaterThanOrEqual(goodSavingsRate):
			return Insight{
				Title:   "Good Financial Health",
				Message: printer.Sprintf("You saved %s of your income in the last 30 days. Nudging this above 20%% builds wealth noticeably faster.", percent(rate.Mul(hundred))),
			}, true
		default:
			return Insight{
				Title:   "Low Savings Rate",
				Message: printer.Sprintf("You saved only %s of your income in the last 30 days. Small cuts to recurring expenses can lift this quickly.", percent(rate.Mul(hundred))),
			}, true
		}
	}

	deficit := f.Balance.Neg()
	if f.Income.IsPositive() && deficit.GreaterThan(f.Income.Div(decimal.NewFromInt(2))) {
		return Insight{
			Title:   "Serious Deficit",
			Message: printer.Sprintf("You spent %s more than you earned in the last 30 days, over half of your income. An immediate spending review is advised.", money(deficit)),
		}, true
	}

	return Insight{
		Title:   "Spending Exceeds Income",
		Message: printer.Sprintf("You spent %s more than you earned in the last 30 days. Aim to bring spending back below your income.", money(deficit)),
	}, true
}

// spendingTrend compares expenses against the previous window.
func spendingTrend(f Figures) (Insight, bool) {
	hasPrevious := f.PreviousIncome.IsPositive() || f.PreviousExpenses.IsPositive()
	change := f.Expenses.Sub(f.PreviousExpenses)

	if !hasPrevious || change.Abs().LessThanOrEqual(significantChange) {
		return Insight{}, false
	}

	// Without previous expenses every unit of spending is new
	pct := hundred
	if f.PreviousExpenses.IsPositive() {
		pct = percentage(change.Abs(), f.PreviousExpenses)
	}

	if change.IsPositive() {
		switch {
		case pct.GreaterThan(decimal.NewFromInt(30)):
			return Insight{
				Title:   "Spending Spike Detected",
				Message: printer.Sprintf("Your expenses rose %s compared to the previous 30 days, from %s to %s. Check for one-off costs or new habits.", percent(pct), money(f.PreviousExpenses), money(f.Expenses)),
			}, true
		case pct.GreaterThan(decimal.NewFromInt(10)):
			return Insight{
				Title:   "Spending Trending Up",
				Message: printer.Sprintf("Your expenses rose %s compared to the previous 30 days. Worth keeping an eye on.", percent(pct)),
			}, true
		default:
			return Insight{
				Title:   "Slight Spending Increase",
				Message: printer.Sprintf("Your expenses rose by %s compared to the previous 30 days.", money(change)),
			}, true
		}
	}

	switch {
	case pct.GreaterThan(decimal.NewFromInt(30)):
		return Insight{
			Title:   "Major Spending Drop",
			Message: printer.Sprintf("Your expenses fell %s compared to the previous 30 days, from %s to %s. Whatever you changed, it is working.", percent(pct), money(f.PreviousExpenses), money(f.Expenses)),
		}, true
	case pct.GreaterThan(decimal.NewFromInt(10)):
		return Insight{
			Title:   "Spending Trending Down",
			Message: printer.Sprintf("Your expenses fell %s compared to the previous 30 days. Nice progress.", percent(pct)),
		}, true
	default:
		return Insight{
			Title:   "Slight Spending Decrease",
			Message: printer.Sprintf("Your expenses fell by %s compared to the previous 30 days.", money(change.Abs())),
		}, true
	}
}

// Category name patterns for the top-category sub-rules.
var (
	foodPatterns          = []string{"*food*", "*dining*", "*restaurant*", "*grocer*", "*eat*"}
	transportPatterns     = []string{"*transport*", "*fuel*", "*gas*", "*car*", "*commute*", "*travel*"}
	discretionaryPatterns = []string{"*entertainment*", "*shopping*", "*leisure*", "*hobby*"}
)

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if glob.Glob(pattern, name) {
			return true
		}
	}
	return false
}

// topCategory analyzes the single largest expense category.
func topCategory(f Figures) (Insight, bool) {
	if !f.Expenses.IsPositive() || len(f.TopCategories) == 0 {
		return Insight{}, false
	}

	top := f.TopCategories[0]
	share := percentage(top.Amount, f.Expenses)
	name := strings.ToLower(top.Category)

	switch {
	case matchesAny(name, foodPatterns):
		return Insight{
			Title:   "Food & Dining Spending",
			Message: printer.Sprintf("%s is your top expense category at %s, %s of your spending. Meal planning and cooking at home are the quickest ways to trim this.", top.Category, money(top.Amount), percent(share)),
		}, true
	case matchesAny(name, transportPatterns):
		return Insight{
			Title:   "Transport Costs",
			Message: printer.Sprintf("%s is your top expense category at %s, %s of your spending. Carpooling, public transport or batching trips can bring this down.", top.Category, money(top.Amount), percent(share)),
		}, true
	case matchesAny(name, discretionaryPatterns):
		return Insight{
			Title:   "Discretionary Spending",
			Message: printer.Sprintf("%s is your top expense category at %s, %s of your spending. A monthly fun budget keeps this enjoyable and contained.", top.Category, money(top.Amount), percent(share)),
		}, true
	default:
		return Insight{
			Title:   "Top Spending Category",
			Message: printer.Sprintf("%s leads your spending with %s, %s of your expenses in the last 30 days.", top.Category, money(top.Amount), percent(share)),
		}, true
	}
}

// incomeChange compares income against the previous window.
func incomeChange(f Figures) (Insight, bool) {
	hasPrevious := f.PreviousIncome.IsPositive() || f.PreviousExpenses.IsPositive()
	change := f.Income.Sub(f.PreviousIncome)

	if !hasPrevious || change.Abs().LessThanOrEqual(significantChange) {
		return Insight{}, false
	}

	if change.IsPositive() {
		return Insight{
			Title:   "Income Increased",
			Message: printer.Sprintf("Your income grew by %s compared to the previous 30 days. Direct the extra towards savings before lifestyle creep sets in.", money(change)),
		}, true
	}

	return Insight{
		Title:   "Income Decreased",
		Message: printer.Sprintf("Your income fell by %s compared to the previous 30 days. Review upcoming expenses to stay within the smaller budget.", money(change.Abs())),
	}, true
}

// recommendation gives emergency fund guidance.
func recommendation(f Figures) (Insight, bool) {
	if f.Balance.IsNegative() {
		return Insight{
			Title:   "Stop the Bleeding",
			Message: "You are spending more than you earn. Pause non-essential purchases until your balance is positive again.",
		}, true
	}

	if !f.Expenses.IsPositive() {
		return Insight{}, false
	}

	threeMonths := f.Expenses.Mul(decimal.NewFromInt(3))
	sixMonths := f.Expenses.Mul(decimal.NewFromInt(6))

	switch {
	case f.Balance.LessThan(threeMonths):
		return Insight{
			Title:   "Build Your Emergency Fund",
			Message: printer.Sprintf("Your surplus of %s is below three months of expenses (%s). Aim for a buffer of three to six months before other goals.", money(f.Balance), money(threeMonths)),
		}, true
	case f.Balance.LessThan(sixMonths):
		return Insight{
			Title:   "Growing Safety Net",
			Message: printer.Sprintf("Your surplus covers more than three months of expenses. Keep going until you reach six months (%s).", money(sixMonths)),
		}, true
	default:
		return Insight{
			Title:   "Strong Emergency Fund",
			Message: "Your surplus covers more than six months of expenses. Consider putting further savings to work in investments.",
		}, true
	}
}

// burnRate projects the trailing week onto a month.
func burnRate(f Figures) (Insight, bool) {
	if !f.Expenses.IsPositive() || !f.WeeklyBurn.IsPositive() {
		return Insight{}, false
	}

	projected := f.WeeklyBurn.Mul(weeksPerMonth)

	if projected.GreaterThan(f.Expenses.Mul(decimal.NewFromFloat(1.2))) {
		return Insight{
			Title:   "Burn Rate Rising",
			Message: printer.Sprintf("Your last 7 days project to %s per month, well above the %s you spent over the last 30 days.", money(projected), money(f.Expenses)),
		}, true
	}

	if projected.LessThan(f.Expenses.Mul(decimal.NewFromFloat(0.8))) {
		return Insight{
			Title:   "Burn Rate Falling",
			Message: printer.Sprintf("Your last 7 days project to %s per month, well below the %s you spent over the last 30 days.", money(projected), money(f.Expenses)),
		}, true
	}

	return Insight{}, false
}

// transactionSize looks at the average expense and the daily frequency.
func transactionSize(f Figures) (Insight, bool) {
	if f.ExpenseCount == 0 {
		return Insight{}, false
	}

	if f.AverageExpense.LessThan(smallPurchase) {
		return Insight{
			Title:   "Many Small Purchases",
			Message: printer.Sprintf("Your average expense is %s. Small purchases add up, consider batching them or setting a weekly cap.", money(f.AverageExpense)),
		}, true
	}

	if f.AverageExpense.GreaterThan(largeExpenseThreshold) {
		return Insight{
			Title:   "Large Purchase Pattern",
			Message: printer.Sprintf("Your average expense is %s. A short waiting period before big purchases prevents regret buys.", money(f.AverageExpense)),
		}, true
	}

	if float64(f.ExpenseCount)/30 > 3 {
		return Insight{
			Title:   "Frequent Spender",
			Message: printer.Sprintf("You made %d expense transactions in 30 days, more than three a day. Fewer, deliberate purchases make budgets easier to track.", f.ExpenseCount),
		}, true
	}

	return Insight{}, false
}

// categoryDiversity flags very broad or very narrow category usage.
func categoryDiversity(f Figures) (Insight, bool) {
	if f.CategoryCount > 8 {
		return Insight{
			Title:   "Diverse Spending",
			Message: printer.Sprintf("Your expenses span %d categories. Consolidating similar ones makes patterns easier to spot.", f.CategoryCount),
		}, true
	}

	if f.CategoryCount > 0 && f.CategoryCount <= 3 {
		return Insight{
			Title:   "Focused Spending",
			Message: printer.Sprintf("Your expenses concentrate in just %d categories, which makes them easy to optimize.", f.CategoryCount),
		}, true
	}

	return Insight{}, false
}

// largeSmallSplit compares the size classes of expenses.
func largeSmallSplit(f Figures) (Insight, bool) {
	if !f.Expenses.IsPositive() {
		return Insight{}, false
	}

	share := percentage(f.LargeExpenseTotal, f.Expenses)

	if share.GreaterThan(decimal.NewFromInt(70)) {
		return Insight{
			Title:   "Dominated by Large Expenses",
			Message: printer.Sprintf("%s of your spending went to expenses of 100 or more. Reviewing these few big items has the largest impact.", percent(share)),
		}, true
	}

	if share.LessThan(decimal.NewFromInt(30)) {
		return Insight{
			Title:   "Mostly Small Expenses",
			Message: printer.Sprintf("Only %s of your spending came from expenses of 100 or more. Most of your money leaves in small amounts that are easy to overlook.", percent(share)),
		}, true
	}

	return Insight{}, false
}

// largestExpense warns when a single expense dominates the window.
func largestExpense(f Figures) (Insight, bool) {
	if !f.Expenses.IsPositive() {
		return Insight{}, false
	}

	if f.LargestExpense.GreaterThan(f.Expenses.Mul(decimal.NewFromFloat(0.3))) {
		return Insight{
			Title:   "Single Large Expense",
			Message: printer.Sprintf("One expense of %s made up over 30%% of your 30-day spending. Double-check it was planned.", money(f.LargestExpense)),
		}, true
	}

	return Insight{}, false
}

// incomeStreams counts distinct income sources.
func incomeStreams(f Figures) (Insight, bool) {
	if f.IncomeSources == 1 {
		return Insight{
			Title:   "Single Income Source",
			Message: "All of your income came from one source. A second income stream reduces risk if that source goes away.",
		}, true
	}

	if f.IncomeSources > 3 {
		return Insight{
			Title:   "Multiple Income Streams",
			Message: printer.Sprintf("You received income from %d sources. Diversified income is a strong position to be in.", f.IncomeSources),
		}, true
	}

	return Insight{}, false
}

// savingsBenchmark compares the savings rate to common benchmarks.
func savingsBenchmark(f Figures) (Insight, bool) {
	if !f.Income.IsPositive() {
		return Insight{}, false
	}

	rate := f.Balance.Div(f.Income)

	if rate.GreaterThanOrEqual(eliteSavingsRate) {
		return Insight{
			Title:   "Elite Saver",
			Message: printer.Sprintf("A savings rate of %s puts you well above the common 20%% benchmark.", percent(rate.Mul(hundred))),
		}, true
	}

	if rate.IsNegative() {
		return Insight{
			Title:   "Negative Savings Rate",
			Message: "You saved nothing this period, your spending exceeded your income.",
		}, true
	}

	return Insight{}, false
}

// budgetBreakdown is the always-present 50/30/20 recommendation.
func budgetBreakdown(f Figures) (Insight, bool) {
	if !f.Income.IsPositive() {
		return Insight{}, false
	}

	needs := f.Income.Mul(decimal.NewFromFloat(0.5))
	wants := f.Income.Mul(decimal.NewFromFloat(0.3))
	savings := f.Income.Mul(decimal.NewFromFloat(0.2))

	return Insight{
		Title:   "The 50/30/20 Rule",
		Message: printer.Sprintf("On your income of %s: up to %s for needs, %s for wants and at least %s for savings is a solid baseline.", money(f.Income), money(needs), money(wants), money(savings)),
	}, true
}

// spendingVelocity flags very sharp changes in spending pace.
func spendingVelocity(f Figures) (Insight, bool) {
	if !f.PreviousExpenses.IsPositive() {
		return Insight{}, false
	}

	change := f.Expenses.Sub(f.PreviousExpenses)
	pct := percentage(change.Abs(), f.PreviousExpenses)

	if pct.LessThanOrEqual(decimal.NewFromInt(50)) {
		return Insight{}, false
	}

	direction := "up"
	if change.IsNegative() {
		direction = "down"
	}

	return Insight{
		Title:   "Spending Velocity Alert",
		Message: printer.Sprintf("Your spending pace moved %s by %s compared to the previous 30 days. Changes this sharp deserve a closer look.", direction, percent(pct)),
	}, true
}

// cashFlowProjection projects the current surplus forward.
func cashFlowProjection(f Figures) (Insight, bool) {
	if !f.Income.IsPositive() || !f.Expenses.IsPositive() || !f.Balance.IsPositive() {
		return Insight{}, false
	}

	months := savingsGoal.Div(f.Balance)
	annual := f.Balance.Mul(decimal.NewFromInt(12))

	if months.LessThanOrEqual(decimal.NewFromInt(3)) {
		return Insight{
			Title:   "Quick Savings Goal",
			Message: printer.Sprintf("At your current surplus of %s per month you would save 1,000 in about %s months, roughly %s per year. A near-term goal worth locking in.", money(f.Balance), months.Round(1), money(annual)),
		}, true
	}

	return Insight{
		Title:   "Cash-Flow Projection",
		Message: printer.Sprintf("At your current surplus of %s per month you would save 1,000 in about %s months, roughly %s per year.", money(f.Balance), months.Round(1), money(annual)),
	}, true
}

// expenseRatio bands the expense-to-income ratio.
func expenseRatio(f Figures) (Insight, bool) {
	if !f.Income.IsPositive() {
		return Insight{}, false
	}

	ratio := percentage(f.Expenses, f.Income)

	switch {
	case ratio.GreaterThan(hundred):
		return Insight{
			Title:   "Unsustainable Spending",
			Message: printer.Sprintf("Your expenses are %s of your income. This cannot continue without going into debt.", percent(ratio)),
		}, true
	case ratio.GreaterThan(decimal.NewFromInt(80)):
		return Insight{
			Title:   "High Expense Ratio",
			Message: printer.Sprintf("Your expenses are %s of your income, leaving little room for surprises.", percent(ratio)),
		}, true
	case ratio.LessThan(decimal.NewFromInt(50)):
		return Insight{
			Title:   "Low Expense Ratio",
			Message: printer.Sprintf("Your expenses are only %s of your income, excellent headroom for saving and investing.", percent(ratio)),
		}, true
	}

	return Insight{}, false
}

// categoryConcentration flags when few categories dominate spending.
func categoryConcentration(f Figures) (Insight, bool) {
	if len(f.TopCategories) < 3 || !f.Expenses.IsPositive() {
		return Insight{}, false
	}

	topThree := decimal.Zero
	for _, c := range f.TopCategories[:3] {
		topThree = topThree.Add(c.Amount)
	}

	share := percentage(topThree, f.Expenses)
	if share.GreaterThan(decimal.NewFromInt(60)) {
		return Insight{
			Title:   "Concentrated Spending",
			Message: printer.Sprintf("Your top three categories account for %s of your spending. Focus any optimization effort there first.", percent(share)),
		}, true
	}

	return Insight{}, false
}
