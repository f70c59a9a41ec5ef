package domain

import "time"

// UserData carries the per-user derived figures. The monthly totals are
// rollups recomputed from the transaction log on every write; the summary
// figures are refreshed by an explicit recomputation, never mutated in
// handler paths.
type UserData struct {
	UserID          string
	TotalBalance    float64
	MonthlyIncome   float64
	MonthlyExpenses float64
	SavingRate      float64
	FinancialHealth float64
	BudgetUsed      float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type BudgetCategory struct {
	Key    string
	Budget float64
	Spent  float64
}

// BudgetKeyMonthly is the envelope row covering the whole month; the
// remaining keys map one budget envelope per spending category.
const BudgetKeyMonthly = "monthlyBudget"

// DefaultBudgets is the budget table seeded when user data is first
// initialized, spent 0 each.
var DefaultBudgets = []BudgetCategory{
	{Key: BudgetKeyMonthly, Budget: 61000},
	{Key: "foodDining", Budget: 15000},
	{Key: "transportation", Budget: 8000},
	{Key: "shopping", Budget: 10000},
	{Key: "entertainment", Budget: 5000},
	{Key: "billsUtilities", Budget: 12000},
	{Key: "healthcare", Budget: 5000},
	{Key: "education", Budget: 3000},
	{Key: "personalCare", Budget: 3000},
}

var categoryBudgetKeys = map[string]string{
	"Food & Dining":     "foodDining",
	"Transportation":    "transportation",
	"Shopping":          "shopping",
	"Entertainment":     "entertainment",
	"Bills & Utilities": "billsUtilities",
	"Healthcare":        "healthcare",
	"Education":         "education",
	"Personal Care":     "personalCare",
}

// BudgetKeyForCategory maps a transaction category to its budget envelope.
// Categories without an entry are not budget-tracked.
func BudgetKeyForCategory(category string) (string, bool) {
	key, ok := categoryBudgetKeys[category]
	return key, ok
}

type UserDataUpdate struct {
	TotalBalance    *float64
	MonthlyIncome   *float64
	MonthlyExpenses *float64
	SavingRate      *float64
	FinancialHealth *float64
	BudgetUsed      *float64
}

type UserDataRepository interface {
	Find(userID string) (*UserData, error)
	// Init inserts the user data row together with the default budget table.
	Init(userID string) (*UserData, error)
	Update(userID string, update UserDataUpdate) (*UserData, error)
	ListUserIDs() ([]string, error)
	FindBudgetCategories(userID string) ([]BudgetCategory, error)
	// SetMonthlyTotals stores freshly recomputed month rollups inside tx.
	SetMonthlyTotals(tx Tx, userID string, income, expenses float64) error
	// AdjustBudgetSpent increments a budget envelope's spent figure inside tx,
	// clamping at zero on decrements.
	AdjustBudgetSpent(tx Tx, userID, categoryKey string, delta float64) error
	SaveSummary(userID string, totalBalance, savingRate, financialHealth, budgetUsed float64) error
}
