//go:build integration

package infrastructure

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	database "github.com/ayushsdevforge/pockettune-server/db"
	"github.com/ayushsdevforge/pockettune-server/internal/ledger/application"
	"github.com/ayushsdevforge/pockettune-server/internal/ledger/domain"
)

var testDB *sql.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("pockettune_test"),
		postgres.WithUsername("pockettune"),
		postgres.WithPassword("pockettune"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		panic("failed to start postgres container: " + err.Error())
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		panic("failed to get connection string: " + err.Error())
	}

	testDB, err = sql.Open("pgx", connStr)
	if err != nil {
		panic("failed to open database: " + err.Error())
	}

	if err := (&database.DBService{DB: testDB}).Migrate(); err != nil {
		panic("failed to run migrations: " + err.Error())
	}

	code := m.Run()

	testDB.Close()
	container.Terminate(ctx)
	if code != 0 {
		panic("tests failed")
	}
}

func createTestUser(t *testing.T) string {
	t.Helper()
	userID := uuid.NewString()
	_, err := testDB.Exec(`
		INSERT INTO users (id, username, email, password_hash, two_factor_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, 'hash', false, NOW(), NOW())
	`, userID, "user-"+userID[:8], userID[:8]+"@example.com")
	require.NoError(t, err)
	return userID
}

func setupLedger(t *testing.T) (*application.LedgerService, *AccountRepository, *UserDataRepository, string) {
	t.Helper()
	transactionRepo := NewTransactionRepository(testDB)
	accountRepo := NewAccountRepository(testDB)
	userDataRepo := NewUserDataRepository(testDB)
	ledger := application.NewLedgerService(transactionRepo, accountRepo, userDataRepo)
	return ledger, accountRepo, userDataRepo, createTestUser(t)
}

func createTestAccount(t *testing.T, repo *AccountRepository, userID string, balance float64) string {
	t.Helper()
	account := &domain.Account{
		ID:      uuid.NewString(),
		UserID:  userID,
		Name:    "Account " + uuid.NewString()[:8],
		Type:    domain.AccountTypeChecking,
		Balance: balance,
	}
	require.NoError(t, repo.Save(account))
	return account.ID
}

func balanceOf(t *testing.T, repo *AccountRepository, userID, accountID string) float64 {
	t.Helper()
	account, err := repo.FindByID(userID, accountID)
	require.NoError(t, err)
	return account.Balance
}

func TestExpenseFlow_UpdatesBalanceBudgetAndRollups(t *testing.T) {
	ledger, accountRepo, userDataRepo, userID := setupLedger(t)
	accountID := createTestAccount(t, accountRepo, userID, 1000)

	err := ledger.CreateExpense(&domain.Transaction{
		UserID:          userID,
		Amount:          250,
		Description:     "Groceries",
		Category:        "Food & Dining",
		SourceAccountID: accountID,
	})
	require.NoError(t, err)

	assert.Equal(t, float64(750), balanceOf(t, accountRepo, userID, accountID))

	categories, err := userDataRepo.FindBudgetCategories(userID)
	require.NoError(t, err)
	var foodSpent float64
	for _, category := range categories {
		if category.Key == "foodDining" {
			foodSpent = category.Spent
		}
	}
	assert.Equal(t, float64(250), foodSpent)

	data, err := userDataRepo.Find(userID)
	require.NoError(t, err)
	assert.Equal(t, float64(250), data.MonthlyExpenses)
	assert.Equal(t, float64(0), data.MonthlyIncome)
}

func TestTransferRoundTrip_RestoresBalances(t *testing.T) {
	ledger, accountRepo, _, userID := setupLedger(t)
	sourceID := createTestAccount(t, accountRepo, userID, 900)
	destinationID := createTestAccount(t, accountRepo, userID, 100)

	transfer := &domain.Transaction{
		UserID:               userID,
		Amount:               400,
		Description:          "Move to savings",
		SourceAccountID:      sourceID,
		DestinationAccountID: &destinationID,
	}
	require.NoError(t, ledger.CreateTransfer(transfer))

	assert.Equal(t, float64(500), balanceOf(t, accountRepo, userID, sourceID))
	assert.Equal(t, float64(500), balanceOf(t, accountRepo, userID, destinationID))

	require.NoError(t, ledger.DeleteTransaction(userID, transfer.ID))

	assert.Equal(t, float64(900), balanceOf(t, accountRepo, userID, sourceID))
	assert.Equal(t, float64(100), balanceOf(t, accountRepo, userID, destinationID))
}

func TestCreateExpense_MissingAccountLeavesNoTrace(t *testing.T) {
	ledger, _, _, userID := setupLedger(t)

	err := ledger.CreateExpense(&domain.Transaction{
		UserID:          userID,
		Amount:          100,
		Description:     "Orphan",
		SourceAccountID: uuid.NewString(),
	})
	require.Error(t, err)

	transactionRepo := NewTransactionRepository(testDB)
	transactions, err := transactionRepo.FindByUser(userID, domain.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestFindByUser_FiltersByTypeAndDate(t *testing.T) {
	ledger, accountRepo, _, userID := setupLedger(t)
	accountID := createTestAccount(t, accountRepo, userID, 10000)

	require.NoError(t, ledger.CreateIncome(&domain.Transaction{
		UserID: userID, Amount: 5000, Description: "Salary", SourceAccountID: accountID,
	}))
	require.NoError(t, ledger.CreateExpense(&domain.Transaction{
		UserID: userID, Amount: 120, Description: "Lunch", Category: "Food & Dining", SourceAccountID: accountID,
	}))
	require.NoError(t, ledger.CreateExpense(&domain.Transaction{
		UserID: userID, Amount: 80, Description: "Old lunch", Category: "Food & Dining",
		SourceAccountID: accountID, Date: time.Now().AddDate(0, -2, 0),
	}))

	expenses, err := NewTransactionRepository(testDB).FindByUser(userID, domain.TransactionFilter{
		Type:      domain.TypeExpense,
		StartDate: time.Now().AddDate(0, -1, 0),
	})
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Lunch", expenses[0].Description)
}
