package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	database "github.com/ayushsdevforge/pockettune-server/db"
	"github.com/ayushsdevforge/pockettune-server/internal/auth"
	"github.com/ayushsdevforge/pockettune-server/internal/bills"
	"github.com/ayushsdevforge/pockettune-server/internal/clients"
	"github.com/ayushsdevforge/pockettune-server/internal/goals"
	"github.com/ayushsdevforge/pockettune-server/internal/ledger/application"
	"github.com/ayushsdevforge/pockettune-server/internal/ledger/infrastructure"
	"github.com/ayushsdevforge/pockettune-server/internal/ledger/interfaces"
	"github.com/ayushsdevforge/pockettune-server/internal/lending"
	"github.com/ayushsdevforge/pockettune-server/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router             *http.ServeMux
	dbService          *database.DBService
	authService        auth.Service
	authHandler        *auth.Handler
	userHandler        *user.Handler
	transactionHandler *interfaces.TransactionHandler
	accountHandler     *interfaces.AccountHandler
	userDataHandler    *interfaces.UserDataHandler
	analyticsHandler   *interfaces.AnalyticsHandler
	billHandler        *bills.Handler
	lendingHandler     *lending.Handler
	clientHandler      *clients.Handler
	goalHandler        *goals.Handler
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET provided")
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		return errors.New("no DB_CONNECTION_STRING provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.dbService.Health())
}

func (s *Server) RegisterRoutes() {
	protect := s.authService.JWTAccessTokenMiddleware()

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/auth/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (JWT access token)
	protectedRoutes := http.NewServeMux()

	protectedRoutes.Handle("GET /api/protected/profile", protect(http.HandlerFunc(s.userHandler.HandleGetProfile)))
	protectedRoutes.Handle("POST /api/protected/2fa/register", protect(http.HandlerFunc(s.authHandler.HandleRegisterTwoFactor)))
	protectedRoutes.Handle("POST /api/protected/2fa/verify", protect(http.HandlerFunc(s.authHandler.HandleVerifyTwoFactor)))

	// ACCOUNTS API
	protectedRoutes.Handle("POST /api/protected/accounts", protect(http.HandlerFunc(s.accountHandler.CreateAccount)))
	protectedRoutes.Handle("GET /api/protected/accounts", protect(http.HandlerFunc(s.accountHandler.GetAccounts)))
	protectedRoutes.Handle("GET /api/protected/accounts/summary", protect(http.HandlerFunc(s.accountHandler.GetAccountSummary)))
	protectedRoutes.Handle("PUT /api/protected/accounts/{accountID}", protect(http.HandlerFunc(s.accountHandler.UpdateAccount)))
	protectedRoutes.Handle("DELETE /api/protected/accounts/{accountID}", protect(http.HandlerFunc(s.accountHandler.DeleteAccount)))

	// TRANSACTIONS API
	protectedRoutes.Handle("POST /api/protected/transactions/income", protect(http.HandlerFunc(s.transactionHandler.CreateIncome)))
	protectedRoutes.Handle("POST /api/protected/transactions/expense", protect(http.HandlerFunc(s.transactionHandler.CreateExpense)))
	protectedRoutes.Handle("POST /api/protected/transactions/transfer", protect(http.HandlerFunc(s.transactionHandler.CreateTransfer)))
	protectedRoutes.Handle("GET /api/protected/transactions", protect(http.HandlerFunc(s.transactionHandler.GetUserTransactions)))
	protectedRoutes.Handle("GET /api/protected/transactions/recent", protect(http.HandlerFunc(s.transactionHandler.GetRecentTransactions)))
	protectedRoutes.Handle("DELETE /api/protected/transactions/{transactionID}", protect(http.HandlerFunc(s.transactionHandler.DeleteTransaction)))

	// USER DATA API
	protectedRoutes.Handle("POST /api/protected/user-data/init", protect(http.HandlerFunc(s.userDataHandler.GetUserData)))
	protectedRoutes.Handle("GET /api/protected/user-data", protect(http.HandlerFunc(s.userDataHandler.GetUserData)))
	protectedRoutes.Handle("PUT /api/protected/user-data", protect(http.HandlerFunc(s.userDataHandler.UpdateUserData)))
	protectedRoutes.Handle("POST /api/protected/user-data/summary", protect(http.HandlerFunc(s.userDataHandler.RefreshSummary)))
	protectedRoutes.Handle("GET /api/protected/user-data/budget", protect(http.HandlerFunc(s.userDataHandler.GetBudget)))

	// ANALYTICS API
	protectedRoutes.Handle("GET /api/protected/analytics/summary", protect(http.HandlerFunc(s.analyticsHandler.GetSummary)))
	protectedRoutes.Handle("GET /api/protected/analytics/categories", protect(http.HandlerFunc(s.analyticsHandler.GetSpendingByCategory)))
	protectedRoutes.Handle("GET /api/protected/analytics/trend", protect(http.HandlerFunc(s.analyticsHandler.GetMonthlyTrend)))
	protectedRoutes.Handle("GET /api/protected/analytics/daily", protect(http.HandlerFunc(s.analyticsHandler.GetDailySpending)))

	// BILLS API
	protectedRoutes.Handle("POST /api/protected/bills", protect(http.HandlerFunc(s.billHandler.HandleCreateBill)))
	protectedRoutes.Handle("GET /api/protected/bills", protect(http.HandlerFunc(s.billHandler.HandleGetBills)))
	protectedRoutes.Handle("GET /api/protected/bills/summary", protect(http.HandlerFunc(s.billHandler.HandleGetSummary)))
	protectedRoutes.Handle("PUT /api/protected/bills/{billID}", protect(http.HandlerFunc(s.billHandler.HandleUpdateBill)))
	protectedRoutes.Handle("DELETE /api/protected/bills/{billID}", protect(http.HandlerFunc(s.billHandler.HandleDeleteBill)))
	protectedRoutes.Handle("POST /api/protected/bills/{billID}/pay", protect(http.HandlerFunc(s.billHandler.HandleMarkPaid)))

	// LENDING API
	protectedRoutes.Handle("POST /api/protected/lending", protect(http.HandlerFunc(s.lendingHandler.HandleCreateRecord)))
	protectedRoutes.Handle("GET /api/protected/lending", protect(http.HandlerFunc(s.lendingHandler.HandleGetRecords)))
	protectedRoutes.Handle("GET /api/protected/lending/summary", protect(http.HandlerFunc(s.lendingHandler.HandleGetSummary)))
	protectedRoutes.Handle("PUT /api/protected/lending/{recordID}", protect(http.HandlerFunc(s.lendingHandler.HandleUpdateRecord)))
	protectedRoutes.Handle("DELETE /api/protected/lending/{recordID}", protect(http.HandlerFunc(s.lendingHandler.HandleDeleteRecord)))
	protectedRoutes.Handle("POST /api/protected/lending/{recordID}/settle", protect(http.HandlerFunc(s.lendingHandler.HandleSettleRecord)))

	// CLIENTS API
	protectedRoutes.Handle("POST /api/protected/clients", protect(http.HandlerFunc(s.clientHandler.HandleCreateClient)))
	protectedRoutes.Handle("GET /api/protected/clients", protect(http.HandlerFunc(s.clientHandler.HandleGetClients)))
	protectedRoutes.Handle("GET /api/protected/clients/summary", protect(http.HandlerFunc(s.clientHandler.HandleGetSummary)))
	protectedRoutes.Handle("PUT /api/protected/clients/{clientID}", protect(http.HandlerFunc(s.clientHandler.HandleUpdateClient)))
	protectedRoutes.Handle("DELETE /api/protected/clients/{clientID}", protect(http.HandlerFunc(s.clientHandler.HandleDeleteClient)))
	protectedRoutes.Handle("POST /api/protected/clients/{clientID}/balance", protect(http.HandlerFunc(s.clientHandler.HandleAdjustBalance)))

	// GOALS API
	protectedRoutes.Handle("POST /api/protected/goals", protect(http.HandlerFunc(s.goalHandler.HandleCreateGoal)))
	protectedRoutes.Handle("GET /api/protected/goals", protect(http.HandlerFunc(s.goalHandler.HandleGetGoals)))
	protectedRoutes.Handle("GET /api/protected/goals/summary", protect(http.HandlerFunc(s.goalHandler.HandleGetSummary)))
	protectedRoutes.Handle("PUT /api/protected/goals/{goalID}", protect(http.HandlerFunc(s.goalHandler.HandleUpdateGoal)))
	protectedRoutes.Handle("DELETE /api/protected/goals/{goalID}", protect(http.HandlerFunc(s.goalHandler.HandleDeleteGoal)))
	protectedRoutes.Handle("POST /api/protected/goals/{goalID}/add", protect(http.HandlerFunc(s.goalHandler.HandleAddToGoal)))

	// Refresh token routes
	refreshTokenRoutes := http.NewServeMux()
	refreshTokenRoutes.Handle("PUT /api/refresh/token", http.HandlerFunc(s.authHandler.HandleRefreshToken))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/api/refresh/", refreshTokenRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	if err := dbService.Migrate(); err != nil {
		log.Fatalf("Could not run database migrations: %v", err)
	}

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo)
	userHandler := user.NewHandler(userService)

	jwtManager := auth.NewJWTManager()
	totpManager := auth.NewTOTPManager()
	authService := auth.NewAuthService(userService, jwtManager, totpManager)
	authHandler := auth.NewHandler(authService)

	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)
	accountRepo := infrastructure.NewAccountRepository(dbService.DB)
	userDataRepo := infrastructure.NewUserDataRepository(dbService.DB)

	ledgerService := application.NewLedgerService(transactionRepo, accountRepo, userDataRepo)
	accountService := application.NewAccountService(accountRepo)
	userDataService := application.NewUserDataService(userDataRepo, accountRepo)
	analyticsService := application.NewAnalyticsService(transactionRepo)

	transactionHandler := interfaces.NewTransactionHandler(ledgerService, respondJSON, respondError)
	accountHandler := interfaces.NewAccountHandler(accountService, respondJSON, respondError)
	userDataHandler := interfaces.NewUserDataHandler(userDataService, respondJSON, respondError)
	analyticsHandler := interfaces.NewAnalyticsHandler(analyticsService, respondJSON, respondError)

	billService := bills.NewService(bills.NewBillRepository(dbService.DB))
	billHandler := bills.NewHandler(billService)
	lendingHandler := lending.NewHandler(lending.NewService(lending.NewLendingRepository(dbService.DB)))
	clientHandler := clients.NewHandler(clients.NewService(clients.NewClientRepository(dbService.DB)))
	goalHandler := goals.NewHandler(goals.NewService(goals.NewGoalRepository(dbService.DB)))

	server := &Server{
		dbService:          dbService,
		authService:        authService,
		authHandler:        authHandler,
		userHandler:        userHandler,
		transactionHandler: transactionHandler,
		accountHandler:     accountHandler,
		userDataHandler:    userDataHandler,
		analyticsHandler:   analyticsHandler,
		billHandler:        billHandler,
		lendingHandler:     lendingHandler,
		clientHandler:      clientHandler,
		goalHandler:        goalHandler,
	}
	server.RegisterRoutes()

	if err := StartSummaryScheduler(userDataService); err != nil {
		log.Fatalf("Scheduler didn't start, stopping the app ...")
	}
	if err := StartBillReminderScheduler(billService); err != nil {
		log.Fatalf("Scheduler didn't start, stopping the app ...")
	}

	handler := loggingMiddleware(server.router)
	log.Println("Server starting on port 8080...")
	if err := http.ListenAndServe(":8080", handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// StartSummaryScheduler refreshes every user's cached summary figures
// nightly so they track the ledger even without traffic.
func StartSummaryScheduler(userDataService *application.UserDataService) error {
	c := cron.New()
	_, err := c.AddFunc("0 3 * * *", func() {
		if err := userDataService.RefreshAllSummaries(); err != nil {
			log.Printf("Error refreshing user summaries: %v", err)
		} else {
			log.Println("User summaries refreshed successfully.")
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}

// StartBillReminderScheduler logs bills coming due within three days.
func StartBillReminderScheduler(billService bills.Service) error {
	c := cron.New()
	_, err := c.AddFunc("0 8 * * *", func() {
		due, err := billService.GetBillsDueSoon(3)
		if err != nil {
			log.Printf("Error checking upcoming bills: %v", err)
			return
		}
		for _, bill := range due {
			log.Printf("Bill %q (%.2f) is due on %s", bill.Name, bill.Amount, bill.DueDate.Format("2006-01-02"))
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}
