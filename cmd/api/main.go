// Package main is the entry point for the Budget Tracker API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/config"
	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/application/usecase/account"
	"github.com/budget-tracker/backend/internal/application/usecase/auth"
	"github.com/budget-tracker/backend/internal/application/usecase/budget"
	"github.com/budget-tracker/backend/internal/application/usecase/category"
	"github.com/budget-tracker/backend/internal/application/usecase/income"
	"github.com/budget-tracker/backend/internal/application/usecase/matching"
	"github.com/budget-tracker/backend/internal/application/usecase/notify"
	"github.com/budget-tracker/backend/internal/application/usecase/pattern"
	"github.com/budget-tracker/backend/internal/application/usecase/plannedentry"
	"github.com/budget-tracker/backend/internal/application/usecase/reconciliation"
	"github.com/budget-tracker/backend/internal/application/usecase/transaction"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
	"github.com/budget-tracker/backend/internal/infra/db"
	"github.com/budget-tracker/backend/internal/infra/server/router"
	"github.com/budget-tracker/backend/internal/integration/adapters"
	"github.com/budget-tracker/backend/internal/integration/cache"
	"github.com/budget-tracker/backend/internal/integration/email"
	"github.com/budget-tracker/backend/internal/integration/email/templates"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/budget-tracker/backend/internal/integration/events"
	"github.com/budget-tracker/backend/internal/integration/persistence"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Budget Tracker API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	var database *db.Database
	var dbHealthChecker func() bool

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Warn("Database connection failed, running without database",
			"error", err,
		)
		database = nil
		dbHealthChecker = func() bool { return false }
	} else {
		// Run database migrations
		if err := database.AutoMigrate(db.AllModels()...); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		dbHealthChecker = database.HealthCheck
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
	}

	// Create health controller with database health checker
	healthController := controller.NewHealthController(dbHealthChecker)

	// Background workers stop when this context is canceled.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	// Create controllers and middleware (only if database is available)
	var authController *controller.AuthController
	var categoryController *controller.CategoryController
	var accountController *controller.AccountController
	var transactionController *controller.TransactionController
	var plannedEntryController *controller.PlannedEntryController
	var budgetController *controller.BudgetController
	var reconciliationController *controller.ReconciliationController
	var patternController *controller.PatternController
	var loginRateLimiter *middleware.RateLimiter
	var authMiddleware *middleware.AuthMiddleware

	if database != nil {
		// Create repositories
		userRepo := persistence.NewUserRepository(database.DB())
		categoryRepo := persistence.NewCategoryRepository(database.DB())
		accountRepo := persistence.NewAccountRepository(database.DB())
		transactionRepo := persistence.NewTransactionRepository(database.DB())
		entryRepo := persistence.NewPlannedEntryRepository(database.DB())
		statusRepo := persistence.NewPlannedEntryStatusRepository(database.DB())
		budgetRepo := persistence.NewCategoryBudgetRepository(database.DB())
		patternRepo := persistence.NewAdvancedPatternRepository(database.DB())
		emailQueueRepo := persistence.NewEmailQueueRepository(database.DB())

		// Create adapters/services
		passwordService := adapters.NewPasswordService()
		tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
		geminiService := adapters.NewGeminiService(cfg.AI.GeminiAPIKey)

		spendingCache := newSpendingCache(&cfg.Redis)
		publisher := newEventPublisher(&cfg.AMQP)
		defer func() {
			if err := publisher.Close(); err != nil {
				slog.Error("Failed to close event publisher", "error", err)
			}
		}()

		// Create auth use cases
		registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
		loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

		// Create category and account use cases
		createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
		listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
		createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
		listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)

		// Create transaction use cases
		createTransactionUseCase := transaction.NewCreateTransactionUseCase(
			transactionRepo, accountRepo, patternRepo, spendingCache, logger)
		listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
		updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(
			transactionRepo, categoryRepo, spendingCache, logger)
		suggestCategoryUseCase := transaction.NewSuggestCategoryUseCase(
			transactionRepo, categoryRepo, geminiService)

		// Create planned entry use cases
		createEntryUseCase := plannedentry.NewCreatePlannedEntryUseCase(entryRepo, categoryRepo)
		listEntriesUseCase := plannedentry.NewListEntriesForMonthUseCase(entryRepo, statusRepo, logger)
		updateEntryUseCase := plannedentry.NewUpdatePlannedEntryUseCase(entryRepo, categoryRepo)
		deactivateEntryUseCase := plannedentry.NewDeactivatePlannedEntryUseCase(entryRepo)

		// Create matching use cases
		matchUseCase := matching.NewMatchEntryUseCase(
			entryRepo, statusRepo, transactionRepo, spendingCache, publisher, logger)
		unmatchUseCase := matching.NewUnmatchEntryUseCase(
			entryRepo, statusRepo, spendingCache, publisher, logger)
		dismissUseCase := matching.NewDismissEntryUseCase(
			entryRepo, statusRepo, spendingCache, publisher, logger)
		undismissUseCase := matching.NewUndismissEntryUseCase(
			entryRepo, statusRepo, spendingCache, publisher, logger)
		suggestMatchesUseCase := matching.NewSuggestMatchesUseCase(
			transactionRepo, entryRepo, statusRepo, valueobject.DefaultMatchingConfig())

		// Create reconciliation and report use cases
		getSpendingUseCase := reconciliation.NewGetSpendingUseCase(
			entryRepo, statusRepo, transactionRepo, categoryRepo, spendingCache, logger)
		getIncomePlanningUseCase := income.NewGetIncomePlanningUseCase(
			entryRepo, statusRepo, cfg.Engine.AllocationTolerancePercent)

		// Create budget use cases
		upsertBudgetUseCase := budget.NewUpsertBudgetUseCase(budgetRepo, categoryRepo)
		listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
		progressUseCase := budget.NewGetBudgetProgressUseCase(
			budgetRepo, categoryRepo, entryRepo, getSpendingUseCase, progressThresholds(&cfg.Engine))
		consolidateUseCase := budget.NewConsolidateBudgetUseCase(budgetRepo, entryRepo)
		copyBudgetsUseCase := budget.NewCopyBudgetsUseCase(budgetRepo, logger)

		// Create pattern use cases
		createPatternUseCase := pattern.NewCreatePatternUseCase(
			patternRepo, transactionRepo, categoryRepo, logger)
		listPatternsUseCase := pattern.NewListPatternsUseCase(patternRepo)
		updatePatternUseCase := pattern.NewUpdatePatternUseCase(patternRepo)
		deletePatternUseCase := pattern.NewDeletePatternUseCase(patternRepo)
		applyPatternUseCase := pattern.NewApplyPatternUseCase(patternRepo, transactionRepo, logger)

		// Create controllers
		authController = controller.NewAuthController(registerUseCase, loginUseCase)
		categoryController = controller.NewCategoryController(createCategoryUseCase, listCategoriesUseCase)
		accountController = controller.NewAccountController(createAccountUseCase, listAccountsUseCase)
		transactionController = controller.NewTransactionController(
			createTransactionUseCase, listTransactionsUseCase, updateTransactionUseCase, suggestCategoryUseCase)
		plannedEntryController = controller.NewPlannedEntryController(
			createEntryUseCase, listEntriesUseCase, updateEntryUseCase, deactivateEntryUseCase,
			matchUseCase, unmatchUseCase, dismissUseCase, undismissUseCase, suggestMatchesUseCase)
		budgetController = controller.NewBudgetController(
			upsertBudgetUseCase, listBudgetsUseCase, progressUseCase, consolidateUseCase, copyBudgetsUseCase)
		reconciliationController = controller.NewReconciliationController(
			getSpendingUseCase, getIncomePlanningUseCase)
		patternController = controller.NewPatternController(
			createPatternUseCase, listPatternsUseCase, updatePatternUseCase, deletePatternUseCase,
			applyPatternUseCase)

		// Create middleware
		loginRateLimiter = middleware.NewRateLimiter()
		authMiddleware = middleware.NewAuthMiddleware(tokenService)

		// Email delivery worker and budget alert sweep
		if cfg.Email.WorkerEnabled && cfg.Email.ResendAPIKey != "" {
			startEmailWorker(workerCtx, &cfg.Email, emailQueueRepo)

			alertsUseCase := notify.NewSendBudgetAlertsUseCase(
				userRepo, budgetRepo, categoryRepo, progressUseCase,
				emailQueueRepo, cfg.Email.AlertInterval, logger)
			go runAlertSweep(workerCtx, alertsUseCase, cfg.Email.AlertInterval)
		} else {
			slog.Info("Email worker disabled")
		}

		slog.Info("Application systems initialized successfully")
	} else {
		slog.Warn("API routes not initialized due to missing database connection")
	}

	// Setup router
	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		accountController,
		transactionController,
		plannedEntryController,
		budgetController,
		reconciliationController,
		patternController,
		loginRateLimiter,
		authMiddleware,
	)
	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// newSpendingCache wires the Redis report cache, or a no-op cache when
// Redis is disabled or unreachable.
func newSpendingCache(cfg *config.RedisConfig) adapter.SpendingCache {
	if !cfg.Enabled {
		slog.Info("Redis cache disabled")
		return cache.NewNoopSpendingCache()
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		slog.Warn("Invalid Redis URL, running without cache", "error", err)
		return cache.NewNoopSpendingCache()
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	opts.DB = cfg.DB

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		slog.Warn("Redis connection failed, running without cache", "error", err)
		return cache.NewNoopSpendingCache()
	}

	slog.Info("Redis cache connected")
	return cache.NewRedisSpendingCache(client, cfg.CacheTTL)
}

// newEventPublisher wires the AMQP publisher, or a no-op publisher when
// the broker is disabled or unreachable.
func newEventPublisher(cfg *config.AMQPConfig) adapter.EventPublisher {
	if !cfg.Enabled {
		slog.Info("Event publishing disabled")
		return events.NewNoopPublisher()
	}

	publisher, err := events.NewAMQPPublisher(cfg.URL, cfg.Exchange)
	if err != nil {
		slog.Warn("AMQP connection failed, running without events", "error", err)
		return events.NewNoopPublisher()
	}

	slog.Info("AMQP publisher connected", "exchange", cfg.Exchange)
	return publisher
}

// startEmailWorker launches the delivery worker that drains the email
// queue table.
func startEmailWorker(ctx context.Context, cfg *config.EmailConfig, queue adapter.EmailQueueRepository) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		slog.Error("Failed to load email templates", "error", err)
		return
	}

	sender := email.NewResendClient(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail)
	worker := email.NewWorker(queue, sender, renderer, email.WorkerConfig{
		PollInterval: cfg.PollInterval,
		BatchSize:    cfg.BatchSize,
	})

	go worker.Start(ctx)
	slog.Info("Email worker started", "poll_interval", cfg.PollInterval)
}

// runAlertSweep periodically queues budget alert emails for every user
// whose budgets crossed a warning threshold.
func runAlertSweep(ctx context.Context, alerts *notify.SendBudgetAlertsUseCase, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now().UTC()
			input := notify.SendBudgetAlertsInput{
				Month: int(now.Month()),
				Year:  now.Year(),
			}
			output, err := alerts.Execute(ctx, input)
			if err != nil {
				slog.Error("Budget alert sweep failed", "error", err)
				continue
			}
			if output.Queued > 0 {
				slog.Info("Budget alerts queued", "count", output.Queued)
			}
		}
	}
}

// progressThresholds converts the engine config fractions into the
// decimal bands the progress calculator expects.
func progressThresholds(cfg *config.EngineConfig) valueobject.ProgressThresholds {
	thresholds := valueobject.DefaultProgressThresholds()
	if cfg.MinorVariancePercent > 0 {
		thresholds.MinorVariancePercent = decimal.NewFromFloat(cfg.MinorVariancePercent)
	}
	if cfg.MajorVariancePercent > 0 {
		thresholds.MajorVariancePercent = decimal.NewFromFloat(cfg.MajorVariancePercent)
	}
	return thresholds
}
