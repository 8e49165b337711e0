// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                   *gin.Engine
	healthController         *controller.HealthController
	authController           *controller.AuthController
	categoryController       *controller.CategoryController
	accountController        *controller.AccountController
	transactionController    *controller.TransactionController
	plannedEntryController   *controller.PlannedEntryController
	budgetController         *controller.BudgetController
	reconciliationController *controller.ReconciliationController
	patternController        *controller.PatternController
	loginRateLimiter         *middleware.RateLimiter
	authMiddleware           *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	categoryController *controller.CategoryController,
	accountController *controller.AccountController,
	transactionController *controller.TransactionController,
	plannedEntryController *controller.PlannedEntryController,
	budgetController *controller.BudgetController,
	reconciliationController *controller.ReconciliationController,
	patternController *controller.PatternController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:         healthController,
		authController:           authController,
		categoryController:       categoryController,
		accountController:        accountController,
		transactionController:    transactionController,
		plannedEntryController:   plannedEntryController,
		budgetController:         budgetController,
		reconciliationController: reconciliationController,
		patternController:        patternController,
		loginRateLimiter:         loginRateLimiter,
		authMiddleware:           authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			}
		}

		// Category routes (require authentication)
		if r.categoryController != nil && r.authMiddleware != nil {
			categories := v1.Group("/categories")
			categories.Use(r.authMiddleware.Authenticate())
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
			}
		}

		// Account routes (require authentication)
		if r.accountController != nil && r.authMiddleware != nil {
			accounts := v1.Group("/accounts")
			accounts.Use(r.authMiddleware.Authenticate())
			{
				accounts.GET("", r.accountController.List)
				accounts.POST("", r.accountController.Create)
			}
		}

		// Transaction routes (require authentication)
		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.PATCH("/:id", r.transactionController.Update)
				transactions.GET("/:id/suggest-category", r.transactionController.SuggestCategory)

				// Reverse matching: the transaction drives the search for
				// candidate planned entries.
				if r.plannedEntryController != nil {
					transactions.GET("/:id/suggest-matches", r.plannedEntryController.SuggestMatches)
				}
			}
		}

		// Planned entry routes (require authentication)
		if r.plannedEntryController != nil && r.authMiddleware != nil {
			entries := v1.Group("/planned-entries")
			entries.Use(r.authMiddleware.Authenticate())
			{
				entries.GET("", r.plannedEntryController.ListForMonth)
				entries.POST("", r.plannedEntryController.Create)
				entries.PATCH("/:id", r.plannedEntryController.Update)
				entries.DELETE("/:id", r.plannedEntryController.Deactivate)
				entries.POST("/:id/match", r.plannedEntryController.Match)
				entries.POST("/:id/unmatch", r.plannedEntryController.Unmatch)
				entries.POST("/:id/dismiss", r.plannedEntryController.Dismiss)
				entries.POST("/:id/undismiss", r.plannedEntryController.Undismiss)
			}
		}

		// Budget routes (require authentication)
		if r.budgetController != nil && r.authMiddleware != nil {
			budgets := v1.Group("/budgets")
			budgets.Use(r.authMiddleware.Authenticate())
			{
				budgets.GET("", r.budgetController.List)
				budgets.PUT("", r.budgetController.Upsert)
				budgets.GET("/:id/progress", r.budgetController.Progress)
				budgets.POST("/:id/consolidate", r.budgetController.Consolidate)
				budgets.POST("/copy", r.budgetController.Copy)
			}
		}

		// Report routes (require authentication)
		if r.reconciliationController != nil && r.authMiddleware != nil {
			reports := v1.Group("/reports")
			reports.Use(r.authMiddleware.Authenticate())
			{
				reports.GET("/spending", r.reconciliationController.GetSpending)
				reports.GET("/income-planning", r.reconciliationController.GetIncomePlanning)
			}
		}

		// Advanced pattern routes (require authentication)
		if r.patternController != nil && r.authMiddleware != nil {
			patterns := v1.Group("/patterns")
			patterns.Use(r.authMiddleware.Authenticate())
			{
				patterns.GET("", r.patternController.List)
				patterns.POST("", r.patternController.Create)
				patterns.PATCH("/:id", r.patternController.Update)
				patterns.DELETE("/:id", r.patternController.Delete)
				patterns.POST("/:id/apply", r.patternController.Apply)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
