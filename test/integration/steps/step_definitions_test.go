// Package steps provides step definitions for the BDD integration suite.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/account"
	"github.com/budget-tracker/backend/internal/application/usecase/auth"
	"github.com/budget-tracker/backend/internal/application/usecase/budget"
	"github.com/budget-tracker/backend/internal/application/usecase/category"
	"github.com/budget-tracker/backend/internal/application/usecase/income"
	"github.com/budget-tracker/backend/internal/application/usecase/matching"
	"github.com/budget-tracker/backend/internal/application/usecase/pattern"
	"github.com/budget-tracker/backend/internal/application/usecase/plannedentry"
	"github.com/budget-tracker/backend/internal/application/usecase/reconciliation"
	"github.com/budget-tracker/backend/internal/application/usecase/transaction"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
	"github.com/budget-tracker/backend/internal/infra/server/router"
	"github.com/budget-tracker/backend/internal/integration/adapters"
	"github.com/budget-tracker/backend/internal/integration/cache"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/budget-tracker/backend/internal/integration/events"
	"github.com/budget-tracker/backend/internal/integration/persistence"
	"github.com/budget-tracker/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			Tags:     tags,
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	uri     string
	client  *http.Client
	headers map[string]string

	response *response

	db *mock.Db

	accessToken       string
	accountID         string
	lastCategoryID    string
	categoryIDs       map[string]string
	lastEntryID       string
	entryIDs          map[string]string
	lastTransactionID string
	lastID            string
}

type response struct {
	status int
	body   map[string]any
	raw    string
}

var serverInit sync.Once
var serverPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		serverPort = findAvailablePort()
	})
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:    fmt.Sprintf("http://localhost:%d", serverPort),
		client: &http.Client{Timeout: 10 * time.Second},
		db:     mock.NewDb(),
	}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return c, nil
	})

	// Background
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Setup
	ctx.Given(`^I am registered as "([^"]*)"$`, test.iAmRegisteredAs)
	ctx.Given(`^a category "([^"]*)" of type "([^"]*)" exists$`, test.aCategoryExists)
	ctx.Given(`^an account "([^"]*)" exists$`, test.anAccountExists)
	ctx.Given(`^a planned entry "([^"]*)" of "([^"]*)" in category "([^"]*)" expected between day (\d+) and (\d+)$`, test.aPlannedEntryExists)
	ctx.Given(`^a planned income entry "([^"]*)" of "([^"]*)" in category "([^"]*)"$`, test.aPlannedIncomeEntryExists)
	ctx.Given(`^a debit of "([^"]*)" described "([^"]*)" on "([^"]*)"$`, test.aDebitExists)
	ctx.Given(`^a credit of "([^"]*)" described "([^"]*)" on "([^"]*)"$`, test.aCreditExists)
	ctx.Given(`^the entry "([^"]*)" is matched to the last transaction for (\d+)/(\d+)$`, test.theEntryIsMatched)

	// Requests
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Assertions
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjects)
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.accountID = ""
	t.lastCategoryID = ""
	t.categoryIDs = make(map[string]string)
	t.lastEntryID = ""
	t.entryIDs = make(map[string]string)
	t.lastTransactionID = ""
	t.lastID = ""

	if err := t.db.Clear(); err != nil {
		panic(fmt.Sprintf("failed to clear database: %v", err))
	}
	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		panic(fmt.Sprintf("failed to clear redis: %v", err))
	}
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		gin.SetMode(gin.TestMode)
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		conn := t.db.DbConn

		userRepo := persistence.NewUserRepository(conn)
		categoryRepo := persistence.NewCategoryRepository(conn)
		accountRepo := persistence.NewAccountRepository(conn)
		transactionRepo := persistence.NewTransactionRepository(conn)
		entryRepo := persistence.NewPlannedEntryRepository(conn)
		statusRepo := persistence.NewPlannedEntryStatusRepository(conn)
		budgetRepo := persistence.NewCategoryBudgetRepository(conn)
		patternRepo := persistence.NewAdvancedPatternRepository(conn)

		passwordService := adapters.NewPasswordService()
		tokenService := adapters.NewTokenService(testJWTSecret, 15*time.Minute)
		geminiService := adapters.NewGeminiService("")

		spendingCache := cache.NewRedisSpendingCache(mock.NewRedis(), time.Minute)
		publisher := events.NewNoopPublisher()

		registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
		loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

		createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
		listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
		createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
		listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)

		createTransactionUseCase := transaction.NewCreateTransactionUseCase(
			transactionRepo, accountRepo, patternRepo, spendingCache, logger)
		listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
		updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(
			transactionRepo, categoryRepo, spendingCache, logger)
		suggestCategoryUseCase := transaction.NewSuggestCategoryUseCase(
			transactionRepo, categoryRepo, geminiService)

		createEntryUseCase := plannedentry.NewCreatePlannedEntryUseCase(entryRepo, categoryRepo)
		listEntriesUseCase := plannedentry.NewListEntriesForMonthUseCase(entryRepo, statusRepo, logger)
		updateEntryUseCase := plannedentry.NewUpdatePlannedEntryUseCase(entryRepo, categoryRepo)
		deactivateEntryUseCase := plannedentry.NewDeactivatePlannedEntryUseCase(entryRepo)

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

		getSpendingUseCase := reconciliation.NewGetSpendingUseCase(
			entryRepo, statusRepo, transactionRepo, categoryRepo, spendingCache, logger)
		getIncomePlanningUseCase := income.NewGetIncomePlanningUseCase(
			entryRepo, statusRepo, 0.04)

		upsertBudgetUseCase := budget.NewUpsertBudgetUseCase(budgetRepo, categoryRepo)
		listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
		progressUseCase := budget.NewGetBudgetProgressUseCase(
			budgetRepo, categoryRepo, entryRepo, getSpendingUseCase, valueobject.DefaultProgressThresholds())
		consolidateUseCase := budget.NewConsolidateBudgetUseCase(budgetRepo, entryRepo)
		copyBudgetsUseCase := budget.NewCopyBudgetsUseCase(budgetRepo, logger)

		createPatternUseCase := pattern.NewCreatePatternUseCase(
			patternRepo, transactionRepo, categoryRepo, logger)
		listPatternsUseCase := pattern.NewListPatternsUseCase(patternRepo)
		updatePatternUseCase := pattern.NewUpdatePatternUseCase(patternRepo)
		deletePatternUseCase := pattern.NewDeletePatternUseCase(patternRepo)
		applyPatternUseCase := pattern.NewApplyPatternUseCase(patternRepo, transactionRepo, logger)

		healthController := controller.NewHealthController(func() bool { return true })
		authController := controller.NewAuthController(registerUseCase, loginUseCase)
		categoryController := controller.NewCategoryController(createCategoryUseCase, listCategoriesUseCase)
		accountController := controller.NewAccountController(createAccountUseCase, listAccountsUseCase)
		transactionController := controller.NewTransactionController(
			createTransactionUseCase, listTransactionsUseCase, updateTransactionUseCase, suggestCategoryUseCase)
		plannedEntryController := controller.NewPlannedEntryController(
			createEntryUseCase, listEntriesUseCase, updateEntryUseCase, deactivateEntryUseCase,
			matchUseCase, unmatchUseCase, dismissUseCase, undismissUseCase, suggestMatchesUseCase)
		budgetController := controller.NewBudgetController(
			upsertBudgetUseCase, listBudgetsUseCase, progressUseCase, consolidateUseCase, copyBudgetsUseCase)
		reconciliationController := controller.NewReconciliationController(
			getSpendingUseCase, getIncomePlanningUseCase)
		patternController := controller.NewPatternController(
			createPatternUseCase, listPatternsUseCase, updatePatternUseCase, deletePatternUseCase,
			applyPatternUseCase)

		loginRateLimiter := middleware.NewRateLimiterWithConfig(1000, time.Minute)
		authMiddleware := middleware.NewAuthMiddleware(tokenService)

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
		engine := r.Setup("test")

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", serverPort),
			Handler: engine,
		}
		go func() {
			_ = server.ListenAndServe()
		}()
	})

	// Wait for the server to accept requests.
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) iAmRegisteredAs(email string) error {
	body := map[string]any{
		"email":    email,
		"name":     "Test User",
		"password": "StrongPass123!",
	}
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/register", body); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("registration failed with status %d: %s", t.response.status, t.response.raw)
	}
	token, ok := t.response.body["access_token"].(string)
	if !ok || token == "" {
		return fmt.Errorf("no access token in registration response: %s", t.response.raw)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) aCategoryExists(name, categoryType string) error {
	body := map[string]any{"name": name, "type": categoryType}
	if err := t.executeRequest(http.MethodPost, "/api/v1/categories", body); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("category creation failed with status %d: %s", t.response.status, t.response.raw)
	}
	id, _ := t.response.body["id"].(string)
	t.lastCategoryID = id
	t.categoryIDs[name] = id
	return nil
}

func (t *testContext) anAccountExists(name string) error {
	body := map[string]any{"name": name}
	if err := t.executeRequest(http.MethodPost, "/api/v1/accounts", body); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("account creation failed with status %d: %s", t.response.status, t.response.raw)
	}
	t.accountID, _ = t.response.body["id"].(string)
	return nil
}

func (t *testContext) aPlannedEntryExists(description, amount, categoryName string, dayStart, dayEnd int) error {
	return t.createEntry(description, amount, categoryName, "expense", dayStart, dayEnd)
}

func (t *testContext) aPlannedIncomeEntryExists(description, amount, categoryName string) error {
	return t.createEntry(description, amount, categoryName, "income", 0, 0)
}

func (t *testContext) createEntry(description, amount, categoryName, entryType string, dayStart, dayEnd int) error {
	categoryID, ok := t.categoryIDs[categoryName]
	if !ok {
		return fmt.Errorf("category %q was not created", categoryName)
	}
	body := map[string]any{
		"category_id": categoryID,
		"description": description,
		"amount_min":  amount,
		"type":        entryType,
	}
	if dayStart > 0 {
		body["expected_day_start"] = dayStart
		body["expected_day_end"] = dayEnd
	}
	if err := t.executeRequest(http.MethodPost, "/api/v1/planned-entries", body); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("entry creation failed with status %d: %s", t.response.status, t.response.raw)
	}
	id, _ := t.response.body["id"].(string)
	t.lastEntryID = id
	t.entryIDs[description] = id
	return nil
}

func (t *testContext) aDebitExists(amount, description, date string) error {
	return t.createTransaction(amount, description, date, "debit")
}

func (t *testContext) aCreditExists(amount, description, date string) error {
	return t.createTransaction(amount, description, date, "credit")
}

func (t *testContext) createTransaction(amount, description, date, txType string) error {
	if t.accountID == "" {
		return fmt.Errorf("no account was created")
	}
	body := map[string]any{
		"account_id":  t.accountID,
		"date":        date,
		"description": description,
		"amount":      amount,
		"type":        txType,
	}
	if err := t.executeRequest(http.MethodPost, "/api/v1/transactions", body); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("transaction creation failed with status %d: %s", t.response.status, t.response.raw)
	}
	if tx, ok := t.response.body["transaction"].(map[string]any); ok {
		t.lastTransactionID, _ = tx["id"].(string)
	}
	return nil
}

func (t *testContext) theEntryIsMatched(description string, month, year int) error {
	entryID, ok := t.entryIDs[description]
	if !ok {
		return fmt.Errorf("entry %q was not created", description)
	}
	path := fmt.Sprintf("/api/v1/planned-entries/%s/match?month=%d&year=%d", entryID, month, year)
	body := map[string]any{"transaction_id": t.lastTransactionID}
	if err := t.executeRequest(http.MethodPost, path, body); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("match failed with status %d: %s", t.response.status, t.response.raw)
	}
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequestRaw(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequestRaw(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{account_id}}", t.accountID)
	content = strings.ReplaceAll(content, "{{category_id}}", t.lastCategoryID)
	content = strings.ReplaceAll(content, "{{entry_id}}", t.lastEntryID)
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransactionID)
	content = strings.ReplaceAll(content, "{{last_id}}", t.lastID)
	for name, id := range t.categoryIDs {
		content = strings.ReplaceAll(content, "{{category_id:"+name+"}}", id)
	}
	for name, id := range t.entryIDs {
		content = strings.ReplaceAll(content, "{{entry_id:"+name+"}}", id)
	}
	return content
}

func (t *testContext) executeRequest(method, path string, body map[string]any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return t.executeRequestRaw(method, path, payload)
}

func (t *testContext) executeRequestRaw(method, path string, payload []byte) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode, raw: string(raw)}
	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err == nil {
		t.response.body = parsed
		if id, ok := parsed["id"].(string); ok {
			t.lastID = id
		}
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expected int) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if t.response.status != expected {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expected, t.response.status, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if !strings.Contains(t.response.raw, t.replacePlaceholders(expected)) {
		return fmt.Errorf("response does not contain %q. Body: %s", expected, t.response.raw)
	}
	return nil
}

// lookupField walks a dot-separated path through the parsed response.
func (t *testContext) lookupField(path string) (any, error) {
	if t.response == nil || t.response.body == nil {
		return nil, fmt.Errorf("no JSON response received")
	}
	var current any = t.response.body
	for _, part := range strings.Split(path, ".") {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object in %s", part, t.response.raw)
		}
		current, ok = object[part]
		if !ok {
			return nil, fmt.Errorf("field %q not found in %s", part, t.response.raw)
		}
	}
	return current, nil
}

func (t *testContext) theResponseFieldShouldBe(field, expected string) error {
	value, err := t.lookupField(field)
	if err != nil {
		return err
	}
	actual := fmt.Sprintf("%v", value)
	if actual != t.replacePlaceholders(expected) {
		return fmt.Errorf("field %q expected %q, got %q", field, expected, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.lookupField(field)
	return err
}

func (t *testContext) theDbShouldContainObjects(expected int, table string) error {
	count, err := t.db.Count(table)
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
	return nil
}
