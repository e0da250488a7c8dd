// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lifeenergy/backend/config"
	"github.com/lifeenergy/backend/internal/infra/dependency"
	"github.com/lifeenergy/backend/internal/integration/persistence/model"
	"github.com/lifeenergy/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// rebuildRateLimit is low enough for a scenario to hit it.
const rebuildRateLimit = 3

type testContext struct {
	uri      string
	headers  map[string]string
	client   *http.Client
	response *response
	db       *mock.Db

	accessToken string
	users       map[string]uuid.UUID            // email -> user id
	categories  map[string]map[string]uuid.UUID // email -> category name -> id

	currentReviewID         uuid.UUID
	currentCategoryReviewID uuid.UUID
}

type response struct {
	status int
	body   any
}

var (
	serverInit     sync.Once
	portInit       sync.Once
	testServerPort int
	testDB         *mock.Db
	injector       *dependency.Injector
	clock          = mock.NewTime()
)

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:    fmt.Sprintf("http://localhost:%d", testServerPort),
		client: &http.Client{Timeout: 10 * time.Second},
		db:     mock.NewDb(model.All()),
	}
	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Step(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Step(`^the current date is "([^"]*)"$`, test.theCurrentDateIs)

	// Ledger setup steps
	ctx.Step(`^a user exists with email "([^"]*)" and hourly wage "([^"]*)"$`, test.aUserExistsWithEmailAndHourlyWage)
	ctx.Step(`^a user exists with email "([^"]*)" without an hourly wage$`, test.aUserExistsWithEmailWithoutAnHourlyWage)
	ctx.Step(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Step(`^"([^"]*)" has a category "([^"]*)"$`, test.hasACategory)
	ctx.Step(`^"([^"]*)" spent "([^"]*)" on "([^"]*)" on "([^"]*)"$`, test.spentOnOn)
	ctx.Step(`^"([^"]*)" earned "([^"]*)" on "([^"]*)"$`, test.earnedOn)
	ctx.Step(`^"([^"]*)" deleted the category "([^"]*)"$`, test.deletedTheCategory)

	// Header steps
	ctx.Step(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Step(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.Step(`^I send (\d+) concurrent "([^"]*)" requests to "([^"]*)" with body:$`, test.iSendConcurrentRequestsToWithBody)

	// Response assertion steps
	ctx.Step(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Step(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Step(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
	ctx.Step(`^no monthly review locks should be held$`, test.noMonthlyReviewLocksShouldBeHeld)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.users = make(map[string]uuid.UUID)
	t.categories = make(map[string]map[string]uuid.UUID)
	t.currentReviewID = uuid.Nil
	t.currentCategoryReviewID = uuid.Nil

	clock.Reset()
	if injector != nil {
		injector.RebuildRateLimiter.Reset()
	}
	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return fmt.Errorf("failed to clear redis: %w", err)
	}
	return t.db.ClearDB()
}

func (t *testContext) startServer() error {
	serverInit.Do(func() {
		cfg := config.Load()
		cfg.JWT.Secret = testJWTSecret
		cfg.JWT.AccessTokenExpiry = 15 * time.Minute
		cfg.Review.RebuildRateLimit = rebuildRateLimit
		cfg.Review.RebuildRateWindow = time.Minute
		cfg.Review.CreateLockRetry = 10 * time.Millisecond

		redisClient := mock.NewRedis()
		injector = dependency.NewInjector(cfg, testDB.DbConn, dependency.Options{
			Redis: redisClient,
			DBHealthChecker: func() bool {
				return testDB != nil && testDB.DbConn != nil
			},
			RedisHealthChecker: func() bool {
				return redisClient.Ping(context.Background()).Err() == nil
			},
			Now: clock.Now,
		})

		engine := injector.Router.Setup("test")
		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", testServerPort),
			Handler: engine,
		}
		go func() {
			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server did not become ready on port %d", testServerPort)
}

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

func (t *testContext) theCurrentDateIs(date string) error {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	clock.SetCurrentTime(day.Add(12 * time.Hour))
	return nil
}
