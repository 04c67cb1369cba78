package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cryptoadvisor/internal/handlers"
	"cryptoadvisor/internal/logger"
	"cryptoadvisor/internal/middleware"
	"cryptoadvisor/internal/models"
	"cryptoadvisor/internal/news"
	"cryptoadvisor/internal/quote"
	"cryptoadvisor/internal/services"
	"cryptoadvisor/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.UserPreference{},
		&models.Recommendation{},
		&models.ForumPost{},
		&models.ForumReply{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// offlineTransport refuses every request, so any accidental outbound call
// surfaces as an unavailable quote instead of network traffic.
type offlineTransport struct{}

func (offlineTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, fmt.Errorf("outbound HTTP disabled in tests")
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite. API keys are empty and the HTTP client is offline, so quote
// fetchers fall back to curated prices and the news client serves
// placeholder articles.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	httpClient := &http.Client{Transport: offlineTransport{}}
	quoteCache := quote.NewCache(0)
	stockFetcher := quote.NewStockFetcher("", httpClient, quoteCache)
	cryptoFetcher := quote.NewCryptoFetcher("", httpClient, quoteCache)
	newsClient := news.NewClient("", httpClient)

	// Services
	userService := services.NewUserService(db)
	preferenceService := services.NewPreferenceService(db)
	recommendationService := services.NewRecommendationService(db, services.RecommendationDeps{
		Stocks: stockFetcher,
		Crypto: cryptoFetcher,
	})
	forumService := services.NewForumService(db)
	newsService := services.NewNewsService(db, newsClient, nil)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	preferenceHandler := handlers.NewPreferenceHandler(preferenceService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	forumHandler := handlers.NewForumHandler(forumService)
	newsHandler := handlers.NewNewsHandler(newsService)
	quoteHandler := handlers.NewQuoteHandler(stockFetcher, cryptoFetcher)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	v1.GET("/forums", forumHandler.ListPosts)
	v1.GET("/forums/:id/replies", forumHandler.ListReplies)
	v1.GET("/stocks/:symbol/price", quoteHandler.GetStockPrice)
	v1.GET("/crypto/:id/price", quoteHandler.GetCryptoPrice)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/auth/update", authHandler.UpdateAccount)
	protected.DELETE("/auth/delete", authHandler.DeleteAccount)

	protected.GET("/preferences", preferenceHandler.GetPreferences)
	protected.POST("/preferences", preferenceHandler.SavePreferences)

	protected.GET("/recommendations", recommendationHandler.GetRecommendations)
	protected.POST("/recommendations", recommendationHandler.CreateRecommendation)
	protected.POST("/recommendations/refresh", recommendationHandler.RefreshRecommendations)

	protected.GET("/news", newsHandler.GetNews)

	protected.POST("/forums", forumHandler.CreatePost)
	protected.POST("/forums/:id/replies", forumHandler.CreateReply)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, name, email, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":%q}`, name, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// loginUser logs in and returns the token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["token"].(string)
}

// savePreferences saves preferences for the given token and fails the test on error.
func (app *testApp) savePreferences(t *testing.T, token, body string) {
	t.Helper()
	rec := app.request("POST", "/api/v1/preferences", body, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("save preferences failed: %d %s", rec.Code, rec.Body.String())
	}
}
