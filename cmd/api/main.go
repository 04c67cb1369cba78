package main

import (
	"fmt"
	"net/http"
	"os"

	"cryptoadvisor/internal/config"
	"cryptoadvisor/internal/database"
	"cryptoadvisor/internal/handlers"
	"cryptoadvisor/internal/logger"
	"cryptoadvisor/internal/middleware"
	"cryptoadvisor/internal/news"
	"cryptoadvisor/internal/quote"
	"cryptoadvisor/internal/services"
	"cryptoadvisor/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           CryptoAdvisor API
// @version         1.0
// @description     CryptoAdvisor is a personal finance advisory backend that generates investment recommendations for stocks and cryptocurrencies based on user preferences and live market prices.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Quote fetching stack: one shared TTL cache, paced outbound fetchers.
	httpClient := &http.Client{Timeout: appConfig.HTTPClientTimeout}
	quoteCache := quote.NewCache(appConfig.QuoteCacheTTL)
	stockFetcher := quote.NewStockFetcher(appConfig.StockAPIKey, httpClient, quoteCache)
	cryptoFetcher := quote.NewCryptoFetcher(appConfig.CoinGeckoAPIKey, httpClient, quoteCache)
	newsClient := news.NewClient(appConfig.MarketauxAPIKey, httpClient)

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	preferenceService := services.NewPreferenceService(db)
	recommendationService := services.NewRecommendationService(db, services.RecommendationDeps{
		Stocks:      stockFetcher,
		Crypto:      cryptoFetcher,
		StockPacer:  quote.NewPacer(appConfig.StockFetchInterval),
		CryptoPacer: quote.NewPacer(appConfig.CryptoFetchInterval),
	})
	forumService := services.NewForumService(db)
	newsService := services.NewNewsService(db, newsClient, nil)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	preferenceHandler := handlers.NewPreferenceHandler(preferenceService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	forumHandler := handlers.NewForumHandler(forumService)
	newsHandler := handlers.NewNewsHandler(newsService)
	quoteHandler := handlers.NewQuoteHandler(stockFetcher, cryptoFetcher)
	statusHandler := handlers.NewStatusHandler(appConfig, quoteCache)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health and status probes
	router.GET("/api/health", statusHandler.Health)
	router.GET("/api/status", statusHandler.Status)

	// API v1 group
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

	// User account
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/auth/update", authHandler.UpdateAccount)
	protected.DELETE("/auth/delete", authHandler.DeleteAccount)

	// Preferences
	protected.GET("/preferences", preferenceHandler.GetPreferences)
	protected.POST("/preferences", preferenceHandler.SavePreferences)

	// Recommendations
	protected.GET("/recommendations", recommendationHandler.GetRecommendations)
	protected.POST("/recommendations", recommendationHandler.CreateRecommendation)
	protected.POST("/recommendations/refresh", recommendationHandler.RefreshRecommendations)

	// News
	protected.GET("/news", newsHandler.GetNews)

	// Forum writes
	protected.POST("/forums", forumHandler.CreatePost)
	protected.POST("/forums/:id/replies", forumHandler.CreateReply)

	log.Infof("Starting CryptoAdvisor backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
