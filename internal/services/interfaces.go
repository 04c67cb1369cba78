package services

import (
	"context"
	"time"

	"cryptoadvisor/internal/models"
	"cryptoadvisor/internal/news"
	"cryptoadvisor/internal/pagination"
	"cryptoadvisor/internal/quote"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	UpdateUser(id, name, email, password string) (*models.User, error)
	DeleteUser(id string) error
}

// PreferenceServicer defines the contract for preference-related business logic.
type PreferenceServicer interface {
	GetPreferences(userID string) (*models.UserPreference, error)
	SavePreferences(userID string, input PreferenceInput) (*models.UserPreference, bool, error)
}

// PreferenceInput carries a validated preference update.
type PreferenceInput struct {
	PreferredAssetType models.AssetPreference
	InvestmentType     string
	Industries         []string
	Cryptocurrencies   []string
}

// StockQuoter fetches a price snapshot for a ticker symbol.
// A false return means the quote is unavailable, never an error.
type StockQuoter interface {
	Fetch(ctx context.Context, symbol string) (quote.Snapshot, bool)
	Cached(symbol string) bool
}

// CryptoQuoter fetches a price snapshot for a provider coin id.
type CryptoQuoter interface {
	Fetch(ctx context.Context, id string) (quote.Snapshot, bool)
	Cached(id string) bool
}

// RecommendationInput carries a manually created recommendation row.
type RecommendationInput struct {
	AssetType          models.AssetClass
	AssetSymbol        string
	AssetName          string
	CurrentPrice       float64
	RecommendationType string
	ConfidenceScore    float64
	Reasoning          string
	NewsSummary        string
}

// RecommendationServicer defines the contract for recommendation logic.
type RecommendationServicer interface {
	// GetActive returns the user's active recommendations, generating a
	// fresh batch first when none exist.
	GetActive(ctx context.Context, userID string) ([]models.Recommendation, error)

	// Refresh unconditionally deletes the user's recommendations and
	// regenerates them from current preferences.
	Refresh(ctx context.Context, userID string) error

	// Generate synthesizes and persists recommendations for the given
	// preferences, returning the full generated set.
	Generate(ctx context.Context, userID string, prefs *models.UserPreference) ([]models.Recommendation, error)

	// Create persists a single caller-supplied recommendation row.
	Create(userID string, input RecommendationInput) (*models.Recommendation, error)

	// DeleteForUser removes all of a user's recommendation rows.
	DeleteForUser(userID string) error
}

// ForumServicer defines the contract for the discussion forum.
type ForumServicer interface {
	ListPosts(page pagination.PageRequest) (*pagination.PageResponse[ForumPostView], error)
	CreatePost(userID, title, content string) (*models.ForumPost, error)
	ListReplies(forumPostID string) ([]ForumReplyView, error)
	CreateReply(userID, forumPostID, content string) (*models.ForumReply, error)
}

// ForumPostView is a forum post with its author's display name.
type ForumPostView struct {
	models.ForumPost
	AuthorName string `json:"author_name"`
}

// ForumReplyView is a forum reply with its author's display name.
type ForumReplyView struct {
	models.ForumReply
	AuthorName string `json:"author_name"`
}

// NewsFeed is the merged, sorted news response for one user.
type NewsFeed struct {
	Articles    []news.Article         `json:"news"`
	AssetType   models.AssetPreference `json:"assetType"`
	LastUpdated time.Time              `json:"lastUpdated"`
}

// NewsServicer defines the contract for preference-filtered news.
type NewsServicer interface {
	GetNews(ctx context.Context, userID string) (*NewsFeed, error)
}
