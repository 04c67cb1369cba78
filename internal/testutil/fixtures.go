package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"cryptoadvisor/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique name and email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := nextID()
	return CreateTestUserWithIdentity(t, db, fmt.Sprintf("testuser%d", n), fmt.Sprintf("user%d@test.com", n))
}

// CreateTestUserWithIdentity creates a user with the given name and email.
func CreateTestUserWithIdentity(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestPreferences stores preferences for the user.
func CreateTestPreferences(t *testing.T, db *gorm.DB, userID string, assetType models.AssetPreference, investmentType string, industries, cryptos []string) *models.UserPreference {
	t.Helper()

	prefs := &models.UserPreference{
		UserID:             userID,
		PreferredAssetType: assetType,
		InvestmentType:     investmentType,
		Industries:         industries,
		Cryptocurrencies:   cryptos,
	}
	if err := db.Create(prefs).Error; err != nil {
		t.Fatalf("failed to create test preferences: %v", err)
	}
	return prefs
}

// CreateTestRecommendation stores one recommendation row expiring at the
// given time.
func CreateTestRecommendation(t *testing.T, db *gorm.DB, userID string, expiresAt time.Time) *models.Recommendation {
	t.Helper()

	n := nextID()
	rec := &models.Recommendation{
		UserID:             userID,
		AssetType:          models.AssetClassStocks,
		AssetSymbol:        fmt.Sprintf("TST%d", n),
		AssetName:          fmt.Sprintf("Test Corp %d", n),
		CurrentPrice:       100,
		RecommendationType: models.InvestmentTypeLongTerm,
		ConfidenceScore:    80,
		Reasoning:          "test reasoning",
		NewsSummary:        "test summary",
		CreatedAt:          time.Now(),
		ExpiresAt:          expiresAt,
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("failed to create test recommendation: %v", err)
	}
	return rec
}

// CreateTestForumPost stores a forum post for the user.
func CreateTestForumPost(t *testing.T, db *gorm.DB, userID string) *models.ForumPost {
	t.Helper()

	post := &models.ForumPost{
		UserID:  userID,
		Title:   fmt.Sprintf("Test Post %d", nextID()),
		Content: "test content",
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create test forum post: %v", err)
	}
	return post
}

// CreateTestForumReply stores a reply under a post.
func CreateTestForumReply(t *testing.T, db *gorm.DB, postID, userID string) *models.ForumReply {
	t.Helper()

	reply := &models.ForumReply{
		ForumPostID: postID,
		UserID:      userID,
		Content:     fmt.Sprintf("test reply %d", nextID()),
	}
	if err := db.Create(reply).Error; err != nil {
		t.Fatalf("failed to create test forum reply: %v", err)
	}
	return reply
}
