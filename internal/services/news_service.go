package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "cryptoadvisor/internal/errors"
	"cryptoadvisor/internal/models"
	"cryptoadvisor/internal/news"
)

// maxNewsArticles caps the merged feed size.
const maxNewsArticles = 20

// NewsSource provides the raw per-asset-class article streams. Satisfied by
// *news.Client in production.
type NewsSource interface {
	CryptoNews(ctx context.Context) []news.Article
	StockNews(ctx context.Context) []news.Article
}

// newsService assembles preference-filtered news feeds.
type newsService struct {
	db     *gorm.DB
	source NewsSource
	now    func() time.Time
}

// NewNewsService creates a new NewsServicer. Now is optional and defaults
// to time.Now.
func NewNewsService(db *gorm.DB, source NewsSource, now func() time.Time) NewsServicer {
	if now == nil {
		now = time.Now
	}
	return &newsService{db: db, source: source, now: now}
}

// GetNews merges crypto and stock headlines according to the user's stored
// asset preference, newest first.
func (s *newsService) GetNews(ctx context.Context, userID string) (*NewsFeed, error) {
	var prefs models.UserPreference
	if err := s.db.Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPreferencesNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var articles []news.Article
	if prefs.PreferredAssetType.IncludesCrypto() {
		articles = append(articles, tagged(s.source.CryptoNews(ctx), string(models.AssetClassCrypto))...)
	}
	if prefs.PreferredAssetType.IncludesStocks() {
		articles = append(articles, tagged(s.source.StockNews(ctx), string(models.AssetClassStocks))...)
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Date.After(articles[j].Date)
	})
	if len(articles) > maxNewsArticles {
		articles = articles[:maxNewsArticles]
	}
	if articles == nil {
		articles = []news.Article{}
	}

	return &NewsFeed{
		Articles:    articles,
		AssetType:   prefs.PreferredAssetType,
		LastUpdated: s.now(),
	}, nil
}

func tagged(articles []news.Article, assetType string) []news.Article {
	for i := range articles {
		articles[i].Type = assetType
	}
	return articles
}
