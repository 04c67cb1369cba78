package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"gorm.io/gorm"

	"cryptoadvisor/internal/catalog"
	apperrors "cryptoadvisor/internal/errors"
	"cryptoadvisor/internal/logger"
	"cryptoadvisor/internal/models"
	"cryptoadvisor/internal/quote"
	"cryptoadvisor/internal/uuid"
)

const (
	// activeRecommendationLimit caps how many rows a listing returns.
	activeRecommendationLimit = 20

	// maxStocksPerIndustry bounds how many picks a single industry
	// contributes to one generation run.
	maxStocksPerIndustry = 3
)

// RecommendationDeps bundles the recommendation service's collaborators.
// Rand and Now are optional; production wiring leaves them nil and tests
// inject a seeded source and a fixed clock.
type RecommendationDeps struct {
	Stocks      StockQuoter
	Crypto      CryptoQuoter
	Catalog     *catalog.Catalog
	StockPacer  *quote.Pacer
	CryptoPacer *quote.Pacer
	Rand        *rand.Rand
	Now         func() time.Time
}

// recommendationService synthesizes and stores recommendations.
type recommendationService struct {
	db          *gorm.DB
	stocks      StockQuoter
	crypto      CryptoQuoter
	catalog     *catalog.Catalog
	stockPacer  *quote.Pacer
	cryptoPacer *quote.Pacer
	rng         *rand.Rand
	rngMu       sync.Mutex
	now         func() time.Time
}

// NewRecommendationService creates a new RecommendationServicer.
func NewRecommendationService(db *gorm.DB, deps RecommendationDeps) RecommendationServicer {
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	cat := deps.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	stockPacer := deps.StockPacer
	if stockPacer == nil {
		stockPacer = quote.NewPacer(0)
	}
	cryptoPacer := deps.CryptoPacer
	if cryptoPacer == nil {
		cryptoPacer = quote.NewPacer(0)
	}
	return &recommendationService{
		db:          db,
		stocks:      deps.Stocks,
		crypto:      deps.Crypto,
		catalog:     cat,
		stockPacer:  stockPacer,
		cryptoPacer: cryptoPacer,
		rng:         rng,
		now:         now,
	}
}

// GetActive returns the user's unexpired recommendations ordered by
// confidence. When none exist they are generated lazily from the user's
// stored preferences first.
func (s *recommendationService) GetActive(ctx context.Context, userID string) ([]models.Recommendation, error) {
	prefs, err := s.loadPreferences(userID)
	if err != nil {
		return nil, err
	}

	recs, err := s.queryActive(userID)
	if err != nil {
		return nil, err
	}

	if len(recs) == 0 {
		logger.Get().Infow("no active recommendations, generating", "user_id", userID)
		if _, err := s.Generate(ctx, userID, prefs); err != nil {
			return nil, err
		}
		return s.queryActive(userID)
	}

	return recs, nil
}

// Refresh deletes all of the user's recommendations unconditionally and
// regenerates them. The delete and the inserts are deliberately not wrapped
// in one transaction; a crash in between leaves the user with zero rows
// until the next lazy generation.
func (s *recommendationService) Refresh(ctx context.Context, userID string) error {
	prefs, err := s.loadPreferences(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPreferencesNotFound) {
			return apperrors.ErrPreferencesRequired
		}
		return err
	}

	if err := s.DeleteForUser(userID); err != nil {
		return err
	}

	_, err = s.Generate(ctx, userID, prefs)
	return err
}

// Generate runs the synthesis algorithm: per selected asset class it picks
// candidates, fetches live prices sequentially (paced to respect provider
// rate limits), falls back to static data, and persists the resulting rows.
// A failed insert is logged and skipped; the full generated set is returned
// either way.
func (s *recommendationService) Generate(ctx context.Context, userID string, prefs *models.UserPreference) ([]models.Recommendation, error) {
	log := logger.Get()
	log.Infow("generating recommendations", "user_id", userID, "asset_type", prefs.PreferredAssetType)

	var recs []models.Recommendation

	if prefs.PreferredAssetType.IncludesStocks() {
		recs = append(recs, s.generateStocks(ctx, userID, prefs)...)
	}
	if prefs.PreferredAssetType.IncludesCrypto() {
		recs = append(recs, s.generateCrypto(ctx, userID, prefs)...)
	}

	for i := range recs {
		if err := s.db.Create(&recs[i]).Error; err != nil {
			log.Errorw("failed to insert recommendation",
				"user_id", userID,
				"symbol", recs[i].AssetSymbol,
				"error", err,
			)
		}
	}

	log.Infow("generated recommendations", "user_id", userID, "count", len(recs))
	return recs, nil
}

func (s *recommendationService) generateStocks(ctx context.Context, userID string, prefs *models.UserPreference) []models.Recommendation {
	horizon := prefs.Horizon()

	if len(prefs.Industries) == 0 {
		// No industries chosen: fixed blue-chip fallback set with its own
		// confidence distribution.
		var recs []models.Recommendation
		for _, stock := range s.catalog.FallbackStocks {
			_ = s.stockPacer.Wait(ctx)
			price, changePercent := s.resolveStockPrice(ctx, stock.Stock)

			recs = append(recs, s.newRecommendation(userID, models.Recommendation{
				AssetType:          models.AssetClassStocks,
				AssetSymbol:        stock.Symbol,
				AssetName:          stock.Name,
				CurrentPrice:       price,
				RecommendationType: horizon,
				ConfidenceScore:    s.confidence(75, 25),
				Reasoning:          fallbackStockReasoning(stock.Name, horizon, changePercent),
				NewsSummary: fmt.Sprintf("%s (%s) is %s %.2f%% today.",
					stock.Name, stock.Symbol, direction(changePercent), math.Abs(changePercent)),
			}))
		}
		return recs
	}

	var recs []models.Recommendation
	for _, industry := range prefs.Industries {
		stocks := s.catalog.StocksForIndustry(industry)
		if len(stocks) > maxStocksPerIndustry {
			stocks = stocks[:maxStocksPerIndustry]
		}

		for _, stock := range stocks {
			_ = s.stockPacer.Wait(ctx)
			price, changePercent := s.resolveStockPrice(ctx, stock)

			sentiment := "optimistic"
			if changePercent <= 0 {
				sentiment = "cautious"
			}

			recs = append(recs, s.newRecommendation(userID, models.Recommendation{
				AssetType:          models.AssetClassStocks,
				AssetSymbol:        stock.Symbol,
				AssetName:          stock.Name,
				CurrentPrice:       price,
				RecommendationType: horizon,
				ConfidenceScore:    s.confidence(70, 30),
				Reasoning:          industryStockReasoning(stock.Name, industry, horizon, price, changePercent),
				NewsSummary: fmt.Sprintf("%s (%s) is %s %.2f%% today. Analysts remain %s about %s sector performance.",
					stock.Name, stock.Symbol, direction(changePercent), math.Abs(changePercent), sentiment, industry),
			}))
		}
	}
	return recs
}

func (s *recommendationService) generateCrypto(ctx context.Context, userID string, prefs *models.UserPreference) []models.Recommendation {
	horizon := prefs.Horizon()

	candidates := prefs.Cryptocurrencies
	if len(candidates) == 0 {
		candidates = s.catalog.DefaultCoins
	}
	if len(candidates) > models.MaxCryptocurrencies {
		candidates = candidates[:models.MaxCryptocurrencies]
	}

	var recs []models.Recommendation
	for _, coinID := range candidates {
		coin := s.catalog.CoinInfo(coinID)

		_ = s.cryptoPacer.Wait(ctx)
		// Unavailable quotes degrade to a zero price rather than dropping
		// the recommendation.
		var price, changePercent float64
		if snapshot, ok := s.crypto.Fetch(ctx, coinID); ok {
			price = snapshot.Price
			changePercent = snapshot.ChangePercent
		} else {
			logger.Get().Warnw("could not fetch crypto price, using default 0", "id", coinID)
		}

		sentiment := "positive"
		if changePercent <= 0 {
			sentiment = "mixed"
		}

		recs = append(recs, s.newRecommendation(userID, models.Recommendation{
			AssetType:          models.AssetClassCrypto,
			AssetSymbol:        coin.Symbol,
			AssetName:          coin.Name,
			CurrentPrice:       price,
			RecommendationType: horizon,
			ConfidenceScore:    s.confidence(70, 30),
			Reasoning:          cryptoReasoning(coin.Name, coinID, horizon, price, changePercent),
			NewsSummary: fmt.Sprintf("%s (%s) is %s %.2f%% today. Market sentiment is %s.",
				coin.Name, coin.Symbol, direction(changePercent), math.Abs(changePercent), sentiment),
			CoingeckoID: coinID,
		}))
	}
	return recs
}

// Create persists a single caller-supplied recommendation row.
func (s *recommendationService) Create(userID string, input RecommendationInput) (*models.Recommendation, error) {
	if input.AssetType == "" || input.AssetSymbol == "" || input.AssetName == "" || input.RecommendationType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Required fields missing")
	}

	rec := s.newRecommendation(userID, models.Recommendation{
		AssetType:          input.AssetType,
		AssetSymbol:        input.AssetSymbol,
		AssetName:          input.AssetName,
		CurrentPrice:       input.CurrentPrice,
		RecommendationType: input.RecommendationType,
		ConfidenceScore:    input.ConfidenceScore,
		Reasoning:          input.Reasoning,
		NewsSummary:        input.NewsSummary,
	})

	if err := s.db.Create(&rec).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rec, nil
}

// DeleteForUser removes all of a user's recommendation rows.
func (s *recommendationService) DeleteForUser(userID string) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&models.Recommendation{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *recommendationService) loadPreferences(userID string) (*models.UserPreference, error) {
	var prefs models.UserPreference
	if err := s.db.Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPreferencesNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &prefs, nil
}

func (s *recommendationService) queryActive(userID string) ([]models.Recommendation, error) {
	var recs []models.Recommendation
	err := s.db.
		Where("user_id = ? AND expires_at > ?", userID, s.now()).
		Order("confidence_score DESC, created_at DESC").
		Limit(activeRecommendationLimit).
		Find(&recs).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return recs, nil
}

// newRecommendation stamps identity and lifetime onto a row. Expiration is
// always creation time plus exactly RecommendationTTL.
func (s *recommendationService) newRecommendation(userID string, rec models.Recommendation) models.Recommendation {
	createdAt := s.now()
	rec.ID = uuid.New()
	rec.UserID = userID
	rec.CreatedAt = createdAt
	rec.ExpiresAt = createdAt.Add(models.RecommendationTTL)
	return rec
}

// confidence draws base + rand*spread. The industry path uses 70..100, the
// no-industry fallback path 75..100.
func (s *recommendationService) confidence(base, spread float64) float64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return base + s.rng.Float64()*spread
}

func (s *recommendationService) resolveStockPrice(ctx context.Context, stock catalog.Stock) (price, changePercent float64) {
	if snapshot, ok := s.stocks.Fetch(ctx, stock.Symbol); ok {
		return snapshot.Price, snapshot.ChangePercent
	}
	return stock.Price, stock.Change
}

func direction(changePercent float64) string {
	if changePercent > 0 {
		return "up"
	}
	return "down"
}

func momentumWords(changePercent float64) (strength, gain string) {
	if changePercent > 0 {
		return "strong", "gain"
	}
	return "significant", "change"
}

func dayTradeAdvice(changePercent float64) string {
	if changePercent > 2 {
		return "Good for day trading opportunities."
	}
	return "Watch for volatility."
}

func industryStockReasoning(name, industry, horizon string, price, changePercent float64) string {
	if horizon == models.InvestmentTypeDayTrade {
		strength, gain := momentumWords(changePercent)
		return fmt.Sprintf("%s shows %s intraday momentum with %.2f%% %s. %s",
			name, strength, changePercent, gain, dayTradeAdvice(changePercent))
	}
	return fmt.Sprintf("%s is a solid %s stock with strong fundamentals, suitable for long-term investment. Current price: $%.2f.",
		name, industry, price)
}

func fallbackStockReasoning(name, horizon string, changePercent float64) string {
	if horizon == models.InvestmentTypeDayTrade {
		strength, gain := momentumWords(changePercent)
		return fmt.Sprintf("%s shows %s momentum with %.2f%% %s.", name, strength, changePercent, gain)
	}
	return fmt.Sprintf("%s is a blue-chip stock with strong fundamentals, suitable for long-term investment.", name)
}

func cryptoReasoning(name, coinID, horizon string, price, changePercent float64) string {
	if horizon == models.InvestmentTypeDayTrade {
		strength, gain := momentumWords(changePercent)
		return fmt.Sprintf("%s shows %s momentum with %.2f%% %s. %s",
			name, strength, changePercent, gain, dayTradeAdvice(changePercent))
	}

	stature := "promising"
	if coinID == "bitcoin" || coinID == "ethereum" {
		stature = "major"
	}
	return fmt.Sprintf("%s is a %s cryptocurrency with strong fundamentals, suitable for long-term investment. Current price: $%.2f.",
		name, stature, price)
}
