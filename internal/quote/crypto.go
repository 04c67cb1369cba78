package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"cryptoadvisor/internal/logger"
)

const coinGeckoBaseURL = "https://api.coingecko.com/api/v3"

// simplePriceResponse maps coin id -> currency -> price.
type simplePriceResponse map[string]map[string]float64

// marketEntry is a single row from the CoinGecko markets endpoint.
type marketEntry struct {
	PriceChange24h           float64 `json:"price_change_24h"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
}

// CryptoFetcher retrieves current crypto quotes from CoinGecko using a
// provider-specific lowercase coin id (e.g. "bitcoin").
type CryptoFetcher struct {
	apiKey     string
	httpClient *http.Client
	cache      *Cache
	baseURL    string // overridable for tests
}

// NewCryptoFetcher creates a crypto quote fetcher backed by the given cache.
func NewCryptoFetcher(apiKey string, httpClient *http.Client, cache *Cache) *CryptoFetcher {
	return &CryptoFetcher{
		apiKey:     apiKey,
		httpClient: httpClient,
		cache:      cache,
		baseURL:    coinGeckoBaseURL,
	}
}

// CacheKey returns the cache key for a coin id. Prefixed so crypto ids can
// never collide with stock ticker keys in the shared cache.
func (f *CryptoFetcher) CacheKey(id string) string {
	return "crypto_" + id
}

// Cached reports whether a fresh snapshot for the coin id is already held.
func (f *CryptoFetcher) Cached(id string) bool {
	return f.cache.Fresh(f.CacheKey(id))
}

// Fetch returns the current snapshot for a coin id.
//
// The USD price comes from the simple-price endpoint; when that succeeds a
// second, independent call to the markets endpoint fills the 24h change
// fields. Price is worth more than change stats: a markets failure zeroes
// the change fields instead of failing the fetch. Only a simple-price
// failure reports not-ok.
func (f *CryptoFetcher) Fetch(ctx context.Context, id string) (Snapshot, bool) {
	return f.cache.GetOrFetch(f.CacheKey(id), func() (Snapshot, error) {
		return f.fetch(ctx, id)
	})
}

func (f *CryptoFetcher) fetch(ctx context.Context, id string) (Snapshot, error) {
	log := logger.Get()

	price, err := f.fetchPrice(ctx, id)
	if err != nil {
		log.Warnw("crypto price request failed", "id", id, "error", err)
		return Snapshot{}, err
	}

	snapshot := Snapshot{Price: price}

	change, changePercent, err := f.fetchChange(ctx, id)
	if err != nil {
		log.Debugw("crypto 24h change unavailable, using defaults", "id", id, "error", err)
		return snapshot, nil
	}
	snapshot.Change = change
	snapshot.ChangePercent = changePercent
	return snapshot, nil
}

func (f *CryptoFetcher) fetchPrice(ctx context.Context, id string) (float64, error) {
	query := url.Values{}
	query.Set("vs_currencies", "usd")
	query.Set("ids", id)
	if f.apiKey != "" {
		query.Set("x_cg_demo_api_key", f.apiKey)
	}

	var priceResp simplePriceResponse
	if err := f.getJSON(ctx, "/simple/price", query, &priceResp); err != nil {
		return 0, err
	}

	usd, found := priceResp[id]["usd"]
	if !found {
		return 0, fmt.Errorf("no usd price for %s in response", id)
	}
	return usd, nil
}

func (f *CryptoFetcher) fetchChange(ctx context.Context, id string) (float64, float64, error) {
	query := url.Values{}
	query.Set("vs_currency", "usd")
	query.Set("ids", id)
	if f.apiKey != "" {
		query.Set("x_cg_demo_api_key", f.apiKey)
	}

	var markets []marketEntry
	if err := f.getJSON(ctx, "/coins/markets", query, &markets); err != nil {
		return 0, 0, err
	}
	if len(markets) == 0 {
		return 0, 0, fmt.Errorf("empty markets response for %s", id)
	}
	return markets[0].PriceChange24h, markets[0].PriceChangePercentage24h, nil
}

func (f *CryptoFetcher) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
