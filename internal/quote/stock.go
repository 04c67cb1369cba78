package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"cryptoadvisor/internal/logger"
)

const alphaVantageBaseURL = "https://www.alphavantage.co/query"

// globalQuoteResponse is the Alpha Vantage GLOBAL_QUOTE payload. All values
// arrive as strings under numbered keys.
type globalQuoteResponse struct {
	GlobalQuote map[string]string `json:"Global Quote"`
}

// StockFetcher retrieves current stock quotes from Alpha Vantage.
// A missing API key is a valid "not configured" state: Fetch returns
// unavailable immediately without an outbound call.
type StockFetcher struct {
	apiKey     string
	httpClient *http.Client
	cache      *Cache
	baseURL    string // overridable for tests
}

// NewStockFetcher creates a stock quote fetcher backed by the given cache.
func NewStockFetcher(apiKey string, httpClient *http.Client, cache *Cache) *StockFetcher {
	return &StockFetcher{
		apiKey:     apiKey,
		httpClient: httpClient,
		cache:      cache,
		baseURL:    alphaVantageBaseURL,
	}
}

// CacheKey returns the cache key for a ticker symbol.
func (f *StockFetcher) CacheKey(symbol string) string {
	return symbol
}

// Cached reports whether a fresh snapshot for symbol is already held.
func (f *StockFetcher) Cached(symbol string) bool {
	return f.cache.Fresh(f.CacheKey(symbol))
}

// Fetch returns the current snapshot for an uppercase ticker symbol.
// Every failure path (no credential, transport error, non-200 status,
// missing fields, unparseable numbers) reports not-ok; nothing is raised
// to the caller and failed lookups are never cached.
func (f *StockFetcher) Fetch(ctx context.Context, symbol string) (Snapshot, bool) {
	return f.cache.GetOrFetch(f.CacheKey(symbol), func() (Snapshot, error) {
		return f.fetch(ctx, symbol)
	})
}

func (f *StockFetcher) fetch(ctx context.Context, symbol string) (Snapshot, error) {
	log := logger.Get()

	if f.apiKey == "" {
		log.Debugw("stock quote provider not configured", "symbol", symbol)
		return Snapshot{}, fmt.Errorf("stock quote provider not configured")
	}

	query := url.Values{}
	query.Set("function", "GLOBAL_QUOTE")
	query.Set("symbol", symbol)
	query.Set("apikey", f.apiKey)
	reqURL := f.baseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("building request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		log.Warnw("stock quote request failed", "symbol", symbol, "error", err)
		return Snapshot{}, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Warnw("stock quote unexpected status", "symbol", symbol, "status", resp.StatusCode)
		return Snapshot{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var quoteResp globalQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quoteResp); err != nil {
		log.Warnw("stock quote decode failed", "symbol", symbol, "error", err)
		return Snapshot{}, fmt.Errorf("decoding response: %w", err)
	}

	price, err := parseQuoteField(quoteResp.GlobalQuote, "05. price")
	if err != nil {
		log.Warnw("stock quote missing price", "symbol", symbol, "error", err)
		return Snapshot{}, err
	}
	change, err := parseQuoteField(quoteResp.GlobalQuote, "09. change")
	if err != nil {
		return Snapshot{}, err
	}
	changePercent, err := parseQuoteField(quoteResp.GlobalQuote, "10. change percent")
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{Price: price, Change: change, ChangePercent: changePercent}, nil
}

// parseQuoteField extracts a numeric field from a GLOBAL_QUOTE payload,
// stripping the trailing % on percentage fields.
func parseQuoteField(quote map[string]string, key string) (float64, error) {
	raw, found := quote[key]
	if !found || raw == "" {
		return 0, fmt.Errorf("field %q missing from quote response", key)
	}
	value, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing field %q: %w", key, err)
	}
	return value, nil
}
