// Package news fetches market news from the Marketaux API. Without a
// credential, or when the API misbehaves, the client degrades to a static
// placeholder article per asset class rather than returning nothing.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"cryptoadvisor/internal/logger"
)

const marketauxBaseURL = "https://api.marketaux.com/v1/news/all"

// Symbol filters sent to the news provider per asset class.
const (
	cryptoSymbols = "BTC,ETH,BNB,XRP,ADA,DOGE,SOL,MATIC,DOT,AVAX"
	stockSymbols  = "AAPL,MSFT,GOOGL,TSLA,AMZN"
)

// Article is a single news item.
type Article struct {
	Title   string    `json:"title"`
	Summary string    `json:"summary"`
	URL     string    `json:"url"`
	Source  string    `json:"source"`
	Date    time.Time `json:"date"`
	Type    string    `json:"type,omitempty"`
}

// marketauxResponse is the top-level Marketaux API payload.
type marketauxResponse struct {
	Data []marketauxArticle `json:"data"`
}

type marketauxArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Snippet     string `json:"snippet"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
}

// Client fetches news articles from Marketaux.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string // overridable for tests
	now        func() time.Time
}

// NewClient creates a news client. An empty API key is a valid
// "not configured" state served entirely from placeholders.
func NewClient(apiKey string, httpClient *http.Client) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    marketauxBaseURL,
		now:        time.Now,
	}
}

// CryptoNews returns recent cryptocurrency news. Never fails: missing
// credential or a provider error yields one static placeholder article.
func (c *Client) CryptoNews(ctx context.Context) []Article {
	if c.apiKey == "" {
		return []Article{{
			Title:   "Bitcoin Market Update",
			Summary: "Latest developments in cryptocurrency markets.",
			URL:     "https://www.coindesk.com",
			Source:  "CoinDesk",
			Date:    c.now(),
		}}
	}

	articles, err := c.fetch(ctx, cryptoSymbols)
	if err != nil {
		logger.Get().Warnw("crypto news fetch failed", "error", err)
		return []Article{{
			Title:   "Cryptocurrency Market Update",
			Summary: "Latest developments in crypto markets.",
			URL:     "https://www.coindesk.com",
			Source:  "CoinDesk",
			Date:    c.now(),
		}}
	}
	return articles
}

// StockNews returns recent stock market news with the same degradation
// policy as CryptoNews.
func (c *Client) StockNews(ctx context.Context) []Article {
	if c.apiKey == "" {
		return []Article{{
			Title:   "Tech Giants Report Record Quarterly Earnings",
			Summary: "Major technology companies have announced better-than-expected earnings.",
			URL:     "https://www.cnbc.com",
			Source:  "CNBC",
			Date:    c.now(),
		}}
	}

	articles, err := c.fetch(ctx, stockSymbols)
	if err != nil {
		logger.Get().Warnw("stock news fetch failed", "error", err)
		return []Article{{
			Title:   "Stock Market Update",
			Summary: "Latest developments in the stock markets.",
			URL:     "https://www.cnbc.com",
			Source:  "CNBC",
			Date:    c.now(),
		}}
	}
	return articles
}

func (c *Client) fetch(ctx context.Context, symbols string) ([]Article, error) {
	query := url.Values{}
	query.Set("api_token", c.apiKey)
	query.Set("symbols", symbols)
	query.Set("filter_entities", "true")
	query.Set("language", "en")
	query.Set("limit", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var newsResp marketauxResponse
	if err := json.NewDecoder(resp.Body).Decode(&newsResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	articles := make([]Article, 0, len(newsResp.Data))
	for _, item := range newsResp.Data {
		summary := item.Description
		if summary == "" {
			summary = item.Snippet
		}
		if summary == "" {
			summary = item.Title
		}
		source := item.Source
		if source == "" {
			source = "Market News"
		}

		date, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			date = c.now()
		}

		articles = append(articles, Article{
			Title:   item.Title,
			Summary: summary,
			URL:     item.URL,
			Source:  source,
			Date:    date,
		})
	}
	return articles, nil
}
