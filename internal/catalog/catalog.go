// Package catalog holds the static reference data the recommendation
// generator falls back on: candidate stocks per industry with reference
// prices, and the coin id to display name/symbol mapping. The data is
// immutable after startup; tests inject trimmed catalogs through the
// same type.
package catalog

import "strings"

// Stock is a candidate stock with reference price data used when a live
// quote is unavailable.
type Stock struct {
	Symbol string
	Name   string
	Price  float64 // fallback price
	Change float64 // fallback percent change
}

// FallbackStock is a well-known stock used when the user chose no
// industries.
type FallbackStock struct {
	Stock
	Industry string
}

// Coin is display metadata for a cryptocurrency.
type Coin struct {
	Name   string
	Symbol string
}

// Catalog bundles all static reference tables.
type Catalog struct {
	StocksByIndustry map[string][]Stock
	Coins            map[string]Coin
	FallbackStocks   []FallbackStock
	DefaultCoins     []string
}

// StocksForIndustry returns the candidate stocks for an industry in table
// order. Unknown industries yield nil, never an error.
func (c *Catalog) StocksForIndustry(industry string) []Stock {
	return c.StocksByIndustry[industry]
}

// CoinInfo resolves a coin id to display metadata. Unknown ids get a
// synthesized name (capitalized id) and symbol (uppercased id).
func (c *Catalog) CoinInfo(id string) Coin {
	if coin, found := c.Coins[id]; found {
		return coin
	}
	return Coin{Name: capitalize(id), Symbol: strings.ToUpper(id)}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Default returns the built-in reference tables.
func Default() *Catalog {
	return &Catalog{
		StocksByIndustry: map[string][]Stock{
			"Technology": {
				{Symbol: "AAPL", Name: "Apple Inc.", Price: 178.50, Change: 2.3},
				{Symbol: "MSFT", Name: "Microsoft Corporation", Price: 378.91, Change: 1.8},
				{Symbol: "GOOGL", Name: "Alphabet Inc.", Price: 141.80, Change: 3.1},
				{Symbol: "NVDA", Name: "NVIDIA Corporation", Price: 495.22, Change: 5.2},
				{Symbol: "META", Name: "Meta Platforms Inc.", Price: 338.54, Change: 1.5},
			},
			"Healthcare": {
				{Symbol: "PFE", Name: "Pfizer Inc.", Price: 28.45, Change: 0.8},
				{Symbol: "JNJ", Name: "Johnson & Johnson", Price: 156.32, Change: 1.2},
				{Symbol: "UNH", Name: "UnitedHealth Group", Price: 524.18, Change: 2.1},
				{Symbol: "ABBV", Name: "AbbVie Inc.", Price: 168.90, Change: 1.4},
				{Symbol: "MRK", Name: "Merck & Co.", Price: 112.43, Change: 0.9},
			},
			"Energy": {
				{Symbol: "XOM", Name: "ExxonMobil Corp.", Price: 112.67, Change: 1.9},
				{Symbol: "CVX", Name: "Chevron Corporation", Price: 163.84, Change: 2.4},
				{Symbol: "COP", Name: "ConocoPhillips", Price: 118.92, Change: 1.7},
				{Symbol: "SLB", Name: "Schlumberger Limited", Price: 54.78, Change: 3.2},
				{Symbol: "EOG", Name: "EOG Resources Inc.", Price: 129.45, Change: 2.8},
			},
			"Finance": {
				{Symbol: "JPM", Name: "JPMorgan Chase & Co.", Price: 158.76, Change: 1.3},
				{Symbol: "BAC", Name: "Bank of America Corp.", Price: 34.52, Change: 0.7},
				{Symbol: "WFC", Name: "Wells Fargo & Company", Price: 52.89, Change: 1.1},
				{Symbol: "GS", Name: "Goldman Sachs Group", Price: 384.21, Change: 2.2},
				{Symbol: "MS", Name: "Morgan Stanley", Price: 95.34, Change: 1.6},
			},
			"Consumer": {
				{Symbol: "AMZN", Name: "Amazon.com Inc.", Price: 178.35, Change: 2.9},
				{Symbol: "WMT", Name: "Walmart Inc.", Price: 166.84, Change: 0.6},
				{Symbol: "HD", Name: "Home Depot Inc.", Price: 362.19, Change: 1.4},
				{Symbol: "NKE", Name: "Nike Inc.", Price: 93.76, Change: 2.1},
				{Symbol: "SBUX", Name: "Starbucks Corporation", Price: 95.43, Change: 1.8},
			},
			"Automotive": {
				{Symbol: "TSLA", Name: "Tesla Inc.", Price: 242.84, Change: 4.5},
				{Symbol: "F", Name: "Ford Motor Company", Price: 12.45, Change: 2.3},
				{Symbol: "GM", Name: "General Motors Company", Price: 38.67, Change: 1.9},
				{Symbol: "TM", Name: "Toyota Motor Corporation", Price: 238.92, Change: 1.2},
				{Symbol: "RIVN", Name: "Rivian Automotive Inc.", Price: 18.34, Change: 6.7},
			},
		},
		Coins: map[string]Coin{
			"bitcoin":       {Name: "Bitcoin", Symbol: "BTC"},
			"ethereum":      {Name: "Ethereum", Symbol: "ETH"},
			"binancecoin":   {Name: "BNB", Symbol: "BNB"},
			"ripple":        {Name: "XRP", Symbol: "XRP"},
			"cardano":       {Name: "Cardano", Symbol: "ADA"},
			"dogecoin":      {Name: "Dogecoin", Symbol: "DOGE"},
			"solana":        {Name: "Solana", Symbol: "SOL"},
			"matic-network": {Name: "Polygon", Symbol: "MATIC"},
			"polkadot":      {Name: "Polkadot", Symbol: "DOT"},
			"avalanche-2":   {Name: "Avalanche", Symbol: "AVAX"},
			"litecoin":      {Name: "Litecoin", Symbol: "LTC"},
			"chainlink":     {Name: "Chainlink", Symbol: "LINK"},
			"uniswap":       {Name: "Uniswap", Symbol: "UNI"},
			"tether":        {Name: "Tether", Symbol: "USDT"},
			"usd-coin":      {Name: "USD Coin", Symbol: "USDC"},
		},
		FallbackStocks: []FallbackStock{
			{Stock: Stock{Symbol: "AAPL", Name: "Apple Inc.", Price: 178.50, Change: 2.3}, Industry: "Technology"},
			{Stock: Stock{Symbol: "MSFT", Name: "Microsoft Corporation", Price: 378.91, Change: 1.8}, Industry: "Technology"},
			{Stock: Stock{Symbol: "JNJ", Name: "Johnson & Johnson", Price: 156.32, Change: 1.2}, Industry: "Healthcare"},
		},
		DefaultCoins: []string{"bitcoin", "ethereum", "solana"},
	}
}
