package catalog

import "testing"

func TestDefault(t *testing.T) {
	cat := Default()

	t.Run("all_industries_have_five_stocks", func(t *testing.T) {
		industries := []string{"Technology", "Healthcare", "Energy", "Finance", "Consumer", "Automotive"}
		if len(cat.StocksByIndustry) != len(industries) {
			t.Errorf("expected %d industries, got %d", len(industries), len(cat.StocksByIndustry))
		}
		for _, industry := range industries {
			stocks := cat.StocksForIndustry(industry)
			if len(stocks) != 5 {
				t.Errorf("expected 5 stocks for %s, got %d", industry, len(stocks))
			}
			for _, stock := range stocks {
				if stock.Symbol == "" || stock.Name == "" || stock.Price <= 0 {
					t.Errorf("incomplete stock entry in %s: %+v", industry, stock)
				}
			}
		}
	})

	t.Run("unknown_industry_yields_nil", func(t *testing.T) {
		if stocks := cat.StocksForIndustry("Aerospace"); stocks != nil {
			t.Errorf("expected nil for unknown industry, got %v", stocks)
		}
	})

	t.Run("default_coins", func(t *testing.T) {
		want := []string{"bitcoin", "ethereum", "solana"}
		if len(cat.DefaultCoins) != len(want) {
			t.Fatalf("expected %d default coins, got %d", len(want), len(cat.DefaultCoins))
		}
		for i, id := range want {
			if cat.DefaultCoins[i] != id {
				t.Errorf("expected default coin %d to be %s, got %s", i, id, cat.DefaultCoins[i])
			}
		}
	})

	t.Run("fallback_stocks", func(t *testing.T) {
		if len(cat.FallbackStocks) != 3 {
			t.Fatalf("expected 3 fallback stocks, got %d", len(cat.FallbackStocks))
		}
		if cat.FallbackStocks[0].Symbol != "AAPL" {
			t.Errorf("expected first fallback AAPL, got %s", cat.FallbackStocks[0].Symbol)
		}
	})
}

func TestCoinInfo(t *testing.T) {
	cat := Default()

	t.Run("known_coin", func(t *testing.T) {
		coin := cat.CoinInfo("bitcoin")
		if coin.Name != "Bitcoin" || coin.Symbol != "BTC" {
			t.Errorf("expected Bitcoin/BTC, got %s/%s", coin.Name, coin.Symbol)
		}
	})

	t.Run("unknown_coin_synthesized", func(t *testing.T) {
		coin := cat.CoinInfo("mycoin")
		if coin.Name != "Mycoin" {
			t.Errorf("expected capitalized name Mycoin, got %s", coin.Name)
		}
		if coin.Symbol != "MYCOIN" {
			t.Errorf("expected uppercased symbol MYCOIN, got %s", coin.Symbol)
		}
	})

	t.Run("empty_id", func(t *testing.T) {
		coin := cat.CoinInfo("")
		if coin.Name != "" || coin.Symbol != "" {
			t.Errorf("expected empty metadata for empty id, got %+v", coin)
		}
	})
}
