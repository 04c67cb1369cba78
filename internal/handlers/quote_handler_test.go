package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"cryptoadvisor/internal/quote"
)

// --- mock quoters ---

type mockQuoter struct {
	snapshots map[string]quote.Snapshot
	cached    map[string]bool
}

func (m *mockQuoter) Fetch(_ context.Context, id string) (quote.Snapshot, bool) {
	snapshot, ok := m.snapshots[id]
	return snapshot, ok
}

func (m *mockQuoter) Cached(id string) bool {
	return m.cached[id]
}

func setupQuoteRouter(handler *QuoteHandler) *gin.Engine {
	r := gin.New()
	r.GET("/stocks/:symbol/price", handler.GetStockPrice)
	r.GET("/crypto/:id/price", handler.GetCryptoPrice)
	return r
}

func TestQuoteHandler_GetStockPrice(t *testing.T) {
	t.Run("returns 200 with uppercased symbol", func(t *testing.T) {
		stocks := &mockQuoter{snapshots: map[string]quote.Snapshot{
			"AAPL": {Price: 178.5, Change: 1.2, ChangePercent: 0.68},
		}}
		r := setupQuoteRouter(NewQuoteHandler(stocks, &mockQuoter{}))

		rec := doRequest(r, "GET", "/stocks/aapl/price", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["symbol"] != "AAPL" {
			t.Errorf("expected symbol AAPL, got %v", result["symbol"])
		}
		if result["price"] != 178.5 {
			t.Errorf("expected price 178.5, got %v", result["price"])
		}
		if result["cached"] != false {
			t.Errorf("expected cached false on first lookup, got %v", result["cached"])
		}
	})

	t.Run("reports cached snapshot", func(t *testing.T) {
		stocks := &mockQuoter{
			snapshots: map[string]quote.Snapshot{"AAPL": {Price: 178.5}},
			cached:    map[string]bool{"AAPL": true},
		}
		r := setupQuoteRouter(NewQuoteHandler(stocks, &mockQuoter{}))

		rec := doRequest(r, "GET", "/stocks/AAPL/price", "")

		result := parseJSON(t, rec)
		if result["cached"] != true {
			t.Errorf("expected cached true, got %v", result["cached"])
		}
	})

	t.Run("returns 404 when unavailable", func(t *testing.T) {
		r := setupQuoteRouter(NewQuoteHandler(&mockQuoter{}, &mockQuoter{}))

		rec := doRequest(r, "GET", "/stocks/ZZZZ/price", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "QUOTE_UNAVAILABLE")
	})
}

func TestQuoteHandler_GetCryptoPrice(t *testing.T) {
	t.Run("returns 200 with lowercased id", func(t *testing.T) {
		crypto := &mockQuoter{snapshots: map[string]quote.Snapshot{
			"bitcoin": {Price: 64000, Change: 1200, ChangePercent: 1.9},
		}}
		r := setupQuoteRouter(NewQuoteHandler(&mockQuoter{}, crypto))

		rec := doRequest(r, "GET", "/crypto/Bitcoin/price", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["id"] != "bitcoin" {
			t.Errorf("expected id bitcoin, got %v", result["id"])
		}
		if result["change_percent"] != 1.9 {
			t.Errorf("expected change_percent 1.9, got %v", result["change_percent"])
		}
	})

	t.Run("returns 404 when unavailable", func(t *testing.T) {
		r := setupQuoteRouter(NewQuoteHandler(&mockQuoter{}, &mockQuoter{}))

		rec := doRequest(r, "GET", "/crypto/no-such-coin/price", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
