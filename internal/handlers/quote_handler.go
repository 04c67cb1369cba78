package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "cryptoadvisor/internal/errors"
	"cryptoadvisor/internal/services"
)

// QuoteHandler exposes raw price probes for individual assets.
type QuoteHandler struct {
	stocks services.StockQuoter
	crypto services.CryptoQuoter
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(stocks services.StockQuoter, crypto services.CryptoQuoter) *QuoteHandler {
	return &QuoteHandler{stocks: stocks, crypto: crypto}
}

// GetStockPrice returns the current quote for a ticker symbol.
// @Summary     Get stock price
// @Description Get the current price snapshot for a stock ticker symbol
// @Tags        quotes
// @Produce     json
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} map[string]interface{} "Price snapshot"
// @Failure     400 {object} ErrorResponse "Invalid symbol"
// @Failure     404 {object} ErrorResponse "Price data not found"
// @Router      /stocks/{symbol}/price [get]
func (h *QuoteHandler) GetStockPrice(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid symbol"))
		return
	}

	cached := h.stocks.Cached(symbol)
	snapshot, ok := h.stocks.Fetch(c.Request.Context(), symbol)
	if !ok {
		respondWithError(c, apperrors.ErrQuoteUnavailable)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol":         symbol,
		"price":          snapshot.Price,
		"change":         snapshot.Change,
		"change_percent": snapshot.ChangePercent,
		"cached":         cached,
	})
}

// GetCryptoPrice returns the current quote for a coin id.
// @Summary     Get crypto price
// @Description Get the current price snapshot for a cryptocurrency id
// @Tags        quotes
// @Produce     json
// @Param       id path string true "Coin id, e.g. bitcoin"
// @Success     200 {object} map[string]interface{} "Price snapshot"
// @Failure     400 {object} ErrorResponse "Invalid id"
// @Failure     404 {object} ErrorResponse "Price data not found"
// @Router      /crypto/{id}/price [get]
func (h *QuoteHandler) GetCryptoPrice(c *gin.Context) {
	id := strings.ToLower(strings.TrimSpace(c.Param("id")))
	if id == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid id"))
		return
	}

	cached := h.crypto.Cached(id)
	snapshot, ok := h.crypto.Fetch(c.Request.Context(), id)
	if !ok {
		respondWithError(c, apperrors.ErrQuoteUnavailable)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             id,
		"price":          snapshot.Price,
		"change":         snapshot.Change,
		"change_percent": snapshot.ChangePercent,
		"cached":         cached,
	})
}
