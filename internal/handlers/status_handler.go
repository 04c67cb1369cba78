package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cryptoadvisor/internal/config"
	"cryptoadvisor/internal/quote"
)

// StatusHandler serves the health and status probes.
type StatusHandler struct {
	cfg     *config.Config
	cache   *quote.Cache
	started time.Time
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(cfg *config.Config, cache *quote.Cache) *StatusHandler {
	return &StatusHandler{cfg: cfg, cache: cache, started: time.Now()}
}

// Health is the liveness probe.
// @Summary     Health check
// @Description Liveness probe
// @Tags        system
// @Produce     json
// @Success     200 {object} map[string]string "Service is healthy"
// @Router      /health [get]
func (h *StatusHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Status reports which upstream providers are configured and the quote
// cache occupancy.
// @Summary     Service status
// @Description Report configured upstream providers and cache occupancy
// @Tags        system
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service status"
// @Router      /status [get]
func (h *StatusHandler) Status(c *gin.Context) {
	configured := func(key string) string {
		if key != "" {
			return "configured"
		}
		return "not configured"
	}

	c.JSON(http.StatusOK, gin.H{
		"server": "running",
		"uptime": time.Since(h.started).Round(time.Second).String(),
		"apis": gin.H{
			"stocks": configured(h.cfg.StockAPIKey),
			"crypto": configured(h.cfg.CoinGeckoAPIKey),
			"news":   configured(h.cfg.MarketauxAPIKey),
		},
		"cache_size": h.cache.Len(),
	})
}
