package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cryptoadvisor/internal/errors"
	"cryptoadvisor/internal/models"
	"cryptoadvisor/internal/services"
)

// PreferenceHandler handles investment preference requests.
type PreferenceHandler struct {
	preferenceService services.PreferenceServicer
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(preferenceService services.PreferenceServicer) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

// SavePreferencesRequest represents the preference upsert payload.
type SavePreferencesRequest struct {
	PreferredAssetType models.AssetPreference `json:"preferred_asset_type" binding:"required,asset_preference"`
	InvestmentType     string                 `json:"investment_type" binding:"omitempty,investment_type"`
	Industries         []string               `json:"industries" binding:"omitempty,max=3,dive,min=1"`
	Cryptocurrencies   []string               `json:"cryptocurrencies" binding:"omitempty,max=5,dive,min=1"`
}

// GetPreferences returns the authenticated user's stored preferences.
// @Summary     Get preferences
// @Description Get the authenticated user's investment preferences
// @Tags        preferences
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.UserPreference "Stored preferences"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Preferences not set"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /preferences [get]
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	prefs, err := h.preferenceService.GetPreferences(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// SavePreferences creates or replaces the authenticated user's preferences.
// Changing any preference field discards the user's existing recommendations
// so the next listing regenerates them.
// @Summary     Save preferences
// @Description Create or update the authenticated user's investment preferences
// @Tags        preferences
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SavePreferencesRequest true "Preference details"
// @Success     200 {object} models.UserPreference "Saved preferences"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /preferences [post]
func (h *PreferenceHandler) SavePreferences(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SavePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	prefs, cleared, err := h.preferenceService.SavePreferences(userID, services.PreferenceInput{
		PreferredAssetType: req.PreferredAssetType,
		InvestmentType:     req.InvestmentType,
		Industries:         req.Industries,
		Cryptocurrencies:   req.Cryptocurrencies,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":                 "Preferences saved successfully",
		"preferences":             prefs,
		"recommendations_cleared": cleared,
	})
}
