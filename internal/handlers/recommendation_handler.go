package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cryptoadvisor/internal/errors"
	"cryptoadvisor/internal/models"
	"cryptoadvisor/internal/services"
)

// RecommendationHandler handles recommendation requests.
type RecommendationHandler struct {
	recommendationService services.RecommendationServicer
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(recommendationService services.RecommendationServicer) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// CreateRecommendationRequest represents a manually submitted recommendation.
type CreateRecommendationRequest struct {
	AssetType          models.AssetClass `json:"asset_type" binding:"required,asset_class"`
	AssetSymbol        string            `json:"asset_symbol" binding:"required,min=1,max=20"`
	AssetName          string            `json:"asset_name" binding:"required,min=1,max=100"`
	CurrentPrice       float64           `json:"current_price" binding:"omitempty,gte=0"`
	RecommendationType string            `json:"recommendation_type" binding:"required,investment_type"`
	ConfidenceScore    float64           `json:"confidence_score" binding:"omitempty,gte=0,lte=100"`
	Reasoning          string            `json:"reasoning"`
	NewsSummary        string            `json:"news_summary"`
}

// GetRecommendations returns the user's active recommendations, generating
// them first when none exist.
// @Summary     Get recommendations
// @Description Get active recommendations for the authenticated user, generating a fresh batch when none exist
// @Tags        recommendations
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Recommendation "Active recommendations"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Preferences not set"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recommendations [get]
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recs, err := h.recommendationService.GetActive(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recs,
		"count":           len(recs),
	})
}

// RefreshRecommendations discards the user's recommendations and regenerates
// them from current preferences and live prices.
// @Summary     Refresh recommendations
// @Description Delete all of the user's recommendations and regenerate them
// @Tags        recommendations
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Recommendations refreshed"
// @Failure     400 {object} ErrorResponse "Preferences not set"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recommendations/refresh [post]
func (h *RecommendationHandler) RefreshRecommendations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.recommendationService.Refresh(c.Request.Context(), userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recommendations refreshed successfully"})
}

// CreateRecommendation stores a caller-supplied recommendation row.
// @Summary     Create a recommendation
// @Description Store a manually created recommendation for the authenticated user
// @Tags        recommendations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateRecommendationRequest true "Recommendation details"
// @Success     201 {object} models.Recommendation "Recommendation created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recommendations [post]
func (h *RecommendationHandler) CreateRecommendation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rec, err := h.recommendationService.Create(userID, services.RecommendationInput{
		AssetType:          req.AssetType,
		AssetSymbol:        req.AssetSymbol,
		AssetName:          req.AssetName,
		CurrentPrice:       req.CurrentPrice,
		RecommendationType: req.RecommendationType,
		ConfidenceScore:    req.ConfidenceScore,
		Reasoning:          req.Reasoning,
		NewsSummary:        req.NewsSummary,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recommendation": rec})
}
