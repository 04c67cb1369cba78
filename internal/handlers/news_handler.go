package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cryptoadvisor/internal/services"
)

// NewsHandler handles preference-filtered news requests.
type NewsHandler struct {
	newsService services.NewsServicer
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(newsService services.NewsServicer) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// GetNews returns merged market headlines for the user's asset preference.
// @Summary     Get news
// @Description Get market news filtered by the authenticated user's asset preference
// @Tags        news
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.NewsFeed "Merged news feed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Preferences not set"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /news [get]
func (h *NewsHandler) GetNews(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	feed, err := h.newsService.GetNews(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}
