package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cryptoadvisor/internal/errors"
	"cryptoadvisor/internal/pagination"
	"cryptoadvisor/internal/services"
)

// ForumHandler handles discussion forum requests.
type ForumHandler struct {
	forumService services.ForumServicer
}

// NewForumHandler creates a new ForumHandler.
func NewForumHandler(forumService services.ForumServicer) *ForumHandler {
	return &ForumHandler{forumService: forumService}
}

// CreatePostRequest represents the payload for a new forum post.
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=200"`
	Content string `json:"content" binding:"required,min=1,max=10000"`
}

// CreateReplyRequest represents the payload for a new forum reply.
type CreateReplyRequest struct {
	Content string `json:"content" binding:"required,min=1,max=10000"`
}

// ListPosts returns forum posts newest first.
// @Summary     List forum posts
// @Description List forum posts newest first with author names
// @Tags        forum
// @Produce     json
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size (max 100)"
// @Success     200 {object} pagination.PageResponse[services.ForumPostView] "Forum posts"
// @Failure     400 {object} ErrorResponse "Invalid pagination"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /forums [get]
func (h *ForumHandler) ListPosts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.forumService.ListPosts(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreatePost creates a new discussion thread.
// @Summary     Create a forum post
// @Description Start a new discussion thread
// @Tags        forum
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePostRequest true "Post details"
// @Success     201 {object} models.ForumPost "Post created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /forums [post]
func (h *ForumHandler) CreatePost(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	post, err := h.forumService.CreatePost(userID, req.Title, req.Content)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// ListReplies returns a post's replies oldest first.
// @Summary     List replies
// @Description List a forum post's replies in chronological order
// @Tags        forum
// @Produce     json
// @Param       id path string true "Forum post ID"
// @Success     200 {array} services.ForumReplyView "Replies"
// @Failure     400 {object} ErrorResponse "Invalid post ID"
// @Failure     404 {object} ErrorResponse "Post not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /forums/{id}/replies [get]
func (h *ForumHandler) ListReplies(c *gin.Context) {
	postID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	replies, err := h.forumService.ListReplies(postID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"replies": replies})
}

// CreateReply adds a reply under an existing post.
// @Summary     Reply to a forum post
// @Description Add a reply to an existing discussion thread
// @Tags        forum
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Forum post ID"
// @Param       request body CreateReplyRequest true "Reply details"
// @Success     201 {object} models.ForumReply "Reply created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Post not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /forums/{id}/replies [post]
func (h *ForumHandler) CreateReply(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	postID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	reply, err := h.forumService.CreateReply(userID, postID, req.Content)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reply": reply})
}
