package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "cryptoadvisor/internal/errors"
	"cryptoadvisor/internal/logger"
	"cryptoadvisor/internal/models"
	"cryptoadvisor/internal/pagination"
)

// forumService implements ForumServicer backed by a gorm.DB.
type forumService struct {
	db *gorm.DB
}

// NewForumService creates a new ForumServicer.
func NewForumService(db *gorm.DB) ForumServicer {
	return &forumService{db: db}
}

// ListPosts returns forum posts newest first with their authors' names.
func (s *forumService) ListPosts(page pagination.PageRequest) (*pagination.PageResponse[ForumPostView], error) {
	page.Defaults()

	var total int64
	if err := s.db.Model(&models.ForumPost{}).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var posts []models.ForumPost
	err := s.db.
		Preload("User").
		Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&posts).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := make([]ForumPostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, ForumPostView{ForumPost: post, AuthorName: post.User.Name})
	}

	resp := pagination.NewPageResponse(views, page.Page, page.PageSize, total)
	return &resp, nil
}

// CreatePost stores a new discussion thread.
func (s *forumService) CreatePost(userID, title, content string) (*models.ForumPost, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Title and content are required")
	}

	post := models.ForumPost{
		UserID:  userID,
		Title:   title,
		Content: content,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("forum post created", "post_id", post.ID, "user_id", userID)
	return &post, nil
}

// ListReplies returns a post's replies in chronological order.
func (s *forumService) ListReplies(forumPostID string) ([]ForumReplyView, error) {
	if err := s.requirePost(forumPostID); err != nil {
		return nil, err
	}

	var replies []models.ForumReply
	err := s.db.
		Preload("User").
		Where("forum_post_id = ?", forumPostID).
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := make([]ForumReplyView, 0, len(replies))
	for _, reply := range replies {
		views = append(views, ForumReplyView{ForumReply: reply, AuthorName: reply.User.Name})
	}
	return views, nil
}

// CreateReply stores a reply under an existing post.
func (s *forumService) CreateReply(userID, forumPostID, content string) (*models.ForumReply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Content is required")
	}

	if err := s.requirePost(forumPostID); err != nil {
		return nil, err
	}

	reply := models.ForumReply{
		ForumPostID: forumPostID,
		UserID:      userID,
		Content:     content,
	}
	if err := s.db.Create(&reply).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("forum reply created", "post_id", forumPostID, "user_id", userID)
	return &reply, nil
}

func (s *forumService) requirePost(forumPostID string) error {
	var post models.ForumPost
	if err := s.db.Select("id").First(&post, "id = ?", forumPostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrForumPostNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
