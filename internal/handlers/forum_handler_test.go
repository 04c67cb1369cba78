package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "cryptoadvisor/internal/errors"
	"cryptoadvisor/internal/models"
	"cryptoadvisor/internal/pagination"
	"cryptoadvisor/internal/services"
)

// --- mock forum service ---

type mockForumService struct {
	listPostsFn   func(page pagination.PageRequest) (*pagination.PageResponse[services.ForumPostView], error)
	createPostFn  func(userID, title, content string) (*models.ForumPost, error)
	listRepliesFn func(forumPostID string) ([]services.ForumReplyView, error)
	createReplyFn func(userID, forumPostID, content string) (*models.ForumReply, error)
}

func (m *mockForumService) ListPosts(page pagination.PageRequest) (*pagination.PageResponse[services.ForumPostView], error) {
	if m.listPostsFn != nil {
		return m.listPostsFn(page)
	}
	resp := pagination.NewPageResponse([]services.ForumPostView{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockForumService) CreatePost(userID, title, content string) (*models.ForumPost, error) {
	if m.createPostFn != nil {
		return m.createPostFn(userID, title, content)
	}
	return &models.ForumPost{}, nil
}

func (m *mockForumService) ListReplies(forumPostID string) ([]services.ForumReplyView, error) {
	if m.listRepliesFn != nil {
		return m.listRepliesFn(forumPostID)
	}
	return []services.ForumReplyView{}, nil
}

func (m *mockForumService) CreateReply(userID, forumPostID, content string) (*models.ForumReply, error) {
	if m.createReplyFn != nil {
		return m.createReplyFn(userID, forumPostID, content)
	}
	return &models.ForumReply{}, nil
}

var _ services.ForumServicer = (*mockForumService)(nil)

const testPostID = "0198a8e0-2222-7def-8000-000000000002"

func setupForumRouter(handler *ForumHandler) *gin.Engine {
	r := gin.New()
	r.GET("/forums", handler.ListPosts)
	r.GET("/forums/:id/replies", handler.ListReplies)
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/forums", handler.CreatePost)
	auth.POST("/forums/:id/replies", handler.CreateReply)
	return r
}

func TestForumHandler_ListPosts(t *testing.T) {
	t.Run("returns 200 with page", func(t *testing.T) {
		svc := &mockForumService{
			listPostsFn: func(page pagination.PageRequest) (*pagination.PageResponse[services.ForumPostView], error) {
				views := []services.ForumPostView{
					{ForumPost: models.ForumPost{Title: "hello"}, AuthorName: "satoshi"},
				}
				resp := pagination.NewPageResponse(views, page.Page, page.PageSize, 1)
				return &resp, nil
			},
		}
		r := setupForumRouter(NewForumHandler(svc))

		rec := doRequest(r, "GET", "/forums?page=1&page_size=10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		first := data[0].(map[string]interface{})
		if first["author_name"] != "satoshi" {
			t.Errorf("expected author_name satoshi, got %v", first["author_name"])
		}
	})

	t.Run("returns 400 on bad pagination", func(t *testing.T) {
		r := setupForumRouter(NewForumHandler(&mockForumService{}))

		rec := doRequest(r, "GET", "/forums?page=0", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestForumHandler_CreatePost(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockForumService{
			createPostFn: func(userID, title, content string) (*models.ForumPost, error) {
				return &models.ForumPost{UserID: userID, Title: title, Content: content}, nil
			},
		}
		r := setupForumRouter(NewForumHandler(svc))

		rec := doRequest(r, "POST", "/forums", `{"title":"hello","content":"world"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		post := parseJSON(t, rec)["post"].(map[string]interface{})
		if post["title"] != "hello" {
			t.Errorf("expected title hello, got %v", post["title"])
		}
	})

	t.Run("returns 400 on missing title", func(t *testing.T) {
		r := setupForumRouter(NewForumHandler(&mockForumService{}))

		rec := doRequest(r, "POST", "/forums", `{"content":"world"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestForumHandler_ListReplies(t *testing.T) {
	t.Run("returns 200 with replies", func(t *testing.T) {
		svc := &mockForumService{
			listRepliesFn: func(forumPostID string) ([]services.ForumReplyView, error) {
				return []services.ForumReplyView{
					{ForumReply: models.ForumReply{ForumPostID: forumPostID, Content: "hi"}, AuthorName: "satoshi"},
				}, nil
			},
		}
		r := setupForumRouter(NewForumHandler(svc))

		rec := doRequest(r, "GET", "/forums/"+testPostID+"/replies", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		replies := parseJSON(t, rec)["replies"].([]interface{})
		if len(replies) != 1 {
			t.Fatalf("expected 1 reply, got %d", len(replies))
		}
	})

	t.Run("returns 400 on malformed post id", func(t *testing.T) {
		r := setupForumRouter(NewForumHandler(&mockForumService{}))

		rec := doRequest(r, "GET", "/forums/not-a-uuid/replies", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 on missing post", func(t *testing.T) {
		svc := &mockForumService{
			listRepliesFn: func(string) ([]services.ForumReplyView, error) {
				return nil, apperrors.ErrForumPostNotFound
			},
		}
		r := setupForumRouter(NewForumHandler(svc))

		rec := doRequest(r, "GET", "/forums/"+testPostID+"/replies", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FORUM_POST_NOT_FOUND")
	})
}

func TestForumHandler_CreateReply(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockForumService{
			createReplyFn: func(userID, forumPostID, content string) (*models.ForumReply, error) {
				return &models.ForumReply{UserID: userID, ForumPostID: forumPostID, Content: content}, nil
			},
		}
		r := setupForumRouter(NewForumHandler(svc))

		rec := doRequest(r, "POST", "/forums/"+testPostID+"/replies", `{"content":"hi"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on empty content", func(t *testing.T) {
		r := setupForumRouter(NewForumHandler(&mockForumService{}))

		rec := doRequest(r, "POST", "/forums/"+testPostID+"/replies", `{"content":""}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
