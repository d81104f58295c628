package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	postapp "github.com/oksasatya/go-user-post-api/internal/application"
	"github.com/oksasatya/go-user-post-api/pkg/response"
)

type PostHandler struct {
	Svc    *postapp.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *postapp.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Svc.ListPosts(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "posts", toPostResponses(posts))
}

// ListByUser GET /posts/user/:id
func (h *PostHandler) ListByUser(c *gin.Context) {
	id, ok := pathID(c, "user not found")
	if !ok {
		return
	}
	posts, err := h.Svc.ListPostsByUser(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "posts", toPostResponses(posts))
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "post not found")
	if !ok {
		return
	}
	p, err := h.Svc.GetPost(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "post", toPostResponse(p))
}

func (h *PostHandler) Create(c *gin.Context) {
	var req postapp.CreatePostInput
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.CreatePost(c.Request.Context(), req)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, "post", toPostResponse(p))
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "post not found")
	if !ok {
		return
	}
	var req postapp.UpdatePostInput
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.UpdatePostContent(c.Request.Context(), id, req)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "post", toPostResponse(p))
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "post not found")
	if !ok {
		return
	}
	if err := h.Svc.DeletePost(c.Request.Context(), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusOK, "post deleted")
}

// Search GET /posts/search?q=...&size=...
func (h *PostHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	posts, err := h.Svc.SearchPosts(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "posts", toPostResponses(posts))
}
