package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"goforum/internal/app"
	"goforum/internal/transport/http/middleware"
	"goforum/internal/transport/http/response"
)

type PostHandler struct {
	postService    *app.PostService
	commentService *app.CommentService
}

type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=200"`
	Content string `json:"content" binding:"max=5000"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=1,max=200"`
	Content *string `json:"content" binding:"omitempty,max=5000"`
}

func NewPostHandler(postService *app.PostService, commentService *app.CommentService) *PostHandler {
	return &PostHandler{
		postService:    postService,
		commentService: commentService,
	}
}

func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	post, err := h.postService.Create(app.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
		UserID:  userID,
	})
	if err != nil {
		h.writePostError(c, err, "create post failed")
		return
	}
	response.OK(c, post)
}

// List serves the public feed; an optional user_id query filters to a
// single author's posts.
func (h *PostHandler) List(c *gin.Context) {
	opts := parsePageOptions(c)

	if rawUserID := c.Query("user_id"); rawUserID != "" {
		userID, err := strconv.ParseUint(rawUserID, 10, 64)
		if err != nil || userID == 0 {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid user_id")
			return
		}
		posts, err := h.postService.ListByUser(uint(userID), opts)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list posts failed")
			return
		}
		response.OK(c, posts)
		return
	}

	posts, err := h.postService.List(opts)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list posts failed")
		return
	}
	response.OK(c, posts)
}

func (h *PostHandler) ListHot(c *gin.Context) {
	posts, err := h.postService.ListHot(parsePageOptions(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list hot posts failed")
		return
	}
	response.OK(c, posts)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid post id")
		return
	}

	post, err := h.postService.Get(id)
	if err != nil {
		h.writePostError(c, err, "fetch post failed")
		return
	}

	comments, err := h.commentService.ListByPost(id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch post comments failed")
		return
	}

	response.OK(c, gin.H{
		"post":     post,
		"comments": comments,
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid post id")
		return
	}
	requesterID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	post, err := h.postService.Update(id, requesterID, app.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.writePostError(c, err, "update post failed")
		return
	}
	response.OK(c, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid post id")
		return
	}
	requesterID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	if err := h.postService.Delete(id, requesterID); err != nil {
		h.writePostError(c, err, "delete post failed")
		return
	}
	response.OK(c, nil)
}

func (h *PostHandler) writePostError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrPostNotFound), errors.Is(err, app.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	case errors.Is(err, app.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
