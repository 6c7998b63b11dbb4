package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"goforum/internal/app"
	"goforum/internal/transport/http/middleware"
	"goforum/internal/transport/http/response"
)

type CommentHandler struct {
	commentService *app.CommentService
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

func NewCommentHandler(commentService *app.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Create(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid post id")
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	comment, err := h.commentService.Create(app.CreateCommentInput{
		Content: req.Content,
		UserID:  userID,
		PostID:  postID,
	})
	if err != nil {
		h.writeCommentError(c, err, "create comment failed")
		return
	}
	response.OK(c, comment)
}

func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid post id")
		return
	}

	comments, err := h.commentService.ListByPost(postID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list comments failed")
		return
	}
	response.OK(c, comments)
}

func (h *CommentHandler) ListByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid user id")
		return
	}

	comments, err := h.commentService.ListByUser(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list comments failed")
		return
	}
	response.OK(c, comments)
}

func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid comment id")
		return
	}
	requesterID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	comment, err := h.commentService.Update(commentID, requesterID, req.Content)
	if err != nil {
		h.writeCommentError(c, err, "update comment failed")
		return
	}
	response.OK(c, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid comment id")
		return
	}
	requesterID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	if err := h.commentService.Delete(commentID, requesterID); err != nil {
		h.writeCommentError(c, err, "delete comment failed")
		return
	}
	response.OK(c, nil)
}

func (h *CommentHandler) writeCommentError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrCommentNotFound), errors.Is(err, app.ErrPostNotFound), errors.Is(err, app.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	case errors.Is(err, app.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
