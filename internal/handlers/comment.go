package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hinagiku/taskboard-api/internal/dto"
	apierrors "github.com/hinagiku/taskboard-api/internal/errors"
	"github.com/hinagiku/taskboard-api/internal/middleware"
	"github.com/hinagiku/taskboard-api/internal/services"
)

// CommentHandler coordinates comment HTTP handlers.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// ListComments lists all comments on a task.
func (h *CommentHandler) ListComments(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	comments, err := h.commentService.ListForTask(taskID)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTOs(comments))
}

// AddComment adds a comment to a task, authored by the current user.
func (h *CommentHandler) AddComment(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type CommentRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.AddComment(services.AddCommentInput{
		TaskID:   taskID,
		AuthorID: user.ID,
		Content:  req.Content,
	})
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// UpdateComment replaces a comment's content. Author only.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	commentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type CommentRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.UpdateComment(commentID, user.ID, req.Content)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// DeleteComment removes a comment. Author only.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	commentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(commentID, user.ID); err != nil {
		respondCommentError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrCommentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotCommentAuthor):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
