package handler

import (
	"net/http"
	"time"

	"gameverse/backend/internal/models"
	"gameverse/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// region --- DTOs ---

type CommentInput struct {
	Content string `json:"content" binding:"required,notblank" example:"Looks great!"`
}

type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"postId"`
	AuthorID  uuid.UUID `json:"authorId"`
	Content   string    `json:"content" example:"Looks great!"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newCommentResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// PaginatedCommentResponse documents PaginatedResponse[CommentResponse] for swagger.
type PaginatedCommentResponse struct {
	Data []CommentResponse `json:"data"`
	Meta PaginationMeta    `json:"meta"`
}

// endregion

type CommentHandler struct {
	comments *service.CommentService
	log      *logrus.Logger
}

func NewCommentHandler(comments *service.CommentService, log *logrus.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, log: log}
}

// region --- Comment Handlers ---

// GetComments godoc
// @Summary      List comments of a post
// @Description  Returns one page of comments, oldest first.
// @Tags         comments
// @Produce      json
// @Param        id    path      string  true   "Post ID"
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(20)
// @Success      200   {object}  PaginatedCommentResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Post not found"
// @Router       /posts/{id}/comments [get]
func (h *CommentHandler) GetComments(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, limit := pageParams(c)

	comments, total, err := h.comments.ListByPost(c.Request.Context(), postID, page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	data := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		data = append(data, newCommentResponse(comment))
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(data, total, page, limit))
}

// CreateComment godoc
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Post ID"
// @Param        input body      CommentInput  true  "Comment"
// @Success      201   {object}  CommentResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Post not found"
// @Router       /posts/{id}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), postID, input.Content, userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, newCommentResponse(*comment))
}

// UpdateComment godoc
// @Summary      Edit a comment
// @Description  Only the author may edit a comment.
// @Tags         comments
// @Accept       json
// @Security     BearerAuth
// @Param        id    path      string        true  "Comment ID"
// @Param        input body      CommentInput  true  "Comment"
// @Success      204
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Not the author"
// @Failure      404   {object}  ErrorResponse "Comment not found"
// @Router       /comments/{id} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if authErr := h.comments.Authorize(c.Request.Context(), id, userID); authErr != nil {
			respondError(c, h.log, authErr)
			return
		}
		respondBindError(c, err)
		return
	}

	if err := h.comments.Update(c.Request.Context(), id, input.Content, userID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         comments
// @Security     BearerAuth
// @Param        id   path      string  true  "Comment ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the author"
// @Failure      404  {object}  ErrorResponse "Comment not found"
// @Router       /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.comments.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// endregion
