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

// PostInput is shared by create and update. GameID is ignored on update.
type PostInput struct {
	Title       string     `json:"title" binding:"required,notblank,max=255" example:"Devlog #1"`
	BodyContent string     `json:"bodyContent" binding:"required,notblank"`
	GameID      *uuid.UUID `json:"gameId"`
	PostType    string     `json:"postType" binding:"omitempty,oneof=devlog review news discussion" example:"devlog"`
}

func (in PostInput) toService() service.PostInput {
	return service.PostInput{
		Title:       in.Title,
		BodyContent: in.BodyContent,
		GameID:      in.GameID,
		PostType:    models.PostType(in.PostType),
	}
}

type PostResponse struct {
	ID          uuid.UUID  `json:"id"`
	AuthorID    uuid.UUID  `json:"authorId"`
	GameID      *uuid.UUID `json:"gameId"`
	Title       string     `json:"title" example:"Devlog #1"`
	BodyContent string     `json:"bodyContent"`
	PostType    string     `json:"postType" example:"devlog"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func newPostResponse(post models.Post) PostResponse {
	return PostResponse{
		ID:          post.ID,
		AuthorID:    post.AuthorID,
		GameID:      post.GameID,
		Title:       post.Title,
		BodyContent: post.BodyContent,
		PostType:    string(post.PostType),
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

// endregion

type PostHandler struct {
	posts *service.PostService
	log   *logrus.Logger
}

func NewPostHandler(posts *service.PostService, log *logrus.Logger) *PostHandler {
	return &PostHandler{posts: posts, log: log}
}

// region --- Post Handlers ---

// CreatePost godoc
// @Summary      Create a post
// @Description  Publishes a post written by the authenticated user, optionally about one game.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PostInput true "Post Info"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}

	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	post, err := h.posts.Create(c.Request.Context(), input.toService(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, newPostResponse(*post))
}

// GetPostByID godoc
// @Summary      Get a post by ID
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPostByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, err := h.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newPostResponse(*post))
}

// GetPosts godoc
// @Summary      List posts
// @Description  Returns every post, newest first.
// @Tags         posts
// @Produce      json
// @Success      200  {array}  PostResponse
// @Router       /posts [get]
func (h *PostHandler) GetPosts(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		response = append(response, newPostResponse(post))
	}
	c.JSON(http.StatusOK, response)
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Overwrites title, body and type. Only the author may update a post.
// @Tags         posts
// @Accept       json
// @Security     BearerAuth
// @Param        id    path      string    true  "Post ID"
// @Param        input body      PostInput true  "New Post Info"
// @Success      204
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Not the author"
// @Failure      404   {object}  ErrorResponse "Post not found"
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if authErr := h.posts.Authorize(c.Request.Context(), id, userID); authErr != nil {
			respondError(c, h.log, authErr)
			return
		}
		respondBindError(c, err)
		return
	}

	if err := h.posts.Update(c.Request.Context(), id, input.toService(), userID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Deletes a post and its comments. Only the author may delete a post.
// @Tags         posts
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the author"
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// endregion
