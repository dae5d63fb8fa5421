package service

import (
	"context"
	"strings"
	"time"

	"gameverse/backend/internal/apperr"
	"gameverse/backend/internal/models"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// CommentService manages replies to posts. Only the author may change or remove a comment.
type CommentService struct {
	comments CommentStore
	posts    PostStore
}

func NewCommentService(comments CommentStore, posts PostStore) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

func (s *CommentService) Create(ctx context.Context, postID uuid.UUID, content string, actorID uuid.UUID) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("content is required")
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: postID, AuthorID: actorID, Content: content}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByPost returns one page of comments and the total number of comments on the post.
// Out of range paging values are clamped.
func (s *CommentService) ListByPost(ctx context.Context, postID uuid.UUID, page, limit int) ([]models.Comment, int64, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return s.comments.ListByPost(ctx, postID, page, limit)
}

func (s *CommentService) Authorize(ctx context.Context, id, actorID uuid.UUID) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return checkCommentAuthor(comment, actorID, "edit")
}

func (s *CommentService) Update(ctx context.Context, id uuid.UUID, content string, actorID uuid.UUID) error {
	return s.comments.Update(ctx, id, func(comment *models.Comment) error {
		if err := checkCommentAuthor(comment, actorID, "edit"); err != nil {
			return err
		}
		content = strings.TrimSpace(content)
		if content == "" {
			return apperr.Validation("content is required")
		}
		comment.Content = content
		comment.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (s *CommentService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	return s.comments.Delete(ctx, id, func(comment *models.Comment) error {
		return checkCommentAuthor(comment, actorID, "delete")
	})
}

func (s *CommentService) requirePost(ctx context.Context, postID uuid.UUID) error {
	exists, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("post not found")
	}
	return nil
}

func checkCommentAuthor(comment *models.Comment, actorID uuid.UUID, action string) error {
	if comment.AuthorID != actorID {
		return apperr.Forbidden("you do not have permission to " + action + " this comment")
	}
	return nil
}
