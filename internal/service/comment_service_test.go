package service

import (
	"context"
	"testing"

	"gameverse/backend/internal/apperr"
	"gameverse/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService(t *testing.T) {
	posts := newFakePostStore()
	comments := newFakeCommentStore()
	svc := NewCommentService(comments, posts)
	ctx := context.Background()
	author, stranger := uuid.New(), uuid.New()

	post := &models.Post{AuthorID: author, Title: "Devlog", BodyContent: "body"}
	require.NoError(t, posts.Create(ctx, post))

	t.Run("create requires content and post", func(t *testing.T) {
		_, err := svc.Create(ctx, post.ID, "  ", author)
		assert.ErrorIs(t, err, apperr.ErrValidation)

		_, err = svc.Create(ctx, uuid.New(), "hello", author)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	first, err := svc.Create(ctx, post.ID, "first!", stranger)
	require.NoError(t, err)
	_, err = svc.Create(ctx, post.ID, "second", author)
	require.NoError(t, err)

	t.Run("list clamps paging", func(t *testing.T) {
		page, total, err := svc.ListByPost(ctx, post.ID, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, page, 2)
		assert.Equal(t, "first!", page[0].Content)

		page, _, err = svc.ListByPost(ctx, post.ID, 2, 1)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "second", page[0].Content)

		_, _, err = svc.ListByPost(ctx, uuid.New(), 1, 10)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("only the author edits", func(t *testing.T) {
		assert.ErrorIs(t, svc.Update(ctx, first.ID, "edited", author), apperr.ErrForbidden)
		assert.ErrorIs(t, svc.Authorize(ctx, first.ID, author), apperr.ErrForbidden)
		require.NoError(t, svc.Update(ctx, first.ID, "edited", stranger))

		got, err := comments.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "edited", got.Content)
	})

	t.Run("only the author deletes", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, first.ID, author), apperr.ErrForbidden)
		require.NoError(t, svc.Delete(ctx, first.ID, stranger))
		_, err := comments.FindByID(ctx, first.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
