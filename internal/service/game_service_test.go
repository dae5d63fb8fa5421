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

func createNebulaRun(t *testing.T, svc *GameService, owner uuid.UUID) *models.Game {
	t.Helper()
	game, err := svc.Create(context.Background(), GameInput{
		Title:       "Nebula Run",
		Description: "Endless runner in space",
		Genre:       "arcade",
	}, owner)
	require.NoError(t, err)
	return game
}

func TestGameService_CreateStampsOwner(t *testing.T) {
	store := newFakeGameStore()
	svc := NewGameService(store)
	owner := uuid.New()

	game := createNebulaRun(t, svc, owner)

	assert.Equal(t, owner, game.OwnerID)
	assert.NotEqual(t, uuid.Nil, game.ID)
	assert.Equal(t, models.GameStatusInDevelopment, game.Status)
}

func TestGameService_CreateValidates(t *testing.T) {
	svc := NewGameService(newFakeGameStore())
	owner := uuid.New()

	_, err := svc.Create(context.Background(), GameInput{Title: " ", Description: "x"}, owner)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(context.Background(), GameInput{Title: "x", Description: "x", Status: "abandoned"}, owner)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestGameService_CreateWithoutDescription(t *testing.T) {
	svc := NewGameService(newFakeGameStore())

	game, err := svc.Create(context.Background(), GameInput{Title: "Nebula Run"}, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, game.Description)
	assert.Equal(t, models.GameStatusInDevelopment, game.Status)
}

func TestGameService_UpdateByNonOwnerIsForbidden(t *testing.T) {
	store := newFakeGameStore()
	svc := NewGameService(store)
	owner, attacker := uuid.New(), uuid.New()
	game := createNebulaRun(t, svc, owner)

	payloads := []GameInput{
		{Title: "Hijacked", Description: "mine now"},
		{},
		{Title: "x", Description: "y", Status: "not-a-status"},
	}
	for _, in := range payloads {
		err := svc.Update(context.Background(), game.ID, in, attacker)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	}
	assert.Equal(t, 0, store.writes)
	assert.Equal(t, "Nebula Run", store.games[game.ID].Title)
}

func TestGameService_UpdateByOwner(t *testing.T) {
	store := newFakeGameStore()
	svc := NewGameService(store)
	owner := uuid.New()
	game := createNebulaRun(t, svc, owner)

	err := svc.Update(context.Background(), game.ID, GameInput{
		Title:       "Nebula Run 2",
		Description: "Sequel",
		Genre:       "arcade",
		Status:      models.GameStatusBeta,
	}, owner)
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), game.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nebula Run 2", got.Title)
	assert.Equal(t, models.GameStatusBeta, got.Status)
	assert.Equal(t, owner, got.OwnerID)
	assert.False(t, got.UpdatedAt.Before(game.UpdatedAt))
}

func TestGameService_UpdateMissingGame(t *testing.T) {
	svc := NewGameService(newFakeGameStore())
	err := svc.Update(context.Background(), uuid.New(), GameInput{Title: "x", Description: "y"}, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGameService_Delete(t *testing.T) {
	games := newFakeGameStore()
	posts := newFakePostStore()
	games.posts = posts
	svc := NewGameService(games)
	owner, attacker := uuid.New(), uuid.New()
	game := createNebulaRun(t, svc, owner)

	post := &models.Post{AuthorID: owner, GameID: &game.ID, Title: "Devlog", BodyContent: "body"}
	require.NoError(t, posts.Create(context.Background(), post))

	assert.ErrorIs(t, svc.Delete(context.Background(), game.ID, attacker), apperr.ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), game.ID, owner))

	_, err := svc.GetByID(context.Background(), game.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	kept := posts.posts[post.ID]
	require.NotNil(t, kept)
	assert.Nil(t, kept.GameID)
}

func TestGameService_Authorize(t *testing.T) {
	svc := NewGameService(newFakeGameStore())
	owner := uuid.New()
	game := createNebulaRun(t, svc, owner)

	assert.NoError(t, svc.Authorize(context.Background(), game.ID, owner))
	assert.ErrorIs(t, svc.Authorize(context.Background(), game.ID, uuid.New()), apperr.ErrForbidden)
	assert.ErrorIs(t, svc.Authorize(context.Background(), uuid.New(), owner), apperr.ErrNotFound)
}
