package service

import (
	"context"
	"strings"
	"time"

	"gameverse/backend/internal/apperr"
	"gameverse/backend/internal/models"

	"github.com/google/uuid"
)

var validGameStatuses = map[models.GameStatus]bool{
	models.GameStatusInDevelopment: true,
	models.GameStatusReleased:      true,
	models.GameStatusBeta:          true,
	models.GameStatusCancelled:     true,
}

// GameInput holds the caller supplied fields of a game.
type GameInput struct {
	Title       string
	Description string
	Genre       string
	Status      models.GameStatus
}

func (in *GameInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Genre = strings.TrimSpace(in.Genre)
	in.Status = models.GameStatus(strings.ToLower(strings.TrimSpace(string(in.Status))))

	if in.Title == "" {
		return apperr.Validation("title is required")
	}
	if in.Status == "" {
		in.Status = models.GameStatusInDevelopment
	}
	if !validGameStatuses[in.Status] {
		return apperr.Validation("status must be one of in-development, released, beta, cancelled")
	}
	return nil
}

// GameService enforces the owner-only mutation policy for games.
type GameService struct {
	games GameStore
}

func NewGameService(games GameStore) *GameService {
	return &GameService{games: games}
}

// Create stores a new game owned by actorID.
func (s *GameService) Create(ctx context.Context, in GameInput, actorID uuid.UUID) (*models.Game, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	game := &models.Game{
		OwnerID:     actorID,
		Title:       in.Title,
		Description: in.Description,
		Genre:       in.Genre,
		Status:      in.Status,
	}
	if err := s.games.Create(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *GameService) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	return s.games.FindByID(ctx, id)
}

func (s *GameService) List(ctx context.Context) ([]models.Game, error) {
	return s.games.List(ctx)
}

// Authorize reports whether actorID may mutate the game, without writing anything.
func (s *GameService) Authorize(ctx context.Context, id, actorID uuid.UUID) error {
	game, err := s.games.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return checkGameOwner(game, actorID, "edit")
}

// Update overwrites the mutable fields. Ownership is checked before the input,
// so a non-owner is refused whatever the payload.
func (s *GameService) Update(ctx context.Context, id uuid.UUID, in GameInput, actorID uuid.UUID) error {
	return s.games.Update(ctx, id, func(game *models.Game) error {
		if err := checkGameOwner(game, actorID, "edit"); err != nil {
			return err
		}
		if err := in.normalize(); err != nil {
			return err
		}
		game.Title = in.Title
		game.Description = in.Description
		game.Genre = in.Genre
		game.Status = in.Status
		game.UpdatedAt = time.Now().UTC()
		return nil
	})
}

// Delete removes the game. Posts about it survive with their game reference cleared.
func (s *GameService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	return s.games.Delete(ctx, id, func(game *models.Game) error {
		return checkGameOwner(game, actorID, "delete")
	})
}

func checkGameOwner(game *models.Game, actorID uuid.UUID, action string) error {
	if game.OwnerID != actorID {
		return apperr.Forbidden("you do not have permission to " + action + " this game")
	}
	return nil
}
