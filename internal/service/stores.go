package service

import (
	"context"

	"gameverse/backend/internal/hub"
	"gameverse/backend/internal/models"
	"gameverse/backend/pkg/jwt"

	"github.com/google/uuid"
)

// UserStore is the credential store used by AuthService.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

// GameStore persists games. Update and Delete run their callback inside a
// transaction holding the row lock; an error from the callback aborts the write.
type GameStore interface {
	Create(ctx context.Context, game *models.Game) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]models.Game, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*models.Game) error) error
	Delete(ctx context.Context, id uuid.UUID, check func(*models.Game) error) error
}

// PostStore persists posts, with the same transactional contract as GameStore.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]models.Post, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*models.Post) error) error
	Delete(ctx context.Context, id uuid.UUID, check func(*models.Post) error) error
}

// CommentStore persists comments.
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID, page, limit int) ([]models.Comment, int64, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*models.Comment) error) error
	Delete(ctx context.Context, id uuid.UUID, check func(*models.Comment) error) error
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateToken(sub jwt.Subject) (string, error)
}

// Publisher fans feed events out to live subscribers.
type Publisher interface {
	Broadcast(topic string, event hub.Event)
}
