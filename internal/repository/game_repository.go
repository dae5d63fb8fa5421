package repository

import (
	"context"

	"gameverse/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const gameNotFound = "game not found"

// GameRepository persists games.
type GameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) Create(ctx context.Context, game *models.Game) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(game).Error, gameNotFound)
}

func (r *GameRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	var game models.Game
	if err := r.db.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		return nil, translate(err, gameNotFound)
	}
	return &game, nil
}

// Exists reports whether a game with the given id is stored.
func (r *GameRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Game{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err, gameNotFound)
	}
	return count > 0, nil
}

// List returns every game, newest first.
func (r *GameRepository) List(ctx context.Context) ([]models.Game, error) {
	games := []models.Game{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&games).Error; err != nil {
		return nil, translate(err, gameNotFound)
	}
	return games, nil
}

// Update locks the row, hands it to mutate and persists the mutable columns.
// An error from mutate rolls the transaction back and is returned unchanged.
func (r *GameRepository) Update(ctx context.Context, id uuid.UUID, mutate func(*models.Game) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, err := lockGame(tx, id)
		if err != nil {
			return err
		}
		if err := mutate(game); err != nil {
			return err
		}
		return tx.Model(game).
			Select("Title", "Description", "Genre", "Status", "UpdatedAt").
			Updates(game).Error
	})
	return translate(err, gameNotFound)
}

// Delete locks the row, lets check veto the deletion, then detaches dependent posts and removes the game.
func (r *GameRepository) Delete(ctx context.Context, id uuid.UUID, check func(*models.Game) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, err := lockGame(tx, id)
		if err != nil {
			return err
		}
		if err := check(game); err != nil {
			return err
		}
		if err := tx.Model(&models.Post{}).Where("game_id = ?", id).Update("game_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Game{}, "id = ?", id).Error
	})
	return translate(err, gameNotFound)
}

func lockGame(tx *gorm.DB, id uuid.UUID) (*models.Game, error) {
	var game models.Game
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&game, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}
