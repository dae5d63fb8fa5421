package repository

import (
	"context"

	"gameverse/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const postNotFound = "post not found"

// PostRepository persists posts.
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error, postNotFound)
}

func (r *PostRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, translate(err, postNotFound)
	}
	return &post, nil
}

func (r *PostRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err, postNotFound)
	}
	return count > 0, nil
}

// List returns every post, newest first. It backs the home feed.
func (r *PostRepository) List(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, translate(err, postNotFound)
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, id uuid.UUID, mutate func(*models.Post) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := lockPost(tx, id)
		if err != nil {
			return err
		}
		if err := mutate(post); err != nil {
			return err
		}
		return tx.Model(post).
			Select("Title", "BodyContent", "PostType", "UpdatedAt").
			Updates(post).Error
	})
	return translate(err, postNotFound)
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID, check func(*models.Post) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := lockPost(tx, id)
		if err != nil {
			return err
		}
		if err := check(post); err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, "id = ?", id).Error
	})
	return translate(err, postNotFound)
}

func lockPost(tx *gorm.DB, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}
