package repository

import (
	"context"

	"gameverse/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const commentNotFound = "comment not found"

// CommentRepository persists comments on posts.
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error, commentNotFound)
}

func (r *CommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, translate(err, commentNotFound)
	}
	return &comment, nil
}

// ListByPost returns one page of a post's comments, oldest first, with the total count.
func (r *CommentRepository) ListByPost(ctx context.Context, postID uuid.UUID, page, limit int) ([]models.Comment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, commentNotFound)
	}

	comments := []models.Comment{}
	offset := (page - 1) * limit
	if err := query.Order("created_at ASC").Offset(offset).Limit(limit).Find(&comments).Error; err != nil {
		return nil, 0, translate(err, commentNotFound)
	}
	return comments, total, nil
}

func (r *CommentRepository) Update(ctx context.Context, id uuid.UUID, mutate func(*models.Comment) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comment, err := lockComment(tx, id)
		if err != nil {
			return err
		}
		if err := mutate(comment); err != nil {
			return err
		}
		return tx.Model(comment).Select("Content", "UpdatedAt").Updates(comment).Error
	})
	return translate(err, commentNotFound)
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID, check func(*models.Comment) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comment, err := lockComment(tx, id)
		if err != nil {
			return err
		}
		if err := check(comment); err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, "id = ?", id).Error
	})
	return translate(err, commentNotFound)
}

func lockComment(tx *gorm.DB, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}
