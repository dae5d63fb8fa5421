package repository

import (
	"context"
	"strings"

	"gameverse/backend/internal/apperr"
	"gameverse/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository is the credential store.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user. Username or email collisions surface as a conflict.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		err = translate(err, "user not found")
		if apperr.KindOf(err) == apperr.KindConflict {
			return apperr.Wrap(apperr.KindConflict, "username or email already exists", err)
		}
	}
	return err
}

// FindByID loads a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, "user not found")
	}
	return &user, nil
}

// FindByIdentifier matches the identifier against username or email, ignoring case.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(identifier))

	var user models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(username) = ? OR LOWER(email) = ?", normalized, normalized).
		First(&user).Error
	if err != nil {
		return nil, translate(err, "user not found")
	}
	return &user, nil
}

// ExistsByUsernameOrEmail reports whether either value is already taken, ignoring case.
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("LOWER(username) = ? OR LOWER(email) = ?", strings.ToLower(username), strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "user not found")
	}
	return count > 0, nil
}
