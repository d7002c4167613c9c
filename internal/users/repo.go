package users

import (
	"context"
	"strings"
	"time"

	"github.com/tankstore/storefront-backend/internal/repo"
	"github.com/tankstore/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.DB(ctx).Create(user).Error; err != nil {
		return nil, repo.MapError(err, "User", "create")
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email. Emails are
// compared case-insensitively.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.DB(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, repo.MapError(err, "User", "find")
	}
	return &user, nil
}

// FindByID loads a user by id.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, repo.MapError(err, "User", "find")
	}
	return &user, nil
}

// UpdateLastLogin refreshes the user's last_login_at timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	err := r.DB(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
	return repo.MapError(err, "User", "update")
}

// UpdatePasswordHash stores a re-hashed credential.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	err := r.DB(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("password_hash", hash).Error
	return repo.MapError(err, "User", "update")
}

// EnsureByEmail creates the user when no account with the same email exists
// and reports whether a row was inserted.
func (r *Repository) EnsureByEmail(ctx context.Context, dto CreateUserDTO) (*models.User, bool, error) {
	existing, err := r.FindByEmail(ctx, dto.Email)
	if err == nil {
		return existing, false, nil
	}
	if !isNotFound(err) {
		return nil, false, err
	}
	user, err := r.Create(ctx, dto)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
