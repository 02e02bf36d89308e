package repositories

import (
	"MediCore/cache"
	"MediCore/models"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	UserCacheExpiry = 24 * time.Hour
)

type UserRepository interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUserProfile(ctx context.Context, userID int64, username, email, hashedPassword string) error
	UpdateUserPassword(ctx context.Context, userID int64, hashedPassword string) error
	DeleteUserCache(ctx context.Context, userID int64) error
}

type userRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewUserRepository(db *gorm.DB, cache *cache.Cache) UserRepository {
	return &userRepository{db: db, cache: cache}
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}
	return count > 0, nil
}

// GetUserByUsername loads the full row including the password hash. It is never cached.
func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// GetUserByID is cache-aside. The cached copy carries no password hash.
func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := userCacheKey(userID)
	var cached models.User
	found, err := r.cache.GetJSON(ctx, cacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to get user from cache")
	} else if found {
		return &cached, nil
	}

	var user models.User
	err = r.db.WithContext(ctx).
		Select("id, username, email, role, created_at").
		Preload("DoctorDetail").
		First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, user, UserCacheExpiry); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to set user in cache")
	}
	return &user, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", translateError(err))
	}
	return nil
}

// UpdateUserProfile changes username and email, and the password hash when one is given.
func (r *userRepository) UpdateUserProfile(ctx context.Context, userID int64, username, email, hashedPassword string) error {
	updates := map[string]interface{}{
		"username": username,
		"email":    email,
	}
	if hashedPassword != "" {
		updates["password"] = hashedPassword
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
		if result.Error != nil {
			return translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}

	r.invalidate(ctx, userID)
	return nil
}

func (r *userRepository) UpdateUserPassword(ctx context.Context, userID int64, hashedPassword string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("password", hashedPassword)
	if result.Error != nil {
		return fmt.Errorf("failed to update user password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update user password: %w", gorm.ErrRecordNotFound)
	}
	r.invalidate(ctx, userID)
	return nil
}

func (r *userRepository) DeleteUserCache(ctx context.Context, userID int64) error {
	return r.cache.Delete(ctx, userCacheKey(userID))
}

func (r *userRepository) invalidate(ctx context.Context, userID int64) {
	if err := r.DeleteUserCache(ctx, userID); err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("Failed to delete user cache")
	}
}

func userCacheKey(userID int64) string {
	return fmt.Sprintf("user_cache:%d", userID)
}
