package repositories

import (
	"MediCore/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	return nil
}

// ListRecent returns messages newest first.
func (r *ContactRepository) ListRecent(ctx context.Context) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := r.db.WithContext(ctx).Order("date_sent DESC").Order("id DESC").Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get contact messages: %w", err)
	}
	return messages, nil
}
