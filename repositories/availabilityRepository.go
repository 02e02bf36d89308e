package repositories

import (
	"MediCore/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// SeedIfAbsent inserts slots when the doctor has none yet and reports whether it did.
// Concurrent seeders collide on idx_doctor_slot and the losing rows are skipped.
func (r *AvailabilityRepository) SeedIfAbsent(ctx context.Context, doctorID int64, slots []models.DoctorAvailability) (bool, error) {
	seeded := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.DoctorAvailability{}).Where("doctor_id = ?", doctorID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 || len(slots) == 0 {
			return nil
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&slots).Error; err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed availability: %w", err)
	}
	return seeded, nil
}

// ListByDoctor returns slots ordered by day and start time.
func (r *AvailabilityRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]models.DoctorAvailability, error) {
	var slots []models.DoctorAvailability
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("day_of_week ASC").
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}
	return slots, nil
}

// GetByID returns nil when the slot does not exist.
func (r *AvailabilityRepository) GetByID(ctx context.Context, id int64) (*models.DoctorAvailability, error) {
	var slot models.DoctorAvailability
	err := r.db.WithContext(ctx).First(&slot, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get availability slot: %w", err)
	}
	return &slot, nil
}

func (r *AvailabilityRepository) SetAvailable(ctx context.Context, id int64, available bool) error {
	err := r.db.WithContext(ctx).Model(&models.DoctorAvailability{}).Where("id = ?", id).Update("is_available", available).Error
	if err != nil {
		return fmt.Errorf("failed to update availability slot: %w", err)
	}
	return nil
}
