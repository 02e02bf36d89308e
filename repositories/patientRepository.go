package repositories

import (
	"MediCore/cache"
	"MediCore/models"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PatientRepository covers the admin side of patient accounts.
type PatientRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPatientRepository(db *gorm.DB, cache *cache.Cache) *PatientRepository {
	return &PatientRepository{db: db, cache: cache}
}

func (r *PatientRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var patients []models.User
	err := r.db.WithContext(ctx).
		Select("id, username, email, role, created_at").
		Where("role = ?", models.RolePatient).
		Order("id ASC").
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all patients: %w", err)
	}
	return patients, nil
}

// GetByID returns nil when no patient account has the id.
func (r *PatientRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var patient models.User
	err := r.db.WithContext(ctx).
		Select("id, username, email, role, created_at").
		Where("id = ? AND role = ?", id, models.RolePatient).
		First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

// Delete removes the patient's appointments and then the account, atomically.
func (r *PatientRepository) Delete(ctx context.Context, patientID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", patientID).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND role = ?", patientID, models.RolePatient).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	if err := r.cache.Delete(ctx, userCacheKey(patientID)); err != nil {
		log.Warn().Err(err).Int64("patient_id", patientID).Msg("Failed to delete patient cache")
	}
	return nil
}
