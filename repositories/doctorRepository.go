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
	DoctorCacheExpiry = 1 * time.Hour
	doctorsCacheKey   = "doctors_cache"
)

// DoctorRepository stores doctor accounts together with their detail rows.
type DoctorRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDoctorRepository(db *gorm.DB, cache *cache.Cache) *DoctorRepository {
	return &DoctorRepository{db: db, cache: cache}
}

// Create inserts the account and its detail in one transaction.
func (r *DoctorRepository) Create(ctx context.Context, doctor *models.User, detail *models.DoctorDetail) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doctor.Role = models.RoleDoctor
		doctor.DoctorDetail = nil
		if err := tx.Create(doctor).Error; err != nil {
			return translateError(err)
		}
		detail.UserID = doctor.ID
		if err := tx.Create(detail).Error; err != nil {
			return translateError(err)
		}
		doctor.DoctorDetail = detail
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}

	r.invalidate(ctx, doctor.ID)
	return nil
}

// GetByID returns nil when no doctor account has the id.
func (r *DoctorRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var doctor models.User
	err := r.db.WithContext(ctx).
		Preload("DoctorDetail").
		Where("id = ? AND role = ?", id, models.RoleDoctor).
		First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

// GetAll lists doctors with their details, ordered by id. The list is cached until a doctor changes.
func (r *DoctorRepository) GetAll(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cached []models.User
	found, err := r.cache.GetJSON(ctx, doctorsCacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to get doctors from cache")
	} else if found {
		return cached, nil
	}

	var doctors []models.User
	err = r.db.WithContext(ctx).
		Select("id, username, email, role, created_at").
		Preload("DoctorDetail").
		Where("role = ?", models.RoleDoctor).
		Order("id ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all doctors: %w", err)
	}

	if err := r.cache.SetJSON(ctx, doctorsCacheKey, doctors, DoctorCacheExpiry); err != nil {
		log.Warn().Err(err).Msg("Failed to set doctors in cache")
	}
	return doctors, nil
}

// Update saves username, email, the optional new password hash and the detail row.
// A doctor that lost its detail row gets a new one.
func (r *DoctorRepository) Update(ctx context.Context, doctorID int64, username, email, hashedPassword string, detail models.DoctorDetail) error {
	updates := map[string]interface{}{
		"username": username,
		"email":    email,
	}
	if hashedPassword != "" {
		updates["password"] = hashedPassword
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ? AND role = ?", doctorID, models.RoleDoctor).
			Updates(updates)
		if result.Error != nil {
			return translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var existing models.DoctorDetail
		err := tx.Where("user_id = ?", doctorID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			detail.ID = 0
			detail.UserID = doctorID
			return tx.Create(&detail).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&existing).Updates(map[string]interface{}{
			"department":     detail.Department,
			"specialization": detail.Specialization,
			"experience":     detail.Experience,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}

	r.invalidate(ctx, doctorID)
	return nil
}

// Delete removes the detail row and the account. Appointments and availability are kept.
func (r *DoctorRepository) Delete(ctx context.Context, doctorID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", doctorID).Delete(&models.DoctorDetail{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND role = ?", doctorID, models.RoleDoctor).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	r.invalidate(ctx, doctorID)
	return nil
}

func (r *DoctorRepository) invalidate(ctx context.Context, doctorID int64) {
	if err := r.cache.Delete(ctx, doctorsCacheKey, userCacheKey(doctorID)); err != nil {
		log.Warn().Err(err).Int64("doctor_id", doctorID).Msg("Failed to delete doctor cache")
	}
}
