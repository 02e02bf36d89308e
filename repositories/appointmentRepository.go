package repositories

import (
	"MediCore/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if appointment.Status == "" {
		appointment.Status = models.StatusScheduled
	}
	if appointment.Status != models.StatusScheduled && appointment.Status != models.StatusCompleted {
		return errors.New("invalid status value")
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(appointment).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// GetByID returns nil when the appointment does not exist.
func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

// Complete records the outcome of a visit and marks it completed.
func (r *AppointmentRepository) Complete(ctx context.Context, id int64, diagnosis, prescription string) error {
	result := r.db.WithContext(ctx).Model(&models.Appointment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"diagnosis":    diagnosis,
		"prescription": prescription,
		"status":       models.StatusCompleted,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to complete appointment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to complete appointment: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// ListByDoctor returns the doctor's appointments with their patients, oldest first.
func (r *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient", selectPublicUserColumns).
		Where("doctor_id = ?", doctorID).
		Order("id ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor appointments: %w", err)
	}
	return appointments, nil
}

// ListByPatient returns the patient's appointments with their doctors, oldest first.
func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor", selectPublicUserColumns).
		Where("patient_id = ?", patientID).
		Order("id ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get patient appointments: %w", err)
	}
	return appointments, nil
}

func selectPublicUserColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id, username, email, role, created_at")
}
