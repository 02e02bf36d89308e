package services

import (
	"MediCore/models"
	"MediCore/repositories"
	"MediCore/utils"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// DoctorForm carries the admin doctor form. Password is ignored on edit.
type DoctorForm struct {
	Username       string
	Email          string
	Password       string
	Department     string
	Specialization string
	Experience     int
}

func (f DoctorForm) detail() models.DoctorDetail {
	return models.DoctorDetail{
		Department:     f.Department,
		Specialization: f.Specialization,
		Experience:     f.Experience,
	}
}

type DoctorService struct {
	repository *repositories.DoctorRepository
}

func NewDoctorService(repository *repositories.DoctorRepository) *DoctorService {
	return &DoctorService{repository: repository}
}

// ListDoctors backs both the public directory and the admin dashboard.
func (s *DoctorService) ListDoctors(ctx context.Context) ([]models.User, error) {
	return s.repository.GetAll(ctx)
}

func (s *DoctorService) GetDoctor(ctx context.Context, id int64) (*models.User, error) {
	doctor, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrNotFound
	}
	return doctor, nil
}

func (s *DoctorService) CreateDoctor(ctx context.Context, form DoctorForm) (*models.User, error) {
	if err := utils.ValidateDoctor(form.Username, form.Email, form.Password, form.Department, form.Specialization, form.Experience, true); err != nil {
		return nil, validationError(err)
	}

	hashedPassword, err := utils.HashPassword(form.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	doctor := &models.User{
		Username: form.Username,
		Email:    form.Email,
		Password: hashedPassword,
	}
	detail := form.detail()
	if err := s.repository.Create(ctx, doctor, &detail); err != nil {
		return nil, err
	}

	log.Info().Int64("doctor_id", doctor.ID).Str("username", doctor.Username).Msg("Doctor created")
	return doctor, nil
}

func (s *DoctorService) EditDoctor(ctx context.Context, id int64, form DoctorForm) error {
	if err := utils.ValidateDoctor(form.Username, form.Email, "", form.Department, form.Specialization, form.Experience, false); err != nil {
		return validationError(err)
	}
	return fromRepository(s.repository.Update(ctx, id, form.Username, form.Email, "", form.detail()))
}

// DeleteDoctor returns the removed doctor so callers can name it.
func (s *DoctorService) DeleteDoctor(ctx context.Context, id int64) (*models.User, error) {
	doctor, err := s.GetDoctor(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repository.Delete(ctx, id); err != nil {
		return nil, fromRepository(err)
	}

	log.Info().Int64("doctor_id", id).Msg("Doctor deleted")
	return doctor, nil
}

// BlacklistDoctor only confirms that the target is a doctor. Nothing is persisted.
func (s *DoctorService) BlacklistDoctor(ctx context.Context, id int64) (*models.User, error) {
	return s.GetDoctor(ctx, id)
}
