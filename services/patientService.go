package services

import (
	"MediCore/models"
	"MediCore/repositories"
	"context"

	"github.com/rs/zerolog/log"
)

type PatientService struct {
	repository *repositories.PatientRepository
}

func NewPatientService(repository *repositories.PatientRepository) *PatientService {
	return &PatientService{repository: repository}
}

func (s *PatientService) ListPatients(ctx context.Context) ([]models.User, error) {
	return s.repository.GetAll(ctx)
}

// DeletePatient removes the patient with all of their appointments and returns the removed account.
func (s *PatientService) DeletePatient(ctx context.Context, id int64) (*models.User, error) {
	patient, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrNotFound
	}
	if err := s.repository.Delete(ctx, id); err != nil {
		return nil, fromRepository(err)
	}

	log.Info().Int64("patient_id", id).Msg("Patient deleted")
	return patient, nil
}
