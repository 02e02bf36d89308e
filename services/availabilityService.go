package services

import (
	"MediCore/models"
	"MediCore/repositories"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type AvailabilityService struct {
	repository *repositories.AvailabilityRepository
}

func NewAvailabilityService(repository *repositories.AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{repository: repository}
}

// GetOrSeedWeeklySlots returns the doctor's slots, seeding the default week when there are none.
func (s *AvailabilityService) GetOrSeedWeeklySlots(ctx context.Context, doctorID int64) ([]models.DoctorAvailability, error) {
	seeded, err := s.repository.SeedIfAbsent(ctx, doctorID, models.DefaultWeeklySlots(doctorID))
	if err != nil {
		return nil, err
	}
	if seeded {
		log.Info().Int64("doctor_id", doctorID).Msg("Seeded default availability")
	}
	return s.repository.ListByDoctor(ctx, doctorID)
}

// Toggle flips a slot owned by the caller and returns it with its new state.
func (s *AvailabilityService) Toggle(ctx context.Context, caller models.Principal, slotID int64) (*models.DoctorAvailability, error) {
	slot, err := s.repository.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrNotFound
	}
	if slot.DoctorID != caller.UserID {
		return nil, fmt.Errorf("%w: slot belongs to another doctor", ErrUnauthorized)
	}

	slot.IsAvailable = !slot.IsAvailable
	if err := s.repository.SetAvailable(ctx, slot.ID, slot.IsAvailable); err != nil {
		return nil, err
	}
	return slot, nil
}
