package services

import (
	"MediCore/models"
	"MediCore/repositories"
	"MediCore/utils"
	"context"
	"fmt"
	"time"
)

// AccessPolicy closes the booking and completion gaps when enabled.
type AccessPolicy struct {
	// RestrictBookingToPatients rejects bookings from admin and doctor sessions.
	RestrictBookingToPatients bool
	// RequireAssignedDoctor lets only the appointment's doctor complete it.
	RequireAssignedDoctor bool
}

// HardenedAccessPolicy enables every check.
func HardenedAccessPolicy() AccessPolicy {
	return AccessPolicy{RestrictBookingToPatients: true, RequireAssignedDoctor: true}
}

type AppointmentService struct {
	repository *repositories.AppointmentRepository
	policy     AccessPolicy
}

func NewAppointmentService(repository *repositories.AppointmentRepository, policy AccessPolicy) *AppointmentService {
	return &AppointmentService{repository: repository, policy: policy}
}

// Book schedules an appointment for the caller. The doctor id and date are taken as given:
// no existence, availability or conflict check is made.
func (s *AppointmentService) Book(ctx context.Context, caller models.Principal, doctorID int64, date string) (*models.Appointment, error) {
	if s.policy.RestrictBookingToPatients && !caller.Is(models.RolePatient) {
		return nil, fmt.Errorf("%w: only patients can book appointments", ErrUnauthorized)
	}
	if err := utils.ValidateBooking(doctorID, date); err != nil {
		return nil, validationError(err)
	}
	day, err := time.ParseInLocation(utils.DateLayout, date, time.UTC)
	if err != nil {
		return nil, validationError(err)
	}

	appointment := &models.Appointment{
		PatientID: caller.UserID,
		DoctorID:  doctorID,
		Date:      day,
		Status:    models.StatusScheduled,
	}
	if err := s.repository.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Complete records diagnosis and prescription. Completing twice overwrites the first record.
func (s *AppointmentService) Complete(ctx context.Context, caller models.Principal, appointmentID int64, diagnosis, prescription string) (*models.Appointment, error) {
	appointment, err := s.repository.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrNotFound
	}
	if s.policy.RequireAssignedDoctor {
		if !caller.Is(models.RoleDoctor) {
			return nil, fmt.Errorf("%w: only doctors can complete appointments", ErrUnauthorized)
		}
		if appointment.DoctorID != caller.UserID {
			return nil, fmt.Errorf("%w: appointment belongs to another doctor", ErrUnauthorized)
		}
	}

	if err := s.repository.Complete(ctx, appointmentID, diagnosis, prescription); err != nil {
		return nil, fromRepository(err)
	}
	appointment.Diagnosis = &diagnosis
	appointment.Prescription = &prescription
	appointment.Status = models.StatusCompleted
	return appointment, nil
}

func (s *AppointmentService) ListForDoctor(ctx context.Context, doctorID int64) ([]models.Appointment, error) {
	return s.repository.ListByDoctor(ctx, doctorID)
}

func (s *AppointmentService) ListForPatient(ctx context.Context, patientID int64) ([]models.Appointment, error) {
	return s.repository.ListByPatient(ctx, patientID)
}
