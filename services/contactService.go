package services

import (
	"MediCore/models"
	"MediCore/repositories"
	"MediCore/utils"
	"context"
	"time"
)

type ContactService struct {
	repository *repositories.ContactRepository
	now        func() time.Time
}

func NewContactService(repository *repositories.ContactRepository) *ContactService {
	return &ContactService{repository: repository, now: time.Now}
}

// Submit stores a visitor message stamped with the server time.
func (s *ContactService) Submit(ctx context.Context, firstName, lastName, email, subject, message string) (*models.ContactMessage, error) {
	if err := utils.ValidateContact(firstName, lastName, email, subject, message); err != nil {
		return nil, validationError(err)
	}

	contact := &models.ContactMessage{
		Name:     firstName + " " + lastName,
		Email:    email,
		Subject:  subject,
		Message:  message,
		DateSent: s.now().UTC(),
	}
	if err := s.repository.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) ListRecent(ctx context.Context) ([]models.ContactMessage, error) {
	return s.repository.ListRecent(ctx)
}
