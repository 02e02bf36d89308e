package services

import (
	"MediCore/repositories"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrDuplicateValue     = repositories.ErrDuplicateValue
	ErrValidation         = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

func validationError(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// fromRepository lifts missing-row errors onto ErrNotFound. Duplicates already match ErrDuplicateValue.
func fromRepository(err error) error {
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
