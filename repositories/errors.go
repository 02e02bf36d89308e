package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicateValue is returned when a write violates a unique index.
var ErrDuplicateValue = errors.New("duplicate value")

// translateError maps driver specific unique violations onto ErrDuplicateValue.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateValue, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint failed")
}
