package utils

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/rs/zerolog/log"
)

// DateLayout is the format of booking dates.
const DateLayout = "2006-01-02"

var (
	ErrInvalidResetCode = errors.New("invalid reset code")

	usernamePattern  = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)
	resetCodePattern = regexp.MustCompile(`^\d{6}$`)
)

var usernameRules = []validation.Rule{
	validation.Required,
	validation.Length(1, 80),
	validation.Match(usernamePattern).Error("may only contain letters, digits, '.', '_' and '-'"),
}

var emailRules = []validation.Rule{
	validation.Required,
	validation.Length(1, 120),
	is.EmailFormat,
}

// ValidateRegistration checks the self-registration form.
func ValidateRegistration(username, password, email string) error {
	return logged(validation.Errors{
		"username": validation.Validate(username, usernameRules...),
		"password": validation.Validate(password, validation.Required, validation.Length(1, 128)),
		"email":    validation.Validate(email, emailRules...),
	}.Filter())
}

// ValidateLogin only requires both credentials to be present.
func ValidateLogin(username, password string) error {
	return logged(validation.Errors{
		"username": validation.Validate(username, validation.Required),
		"password": validation.Validate(password, validation.Required),
	}.Filter())
}

// ValidateProfile checks a profile edit. An empty new password keeps the current one.
func ValidateProfile(username, email, newPassword string) error {
	return logged(validation.Errors{
		"username":     validation.Validate(username, usernameRules...),
		"email":        validation.Validate(email, emailRules...),
		"new_password": validation.Validate(newPassword, validation.Length(0, 128)),
	}.Filter())
}

// ValidateDoctor checks the admin doctor form. requirePassword is false when editing.
func ValidateDoctor(username, email, password, department, specialization string, experience int, requirePassword bool) error {
	passwordRules := []validation.Rule{validation.Length(0, 128)}
	if requirePassword {
		passwordRules = append(passwordRules, validation.Required)
	}
	return logged(validation.Errors{
		"username":       validation.Validate(username, usernameRules...),
		"email":          validation.Validate(email, emailRules...),
		"password":       validation.Validate(password, passwordRules...),
		"department":     validation.Validate(department, validation.Required, validation.Length(1, 100)),
		"specialization": validation.Validate(specialization, validation.Length(0, 100)),
		"experience":     validation.Validate(experience, validation.Min(0), validation.Max(80)),
	}.Filter())
}

// ValidateBooking checks the booking form. The date must be YYYY-MM-DD.
func ValidateBooking(doctorID int64, date string) error {
	return logged(validation.Errors{
		"doctor_id": validation.Validate(doctorID, validation.Required, validation.Min(int64(1))),
		"date":      validation.Validate(date, validation.Required, validation.Date(DateLayout)),
	}.Filter())
}

// ValidateContact checks the contact form. The last name may be empty and the email format is not checked.
func ValidateContact(firstName, lastName, email, subject, message string) error {
	return logged(validation.Errors{
		"firstname": validation.Validate(firstName, validation.Required),
		"lastname":  validation.Validate(lastName, validation.Length(0, 100)),
		"email":     validation.Validate(email, validation.Required, validation.Length(1, 120)),
		"subject":   validation.Validate(subject, validation.Required, validation.Length(1, 100)),
		"message":   validation.Validate(message, validation.Required),
	}.Filter())
}

// ValidatePasswordReset validates the reset code and new password.
func ValidatePasswordReset(email, resetCode, newPassword string) error {
	return logged(validation.Errors{
		"email":     validation.Validate(email, validation.Required),
		"resetCode": validation.Validate(resetCode, validation.Required.Error(ErrInvalidResetCode.Error()), validation.Match(resetCodePattern).Error(ErrInvalidResetCode.Error())),
		"password":  validation.Validate(newPassword, validation.Required, validation.Length(1, 128)),
	}.Filter())
}

func logged(err error) error {
	if err != nil {
		log.Debug().Err(err).Msg("Validation error")
	}
	return err
}
