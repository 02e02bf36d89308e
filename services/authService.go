package services

import (
	"MediCore/cache"
	"MediCore/database"
	"MediCore/models"
	"MediCore/repositories"
	"MediCore/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const accountLockTTL = time.Minute

// Registration locks by username and profile edits by id, under separate prefixes so the two never share a key.
func registerLockKey(username string) string {
	return "register_lock:" + username
}

func userLockKey(userID int64) string {
	return fmt.Sprintf("user_lock:%d", userID)
}

// dummyHash is compared against when the username is unknown so both paths cost one bcrypt run.
var dummyHash = func() string {
	hashed, _ := utils.HashPassword("medicore-unknown-user")
	return hashed
}()

type AccountService interface {
	Register(ctx context.Context, username, password, email string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (models.Principal, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, caller models.Principal, username, email, newPassword string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type accountService struct {
	userRepo repositories.UserRepository
	cache    *cache.Cache
	mailer   utils.Mailer
}

func NewAccountService(userRepo repositories.UserRepository, cache *cache.Cache, mailer utils.Mailer) AccountService {
	return &accountService{userRepo: userRepo, cache: cache, mailer: mailer}
}

// Register creates a patient account.
func (s *accountService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	if err := utils.ValidateRegistration(username, password, email); err != nil {
		return nil, validationError(err)
	}

	var user *models.User
	err := database.WithLock(ctx, registerLockKey(username), accountLockTTL, func() error {
		exists, err := s.userRepo.UsernameExists(ctx, username)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: username %q", ErrDuplicateValue, username)
		}

		hashedPassword, err := utils.HashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		candidate := &models.User{
			Username: username,
			Email:    email,
			Password: hashedPassword,
			Role:     models.RolePatient,
		}
		if err := s.userRepo.CreateUser(ctx, candidate); err != nil {
			return err
		}
		user = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", user.ID).Str("username", username).Msg("Patient registered")
	return user, nil
}

// Authenticate checks the credentials and returns the identity to keep in the session.
func (s *accountService) Authenticate(ctx context.Context, username, password string) (models.Principal, error) {
	if err := utils.ValidateLogin(username, password); err != nil {
		return models.Principal{}, validationError(err)
	}

	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return models.Principal{}, fmt.Errorf("authentication failed: %w", err)
	}
	if user == nil {
		utils.CheckPassword(dummyHash, password)
		return models.Principal{}, ErrInvalidCredentials
	}
	if !utils.CheckPassword(user.Password, password) {
		return models.Principal{}, ErrInvalidCredentials
	}

	role, err := models.ParseRole(string(user.Role))
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Stored account has an unknown role")
		return models.Principal{}, ErrInvalidCredentials
	}
	return models.Principal{UserID: user.ID, Role: role, Username: user.Username}, nil
}

func (s *accountService) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile edits the caller's own account. An empty newPassword keeps the current hash.
func (s *accountService) UpdateProfile(ctx context.Context, caller models.Principal, username, email, newPassword string) error {
	if err := utils.ValidateProfile(username, email, newPassword); err != nil {
		return validationError(err)
	}

	return database.WithLock(ctx, userLockKey(caller.UserID), accountLockTTL, func() error {
		hashedPassword := ""
		if newPassword != "" {
			var err error
			if hashedPassword, err = utils.HashPassword(newPassword); err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
		}
		return fromRepository(s.userRepo.UpdateUserProfile(ctx, caller.UserID, username, email, hashedPassword))
	})
}

// RequestPasswordReset mails a reset code when the email is known. Unknown emails are not reported.
func (s *accountService) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return validationError(errors.New("email: cannot be blank"))
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		log.Info().Str("email", email).Msg("Password reset requested for unknown email")
		return nil
	}

	code, err := utils.GenerateResetCode()
	if err != nil {
		return err
	}
	if err := utils.SetResetCode(ctx, s.cache, email, code); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	if err := s.mailer.SendResetCode(email, code); err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to send reset code")
	}
	return nil
}

func (s *accountService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := utils.ValidatePasswordReset(email, code, newPassword); err != nil {
		return validationError(err)
	}

	exhausted, err := utils.ResetAttemptsExhausted(ctx, s.cache, email)
	if err != nil {
		return fmt.Errorf("failed to get reset attempts: %w", err)
	}
	if exhausted {
		if err := utils.DeleteResetCode(ctx, s.cache, email); err != nil {
			log.Warn().Err(err).Msg("Failed to delete reset code")
		}
		return fmt.Errorf("%w: too many invalid reset codes", ErrUnauthorized)
	}

	stored, err := utils.GetResetCode(ctx, s.cache, email)
	if err != nil {
		return fmt.Errorf("failed to get reset code: %w", err)
	}
	if stored == nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, utils.ErrInvalidResetCode)
	}
	if *stored != code {
		s.recordFailedReset(ctx, email)
		return fmt.Errorf("%w: %v", ErrUnauthorized, utils.ErrInvalidResetCode)
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUnauthorized
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdateUserPassword(ctx, user.ID, hashedPassword); err != nil {
		return fromRepository(err)
	}
	if err := utils.DeleteResetCode(ctx, s.cache, email); err != nil {
		log.Warn().Err(err).Msg("Failed to delete reset code")
	}
	if err := utils.ClearResetAttempts(ctx, s.cache, email); err != nil {
		log.Warn().Err(err).Msg("Failed to clear reset attempts")
	}
	return nil
}

// recordFailedReset counts a wrong code and drops the pending code once the limit is reached.
func (s *accountService) recordFailedReset(ctx context.Context, email string) {
	attempts, err := utils.RecordFailedResetAttempt(ctx, s.cache, email)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to record reset attempt")
		return
	}
	if attempts < utils.MaxResetAttempts {
		return
	}
	log.Warn().Str("email", email).Int64("attempts", attempts).Msg("Too many invalid reset codes, dropping pending code")
	if err := utils.DeleteResetCode(ctx, s.cache, email); err != nil {
		log.Warn().Err(err).Msg("Failed to delete reset code")
	}
}
