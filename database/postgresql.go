package database

import (
	"MediCore/models"
	"MediCore/utils"
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AdminUsername is the account created by the first-run seeding step.
const AdminUsername = "admin"

// InitDB opens the PostgreSQL connection, configures the pool and migrates the schema.
func InitDB(ctx context.Context, dsn string, debug bool) (*gorm.DB, error) {
	db, err := OpenDB(postgres.Open(dsn), debug)
	if err != nil {
		return nil, err
	}

	if err := configureConnectionPool(db); err != nil {
		return nil, err
	}

	if err := testDatabaseConnection(ctx, db); err != nil {
		return nil, err
	}

	if err := RunMigrations(db); err != nil {
		return nil, errors.Wrap(err, "failed to run migrations")
	}

	log.Info().Msg("Database initialized successfully.")
	return db, nil
}

// OpenDB opens a gorm handle on the given dialector with the application settings.
func OpenDB(dialector gorm.Dialector, debug bool) (*gorm.DB, error) {
	logMode := logger.Silent
	if debug {
		logMode = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// Cascades are performed by the services; appointments of a removed doctor stay in place.
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		PrepareStmt:                              true,
		Logger:                                   logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}
	return db, nil
}

func configureConnectionPool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	sqlDB.SetMaxOpenConns(40)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

func testDatabaseConnection(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping database")
	}
	return nil
}

// RunMigrations creates or updates the schema.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.DoctorDetail{},
		&models.Appointment{},
		&models.ContactMessage{},
		&models.DoctorAvailability{},
	)
}

// SeedAdmin creates the administrator account unless a user named admin already exists.
// The password is supplied by the operator; there is no built-in default.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password string) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", AdminUsername).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to look up admin account")
	}
	if count > 0 {
		return false, nil
	}
	if password == "" {
		return false, errors.New("admin password is required to seed the admin account")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return false, errors.Wrap(err, "failed to hash admin password")
	}

	admin := models.User{
		Username: AdminUsername,
		Email:    email,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return false, errors.Wrap(err, "failed to create admin account")
	}
	log.Info().Str("username", AdminUsername).Msg("Administrator account created")
	return true, nil
}

// Ping checks the database connection, used by the health endpoint.
func Ping(ctx context.Context, db *gorm.DB) error {
	return testDatabaseConnection(ctx, db)
}
