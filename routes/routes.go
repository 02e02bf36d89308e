package routes

import (
	"MediCore/cache"
	"MediCore/config"
	"MediCore/controllers"
	"MediCore/handlers"
	"MediCore/middlewares"
	"MediCore/repositories"
	"MediCore/services"
	"MediCore/templates"
	"MediCore/utils"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB, mailer utils.Mailer) (http.Handler, error) {
	tokens, err := utils.NewTokenMaker([]byte(config.SymmetricKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create token maker: %w", err)
	}
	sessions, err := utils.NewSessionManager([]byte(config.SessionSecret), tokens, !config.IsDev())
	if err != nil {
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}
	views, err := templates.Parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(views)

	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		middlewares.HttpError(c, "Something went wrong on our side. Please try again later.",
			http.StatusInternalServerError, fmt.Errorf("panic: %v", recovered))
	}))
	router.Use(middlewares.LoggingMiddleware())
	router.Use(middlewares.CorsMiddleware(middlewares.DefaultCorsConfig(config.CORSOrigins)))
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: config.RateLimitRPS,
		Burst:             config.RateLimitBurst,
	}))
	router.Use(middlewares.SessionAuthMiddleware(sessions))

	router.NoRoute(func(c *gin.Context) {
		middlewares.HttpError(c, "The page you are looking for does not exist.", http.StatusNotFound, nil)
	})

	// Initialize repositories, services, and handlers
	userRepo := repositories.NewUserRepository(db, cache)
	doctorRepo := repositories.NewDoctorRepository(db, cache)
	patientRepo := repositories.NewPatientRepository(db, cache)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	availabilityRepo := repositories.NewAvailabilityRepository(db)
	contactRepo := repositories.NewContactRepository(db)

	policy := services.AccessPolicy{}
	if config.HardenedAccess {
		policy = services.HardenedAccessPolicy()
	}

	accountService := services.NewAccountService(userRepo, cache, mailer)
	doctorService := services.NewDoctorService(doctorRepo)
	patientService := services.NewPatientService(patientRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo, policy)
	availabilityService := services.NewAvailabilityService(availabilityRepo)
	contactService := services.NewContactService(contactRepo)

	publicHandler := handlers.NewPublicHandler(sessions, doctorService, contactService)
	healthHandler := handlers.NewHealthHandler(db, cache)
	authHandler := handlers.NewAuthHandler(sessions, accountService)
	adminHandler := handlers.NewAdminHandler(sessions, doctorService, patientService, contactService)
	doctorHandler := handlers.NewDoctorHandler(sessions, appointmentService, availabilityService)
	patientHandler := handlers.NewPatientHandler(sessions, accountService, doctorService, appointmentService)
	appointmentHandler := handlers.NewAppointmentHandler(sessions, appointmentService)

	// Register routes
	controllers.SetupRootRoute(router, publicHandler, healthHandler)
	controllers.NewAuthController(authHandler, sessions).RegisterRoutes(router)
	controllers.SetupAdminRoutes(router, sessions, adminHandler)
	controllers.SetupDoctorRoutes(router, sessions, doctorHandler, appointmentHandler)
	controllers.SetupPatientRoutes(router, sessions, patientHandler, appointmentHandler)

	return router, nil
}
