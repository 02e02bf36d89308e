package controllers

import (
	"MediCore/handlers"
	"MediCore/middlewares"
	"MediCore/models"
	"MediCore/utils"

	"github.com/gin-gonic/gin"
)

func SetupPatientRoutes(router *gin.Engine, sessions *utils.SessionManager, patientHandler *handlers.PatientHandler, appointmentHandler *handlers.AppointmentHandler) {
	// Booking only needs a session; the service decides whether the role may book.
	router.POST("/patient/book", middlewares.RequireSession(sessions), appointmentHandler.Book)

	patient := router.Group("/patient", middlewares.RoleAuthMiddleware(sessions, models.RolePatient))
	{
		patient.GET("/dashboard", patientHandler.Dashboard)
		patient.GET("/profile", patientHandler.ProfileForm)
		patient.POST("/profile", patientHandler.UpdateProfile)
	}
}
