package controllers

import (
	"MediCore/handlers"
	"MediCore/middlewares"
	"MediCore/models"
	"MediCore/utils"

	"github.com/gin-gonic/gin"
)

func SetupDoctorRoutes(router *gin.Engine, sessions *utils.SessionManager, doctorHandler *handlers.DoctorHandler, appointmentHandler *handlers.AppointmentHandler) {
	// Completion only needs a session; the appointment service decides who may complete what.
	router.POST("/doctor/complete_appointment/:id", middlewares.RequireSession(sessions), appointmentHandler.CompleteAppointment)

	doctor := router.Group("/doctor", middlewares.RoleAuthMiddleware(sessions, models.RoleDoctor))
	{
		doctor.GET("/dashboard", doctorHandler.Dashboard)
		doctor.POST("/toggle_availability/:slot_id", doctorHandler.ToggleAvailability)
	}
}
