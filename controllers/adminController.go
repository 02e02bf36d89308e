package controllers

import (
	"MediCore/handlers"
	"MediCore/middlewares"
	"MediCore/models"
	"MediCore/utils"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers the administrator area. Side-effecting actions accept GET for plain links.
func SetupAdminRoutes(router *gin.Engine, sessions *utils.SessionManager, adminHandler *handlers.AdminHandler) {
	admin := router.Group("/admin", middlewares.RoleAuthMiddleware(sessions, models.RoleAdmin))
	{
		admin.GET("/dashboard", adminHandler.Dashboard)
		admin.POST("/add_doctor", adminHandler.AddDoctor)
		admin.GET("/edit_doctor/:id", adminHandler.EditDoctorForm)
		admin.POST("/edit_doctor/:id", adminHandler.EditDoctor)

		for _, method := range []string{"GET", "POST"} {
			admin.Handle(method, "/delete_doctor/:id", adminHandler.DeleteDoctor)
			admin.Handle(method, "/delete_patient/:id", adminHandler.DeletePatient)
			admin.Handle(method, "/blacklist_doctor/:id", adminHandler.BlacklistDoctor)
		}
	}
}
