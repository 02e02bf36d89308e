package controllers

import (
	"MediCore/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRootRoute sets up the public pages and the health check
func SetupRootRoute(router *gin.Engine, publicHandler *handlers.PublicHandler, healthHandler *handlers.HealthHandler) {
	router.GET("/", publicHandler.Index)
	router.GET("/about", publicHandler.About)
	router.GET("/doctors", publicHandler.Doctors)
	router.GET("/contact", publicHandler.ContactForm)
	router.POST("/contact", publicHandler.SubmitContact)

	router.GET("/healthz", healthHandler.Healthz)
}
