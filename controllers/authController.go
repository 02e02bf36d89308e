package controllers

import (
	"MediCore/handlers"
	"MediCore/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler  *handlers.AuthHandler
	Sessions *utils.SessionManager
}

// NewAuthController creates a new AuthController with the given AuthHandler
func NewAuthController(authHandler *handlers.AuthHandler, sessions *utils.SessionManager) *AuthController {
	return &AuthController{
		Handler:  authHandler,
		Sessions: sessions,
	}
}

// RegisterRoutes initializes all authentication routes directly on the router
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	// Public routes: No session required
	router.GET("/login", ac.Handler.LoginForm)
	router.POST("/login", ac.Handler.Login)
	router.GET("/register", ac.Handler.RegisterForm)
	router.POST("/register", ac.Handler.Register)
	router.GET("/forgot_password", ac.Handler.ForgotPasswordForm)
	router.POST("/forgot_password", ac.Handler.ForgotPassword)
	router.GET("/reset_password", ac.Handler.ResetPasswordForm)
	router.POST("/reset_password", ac.Handler.ResetPassword)
	router.GET("/logout", ac.Handler.Logout)
}
