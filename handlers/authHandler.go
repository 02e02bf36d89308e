package handlers

import (
	"MediCore/services"
	"MediCore/utils"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuthHandler struct {
	view
	accounts services.AccountService
}

func NewAuthHandler(sessions *utils.SessionManager, accounts services.AccountService) *AuthHandler {
	return &AuthHandler{view: view{sessions: sessions}, accounts: accounts}
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"Title": "Login"})
}

// Login authenticates the user and stores the identity in the session
func (h *AuthHandler) Login(c *gin.Context) {
	form := formValues(c, "username", "password")
	p, err := h.accounts.Authenticate(c.Request.Context(), form["username"], form["password"])
	switch {
	case errors.Is(err, services.ErrValidation):
		h.render(c, http.StatusBadRequest, "login.html", gin.H{"Title": "Login", "Form": form, "Error": validationMessage(err)})
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		h.render(c, http.StatusUnauthorized, "login.html", gin.H{"Title": "Login", "Form": form, "Error": "Invalid username or password"})
		return
	case err != nil:
		h.fail(c, err)
		return
	}

	if err := h.sessions.Login(c, p); err != nil {
		h.fail(c, err)
		return
	}
	log.Info().Int64("user_id", p.UserID).Str("role", p.Role.String()).Msg("User logged in")
	c.Redirect(http.StatusFound, p.Role.DashboardPath())
}

func (h *AuthHandler) RegisterForm(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", gin.H{"Title": "Register"})
}

// Register handles new patient registration
func (h *AuthHandler) Register(c *gin.Context) {
	form := formValues(c, "username", "email", "password")
	_, err := h.accounts.Register(c.Request.Context(), form["username"], form["password"], form["email"])
	switch {
	case errors.Is(err, services.ErrValidation):
		h.render(c, http.StatusBadRequest, "register.html", gin.H{"Title": "Register", "Form": form, "Error": validationMessage(err)})
		return
	case errors.Is(err, services.ErrDuplicateValue):
		h.redirect(c, "/register", "Username already exists. Please choose another.")
		return
	case err != nil:
		h.fail(c, err)
		return
	}
	h.redirect(c, "/login", "Account created successfully! You can now log in.")
}

// Logout clears the whole session, including one whose token has expired.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Clear(c); err != nil {
		log.Error().Err(err).Msg("Failed to clear session")
	}
	h.redirect(c, "/login", "You have been logged out.")
}

func (h *AuthHandler) ForgotPasswordForm(c *gin.Context) {
	h.render(c, http.StatusOK, "forgot_password.html", gin.H{"Title": "Forgot password"})
}

// ForgotPassword sends a password reset code to the user's email
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	form := formValues(c, "email")
	err := h.accounts.RequestPasswordReset(c.Request.Context(), form["email"])
	if errors.Is(err, services.ErrValidation) {
		h.render(c, http.StatusBadRequest, "forgot_password.html", gin.H{"Title": "Forgot password", "Form": form, "Error": validationMessage(err)})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.redirect(c, "/reset_password?email="+url.QueryEscape(form["email"]),
		"If the email is registered, a reset code has been sent to it.")
}

func (h *AuthHandler) ResetPasswordForm(c *gin.Context) {
	h.render(c, http.StatusOK, "reset_password.html", gin.H{
		"Title": "Reset password",
		"Form":  map[string]string{"email": c.Query("email")},
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	form := formValues(c, "email", "reset_code", "new_password")
	err := h.accounts.ResetPassword(c.Request.Context(), form["email"], form["reset_code"], form["new_password"])
	switch {
	case errors.Is(err, services.ErrValidation):
		h.render(c, http.StatusBadRequest, "reset_password.html", gin.H{"Title": "Reset password", "Form": form, "Error": validationMessage(err)})
		return
	case errors.Is(err, services.ErrUnauthorized):
		h.render(c, http.StatusUnauthorized, "reset_password.html", gin.H{"Title": "Reset password", "Form": form, "Error": "Invalid or expired reset code"})
		return
	case err != nil:
		h.fail(c, err)
		return
	}
	h.redirect(c, "/login", "Your password has been reset. You can now log in.")
}
