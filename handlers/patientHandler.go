package handlers

import (
	"MediCore/middlewares"
	"MediCore/models"
	"MediCore/services"
	"MediCore/utils"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const patientProfilePath = "/patient/profile"

type PatientHandler struct {
	view
	accounts     services.AccountService
	doctors      *services.DoctorService
	appointments *services.AppointmentService
}

func NewPatientHandler(sessions *utils.SessionManager, accounts services.AccountService, doctors *services.DoctorService, appointments *services.AppointmentService) *PatientHandler {
	return &PatientHandler{view: view{sessions: sessions}, accounts: accounts, doctors: doctors, appointments: appointments}
}

func (h *PatientHandler) Dashboard(c *gin.Context) {
	p, _ := middlewares.CurrentPrincipal(c)
	ctx := c.Request.Context()

	appointments, err := h.appointments.ListForPatient(ctx, p.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	doctors, err := h.doctors.ListDoctors(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "patient_dashboard.html", gin.H{
		"Title":        "Patient dashboard",
		"Appointments": appointments,
		"Doctors":      doctors,
	})
}

func (h *PatientHandler) ProfileForm(c *gin.Context) {
	p, _ := middlewares.CurrentPrincipal(c)
	user, err := h.accounts.GetUserByID(c.Request.Context(), p.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "patient_profile.html", gin.H{"Title": "Profile", "User": user})
}

func (h *PatientHandler) UpdateProfile(c *gin.Context) {
	p, _ := middlewares.CurrentPrincipal(c)
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))

	err := h.accounts.UpdateProfile(c.Request.Context(), p, username, email, c.PostForm("new_password"))
	switch {
	case errors.Is(err, services.ErrValidation):
		h.render(c, http.StatusBadRequest, "patient_profile.html", gin.H{
			"Title": "Profile",
			"User":  models.User{ID: p.UserID, Username: username, Email: email},
			"Error": validationMessage(err),
		})
		return
	case errors.Is(err, services.ErrDuplicateValue):
		h.redirect(c, patientProfilePath, "Username or email already exists")
		return
	case err != nil:
		h.fail(c, err)
		return
	}

	// Keep the session name in step with the account.
	p.Username = username
	if err := h.sessions.Login(c, p); err != nil {
		h.fail(c, err)
		return
	}
	h.redirect(c, patientProfilePath, "Profile updated successfully")
}
